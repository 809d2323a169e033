package agents

import "errors"

var (
	// ErrAgentNotFound агент не найден
	ErrAgentNotFound = errors.New("agents: agent not found")
	// ErrDuplicateAgent агент с таким telegram_id уже зарегистрирован
	ErrDuplicateAgent = errors.New("agents: agent already exists")
	// ErrAccessDenied операция не разрешена этому агенту
	ErrAccessDenied = errors.New("agents: access denied")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("agents: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("agents: internal error")
)
