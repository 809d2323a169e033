package balance

import "errors"

var (
	// ErrAgentNotFound агент не найден
	ErrAgentNotFound = errors.New("balance: agent not found")
	// ErrAccessDenied операция не разрешена этому агенту
	ErrAccessDenied = errors.New("balance: access denied")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("balance: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("balance: internal error")
)
