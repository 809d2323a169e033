package agent

import "errors"

var (
	// ErrAgentNotFound возвращается, когда агент не найден
	ErrAgentNotFound = errors.New("agent.repository: agent not found")

	// ErrDuplicateAgent возвращается при повторной регистрации telegram id
	ErrDuplicateAgent = errors.New("agent.repository: agent already registered")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("agent.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("agent.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("agent.repository: failed to scan row")
)
