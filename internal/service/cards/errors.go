package cards

import "errors"

var (
	// ErrCardNotFound возвращается, когда карточка ТО не найдена
	ErrCardNotFound = errors.New("card not found")

	// ErrAgentNotFound возвращается, когда агент не найден
	ErrAgentNotFound = errors.New("agent not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (карточка уже в конечном статусе или конкурентный переход победил)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
