package create_card

import "errors"

var (
	// ErrAgentNotFound возвращается, когда агент не найден
	ErrAgentNotFound = errors.New("create_card: agent not found")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("create_card: station not found")

	// ErrCategoryNotServed возвращается, когда станция не обслуживает категорию ТС
	ErrCategoryNotServed = errors.New("create_card: station does not serve this category")

	// ErrInvalidDate возвращается при некорректной дате записи (в прошлом)
	ErrInvalidDate = errors.New("create_card: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт записи
	ErrDateTooFarInFuture = errors.New("create_card: date is too far in the future")

	// ErrSlotInPast возвращается при попытке записи на уже прошедшее время
	ErrSlotInPast = errors.New("create_card: slot is in the past")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят,
	// исчерпана пропускная способность часа или время вне рабочих часов
	ErrSlotNotAvailable = errors.New("create_card: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_card: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_card: internal error")
)
