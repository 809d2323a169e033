package card

import "errors"

var (
	// ErrCardNotFound возвращается, когда карточка ТО не найдена
	ErrCardNotFound = errors.New("card.repository: card not found")

	// ErrSlotTaken возвращается при нарушении уникальности
	// (станция, точное время записи) среди неотменённых карточек
	ErrSlotTaken = errors.New("card.repository: slot already taken")

	// ErrStatusConflict возвращается, когда CAS-обновление статуса не
	// затронуло ни одной строки: карточка уже не в ожидаемом статусе
	ErrStatusConflict = errors.New("card.repository: status conflict")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("card.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("card.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("card.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("card.repository: failed to scan row")
)
