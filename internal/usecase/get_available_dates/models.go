package get_available_dates

import "time"

// Request модель запроса на получение дат для записи
type Request struct {
	StationID string // ID станции ТО
}

// Response модель ответа со списком дат
type Response struct {
	StationID string     // ID станции
	Dates     []DateInfo // ближайшие даты в пределах горизонта записи
}

// DateInfo одна календарная дата
type DateInfo struct {
	Date      time.Time // дата (без времени)
	Available bool      // остался ли хотя бы один свободный слот
}
