package create_card

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// Request модель запроса на создание карточки ТО
type Request struct {
	AgentID   int64            // ID агента, оформляющего запись
	StationID string           // ID станции ТО
	Category  string           // категория ТС (B, C, D, E)
	Date      time.Time        // дата записи (без времени)
	StartTime types.TimeString // время слота (например, "10:30")

	ClientName  string // ФИО клиента
	CarNumber   string // госномер автомобиля
	VINNumber   string // VIN
	ClientPhone string // телефон клиента

	HasDefects        bool    // есть ли у автомобиля дефекты
	DefectType        string  // тип дефектов (minor, major), пустой при их отсутствии
	DefectDescription *string // описание дефектов (опционально)
}

// Response модель ответа с созданной карточкой ТО
type Response struct {
	ID         int64  // ID созданной карточки
	CardNumber string // человекочитаемый номер карточки
	AgentID    int64  // ID агента

	StationID   string // ID станции
	StationName string // название станции (денормализовано)
	Category    string // категория ТС

	AppointmentTime time.Time // дата и время записи

	ClientName  string // ФИО клиента
	CarNumber   string // госномер
	VINNumber   string // VIN
	ClientPhone string // телефон

	HasDefects        bool
	DefectType        string
	DefectDescription *string

	TotalPrice decimal.Decimal // итоговая стоимость, зафиксированная при создании
	Status     string          // статус карточки (всегда pending при создании)

	CreatedAt time.Time
	UpdatedAt time.Time
}
