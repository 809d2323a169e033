package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TOCardStatus статус карточки ТО
type TOCardStatus string

const (
	StatusPending   TOCardStatus = "pending"
	StatusApproved  TOCardStatus = "approved"
	StatusRejected  TOCardStatus = "rejected"
	StatusCancelled TOCardStatus = "cancelled"
)

// DefectType тип дефектов автомобиля
type DefectType string

const (
	DefectNone  DefectType = "none"
	DefectMinor DefectType = "minor"
	DefectMajor DefectType = "major"
)

// TOCard карточка ТО — запись клиента на техосмотр
// Данные станции (название, категория, цена) денормализуются в момент
// создания: изменение конфигурации станции не меняет существующие карточки
type TOCard struct {
	ID         int64
	CardNumber string // человекочитаемый номер, не уникальный ключ
	AgentID    int64

	StationID   string
	StationName string
	Category    VehicleCategory

	AppointmentTime time.Time

	ClientName  string
	CarNumber   string
	VINNumber   string
	ClientPhone string

	HasDefects        bool
	DefectType        DefectType
	DefectDescription *string

	// TotalPrice фиксируется при создании и никогда не пересчитывается
	TotalPrice decimal.Decimal

	Status       TOCardStatus
	AdminComment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если карточка занимает слот
// Отменённые карточки не учитываются при подсчёте занятости
func (c *TOCard) IsActive() bool {
	return c.Status != StatusCancelled
}

// IsTerminal возвращает true, если статус конечный
func (c *TOCard) IsTerminal() bool {
	return c.Status == StatusApproved || c.Status == StatusRejected || c.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если карточку можно отменить
func (c *TOCard) CanBeCancelled() bool {
	return c.Status == StatusPending
}

// CanTransitionTo проверяет допустимость перехода статуса
// Единственный источник переходов: pending -> approved | rejected | cancelled.
// Конечные статусы переходов не имеют
func (s TOCardStatus) CanTransitionTo(to TOCardStatus) bool {
	if s != StatusPending {
		return false
	}
	switch to {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus валидирует строковый статус
func ParseStatus(s string) (TOCardStatus, error) {
	switch TOCardStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return TOCardStatus(s), nil
	default:
		return "", fmt.Errorf("unknown card status %q", s)
	}
}

// ParseDefectType валидирует строковый тип дефектов
func ParseDefectType(s string) (DefectType, error) {
	switch DefectType(s) {
	case DefectNone, DefectMinor, DefectMajor:
		return DefectType(s), nil
	default:
		return "", fmt.Errorf("unknown defect type %q", s)
	}
}

// FormatCardNumber формирует номер карточки ТО: дата + id агента*10 +
// порядковый номер карточки агента за день. Номер служит для отображения,
// ключом остаётся id
func FormatCardNumber(createdAt time.Time, agentID int64, dailySeq int) string {
	return fmt.Sprintf("%s%d%d", createdAt.Format(CardNumberDateFormat), agentID*10, dailySeq)
}

// StationCardsFilter фильтр для выборки карточек станции
type StationCardsFilter struct {
	StationID        string
	From             *time.Time // начало периода (опционально)
	To               *time.Time // конец периода (опционально)
	Status           *TOCardStatus
	IncludeCancelled bool // включать ли отменённые карточки (для аудита)
}
