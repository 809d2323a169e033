package create_card

import (
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	createCard "github.com/avtoagent/STO-BookingService/internal/usecase/create_card"
	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// CreateCardRequest HTTP request model
type CreateCardRequest struct {
	StationID string `json:"stationId"`
	Category  string `json:"category"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:30"

	ClientName  string `json:"clientName"`
	CarNumber   string `json:"carNumber"`
	VINNumber   string `json:"vinNumber"`
	ClientPhone string `json:"clientPhone"`

	HasDefects        bool    `json:"hasDefects"`
	DefectType        string  `json:"defectType,omitempty"`
	DefectDescription *string `json:"defectDescription,omitempty"`
}

// CardResponse HTTP response model
type CardResponse struct {
	ID         int64  `json:"id"`
	CardNumber string `json:"cardNumber"`
	AgentID    int64  `json:"agentId"`

	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	Category    string `json:"category"`

	AppointmentTime string `json:"appointmentTime"`

	ClientName  string `json:"clientName"`
	CarNumber   string `json:"carNumber"`
	VINNumber   string `json:"vinNumber"`
	ClientPhone string `json:"clientPhone"`

	HasDefects        bool    `json:"hasDefects"`
	DefectType        string  `json:"defectType"`
	DefectDescription *string `json:"defectDescription,omitempty"`

	TotalPrice string `json:"totalPrice"`
	Status     string `json:"status"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCardRequest) ToUseCaseRequest(agentID int64) (*createCard.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createCard.Request{
		AgentID:           agentID,
		StationID:         r.StationID,
		Category:          r.Category,
		Date:              date,
		StartTime:         startTime,
		ClientName:        r.ClientName,
		CarNumber:         r.CarNumber,
		VINNumber:         r.VINNumber,
		ClientPhone:       r.ClientPhone,
		HasDefects:        r.HasDefects,
		DefectType:        r.DefectType,
		DefectDescription: r.DefectDescription,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(res *createCard.Response) *CardResponse {
	return &CardResponse{
		ID:                res.ID,
		CardNumber:        res.CardNumber,
		AgentID:           res.AgentID,
		StationID:         res.StationID,
		StationName:       res.StationName,
		Category:          res.Category,
		AppointmentTime:   res.AppointmentTime.Format(time.RFC3339),
		ClientName:        res.ClientName,
		CarNumber:         res.CarNumber,
		VINNumber:         res.VINNumber,
		ClientPhone:       res.ClientPhone,
		HasDefects:        res.HasDefects,
		DefectType:        res.DefectType,
		DefectDescription: res.DefectDescription,
		TotalPrice:        res.TotalPrice.StringFixed(2),
		Status:            res.Status,
		CreatedAt:         res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         res.UpdatedAt.Format(time.RFC3339),
	}
}
