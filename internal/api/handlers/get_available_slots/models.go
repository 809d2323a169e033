package get_available_slots

import (
	"github.com/avtoagent/STO-BookingService/internal/domain"
	getAvailableSlots "github.com/avtoagent/STO-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// SlotsResponse HTTP модель ответа со слотами станции
type SlotsResponse struct {
	StationID string         `json:"stationId"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(res *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(res.Slots))
	for _, s := range res.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
			Reason:    s.Reason,
		})
	}
	return &SlotsResponse{
		StationID: res.StationID,
		Date:      res.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
