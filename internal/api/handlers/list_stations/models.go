package list_stations

import (
	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// StationResponse HTTP модель станции ТО
type StationResponse struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Address             string            `json:"address"`
	WorkingHoursStart   string            `json:"workingHoursStart"`
	WorkingHoursEnd     string            `json:"workingHoursEnd"`
	SlotDurationMinutes int               `json:"slotDurationMinutes"`
	SlotsPerHour        int               `json:"slotsPerHour"`
	Categories          []string          `json:"categories"`
	Prices              map[string]string `json:"prices"`
	DefectPrices        map[string]string `json:"defectPrices,omitempty"`
}

// StationListResponse список станций
type StationListResponse struct {
	Stations []*StationResponse `json:"stations"`
	Total    int                `json:"total"`
}

// FromDomainStation конвертирует доменную станцию в HTTP модель
func FromDomainStation(s *domain.Station) *StationResponse {
	categories := make([]string, 0, len(s.Prices))
	for _, c := range s.Categories() {
		categories = append(categories, string(c))
	}

	prices := make(map[string]string, len(s.Prices))
	for category, price := range s.Prices {
		prices[string(category)] = price.StringFixed(2)
	}

	var defectPrices map[string]string
	if len(s.DefectPrices) > 0 {
		defectPrices = make(map[string]string, len(s.DefectPrices))
		for defect, price := range s.DefectPrices {
			defectPrices[string(defect)] = price.StringFixed(2)
		}
	}

	return &StationResponse{
		ID:                  s.ID,
		Name:                s.Name,
		Address:             s.Address,
		WorkingHoursStart:   s.WorkingHoursStart.String(),
		WorkingHoursEnd:     s.WorkingHoursEnd.String(),
		SlotDurationMinutes: s.SlotDurationMinutes,
		SlotsPerHour:        s.SlotsPerHour,
		Categories:          categories,
		Prices:              prices,
		DefectPrices:        defectPrices,
	}
}

// FromDomainStationList конвертирует список станций в HTTP модель
func FromDomainStationList(stations []*domain.Station) *StationListResponse {
	resp := &StationListResponse{
		Stations: make([]*StationResponse, 0, len(stations)),
		Total:    len(stations),
	}
	for _, s := range stations {
		resp.Stations = append(resp.Stations, FromDomainStation(s))
	}
	return resp
}
