package get_available_slots

import (
	"time"

	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// Request модель запроса на получение слотов станции на дату
type Request struct {
	StationID string    // ID станции ТО
	Date      time.Time // дата (без времени)
}

// Response модель ответа со слотами станции
type Response struct {
	StationID string    // ID станции
	Date      time.Time // дата, на которую запрашивались слоты
	Slots     []Slot    // все слоты рабочего дня
}

// Slot один слот сетки станции
// Прошедшие и занятые слоты не выбрасываются из ответа — по Reason
// интерфейс показывает их недоступными
type Slot struct {
	Time      types.TimeString // время начала слота
	Available bool             // можно ли записаться
	Reason    string           // причина недоступности (past, slot_taken, hour_capacity)
}
