package get_daily_availability

import (
	"time"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов дня
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со слотами дня
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	ServiceID int64             // ID услуги
	Slots     []domain.TimeSlot // Упорядоченная по времени сетка слотов
}
