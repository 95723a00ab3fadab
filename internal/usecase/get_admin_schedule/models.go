package get_admin_schedule

import "time"

// Типы записей в расписании
const (
	EntryTypeFloat    = "float"    // Флоат-сессия
	EntryTypeMassage  = "massage"  // Массаж
	EntryTypeCleaning = "cleaning" // Уборка танка после сессии
)

// Request модель запроса расписания на день
type Request struct {
	Date time.Time // Дата, на которую запрашивается расписание
}

// Response модель ответа с расписанием дня
type Response struct {
	Date    time.Time       // Дата расписания
	Tanks   []TankInfo      // Танки центра
	Entries []ScheduleEntry // Записи таймлайна, упорядоченные по времени
}

// TankInfo информация о танке для сетки расписания
type TankInfo struct {
	ID     int64  // ID танка
	Name   string // Название танка
	Status string // Текущий статус танка
}

// ScheduleEntry одна запись таймлайна: сессия или блок уборки.
// У блока уборки идентификатор вида "{appointmentID}-cleaning",
// имя клиента и услуга не заполняются
type ScheduleEntry struct {
	ID          string    // Идентификатор записи таймлайна
	TankID      int64     // Танк, к которому относится запись
	Type        string    // Тип записи: float / massage / cleaning
	StartTime   time.Time // Начало интервала
	EndTime     time.Time // Конец интервала
	Status      string    // Статус записи (пусто для уборки)
	ClientName  string    // Имя клиента (пусто для уборки)
	ServiceName string    // Название услуги (пусто для уборки)
}
