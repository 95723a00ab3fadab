package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64     // ID клиента
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Момент начала сессии (абсолютное время)
	TankID     *int64    // Явно выбранный танк (опционально)
	ClientName string    // Имя клиента для денормализации в историю
	Notes      *string   // Дополнительные заметки (опционально)
	Override   bool      // Административная запись в обход проверок занятости
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64     // ID созданной записи
	ClientID       int64     // ID клиента
	ServiceID      int64     // ID услуги
	TankID         int64     // Назначенный танк
	StartTime      time.Time // Начало сессии
	EndTime        time.Time // Конец сессии (без уборки)
	CleanupMinutes int       // Длительность уборки после сессии
	Status         string    // Статус записи
	IsOverride     bool      // Признак административной записи

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice int64   // Цена услуги в минимальных единицах валюты
	ClientName   string  // Имя клиента
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
