package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_appointment: service is inactive")

	// ErrTankNotFound возвращается, когда запрошенный танк не найден
	ErrTankNotFound = errors.New("create_appointment: tank not found")

	// ErrTankUnavailable возвращается, когда запрошенный танк занят
	// на пересекающийся интервал или непригоден для бронирования
	ErrTankUnavailable = errors.New("create_appointment: tank is not available for this time")

	// ErrNoTankAvailable возвращается, когда ни один танк не свободен
	// на запрошенный интервал
	ErrNoTankAvailable = errors.New("create_appointment: no tank available for this time")

	// ErrOutsideBusinessHours возвращается, когда сессия не помещается
	// в рабочие часы центра
	ErrOutsideBusinessHours = errors.New("create_appointment: time is outside business hours")

	// ErrStartTimeInPast возвращается при попытке записи на прошедшее время
	ErrStartTimeInPast = errors.New("create_appointment: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
