package tanks

import "errors"

var (
	// ErrTankNotFound возвращается, когда танк не найден
	ErrTankNotFound = errors.New("tank not found")

	// ErrMaintenanceLogNotFound возвращается, когда открытая заявка
	// на обслуживание не найдена
	ErrMaintenanceLogNotFound = errors.New("maintenance log not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid tank status")

	// ErrInvalidSeverity возвращается при некорректной серьёзности поломки
	ErrInvalidSeverity = errors.New("invalid maintenance severity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
