package tank

import "errors"

var (
	// ErrTankNotFound возвращается, когда танк не найден
	ErrTankNotFound = errors.New("tank.repository: tank not found")

	// ErrMaintenanceLogNotFound возвращается, когда запись о неисправности не найдена
	ErrMaintenanceLogNotFound = errors.New("tank.repository: maintenance log not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tank.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tank.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tank.repository: failed to scan row")
)
