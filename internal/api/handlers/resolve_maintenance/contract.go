package resolve_maintenance

import "context"

type TankService interface {
	ResolveMaintenance(ctx context.Context, logID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
