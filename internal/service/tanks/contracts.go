package tanks

import (
	"context"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// TankRepository интерфейс репозитория танков
type TankRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tank, error)
	ListActive(ctx context.Context) ([]*domain.Tank, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TankStatus) error
	CreateMaintenanceLog(ctx context.Context, log *domain.MaintenanceLog) (*domain.MaintenanceLog, error)
	ResolveMaintenanceLog(ctx context.Context, logID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
