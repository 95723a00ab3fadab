package get_admin_schedule

import (
	"context"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TankRepository интерфейс репозитория танков
type TankRepository interface {
	ListActive(ctx context.Context) ([]*domain.Tank, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
