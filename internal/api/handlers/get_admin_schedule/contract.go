package get_admin_schedule

import (
	"context"

	getAdminSchedule "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_admin_schedule"
)

type GetAdminScheduleUseCase interface {
	Execute(ctx context.Context, req *getAdminSchedule.Request) (*getAdminSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
