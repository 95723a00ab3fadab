package get_daily_availability

import (
	"context"

	getDailyAvailability "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_daily_availability"
)

type GetDailyAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getDailyAvailability.Request) (*getDailyAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
