package update_tank_status

import (
	"context"

	"github.com/voidfloat/FLT-SchedulingService/internal/service/tanks/models"
)

type TankService interface {
	UpdateStatus(ctx context.Context, tankID int64, req *models.UpdateTankStatusRequest) (*models.TankResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
