package report_maintenance

import (
	"context"

	"github.com/voidfloat/FLT-SchedulingService/internal/service/tanks/models"
)

type TankService interface {
	ReportMaintenance(ctx context.Context, tankID int64, req *models.ReportMaintenanceRequest) (*models.MaintenanceLogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
