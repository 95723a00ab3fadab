package get_admin_schedule

import (
	"context"
	"fmt"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// UseCase use case для построения административного расписания дня
type UseCase struct {
	appointmentRepo AppointmentRepository
	tankRepo        TankRepository
	schedule        domain.ScheduleConfig
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	tankRepo TankRepository,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		tankRepo:        tankRepo,
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute выполняет use case построения расписания
//
// В таймлайн попадают все записи дня независимо от статуса (админу видны
// и отмены, и неявки), а синтетические блоки уборки - только для записей
// в блокирующих статусах: после отменённой сессии убирать нечего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAdminSchedule: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		uc.logger.Warn("GetAdminSchedule: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	tanks, err := uc.tankRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAdminSchedule: failed to list tanks: %v", err)
		return nil, fmt.Errorf("%w: failed to list tanks: %v", ErrInternal, err)
	}

	// Все записи дня, без фильтра по статусу
	dayWindow := uc.schedule.DayWindow(req.Date)
	filter := domain.AppointmentsFilter{
		DayStart: &dayWindow.Start,
		DayEnd:   &dayWindow.End,
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAdminSchedule: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	entries := buildTimeline(appointments, uc.schedule.BlockingStatuses)

	uc.logger.Info("GetAdminSchedule: %d tanks, %d entries for %s",
		len(tanks), len(entries), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:    req.Date,
		Tanks:   toTankInfos(tanks),
		Entries: entries,
	}, nil
}
