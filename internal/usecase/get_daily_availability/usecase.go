package get_daily_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	serviceRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/servicecatalog"
)

// UseCase use case для расчёта сетки доступных слотов на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	tankRepo        TankRepository
	schedule        domain.ScheduleConfig
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	tankRepo TankRepository,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		tankRepo:        tankRepo,
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute выполняет use case расчёта доступности
// Чистое чтение: один и тот же снапшот данных всегда даёт один и тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDailyAvailability: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDailyAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetDailyAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDailyAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("GetDailyAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 3. Получаем танки, пригодные для бронирования
	// active = false и status = maintenance исключают танк из пула;
	// остальные статусы информационные и на доступность не влияют
	tanks, err := uc.tankRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetDailyAvailability: failed to list tanks: %v", err)
		return nil, fmt.Errorf("%w: failed to list tanks: %v", ErrInternal, err)
	}

	pool := domain.BookableTanks(tanks)

	// Нет пригодных танков - пустая сетка ("нечего показывать",
	// а не "всё занято")
	if len(pool) == 0 {
		uc.logger.Info("GetDailyAvailability: no bookable tanks for %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			ServiceID: req.ServiceID,
			Slots:     []domain.TimeSlot{},
		}, nil
	}

	// 4. Получаем блокирующие записи дня
	dayWindow := uc.schedule.DayWindow(req.Date)
	filter := domain.AppointmentsFilter{
		DayStart: &dayWindow.Start,
		DayEnd:   &dayWindow.End,
		Statuses: uc.schedule.BlockingStatuses,
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDailyAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Строим занятость танков и генерируем сетку слотов
	occupancy := domain.BuildOccupancy(appointments, uc.schedule.BlockingStatuses)
	slots := generateSlots(uc.schedule, service, req.Date, pool, occupancy)

	uc.logger.Info("GetDailyAvailability: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
