package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	appointmentRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/appointment"
	serviceRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/servicecatalog"
	tankRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/tank"
)

// UseCase use case для создания записи на сессию
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	tankRepo        TankRepository
	txManager       TransactionManager
	schedule        domain.ScheduleConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	tankRepo TankRepository,
	txManager TransactionManager,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		tankRepo:        tankRepo,
		txManager:       txManager,
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
// с блокировкой записей дня (FOR UPDATE). Последняя линия защиты - exclusion
// constraint в БД на пересечение занятых интервалов танка: проверка в памяти
// оптимистична, констрейнт авторитетен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, service=%d, start=%s, override=%v",
		req.ClientID, req.ServiceID, req.StartTime.Format("2006-01-02 15:04"), req.Override)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 3. Интервалы новой записи.
	// Сессия - [start, start+duration), для клиента.
	// Блокирующий интервал - [start, start+duration+cleanup): проверка
	// конфликтов ведётся по нему, чтобы уборка после новой сессии
	// не налезла на следующую запись.
	// Если у услуги не задан буфер уборки, берётся значение из конфигурации
	cleanup := uc.schedule.CleanupFor(service)
	session := domain.NewInterval(req.StartTime, service.DurationMinutes)
	blocking := domain.NewInterval(req.StartTime, service.DurationMinutes+cleanup)

	// 4. Проверки времени (для административной записи не выполняются)
	if !req.Override {
		if err := validateStartTime(req.StartTime, now); err != nil {
			uc.logger.Warn("CreateAppointment: start time %s is in the past", req.StartTime)
			return nil, err
		}
		if err := validateBusinessHours(uc.schedule, session); err != nil {
			uc.logger.Warn("CreateAppointment: business hours check failed: %v", err)
			return nil, err
		}
	}

	// 5. Административная запись: занятость не проверяется,
	// запись идёт на явно указанный танк
	if req.Override {
		return uc.executeOverride(ctx, req, service, session, cleanup)
	}

	var result *domain.Appointment

	// 6. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Блокирующие записи дня с блокировкой строк (FOR UPDATE)
		dayWindow := uc.schedule.DayWindow(req.StartTime)
		filter := domain.AppointmentsFilter{
			DayStart: &dayWindow.Start,
			DayEnd:   &dayWindow.End,
			Statuses: uc.schedule.BlockingStatuses,
		}

		appointments, err := uc.appointmentRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		occupancy := domain.BuildOccupancy(appointments, uc.schedule.BlockingStatuses)

		// 6.2. Назначение танка: явный выбор или первый свободный
		tankID, err := uc.resolveTank(txCtx, req, occupancy, blocking)
		if err != nil {
			return err
		}

		// 6.3. Создаем запись с денормализацией данных услуги и клиента
		appt := &domain.Appointment{
			ClientID:       req.ClientID,
			ServiceID:      req.ServiceID,
			TankID:         tankID,
			StartTime:      session.Start,
			EndTime:        session.End,
			CleanupMinutes: cleanup,
			Status:         domain.StatusConfirmed,
			ServiceName:    service.Name,
			ServicePrice:   service.Price,
			ClientName:     req.ClientName,
			Notes:          req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Exclusion constraint сработал: кто-то успел занять танк
			// между проверкой и вставкой
			if errors.Is(err, appointmentRepo.ErrTankOccupied) {
				uc.logger.Warn("CreateAppointment: tank id=%d occupied at commit", tankID)
				return ErrTankUnavailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, tank=%d",
		result.ID, result.TankID)

	return toResponse(result), nil
}

// resolveTank выбирает танк для новой записи.
// Явно запрошенный танк проверяется на пригодность и занятость;
// без явного выбора берётся первый свободный в порядке возрастания ID
func (uc *UseCase) resolveTank(
	ctx context.Context,
	req *Request,
	occupancy domain.TankOccupancy,
	blocking domain.Interval,
) (int64, error) {
	tanks, err := uc.tankRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list tanks: %v", err)
		return 0, fmt.Errorf("%w: failed to list tanks: %v", ErrInternal, err)
	}

	if req.TankID != nil {
		tank := findTank(tanks, *req.TankID)
		if tank == nil {
			uc.logger.Warn("CreateAppointment: tank id=%d not found", *req.TankID)
			return 0, ErrTankNotFound
		}

		if !tank.Bookable() {
			uc.logger.Warn("CreateAppointment: tank id=%d is not bookable (active=%v, status=%s)",
				tank.ID, tank.Active, tank.Status)
			return 0, ErrTankUnavailable
		}

		if !occupancy.IsTankFree(tank.ID, blocking) {
			uc.logger.Warn("CreateAppointment: tank id=%d occupied for requested interval", tank.ID)
			return 0, ErrTankUnavailable
		}

		return tank.ID, nil
	}

	tank := occupancy.FindFreeTank(tanks, blocking)
	if tank == nil {
		uc.logger.Warn("CreateAppointment: no free tank for interval [%s, %s)",
			blocking.Start.Format("15:04"), blocking.End.Format("15:04"))
		return 0, ErrNoTankAvailable
	}

	return tank.ID, nil
}

// executeOverride создает административную запись в обход проверок занятости.
// Запись помечается is_override и не участвует в exclusion constraint,
// поэтому может пересекаться с существующими
func (uc *UseCase) executeOverride(
	ctx context.Context,
	req *Request,
	service *domain.Service,
	session domain.Interval,
	cleanup int,
) (*Response, error) {
	// Танк должен существовать; пригодность и занятость не проверяются
	if _, err := uc.tankRepo.GetByID(ctx, *req.TankID); err != nil {
		if errors.Is(err, tankRepo.ErrTankNotFound) {
			uc.logger.Warn("CreateAppointment: override tank id=%d not found", *req.TankID)
			return nil, ErrTankNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get tank id=%d: %v", *req.TankID, err)
		return nil, fmt.Errorf("%w: failed to get tank: %v", ErrInternal, err)
	}

	appt := &domain.Appointment{
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		TankID:         *req.TankID,
		StartTime:      session.Start,
		EndTime:        session.End,
		CleanupMinutes: cleanup,
		Status:         domain.StatusConfirmed,
		IsOverride:     true,
		ServiceName:    service.Name,
		ServicePrice:   service.Price,
		ClientName:     req.ClientName,
		Notes:          req.Notes,
	}

	created, err := uc.appointmentRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create override appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created override appointment id=%d, tank=%d",
		created.ID, created.TankID)

	return toResponse(created), nil
}

// toResponse конвертирует доменную модель в response
func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:             appt.ID,
		ClientID:       appt.ClientID,
		ServiceID:      appt.ServiceID,
		TankID:         appt.TankID,
		StartTime:      appt.StartTime,
		EndTime:        appt.EndTime,
		CleanupMinutes: appt.CleanupMinutes,
		Status:         string(appt.Status),
		IsOverride:     appt.IsOverride,
		ServiceName:    appt.ServiceName,
		ServicePrice:   appt.ServicePrice,
		ClientName:     appt.ClientName,
		Notes:          appt.Notes,
		CreatedAt:      appt.CreatedAt,
		UpdatedAt:      appt.UpdatedAt,
	}
}

func findTank(tanks []*domain.Tank, id int64) *domain.Tank {
	for _, t := range tanks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
