package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	appointmentRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/appointment"
	serviceRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/servicecatalog"
	tankRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/tank"
	"github.com/voidfloat/FLT-SchedulingService/pkg/ptr"
)

// --- Моки ---

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	createErr    error
	created      *domain.Appointment
	nextID       int64
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	stored := *appt
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.created = &stored
	return &stored, nil
}

func (m *mockAppointmentRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range m.appointments {
		if filter.DayStart != nil && filter.DayEnd != nil {
			window := domain.Interval{Start: *filter.DayStart, End: *filter.DayEnd}
			if !window.Overlaps(a.OccupiedInterval()) {
				continue
			}
		}
		result = append(result, a)
	}
	return result, nil
}

type mockServiceRepo struct {
	services map[int64]*domain.Service
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if svc, ok := m.services[id]; ok {
		return svc, nil
	}
	return nil, serviceRepo.ErrServiceNotFound
}

type mockTankRepo struct {
	tanks []*domain.Tank
}

func (m *mockTankRepo) GetByID(ctx context.Context, id int64) (*domain.Tank, error) {
	for _, t := range m.tanks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, tankRepo.ErrTankNotFound
}

func (m *mockTankRepo) ListActive(ctx context.Context) ([]*domain.Tank, error) {
	return m.tanks, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Вспомогательные функции ---

// Дата в будущем, чтобы проверка "не в прошлом" проходила на реальных часах
func at(hour, min int) time.Time {
	return time.Date(2030, 6, 10, hour, min, 0, 0, time.UTC)
}

func floatService() *domain.Service {
	return &domain.Service{
		ID:                  1,
		Name:                "Float 60",
		DurationMinutes:     60,
		SetupCleanupMinutes: 15,
		Price:               9500,
		Active:              true,
	}
}

func confirmedAppointment(tankID int64, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{
		TankID:         tankID,
		StartTime:      start,
		EndTime:        end,
		CleanupMinutes: 15,
		Status:         domain.StatusConfirmed,
	}
}

type testEnv struct {
	uc        *UseCase
	apptRepo  *mockAppointmentRepo
	txManager *fakeTxManager
}

func newTestEnv(appts []*domain.Appointment, tanks []*domain.Tank) *testEnv {
	apptRepo := &mockAppointmentRepo{appointments: appts}
	txManager := &fakeTxManager{}
	uc := NewUseCase(
		apptRepo,
		&mockServiceRepo{services: map[int64]*domain.Service{1: floatService()}},
		&mockTankRepo{tanks: tanks},
		txManager,
		domain.DefaultScheduleConfig(),
		nopLogger{},
	)
	return &testEnv{uc: uc, apptRepo: apptRepo, txManager: txManager}
}

func twoFreeTanks() []*domain.Tank {
	return []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
		{ID: 2, Name: "Tank 2", Active: true, Status: domain.TankStatusFree},
	}
}

// --- Тесты ---

func TestExecute_AutoAssign(t *testing.T) {
	env := newTestEnv(nil, twoFreeTanks())

	resp, err := env.uc.Execute(context.Background(), &Request{
		ClientID:   42,
		ServiceID:  1,
		StartTime:  at(10, 0),
		ClientName: "Anna",
	})
	require.NoError(t, err)

	// Свободны оба - выбирается танк с меньшим ID
	assert.Equal(t, int64(1), resp.TankID)
	assert.Equal(t, at(10, 0), resp.StartTime)
	assert.Equal(t, at(11, 0), resp.EndTime)
	assert.Equal(t, 15, resp.CleanupMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.IsOverride)

	// Денормализация услуги и клиента
	assert.Equal(t, "Float 60", resp.ServiceName)
	assert.Equal(t, int64(9500), resp.ServicePrice)
	assert.Equal(t, "Anna", resp.ClientName)

	// Вставка прошла в транзакции
	assert.Equal(t, 1, env.txManager.calls)
}

func TestExecute_AutoAssignSkipsBusyTank(t *testing.T) {
	// Танк 1 занят 10:00-11:00 (+15 минут уборки)
	appts := []*domain.Appointment{
		confirmedAppointment(1, at(10, 0), at(11, 0)),
	}
	env := newTestEnv(appts, twoFreeTanks())

	resp, err := env.uc.Execute(context.Background(), &Request{
		ClientID:   42,
		ServiceID:  1,
		StartTime:  at(10, 0),
		ClientName: "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TankID)
}

func TestExecute_CleanupBlocksNextSlot(t *testing.T) {
	appts := []*domain.Appointment{
		confirmedAppointment(1, at(10, 0), at(11, 0)),
	}

	t.Run("start inside cleanup is rejected", func(t *testing.T) {
		env := newTestEnv(appts, twoFreeTanks()[:1])

		_, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(11, 0),
			ClientName: "Anna",
		})
		assert.ErrorIs(t, err, ErrNoTankAvailable)
	})

	t.Run("start exactly at cleanup end is accepted", func(t *testing.T) {
		env := newTestEnv(appts, twoFreeTanks()[:1])

		resp, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(11, 15),
			ClientName: "Anna",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TankID)
	})

	t.Run("own cleanup must not cross next session", func(t *testing.T) {
		// Существующая запись 12:00-13:00; новая сессия 10:45-11:45
		// закончилась бы вовремя, но её уборка идёт до 12:00 - это допустимо
		// (интервалы касаются), а старт 10:46 уже конфликтует
		later := []*domain.Appointment{
			confirmedAppointment(1, at(12, 0), at(13, 0)),
		}

		env := newTestEnv(later, twoFreeTanks()[:1])
		resp, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 45),
			ClientName: "Anna",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TankID)

		env = newTestEnv(later, twoFreeTanks()[:1])
		_, err = env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 46),
			ClientName: "Anna",
		})
		assert.ErrorIs(t, err, ErrNoTankAvailable)
	})
}

func TestExecute_ExplicitTank(t *testing.T) {
	appts := []*domain.Appointment{
		confirmedAppointment(1, at(10, 0), at(11, 0)),
	}

	t.Run("free explicit tank is kept", func(t *testing.T) {
		env := newTestEnv(appts, twoFreeTanks())

		resp, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 0),
			TankID:     ptr.Ptr(int64(2)),
			ClientName: "Anna",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.TankID)
	})

	t.Run("busy explicit tank is rejected", func(t *testing.T) {
		env := newTestEnv(appts, twoFreeTanks())

		_, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 0),
			TankID:     ptr.Ptr(int64(1)),
			ClientName: "Anna",
		})
		assert.ErrorIs(t, err, ErrTankUnavailable)
	})

	t.Run("maintenance tank is rejected", func(t *testing.T) {
		tanks := []*domain.Tank{
			{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusMaintenance},
		}
		env := newTestEnv(nil, tanks)

		_, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 0),
			TankID:     ptr.Ptr(int64(1)),
			ClientName: "Anna",
		})
		assert.ErrorIs(t, err, ErrTankUnavailable)
	})

	t.Run("unknown tank", func(t *testing.T) {
		env := newTestEnv(nil, twoFreeTanks())

		_, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 0),
			TankID:     ptr.Ptr(int64(99)),
			ClientName: "Anna",
		})
		assert.ErrorIs(t, err, ErrTankNotFound)
	})
}

func TestExecute_Override(t *testing.T) {
	appts := []*domain.Appointment{
		confirmedAppointment(1, at(10, 0), at(11, 0)),
	}

	t.Run("bypasses occupancy checks", func(t *testing.T) {
		env := newTestEnv(appts, twoFreeTanks())

		resp, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 0),
			TankID:     ptr.Ptr(int64(1)),
			ClientName: "Anna",
			Override:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TankID)
		assert.True(t, resp.IsOverride)
		assert.True(t, env.apptRepo.created.IsOverride)

		// Без проверки занятости транзакция не нужна
		assert.Equal(t, 0, env.txManager.calls)
	})

	t.Run("bypasses business hours", func(t *testing.T) {
		env := newTestEnv(nil, twoFreeTanks())

		resp, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(23, 0),
			TankID:     ptr.Ptr(int64(1)),
			ClientName: "Anna",
			Override:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, at(23, 0), resp.StartTime)
	})

	t.Run("requires explicit tank", func(t *testing.T) {
		env := newTestEnv(nil, twoFreeTanks())

		_, err := env.uc.Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 0),
			ClientName: "Anna",
			Override:   true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_ConstraintViolationAtCommit(t *testing.T) {
	// Проверка в памяти прошла, но конкурирующая транзакция успела первой:
	// репозиторий возвращает ошибку exclusion constraint
	env := newTestEnv(nil, twoFreeTanks())
	env.apptRepo.createErr = appointmentRepo.ErrTankOccupied

	_, err := env.uc.Execute(context.Background(), &Request{
		ClientID:   42,
		ServiceID:  1,
		StartTime:  at(10, 0),
		ClientName: "Anna",
	})
	assert.ErrorIs(t, err, ErrTankUnavailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv(nil, twoFreeTanks())

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			"zero client",
			&Request{ServiceID: 1, StartTime: at(10, 0)},
			ErrInvalidInput,
		},
		{
			"zero service",
			&Request{ClientID: 42, StartTime: at(10, 0)},
			ErrInvalidInput,
		},
		{
			"zero start time",
			&Request{ClientID: 42, ServiceID: 1},
			ErrInvalidInput,
		},
		{
			"start in the past",
			&Request{ClientID: 42, ServiceID: 1, StartTime: time.Date(2000, 1, 1, 10, 0, 0, 0, time.UTC)},
			ErrStartTimeInPast,
		},
		{
			"before opening",
			&Request{ClientID: 42, ServiceID: 1, StartTime: at(7, 0)},
			ErrOutsideBusinessHours,
		},
		{
			"session crosses closing",
			&Request{ClientID: 42, ServiceID: 1, StartTime: at(21, 30)},
			ErrOutsideBusinessHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SessionEndingAtClosingIsAllowed(t *testing.T) {
	env := newTestEnv(nil, twoFreeTanks())

	// Услуга 60 минут, закрытие в 22:00: старт в 21:00 заканчивается
	// ровно в закрытие, уборка может идти после
	resp, err := env.uc.Execute(context.Background(), &Request{
		ClientID:   42,
		ServiceID:  1,
		StartTime:  at(21, 0),
		ClientName: "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, at(22, 0), resp.EndTime)
}

func TestExecute_ServiceErrors(t *testing.T) {
	env := newTestEnv(nil, twoFreeTanks())

	t.Run("unknown service", func(t *testing.T) {
		_, err := env.uc.Execute(context.Background(), &Request{
			ClientID:  42,
			ServiceID: 99,
			StartTime: at(10, 0),
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		inactive := floatService()
		inactive.Active = false

		uc := NewUseCase(
			&mockAppointmentRepo{},
			&mockServiceRepo{services: map[int64]*domain.Service{1: inactive}},
			&mockTankRepo{tanks: twoFreeTanks()},
			&fakeTxManager{},
			domain.DefaultScheduleConfig(),
			nopLogger{},
		)

		_, err := uc.Execute(context.Background(), &Request{
			ClientID:  42,
			ServiceID: 1,
			StartTime: at(10, 0),
		})
		assert.ErrorIs(t, err, ErrServiceInactive)
	})
}

func TestExecute_SnapshotUsesScheduleZoneDay(t *testing.T) {
	// Танк 1 занят 10 июня 19:00-20:00 UTC
	appts := []*domain.Appointment{
		confirmedAppointment(1, at(19, 0), at(20, 0)),
	}
	env := newTestEnv(appts, twoFreeTanks())

	// Тот же момент, записанный со смещением +10:00, - по стенным часам
	// это уже 11 июня. Снапшот занятости должен грузиться за день
	// в зоне расписания, иначе конфликт с танком 1 не будет замечен
	offset := time.FixedZone("UTC+10", 10*60*60)
	start := time.Date(2030, 6, 11, 5, 0, 0, 0, offset)
	require.True(t, start.Equal(at(19, 0)))

	resp, err := env.uc.Execute(context.Background(), &Request{
		ClientID:   42,
		ServiceID:  1,
		StartTime:  start,
		ClientName: "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TankID)
}

func TestExecute_DefaultCleanupWhenServiceHasNone(t *testing.T) {
	noBuffer := floatService()
	noBuffer.SetupCleanupMinutes = 0

	newEnv := func(appts []*domain.Appointment) *UseCase {
		return NewUseCase(
			&mockAppointmentRepo{appointments: appts},
			&mockServiceRepo{services: map[int64]*domain.Service{1: noBuffer}},
			&mockTankRepo{tanks: twoFreeTanks()[:1]},
			&fakeTxManager{},
			domain.DefaultScheduleConfig(),
			nopLogger{},
		)
	}

	next := []*domain.Appointment{
		confirmedAppointment(1, at(12, 0), at(13, 0)),
	}

	t.Run("configured buffer blocks the next session", func(t *testing.T) {
		// Блокирующий интервал 11:00-12:15 налезает на запись в 12:00
		_, err := newEnv(next).Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(11, 0),
			ClientName: "Anna",
		})
		assert.ErrorIs(t, err, ErrNoTankAvailable)
	})

	t.Run("configured buffer is denormalized onto the appointment", func(t *testing.T) {
		// Блокирующий интервал 10:45-12:00 лишь касается записи в 12:00
		resp, err := newEnv(next).Execute(context.Background(), &Request{
			ClientID:   42,
			ServiceID:  1,
			StartTime:  at(10, 45),
			ClientName: "Anna",
		})
		require.NoError(t, err)
		assert.Equal(t, 15, resp.CleanupMinutes)
	})
}
