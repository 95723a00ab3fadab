package get_daily_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	serviceRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/servicecatalog"
)

// --- Моки ---

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	calls        int
}

func (m *mockAppointmentRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.calls++
	return m.appointments, nil
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

func (m *mockTankRepo) ListActive(ctx context.Context) ([]*domain.Tank, error) {
	return m.tanks, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Вспомогательные функции ---

var testDay = time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, 11, 20, hour, min, 0, 0, time.UTC)
}

func floatService() *domain.Service {
	return &domain.Service{
		ID:                  1,
		Name:                "Float 60",
		DurationMinutes:     60,
		SetupCleanupMinutes: 15,
		Active:              true,
	}
}

func newTestUseCase(appts []*domain.Appointment, tanks []*domain.Tank) (*UseCase, *mockAppointmentRepo) {
	apptRepo := &mockAppointmentRepo{appointments: appts}
	return NewUseCase(
		apptRepo,
		&mockServiceRepo{services: map[int64]*domain.Service{1: floatService()}},
		&mockTankRepo{tanks: tanks},
		domain.DefaultScheduleConfig(),
		nopLogger{},
	), apptRepo
}

func slotAt(t *testing.T, slots []domain.TimeSlot, hour, min int) domain.TimeSlot {
	t.Helper()
	want := at(hour, min)
	for _, s := range slots {
		if s.StartTime.Equal(want) {
			return s
		}
	}
	t.Fatalf("slot %02d:%02d not found", hour, min)
	return domain.TimeSlot{}
}

// --- Тесты ---

func TestExecute_FullGrid(t *testing.T) {
	uc, _ := newTestUseCase(nil, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
	})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	// 08:00-22:00 с шагом 15 минут; услуга 60 минут - последний слот 21:00
	// (08:00..21:00 включительно = 53 слота)
	require.Len(t, resp.Slots, 53)

	first := resp.Slots[0]
	assert.Equal(t, at(8, 0), first.StartTime)
	assert.True(t, first.Available)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, at(21, 0), last.StartTime)

	// Сетка упорядочена по времени
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.Before(resp.Slots[i].StartTime))
	}
}

func TestExecute_CleanupBuffer(t *testing.T) {
	// Запись 10:00-11:00, уборка 15 минут - танк занят до 11:15
	appts := []*domain.Appointment{
		{
			TankID:         1,
			StartTime:      at(10, 0),
			EndTime:        at(11, 0),
			CleanupMinutes: 15,
			Status:         domain.StatusConfirmed,
		},
	}
	uc, _ := newTestUseCase(appts, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
	})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	// 11:00 попадает в уборку - недоступен
	blocked := slotAt(t, resp.Slots, 11, 0)
	assert.False(t, blocked.Available)
	assert.Equal(t, domain.ReasonBooked, blocked.Reason)

	// 11:15 начинается ровно в конце уборки - доступен
	free := slotAt(t, resp.Slots, 11, 15)
	assert.True(t, free.Available)
	require.NotNil(t, free.TankID)
	assert.Equal(t, int64(1), *free.TankID)

	// Слот, пересекающий сессию с конца, тоже недоступен
	assert.False(t, slotAt(t, resp.Slots, 9, 15).Available)
	// А заканчивающийся ровно в начале сессии - доступен
	assert.True(t, slotAt(t, resp.Slots, 9, 0).Available)
}

func TestExecute_SecondTankPicksUpSlack(t *testing.T) {
	appts := []*domain.Appointment{
		{
			TankID:         1,
			StartTime:      at(10, 0),
			EndTime:        at(11, 0),
			CleanupMinutes: 15,
			Status:         domain.StatusConfirmed,
		},
	}
	uc, _ := newTestUseCase(appts, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
		{ID: 2, Name: "Tank 2", Active: true, Status: domain.TankStatusFree},
	})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	// Во время чужой сессии свободен второй танк
	slot := slotAt(t, resp.Slots, 10, 0)
	assert.True(t, slot.Available)
	require.NotNil(t, slot.TankID)
	assert.Equal(t, int64(2), *slot.TankID)

	// В свободное время выбирается танк с меньшим ID
	early := slotAt(t, resp.Slots, 8, 0)
	require.NotNil(t, early.TankID)
	assert.Equal(t, int64(1), *early.TankID)
}

func TestExecute_CancelledFreesSlot(t *testing.T) {
	appts := []*domain.Appointment{
		{
			TankID:         1,
			StartTime:      at(10, 0),
			EndTime:        at(11, 0),
			CleanupMinutes: 15,
			Status:         domain.StatusCancelled,
		},
	}
	uc, _ := newTestUseCase(appts, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
	})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	assert.True(t, slotAt(t, resp.Slots, 10, 0).Available)
}

func TestExecute_NoTanks(t *testing.T) {
	tests := []struct {
		name  string
		tanks []*domain.Tank
	}{
		{"no tanks at all", nil},
		{
			"only maintenance tank",
			[]*domain.Tank{{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusMaintenance}},
		},
		{
			"only inactive tank",
			[]*domain.Tank{{ID: 1, Name: "Tank 1", Active: false, Status: domain.TankStatusFree}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(nil, tt.tanks)

			resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
			require.NoError(t, err)

			// Пустая сетка, а не сетка из недоступных слотов
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_ClosingTimeCutoff(t *testing.T) {
	uc, _ := newTestUseCase(nil, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
	})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	// Услуга 60 минут: слоты после 21:00 пересекли бы закрытие в 22:00
	// и не попадают в сетку даже при полностью свободных танках
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartTime.After(at(21, 0)),
			"slot %s must not be offered", slot.StartTime.Format(domain.TimeFormat))
	}
}

func TestExecute_Idempotent(t *testing.T) {
	appts := []*domain.Appointment{
		{
			TankID:         1,
			StartTime:      at(12, 0),
			EndTime:        at(13, 0),
			CleanupMinutes: 15,
			Status:         domain.StatusConfirmed,
		},
	}
	uc, _ := newTestUseCase(appts, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
		{ID: 2, Name: "Tank 2", Active: true, Status: domain.TankStatusFree},
	})

	first, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_ServiceErrors(t *testing.T) {
	uc, _ := newTestUseCase(nil, []*domain.Tank{
		{ID: 1, Name: "Tank 1", Active: true, Status: domain.TankStatusFree},
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDay})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDay})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_InactiveService(t *testing.T) {
	inactive := floatService()
	inactive.Active = false

	uc := NewUseCase(
		&mockAppointmentRepo{},
		&mockServiceRepo{services: map[int64]*domain.Service{1: inactive}},
		&mockTankRepo{tanks: []*domain.Tank{{ID: 1, Active: true, Status: domain.TankStatusFree}}},
		domain.DefaultScheduleConfig(),
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDay})
	assert.ErrorIs(t, err, ErrServiceInactive)
}
