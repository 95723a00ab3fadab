package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	appointmentRepo "github.com/voidfloat/FLT-SchedulingService/internal/infra/storage/appointment"
	"github.com/voidfloat/FLT-SchedulingService/internal/service/appointments/models"
	"github.com/voidfloat/FLT-SchedulingService/pkg/ptr"
)

// --- Моки ---

type mockRepo struct {
	appointments map[int64]*domain.Appointment
	gotFilter    domain.AppointmentsFilter

	updatedStatus *domain.AppointmentStatus
	cancelled     bool
	cancelReason  string
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := m.appointments[id]; ok {
		return a, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (m *mockRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.gotFilter = filter
	out := make([]*domain.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := m.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	m.updatedStatus = &status
	return nil
}

func (m *mockRepo) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	if _, ok := m.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	m.cancelled = true
	m.cancelReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Вспомогательные функции ---

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:             id,
		ClientID:       42,
		ServiceID:      1,
		TankID:         1,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		CleanupMinutes: 15,
		Status:         status,
		ServiceName:    "Float 60",
		ClientName:     "Anna",
	}
}

func newTestService(appts ...*domain.Appointment) (*Service, *mockRepo) {
	repo := &mockRepo{appointments: map[int64]*domain.Appointment{}}
	for _, a := range appts {
		repo.appointments[a.ID] = a
	}
	return NewService(repo, nopLogger{}), repo
}

// --- Тесты ---

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(testAppointment(7, domain.StatusConfirmed))

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, "Anna", resp.ClientName)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestGetClientAppointments(t *testing.T) {
	svc, repo := newTestService(testAppointment(1, domain.StatusConfirmed))

	t.Run("filters by client", func(t *testing.T) {
		resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{ClientID: 42})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		require.NotNil(t, repo.gotFilter.ClientID)
		assert.Equal(t, int64(42), *repo.gotFilter.ClientID)
		assert.Empty(t, repo.gotFilter.Statuses)
	})

	t.Run("status filter", func(t *testing.T) {
		_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
			ClientID: 42,
			Status:   ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		require.Len(t, repo.gotFilter.Statuses, 1)
		assert.Equal(t, domain.StatusConfirmed, repo.gotFilter.Statuses[0])
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
			ClientID: 42,
			Status:   ptr.Ptr("paused"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid client", func(t *testing.T) {
		_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{ClientID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("pending can be cancelled", func(t *testing.T) {
		svc, repo := newTestService(testAppointment(1, domain.StatusPending))

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CancellationReason: "client request"})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
		assert.Equal(t, "client request", repo.cancelReason)
	})

	t.Run("confirmed can be cancelled", func(t *testing.T) {
		svc, repo := newTestService(testAppointment(1, domain.StatusConfirmed))

		require.NoError(t, svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{}))
		assert.True(t, repo.cancelled)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		svc, repo := newTestService(testAppointment(1, domain.StatusCompleted))

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.False(t, repo.cancelled)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.Cancel(context.Background(), 99, &models.CancelAppointmentRequest{})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{"payment webhook confirms pending", domain.StatusPending, "confirmed", nil},
		{"confirmed session completes", domain.StatusConfirmed, "completed", nil},
		{"confirmed client no-show", domain.StatusConfirmed, "no_show", nil},
		{"pending no-show", domain.StatusPending, "no_show", nil},
		{"same status is a no-op", domain.StatusConfirmed, "confirmed", nil},
		{"completed is final", domain.StatusCompleted, "confirmed", ErrInvalidTransition},
		{"cancelled stays cancelled", domain.StatusCancelled, "confirmed", ErrInvalidTransition},
		{"cancel goes through Cancel", domain.StatusConfirmed, "cancelled", ErrInvalidTransition},
		{"unknown status", domain.StatusPending, "paused", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(testAppointment(1, tt.from))

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updatedStatus)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, repo.updatedStatus)
			assert.Equal(t, domain.AppointmentStatus(tt.to), *repo.updatedStatus)
		})
	}
}
