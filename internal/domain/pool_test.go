package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTank(id int64, name string) *Tank {
	return &Tank{ID: id, Name: name, Active: true, Status: TankStatusFree}
}

func testAppointment(tankID int64, status AppointmentStatus, startH, startM, endH, endM, cleanup int) *Appointment {
	return &Appointment{
		TankID:         tankID,
		StartTime:      at(startH, startM),
		EndTime:        at(endH, endM),
		CleanupMinutes: cleanup,
		Status:         status,
	}
}

func TestBuildOccupancy(t *testing.T) {
	appointments := []*Appointment{
		testAppointment(1, StatusConfirmed, 10, 0, 11, 0, 15),
		testAppointment(1, StatusCancelled, 12, 0, 13, 0, 15),
		testAppointment(2, StatusPending, 14, 0, 15, 0, 15),
		testAppointment(2, StatusNoShow, 16, 0, 17, 0, 15),
		testAppointment(3, StatusCompleted, 9, 0, 10, 0, 15),
	}

	occupancy := BuildOccupancy(appointments, DefaultBlockingStatuses)

	// Отменённые и no_show записи не занимают танк
	require.Len(t, occupancy[1], 1)
	require.Len(t, occupancy[2], 1)
	require.Len(t, occupancy[3], 1)

	// Занятый интервал включает уборку
	assert.Equal(t, at(10, 0), occupancy[1][0].Start)
	assert.Equal(t, at(11, 15), occupancy[1][0].End)
}

func TestTankOccupancy_IsTankFree(t *testing.T) {
	appointments := []*Appointment{
		testAppointment(1, StatusConfirmed, 10, 0, 11, 0, 15),
	}
	occupancy := BuildOccupancy(appointments, DefaultBlockingStatuses)

	tests := []struct {
		name      string
		candidate Interval
		free      bool
	}{
		{"before the session", between(8, 0, 9, 0), true},
		{"overlapping the session", between(10, 30, 11, 30), false},
		{"starting inside the cleanup buffer", between(11, 0, 12, 0), false},
		{"starting exactly when cleanup ends", between(11, 15, 12, 15), true},
		{"ending exactly at session start", between(9, 0, 10, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.free, occupancy.IsTankFree(1, tt.candidate))
		})
	}

	// Танк без записей всегда свободен
	assert.True(t, occupancy.IsTankFree(99, between(10, 0, 11, 0)))
}

func TestTankOccupancy_FindFreeTank(t *testing.T) {
	tanks := []*Tank{
		testTank(2, "Tank 2"),
		testTank(1, "Tank 1"),
		testTank(3, "Tank 3"),
	}

	t.Run("returns first free tank in id order", func(t *testing.T) {
		occupancy := TankOccupancy{}
		found := occupancy.FindFreeTank(tanks, between(10, 0, 11, 0))
		require.NotNil(t, found)
		assert.Equal(t, int64(1), found.ID)
	})

	t.Run("skips busy tanks", func(t *testing.T) {
		occupancy := BuildOccupancy([]*Appointment{
			testAppointment(1, StatusConfirmed, 10, 0, 11, 0, 15),
		}, DefaultBlockingStatuses)

		found := occupancy.FindFreeTank(tanks, between(10, 0, 11, 0))
		require.NotNil(t, found)
		assert.Equal(t, int64(2), found.ID)
	})

	t.Run("deterministic across repeated runs", func(t *testing.T) {
		occupancy := BuildOccupancy([]*Appointment{
			testAppointment(1, StatusConfirmed, 10, 0, 11, 0, 15),
		}, DefaultBlockingStatuses)

		for i := 0; i < 20; i++ {
			found := occupancy.FindFreeTank(tanks, between(10, 0, 11, 0))
			require.NotNil(t, found)
			assert.Equal(t, int64(2), found.ID)
		}
	})

	t.Run("nil when all tanks busy", func(t *testing.T) {
		occupancy := BuildOccupancy([]*Appointment{
			testAppointment(1, StatusConfirmed, 10, 0, 11, 0, 15),
			testAppointment(2, StatusPending, 10, 0, 11, 0, 15),
			testAppointment(3, StatusCompleted, 10, 0, 11, 0, 15),
		}, DefaultBlockingStatuses)

		assert.Nil(t, occupancy.FindFreeTank(tanks, between(10, 30, 11, 30)))
	})

	t.Run("maintenance tank is never offered", func(t *testing.T) {
		broken := testTank(1, "Tank 1")
		broken.Status = TankStatusMaintenance

		occupancy := TankOccupancy{}
		found := occupancy.FindFreeTank([]*Tank{broken, testTank(2, "Tank 2")}, between(10, 0, 11, 0))
		require.NotNil(t, found)
		assert.Equal(t, int64(2), found.ID)
	})

	t.Run("inactive tank is never offered", func(t *testing.T) {
		inactive := testTank(1, "Tank 1")
		inactive.Active = false

		occupancy := TankOccupancy{}
		found := occupancy.FindFreeTank([]*Tank{inactive}, between(10, 0, 11, 0))
		assert.Nil(t, found)
	})

	t.Run("in_session tank is bookable for a later window", func(t *testing.T) {
		busyNow := testTank(1, "Tank 1")
		busyNow.Status = TankStatusInSession

		occupancy := TankOccupancy{}
		found := occupancy.FindFreeTank([]*Tank{busyNow}, between(18, 0, 19, 0))
		require.NotNil(t, found)
		assert.Equal(t, int64(1), found.ID)
	})
}

func TestTank_Bookable(t *testing.T) {
	tests := []struct {
		name     string
		active   bool
		status   TankStatus
		bookable bool
	}{
		{"active and free", true, TankStatusFree, true},
		{"active in session", true, TankStatusInSession, true},
		{"active cleaning", true, TankStatusCleaning, true},
		{"active night mode", true, TankStatusNightMode, true},
		{"active standby", true, TankStatusStandby, true},
		{"active in maintenance", true, TankStatusMaintenance, false},
		{"inactive", false, TankStatusFree, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank := &Tank{ID: 1, Active: tt.active, Status: tt.status}
			assert.Equal(t, tt.bookable, tank.Bookable())
		})
	}
}
