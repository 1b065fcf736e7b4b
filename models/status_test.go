package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus(t *testing.T) {
	assert.True(t, TransactionPending.Active())
	assert.True(t, TransactionCheckedIn.Active())
	assert.False(t, TransactionCompleted.Active())
	assert.False(t, TransactionStatus("PEDNING").Valid())
	assert.ElementsMatch(t, []TransactionStatus{TransactionPending, TransactionCheckedIn}, ActiveTransactionStatuses)
}

func TestRoomStatusValid(t *testing.T) {
	for _, s := range []RoomStatus{RoomReady, RoomMaintenance, RoomCleaning} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, RoomStatus("Available").Valid())
}

func TestStaffEnums(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, StaffRole("admin").Valid())
	assert.True(t, PositionFrontDesk.Valid())
	assert.False(t, StaffPosition("").Valid())
	assert.True(t, Staff{Role: RoleAdmin}.IsAdmin())
}

func TestDateRangeOverlaps(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2024, time.January, day, hour, 0, 0, 0, time.UTC)
	}
	window := DateRange{Start: at(1, 10), End: at(2, 10)}

	t.Run("touching boundary is not overlap", func(t *testing.T) {
		assert.False(t, window.Overlaps(DateRange{Start: at(2, 10), End: at(3, 10)}))
		assert.False(t, DateRange{Start: at(2, 10), End: at(3, 10)}.Overlaps(window))
	})

	t.Run("check-in inside", func(t *testing.T) {
		assert.True(t, window.Overlaps(DateRange{Start: at(1, 12), End: at(5, 10)}))
	})

	t.Run("check-out inside", func(t *testing.T) {
		assert.True(t, window.Overlaps(DateRange{Start: at(1, 1), End: at(1, 11)}))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, window.Overlaps(DateRange{Start: at(1, 9), End: at(2, 11)}))
		assert.True(t, window.Overlaps(window))
	})

	t.Run("invalid window never overlaps", func(t *testing.T) {
		assert.False(t, DateRange{Start: at(2, 10), End: at(1, 10)}.Overlaps(window))
	})
}
