package services

import (
	"testing"

	"hotel-ops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	dash := NewDashboardService(f.db, zap.NewNop())
	dash.Now = f.clock.Now
	f.addRoom("R102", models.RoomReady)

	// paid yesterday: 12h at 100 per day
	f.db.Model(&f.roomType).Update("price", 100)
	past := f.book(f.room.ID, jan(9, 0, 0), jan(9, 12, 0))
	f.clock.Set(jan(9, 0, 0))
	_, err := f.transactions.CheckIn(f.ctx, past.ID)
	require.NoError(t, err)
	f.clock.Set(jan(9, 12, 0))
	res, err := f.transactions.CheckOut(f.ctx, past.ID)
	require.NoError(t, err)
	_, err = f.billing.MarkPaid(f.ctx, res.Bill.ID, models.PaymentCash)
	require.NoError(t, err)

	// paid today: 48h since the booked check-in
	today := f.book(f.room.ID, jan(8, 9, 0), jan(8, 10, 0))
	f.clock.Set(jan(10, 9, 0))
	res, err = f.transactions.CheckOut(f.ctx, today.ID)
	require.NoError(t, err)
	_, err = f.billing.MarkPaid(f.ctx, res.Bill.ID, models.PaymentCash)
	require.NoError(t, err)

	// one guest in house, one arrival due later today
	inHouse := f.book(f.room.ID, jan(10, 9, 0), jan(12, 9, 0))
	_, err = f.transactions.CheckIn(f.ctx, inHouse.ID)
	require.NoError(t, err)
	f.book(f.room.ID, jan(12, 9, 0), jan(13, 9, 0))
	other, err := f.store.FindRoomsByStatus(f.ctx, models.RoomReady)
	require.NoError(t, err)
	require.Len(t, other, 2)
	f.book(other[1].ID, jan(10, 15, 0), jan(11, 9, 0))

	sum, err := dash.Summary(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, RoomOccupancy{OccupiedRooms: 1, TotalRooms: 2, OccupancyRate: 50}, sum.Occupancy)
	assert.Equal(t, "200.00", sum.Revenue.DailyRevenue.StringFixed(2))
	assert.Equal(t, int64(300), sum.Revenue.ComparedToYesterday)
	assert.Equal(t, int64(1), sum.Guests.TotalGuests)
	assert.Equal(t, int64(1), sum.UpcomingCheckIns)
	assert.Len(t, sum.RecentTransactions, 5)
	assert.Equal(t, []RoomTypeShare{{Name: "Standard", Value: 2}}, sum.RoomTypes)
}

func TestDailyRevenueWithoutYesterday(t *testing.T) {
	f := newFixture(t)
	dash := NewDashboardService(f.db, zap.NewNop())
	dash.Now = f.clock.Now

	rev, err := dash.DailyRevenue(f.ctx)
	require.NoError(t, err)
	assert.True(t, rev.DailyRevenue.IsZero())
	assert.Equal(t, int64(100), rev.ComparedToYesterday)
}
