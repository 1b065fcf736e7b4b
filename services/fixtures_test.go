package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel-ops/config"
	"hotel-ops/models"
	"hotel-ops/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var admin = Caller{StaffID: 1, IsAdmin: true}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeGateway struct {
	calls []uint
	err   error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, bill *models.Bill) (*CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.calls = append(g.calls, bill.ID)
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB

	store   *repository.GormStore
	clock   *fakeClock
	gateway *fakeGateway
	cache   *MemoryRoomCache

	availability *AvailabilityService
	transactions *TransactionService
	billing      *BillingService
	rooms        *RoomService

	staff    models.Staff
	guest    models.Guest
	roomType models.RoomType
	room     models.Room
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newFixture builds the engine on an empty in-memory database holding one
// staff member, one guest and room R101 (READY) of a 120-per-day type.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	logger := zap.NewNop()

	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		db:      db,
		store:   repository.NewGormStore(db),
		clock:   &fakeClock{now: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)},
		gateway: &fakeGateway{},
		cache:   NewMemoryRoomCache(time.Minute),
	}

	f.availability = NewAvailabilityService(f.store, logger)
	f.billing = NewBillingService(db, f.store, f.gateway, logger)
	f.billing.Now = f.clock.Now
	f.transactions = NewTransactionService(db, f.store, f.billing, logger)
	f.transactions.Now = f.clock.Now
	f.rooms = NewRoomService(db, f.store, f.cache, logger)
	f.rooms.Now = f.clock.Now

	f.staff = models.Staff{Username: "desk", Email: "desk@hotel.local", FirstName: "Front", LastName: "Desk",
		Role: models.RoleMember, Position: models.PositionFrontDesk}
	require.NoError(t, db.Create(&f.staff).Error)

	f.guest = models.Guest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: "0800000000", Address: "1 Main St", IdentityNo: "ID-1"}
	require.NoError(t, db.Create(&f.guest).Error)

	f.roomType = f.addRoomType("Standard", 120)
	f.room = f.addRoom("R101", models.RoomReady)
	return f
}

func (f *fixture) addRoomType(name string, price int64) models.RoomType {
	f.t.Helper()
	rt := models.RoomType{Name: name, Description: name + " room", Capacity: 2,
		Price: decimal.NewFromInt(price), Amenities: datatypes.JSONSlice[string]{"Wi-Fi"}}
	require.NoError(f.t, f.db.Create(&rt).Error)
	return rt
}

func (f *fixture) addRoom(number string, status models.RoomStatus) models.Room {
	f.t.Helper()
	room := models.Room{RoomNumber: number, Floor: 1, Status: status,
		Images: datatypes.JSONSlice[string]{"room.jpg"}, RoomTypeID: f.roomType.ID, DateEffective: f.clock.Now()}
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(&room).Error)
	return room
}

func (f *fixture) book(roomID uint, checkIn, checkOut time.Time) *models.Transaction {
	f.t.Helper()
	tx, err := f.transactions.Create(f.ctx, f.input(roomID, checkIn, checkOut))
	require.NoError(f.t, err)
	return tx
}

func (f *fixture) input(roomID uint, checkIn, checkOut time.Time) CreateTransactionInput {
	return CreateTransactionInput{
		GuestID:    f.guest.ID,
		RoomID:     roomID,
		StaffID:    f.staff.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: decimal.NewFromInt(120),
	}
}

func (f *fixture) countTransactions() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&models.Transaction{}).Count(&n).Error)
	return n
}

func jan(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func requireKind(t *testing.T, err error, kind ErrorKind, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), err.Error())
	if msg != "" {
		require.Equal(t, msg, MessageOf(err))
	}
}
