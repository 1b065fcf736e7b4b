package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-ops/config"
	"hotel-ops/controllers"
	"hotel-ops/middleware"
	"hotel-ops/models"
	"hotel-ops/repository"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	testSecret        = "test-jwt-secret"
	testWebhookSecret = "whsec_test"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	now    time.Time

	admin  models.Staff
	member models.Staff
	guest  models.Guest
	room   models.Room
}

func newTestServer(t *testing.T, limiter *middleware.IPRateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	s := &testServer{t: t, db: db, now: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return s.now }

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	s.admin = models.Staff{Username: "admin", Email: "admin@hotel.local", FirstName: "Ada", LastName: "Admin",
		Password: hash, Role: models.RoleAdmin, Position: models.PositionManagement}
	s.member = models.Staff{Username: "desk", Email: "desk@hotel.local", FirstName: "Dee", LastName: "Desk",
		Password: hash, Role: models.RoleMember, Position: models.PositionFrontDesk}
	require.NoError(t, db.Create(&s.admin).Error)
	require.NoError(t, db.Create(&s.member).Error)

	s.guest = models.Guest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: "0800000000", Address: "1 Main St", IdentityNo: "ID-1"}
	require.NoError(t, db.Create(&s.guest).Error)

	rt := models.RoomType{Name: "Standard", Description: "Standard room", Capacity: 2,
		Price: decimal.NewFromInt(120), Amenities: datatypes.JSONSlice[string]{"Wi-Fi"}}
	require.NoError(t, db.Create(&rt).Error)
	s.room = models.Room{RoomNumber: "R101", Floor: 1, Status: models.RoomReady,
		Images: datatypes.JSONSlice[string]{"room.jpg"}, RoomTypeID: rt.ID, DateEffective: s.now}
	require.NoError(t, db.Omit(clause.Associations).Create(&s.room).Error)

	logger := zap.NewNop()
	store := repository.NewGormStore(db)
	cache := services.NewMemoryRoomCache(time.Minute)

	billing := services.NewBillingService(db, store, nil, logger)
	billing.Now = clock
	transactions := services.NewTransactionService(db, store, billing, logger)
	transactions.Now = clock
	rooms := services.NewRoomService(db, store, cache, logger)
	dashboard := services.NewDashboardService(db, logger)
	dashboard.Now = clock
	gateway := services.NewStripeGateway(services.StripeConfig{WebhookSecret: testWebhookSecret})

	if limiter == nil {
		limiter = middleware.NewIPRateLimiter(6000, 100, time.Minute)
	}

	s.router = SetupRouter(Controllers{
		Rooms:        controllers.NewRoomController(rooms, services.NewAvailabilityService(store, logger)),
		RoomTypes:    controllers.NewRoomTypeController(services.NewRoomTypeService(db, store, cache, logger)),
		Guests:       controllers.NewGuestController(services.NewGuestService(db, logger)),
		Transactions: controllers.NewTransactionController(transactions),
		Bills:        controllers.NewBillController(billing),
		Staff:        controllers.NewStaffController(services.NewStaffService(db, logger, testSecret)),
		Dashboard:    controllers.NewDashboardController(dashboard),
		Webhook:      controllers.NewWebhookController(gateway, billing),
	}, Options{
		JWTSecret:   testSecret,
		RateLimiter: limiter,
		Logger:      logger,
	})
	return s
}

func (s *testServer) token(staff models.Staff) string {
	s.t.Helper()
	tok, err := utils.GenerateToken(testSecret, staff.ID, string(staff.Role), time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestLoginAndAuth(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "desk", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, env = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "DESK@hotel.local", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	w, _ = s.do(http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/rooms", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/api/rooms", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "R101", rooms[0].RoomNumber)

	w, env = s.do(http.MethodGet, "/api/staff/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.Staff
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, s.member.ID, me.ID)
}

func TestAdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	body := gin.H{"roomNumber": "R102", "floor": 1, "status": "READY", "images": []string{"a.jpg"}, "roomTypeId": s.room.RoomTypeID}

	w, env := s.do(http.MethodPost, "/api/rooms", s.token(s.member), body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, services.MsgUnauthorized, env.Message)

	w, _ = s.do(http.MethodGet, "/api/staff", s.token(s.member), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodPost, "/api/rooms", s.token(s.admin), body)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	w, env = s.do(http.MethodPost, "/api/rooms", s.token(s.admin), body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestAvailableRooms(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.token(s.member)

	w, env := s.do(http.MethodGet, "/api/rooms/available?start=2024-01-12&end=2024-01-11", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.MsgCheckInBeforeCheckOut, env.Message)

	w, _ = s.do(http.MethodGet, "/api/rooms/available?start=tomorrow&end=2024-01-11", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/api/transactions", tok, gin.H{
		"guestId": s.guest.ID, "roomId": s.room.ID,
		"checkIn": "2024-01-11T14:00:00Z", "checkOut": "2024-01-13T12:00:00Z", "totalPrice": "240",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(http.MethodGet, "/api/rooms/available?start=2024-01-12&end=2024-01-14", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	assert.Empty(t, rooms)

	w, env = s.do(http.MethodGet, "/api/rooms/available?start=2024-01-13T12:00:00Z&end=2024-01-14T12:00:00Z", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	assert.Len(t, rooms, 1)
}

func TestStayLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.token(s.member)

	w, env := s.do(http.MethodPost, "/api/transactions", tok, gin.H{
		"guestId": s.guest.ID, "roomId": s.room.ID,
		"checkIn": "2024-01-10T10:00:00Z", "checkOut": "2024-01-11T10:00:00Z", "totalPrice": 120,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var created models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, models.TransactionPending, created.Status)
	assert.Equal(t, s.member.ID, created.StaffID)

	w, env = s.do(http.MethodPost, "/api/transactions", tok, gin.H{
		"guestId": s.guest.ID, "roomId": s.room.ID,
		"checkIn": "2024-01-10T12:00:00Z", "checkOut": "2024-01-10T18:00:00Z", "totalPrice": 30,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.MsgRoomAlreadyBooked, env.Message)

	s.now = time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC)
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/transactions/%d/checkin", created.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 2h30m rounds up to 3 hours: 120 * 3 / 24 = 15.00
	s.now = time.Date(2024, time.January, 10, 12, 30, 0, 0, time.UTC)
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/transactions/%d/checkout", created.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, models.TransactionCompleted, result.Transaction.Status)
	assert.True(t, decimal.RequireFromString("15").Equal(result.Bill.TotalAmount), result.Bill.TotalAmount.String())
	assert.Equal(t, models.PaymentPending, result.Bill.PaymentStatus)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/transactions/%d/checkout", created.ID), tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.MsgTransactionCompleted, env.Message)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/bills/%d/pay", result.Bill.ID), tok, gin.H{"paymentMethod": "CARD"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.MsgCardPaymentUnavailable, env.Message)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/bills/%d/pay", result.Bill.ID), tok, gin.H{"paymentMethod": "CASH"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var paid services.PaymentResult
	require.NoError(t, json.Unmarshal(env.Data, &paid))
	assert.Equal(t, models.PaymentPaid, paid.Bill.PaymentStatus)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/bills/%d/pay", result.Bill.ID), tok, gin.H{"paymentMethod": "CASH"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.MsgBillAlreadyPaid, env.Message)

	w, _ = s.do(http.MethodGet, "/api/bills/export", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bills.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestTransactionNotFoundAndBadID(t *testing.T) {
	s := newTestServer(t, nil)
	tok := s.token(s.member)

	w, env := s.do(http.MethodGet, "/api/transactions/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, services.MsgTransactionNotFound, env.Message)

	w, _ = s.do(http.MethodGet, "/api/transactions/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodGet, "/api/transactions?status=LOST", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookConfirmsPayment(t *testing.T) {
	s := newTestServer(t, nil)

	tx := models.Transaction{GuestID: s.guest.ID, RoomID: s.room.ID, StaffID: s.member.ID,
		CheckIn: s.now, CheckOut: s.now.Add(time.Hour), TotalPrice: decimal.NewFromInt(5), Status: models.TransactionCompleted}
	require.NoError(t, s.db.Omit(clause.Associations).Create(&tx).Error)
	bill := models.Bill{TransactionID: tx.ID, TotalAmount: decimal.NewFromInt(5), PaymentStatus: models.PaymentPending, BillDate: s.now}
	require.NoError(t, s.db.Omit(clause.Associations).Create(&bill).Error)

	payload := fmt.Sprintf(`{"id":"evt_1","object":"event","type":"checkout.session.completed",
		"data":{"object":{"id":"cs_1","object":"checkout.session","metadata":{"billId":"%d"}}}}`, bill.ID)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})

	send := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/stripe", bytes.NewReader(signed.Payload))
		req.Header.Set("Stripe-Signature", header)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, send("t=1,v1=deadbeef").Code)

	w := send(signed.Header)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Bill
	require.NoError(t, s.db.First(&stored, bill.ID).Error)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	require.NotNil(t, stored.PaymentMethod)
	assert.Equal(t, models.PaymentCard, *stored.PaymentMethod)

	// redelivery is harmless
	assert.Equal(t, http.StatusOK, send(signed.Header).Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, middleware.NewIPRateLimiter(1, 1, time.Minute))

	w, _ := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "desk", "password": "password123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "desk", "password": "password123"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, env.Success)
}
