package services

import (
	"context"
	"errors"
	"time"

	"hotel-ops/models"
	"hotel-ops/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateTransactionInput is a booking request from the front desk.
type CreateTransactionInput struct {
	GuestID    uint
	RoomID     uint
	StaffID    uint
	CheckIn    time.Time
	CheckOut   time.Time
	TotalPrice decimal.Decimal
}

// CheckoutResult is the completed transaction and the bill raised for it.
type CheckoutResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Bill        *models.Bill        `json:"bill"`
}

// TransactionFilter narrows List.
type TransactionFilter struct {
	Status  models.TransactionStatus
	GuestID uint
	RoomID  uint
}

// TransactionService drives a booking through PENDING -> CHECKED_IN -> COMPLETED.
type TransactionService struct {
	DB      *gorm.DB
	Store   repository.Store
	Billing *BillingService
	Logger  *zap.Logger
	Now     func() time.Time

	// StrictCheckIn rejects check-in unless the booking is still PENDING.
	// Off by default: repeated check-ins refresh the arrival time.
	StrictCheckIn bool
}

func NewTransactionService(db *gorm.DB, store repository.Store, billing *BillingService, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		DB:      db,
		Store:   store,
		Billing: billing,
		Logger:  logger,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func validateCreate(in CreateTransactionInput) error {
	if in.GuestID == 0 || in.RoomID == 0 || in.StaffID == 0 || in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return ValidationError(MsgDataRequired)
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return ValidationError(MsgCheckInBeforeCheckOut)
	}
	if !in.TotalPrice.IsPositive() {
		return ValidationError(MsgInvalidPrice)
	}
	return nil
}

// Create books a READY room for [CheckIn, CheckOut). The room row is locked
// and availability re-checked in the same database transaction as the insert,
// so two overlapping bookings for one room cannot both succeed.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	window := models.DateRange{Start: in.CheckIn, End: in.CheckOut}.UTC()

	var created *models.Transaction
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		room, err := st.LockRoom(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return NotFoundError(MsgRoomNotFound)
		}
		if room.Status != models.RoomReady {
			return ConflictError(MsgRoomNotAvailable)
		}

		free, err := availableRooms(ctx, st, window)
		if err != nil {
			return err
		}
		if !containsRoom(free, room.ID) {
			return ConflictError(MsgRoomAlreadyBooked)
		}

		t := &models.Transaction{
			GuestID:    in.GuestID,
			RoomID:     in.RoomID,
			StaffID:    in.StaffID,
			CheckIn:    window.Start,
			CheckOut:   window.End,
			TotalPrice: in.TotalPrice.Round(2),
			Status:     models.TransactionPending,
		}
		if err := st.InsertTransaction(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, surface(s.Logger, "Failed to create transaction", err, zap.Uint("room_id", in.RoomID))
	}

	s.Logger.Info("transaction created",
		zap.Uint("transaction_id", created.ID),
		zap.Uint("room_id", created.RoomID),
		zap.Time("check_in", created.CheckIn),
		zap.Time("check_out", created.CheckOut),
	)
	return created, nil
}

func containsRoom(rooms []models.Room, id uint) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}

// CheckIn marks the guest as arrived and resets checkIn to now.
func (s *TransactionService) CheckIn(ctx context.Context, id uint) (*models.Transaction, error) {
	var updated *models.Transaction
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		t, err := st.FindTransactionByID(ctx, id, true)
		if err != nil {
			return err
		}
		if t == nil {
			return NotFoundError(MsgTransactionNotFound)
		}
		switch t.Status {
		case models.TransactionCompleted:
			return ConflictError(MsgTransactionCompleted)
		case models.TransactionCheckedIn:
			if s.StrictCheckIn {
				return ConflictError(MsgAlreadyCheckedIn)
			}
			s.Logger.Warn("re-applying check-in, arrival time will be reset", zap.Uint("transaction_id", id))
		}

		updated, err = st.UpdateTransaction(ctx, id, map[string]interface{}{
			"status":   models.TransactionCheckedIn,
			"check_in": s.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, surface(s.Logger, "Failed to check in", err, zap.Uint("transaction_id", id))
	}

	s.Logger.Info("guest checked in", zap.Uint("transaction_id", id), zap.Time("check_in", updated.CheckIn))
	return updated, nil
}

// CheckOut completes the stay: the price is recomputed from the hours since
// the stored checkIn, the transaction is COMPLETED and a PENDING bill raised.
// All of it commits or none of it does.
func (s *TransactionService) CheckOut(ctx context.Context, id uint) (*CheckoutResult, error) {
	now := s.Now().UTC()

	var result CheckoutResult
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		t, err := st.FindTransactionByID(ctx, id, true)
		if err != nil {
			return err
		}
		if t == nil {
			return NotFoundError(MsgTransactionNotFound)
		}
		if t.Status == models.TransactionCompleted {
			return ConflictError(MsgTransactionCompleted)
		}

		price, err := s.priceForStay(ctx, st, t.RoomID, t.CheckIn, now)
		if err != nil {
			return err
		}

		updated, err := st.UpdateTransaction(ctx, id, map[string]interface{}{
			"status":      models.TransactionCompleted,
			"check_out":   now,
			"total_price": price,
		})
		if err != nil {
			return err
		}

		bill, err := s.Billing.OnCheckout(ctx, st, id, price)
		if err != nil {
			return err
		}

		result = CheckoutResult{Transaction: updated, Bill: bill}
		return nil
	})
	if err != nil {
		return nil, surface(s.Logger, "Failed to check out", err, zap.Uint("transaction_id", id))
	}

	s.Logger.Info("guest checked out",
		zap.Uint("transaction_id", id),
		zap.Uint("bill_id", result.Bill.ID),
		zap.String("total", result.Transaction.TotalPrice.StringFixed(2)),
	)
	return &result, nil
}

// priceForStay prorates the room type's 24-hour rate over the stay.
func (s *TransactionService) priceForStay(ctx context.Context, st repository.Store, roomID uint, from, to time.Time) (decimal.Decimal, error) {
	room, err := st.FindRoomByID(ctx, roomID)
	if err != nil {
		return decimal.Zero, err
	}
	if room == nil {
		return decimal.Zero, NotFoundError(MsgRoomNotFound)
	}
	rt, err := st.FindRoomTypeByID(ctx, room.RoomTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	if rt == nil {
		return decimal.Zero, NotFoundError(MsgRoomTypeNotFound)
	}
	return ProratedPrice(rt.Price, ElapsedHours(from, to)), nil
}

// Delete removes a booking that has not started yet.
func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		t, err := st.FindTransactionByID(ctx, id, true)
		if err != nil {
			return err
		}
		if t == nil {
			return NotFoundError(MsgTransactionNotFound)
		}
		switch t.Status {
		case models.TransactionCheckedIn:
			return ConflictError(MsgBookingInProgress)
		case models.TransactionCompleted:
			return ConflictError(MsgTransactionCompleted)
		}
		return st.DeleteTransaction(ctx, id)
	})
	if err != nil {
		return surface(s.Logger, "Failed to delete transaction", err, zap.Uint("transaction_id", id))
	}

	s.Logger.Info("transaction deleted", zap.Uint("transaction_id", id))
	return nil
}

// Quote is the price the booking form pre-fills for a planned stay.
func (s *TransactionService) Quote(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	if roomID == 0 || checkIn.IsZero() || checkOut.IsZero() {
		return decimal.Zero, ValidationError(MsgDataRequired)
	}
	if !checkIn.Before(checkOut) {
		return decimal.Zero, ValidationError(MsgCheckInBeforeCheckOut)
	}
	price, err := s.priceForStay(ctx, s.Store, roomID, checkIn, checkOut)
	if err != nil {
		return decimal.Zero, surface(s.Logger, "Failed to quote stay", err, zap.Uint("room_id", roomID))
	}
	return price, nil
}

func (s *TransactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.DB.WithContext(ctx).Preload("Guest").Preload("Room.RoomType").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(MsgTransactionNotFound)
		}
		return nil, surface(s.Logger, "Failed to load transaction", err, zap.Uint("transaction_id", id))
	}
	return &t, nil
}

// List returns transactions newest first.
func (s *TransactionService) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	q := s.DB.WithContext(ctx).Preload("Guest").Preload("Room.RoomType").Order("created_at DESC")
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, ValidationError("Unknown transaction status")
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.GuestID != 0 {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}

	var list []models.Transaction
	if err := q.Find(&list).Error; err != nil {
		return nil, surface(s.Logger, "Failed to fetch transactions", err)
	}
	return list, nil
}
