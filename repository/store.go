// Package repository is the persistence boundary the booking engine talks to.
package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-ops/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the set of entity-store operations the booking engine needs.
// Lookups that find nothing return (nil, nil).
type Store interface {
	FindRoomsByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error)
	FindRoomByID(ctx context.Context, id uint) (*models.Room, error)
	LockRoom(ctx context.Context, id uint) (*models.Room, error)
	UpdateRoom(ctx context.Context, id uint, fields map[string]interface{}) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uint) error

	FindRoomTypeByID(ctx context.Context, id uint) (*models.RoomType, error)

	FindTransactionsByStatusAndWindow(ctx context.Context, statuses []models.TransactionStatus, window models.DateRange, roomID *uint) ([]models.Transaction, error)
	FindTransactionsByRoom(ctx context.Context, roomID uint, statuses []models.TransactionStatus) ([]models.Transaction, error)
	FindTransactionByID(ctx context.Context, id uint, forUpdate bool) (*models.Transaction, error)
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, id uint, fields map[string]interface{}) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error

	FindBillByID(ctx context.Context, id uint, forUpdate bool) (*models.Bill, error)
	FindBillByTransaction(ctx context.Context, transactionID uint) (*models.Bill, error)
	InsertBill(ctx context.Context, b *models.Bill) error
	UpdateBill(ctx context.Context, id uint, fields map[string]interface{}) (*models.Bill, error)

	// Atomic runs fn inside one database transaction. The Store passed to fn
	// is bound to that transaction; returning an error rolls everything back.
	Atomic(ctx context.Context, fn func(Store) error) error
}

// GormStore implements Store on top of *gorm.DB.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

// first loads one row into dest, mapping record-not-found to (false, nil).
func first(q *gorm.DB, dest interface{}, id uint) (bool, error) {
	if err := q.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ---------------------------
// Rooms
// ---------------------------

func (s *GormStore) FindRoomsByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).
		Preload("RoomType").
		Where("status = ?", status).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to find rooms by status %s: %w", status, err)
	}
	return rooms, nil
}

func (s *GormStore) FindRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	ok, err := first(s.DB.WithContext(ctx).Preload("RoomType"), &room, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find room %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &room, nil
}

// LockRoom reads the room row with FOR UPDATE. Callers use it inside Atomic
// so concurrent writers touching the same room serialize on that row.
func (s *GormStore) LockRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	ok, err := first(s.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), &room, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock room %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (s *GormStore) UpdateRoom(ctx context.Context, id uint, fields map[string]interface{}) (*models.Room, error) {
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return s.FindRoomByID(ctx, id)
}

func (s *GormStore) DeleteRoom(ctx context.Context, id uint) error {
	if err := s.DB.WithContext(ctx).Delete(&models.Room{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}

func (s *GormStore) FindRoomTypeByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	ok, err := first(s.DB.WithContext(ctx), &rt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find room type %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &rt, nil
}

// ---------------------------
// Transactions
// ---------------------------

// FindTransactionsByStatusAndWindow returns transactions in one of statuses
// whose window intersects the given one: check-in in [start, end), check-out
// in (start, end], or the stay contains the whole window.
func (s *GormStore) FindTransactionsByStatusAndWindow(
	ctx context.Context,
	statuses []models.TransactionStatus,
	window models.DateRange,
	roomID *uint,
) ([]models.Transaction, error) {
	start, end := window.Start.UTC(), window.End.UTC()

	q := s.DB.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("Guest").
		Where("status IN ?", statuses).
		Where("((check_in >= ? AND check_in < ?) OR (check_out > ? AND check_out <= ?) OR (check_in <= ? AND check_out >= ?))",
			start, end,
			start, end,
			start, end,
		)
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}

	var list []models.Transaction
	if err := q.Order("check_in ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find overlapping transactions: %w", err)
	}
	return list, nil
}

func (s *GormStore) FindTransactionsByRoom(ctx context.Context, roomID uint, statuses []models.TransactionStatus) ([]models.Transaction, error) {
	var list []models.Transaction
	if err := s.DB.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, statuses).
		Order("check_in ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions for room %d: %w", roomID, err)
	}
	return list, nil
}

func (s *GormStore) FindTransactionByID(ctx context.Context, id uint, forUpdate bool) (*models.Transaction, error) {
	q := s.DB.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var t models.Transaction
	ok, err := first(q, &t, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *GormStore) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateTransaction(ctx context.Context, id uint, fields map[string]interface{}) (*models.Transaction, error) {
	if err := s.DB.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	return s.FindTransactionByID(ctx, id, false)
}

func (s *GormStore) DeleteTransaction(ctx context.Context, id uint) error {
	if err := s.DB.WithContext(ctx).Delete(&models.Transaction{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

// ---------------------------
// Bills
// ---------------------------

func (s *GormStore) FindBillByID(ctx context.Context, id uint, forUpdate bool) (*models.Bill, error) {
	q := s.DB.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var b models.Bill
	ok, err := first(q, &b, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *GormStore) FindBillByTransaction(ctx context.Context, transactionID uint) (*models.Bill, error) {
	var b models.Bill
	err := s.DB.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find bill for transaction %d: %w", transactionID, err)
	}
	return &b, nil
}

func (s *GormStore) InsertBill(ctx context.Context, b *models.Bill) error {
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateBill(ctx context.Context, id uint, fields map[string]interface{}) (*models.Bill, error) {
	if err := s.DB.WithContext(ctx).Model(&models.Bill{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update bill %d: %w", id, err)
	}
	return s.FindBillByID(ctx, id, false)
}
