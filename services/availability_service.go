package services

import (
	"context"

	"hotel-ops/models"
	"hotel-ops/repository"

	"go.uber.org/zap"
)

// AvailabilityService answers "which rooms are free for this window".
type AvailabilityService struct {
	Store  repository.Store
	Logger *zap.Logger
}

func NewAvailabilityService(store repository.Store, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{Store: store, Logger: logger}
}

// FindOverlapping returns the active (PENDING / CHECKED_IN) transactions whose
// stay intersects window, optionally for a single room, oldest check-in first.
// An empty or inverted window yields no transactions.
func (s *AvailabilityService) FindOverlapping(ctx context.Context, window models.DateRange, roomID *uint) ([]models.Transaction, error) {
	list, err := findOverlapping(ctx, s.Store, window, roomID)
	if err != nil {
		s.Logger.Error("failed to query overlapping transactions", zap.Error(err))
		return nil, DependencyError("Failed to load transactions", err)
	}
	return list, nil
}

// AvailableRooms returns the READY rooms, with their type, that have no
// active transaction intersecting window at the time of the call.
func (s *AvailabilityService) AvailableRooms(ctx context.Context, window models.DateRange) ([]models.Room, error) {
	rooms, err := availableRooms(ctx, s.Store, window)
	if err != nil {
		s.Logger.Error("failed to resolve available rooms",
			zap.Time("start", window.Start), zap.Time("end", window.End), zap.Error(err))
		return nil, DependencyError("Failed to load available rooms", err)
	}
	return rooms, nil
}

func findOverlapping(ctx context.Context, st repository.Store, window models.DateRange, roomID *uint) ([]models.Transaction, error) {
	if !window.Valid() {
		return []models.Transaction{}, nil
	}
	return st.FindTransactionsByStatusAndWindow(ctx, models.ActiveTransactionStatuses, window.UTC(), roomID)
}

// availableRooms runs against whichever store it is handed, so the create
// path can re-validate inside its own atomic scope.
func availableRooms(ctx context.Context, st repository.Store, window models.DateRange) ([]models.Room, error) {
	overlapping, err := findOverlapping(ctx, st, window, nil)
	if err != nil {
		return nil, err
	}

	ready, err := st.FindRoomsByStatus(ctx, models.RoomReady)
	if err != nil {
		return nil, err
	}

	booked := make(map[uint]struct{}, len(overlapping))
	for _, t := range overlapping {
		booked[t.RoomID] = struct{}{}
	}

	out := make([]models.Room, 0, len(ready))
	for _, room := range ready {
		if _, taken := booked[room.ID]; taken {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}
