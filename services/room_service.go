package services

import (
	"context"
	"strings"
	"time"

	"hotel-ops/models"
	"hotel-ops/repository"
	"hotel-ops/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateRoomInput struct {
	RoomNumber string
	Floor      int
	Status     models.RoomStatus
	Images     []string
	RoomTypeID uint
}

// UpdateRoomInput holds the structural fields of a room; nil means unchanged.
type UpdateRoomInput struct {
	RoomNumber *string
	Floor      *int
	Status     *models.RoomStatus
	Images     []string
	RoomTypeID *uint
}

func (in UpdateRoomInput) empty() bool {
	return in.RoomNumber == nil && in.Floor == nil && in.Status == nil && in.Images == nil && in.RoomTypeID == nil
}

type RoomService struct {
	DB     *gorm.DB
	Store  repository.Store
	Cache  RoomCache
	Logger *zap.Logger
	Now    func() time.Time
}

func NewRoomService(db *gorm.DB, store repository.Store, cache RoomCache, logger *zap.Logger) *RoomService {
	return &RoomService{
		DB:     db,
		Store:  store,
		Cache:  cache,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns every room with its type, served from the cache when warm.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	if s.Cache != nil {
		rooms, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.Logger.Warn("room cache read failed", zap.Error(err))
		} else if ok {
			s.Logger.Debug("returning cached rooms", zap.Int("count", len(rooms)))
			return rooms, nil
		}
	}

	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, surface(s.Logger, "Failed to fetch rooms", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, rooms); err != nil {
			s.Logger.Warn("room cache write failed", zap.Error(err))
		}
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.Store.FindRoomByID(ctx, id)
	if err != nil {
		return nil, surface(s.Logger, "Failed to load room", err, zap.Uint("room_id", id))
	}
	if room == nil {
		return nil, NotFoundError(MsgRoomNotFound)
	}
	return room, nil
}

func (s *RoomService) Create(ctx context.Context, caller Caller, in CreateRoomInput) (*models.Room, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if in.RoomNumber == "" || in.RoomTypeID == 0 || len(in.Images) == 0 {
		return nil, ValidationError(MsgDataRequired)
	}
	if in.Floor < 1 {
		return nil, ValidationError("Floor must be at least 1")
	}
	if !in.Status.Valid() {
		return nil, ValidationError("Room status must be READY, MAINTENANCE or CLEANING")
	}

	rt, err := s.Store.FindRoomTypeByID(ctx, in.RoomTypeID)
	if err != nil {
		return nil, surface(s.Logger, "Failed to create room", err)
	}
	if rt == nil {
		return nil, NotFoundError(MsgRoomTypeNotFound)
	}

	room := models.Room{
		RoomNumber:    in.RoomNumber,
		Floor:         in.Floor,
		Status:        in.Status,
		Images:        datatypes.JSONSlice[string](in.Images),
		RoomTypeID:    in.RoomTypeID,
		DateEffective: s.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Omit("RoomType").Create(&room).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, ConflictError("Room number already exists")
		}
		return nil, surface(s.Logger, "Failed to create room", err)
	}
	room.RoomType = *rt

	s.invalidate(ctx)
	s.Logger.Info("room created", zap.Uint("room_id", room.ID), zap.String("room_number", room.RoomNumber))
	return &room, nil
}

// Update changes a room's structural fields. The room row is locked and the
// active-transaction check runs in the same database transaction as the write.
func (s *RoomService) Update(ctx context.Context, caller Caller, id uint, in UpdateRoomInput) (*models.Room, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, ValidationError(MsgDataRequired)
	}
	fields, err := roomUpdateFields(in)
	if err != nil {
		return nil, err
	}

	var updated *models.Room
	err = s.Store.Atomic(ctx, func(st repository.Store) error {
		if err := guardRoom(ctx, st, id); err != nil {
			return err
		}
		if in.RoomTypeID != nil {
			rt, err := st.FindRoomTypeByID(ctx, *in.RoomTypeID)
			if err != nil {
				return err
			}
			if rt == nil {
				return NotFoundError(MsgRoomTypeNotFound)
			}
		}
		updated, err = st.UpdateRoom(ctx, id, fields)
		return err
	})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, ConflictError("Room number already exists")
		}
		return nil, surface(s.Logger, "Failed to update room", err, zap.Uint("room_id", id))
	}

	s.invalidate(ctx)
	s.Logger.Info("room updated", zap.Uint("room_id", id))
	return updated, nil
}

// Delete removes a room under the same guard as Update.
func (s *RoomService) Delete(ctx context.Context, caller Caller, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		if err := guardRoom(ctx, st, id); err != nil {
			return err
		}
		return st.DeleteRoom(ctx, id)
	})
	if err != nil {
		return surface(s.Logger, "Failed to delete room", err, zap.Uint("room_id", id))
	}

	s.invalidate(ctx)
	s.Logger.Info("room deleted", zap.Uint("room_id", id))
	return nil
}

// guardRoom locks the room and fails while any active transaction holds it.
func guardRoom(ctx context.Context, st repository.Store, id uint) error {
	room, err := st.LockRoom(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return NotFoundError(MsgRoomNotFound)
	}
	active, err := st.FindTransactionsByRoom(ctx, id, models.ActiveTransactionStatuses)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return ConflictError(MsgRoomHasActiveBookings)
	}
	return nil
}

func roomUpdateFields(in UpdateRoomInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if in.RoomNumber != nil {
		n := strings.TrimSpace(*in.RoomNumber)
		if n == "" {
			return nil, ValidationError("Room number cannot be empty")
		}
		fields["room_number"] = n
	}
	if in.Floor != nil {
		if *in.Floor < 1 {
			return nil, ValidationError("Floor must be at least 1")
		}
		fields["floor"] = *in.Floor
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ValidationError("Room status must be READY, MAINTENANCE or CLEANING")
		}
		fields["status"] = *in.Status
	}
	if in.Images != nil {
		if len(in.Images) == 0 {
			return nil, ValidationError("At least one image is required")
		}
		fields["images"] = datatypes.JSONSlice[string](in.Images)
	}
	if in.RoomTypeID != nil {
		if *in.RoomTypeID == 0 {
			return nil, ValidationError(MsgDataRequired)
		}
		fields["room_type_id"] = *in.RoomTypeID
	}
	return fields, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Warn("room cache invalidation failed", zap.Error(err))
	}
}
