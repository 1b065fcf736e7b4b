package services

import (
	"context"
	"errors"
	"strings"

	"hotel-ops/models"
	"hotel-ops/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomTypeInput struct {
	Name        string
	Description string
	Capacity    int
	Price       decimal.Decimal
	Amenities   []string
}

func (in *RoomTypeInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Description == "" || len(in.Amenities) == 0 {
		return ValidationError(MsgDataRequired)
	}
	if in.Capacity <= 0 {
		return ValidationError("Capacity must be greater than zero")
	}
	if !in.Price.IsPositive() {
		return ValidationError("Price must be greater than zero")
	}
	in.Price = in.Price.Round(2)
	return nil
}

type RoomTypeService struct {
	DB     *gorm.DB
	Store  repository.Store
	Cache  RoomCache
	Logger *zap.Logger
}

func NewRoomTypeService(db *gorm.DB, store repository.Store, cache RoomCache, logger *zap.Logger) *RoomTypeService {
	return &RoomTypeService{DB: db, Store: store, Cache: cache, Logger: logger}
}

// List returns room types, most recently changed first.
func (s *RoomTypeService) List(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("updated_at DESC").Find(&types).Error; err != nil {
		return nil, surface(s.Logger, "Failed to fetch room types", err)
	}
	return types, nil
}

func (s *RoomTypeService) Get(ctx context.Context, id uint) (*models.RoomType, error) {
	rt, err := s.Store.FindRoomTypeByID(ctx, id)
	if err != nil {
		return nil, surface(s.Logger, "Failed to load room type", err, zap.Uint("room_type_id", id))
	}
	if rt == nil {
		return nil, NotFoundError(MsgRoomTypeNotFound)
	}
	return rt, nil
}

func (s *RoomTypeService) Create(ctx context.Context, caller Caller, in RoomTypeInput) (*models.RoomType, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	rt := models.RoomType{
		Name:        in.Name,
		Description: in.Description,
		Capacity:    in.Capacity,
		Price:       in.Price,
		Amenities:   datatypes.JSONSlice[string](in.Amenities),
	}
	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		return nil, surface(s.Logger, "Failed to create room type", err)
	}

	s.Logger.Info("room type created", zap.Uint("room_type_id", rt.ID), zap.String("name", rt.Name))
	return &rt, nil
}

// Update replaces every field of a room type. Cached room listings embed the
// type, so they are dropped.
func (s *RoomTypeService) Update(ctx context.Context, caller Caller, id uint, in RoomTypeInput) (*models.RoomType, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Model(&models.RoomType{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"capacity":    in.Capacity,
		"price":       in.Price,
		"amenities":   datatypes.JSONSlice[string](in.Amenities),
	}).Error
	if err != nil {
		return nil, surface(s.Logger, "Failed to update room type", err, zap.Uint("room_type_id", id))
	}

	s.invalidate(ctx)
	s.Logger.Info("room type updated", zap.Uint("room_type_id", id))
	return s.Get(ctx, id)
}

// Delete removes a room type no room refers to.
func (s *RoomTypeService) Delete(ctx context.Context, caller Caller, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RoomType
		if err := tx.First(&rt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError(MsgRoomTypeNotFound)
			}
			return err
		}
		var inUse int64
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ConflictError("Room type is still assigned to rooms")
		}
		return tx.Delete(&rt).Error
	})
	if err != nil {
		return surface(s.Logger, "Failed to delete room type", err, zap.Uint("room_type_id", id))
	}

	s.invalidate(ctx)
	s.Logger.Info("room type deleted", zap.Uint("room_type_id", id))
	return nil
}

func (s *RoomTypeService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Warn("room cache invalidation failed", zap.Error(err))
	}
}
