package services

import (
	"context"
	"errors"
	"strings"

	"hotel-ops/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GuestInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	IdentityNo string
	ImageURL   string
}

func (in *GuestInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.IdentityNo = strings.TrimSpace(in.IdentityNo)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (in GuestInput) complete() bool {
	return in.FirstName != "" && in.LastName != "" && in.Email != "" &&
		in.Phone != "" && in.Address != "" && in.IdentityNo != ""
}

// GuestService manages guest records. Guests are never deleted: transactions
// keep referring to them.
type GuestService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewGuestService(db *gorm.DB, logger *zap.Logger) *GuestService {
	return &GuestService{DB: db, Logger: logger}
}

func (s *GuestService) Create(ctx context.Context, in GuestInput) (*models.Guest, error) {
	in.normalize()
	if !in.complete() {
		return nil, ValidationError("Invalid data")
	}

	guest := models.Guest{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		IdentityNo: in.IdentityNo,
		ImageURL:   in.ImageURL,
	}
	if err := s.DB.WithContext(ctx).Create(&guest).Error; err != nil {
		return nil, surface(s.Logger, "An error occurred while creating the guest", err)
	}

	s.Logger.Info("guest created", zap.Uint("guest_id", guest.ID))
	return &guest, nil
}

// List returns guests newest first.
func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.WithContext(ctx).Order("id DESC").Find(&guests).Error; err != nil {
		return nil, surface(s.Logger, "Failed to fetch guests", err)
	}
	return guests, nil
}

func (s *GuestService) Get(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Guest not found")
		}
		return nil, surface(s.Logger, "Failed to load guest", err, zap.Uint("guest_id", id))
	}
	return &guest, nil
}

// Update writes the non-empty fields of in.
func (s *GuestService) Update(ctx context.Context, id uint, in GuestInput) (*models.Guest, error) {
	in.normalize()

	fields := map[string]interface{}{}
	for column, value := range map[string]string{
		"first_name":  in.FirstName,
		"last_name":   in.LastName,
		"email":       in.Email,
		"phone":       in.Phone,
		"address":     in.Address,
		"identity_no": in.IdentityNo,
		"image_url":   in.ImageURL,
	} {
		if value != "" {
			fields[column] = value
		}
	}
	if len(fields) == 0 {
		return nil, ValidationError(MsgDataRequired)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, surface(s.Logger, "Failed to update guest", err, zap.Uint("guest_id", id))
	}

	s.Logger.Info("guest updated", zap.Uint("guest_id", id))
	return s.Get(ctx, id)
}
