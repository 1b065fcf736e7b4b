package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-ops/models"
	"hotel-ops/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type CreateStaffInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.StaffRole
	Position  models.StaffPosition
	ImageURL  string
}

type UpdateStaffInput struct {
	Username  string
	FirstName string
	LastName  string
	Role      models.StaffRole
	Position  models.StaffPosition
	// Password is changed only when non-empty.
	Password string
}

// LoginResult is a signed token and the staff member it belongs to.
type LoginResult struct {
	Token string        `json:"token"`
	Staff *models.Staff `json:"staff"`
}

// StaffService keeps the hotel's staff accounts. Admin accounts cannot be
// edited or deleted through it.
type StaffService struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	JWTSecret string
	TokenTTL  time.Duration
}

func NewStaffService(db *gorm.DB, logger *zap.Logger, jwtSecret string) *StaffService {
	return &StaffService{DB: db, Logger: logger, JWTSecret: jwtSecret, TokenTTL: 24 * time.Hour}
}

func (s *StaffService) List(ctx context.Context, caller Caller) ([]models.Staff, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	var staff []models.Staff
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&staff).Error; err != nil {
		return nil, surface(s.Logger, "Failed to fetch staff", err)
	}
	return staff, nil
}

func (s *StaffService) Get(ctx context.Context, caller Caller, id uint) (*models.Staff, error) {
	if !caller.IsAdmin && caller.StaffID != id {
		return nil, UnauthorizedError(MsgUnauthorized)
	}
	return s.find(ctx, id)
}

func (s *StaffService) find(ctx context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := s.DB.WithContext(ctx).First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Staff not found")
		}
		return nil, surface(s.Logger, "Failed to load staff", err, zap.Uint("staff_id", id))
	}
	return &staff, nil
}

func (s *StaffService) Create(ctx context.Context, caller Caller, in CreateStaffInput) (*models.Staff, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, ValidationError(MsgDataRequired)
	}
	if len(in.Password) < minPasswordLength {
		return nil, ValidationError("Password must be at least 8 characters")
	}
	if !in.Role.Valid() {
		return nil, ValidationError("Role must be org:admin or org:member")
	}
	if !in.Position.Valid() {
		return nil, ValidationError("Unknown staff position")
	}
	if in.Username == "" {
		in.Username = in.Email
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, surface(s.Logger, "Failed to create staff", err)
	}

	staff := models.Staff{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
		Role:      in.Role,
		Position:  in.Position,
		ImageURL:  strings.TrimSpace(in.ImageURL),
	}
	if err := s.DB.WithContext(ctx).Create(&staff).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, ConflictError("Username or email already in use")
		}
		return nil, surface(s.Logger, "Failed to create staff", err)
	}

	s.Logger.Info("staff created", zap.Uint("staff_id", staff.ID), zap.String("role", string(staff.Role)))
	return &staff, nil
}

func (s *StaffService) Update(ctx context.Context, caller Caller, id uint, in UpdateStaffInput) (*models.Staff, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Username == "" || in.FirstName == "" || in.LastName == "" {
		return nil, ValidationError(MsgDataRequired)
	}
	if !in.Role.Valid() || !in.Position.Valid() {
		return nil, ValidationError("Unknown role or position")
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsAdmin() {
		return nil, UnauthorizedError("Admin accounts cannot be modified")
	}

	fields := map[string]interface{}{
		"username":   in.Username,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"role":       in.Role,
		"position":   in.Position,
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, ValidationError("Password must be at least 8 characters")
		}
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, surface(s.Logger, "Failed to update staff", err)
		}
		fields["password"] = hash
	}

	if err := s.DB.WithContext(ctx).Model(&models.Staff{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, ConflictError("Username or email already in use")
		}
		return nil, surface(s.Logger, "Failed to update staff", err, zap.Uint("staff_id", id))
	}

	s.Logger.Info("staff updated", zap.Uint("staff_id", id))
	return s.find(ctx, id)
}

func (s *StaffService) Delete(ctx context.Context, caller Caller, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsAdmin() {
		return UnauthorizedError("Admin accounts cannot be deleted")
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Staff{}, id).Error; err != nil {
		return surface(s.Logger, "Failed to delete staff", err, zap.Uint("staff_id", id))
	}

	s.Logger.Info("staff deleted", zap.Uint("staff_id", id))
	return nil
}

// Login checks a username (or email) and password and issues a JWT.
func (s *StaffService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ValidationError("username and password required")
	}

	var staff models.Staff
	err := s.DB.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, UnauthorizedError("invalid credentials")
		}
		return nil, surface(s.Logger, "Failed to sign in", err)
	}
	if !utils.CheckPassword(staff.Password, password) {
		s.Logger.Warn("failed login", zap.String("login", login))
		return nil, UnauthorizedError("invalid credentials")
	}

	token, err := utils.GenerateToken(s.JWTSecret, staff.ID, string(staff.Role), s.TokenTTL)
	if err != nil {
		return nil, surface(s.Logger, "Failed to generate token", err)
	}

	s.Logger.Info("staff signed in", zap.Uint("staff_id", staff.ID))
	return &LoginResult{Token: token, Staff: &staff}, nil
}
