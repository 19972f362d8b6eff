package services

import (
	"errors"
	"strings"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAdminSelfRegister  = errors.New("admin accounts cannot be self-registered")
	ErrGSTRequired        = errors.New("GST number is required for dealers")
	ErrDistrictRequired   = errors.New("district is required")
)

type RegisterUserInput struct {
	Email     string
	Password  string
	FullName  string
	Role      models.Role
	District  string
	City      string
	Address   string
	GSTNumber string
}

// RegisterUser creates a participant. The very first account becomes the admin.
func RegisterUser(in RegisterUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existingUser models.User
	result := database.DB.Where("email = ?", email).First(&existingUser)
	if result.Error == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	var userCount int64
	if err := database.DB.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleContractor
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if userCount == 0 {
		role = models.RoleAdmin
	} else if role == models.RoleAdmin {
		return nil, ErrAdminSelfRegister
	}
	if role != models.RoleAdmin && strings.TrimSpace(in.District) == "" {
		return nil, ErrDistrictRequired
	}
	if role == models.RoleDealer && strings.TrimSpace(in.GSTNumber) == "" {
		return nil, ErrGSTRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FullName:  strings.TrimSpace(in.FullName),
		Role:      role,
		District:  strings.TrimSpace(in.District),
		City:      strings.TrimSpace(in.City),
		Address:   strings.TrimSpace(in.Address),
		GSTNumber: strings.ToUpper(strings.TrimSpace(in.GSTNumber)),
		ShortCode: newShortCode(),
	}

	if err := database.DB.Create(user).Error; err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// EnsureAdminUser creates the admin account if no user with email exists.
// It reports whether a new account was created.
func EnsureAdminUser(email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var adminUser models.User
	err := database.DB.Where("email = ?", email).First(&adminUser).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	adminUser = models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FullName:  "Administrator",
		Role:      models.RoleAdmin,
		ShortCode: newShortCode(),
	}
	if err := database.DB.Create(&adminUser).Error; err != nil {
		return false, err
	}
	return true, nil
}

// newShortCode returns a human-readable member code such as TC3F9A1B.
func newShortCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "TC" + strings.ToUpper(id[:6])
}
