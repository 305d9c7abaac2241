package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	Sessions *SessionService
}

func NewAuthService(db *gorm.DB, sessions *SessionService) *AuthService {
	return &AuthService{DB: db, Sessions: sessions}
}

// Login checks the credentials and opens a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (models.Session, models.Staff, error) {
	username = strings.TrimSpace(username)

	var staff models.Staff
	if err := s.DB.Where("username = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, models.Staff{}, ErrInvalidCredentials
		}
		return models.Session{}, models.Staff{}, fmt.Errorf("failed to look up staff: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)) != nil {
		return models.Session{}, models.Staff{}, ErrInvalidCredentials
	}

	session, err := s.Sessions.Create(staff.ID)
	if err != nil {
		return models.Session{}, models.Staff{}, err
	}
	return session, staff, nil
}

func (s *AuthService) Logout(token string) error {
	return s.Sessions.Delete(token)
}

// HasCapability reports whether any of the staff member's roles carries the
// capability. Handlers ask about capabilities, never about role names.
func (s *AuthService) HasCapability(staffID uint, capability string) (bool, error) {
	var count int64
	if err := s.DB.Table("role_capabilities").
		Joins("JOIN role_members ON role_members.role_id = role_capabilities.role_id").
		Where("role_members.staff_id = ? AND role_capabilities.capability = ?", staffID, capability).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check capability %s: %w", capability, err)
	}
	return count > 0, nil
}
