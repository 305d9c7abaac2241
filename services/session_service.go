package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WizardState is the explicit, serializable state threaded through the
// reservation wizard: the picked room and stay, then the picked guest. It
// carries its own expiry so an abandoned selection cannot be resumed days
// later.
type WizardState struct {
	RoomNumber   int       `json:"roomNumber"`
	StartOfStay  string    `json:"startOfStay"`
	LengthOfStay int       `json:"lengthOfStay"`
	GuestID      uint      `json:"guestId,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AvailabilityDefaults are the remembered criteria of the available-rooms
// search. Blank values fall back to today / one night / any type.
type AvailabilityDefaults struct {
	StartDate    string `json:"startDate"`
	LengthOfStay string `json:"lengthOfStay"`
	RoomType     string `json:"roomType"`
}

// ReservationListDefaults are the remembered reservation-list criteria.
// Initialized distinguishes "never filtered" from an explicitly cleared
// field, which is a valid criterion of its own.
type ReservationListDefaults struct {
	Initialized bool   `json:"initialized"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	LastName    string `json:"lastName"`
	RoomNumber  string `json:"roomNumber"`
}

type SearchDefaults struct {
	AvailableRooms AvailabilityDefaults    `json:"availableRooms"`
	Reservations   ReservationListDefaults `json:"reservations"`
}

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

func (s *SessionService) sessionTTL() time.Duration {
	return utils.EnvDuration("SESSION_TTL", 24*time.Hour)
}

func (s *SessionService) wizardTTL() time.Duration {
	return utils.EnvDuration("WIZARD_TTL", 30*time.Minute)
}

// Create opens a session for the staff member and returns it with a fresh
// token and expiry.
func (s *SessionService) Create(staffID uint) (models.Session, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.sessionTTL())
	session := models.Session{
		Token:     token,
		StaffID:   staffID,
		ExpiresAt: &expiresAt,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetByToken resolves a presented token to a live session. Expired sessions
// are deleted on sight.
func (s *SessionService) GetByToken(token string) (models.Session, error) {
	var session models.Session
	if err := s.DB.Preload("Staff").First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session, ErrSessionExpired
		}
		return session, fmt.Errorf("failed to load session: %w", err)
	}

	if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.DB.Delete(&models.Session{}, session.ID).Error
		return models.Session{}, ErrSessionExpired
	}
	return session, nil
}

func (s *SessionService) Delete(token string) error {
	if err := s.DB.Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// LoadSearchDefaults returns the stored defaults, zero-valued when none were
// saved yet or the stored JSON is unreadable.
func (s *SessionService) LoadSearchDefaults(session *models.Session) SearchDefaults {
	var defaults SearchDefaults
	if len(session.SearchDefaults) == 0 {
		return defaults
	}
	if err := json.Unmarshal(session.SearchDefaults, &defaults); err != nil {
		return SearchDefaults{}
	}
	return defaults
}

func (s *SessionService) SaveSearchDefaults(session *models.Session, defaults SearchDefaults) error {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to encode search defaults: %w", err)
	}
	session.SearchDefaults = datatypes.JSON(raw)
	if err := s.DB.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("search_defaults", session.SearchDefaults).Error; err != nil {
		return fmt.Errorf("failed to save search defaults: %w", err)
	}
	return nil
}

// SaveWizard stores the wizard state on the session, stamping the expiry.
func (s *SessionService) SaveWizard(session *models.Session, state WizardState) error {
	if state.ExpiresAt.IsZero() {
		state.ExpiresAt = time.Now().UTC().Add(s.wizardTTL())
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode wizard state: %w", err)
	}
	session.Wizard = datatypes.JSON(raw)
	if err := s.DB.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("wizard", session.Wizard).Error; err != nil {
		return fmt.Errorf("failed to save wizard state: %w", err)
	}
	return nil
}

// LoadWizard returns the pending wizard state. ErrNoWizard when none is
// stashed, ErrWizardExpired (and a cleared stash) when it outlived its TTL.
func (s *SessionService) LoadWizard(session *models.Session) (WizardState, error) {
	var state WizardState
	if len(session.Wizard) == 0 {
		return state, ErrNoWizard
	}
	if err := json.Unmarshal(session.Wizard, &state); err != nil {
		return state, fmt.Errorf("failed to decode wizard state: %w", err)
	}
	if !state.ExpiresAt.IsZero() && state.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.ClearWizard(session)
		return WizardState{}, ErrWizardExpired
	}
	return state, nil
}

func (s *SessionService) ClearWizard(session *models.Session) error {
	session.Wizard = nil
	if err := s.DB.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("wizard", nil).Error; err != nil {
		return fmt.Errorf("failed to clear wizard state: %w", err)
	}
	return nil
}
