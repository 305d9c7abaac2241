package services

import (
	"errors"
	"fmt"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) List(f GuestFilter) ([]models.Guest, error) {
	var guests []models.Guest
	if err := f.Apply(s.DB.Model(&models.Guest{})).
		Order("last_name, first_name").
		Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) Get(id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return guest, ErrNotFound
		}
		return guest, fmt.Errorf("failed to load guest %d: %w", id, err)
	}
	return guest, nil
}

func (s *GuestService) Create(guest *models.Guest) error {
	if err := s.DB.Create(guest).Error; err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}
	return nil
}

func (s *GuestService) Update(guest *models.Guest) error {
	if err := s.DB.Save(guest).Error; err != nil {
		return fmt.Errorf("failed to update guest %d: %w", guest.ID, err)
	}
	return nil
}

// Delete removes a guest. Reservations referencing the guest keep their row
// with the guest reference nulled, so booking history survives.
func (s *GuestService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reservation{}).
			Where("guest_id = ?", id).
			Update("guest_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach reservations for guest %d: %w", id, err)
		}

		result := tx.Delete(&models.Guest{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete guest %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
