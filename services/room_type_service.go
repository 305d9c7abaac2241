package services

import (
	"errors"
	"fmt"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) List() ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.Order("code").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

func (s *RoomTypeService) Get(code string) (models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.First(&rt, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rt, ErrNotFound
		}
		return rt, fmt.Errorf("failed to load room type %s: %w", code, err)
	}
	return rt, nil
}

func (s *RoomTypeService) Create(rt *models.RoomType) error {
	if err := s.DB.Create(rt).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create room type: %w", err)
	}
	return nil
}

func (s *RoomTypeService) Update(rt *models.RoomType) error {
	if err := s.DB.Save(rt).Error; err != nil {
		return fmt.Errorf("failed to update room type %s: %w", rt.Code, err)
	}
	return nil
}

// Delete removes a room type and detaches the rooms that used it; the rooms
// themselves stay.
func (s *RoomTypeService) Delete(code string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).
			Where("room_type_code = ?", code).
			Update("room_type_code", nil).Error; err != nil {
			return fmt.Errorf("failed to detach rooms of type %s: %w", code, err)
		}

		result := tx.Delete(&models.RoomType{}, "code = ?", code)
		if result.Error != nil {
			return fmt.Errorf("failed to delete room type %s: %w", code, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
