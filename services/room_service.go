package services

import (
	"errors"
	"fmt"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) List() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("RoomType").Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(roomNumber int) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, "room_number = ?", roomNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrNotFound
		}
		return room, fmt.Errorf("failed to load room %d: %w", roomNumber, err)
	}
	return room, nil
}

func (s *RoomService) Create(room *models.Room) error {
	if room.RoomTypeCode != nil {
		var rt models.RoomType
		if err := s.DB.First(&rt, "code = ?", *room.RoomTypeCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomHasNoType
			}
			return fmt.Errorf("failed to check room type %s: %w", *room.RoomTypeCode, err)
		}
	}

	if err := s.DB.Omit(clause.Associations).Create(room).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *RoomService) Update(room *models.Room) error {
	if err := s.DB.Omit(clause.Associations).Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room %d: %w", room.RoomNumber, err)
	}
	return nil
}

// Delete removes a room; reservations that pointed at it keep their row with
// the room reference nulled.
func (s *RoomService) Delete(roomNumber int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reservation{}).
			Where("room_number = ?", roomNumber).
			Update("room_number", nil).Error; err != nil {
			return fmt.Errorf("failed to detach reservations for room %d: %w", roomNumber, err)
		}

		result := tx.Delete(&models.Room{}, "room_number = ?", roomNumber)
		if result.Error != nil {
			return fmt.Errorf("failed to delete room %d: %w", roomNumber, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
