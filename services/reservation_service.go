package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

func (s *ReservationService) List(f ReservationFilter) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := f.Apply(s.DB.Model(&models.Reservation{})).
		Preload("Guest").
		Preload("Room.RoomType").
		Order("reservations.start_of_stay, reservations.id").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *ReservationService) Get(id uint) (models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.
		Preload("Guest").
		Preload("Room.RoomType").
		First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation, ErrNotFound
		}
		return reservation, fmt.Errorf("failed to load reservation %d: %w", id, err)
	}
	return reservation, nil
}

// Quote returns the total price for a stay: the room's nightly type rate
// times the number of nights. The result is stored on the reservation at
// creation and never recomputed, so later rate changes only affect new
// bookings.
func (s *ReservationService) Quote(roomNumber int, nights int) (float64, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, "room_number = ?", roomNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to load room %d for quote: %w", roomNumber, err)
	}
	if room.RoomType == nil {
		return 0, ErrRoomHasNoType
	}
	if nights <= 0 {
		nights = 1
	}
	return room.RoomType.Price * float64(nights), nil
}

// BuildDraft assembles the prefilled reservation presented for confirmation:
// status Reserved, nothing paid, party of one, quoted price, reserved-at now.
func (s *ReservationService) BuildDraft(guestID uint, roomNumber int, startOfStay time.Time, nights int) (models.Reservation, error) {
	var draft models.Reservation

	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return draft, ErrNotFound
		}
		return draft, fmt.Errorf("failed to load guest %d for draft: %w", guestID, err)
	}

	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, "room_number = ?", roomNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return draft, ErrNotFound
		}
		return draft, fmt.Errorf("failed to load room %d for draft: %w", roomNumber, err)
	}
	if room.RoomType == nil {
		return draft, ErrRoomHasNoType
	}

	if nights <= 0 {
		nights = 1
	}

	draft = models.Reservation{
		GuestID:        &guest.ID,
		RoomNumber:     &room.RoomNumber,
		ReservedAt:     time.Now(),
		Price:          room.RoomType.Price * float64(nights),
		AmountPaid:     0,
		NumberOfGuests: 1,
		StartOfStay:    startOfStay,
		LengthOfStay:   nights,
		StatusCode:     models.StatusReserved,
		Guest:          &guest,
		Room:           &room,
	}
	return draft, nil
}

// VerifyGuest confirms the guest row exists so a reservation is never written
// with a dangling guest reference.
func (s *ReservationService) VerifyGuest(guestID uint) error {
	var guest models.Guest
	if err := s.DB.Select("id").First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load guest %d: %w", guestID, err)
	}
	return nil
}

// VerifyRoom confirms the room row exists. Unlike Quote it does not require a
// room type, so it covers submissions that carry their own price.
func (s *ReservationService) VerifyRoom(roomNumber int) error {
	var room models.Room
	if err := s.DB.Select("room_number").First(&room, "room_number = ?", roomNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load room %d: %w", roomNumber, err)
	}
	return nil
}

func (s *ReservationService) Create(reservation *models.Reservation) error {
	if err := s.DB.Omit(clause.Associations).Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (s *ReservationService) Update(reservation *models.Reservation) error {
	if err := s.DB.Omit(clause.Associations).Save(reservation).Error; err != nil {
		return fmt.Errorf("failed to update reservation %d: %w", reservation.ID, err)
	}
	return nil
}

func (s *ReservationService) Delete(id uint) error {
	result := s.DB.Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
