package services

import (
	"errors"
	"testing"

	"hotel-frontdesk/models"
)

func TestCreateRoomRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	code := "ZZZ"
	room := models.Room{RoomNumber: 101, RoomTypeCode: &code}
	if err := svc.Create(&room); !errors.Is(err, ErrRoomHasNoType) {
		t.Errorf("expected ErrRoomHasNoType, got %v", err)
	}
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")

	code := "STD"
	room := models.Room{RoomNumber: 101, RoomTypeCode: &code}
	if err := svc.Create(&room); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteRoomDetachesReservations(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")
	guest := seedGuest(t, db, "John", "Smith", "AB1 2CD")
	reservation := seedReservation(t, db, guest.ID, 101, date(t, "2025-06-01"), 2)

	if err := svc.Delete(101); err != nil {
		t.Fatalf("delete room: %v", err)
	}

	var kept models.Reservation
	if err := db.First(&kept, reservation.ID).Error; err != nil {
		t.Fatalf("reservation row should survive room deletion: %v", err)
	}
	if kept.RoomNumber != nil {
		t.Errorf("room reference not nulled, got %v", *kept.RoomNumber)
	}
}
