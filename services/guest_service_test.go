package services

import (
	"errors"
	"testing"

	"hotel-frontdesk/models"
)

func TestDeleteGuestDetachesReservations(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")
	guest := seedGuest(t, db, "John", "Smith", "AB1 2CD")
	reservation := seedReservation(t, db, guest.ID, 101, date(t, "2025-06-01"), 2)

	if err := svc.Delete(guest.ID); err != nil {
		t.Fatalf("delete guest: %v", err)
	}

	if _, err := svc.Get(guest.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("guest still loadable after delete: %v", err)
	}

	var kept models.Reservation
	if err := db.First(&kept, reservation.ID).Error; err != nil {
		t.Fatalf("reservation row should survive guest deletion: %v", err)
	}
	if kept.GuestID != nil {
		t.Errorf("guest reference not nulled, got %v", *kept.GuestID)
	}
}

func TestDeleteGuestNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	if err := svc.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
