package services

import (
	"errors"
	"testing"

	"hotel-frontdesk/models"
)

func TestQuoteMultipliesNightlyRateByNights(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")

	price, err := svc.Quote(101, 3)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if price != 300 {
		t.Errorf("Quote(101, 3) = %v, want 300", price)
	}
}

func TestQuoteClampsNightsToOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")

	price, err := svc.Quote(101, 0)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if price != 100 {
		t.Errorf("Quote(101, 0) = %v, want 100", price)
	}
}

func TestQuoteRoomWithoutTypeFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	seedRoom(t, db, 101, "")

	if _, err := svc.Quote(101, 2); !errors.Is(err, ErrRoomHasNoType) {
		t.Errorf("expected ErrRoomHasNoType, got %v", err)
	}
}

func TestBuildDraftPrefillsDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")
	guest := seedGuest(t, db, "John", "Smith", "AB1 2CD")

	draft, err := svc.BuildDraft(guest.ID, 101, date(t, "2025-06-01"), 3)
	if err != nil {
		t.Fatalf("build draft: %v", err)
	}

	if draft.StatusCode != models.StatusReserved {
		t.Errorf("status = %q, want %q", draft.StatusCode, models.StatusReserved)
	}
	if draft.Price != 300 {
		t.Errorf("price = %v, want 300", draft.Price)
	}
	if draft.AmountPaid != 0 {
		t.Errorf("amountPaid = %v, want 0", draft.AmountPaid)
	}
	if draft.NumberOfGuests != 1 {
		t.Errorf("numberOfGuests = %d, want 1", draft.NumberOfGuests)
	}
	if draft.ReservedAt.IsZero() {
		t.Error("reservedAt not stamped")
	}
	if draft.ID != 0 {
		t.Errorf("draft must not be persisted, got id %d", draft.ID)
	}
	if draft.Guest == nil || draft.Guest.ID != guest.ID {
		t.Errorf("guest not attached to draft: %+v", draft.Guest)
	}
	if draft.Room == nil || draft.Room.RoomNumber != 101 {
		t.Errorf("room not attached to draft: %+v", draft.Room)
	}
}

func TestBuildDraftUnknownGuestOrRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")
	guest := seedGuest(t, db, "John", "Smith", "AB1 2CD")

	if _, err := svc.BuildDraft(999, 101, date(t, "2025-06-01"), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown guest: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.BuildDraft(guest.ID, 999, date(t, "2025-06-01"), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown room: expected ErrNotFound, got %v", err)
	}
}

func TestStoredPriceSurvivesRateChange(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	seedRoomType(t, db, "STD", 100)
	seedRoom(t, db, 101, "STD")
	guest := seedGuest(t, db, "John", "Smith", "AB1 2CD")

	draft, err := svc.BuildDraft(guest.ID, 101, date(t, "2025-06-01"), 2)
	if err != nil {
		t.Fatalf("build draft: %v", err)
	}
	if err := svc.Create(&draft); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	if err := db.Model(&models.RoomType{}).Where("code = ?", "STD").Update("price", 500).Error; err != nil {
		t.Fatalf("update rate: %v", err)
	}

	stored, err := svc.Get(draft.ID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if stored.Price != 200 {
		t.Errorf("stored price = %v, want the original 200", stored.Price)
	}
}

func TestDeleteReservationNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	if err := svc.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
