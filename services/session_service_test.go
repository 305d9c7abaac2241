package services

import (
	"errors"
	"testing"
	"time"

	"hotel-frontdesk/models"

	"golang.org/x/crypto/bcrypt"
)

func newTestStaff(t *testing.T, svc *SessionService, username string) models.Staff {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	staff := models.Staff{FullName: "Test Staff", Username: username, Password: string(hash)}
	if err := svc.DB.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return staff
}

func TestSessionCreateAndResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	staff := newTestStaff(t, svc, "desk@hotel.local")

	session, err := svc.Create(staff.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("session has no token")
	}
	if session.ExpiresAt == nil || !session.ExpiresAt.After(time.Now().UTC()) {
		t.Fatalf("session expiry not in the future: %v", session.ExpiresAt)
	}

	loaded, err := svc.GetByToken(session.Token)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if loaded.StaffID != staff.ID {
		t.Errorf("session staff = %d, want %d", loaded.StaffID, staff.ID)
	}
	if loaded.Staff.Username != "desk@hotel.local" {
		t.Errorf("staff not preloaded: %+v", loaded.Staff)
	}
}

func TestExpiredSessionIsDeletedOnSight(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	staff := newTestStaff(t, svc, "desk@hotel.local")

	session, err := svc.Create(staff.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	past := time.Now().UTC().Add(-time.Hour)
	if err := db.Model(&models.Session{}).Where("id = ?", session.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate session: %v", err)
	}

	if _, err := svc.GetByToken(session.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	var count int64
	db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count)
	if count != 0 {
		t.Error("expired session row not deleted")
	}
}

func TestUnknownTokenReadsAsExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	if _, err := svc.GetByToken("no-such-token"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSearchDefaultsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	staff := newTestStaff(t, svc, "desk@hotel.local")

	session, err := svc.Create(staff.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	defaults := svc.LoadSearchDefaults(&session)
	if defaults.Reservations.Initialized {
		t.Error("fresh session should have uninitialized reservation defaults")
	}

	defaults.AvailableRooms = AvailabilityDefaults{StartDate: "2025-06-01", LengthOfStay: "3", RoomType: "DLX"}
	defaults.Reservations = ReservationListDefaults{Initialized: true, StartDate: "2025-06-01", EndDate: ""}
	if err := svc.SaveSearchDefaults(&session, defaults); err != nil {
		t.Fatalf("save defaults: %v", err)
	}

	reloaded, err := svc.GetByToken(session.Token)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	got := svc.LoadSearchDefaults(&reloaded)
	if got.AvailableRooms != defaults.AvailableRooms {
		t.Errorf("availability defaults = %+v, want %+v", got.AvailableRooms, defaults.AvailableRooms)
	}
	if !got.Reservations.Initialized || got.Reservations.EndDate != "" {
		t.Errorf("reservation defaults = %+v", got.Reservations)
	}
}

func TestWizardSaveLoadClear(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	staff := newTestStaff(t, svc, "desk@hotel.local")

	session, err := svc.Create(staff.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := svc.LoadWizard(&session); !errors.Is(err, ErrNoWizard) {
		t.Fatalf("expected ErrNoWizard on fresh session, got %v", err)
	}

	state := WizardState{RoomNumber: 101, StartOfStay: "2025-06-01", LengthOfStay: 3}
	if err := svc.SaveWizard(&session, state); err != nil {
		t.Fatalf("save wizard: %v", err)
	}

	loaded, err := svc.LoadWizard(&session)
	if err != nil {
		t.Fatalf("load wizard: %v", err)
	}
	if loaded.RoomNumber != 101 || loaded.StartOfStay != "2025-06-01" || loaded.LengthOfStay != 3 {
		t.Errorf("wizard state = %+v", loaded)
	}
	if loaded.ExpiresAt.IsZero() {
		t.Error("wizard expiry not stamped on save")
	}

	if err := svc.ClearWizard(&session); err != nil {
		t.Fatalf("clear wizard: %v", err)
	}
	if _, err := svc.LoadWizard(&session); !errors.Is(err, ErrNoWizard) {
		t.Errorf("expected ErrNoWizard after clear, got %v", err)
	}
}

func TestWizardExpiresAndClears(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	staff := newTestStaff(t, svc, "desk@hotel.local")

	session, err := svc.Create(staff.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	state := WizardState{
		RoomNumber:   101,
		StartOfStay:  "2025-06-01",
		LengthOfStay: 3,
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	}
	if err := svc.SaveWizard(&session, state); err != nil {
		t.Fatalf("save wizard: %v", err)
	}

	if _, err := svc.LoadWizard(&session); !errors.Is(err, ErrWizardExpired) {
		t.Fatalf("expected ErrWizardExpired, got %v", err)
	}

	// The expired stash is gone, not just rejected.
	if _, err := svc.LoadWizard(&session); !errors.Is(err, ErrNoWizard) {
		t.Errorf("expected ErrNoWizard after expiry cleanup, got %v", err)
	}
}
