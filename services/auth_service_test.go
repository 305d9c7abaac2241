package services

import (
	"errors"
	"testing"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

func grantCapability(t *testing.T, db *gorm.DB, staffID uint, capability string) {
	t.Helper()
	role := models.Role{Name: "role-" + capability, Description: "test role"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	if err := db.Create(&models.RoleCapability{RoleID: role.ID, Capability: capability}).Error; err != nil {
		t.Fatalf("seed capability: %v", err)
	}
	if err := db.Exec("INSERT INTO role_members (role_id, staff_id) VALUES (?, ?)", role.ID, staffID).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func TestLoginOpensSession(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db)
	auth := NewAuthService(db, sessions)
	staff := newTestStaff(t, sessions, "desk@hotel.local")

	session, loggedIn, err := auth.Login("desk@hotel.local", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != staff.ID {
		t.Errorf("logged-in staff = %d, want %d", loggedIn.ID, staff.ID)
	}
	if _, err := sessions.GetByToken(session.Token); err != nil {
		t.Errorf("session token does not resolve: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db)
	auth := NewAuthService(db, sessions)
	newTestStaff(t, sessions, "desk@hotel.local")

	if _, _, err := auth.Login("desk@hotel.local", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login("nobody@hotel.local", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db)
	auth := NewAuthService(db, sessions)
	newTestStaff(t, sessions, "desk@hotel.local")

	session, _, err := auth.Login("desk@hotel.local", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := auth.Logout(session.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := sessions.GetByToken(session.Token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected dead token, got %v", err)
	}
}

func TestHasCapability(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db)
	auth := NewAuthService(db, sessions)

	manager := newTestStaff(t, sessions, "manager@hotel.local")
	reception := newTestStaff(t, sessions, "desk@hotel.local")
	grantCapability(t, db, manager.ID, models.CapManageInventory)

	ok, err := auth.HasCapability(manager.ID, models.CapManageInventory)
	if err != nil {
		t.Fatalf("check capability: %v", err)
	}
	if !ok {
		t.Error("manager should hold inventory.manage")
	}

	ok, err = auth.HasCapability(reception.ID, models.CapManageInventory)
	if err != nil {
		t.Fatalf("check capability: %v", err)
	}
	if ok {
		t.Error("receptionist should not hold inventory.manage")
	}
}
