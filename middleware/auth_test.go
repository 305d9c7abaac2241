package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Staff{},
		&models.Role{},
		&models.RoleCapability{},
		&models.Session{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedLogin(t *testing.T, db *gorm.DB, sessions *services.SessionService, username string) (models.Staff, models.Session) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	staff := models.Staff{FullName: "Test Staff", Username: username, Password: string(hash)}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	session, err := sessions.Create(staff.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return staff, session
}

func testRouter(db *gorm.DB, sessions *services.SessionService, auth *services.AuthService, capability string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authed := r.Group("", RequireAuth(sessions))
	authed.GET("/open", func(c *gin.Context) {
		session := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"staffId": session.StaffID})
	})
	authed.GET("/gated", RequireCapability(auth, capability), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	return r
}

func TestRequireAuthRejectsMissingAndBadTokens(t *testing.T) {
	db := newTestDB(t)
	sessions := services.NewSessionService(db)
	auth := services.NewAuthService(db, sessions)
	r := testRouter(db, sessions, auth, models.CapManageInventory)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}
}

func TestRequireAuthAcceptsHeaderAndCookie(t *testing.T) {
	db := newTestDB(t)
	sessions := services.NewSessionService(db)
	auth := services.NewAuthService(db, sessions)
	r := testRouter(db, sessions, auth, models.CapManageInventory)

	_, session := seedLogin(t, db, sessions, "desk@hotel.local")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("bearer token: status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("cookie token: status = %d, want 200", w.Code)
	}
}

func TestRequireCapabilityGate(t *testing.T) {
	db := newTestDB(t)
	sessions := services.NewSessionService(db)
	auth := services.NewAuthService(db, sessions)
	r := testRouter(db, sessions, auth, models.CapManageInventory)

	manager, managerSession := seedLogin(t, db, sessions, "manager@hotel.local")
	_, deskSession := seedLogin(t, db, sessions, "desk@hotel.local")

	role := models.Role{Name: "Manager"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	if err := db.Create(&models.RoleCapability{RoleID: role.ID, Capability: models.CapManageInventory}).Error; err != nil {
		t.Fatalf("seed capability: %v", err)
	}
	if err := db.Exec("INSERT INTO role_members (role_id, staff_id) VALUES (?, ?)", role.ID, manager.ID).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+deskSession.Token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("ungranted staff: status = %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+managerSession.Token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("manager: status = %d, want 200", w.Code)
	}
}
