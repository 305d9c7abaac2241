package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-frontdesk/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_frontdesk")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func seedStaff(fullName, username, passwordEnv, fallback string) *models.Staff {
	var existing models.Staff
	if err := DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return &existing
	}

	password := envOrDefault(passwordEnv, fallback)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash password for %s: %v", username, err)
		return nil
	}

	staff := models.Staff{
		FullName: fullName,
		Username: username,
		Password: string(hash),
	}
	if err := DB.Create(&staff).Error; err != nil {
		log.Printf("warning: failed to create staff %s: %v", username, err)
		return nil
	}
	log.Printf("Staff %s seeded", username)
	return &staff
}

func ensureRole(name, description string, capabilities []string) *models.Role {
	var role models.Role
	err := DB.Where("name = ?", name).First(&role).Error
	if err != nil {
		role = models.Role{Name: name, Description: description}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to create role %s: %v", name, err)
			return nil
		}
	}

	for _, capability := range capabilities {
		var count int64
		DB.Model(&models.RoleCapability{}).
			Where("role_id = ? AND capability = ?", role.ID, capability).
			Count(&count)
		if count == 0 {
			if err := DB.Create(&models.RoleCapability{RoleID: role.ID, Capability: capability}).Error; err != nil {
				log.Printf("warning: failed to grant %s to role %s: %v", capability, name, err)
			}
		}
	}
	return &role
}

func ensureMembership(role *models.Role, staff *models.Staff) {
	if role == nil || staff == nil {
		return
	}
	var count int64
	DB.Table("role_members").
		Where("role_id = ? AND staff_id = ?", role.ID, staff.ID).
		Count(&count)
	if count == 0 {
		if err := DB.Exec(
			"INSERT INTO role_members (role_id, staff_id) VALUES (?, ?)",
			role.ID, staff.ID,
		).Error; err != nil {
			log.Printf("warning: failed to assign %s to role %s: %v", staff.Username, role.Name, err)
		}
	}
}

// SeedDatabase creates the default roles, staff accounts and a starter set of
// room types. Safe to run on every boot.
func SeedDatabase() {
	manager := ensureRole("Manager", "Full access including room setup", []string{
		models.CapManageInventory,
		models.CapManageRoles,
	})
	receptionist := ensureRole("Receptionist", "Front desk operations", nil)

	managerStaff := seedStaff("Hotel Manager", "manager@hotel.local", "MANAGER_PASSWORD", "manager123")
	receptionStaff := seedStaff("Front Desk", "reception@hotel.local", "RECEPTION_PASSWORD", "reception123")

	ensureMembership(manager, managerStaff)
	ensureMembership(receptionist, receptionStaff)

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Code: "STD", Name: "Standard", Price: 100, Bath: true, MaxGuests: 2},
			{Code: "DBL", Name: "Double", Price: 140, Bath: true, SeparateShower: true, MaxGuests: 2},
			{Code: "FAM", Name: "Family", Price: 180, Bath: true, MaxGuests: 4},
			{Code: "DLX", Name: "Deluxe", Price: 240, Deluxe: true, Bath: true, SeparateShower: true, MaxGuests: 2},
		}
		DB.Create(&roomTypes)
		log.Println("Room types seeded")
	}

	log.Println("Roles ensured")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Info,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// Migrate applies the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Staff{},
		&models.Role{},
		&models.RoleCapability{},
		&models.Session{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
	)
}
