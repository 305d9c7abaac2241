package services

import (
	"testing"
	"time"

	"hotel-frontdesk/models"

	"github.com/glebarez/sqlite"
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

	// One connection so every query sees the same in-memory database.
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
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func mustDate(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func seedRoomType(t *testing.T, db *gorm.DB, code string, price float64) models.RoomType {
	t.Helper()
	rt := models.RoomType{Code: code, Name: code + " room", Price: price, MaxGuests: 2}
	if err := db.Create(&rt).Error; err != nil {
		t.Fatalf("seed room type %s: %v", code, err)
	}
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, number int, typeCode string) models.Room {
	t.Helper()
	room := models.Room{RoomNumber: number}
	if typeCode != "" {
		room.RoomTypeCode = &typeCode
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room %d: %v", number, err)
	}
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, firstName, lastName, postcode string) models.Guest {
	t.Helper()
	guest := models.Guest{
		Title:        "Mr",
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  "01234567890",
		Email:        firstName + "@example.com",
		AddressLine1: "1 High Street",
		City:         "Townsville",
		County:       "Shire",
		Postcode:     postcode,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("seed guest %s %s: %v", firstName, lastName, err)
	}
	return guest
}

func seedReservation(t *testing.T, db *gorm.DB, guestID uint, roomNumber int, start time.Time, nights int) models.Reservation {
	t.Helper()
	reservation := models.Reservation{
		GuestID:        &guestID,
		RoomNumber:     &roomNumber,
		ReservedAt:     time.Now(),
		Price:          100,
		NumberOfGuests: 1,
		StartOfStay:    start,
		LengthOfStay:   nights,
		StatusCode:     models.StatusReserved,
	}
	if err := db.Create(&reservation).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return reservation
}
