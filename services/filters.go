package services

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// GuestFilter narrows a guest query. Empty criteria are skipped, so a zero
// filter returns every guest; supplied criteria combine with AND.
type GuestFilter struct {
	LastName string
	Postcode string
}

func (f GuestFilter) Apply(db *gorm.DB) *gorm.DB {
	if name := strings.TrimSpace(f.LastName); name != "" {
		db = db.Where("LOWER(last_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if pc := strings.TrimSpace(f.Postcode); pc != "" {
		db = db.Where("postcode LIKE ?", "%"+pc+"%")
	}
	return db
}

// ReservationFilter narrows a reservation query by stay-start range, guest
// last name and room number. All criteria optional, combined with AND.
type ReservationFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	LastName   string
	RoomNumber string
}

func (f ReservationFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.StartDate != nil {
		db = db.Where("reservations.start_of_stay >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("reservations.start_of_stay <= ?", *f.EndDate)
	}
	if name := strings.TrimSpace(f.LastName); name != "" {
		db = db.
			Joins("LEFT JOIN guests ON guests.id = reservations.guest_id").
			Where("LOWER(guests.last_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if num := strings.TrimSpace(f.RoomNumber); num != "" {
		db = db.Where("CAST(reservations.room_number AS CHAR) LIKE ?", "%"+num+"%")
	}
	return db
}

// AvailableRoomFilter describes a requested stay window. Rooms with any
// reservation overlapping [StartOfStay, StartOfStay+LengthOfStay) are
// excluded; RoomTypeCode optionally restricts to one type.
type AvailableRoomFilter struct {
	StartOfStay  time.Time
	LengthOfStay int
	RoomTypeCode string
}

// EndOfStay is the exclusive end of the requested window.
func (f AvailableRoomFilter) EndOfStay() time.Time {
	nights := f.LengthOfStay
	if nights <= 0 {
		nights = 1
	}
	return f.StartOfStay.AddDate(0, 0, nights)
}
