package models

import (
	"regexp"
	"time"
)

var roomTypeCodePattern = regexp.MustCompile(`^[A-Z]{1,3}$`)

// ValidRoomTypeCode reports whether code is a 1-3 uppercase-letter type code.
func ValidRoomTypeCode(code string) bool {
	return roomTypeCodePattern.MatchString(code)
}

type RoomType struct {
	// 1-3 uppercase letters, e.g. "STD" for Standard.
	Code string `gorm:"primaryKey;type:varchar(3)" json:"code"`

	Name  string  `gorm:"type:varchar(25)" json:"name"`
	Price float64 `json:"price"`

	Deluxe         bool `json:"deluxe"`
	Bath           bool `json:"bath"`
	SeparateShower bool `gorm:"column:separate_shower" json:"separateShower"`

	MaxGuests uint `gorm:"column:max_guests" json:"maxGuests"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
