package models

import "time"

type Room struct {
	RoomNumber int `gorm:"primaryKey;autoIncrement:false;column:room_number" json:"roomNumber"`

	// Nullable so a room survives deletion of its type.
	RoomTypeCode *string `gorm:"column:room_type_code;type:varchar(3);index" json:"roomTypeCode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RoomType *RoomType `gorm:"foreignKey:RoomTypeCode;references:Code" json:"roomType,omitempty"`
}
