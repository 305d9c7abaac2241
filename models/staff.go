package models

import "time"

type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
