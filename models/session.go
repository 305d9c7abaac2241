package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session is a server-held login session keyed by a random token. Besides
// authentication it carries the per-user search defaults and the pending
// reservation-wizard state as JSON columns, replacing ambient framework
// session storage with explicit, serializable state.
type Session struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Token string `gorm:"uniqueIndex;size:64" json:"-"`

	StaffID uint  `gorm:"index" json:"staff_id"`
	Staff   Staff `gorm:"foreignKey:StaffID" json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	SearchDefaults datatypes.JSON `gorm:"column:search_defaults" json:"-"`
	Wizard         datatypes.JSON `gorm:"column:wizard" json:"-"`
}
