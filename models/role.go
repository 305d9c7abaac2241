package models

import "time"

// Capability strings checked by the authorization middleware. Roles are the
// grouping mechanism; handlers only ever ask about capabilities.
const (
	CapManageInventory = "inventory.manage"
	CapManageRoles     = "roles.manage"
)

type Role struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"size:100;uniqueIndex" json:"name"`
	Description  string           `gorm:"size:255" json:"description"`
	Capabilities []RoleCapability `gorm:"foreignKey:RoleID" json:"capabilities"`
	Members      []Staff          `gorm:"many2many:role_members;joinForeignKey:RoleID;JoinReferences:StaffID" json:"members"`
	CreatedAt    time.Time        `json:"created_at"`
}

type RoleCapability struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     uint   `gorm:"not null;index:idx_role_capability,unique" json:"role_id"`
	Capability string `gorm:"size:150;not null;index:idx_role_capability,unique" json:"capability"`
}
