package models

import (
	"fmt"
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string `gorm:"type:varchar(10)" json:"title"`
	FirstName   string `gorm:"column:first_name;type:varchar(50)" json:"firstName"`
	LastName    string `gorm:"column:last_name;type:varchar(50);index" json:"lastName"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(11)" json:"phoneNumber"`
	Email       string `gorm:"type:varchar(320)" json:"email"`

	AddressLine1 string `gorm:"column:address_line1;type:varchar(80)" json:"addressLine1"`
	AddressLine2 string `gorm:"column:address_line2;type:varchar(80)" json:"addressLine2,omitempty"`
	City         string `gorm:"type:varchar(80)" json:"city"`
	County       string `gorm:"type:varchar(80)" json:"county"`
	Postcode     string `gorm:"type:varchar(8);index" json:"postcode"`
}

// DisplayName is the short form used on lists and pick screens,
// e.g. "Mr J. Smith".
func (g Guest) DisplayName() string {
	first := []rune(g.FirstName)
	if len(first) == 0 {
		return fmt.Sprintf("%s %s", g.Title, g.LastName)
	}
	return fmt.Sprintf("%s %c. %s", g.Title, first[0], g.LastName)
}
