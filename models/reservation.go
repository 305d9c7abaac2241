package models

import "time"

// Reservation status codes. Forward-only in practice (RE -> IN -> OT) but the
// model does not enforce an ordering; the update form accepts any known code.
const (
	StatusReserved   = "RE"
	StatusCheckedIn  = "IN"
	StatusCheckedOut = "OT"
)

var statusLabels = map[string]string{
	StatusReserved:   "Reserved",
	StatusCheckedIn:  "Checked In",
	StatusCheckedOut: "Checked Out",
}

// ValidStatusCode reports whether code is one of RE, IN, OT.
func ValidStatusCode(code string) bool {
	_, ok := statusLabels[code]
	return ok
}

// StatusLabel returns the human-readable label for a status code, or the
// code itself when unknown.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

type Reservation struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Both references nullify when the parent row is deleted so the
	// reservation itself stays on record.
	GuestID    *uint `gorm:"column:guest_id;index" json:"guestId,omitempty"`
	RoomNumber *int  `gorm:"column:room_number;index" json:"roomNumber,omitempty"`

	// When the booking was taken, not when the stay begins.
	ReservedAt time.Time `gorm:"column:reserved_at" json:"reservedAt"`

	// Quoted once at creation (nightly rate x nights); later room-type price
	// changes do not touch it.
	Price      float64 `json:"price"`
	AmountPaid float64 `gorm:"column:amount_paid" json:"amountPaid"`

	NumberOfGuests int       `gorm:"column:number_of_guests" json:"numberOfGuests"`
	StartOfStay    time.Time `gorm:"column:start_of_stay" json:"startOfStay"`
	LengthOfStay   int       `gorm:"column:length_of_stay" json:"lengthOfStay"`

	StatusCode string `gorm:"column:status_code;type:varchar(2)" json:"statusCode"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	Guest *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room  *Room  `gorm:"foreignKey:RoomNumber;references:RoomNumber" json:"room,omitempty"`
}

// EndDate is the check-out date: start of stay plus the booked nights.
func (r Reservation) EndDate() time.Time {
	return r.StartOfStay.AddDate(0, 0, r.LengthOfStay)
}
