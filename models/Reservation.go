package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. A booking is created directly as confirmed;
// cancelled and completed are terminal.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

// ValidReservationStatus reports whether s is one of the four known statuses.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}

// Reservation is a guest's booking of a property for the half-open
// night range [CheckIn, CheckOut). PricePerNight is snapshotted at
// booking time so later listing price changes never alter past bills.
type Reservation struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;index"`
	GuestID    uint      `json:"guestID" gorm:"not null;index"`
	CheckIn    time.Time `json:"checkIn" gorm:"index"`
	CheckOut   time.Time `json:"checkOut" gorm:"index"`
	NumGuests  int       `json:"numGuests"`

	PricePerNight float64 `json:"pricePerNight" gorm:"type:decimal(10,2)"`
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"totalPrice" gorm:"type:decimal(10,2)"`

	Status             string `json:"status" gorm:"type:varchar(20);default:pending;index"`
	Note               string `json:"note" gorm:"type:text"`
	CancellationReason string `json:"cancellationReason"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Guest    *User     `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Review   *Review   `json:"review,omitempty" gorm:"foreignKey:ReservationID"`
}
