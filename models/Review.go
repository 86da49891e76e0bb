package models

import "gorm.io/gorm"

// Review is tied to a single completed stay; the unique index on
// ReservationID enforces one review per reservation.
type Review struct {
	gorm.Model
	ReservationID uint   `json:"reservationID" gorm:"not null;uniqueIndex"`
	UserID        uint   `json:"userID" gorm:"not null;index"`
	PropertyID    uint   `json:"propertyID" gorm:"not null;index"`
	Stars         int    `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Body          string `json:"body" gorm:"type:text"`

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Reservation *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}
