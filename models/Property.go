package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	HostID        uint           `json:"hostID" gorm:"index"`
	Title         string         `json:"title"`
	Description   string         `json:"description" gorm:"type:text"`
	PropertyType  string         `json:"propertyType" gorm:"type:varchar(20);index"` // apartment, house, villa, studio, cottage, room
	Address       string         `json:"address"`
	City          string         `json:"city" gorm:"index"`
	Country       string         `json:"country" gorm:"index"`
	PostalCode    string         `json:"postalCode"`
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	Guests        int            `json:"guests"` // max guest capacity
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     int            `json:"bathrooms"`
	PricePerNight float64        `json:"pricePerNight" gorm:"type:decimal(10,2)"`
	Amenities     datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	ImageURL      string         `json:"imageURL"`
	Images        datatypes.JSON `json:"images" gorm:"type:jsonb"`
	IsActive      *bool          `json:"isActive" gorm:"default:true;index"`

	// Derived from current reviews, recomputed on every review write
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`

	Reviews      []Review      `json:"reviews,omitempty"`
	Reservations []Reservation `json:"reservations,omitempty"`
	Host         *User         `json:"host,omitempty" gorm:"foreignKey:HostID;references:ID"`
}

// Active reports whether the listing accepts new reservations.
func (p *Property) Active() bool {
	return p.IsActive != nil && *p.IsActive
}

// AmenityList decodes the stored JSON array, never returning nil.
func (p *Property) AmenityList() []string {
	amenities := []string{}
	if p.Amenities != nil {
		_ = json.Unmarshal(p.Amenities, &amenities)
	}
	return amenities
}
