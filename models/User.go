package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Password  string `json:"-"`
	AvatarURL string `json:"avatarURL"`
	Role      string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin

	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:HostID;references:ID"`
}

// IsAdmin reports whether the user can act on resources they do not own.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
