package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"-"`
	Role        string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, owner, admin

	Pitches  []Pitch   `json:"pitches,omitempty" gorm:"foreignKey:OwnerID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
}
