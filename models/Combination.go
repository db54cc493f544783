package models

import (
	"gorm.io/gorm"
)

// Combination groups two or more grounds of one pitch into a single bookable
// unit (e.g. two adjacent 5-a-side grounds rented as one 11-a-side field).
// Booking a combination occupies every member ground for the whole range.
type Combination struct {
	gorm.Model
	PitchID uint   `json:"pitchID" gorm:"not null;index"`
	Name    string `json:"name"`

	Grounds []Ground `json:"grounds,omitempty" gorm:"many2many:combination_grounds;"`

	SettingsOverride `gorm:"embedded"`

	Pitch *Pitch `json:"pitch,omitempty" gorm:"foreignKey:PitchID"`
}
