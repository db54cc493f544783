package models

import (
	"gorm.io/gorm"
)

// Pitch lifecycle: created as a draft by an owner, goes live after the
// approval workflow, may be suspended by an admin or archived by the owner.
const (
	PitchStatusDraft     = "DRAFT"
	PitchStatusLive      = "LIVE"
	PitchStatusSuspended = "SUSPENDED"
	PitchStatusArchived  = "ARCHIVED"
)

type Pitch struct {
	gorm.Model
	OwnerID      uint    `json:"ownerID" gorm:"not null;index"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Lat          float32 `json:"lat"`
	Lng          float32 `json:"lng"`
	Status       string  `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"`

	// Base hourly price in the platform currency. Grounds may override it.
	BasePrice float64 `json:"basePrice"`

	// Booking policy. Deadline/grace fields are hours before the booking
	// start. Any field may be overridden per ground or combination.
	MinBookingHours      int     `json:"minBookingHours" gorm:"default:1"`
	MaxBookingHours      int     `json:"maxBookingHours" gorm:"default:4"`
	AdvanceBooking       float64 `json:"advanceBooking" gorm:"default:2"`
	PaymentDeadline      float64 `json:"paymentDeadline" gorm:"default:4"`
	CancellationGrace    float64 `json:"cancellationGrace" gorm:"default:1"`
	CancellationFeePct   float64 `json:"cancellationFeePct"`
	NoShowFeePct         float64 `json:"noShowFeePct"`
	PeakHourSurchargePct float64 `json:"peakHourSurchargePct"`
	OffPeakDiscountPct   float64 `json:"offPeakDiscountPct"`
	AutomaticApproval    bool    `json:"automaticApproval" gorm:"default:false"`

	Grounds      []Ground      `json:"grounds,omitempty" gorm:"foreignKey:PitchID"`
	Combinations []Combination `json:"combinations,omitempty" gorm:"foreignKey:PitchID"`
	Schedules    []Schedule    `json:"schedules,omitempty" gorm:"foreignKey:PitchID"`
	Owner        *User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// Bookable reports whether the pitch accepts new bookings at all.
func (p *Pitch) Bookable() bool {
	return p.Status == PitchStatusLive
}
