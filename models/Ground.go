package models

import (
	"gorm.io/gorm"
)

const (
	GroundStatusLive     = "LIVE"
	GroundStatusInactive = "INACTIVE"
)

// SettingsOverride is a partial booking policy attached to a ground or a
// combination. A nil field means "inherit the pitch value".
type SettingsOverride struct {
	Price                *float64 `json:"price"`
	MinBookingHours      *int     `json:"minBookingHours"`
	MaxBookingHours      *int     `json:"maxBookingHours"`
	AdvanceBooking       *float64 `json:"advanceBooking"`
	PaymentDeadline      *float64 `json:"paymentDeadline"`
	CancellationGrace    *float64 `json:"cancellationGrace"`
	CancellationFeePct   *float64 `json:"cancellationFeePct"`
	NoShowFeePct         *float64 `json:"noShowFeePct"`
	PeakHourSurchargePct *float64 `json:"peakHourSurchargePct"`
	OffPeakDiscountPct   *float64 `json:"offPeakDiscountPct"`
	AutomaticApproval    *bool    `json:"automaticApproval"`
}

type Ground struct {
	gorm.Model
	PitchID uint   `json:"pitchID" gorm:"not null;index"`
	Name    string `json:"name"`
	Status  string `json:"status" gorm:"type:varchar(20);default:'LIVE';index"`
	Surface string `json:"surface"` // grass, turf, hard
	Size    string `json:"size"`    // 5-a-side, 7-a-side, 11-a-side

	SettingsOverride `gorm:"embedded"`

	Pitch *Pitch `json:"pitch,omitempty" gorm:"foreignKey:PitchID"`
}

func (g *Ground) Bookable() bool {
	return g.Status == GroundStatusLive
}

// HourlyPrice is the effective unit price for one hour on this ground.
func (g *Ground) HourlyPrice(pitchBasePrice float64) float64 {
	if g.Price != nil {
		return *g.Price
	}
	return pitchBasePrice
}
