package services

import (
	"github.com/ammarsarhan/hagz-sub001/models"
)

// ResolvedSettings is the effective booking policy for one target: the pitch
// policy with any ground/combination override laid on top, field by field.
// Derived per request, never stored. minBookingHours <= maxBookingHours is
// validated at layout-edit time and assumed here.
type ResolvedSettings struct {
	BasePrice            float64 `json:"basePrice"`
	MinBookingHours      int     `json:"minBookingHours"`
	MaxBookingHours      int     `json:"maxBookingHours"`
	AdvanceBooking       float64 `json:"advanceBooking"`
	PaymentDeadline      float64 `json:"paymentDeadline"`
	CancellationGrace    float64 `json:"cancellationGrace"`
	CancellationFeePct   float64 `json:"cancellationFeePct"`
	NoShowFeePct         float64 `json:"noShowFeePct"`
	PeakHourSurchargePct float64 `json:"peakHourSurchargePct"`
	OffPeakDiscountPct   float64 `json:"offPeakDiscountPct"`
	AutomaticApproval    bool    `json:"automaticApproval"`
}

// ResolveSettings overlays an optional override onto the pitch policy. Pure:
// nil override returns the pitch values unchanged.
func ResolveSettings(pitch *models.Pitch, override *models.SettingsOverride) ResolvedSettings {
	r := ResolvedSettings{
		BasePrice:            pitch.BasePrice,
		MinBookingHours:      pitch.MinBookingHours,
		MaxBookingHours:      pitch.MaxBookingHours,
		AdvanceBooking:       pitch.AdvanceBooking,
		PaymentDeadline:      pitch.PaymentDeadline,
		CancellationGrace:    pitch.CancellationGrace,
		CancellationFeePct:   pitch.CancellationFeePct,
		NoShowFeePct:         pitch.NoShowFeePct,
		PeakHourSurchargePct: pitch.PeakHourSurchargePct,
		OffPeakDiscountPct:   pitch.OffPeakDiscountPct,
		AutomaticApproval:    pitch.AutomaticApproval,
	}
	if override == nil {
		return r
	}
	overlay(&r.BasePrice, override.Price)
	overlay(&r.MinBookingHours, override.MinBookingHours)
	overlay(&r.MaxBookingHours, override.MaxBookingHours)
	overlay(&r.AdvanceBooking, override.AdvanceBooking)
	overlay(&r.PaymentDeadline, override.PaymentDeadline)
	overlay(&r.CancellationGrace, override.CancellationGrace)
	overlay(&r.CancellationFeePct, override.CancellationFeePct)
	overlay(&r.NoShowFeePct, override.NoShowFeePct)
	overlay(&r.PeakHourSurchargePct, override.PeakHourSurchargePct)
	overlay(&r.OffPeakDiscountPct, override.OffPeakDiscountPct)
	overlay(&r.AutomaticApproval, override.AutomaticApproval)
	return r
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
