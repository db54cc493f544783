package services

import (
	"math"
	"time"
)

// Deadlines are the four lifecycle timestamps of a booking, all derived from
// the resolved policy and the start time. Ordering invariant after
// correction: now < Approval < Payment < Advance (when the advance cutoff is
// still reachable), Advance <= start, Cancellation < start.
type Deadlines struct {
	Approval     time.Time `json:"approvalDeadline"`
	Payment      time.Time `json:"paymentDeadline"`
	Advance      time.Time `json:"advanceDeadline"`
	Cancellation time.Time `json:"cancellationDeadline"`
}

// proximity rises super-linearly from 0 to 1 as the booking start approaches
// within 24 hours, compressing the approval/payment windows so a late request
// is not rejected purely for arriving late. Zero for anything a day or more
// out.
func proximity(hoursUntilStart float64) float64 {
	return math.Pow(clamp01((24-hoursUntilStart)/24), 1.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hoursBefore(t time.Time, hours float64) time.Time {
	return t.Add(-time.Duration(hours * float64(time.Hour)))
}

// ComputeDeadlines derives the candidate deadlines and runs them through the
// correction pipeline. Each step takes and returns a value, so the cascading
// order is explicit and each correction is testable in isolation.
func ComputeDeadlines(resolved ResolvedSettings, start, now time.Time) (Deadlines, error) {
	if !start.After(now) {
		return Deadlines{}, newBookingError(ErrKindPastStartDate, "startDate", "start date must be in the future")
	}

	p := proximity(start.Sub(now).Hours())

	d := Deadlines{
		Approval:     hoursBefore(start, (resolved.PaymentDeadline+1)-p*3),
		Payment:      hoursBefore(start, resolved.PaymentDeadline-p*2.1),
		Advance:      hoursBefore(start, resolved.AdvanceBooking),
		Cancellation: hoursBefore(start, resolved.CancellationGrace),
	}

	d = approvalBeforePayment(d)
	d = paymentBeforeAdvance(d)
	d = approvalAfterNow(d, now)
	d = paymentAfterApproval(d)
	d = cancellationAfterAdvance(d)
	d = cancellationBeforeStart(d, start)

	// Residual violations can survive the sequential corrections under
	// pathological window configurations. When the advance cutoff already
	// lies in the past the caller rejects with AdvanceWindowPassed anyway, so
	// the assertion only applies to bookings that are still admissible.
	if d.Advance.After(now) && !d.Payment.Before(d.Advance) {
		return Deadlines{}, ErrDeadlineConfig
	}

	return d, nil
}

func approvalBeforePayment(d Deadlines) Deadlines {
	if !d.Approval.Before(d.Payment) {
		d.Approval = d.Payment.Add(-30 * time.Minute)
	}
	return d
}

func paymentBeforeAdvance(d Deadlines) Deadlines {
	if !d.Payment.Before(d.Advance) {
		d.Payment = d.Advance.Add(-30 * time.Minute)
	}
	return d
}

func approvalAfterNow(d Deadlines, now time.Time) Deadlines {
	if !d.Approval.After(now) {
		d.Approval = now.Add(5 * time.Minute)
	}
	return d
}

func paymentAfterApproval(d Deadlines) Deadlines {
	if !d.Payment.After(d.Approval) {
		d.Payment = d.Approval.Add(30 * time.Minute)
	}
	return d
}

func cancellationAfterAdvance(d Deadlines) Deadlines {
	if d.Cancellation.Before(d.Advance) {
		d.Cancellation = d.Advance.Add(15 * time.Minute)
	}
	return d
}

func cancellationBeforeStart(d Deadlines, start time.Time) Deadlines {
	if d.Cancellation.After(start) {
		d.Cancellation = start.Add(-15 * time.Minute)
	}
	return d
}
