package services

import (
	"errors"
	"testing"
	"time"
)

var testPolicy = ResolvedSettings{
	AdvanceBooking:    2,
	PaymentDeadline:   4,
	CancellationGrace: 1,
}

func TestComputeDeadlinesFarOut(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(30 * time.Hour)

	d, err := ComputeDeadlines(testPolicy, start, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 30 hours out: proximity is zero, so the configured windows apply as-is.
	if got, want := d.Approval, start.Add(-5*time.Hour); !got.Equal(want) {
		t.Errorf("approval = %v, want %v", got, want)
	}
	if got, want := d.Payment, start.Add(-4*time.Hour); !got.Equal(want) {
		t.Errorf("payment = %v, want %v", got, want)
	}
	if got, want := d.Advance, start.Add(-2*time.Hour); !got.Equal(want) {
		t.Errorf("advance = %v, want %v", got, want)
	}
	if got, want := d.Cancellation, start.Add(-1*time.Hour); !got.Equal(want) {
		t.Errorf("cancellation = %v, want %v", got, want)
	}
}

func TestComputeDeadlinesOrderingInvariant(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for minutes := 30; minutes <= 72*60; minutes += 30 {
		start := now.Add(time.Duration(minutes) * time.Minute)
		d, err := ComputeDeadlines(testPolicy, start, now)
		if err != nil {
			t.Fatalf("start in %dm: unexpected error: %v", minutes, err)
		}

		if !d.Approval.After(now) {
			t.Errorf("start in %dm: approval %v not after now", minutes, d.Approval)
		}
		if !d.Payment.After(d.Approval) {
			t.Errorf("start in %dm: payment %v not after approval %v", minutes, d.Payment, d.Approval)
		}
		if d.Advance.After(start) {
			t.Errorf("start in %dm: advance %v after start", minutes, d.Advance)
		}
		if !d.Cancellation.Before(start) {
			t.Errorf("start in %dm: cancellation %v not before start", minutes, d.Cancellation)
		}
		// The full chain only holds while the advance cutoff is reachable;
		// past it the caller rejects with the advance-window error instead.
		if d.Advance.After(now) && !d.Payment.Before(d.Advance) {
			t.Errorf("start in %dm: payment %v not before advance %v", minutes, d.Payment, d.Advance)
		}
	}
}

func TestComputeDeadlinesCompression(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	far, _ := ComputeDeadlines(testPolicy, now.Add(48*time.Hour), now)
	near, _ := ComputeDeadlines(testPolicy, now.Add(6*time.Hour), now)

	farApprovalWindow := now.Add(48 * time.Hour).Sub(far.Approval)
	nearApprovalWindow := now.Add(6 * time.Hour).Sub(near.Approval)
	if nearApprovalWindow >= farApprovalWindow {
		t.Errorf("approval window not compressed: near %v >= far %v", nearApprovalWindow, farApprovalWindow)
	}
}

func TestComputeDeadlinesPastStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := ComputeDeadlines(testPolicy, now, now)
	if !IsErrorKind(err, ErrKindPastStartDate) {
		t.Fatalf("expected PastStartDate for start == now, got %v", err)
	}

	_, err = ComputeDeadlines(testPolicy, now.Add(-time.Hour), now)
	if !IsErrorKind(err, ErrKindPastStartDate) {
		t.Fatalf("expected PastStartDate for past start, got %v", err)
	}
}

func TestComputeDeadlinesProximity(t *testing.T) {
	cases := []struct {
		hours float64
		want  float64
	}{
		{hours: 48, want: 0},
		{hours: 24, want: 0},
		{hours: 0, want: 1},
	}
	for _, tc := range cases {
		if got := proximity(tc.hours); got != tc.want {
			t.Errorf("proximity(%v) = %v, want %v", tc.hours, got, tc.want)
		}
	}
	mid := proximity(12)
	if mid <= 0 || mid >= 1 {
		t.Errorf("proximity(12) = %v, want value in (0, 1)", mid)
	}
	// Super-linear rise: closer half contributes more than the linear share.
	if mid >= 0.5 {
		t.Errorf("proximity(12) = %v, expected below 0.5 for exponent 1.5", mid)
	}
}

func TestComputeDeadlinesConfigAssertion(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// A payment window far inside a large advance window: the corrections
	// first pull payment before the advance cutoff, then the now-clamp chain
	// pushes it back past the cutoff. The assertion must flag the residual
	// violation rather than accept it.
	bad := ResolvedSettings{AdvanceBooking: 10, PaymentDeadline: 1, CancellationGrace: 1}
	start := now.Add(10*time.Hour + 30*time.Minute)
	_, err := ComputeDeadlines(bad, start, now)
	if !errors.Is(err, ErrDeadlineConfig) {
		t.Fatalf("expected ErrDeadlineConfig, got %v", err)
	}
}
