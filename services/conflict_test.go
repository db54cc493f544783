package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ammarsarhan/hagz-sub001/models"
)

// Wednesday.
func testDay(hour int) time.Time {
	return time.Date(2025, 3, 12, hour, 0, 0, 0, time.UTC)
}

func TestCheckAvailabilityGroundTarget(t *testing.T) {
	store := newStubStore()
	target := BookingTarget{Type: models.BookingTargetGround, ID: 2}

	result, err := CheckAvailability(context.Background(), store, 1, target, testDay(18), testDay(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Grounds) != 1 || result.Grounds[0].Name != "Ground B" {
		t.Fatalf("grounds = %+v, want just Ground B", result.Grounds)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(result.Segments))
	}
	if result.Segments[0].Hour != 18 || result.Segments[1].Hour != 19 {
		t.Errorf("segment hours = %d, %d, want 18, 19", result.Segments[0].Hour, result.Segments[1].Hour)
	}
	if result.Segments[0].Schedule == nil {
		t.Fatal("segment schedule not attached")
	}
	// Ground B's price override flows into the resolved settings.
	if result.Resolved.BasePrice != 120 {
		t.Errorf("Resolved.BasePrice = %v, want 120", result.Resolved.BasePrice)
	}
}

func TestCheckAvailabilityCombinationTarget(t *testing.T) {
	store := newStubStore()
	target := BookingTarget{Type: models.BookingTargetCombination, ID: 10}

	result, err := CheckAvailability(context.Background(), store, 1, target, testDay(12), testDay(14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Grounds) != 2 {
		t.Fatalf("combination should expand to 2 grounds, got %d", len(result.Grounds))
	}
}

func TestCheckAvailabilityInvalidTargets(t *testing.T) {
	store := newStubStore()
	ctx := context.Background()

	cases := []struct {
		name    string
		pitchID uint
		target  BookingTarget
	}{
		{"unknown pitch", 99, BookingTarget{Type: models.BookingTargetGround, ID: 1}},
		{"unknown ground", 1, BookingTarget{Type: models.BookingTargetGround, ID: 99}},
		{"unknown combination", 1, BookingTarget{Type: models.BookingTargetCombination, ID: 99}},
		{"bad target type", 1, BookingTarget{Type: "COURT", ID: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CheckAvailability(ctx, store, tc.pitchID, tc.target, testDay(12), testDay(13))
			if !IsErrorKind(err, ErrKindInvalidTarget) {
				t.Errorf("kind = %q, want %q", ErrorKind(err), ErrKindInvalidTarget)
			}
		})
	}
}

func TestCheckAvailabilityInactiveTarget(t *testing.T) {
	ctx := context.Background()
	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}

	store := newStubStore()
	store.pitch.Status = models.PitchStatusSuspended
	if _, err := CheckAvailability(ctx, store, 1, target, testDay(12), testDay(13)); !IsErrorKind(err, ErrKindInactiveTarget) {
		t.Errorf("suspended pitch: kind = %q, want %q", ErrorKind(err), ErrKindInactiveTarget)
	}

	store = newStubStore()
	store.grounds[1].Status = models.GroundStatusInactive
	if _, err := CheckAvailability(ctx, store, 1, target, testDay(12), testDay(13)); !IsErrorKind(err, ErrKindInactiveTarget) {
		t.Errorf("inactive ground: kind = %q, want %q", ErrorKind(err), ErrKindInactiveTarget)
	}

	// A combination with one inactive member is unavailable as a whole.
	combo := BookingTarget{Type: models.BookingTargetCombination, ID: 10}
	store = newStubStore()
	store.combinations[10].Grounds[1].Status = models.GroundStatusInactive
	if _, err := CheckAvailability(ctx, store, 1, combo, testDay(12), testDay(13)); !IsErrorKind(err, ErrKindInactiveTarget) {
		t.Errorf("combination with inactive member: kind = %q, want %q", ErrorKind(err), ErrKindInactiveTarget)
	}
}

func TestCheckAvailabilitySlotTaken(t *testing.T) {
	store := newStubStore()
	store.conflicts = []SlotConflict{{
		Reference: "AAAA1111",
		Status:    models.BookingStatusConfirmed,
		GroundIDs: []uint{1},
		StartDate: testDay(12),
		EndDate:   testDay(14),
	}}

	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}
	_, err := CheckAvailability(context.Background(), store, 1, target, testDay(13), testDay(15))
	if !IsErrorKind(err, ErrKindSlotTaken) {
		t.Fatalf("kind = %q, want %q", ErrorKind(err), ErrKindSlotTaken)
	}
	var be *BookingError
	if errors.As(err, &be) && !strings.Contains(be.Detail, "Ground A") {
		t.Errorf("detail should name the conflicting ground, got %q", be.Detail)
	}

	// The same ground booking blocks any combination that includes the ground.
	combo := BookingTarget{Type: models.BookingTargetCombination, ID: 10}
	if _, err := CheckAvailability(context.Background(), store, 1, combo, testDay(13), testDay(15)); !IsErrorKind(err, ErrKindSlotTaken) {
		t.Errorf("combination over occupied member: kind = %q, want %q", ErrorKind(err), ErrKindSlotTaken)
	}

	// Ground B shares no hour-ground pair with the conflict.
	free := BookingTarget{Type: models.BookingTargetGround, ID: 2}
	if _, err := CheckAvailability(context.Background(), store, 1, free, testDay(13), testDay(15)); err != nil {
		t.Errorf("disjoint ground should be free, got %v", err)
	}
}

func TestCheckAvailabilityAdjacentBookingsDoNotConflict(t *testing.T) {
	store := newStubStore()
	store.conflicts = []SlotConflict{{
		Reference: "AAAA1111",
		Status:    models.BookingStatusConfirmed,
		GroundIDs: []uint{1},
		StartDate: testDay(12),
		EndDate:   testDay(14),
	}}

	// Back-to-back on the shared boundary instant: [12,14) then [14,16).
	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}
	if _, err := CheckAvailability(context.Background(), store, 1, target, testDay(14), testDay(16)); err != nil {
		t.Errorf("adjacent range should not conflict, got %v", err)
	}
	if _, err := CheckAvailability(context.Background(), store, 1, target, testDay(10), testDay(12)); err != nil {
		t.Errorf("adjacent range should not conflict, got %v", err)
	}
}

func TestCheckAvailabilityScheduleException(t *testing.T) {
	store := newStubStore()
	store.exceptions = []models.ScheduleException{{
		PitchID:    1,
		TargetType: models.ExceptionTargetGround,
		TargetID:   1,
		StartDate:  testDay(0),
		EndDate:    testDay(23),
		Reason:     "resurfacing",
	}}

	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}
	_, err := CheckAvailability(context.Background(), store, 1, target, testDay(12), testDay(14))
	if !IsErrorKind(err, ErrKindScheduleException) {
		t.Fatalf("kind = %q, want %q", ErrorKind(err), ErrKindScheduleException)
	}

	// Ground 2 is not named by the exception.
	other := BookingTarget{Type: models.BookingTargetGround, ID: 2}
	if _, err := CheckAvailability(context.Background(), store, 1, other, testDay(12), testDay(14)); err != nil {
		t.Errorf("exception on another ground should not block, got %v", err)
	}
}

func TestCheckAvailabilityExceptionScopePrecedence(t *testing.T) {
	store := newStubStore()
	store.exceptions = []models.ScheduleException{
		{PitchID: 1, TargetType: models.ExceptionTargetGround, TargetID: 1, StartDate: testDay(0), EndDate: testDay(23)},
		{PitchID: 1, TargetType: models.ExceptionTargetPitch, TargetID: 1, StartDate: testDay(0), EndDate: testDay(23)},
	}

	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}
	_, err := CheckAvailability(context.Background(), store, 1, target, testDay(12), testDay(14))
	var be *BookingError
	if !errors.As(err, &be) || be.Kind != ErrKindScheduleException {
		t.Fatalf("kind = %q, want %q", ErrorKind(err), ErrKindScheduleException)
	}
	// The pitch-wide scope is reported even though a ground scope also matches.
	if !strings.Contains(be.Detail, "pitch") {
		t.Errorf("detail = %q, want the pitch scope reported first", be.Detail)
	}
}

func TestCheckAvailabilityNoSchedule(t *testing.T) {
	store := newStubStore()
	delete(store.schedules, 3) // Wednesday

	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}
	_, err := CheckAvailability(context.Background(), store, 1, target, testDay(12), testDay(14))
	if !IsErrorKind(err, ErrKindNoSchedule) {
		t.Errorf("kind = %q, want %q", ErrorKind(err), ErrKindNoSchedule)
	}
}

func TestCheckAvailabilityOutsideOperatingHours(t *testing.T) {
	store := newStubStore()
	target := BookingTarget{Type: models.BookingTargetGround, ID: 1}

	// 07:00 is before the 08:00 opening.
	if _, err := CheckAvailability(context.Background(), store, 1, target, testDay(7), testDay(9)); !IsErrorKind(err, ErrKindOutsideOperatingHours) {
		t.Errorf("early start: kind = %q, want %q", ErrorKind(err), ErrKindOutsideOperatingHours)
	}
	// 21:00-22:00 is the last bookable hour; 22:00-23:00 is past closing.
	if _, err := CheckAvailability(context.Background(), store, 1, target, testDay(21), testDay(22)); err != nil {
		t.Errorf("last hour before closing should be open, got %v", err)
	}
	if _, err := CheckAvailability(context.Background(), store, 1, target, testDay(21), testDay(23)); !IsErrorKind(err, ErrKindOutsideOperatingHours) {
		t.Errorf("past closing: kind = %q, want %q", ErrorKind(err), ErrKindOutsideOperatingHours)
	}
}
