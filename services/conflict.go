package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ammarsarhan/hagz-sub001/models"
)

// HourSegment is one whole hour of a requested range, annotated with the
// weekday schedule that governs it. The segment set runs from the start
// through the end exclusive of the final boundary instant.
type HourSegment struct {
	Start    time.Time
	Hour     int
	Weekday  int
	Schedule *models.Schedule
}

// AvailabilityResult carries everything the pricing calculator needs so the
// orchestrator does not touch the store a second time.
type AvailabilityResult struct {
	Pitch    *models.Pitch
	Grounds  []models.Ground
	Resolved ResolvedSettings
	Segments []HourSegment
}

// exceptionScope pairs a schedule-exception kind with the target ids to probe.
// Scopes are evaluated in order and the first hit wins, so the precedence
// (pitch, then combination, then ground) is data, not control flow.
type exceptionScope struct {
	kind string
	ids  []uint
}

// resolveTarget loads the pitch and expands the target into its member ground
// set: a ground target is itself, a combination target expands to its linked
// grounds. Returns the target-level settings override alongside.
func resolveTarget(ctx context.Context, store EngineStore, pitchID uint, target BookingTarget) (*models.Pitch, []models.Ground, *models.SettingsOverride, error) {
	pitch, err := store.PitchByID(ctx, pitchID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, nil, newBookingError(ErrKindInvalidTarget, "pitchID", "pitch %d not found", pitchID)
	}
	if err != nil {
		return nil, nil, nil, persistenceError(err)
	}

	switch target.Type {
	case models.BookingTargetGround:
		ground, err := store.GroundByID(ctx, pitchID, target.ID)
		if errors.Is(err, ErrNotFound) {
			return nil, nil, nil, newBookingError(ErrKindInvalidTarget, "targetID", "ground %d not found under pitch %d", target.ID, pitchID)
		}
		if err != nil {
			return nil, nil, nil, persistenceError(err)
		}
		return pitch, []models.Ground{*ground}, &ground.SettingsOverride, nil
	case models.BookingTargetCombination:
		combination, err := store.CombinationByID(ctx, pitchID, target.ID)
		if errors.Is(err, ErrNotFound) {
			return nil, nil, nil, newBookingError(ErrKindInvalidTarget, "targetID", "combination %d not found under pitch %d", target.ID, pitchID)
		}
		if err != nil {
			return nil, nil, nil, persistenceError(err)
		}
		return pitch, combination.Grounds, &combination.SettingsOverride, nil
	default:
		return nil, nil, nil, newBookingError(ErrKindInvalidTarget, "targetType", "unknown target type %q", target.Type)
	}
}

// CheckAvailability decides whether [start, end) may become a booking on the
// target, short-circuiting on the first failure: inactive statuses, overlap
// with an unavailable-status booking, a schedule exception at any applicable
// scope, or hours the weekly schedule does not cover.
func CheckAvailability(ctx context.Context, store EngineStore, pitchID uint, target BookingTarget, start, end time.Time) (*AvailabilityResult, error) {
	pitch, grounds, override, err := resolveTarget(ctx, store, pitchID, target)
	if err != nil {
		return nil, err
	}

	if !pitch.Bookable() {
		return nil, newBookingError(ErrKindInactiveTarget, "pitchID", "pitch %q is not live", pitch.Name)
	}
	for i := range grounds {
		if !grounds[i].Bookable() {
			return nil, newBookingError(ErrKindInactiveTarget, "targetID", "ground %q is not live", grounds[i].Name)
		}
	}

	groundIDs := make([]uint, 0, len(grounds))
	groundNames := map[uint]string{}
	for i := range grounds {
		groundIDs = append(groundIDs, grounds[i].ID)
		groundNames[grounds[i].ID] = grounds[i].Name
	}

	conflicts, err := store.OverlappingBookings(ctx, groundIDs, start, end)
	if err != nil {
		return nil, persistenceError(err)
	}
	if len(conflicts) > 0 {
		return nil, newBookingError(ErrKindSlotTaken, "startDate", "slot taken on %s", strings.Join(conflictingGroundNames(conflicts, groundNames), ", "))
	}

	scopes := []exceptionScope{
		{kind: models.ExceptionTargetPitch, ids: []uint{pitch.ID}},
	}
	if target.Type == models.BookingTargetCombination {
		scopes = append(scopes, exceptionScope{kind: models.ExceptionTargetCombination, ids: []uint{target.ID}})
	}
	scopes = append(scopes, exceptionScope{kind: models.ExceptionTargetGround, ids: groundIDs})

	for _, scope := range scopes {
		exception, err := store.ExceptionInRange(ctx, scope.kind, scope.ids, start, end)
		if err != nil {
			return nil, persistenceError(err)
		}
		if exception != nil {
			return nil, newBookingError(ErrKindScheduleException, "startDate", "schedule exception at %s scope blocks the range", strings.ToLower(scope.kind))
		}
	}

	segments, err := buildSegments(ctx, store, pitch.ID, start, end)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Pitch:    pitch,
		Grounds:  grounds,
		Resolved: ResolveSettings(pitch, override),
		Segments: segments,
	}, nil
}

// buildSegments decomposes [start, end) into whole-hour segments and attaches
// the weekday schedules, fetched once per distinct weekday rather than per
// segment.
func buildSegments(ctx context.Context, store EngineStore, pitchID uint, start, end time.Time) ([]HourSegment, error) {
	var segments []HourSegment
	weekdaySet := map[int]bool{}
	for t := start; t.Before(end); t = t.Add(time.Hour) {
		weekday := models.WeekdayOf(t)
		weekdaySet[weekday] = true
		segments = append(segments, HourSegment{Start: t, Hour: t.Hour(), Weekday: weekday})
	}

	weekdays := make([]int, 0, len(weekdaySet))
	for weekday := range weekdaySet {
		weekdays = append(weekdays, weekday)
	}
	sort.Ints(weekdays)

	schedules, err := store.SchedulesByWeekday(ctx, pitchID, weekdays)
	if err != nil {
		return nil, persistenceError(err)
	}

	for i := range segments {
		schedule, ok := schedules[segments[i].Weekday]
		if !ok || schedule == nil {
			return nil, newBookingError(ErrKindNoSchedule, "startDate", "no schedule for weekday %d", segments[i].Weekday)
		}
		if !schedule.IsOpenAt(segments[i].Hour) {
			return nil, newBookingError(ErrKindOutsideOperatingHours, "startDate", "hour %02d:00 is outside operating hours %02d:00-%02d:00", segments[i].Hour, schedule.OpenTime, schedule.CloseTime)
		}
		segments[i].Schedule = schedule
	}
	return segments, nil
}

func conflictingGroundNames(conflicts []SlotConflict, names map[uint]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, conflict := range conflicts {
		for _, id := range conflict.GroundIDs {
			name, ok := names[id]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
