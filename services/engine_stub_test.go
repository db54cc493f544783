package services

import (
	"context"
	"time"

	"github.com/ammarsarhan/hagz-sub001/models"
)

// stubStore is an in-memory EngineStore for driving the engine in tests,
// after the repository-stub pattern used across the schedule service tests.
type stubStore struct {
	pitch        *models.Pitch
	grounds      map[uint]*models.Ground
	combinations map[uint]*models.Combination
	conflicts    []SlotConflict
	exceptions   []models.ScheduleException
	schedules    map[int]*models.Schedule

	inserted   []models.Booking
	insertErrs []error
	dupRefs    map[string]bool
}

func (s *stubStore) PitchByID(ctx context.Context, id uint) (*models.Pitch, error) {
	if s.pitch == nil || s.pitch.ID != id {
		return nil, ErrNotFound
	}
	return s.pitch, nil
}

func (s *stubStore) GroundByID(ctx context.Context, pitchID, id uint) (*models.Ground, error) {
	ground, ok := s.grounds[id]
	if !ok || ground.PitchID != pitchID {
		return nil, ErrNotFound
	}
	return ground, nil
}

func (s *stubStore) CombinationByID(ctx context.Context, pitchID, id uint) (*models.Combination, error) {
	combination, ok := s.combinations[id]
	if !ok || combination.PitchID != pitchID {
		return nil, ErrNotFound
	}
	return combination, nil
}

func (s *stubStore) OverlappingBookings(ctx context.Context, groundIDs []uint, start, end time.Time) ([]SlotConflict, error) {
	requested := map[uint]bool{}
	for _, id := range groundIDs {
		requested[id] = true
	}
	var out []SlotConflict
	for _, conflict := range s.conflicts {
		if !conflict.StartDate.Before(end) || !conflict.EndDate.After(start) {
			continue
		}
		for _, id := range conflict.GroundIDs {
			if requested[id] {
				out = append(out, conflict)
				break
			}
		}
	}
	return out, nil
}

func (s *stubStore) ExceptionInRange(ctx context.Context, targetType string, targetIDs []uint, start, end time.Time) (*models.ScheduleException, error) {
	ids := map[uint]bool{}
	for _, id := range targetIDs {
		ids[id] = true
	}
	for i := range s.exceptions {
		exception := s.exceptions[i]
		if exception.TargetType == targetType && ids[exception.TargetID] && exception.Covers(start, end) {
			return &exception, nil
		}
	}
	return nil, nil
}

func (s *stubStore) SchedulesByWeekday(ctx context.Context, pitchID uint, weekdays []int) (map[int]*models.Schedule, error) {
	out := map[int]*models.Schedule{}
	for _, weekday := range weekdays {
		if schedule, ok := s.schedules[weekday]; ok {
			out[weekday] = schedule
		}
	}
	return out, nil
}

func (s *stubStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	if len(s.insertErrs) > 0 {
		err := s.insertErrs[0]
		s.insertErrs = s.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	if s.dupRefs[booking.Reference] {
		return ErrDuplicateReference
	}
	s.inserted = append(s.inserted, *booking)
	return nil
}

// InTx emulates transactional rollback: inserts made by fn are discarded when
// it fails.
func (s *stubStore) InTx(ctx context.Context, fn func(tx EngineStore) error) error {
	snapshot := len(s.inserted)
	if err := fn(s); err != nil {
		s.inserted = s.inserted[:snapshot]
		return err
	}
	return nil
}

// newStubStore builds a live pitch with two grounds (B carries a price
// override), a combination of both, and a full week open 08:00-22:00 with
// peak hours {18,19,20} and off-peak hours {8,9,10}.
func newStubStore() *stubStore {
	pitch := &models.Pitch{
		Name:                 "Nile Valley Sports Park",
		Status:               models.PitchStatusLive,
		BasePrice:            100,
		MinBookingHours:      1,
		MaxBookingHours:      4,
		AdvanceBooking:       2,
		PaymentDeadline:      4,
		CancellationGrace:    1,
		PeakHourSurchargePct: 10,
		OffPeakDiscountPct:   15,
		AutomaticApproval:    true,
	}
	pitch.ID = 1

	groundA := &models.Ground{PitchID: 1, Name: "Ground A", Status: models.GroundStatusLive}
	groundA.ID = 1
	priceB := 120.0
	groundB := &models.Ground{PitchID: 1, Name: "Ground B", Status: models.GroundStatusLive,
		SettingsOverride: models.SettingsOverride{Price: &priceB}}
	groundB.ID = 2

	combination := &models.Combination{PitchID: 1, Name: "Full Field", Grounds: []models.Ground{*groundA, *groundB}}
	combination.ID = 10

	schedules := map[int]*models.Schedule{}
	for weekday := 0; weekday < 7; weekday++ {
		schedules[weekday] = &models.Schedule{
			PitchID:      1,
			Weekday:      weekday,
			OpenTime:     8,
			CloseTime:    22,
			PeakHours:    models.EncodeHourSet([]int{18, 19, 20}),
			OffPeakHours: models.EncodeHourSet([]int{8, 9, 10}),
		}
	}

	return &stubStore{
		pitch:        pitch,
		grounds:      map[uint]*models.Ground{1: groundA, 2: groundB},
		combinations: map[uint]*models.Combination{10: combination},
		schedules:    schedules,
		dupRefs:      map[string]bool{},
	}
}

// fixedRefs returns each code in order, then repeats the last one.
type fixedRefs struct {
	codes []string
	i     int
}

func (f *fixedRefs) Generate() string {
	if f.i < len(f.codes)-1 {
		code := f.codes[f.i]
		f.i++
		return code
	}
	return f.codes[len(f.codes)-1]
}

func testEngine(store *stubStore, now time.Time) *Engine {
	return &Engine{
		store: store,
		refs:  NewReferenceSource(),
		now:   func() time.Time { return now },
	}
}
