package services

import (
	"context"
	"time"

	"github.com/ammarsarhan/hagz-sub001/models"
)

// BookingTarget identifies what a request wants to book: a single ground or a
// combination, both scoped to a pitch.
type BookingTarget struct {
	Type string // models.BookingTargetGround | models.BookingTargetCombination
	ID   uint
}

// SlotConflict is an existing unavailable-status booking that overlaps a
// requested range, reduced to what the conflict checker needs.
type SlotConflict struct {
	Reference string
	Status    string
	GroundIDs []uint
	StartDate time.Time
	EndDate   time.Time
}

// EngineStore is the persistence collaborator of the engine. Implementations
// must run the overlap query and the subsequent insert of one orchestration
// call inside a single transaction (see InTx); the engine itself holds no
// locks. Lookups return ErrNotFound when the row is absent.
type EngineStore interface {
	PitchByID(ctx context.Context, id uint) (*models.Pitch, error)
	GroundByID(ctx context.Context, pitchID, id uint) (*models.Ground, error)
	// CombinationByID loads the combination with its member grounds.
	CombinationByID(ctx context.Context, pitchID, id uint) (*models.Combination, error)
	// OverlappingBookings returns unavailable-status bookings whose grounds
	// intersect groundIDs and whose half-open range overlaps [start, end).
	OverlappingBookings(ctx context.Context, groundIDs []uint, start, end time.Time) ([]SlotConflict, error)
	// ExceptionInRange returns the first schedule exception of the given
	// target kind whose closed range intersects [start, end], or nil.
	ExceptionInRange(ctx context.Context, targetType string, targetIDs []uint, start, end time.Time) (*models.ScheduleException, error)
	// SchedulesByWeekday batch-fetches the pitch's schedule rows for a set of
	// weekdays, keyed by weekday.
	SchedulesByWeekday(ctx context.Context, pitchID uint, weekdays []int) (map[int]*models.Schedule, error)
	// InsertBooking persists a new booking, returning ErrDuplicateReference
	// on a reference-code collision.
	InsertBooking(ctx context.Context, booking *models.Booking) error
	// InTx runs fn against a transactional view of the store. All reads and
	// writes of one orchestration call go through it.
	InTx(ctx context.Context, fn func(tx EngineStore) error) error
}
