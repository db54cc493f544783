package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ammarsarhan/hagz-sub001/models"
)

// maxReferenceAttempts bounds the collision retry loop on booking inserts.
const maxReferenceAttempts = 5

// Engine is the booking admissibility orchestrator: it composes settings
// resolution, the conflict checker, the pricing calculator and the deadline
// calculator into one "can this booking exist, and at what price and with
// what deadlines" decision, then persists the result.
type Engine struct {
	store EngineStore
	refs  ReferenceSource
	now   func() time.Time
}

func NewEngine(store EngineStore) *Engine {
	return &Engine{
		store: store,
		refs:  NewReferenceSource(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type RecurrenceInput struct {
	Occurrences int    `json:"occurrences"`
	Interval    string `json:"interval"`
	// EndDate is advisory only; once Occurrences is set it always wins.
	EndDate *time.Time `json:"endDate"`
}

type CreateBookingInput struct {
	PitchID       uint
	TargetType    string
	TargetID      uint
	UserID        uint
	IssuerIsOwner bool
	StartDate     time.Time
	EndDate       time.Time
	PaymentMethod string
	PaidInFull    bool
	Note          string
	Recurrence    *RecurrenceInput
}

// PreviewInput is the read-only subset used by the price/deadline previews.
type PreviewInput struct {
	PitchID    uint
	TargetType string
	TargetID   uint
	StartDate  time.Time
	EndDate    time.Time
}

// CreateBooking runs the full admissibility sequence and inserts the booking
// rows. A recurring request expands into N occurrences that are checked and
// inserted as one all-or-nothing transaction; a partial result never
// survives. Returns every created booking, first occurrence first.
func (e *Engine) CreateBooking(ctx context.Context, in CreateBookingInput) ([]models.Booking, error) {
	duration := in.EndDate.Sub(in.StartDate)

	starts := []time.Time{in.StartDate}
	var groupID *string
	if in.Recurrence != nil && in.Recurrence.Occurrences > 1 {
		expanded, err := ExpandRecurrence(in.StartDate, in.Recurrence.Occurrences, in.Recurrence.Interval)
		if err != nil {
			return nil, err
		}
		starts = expanded
		id := uuid.NewString()
		groupID = &id
	}

	var created []models.Booking
	err := e.store.InTx(ctx, func(tx EngineStore) error {
		for _, start := range starts {
			booking, err := e.createOne(ctx, tx, in, start, start.Add(duration), groupID)
			if err != nil {
				return err
			}
			created = append(created, *booking)
		}
		return nil
	})
	if err != nil {
		if ErrorKind(err) != "" || errors.Is(err, ErrDeadlineConfig) {
			return nil, err
		}
		return nil, persistenceError(err)
	}
	return created, nil
}

func (e *Engine) createOne(ctx context.Context, tx EngineStore, in CreateBookingInput, start, end time.Time, groupID *string) (*models.Booking, error) {
	result, err := CheckAvailability(ctx, tx, in.PitchID, BookingTarget{Type: in.TargetType, ID: in.TargetID}, start, end)
	if err != nil {
		return nil, err
	}

	hours := end.Sub(start).Hours()
	if hours < float64(result.Resolved.MinBookingHours) || hours > float64(result.Resolved.MaxBookingHours) {
		return nil, newBookingError(ErrKindInvalidDuration, "endDate", "booking must last between %d and %d hours", result.Resolved.MinBookingHours, result.Resolved.MaxBookingHours)
	}

	total := PriceSegments(result.Segments, result.Grounds, result.Pitch.BasePrice, result.Resolved)

	now := e.now()
	deadlines, err := ComputeDeadlines(result.Resolved, start, now)
	if err != nil {
		return nil, err
	}
	if now.After(deadlines.Advance) {
		return nil, newBookingError(ErrKindAdvanceWindowPassed, "startDate", "advance booking window of %.1f hours has passed", result.Resolved.AdvanceBooking)
	}

	booking := &models.Booking{
		PitchID:              in.PitchID,
		TargetType:           in.TargetType,
		TargetID:             in.TargetID,
		UserID:               in.UserID,
		StartDate:            start,
		EndDate:              end,
		Status:               initialStatus(in, result.Resolved),
		TotalPrice:           total,
		PaymentMethod:        in.PaymentMethod,
		Note:                 in.Note,
		ApprovalDeadline:     deadlines.Approval,
		PaymentDeadline:      deadlines.Payment,
		AdvanceDeadline:      deadlines.Advance,
		CancellationDeadline: deadlines.Cancellation,
		RecurrenceGroupID:    groupID,
	}

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		booking.Reference = e.refs.Generate()
		err = tx.InsertBooking(ctx, booking)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, ErrDuplicateReference) {
			return nil, persistenceError(err)
		}
	}
	return nil, persistenceError(ErrDuplicateReference)
}

// initialStatus picks the policy-determined starting state: paid-in-full or
// cash under automatic approval confirms immediately; an end-user issuer or a
// non-automatic policy starts unapproved; an owner under automatic approval
// starts pending.
func initialStatus(in CreateBookingInput, resolved ResolvedSettings) string {
	if in.PaidInFull || (in.PaymentMethod == models.PaymentMethodCash && resolved.AutomaticApproval) {
		return models.BookingStatusConfirmed
	}
	if !in.IssuerIsOwner || !resolved.AutomaticApproval {
		return models.BookingStatusUnapproved
	}
	return models.BookingStatusPending
}

// PreviewPrice prices a candidate range without writing anything.
func (e *Engine) PreviewPrice(ctx context.Context, in PreviewInput) (float64, error) {
	result, err := CheckAvailability(ctx, e.store, in.PitchID, BookingTarget{Type: in.TargetType, ID: in.TargetID}, in.StartDate, in.EndDate)
	if err != nil {
		return 0, err
	}
	return PriceSegments(result.Segments, result.Grounds, result.Pitch.BasePrice, result.Resolved), nil
}

// PreviewDeadlines computes the deadline set for a candidate start without
// writing anything. Conflicts are not checked here; this is a what-if call.
func (e *Engine) PreviewDeadlines(ctx context.Context, in PreviewInput) (Deadlines, error) {
	pitch, _, override, err := resolveTarget(ctx, e.store, in.PitchID, BookingTarget{Type: in.TargetType, ID: in.TargetID})
	if err != nil {
		return Deadlines{}, err
	}
	return ComputeDeadlines(ResolveSettings(pitch, override), in.StartDate, e.now())
}
