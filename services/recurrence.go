package services

import (
	"time"
)

const (
	RecurrenceOneWeek   = "ONE_WEEK"
	RecurrenceTwoWeek   = "TWO_WEEK"
	RecurrenceThreeWeek = "THREE_WEEK"
	RecurrenceOneMonth  = "ONE_MONTH"
	RecurrenceTwoMonth  = "TWO_MONTH"
)

type recurrenceStep struct {
	months int
	days   int
}

var recurrenceSteps = map[string]recurrenceStep{
	RecurrenceOneWeek:   {days: 7},
	RecurrenceTwoWeek:   {days: 14},
	RecurrenceThreeWeek: {days: 21},
	RecurrenceOneMonth:  {months: 1},
	RecurrenceTwoMonth:  {months: 2},
}

// ExpandRecurrence produces exactly occurrences dates, the first being start.
// Each occurrence adds the interval to the previous occurrence, not to the
// original start, so drift from month-length variation compounds forward
// ("every 2 months from the last booking" semantics).
func ExpandRecurrence(start time.Time, occurrences int, interval string) ([]time.Time, error) {
	step, ok := recurrenceSteps[interval]
	if !ok {
		return nil, newBookingError(ErrKindInvalidRecurrence, "recurrenceInterval", "unknown recurrence interval %q", interval)
	}
	if occurrences < 1 {
		return nil, newBookingError(ErrKindInvalidRecurrence, "recurrenceOccurrences", "occurrences must be at least 1")
	}

	dates := make([]time.Time, 0, occurrences)
	current := start
	for i := 0; i < occurrences; i++ {
		dates = append(dates, current)
		current = current.AddDate(0, step.months, step.days)
	}
	return dates, nil
}
