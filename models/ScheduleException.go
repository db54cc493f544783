package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ExceptionTargetPitch       = "PITCH"
	ExceptionTargetGround      = "GROUND"
	ExceptionTargetCombination = "COMBINATION"
)

// ScheduleException closes a date range [StartDate, EndDate] (inclusive on
// both ends) for a pitch, a single ground or a combination, superseding the
// regular weekly schedule. Any booking overlapping the range on a relevant
// target is blocked.
type ScheduleException struct {
	gorm.Model
	PitchID    uint      `json:"pitchID" gorm:"not null;index"`
	TargetType string    `json:"targetType" gorm:"type:varchar(20);index"`
	TargetID   uint      `json:"targetID" gorm:"index"`
	StartDate  time.Time `json:"startDate" gorm:"not null;index"`
	EndDate    time.Time `json:"endDate" gorm:"not null;index"`
	Reason     string    `json:"reason"`

	Pitch *Pitch `json:"pitch,omitempty" gorm:"foreignKey:PitchID"`
}

// Covers reports whether the exception's closed range intersects [start, end].
func (e *ScheduleException) Covers(start, end time.Time) bool {
	return !e.StartDate.After(end) && !e.EndDate.Before(start)
}
