package models

import (
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Booking status state machine:
// UNAPPROVED -> PENDING -> APPROVED -> CONFIRMED -> IN_PROGRESS -> COMPLETED,
// with CANCELLED / REJECTED / EXPIRED / NO_SHOW reachable from any
// pre-COMPLETED state.
const (
	BookingStatusUnapproved = "UNAPPROVED"
	BookingStatusPending    = "PENDING"
	BookingStatusApproved   = "APPROVED"
	BookingStatusConfirmed  = "CONFIRMED"
	BookingStatusInProgress = "IN_PROGRESS"
	BookingStatusCompleted  = "COMPLETED"
	BookingStatusCancelled  = "CANCELLED"
	BookingStatusRejected   = "REJECTED"
	BookingStatusExpired    = "EXPIRED"
	BookingStatusNoShow     = "NO_SHOW"
)

const (
	BookingTargetGround      = "GROUND"
	BookingTargetCombination = "COMBINATION"
)

const (
	PaymentMethodCash   = "CASH"
	PaymentMethodCard   = "CARD"
	PaymentMethodWallet = "WALLET"
)

// UnavailableBookingStatuses are the statuses that occupy a time slot and
// block conflicting requests. Everything else releases the slot.
var UnavailableBookingStatuses = []string{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusConfirmed,
	BookingStatusInProgress,
}

var terminalBookingStatuses = []string{
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusRejected,
	BookingStatusExpired,
	BookingStatusNoShow,
}

type Booking struct {
	gorm.Model
	Reference  string    `json:"reference" gorm:"type:varchar(8);uniqueIndex"`
	PitchID    uint      `json:"pitchID" gorm:"not null;index"`
	TargetType string    `json:"targetType" gorm:"type:varchar(20)"`
	TargetID   uint      `json:"targetID" gorm:"index"`
	UserID     uint      `json:"userID" gorm:"not null;index"`
	StartDate  time.Time `json:"startDate" gorm:"not null;index"`
	EndDate    time.Time `json:"endDate" gorm:"not null;index"`
	Status     string    `json:"status" gorm:"type:varchar(20);index"`
	TotalPrice float64   `json:"totalPrice"`

	PaymentMethod string `json:"paymentMethod" gorm:"type:varchar(20)"`
	Note          string `json:"note"`

	// Lifecycle deadlines computed at creation time.
	ApprovalDeadline     time.Time `json:"approvalDeadline"`
	PaymentDeadline      time.Time `json:"paymentDeadline"`
	AdvanceDeadline      time.Time `json:"advanceDeadline"`
	CancellationDeadline time.Time `json:"cancellationDeadline"`

	// Shared by every occurrence of one recurring request.
	RecurrenceGroupID *string `json:"recurrenceGroupID" gorm:"type:varchar(36);index"`

	Pitch *Pitch `json:"pitch,omitempty" gorm:"foreignKey:PitchID"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (b *Booking) IsTerminal() bool {
	return slices.Contains(terminalBookingStatuses, b.Status)
}
