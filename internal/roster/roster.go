package roster

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("sponsored student not found")
	ErrAlreadyAssigned = errors.New("student already assigned to this sponsorship")
)

// Status represents whether a roster row still counts against the
// sponsorship.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ActivityLog is one dated note on a sponsored student's record.
type ActivityLog struct {
	At   time.Time `json:"at"`
	Note string    `json:"note"`
}

// SponsoredStudent links one student to one sponsorship. A student appears
// at most once per sponsorship. RenewedFrom points at the roster row this
// one was copied from during a renewal; old rows are never deleted so
// historical attribution survives.
type SponsoredStudent struct {
	ID            uuid.UUID
	SponsorshipID uuid.UUID
	StudentID     uuid.UUID
	Status        Status
	Progress      map[string]string
	ActivityLogs  []ActivityLog
	Tags          []string
	JoinedAt      time.Time
	RenewedFrom   *uuid.UUID
	CreatedAt     time.Time
}
