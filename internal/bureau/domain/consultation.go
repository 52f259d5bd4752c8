package domain

import (
	"errors"
	"fmt"
	"time"
)

// Consultation is a prospect's request for a consultation. Contact fields
// are immutable after creation; only Status and the payment, registration
// and scheduling groups change over its lifetime. Records are never deleted.
type Consultation struct {
	ID string // UUID

	FullName    string
	Email       string
	Phone       string
	LinkedInURL string

	RoleTargets         []string
	LocationPreferences []string
	MinimumSalary       string
	TargetMarket        string
	EmploymentStatus    string
	PackageInterest     string
	AreaOfConcern       string
	ConsultationWindow  string
	Message             string
	ProposedSlots       []TimeSlot

	Status       Status
	StatusReason string // set on waitlisted and rejected

	Payment      Payment
	Registration Registration

	ConfirmedSlotIndex *int
	MeetingLink        string
	AdminNotes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConfirmedSlot returns the proposed slot referenced by ConfirmedSlotIndex.
func (c Consultation) ConfirmedSlot() (TimeSlot, bool) {
	if c.ConfirmedSlotIndex == nil {
		return TimeSlot{}, false
	}
	i := *c.ConfirmedSlotIndex
	if i < 0 || i >= len(c.ProposedSlots) {
		return TimeSlot{}, false
	}
	return c.ProposedSlots[i], true
}

// Payment is recorded on approved -> payment_verified.
type Payment struct {
	Method      string
	Amount      float64
	Reference   string
	Verified    bool
	VerifiedAt  *time.Time
	VerifiedBy  string
	PackageTier string
}

// Registration holds the fingerprint of the single registration token ever
// issued for a consultation. The token itself is never stored.
type Registration struct {
	TokenHash string
	ExpiresAt *time.Time
	Used      bool
	UsedAt    *time.Time
}

// Issued reports whether a registration token has been minted.
func (r Registration) Issued() bool { return r.TokenHash != "" }

const (
	slotDateLayout = "2006-01-02"
	slotTimeLayout = "15:04"
)

var ErrInvalidSlot = errors.New("invalid time slot")

// TimeSlot is a proposed meeting time: a calendar date and a 24h clock time.
type TimeSlot struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

func (s TimeSlot) Validate() error {
	if _, err := time.Parse(slotDateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidSlot, s.Date)
	}
	if _, err := time.Parse(slotTimeLayout, s.Time); err != nil {
		return fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidSlot, s.Time)
	}
	return nil
}

func (s TimeSlot) String() string { return s.Date + " " + s.Time }
