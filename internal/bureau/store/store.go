package store

import (
	"context"
	"errors"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional writes whose precondition no
	// longer holds: the status moved on, or the token was already used.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface, implemented by the sqlite and
// postgres drivers. Repositories hang off it so that transactional code can
// only reach repositories bound to its own transaction.
type Store interface {
	Consultations() Consultations
	Clients() Clients
	Staff() StaffMembers
	Contacts() Contacts

	ApplyMigrations() error

	// Tx starts a transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only use repositories from tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ConsultationFilter selects consultations for listing. Zero values mean no
// constraint; Limit is clamped by the caller.
type ConsultationFilter struct {
	Statuses []domain.Status
	Email    string
	Query    string // case-insensitive substring of name or email
	Limit    int
	Offset   int
}

type Consultations interface {
	CreateConsultation(ctx context.Context, c domain.Consultation) error

	GetConsultation(ctx context.Context, id string) (domain.Consultation, error)

	// ListConsultations returns one page, newest first, and the total
	// number of matches.
	ListConsultations(ctx context.Context, f ConsultationFilter) ([]domain.Consultation, int, error)

	// UpdateConsultationIfStatus writes the lifecycle fields of c (status,
	// reason, payment, registration token, schedule, notes) only while the
	// stored status equals from. It never touches the registration used
	// flag. Returns ErrConflict when the status has moved on.
	UpdateConsultationIfStatus(ctx context.Context, c domain.Consultation, from domain.Status) error

	// MarkRegistrationUsed flips the used flag of the token whose
	// fingerprint is tokenHash from false to true in a single statement.
	// Returns ErrConflict when no unused token matched.
	MarkRegistrationUsed(ctx context.Context, id, tokenHash string, at time.Time) error

	// CountByStatus returns the number of consultations per status.
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

type Clients interface {
	// CreateClient returns ErrAlreadyExists when the email or consultation
	// already has an account.
	CreateClient(ctx context.Context, c domain.Client) error

	GetClientByID(ctx context.Context, id string) (domain.Client, error)
	GetClientByEmail(ctx context.Context, email string) (domain.Client, error)
	GetClientByConsultation(ctx context.Context, consultationID string) (domain.Client, error)
}

type StaffMembers interface {
	CreateStaff(ctx context.Context, s domain.Staff) error
	GetStaffByID(ctx context.Context, id string) (domain.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (domain.Staff, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)

	// SetStaffMFASecret stores a pending TOTP secret and clears any
	// previous enablement.
	SetStaffMFASecret(ctx context.Context, id, secret string) error
	EnableStaffMFA(ctx context.Context, id string, at time.Time) error
}

type Contacts interface {
	CreateContact(ctx context.Context, c domain.ContactRequest) error
	ListContacts(ctx context.Context, limit, offset int) ([]domain.ContactRequest, error)
}
