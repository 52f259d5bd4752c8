package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrInvalidTransition    = errors.New("invalid status transition")

	ErrTokenInvalid     = errors.New("registration token is invalid")
	ErrTokenExpired     = errors.New("registration token has expired")
	ErrTokenAlreadyUsed = errors.New("registration token has already been used")
	ErrAccountExists    = errors.New("an account already exists for this email")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMFARequired        = errors.New("mfa code required")
	ErrInvalidOTP         = errors.New("invalid mfa code")
	ErrMFANotEnrolled     = errors.New("mfa not enrolled")
	ErrMFAAlreadyEnabled  = errors.New("mfa already enabled")
	ErrStaffExists        = errors.New("staff member already exists")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrClientNotFound     = errors.New("client not found")

	// ErrDependency marks datastore and signer failures. Callers see a
	// generic message; the wrapped cause is only logged.
	ErrDependency = errors.New("dependency failure")
)

// ValidationError lists user-correctable problems by field. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = reason
	}
}

// err returns nil when no field failed.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func invalidField(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// TransitionError reports a status change that is not an edge of the
// lifecycle graph. It matches ErrInvalidTransition with errors.Is.
type TransitionError struct {
	From    domain.Status
	To      domain.Status
	Allowed []domain.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move consultation from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func newTransitionError(from, to domain.Status) *TransitionError {
	return &TransitionError{From: from, To: to, Allowed: domain.AllowedTargets(from)}
}

func dependency(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDependency, err)
}
