// Package idx generates identifiers: ULIDs for internal rows (staff, clients,
// contact requests, request ids) and UUIDs for consultation requests, whose
// identifiers are exposed to prospects.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID.
const Zero ID = ""

// ErrInvalid reports a malformed identifier.
var ErrInvalid = errors.New("idx: invalid id")

// Generator produces monotonic ULIDs. The zero value is not usable; use
// NewGenerator.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewGenerator returns a generator reading time from now. A nil now uses
// time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		now:     now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (g *Generator) New() ID {
	return g.NewAt(g.now())
}

func (g *Generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t.UTC()), g.entropy)
	return ID(u.String())
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

func def() *Generator {
	defaultOnce.Do(func() { defaultGen = NewGenerator(nil) })
	return defaultGen
}

// New returns a ULID from the package generator.
func New() ID { return def().New() }

// NewAt returns a ULID stamped with t.
func NewAt(t time.Time) ID { return def().NewAt(t) }

// Parse validates a ULID string.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) IsZero() bool { return id == Zero }
func (id ID) String() string { return string(id) }

// Time extracts the embedded timestamp, or the zero time for invalid IDs.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

// NewUUID returns a random (v4) UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// ParseUUID validates s and returns its canonical lowercase form.
func ParseUUID(s string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalid
	}
	return u.String(), nil
}
