package idx_test

import (
	"testing"
	"time"

	"github.com/applybureau/bureau/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = idx.Parse("  ")
	require.ErrorIs(t, err, idx.ErrInvalid)
	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestGeneratorClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := idx.NewGenerator(func() time.Time { return fixed })

	a := g.New()
	b := g.New()

	// Same millisecond, monotonic entropy keeps them ordered
	require.Less(t, a.String(), b.String())
	require.WithinDuration(t, fixed, a.Time(), time.Millisecond)
}

func TestTimeOfInvalid(t *testing.T) {
	require.True(t, idx.ID("garbage").Time().IsZero())
}

func TestUUID(t *testing.T) {
	u := idx.NewUUID()
	got, err := idx.ParseUUID(u)
	require.NoError(t, err)
	require.Equal(t, u, got)

	got, err = idx.ParseUUID("  6BA7B810-9DAD-11D1-80B4-00C04FD430C8 ")
	require.NoError(t, err)
	require.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", got)

	_, err = idx.ParseUUID("1234")
	require.ErrorIs(t, err, idx.ErrInvalid)
}
