package gameid

import (
	"sort"
	"testing"
	"time"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesValidIDs(t *testing.T) {
	id := Generate()
	require.Len(t, id, 26)
	require.NoError(t, Validate(id))
	require.LessOrEqual(t, id[0], byte('7'))
}

func TestGenerateIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Generate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIDsSortByCreationTime(t *testing.T) {
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, Generate())
		time.Sleep(2 * time.Millisecond)
	}
	require.True(t, sort.StringsAreSorted(ids), "ids not time-ordered: %v", ids)
}

func TestGenerateWithRandSourceIsDeterministicWithinAMillisecond(t *testing.T) {
	// Two ids minted from identically seeded sources differ only if the
	// millisecond ticks over between them; the random tails are equal.
	a := GenerateWithRandSource(randutil.New(7))
	b := GenerateWithRandSource(randutil.New(7))
	require.Equal(t, a[10:], b[10:])
}

func TestValidateRejectsMalformedIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "0123456789"},
		{"too long", "0123456789abcdefghjkmnpqrstvwxyz"},
		{"bad first char", "z0000000000000000000000000"},
		{"excluded letter", "0l000000000000000000000000"},
		{"uppercase", "0A000000000000000000000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, Validate(tc.id))
		})
	}
}

func TestValidateAcceptsGenerated(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.NoError(t, Validate(Generate()))
	}
}
