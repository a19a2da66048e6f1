package deck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeckFromSeedIsReproducible(t *testing.T) {
	a := NewDeckFromSeed(42)
	b := NewDeckFromSeed(42)

	for i := 0; i < 52; i++ {
		ca, err := a.Draw()
		require.NoError(t, err)
		cb, err := b.Draw()
		require.NoError(t, err)
		require.Equal(t, ca, cb)
	}
}

func TestNewDeckFromSeedHasAllCards(t *testing.T) {
	d := NewDeckFromSeed(7)
	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		require.False(t, seen[c], "duplicate card drawn: %s", c)
		seen[c] = true
	}
	require.Len(t, seen, 52)
}

func TestDrawPastEndReturnsExhausted(t *testing.T) {
	d := Inject([]Card{{Suit: Spades, Rank: Ace}})
	_, err := d.Draw()
	require.NoError(t, err)

	_, err = d.Draw()
	require.ErrorIs(t, err, ErrDeckExhausted)
}

func TestInjectPreservesOrder(t *testing.T) {
	seq := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Hearts, Rank: King},
		{Suit: Clubs, Rank: Two},
	}
	d := Inject(seq)
	for _, want := range seq {
		got, err := d.Draw()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRemaining(t *testing.T) {
	d := NewDeckFromSeed(1)
	require.Equal(t, 52, d.Remaining())
	_, _ = d.Draw()
	require.Equal(t, 51, d.Remaining())
}
