package evaluator

import (
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/stretchr/testify/require"
)

func c(r deck.Rank, s deck.Suit) deck.Card { return deck.Card{Rank: r, Suit: s} }

func TestEvaluateCategories(t *testing.T) {
	cases := []struct {
		name  string
		hole  [2]deck.Card
		board []deck.Card
		want  Category
	}{
		{
			name: "royal straight flush",
			hole: [2]deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Spades)},
			board: []deck.Card{
				c(deck.Queen, deck.Spades), c(deck.Jack, deck.Spades), c(deck.Ten, deck.Spades),
				c(deck.Two, deck.Hearts), c(deck.Three, deck.Clubs),
			},
			want: StraightFlush,
		},
		{
			name: "quads",
			hole: [2]deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts)},
			board: []deck.Card{
				c(deck.Nine, deck.Diamonds), c(deck.Nine, deck.Clubs), c(deck.Two, deck.Clubs),
				c(deck.Three, deck.Hearts), c(deck.Four, deck.Spades),
			},
			want: Quads,
		},
		{
			name: "full house",
			hole: [2]deck.Card{c(deck.Eight, deck.Spades), c(deck.Eight, deck.Hearts)},
			board: []deck.Card{
				c(deck.Eight, deck.Diamonds), c(deck.King, deck.Clubs), c(deck.King, deck.Hearts),
				c(deck.Two, deck.Hearts), c(deck.Three, deck.Spades),
			},
			want: FullHouse,
		},
		{
			name: "flush",
			hole: [2]deck.Card{c(deck.Two, deck.Clubs), c(deck.Nine, deck.Clubs)},
			board: []deck.Card{
				c(deck.Five, deck.Clubs), c(deck.Jack, deck.Clubs), c(deck.King, deck.Clubs),
				c(deck.Two, deck.Hearts), c(deck.Three, deck.Spades),
			},
			want: Flush,
		},
		{
			name: "wheel straight",
			hole: [2]deck.Card{c(deck.Ace, deck.Clubs), c(deck.Two, deck.Hearts)},
			board: []deck.Card{
				c(deck.Three, deck.Diamonds), c(deck.Four, deck.Clubs), c(deck.Five, deck.Spades),
				c(deck.King, deck.Hearts), c(deck.Queen, deck.Clubs),
			},
			want: Straight,
		},
		{
			name: "two pair",
			hole: [2]deck.Card{c(deck.Jack, deck.Spades), c(deck.Jack, deck.Hearts)},
			board: []deck.Card{
				c(deck.Four, deck.Diamonds), c(deck.Four, deck.Clubs), c(deck.Two, deck.Spades),
				c(deck.Nine, deck.Hearts), c(deck.Three, deck.Clubs),
			},
			want: TwoPair,
		},
		{
			name: "high card",
			hole: [2]deck.Card{c(deck.Two, deck.Spades), c(deck.Seven, deck.Hearts)},
			board: []deck.Card{
				c(deck.Nine, deck.Diamonds), c(deck.Jack, deck.Clubs), c(deck.King, deck.Spades),
				c(deck.Three, deck.Hearts), c(deck.Four, deck.Clubs),
			},
			want: HighCard,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.hole, tc.board)
			require.Equal(t, tc.want, got.Category)
			require.Len(t, got.BestFive, 5)
			require.NotEmpty(t, got.Description)
		})
	}
}

func TestCompareRanksAcesOverKings(t *testing.T) {
	aces := Evaluate(
		[2]deck.Card{c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts)},
		[]deck.Card{c(deck.Two, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Nine, deck.Hearts), c(deck.Jack, deck.Clubs), c(deck.King, deck.Spades)},
	)
	kings := Evaluate(
		[2]deck.Card{c(deck.King, deck.Hearts), c(deck.King, deck.Clubs)},
		[]deck.Card{c(deck.Two, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Nine, deck.Hearts), c(deck.Jack, deck.Clubs), c(deck.Queen, deck.Spades)},
	)
	require.True(t, aces.IsStrongerThan(kings))
	require.Equal(t, 1, aces.Compare(kings))
	require.Equal(t, -1, kings.Compare(aces))
}

func TestCompareKickerBreaksTie(t *testing.T) {
	board := []deck.Card{c(deck.Two, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Nine, deck.Hearts), c(deck.Jack, deck.Clubs), c(deck.King, deck.Spades)}
	higherKicker := Evaluate([2]deck.Card{c(deck.Ace, deck.Spades), c(deck.Queen, deck.Hearts)}, board)
	lowerKicker := Evaluate([2]deck.Card{c(deck.Ace, deck.Hearts), c(deck.Eight, deck.Spades)}, board)
	require.True(t, higherKicker.IsStrongerThan(lowerKicker))
}

func TestEvaluateFlopOnly(t *testing.T) {
	// exactly 5 total cards: hole + a 3-card flop board, no turn/river yet
	got := Evaluate([2]deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Spades)},
		[]deck.Card{c(deck.Queen, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Three, deck.Clubs)})
	require.Equal(t, HighCard, got.Category)
	require.Len(t, got.BestFive, 5)
}
