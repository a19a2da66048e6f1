package pot

import (
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/stretchr/testify/require"
)

func TestBuildPotsNoAllIn(t *testing.T) {
	contributions := []Contribution{
		{Seat: 0, Committed: 100},
		{Seat: 1, Committed: 100},
		{Seat: 2, Committed: 100},
	}
	pots := BuildPots(contributions)
	require.Len(t, pots, 1)
	require.Equal(t, 300, pots[0].Amount)
	require.Equal(t, map[int]bool{0: true, 1: true, 2: true}, pots[0].Eligible)
}

func TestBuildPotsSidePotForShortAllIn(t *testing.T) {
	// seat 0 all-in for 50, seats 1 and 2 each put in 150.
	contributions := []Contribution{
		{Seat: 0, Committed: 50},
		{Seat: 1, Committed: 150},
		{Seat: 2, Committed: 150},
	}
	pots := BuildPots(contributions)
	require.Len(t, pots, 2)

	require.Equal(t, 150, pots[0].Amount) // 50*3
	require.Equal(t, map[int]bool{0: true, 1: true, 2: true}, pots[0].Eligible)

	require.Equal(t, 200, pots[1].Amount) // (150-50)*2
	require.Equal(t, map[int]bool{1: true, 2: true}, pots[1].Eligible)

	require.Equal(t, 350, Total(pots))
}

func TestBuildPotsFoldedContributionStillCounted(t *testing.T) {
	contributions := []Contribution{
		{Seat: 0, Committed: 100, Folded: true},
		{Seat: 1, Committed: 100},
		{Seat: 2, Committed: 100},
	}
	pots := BuildPots(contributions)
	require.Len(t, pots, 1)
	require.Equal(t, 300, pots[0].Amount)
	require.Equal(t, map[int]bool{1: true, 2: true}, pots[0].Eligible)
}

func acesHand() evaluator.HandRanking {
	return evaluator.Evaluate(
		[2]deck.Card{{Rank: deck.Ace, Suit: deck.Spades}, {Rank: deck.Ace, Suit: deck.Hearts}},
		[]deck.Card{{Rank: deck.Two, Suit: deck.Clubs}, {Rank: deck.Five, Suit: deck.Diamonds}, {Rank: deck.Nine, Suit: deck.Hearts}, {Rank: deck.Jack, Suit: deck.Clubs}, {Rank: deck.King, Suit: deck.Spades}},
	)
}

func TestDistributeSingleWinner(t *testing.T) {
	pots := []Pot{{Amount: 300, Eligible: map[int]bool{0: true, 1: true}}}
	winnerHand := acesHand()
	loserHand := evaluator.Evaluate(
		[2]deck.Card{{Rank: deck.Two, Suit: deck.Spades}, {Rank: deck.Seven, Suit: deck.Hearts}},
		[]deck.Card{{Rank: deck.Nine, Suit: deck.Diamonds}, {Rank: deck.Jack, Suit: deck.Clubs}, {Rank: deck.King, Suit: deck.Spades}, {Rank: deck.Three, Suit: deck.Hearts}, {Rank: deck.Four, Suit: deck.Clubs}},
	)
	rankings := map[int]evaluator.HandRanking{0: winnerHand, 1: loserHand}
	awards := Distribute(pots, rankings, []int{1, 0})
	require.Len(t, awards, 1)
	require.Equal(t, 0, awards[0].Seat)
	require.Equal(t, 300, awards[0].Amount)
}

func TestDistributeOddChipGoesClockwiseFromButton(t *testing.T) {
	pots := []Pot{{Amount: 301, Eligible: map[int]bool{0: true, 1: true, 2: true}}}
	tied := acesHand()
	rankings := map[int]evaluator.HandRanking{0: tied, 1: tied, 2: tied}

	// button is seat 2; clockwise order starting left of button is 0,1,2
	awards := Distribute(pots, rankings, []int{0, 1, 2})
	require.Len(t, awards, 3)

	total := 0
	bySeat := map[int]int{}
	for _, a := range awards {
		bySeat[a.Seat] = a.Amount
		total += a.Amount
	}
	require.Equal(t, 301, total)
	require.Equal(t, 101, bySeat[0]) // first clockwise from button gets the odd chip
	require.Equal(t, 100, bySeat[1])
	require.Equal(t, 100, bySeat[2])
}
