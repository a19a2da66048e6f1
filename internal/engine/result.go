package engine

import (
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
)

// HandResult summarizes one completed, or aborted, hand for the caller
// that invoked RunHand (normally a Table).
type HandResult struct {
	HandNumber     int
	Winners        []events.Winner
	PotTotal       int
	CommunityCards []deck.Card
	Aborted        bool
	AbortReason    string
}
