package engine

import "github.com/lox/holdem-engine/internal/deck"

// Status is a player's standing within the hand currently in progress.
type Status string

const (
	StatusActive Status = "active"
	StatusAllIn  Status = "all_in"
	StatusFolded Status = "folded"
)

// Player is one seat's state for the hand currently in progress.
type Player struct {
	Seat           int
	ID             string
	Chips          int // remaining stack, not yet committed to the pot
	HoleCards      [2]deck.Card
	Status         Status
	LastAction     string // most recent canonical action this hand, "" before any
	CommittedTotal int    // total committed across all streets this hand
	ChipsStart     int
}
