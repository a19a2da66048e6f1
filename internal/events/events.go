// Package events defines the externally observable event protocol emitted
// by a running hand, and a synchronous, in-order bus to publish it.
package events

import "time"

// Kind identifies an event type.
type Kind string

const (
	TableReady       Kind = "table:ready"
	HandStarted      Kind = "hand:started"
	CardsDealt       Kind = "cards:dealt"
	StreetEntered    Kind = "street:entered"
	ActionRequested  Kind = "action:requested"
	ActionInvalid    Kind = "action:invalid"
	PlayerAction     Kind = "player:action"
	PotUpdated       Kind = "pot:updated"
	ChipsAwarded     Kind = "chips:awarded"
	PlayerEliminated Kind = "player:eliminated"
	HandEnded        Kind = "hand:ended"
	HandAborted      Kind = "hand:aborted"
)

// Event is one entry in a table's event stream. Payload holds the
// kind-specific fields, one of the *Payload types below.
type Event struct {
	Kind      Kind
	TableID   string
	HandNum   int
	Sequence  int
	Timestamp time.Time
	Payload   any
}

// TableReadyPayload accompanies TableReady.
type TableReadyPayload struct {
	SeatedCount int
	MinPlayers  int
}

// SeatSummary is the per-seat snapshot published at hand start.
type SeatSummary struct {
	Seat       int
	PlayerID   string
	ChipsStart int
}

// HandStartedPayload accompanies HandStarted.
type HandStartedPayload struct {
	HandNumber int
	ButtonSeat int
	SBSeat     int
	BBSeat     int
	Seats      []SeatSummary
}

// CardsDealtPayload accompanies CardsDealt.
type CardsDealtPayload struct {
	SeatsDealt []int
}

// StreetEnteredPayload accompanies StreetEntered.
type StreetEnteredPayload struct {
	Street         string
	CommunityCards []string
}

// BettingDetails is the decision envelope sent with ActionRequested.
type BettingDetails struct {
	CurrentBet           int
	ToCall               int
	PotSize              int
	MinRaise             int
	MaxRaise             int
	ValidActions         []string
	PlayerChips          int
	PlayerCommittedRound int
}

// ActionRequestedPayload accompanies ActionRequested.
type ActionRequestedPayload struct {
	Seat           int
	PlayerID       string
	BettingDetails BettingDetails
}

// ActionInvalidPayload accompanies ActionInvalid: a provider proposed an
// illegal action (or errored, or timed out) and the default policy was
// substituted. The hand continues; this event exists for logging.
type ActionInvalidPayload struct {
	Seat     int
	PlayerID string
	Reason   string
}

// PlayerActionPayload accompanies PlayerAction.
type PlayerActionPayload struct {
	Seat       int
	PlayerID   string
	Action     string
	Amount     int
	PotSize    int
	HandNumber int
	// Note repeats the reason from the preceding action:invalid event when
	// the provider's proposal was rejected, errored or timed out and the
	// default action was taken; empty otherwise, including when a legal
	// proposal was only canonicalized.
	Note string
}

// PotSnapshot is one pot layer as published in PotUpdated.
type PotSnapshot struct {
	Amount        int
	EligibleSeats []int
	Cap           int
}

// PlayerBetUpdate optionally accompanies a PotUpdated event triggered by a
// single player's bet (as opposed to a street-end sweep).
type PlayerBetUpdate struct {
	PlayerID string
	Amount   int
}

// PotUpdatedPayload accompanies PotUpdated.
type PotUpdatedPayload struct {
	PlayerBet *PlayerBetUpdate
	PotTotal  int
	Pots      []PotSnapshot
}

// ChipsAwardedPayload accompanies ChipsAwarded.
type ChipsAwardedPayload struct {
	PlayerID   string
	Amount     int
	TotalAfter int
}

// PlayerEliminatedPayload accompanies PlayerEliminated.
type PlayerEliminatedPayload struct {
	PlayerID   string
	FinalChips int
}

// Winner describes one seat's share of the pot at hand end.
type Winner struct {
	PlayerID        string
	Amount          int
	HandRank        string // empty for a fold-win
	HandDescription string
	BestFive        []string
	HoleCards       []string
}

// HandEndedPayload accompanies HandEnded.
type HandEndedPayload struct {
	Winners        []Winner
	PotTotal       int
	CommunityCards []string
}

// HandAbortedPayload accompanies HandAborted.
type HandAbortedPayload struct {
	Reason string
}
