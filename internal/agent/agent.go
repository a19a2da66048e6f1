// Package agent defines the player-provider interface the engine calls
// out to, and a couple of reference providers used by tests and the
// simulate command.
package agent

import (
	"context"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
)

// ActionKind is the wire-stable tag of a player decision.
type ActionKind string

const (
	Fold  ActionKind = "FOLD"
	Check ActionKind = "CHECK"
	Call  ActionKind = "CALL"
	Bet   ActionKind = "BET"
	// Raise amounts are the absolute target current_bet, not an increment.
	Raise ActionKind = "RAISE"
	AllIn ActionKind = "ALL_IN"
)

// Action is a player's proposed decision. See ActionKind for the amount
// convention, which differs between CALL/BET/ALL_IN (increments) and
// RAISE (absolute target).
type Action struct {
	Kind   ActionKind
	Amount int
}

// PlayerView is the state the engine discloses to a provider making a
// decision: no hidden information about other players' hole cards.
type PlayerView struct {
	MyID           string
	Phase          string
	CommunityCards []deck.Card
	PotTotal       int
	CurrentBet     int
	Players        map[string]PlayerPublicState
}

// PlayerPublicState is what every other seat can see about one player.
type PlayerPublicState struct {
	Chips              int
	CommittedThisRound int
	Status             string
	LastAction         string
}

// Provider is the player-provider interface. The engine never couples to
// a concrete provider kind; it only ever calls through this interface.
type Provider interface {
	// GetAction is invoked once per decision point. ctx carries the
	// action timeout; a provider that does not return before ctx is done
	// is treated as having thrown (see the validator's default policy).
	GetAction(ctx context.Context, view PlayerView, details events.BettingDetails) (Action, error)

	// ReceivePrivateCards is invoked once per hand when hole cards are dealt.
	ReceivePrivateCards(cards [2]deck.Card)

	// ReceiveMessage is an optional, non-blocking informational notice.
	ReceiveMessage(msg string)
}
