package agent

import (
	"context"
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
)

// Scripted replays a fixed sequence of actions, one per call to GetAction,
// for deterministic scenario tests. It returns an error once the script is
// exhausted; the engine treats that like any provider error, publishing
// action:invalid and substituting the default action.
type Scripted struct {
	actions []Action
	next    int
	hole    [2]deck.Card
	msgs    []string
}

// NewScripted returns a provider that plays actions in order.
func NewScripted(actions ...Action) *Scripted {
	return &Scripted{actions: actions}
}

// GetAction implements Provider.
func (s *Scripted) GetAction(_ context.Context, _ PlayerView, _ events.BettingDetails) (Action, error) {
	if s.next >= len(s.actions) {
		return Action{}, fmt.Errorf("scripted agent: no more scripted actions")
	}
	a := s.actions[s.next]
	s.next++
	return a, nil
}

// ReceivePrivateCards implements Provider.
func (s *Scripted) ReceivePrivateCards(cards [2]deck.Card) { s.hole = cards }

// ReceiveMessage implements Provider.
func (s *Scripted) ReceiveMessage(msg string) { s.msgs = append(s.msgs, msg) }

// HoleCards returns the cards most recently dealt to this provider, for
// test assertions.
func (s *Scripted) HoleCards() [2]deck.Card { return s.hole }
