package agent

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
)

// RandBot makes uniformly random legal decisions. It is the reference
// provider used by cmd/simulate and by engine tests that don't care about
// a specific strategy.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a RandBot using rng for all decisions.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

// GetAction implements Provider.
func (b *RandBot) GetAction(_ context.Context, _ PlayerView, details events.BettingDetails) (Action, error) {
	if len(details.ValidActions) == 0 {
		return Action{Kind: Fold}, nil
	}
	choice := details.ValidActions[b.rng.IntN(len(details.ValidActions))]
	kind := ActionKind(choice)

	amount := 0
	switch kind {
	case Call:
		amount = details.ToCall
	case Bet:
		amount = details.MinRaise
	case Raise:
		amount = details.MinRaise
		if details.MaxRaise > details.MinRaise {
			amount = details.MinRaise + b.rng.IntN(details.MaxRaise-details.MinRaise+1)
		}
	case AllIn:
		amount = details.PlayerChips
	}
	return Action{Kind: kind, Amount: amount}, nil
}

// ReceivePrivateCards implements Provider.
func (b *RandBot) ReceivePrivateCards(cards [2]deck.Card) {
	if b.logger != nil {
		b.logger.Debug("received hole cards", "cards", cards)
	}
}

// ReceiveMessage implements Provider.
func (b *RandBot) ReceiveMessage(msg string) {
	if b.logger != nil {
		b.logger.Debug("message", "msg", msg)
	}
}
