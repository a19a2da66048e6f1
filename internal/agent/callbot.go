package agent

import (
	"context"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
)

// CallBot checks when it can and calls when it must, never betting or
// raising. It keeps every seat in the hand to showdown, which makes it
// the baseline opponent for engine tests and simulations.
type CallBot struct{}

// NewCallBot creates a new CallBot.
func NewCallBot() *CallBot {
	return &CallBot{}
}

// GetAction implements Provider.
func (c *CallBot) GetAction(_ context.Context, _ PlayerView, details events.BettingDetails) (Action, error) {
	if details.ToCall == 0 {
		return Action{Kind: Check}, nil
	}
	for _, v := range details.ValidActions {
		if ActionKind(v) == Call {
			return Action{Kind: Call, Amount: details.ToCall}, nil
		}
	}
	// Short of a full call: shoving the rest is the only way to continue.
	for _, v := range details.ValidActions {
		if ActionKind(v) == AllIn {
			return Action{Kind: AllIn, Amount: details.PlayerChips}, nil
		}
	}
	return Action{Kind: Fold}, nil
}

// ReceivePrivateCards implements Provider.
func (c *CallBot) ReceivePrivateCards([2]deck.Card) {}

// ReceiveMessage implements Provider.
func (c *CallBot) ReceiveMessage(string) {}

// FoldBot folds to any bet and checks when checking is free. It exists to
// exercise fold-win paths without scripting.
type FoldBot struct{}

// NewFoldBot creates a new FoldBot.
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

// GetAction implements Provider.
func (f *FoldBot) GetAction(_ context.Context, _ PlayerView, details events.BettingDetails) (Action, error) {
	if details.ToCall == 0 {
		return Action{Kind: Check}, nil
	}
	return Action{Kind: Fold}, nil
}

// ReceivePrivateCards implements Provider.
func (f *FoldBot) ReceivePrivateCards([2]deck.Card) {}

// ReceiveMessage implements Provider.
func (f *FoldBot) ReceiveMessage(string) {}
