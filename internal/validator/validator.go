// Package validator implements action legality and canonicalization: given
// the current betting state and a player's proposed action, it decides
// whether the action is legal, canonicalizes it (e.g. an undersized
// all-in call becomes ALL_IN), and reports whether it reopens the
// betting round to seats that had already closed their action.
package validator

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/agent"
)

// State is the subset of betting-round state needed to validate one
// seat's action.
type State struct {
	CurrentBet         int
	LastFullRaiseSize  int
	CommittedThisRound int
	Chips              int
	BigBlind           int

	// RaiseClosed is true when this seat already closed its action at a
	// prior bet level and the bet has since moved by less than a full
	// raise (an undersized all-in). The seat may call the difference or
	// fold, but may not raise again.
	RaiseClosed bool
}

// ToCall is the amount this seat must add to match the current bet.
func (s State) ToCall() int {
	toCall := s.CurrentBet - s.CommittedThisRound
	if toCall < 0 {
		return 0
	}
	return toCall
}

// Result is the outcome of validating one proposed action.
type Result struct {
	Action agent.Action
	// Reopens is true if this action is a full raise (or a bet) that
	// reopens action to seats that had already closed out this round.
	Reopens bool
	// NewCurrentBet and NewLastFullRaiseSize are the betting round's
	// updated state if Action is accepted; both are meaningful even for
	// non-reopening all-in raises, where CurrentBet still moves.
	NewCurrentBet        int
	NewLastFullRaiseSize int
}

// MinRaiseTarget is the smallest legal absolute RAISE target given s.
func MinRaiseTarget(s State) int {
	return s.CurrentBet + s.LastFullRaiseSize
}

// MaxRaiseTarget is the largest legal absolute RAISE target given s (a
// raise to all of the player's chips).
func MaxRaiseTarget(s State) int {
	return s.CommittedThisRound + s.Chips
}

// ValidActions enumerates the action kinds legal for a seat in state s.
func ValidActions(s State) []agent.ActionKind {
	var kinds []agent.ActionKind
	kinds = append(kinds, agent.Fold)
	if s.ToCall() == 0 {
		kinds = append(kinds, agent.Check)
		if s.Chips > 0 && !s.RaiseClosed {
			if s.CurrentBet == 0 {
				kinds = append(kinds, agent.Bet)
			} else if MaxRaiseTarget(s) >= MinRaiseTarget(s) {
				// big-blind option: the bet is live and matched, raising
				// is still open
				kinds = append(kinds, agent.Raise)
			}
		}
	} else {
		if s.Chips > 0 {
			kinds = append(kinds, agent.Call)
			if !s.RaiseClosed && MaxRaiseTarget(s) >= MinRaiseTarget(s) && s.Chips > s.ToCall() {
				kinds = append(kinds, agent.Raise)
			}
		}
	}
	if s.Chips > 0 && !s.RaiseClosed {
		kinds = append(kinds, agent.AllIn)
	}
	return kinds
}

// Validate checks and canonicalizes a proposed action against s. A
// returned error means the action was illegal; callers apply the
// default policy (auto-check if ToCall==0, else auto-fold) rather than
// treating it as fatal.
func Validate(s State, proposed agent.Action) (Result, error) {
	switch proposed.Kind {
	case agent.Fold:
		return Result{Action: agent.Action{Kind: agent.Fold}}, nil

	case agent.Check:
		if s.ToCall() != 0 {
			return Result{}, fmt.Errorf("validator: cannot check, %d owed", s.ToCall())
		}
		return Result{Action: agent.Action{Kind: agent.Check}, NewCurrentBet: s.CurrentBet, NewLastFullRaiseSize: s.LastFullRaiseSize}, nil

	case agent.Call:
		toCall := s.ToCall()
		if toCall <= 0 {
			return Result{}, fmt.Errorf("validator: nothing to call")
		}
		amount := toCall
		if amount >= s.Chips {
			return Result{
				Action:               agent.Action{Kind: agent.AllIn, Amount: s.Chips},
				NewCurrentBet:        s.CurrentBet,
				NewLastFullRaiseSize: s.LastFullRaiseSize,
			}, nil
		}
		return Result{Action: agent.Action{Kind: agent.Call, Amount: amount}, NewCurrentBet: s.CurrentBet, NewLastFullRaiseSize: s.LastFullRaiseSize}, nil

	case agent.Bet:
		if s.CurrentBet != 0 {
			return Result{}, fmt.Errorf("validator: cannot bet, a bet is already live")
		}
		amount := proposed.Amount
		if amount >= s.Chips {
			return Result{
				Action:               agent.Action{Kind: agent.AllIn, Amount: s.Chips},
				NewCurrentBet:        s.Chips,
				NewLastFullRaiseSize: max(s.Chips, s.BigBlind),
				Reopens:              true,
			}, nil
		}
		if amount < s.BigBlind {
			return Result{}, fmt.Errorf("validator: bet %d below big blind %d", amount, s.BigBlind)
		}
		return Result{
			Action:               agent.Action{Kind: agent.Bet, Amount: amount},
			NewCurrentBet:        amount,
			NewLastFullRaiseSize: amount,
			Reopens:              true,
		}, nil

	case agent.Raise:
		if s.CurrentBet == 0 {
			return Result{}, fmt.Errorf("validator: cannot raise, no bet is live")
		}
		if s.RaiseClosed {
			return Result{}, fmt.Errorf("validator: raising is closed, only call or fold")
		}
		target := proposed.Amount // absolute target, per the RAISE wire convention
		increment := target - s.CurrentBet
		maxTarget := MaxRaiseTarget(s)
		if maxTarget <= s.CurrentBet {
			// too short to raise at all; the whole stack is a call for less
			return Result{Action: agent.Action{Kind: agent.AllIn, Amount: s.Chips}, NewCurrentBet: s.CurrentBet, NewLastFullRaiseSize: s.LastFullRaiseSize}, nil
		}
		if target >= maxTarget {
			isFull := (maxTarget - s.CurrentBet) >= s.LastFullRaiseSize
			res := Result{
				Action:        agent.Action{Kind: agent.AllIn, Amount: s.Chips},
				NewCurrentBet: maxTarget,
				Reopens:       isFull,
			}
			if isFull {
				res.NewLastFullRaiseSize = maxTarget - s.CurrentBet
			} else {
				res.NewLastFullRaiseSize = s.LastFullRaiseSize
			}
			return res, nil
		}
		if increment < s.LastFullRaiseSize {
			return Result{}, fmt.Errorf("validator: raise increment %d below minimum %d", increment, s.LastFullRaiseSize)
		}
		return Result{
			Action:               agent.Action{Kind: agent.Raise, Amount: target},
			NewCurrentBet:        target,
			NewLastFullRaiseSize: increment,
			Reopens:              true,
		}, nil

	case agent.AllIn:
		if s.Chips <= 0 {
			return Result{}, fmt.Errorf("validator: no chips to go all-in with")
		}
		total := s.CommittedThisRound + s.Chips
		if total <= s.CurrentBet {
			// all-in call or short all-in that doesn't even match current bet
			return Result{Action: agent.Action{Kind: agent.AllIn, Amount: s.Chips}, NewCurrentBet: s.CurrentBet, NewLastFullRaiseSize: s.LastFullRaiseSize}, nil
		}
		if s.RaiseClosed {
			return Result{}, fmt.Errorf("validator: raising is closed, only call or fold")
		}
		increment := total - s.CurrentBet
		isFull := increment >= s.LastFullRaiseSize
		res := Result{
			Action:        agent.Action{Kind: agent.AllIn, Amount: s.Chips},
			NewCurrentBet: total,
			Reopens:       isFull,
		}
		if isFull {
			res.NewLastFullRaiseSize = increment
		} else {
			res.NewLastFullRaiseSize = s.LastFullRaiseSize
		}
		return res, nil

	default:
		return Result{}, fmt.Errorf("validator: unknown action kind %q", proposed.Kind)
	}
}
