package validator

import (
	"testing"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/stretchr/testify/require"
)

func TestCheckValidWhenNothingOwed(t *testing.T) {
	s := State{CurrentBet: 0, CommittedThisRound: 0, Chips: 100, BigBlind: 2}
	res, err := Validate(s, agent.Action{Kind: agent.Check})
	require.NoError(t, err)
	require.Equal(t, agent.Check, res.Action.Kind)
}

func TestCallShortOfChipsBecomesAllIn(t *testing.T) {
	s := State{CurrentBet: 100, CommittedThisRound: 0, Chips: 40, BigBlind: 2}
	res, err := Validate(s, agent.Action{Kind: agent.Call})
	require.NoError(t, err)
	require.Equal(t, agent.AllIn, res.Action.Kind)
	require.Equal(t, 40, res.Action.Amount)
}

func TestRaiseIsAbsoluteTarget(t *testing.T) {
	s := State{CurrentBet: 20, LastFullRaiseSize: 20, CommittedThisRound: 0, Chips: 500, BigBlind: 10}
	res, err := Validate(s, agent.Action{Kind: agent.Raise, Amount: 60})
	require.NoError(t, err)
	require.Equal(t, agent.Raise, res.Action.Kind)
	require.Equal(t, 60, res.Action.Amount)
	require.Equal(t, 60, res.NewCurrentBet)
	require.Equal(t, 40, res.NewLastFullRaiseSize)
	require.True(t, res.Reopens)
}

func TestRaiseBelowMinimumRejected(t *testing.T) {
	s := State{CurrentBet: 20, LastFullRaiseSize: 20, CommittedThisRound: 0, Chips: 500, BigBlind: 10}
	_, err := Validate(s, agent.Action{Kind: agent.Raise, Amount: 30})
	require.Error(t, err)
}

func TestUndersizedAllInRaiseDoesNotReopen(t *testing.T) {
	// current bet 100, last full raise size 100 (e.g. a prior pot-sized raise).
	// A player shoves for only 130 total (a raise increment of 30, well under
	// the 100 minimum) -- this must not reopen action to players who already
	// closed out at the 100 level.
	s := State{CurrentBet: 100, LastFullRaiseSize: 100, CommittedThisRound: 0, Chips: 130, BigBlind: 10}
	res, err := Validate(s, agent.Action{Kind: agent.AllIn})
	require.NoError(t, err)
	require.Equal(t, agent.AllIn, res.Action.Kind)
	require.Equal(t, 130, res.NewCurrentBet)
	require.False(t, res.Reopens)
	require.Equal(t, 100, res.NewLastFullRaiseSize)
}

func TestFullAllInRaiseReopens(t *testing.T) {
	s := State{CurrentBet: 100, LastFullRaiseSize: 100, CommittedThisRound: 0, Chips: 300, BigBlind: 10}
	res, err := Validate(s, agent.Action{Kind: agent.AllIn})
	require.NoError(t, err)
	require.Equal(t, 300, res.NewCurrentBet)
	require.True(t, res.Reopens)
	require.Equal(t, 200, res.NewLastFullRaiseSize)
}

func TestAllInShortOfCurrentBetIsNotARaise(t *testing.T) {
	s := State{CurrentBet: 100, LastFullRaiseSize: 50, CommittedThisRound: 0, Chips: 60, BigBlind: 10}
	res, err := Validate(s, agent.Action{Kind: agent.AllIn})
	require.NoError(t, err)
	require.Equal(t, 100, res.NewCurrentBet)
	require.False(t, res.Reopens)
}

func TestValidActionsExcludesRaiseWhenNotEnoughChips(t *testing.T) {
	s := State{CurrentBet: 100, LastFullRaiseSize: 100, CommittedThisRound: 0, Chips: 130, BigBlind: 10}
	kinds := ValidActions(s)
	require.Contains(t, kinds, agent.Call)
	require.NotContains(t, kinds, agent.Raise)
	require.Contains(t, kinds, agent.AllIn)
}

func TestRaiseFromStackShorterThanBetBecomesAllInCall(t *testing.T) {
	s := State{CurrentBet: 100, LastFullRaiseSize: 50, CommittedThisRound: 0, Chips: 60, BigBlind: 10}
	res, err := Validate(s, agent.Action{Kind: agent.Raise, Amount: 60})
	require.NoError(t, err)
	require.Equal(t, agent.AllIn, res.Action.Kind)
	require.Equal(t, 100, res.NewCurrentBet)
	require.False(t, res.Reopens)
}

func TestBigBlindOptionOffersRaiseNotBet(t *testing.T) {
	// the big blind has matched its own blind; it may check or raise, but
	// a fresh bet is not a legal shape while a bet is live
	s := State{CurrentBet: 20, LastFullRaiseSize: 20, CommittedThisRound: 20, Chips: 480, BigBlind: 20}
	kinds := ValidActions(s)
	require.Contains(t, kinds, agent.Check)
	require.Contains(t, kinds, agent.Raise)
	require.NotContains(t, kinds, agent.Bet)
	require.NotContains(t, kinds, agent.Call)
}

func TestBetBelowBigBlindRejected(t *testing.T) {
	s := State{CurrentBet: 0, CommittedThisRound: 0, Chips: 500, BigBlind: 10}
	_, err := Validate(s, agent.Action{Kind: agent.Bet, Amount: 5})
	require.Error(t, err)
}
