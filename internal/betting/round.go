// Package betting runs one street's betting round: action order, current
// bet, minimum raise sizing, and round-termination detection via a reopen
// generation counter.
package betting

import (
	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/validator"
)

// Round tracks the live state of one betting round (one street).
type Round struct {
	order             []int
	bigBlind          int
	currentBet        int
	lastFullRaiseSize int
	generation        int
	actedGen          map[int]int
	folded            map[int]bool
	allIn             map[int]bool
	committed         map[int]int
	lastActor         int
}

// NewRound starts a betting round over the seats in order (action order
// for this street, clockwise). committed holds any amounts already put in
// this round before the round began (blind postings); startAllIn marks
// seats that are already all-in (e.g. a short blind) and so never act.
func NewRound(order []int, bigBlind, currentBet, lastFullRaiseSize int, committed map[int]int, startAllIn map[int]bool) *Round {
	r := &Round{
		order:             append([]int(nil), order...),
		bigBlind:          bigBlind,
		currentBet:        currentBet,
		lastFullRaiseSize: lastFullRaiseSize,
		generation:        1,
		actedGen:          make(map[int]int),
		folded:            make(map[int]bool),
		allIn:             make(map[int]bool),
		committed:         make(map[int]int),
		lastActor:         -1,
	}
	for seat, amt := range committed {
		r.committed[seat] = amt
	}
	for seat, in := range startAllIn {
		if in {
			r.allIn[seat] = true
			r.actedGen[seat] = r.generation
		}
	}
	return r
}

func (r *Round) live(seat int) bool {
	return !r.folded[seat] && !r.allIn[seat]
}

// Next returns the next seat that must act, or ok=false if the round has
// closed.
func (r *Round) Next() (int, bool) {
	n := len(r.order)
	if n == 0 {
		return 0, false
	}
	start := 0
	if r.lastActor >= 0 {
		for i, s := range r.order {
			if s == r.lastActor {
				start = i + 1
				break
			}
		}
	}
	for step := 0; step < n; step++ {
		seat := r.order[(start+step)%n]
		if !r.live(seat) {
			continue
		}
		// A seat owes action if it hasn't acted under the current reopen
		// generation, or if an undersized all-in moved the bet past what
		// it already matched (it gets to call or fold, nothing more).
		if r.actedGen[seat] != r.generation || r.committed[seat] < r.currentBet {
			return seat, true
		}
	}
	return 0, false
}

// Complete reports whether every live seat has matched the current
// generation's action requirement.
func (r *Round) Complete() bool {
	_, ok := r.Next()
	return !ok
}

// CurrentBet is the bet every live seat must match to continue.
func (r *Round) CurrentBet() int { return r.currentBet }

// LastFullRaiseSize is the minimum increment a new raise must meet to
// reopen action.
func (r *Round) LastFullRaiseSize() int { return r.lastFullRaiseSize }

// Committed returns how much a seat has put in this round so far.
func (r *Round) Committed(seat int) int { return r.committed[seat] }

// ValidActionsFor enumerates legal action kinds for seat given its chips.
func (r *Round) ValidActionsFor(seat int, chips int) []agent.ActionKind {
	return validator.ValidActions(r.stateFor(seat, chips))
}

// MinMaxRaise returns the absolute min/max legal RAISE targets for seat,
// or zeros when raising is closed to it.
func (r *Round) MinMaxRaise(seat int, chips int) (min, max int) {
	s := r.stateFor(seat, chips)
	if s.RaiseClosed {
		return 0, 0
	}
	return validator.MinRaiseTarget(s), validator.MaxRaiseTarget(s)
}

func (r *Round) stateFor(seat int, chips int) validator.State {
	return validator.State{
		CurrentBet:         r.currentBet,
		LastFullRaiseSize:  r.lastFullRaiseSize,
		CommittedThisRound: r.committed[seat],
		Chips:              chips,
		BigBlind:           r.bigBlind,
		RaiseClosed:        r.actedGen[seat] == r.generation && r.committed[seat] < r.currentBet,
	}
}

// Apply validates and applies seat's proposed action. It returns the
// canonical action taken and the chip delta the engine must deduct from
// the seat's stack (zero for FOLD/CHECK).
func (r *Round) Apply(seat int, chips int, proposed agent.Action) (agent.Action, int, error) {
	res, err := validator.Validate(r.stateFor(seat, chips), proposed)
	if err != nil {
		return agent.Action{}, 0, err
	}

	var delta int
	switch res.Action.Kind {
	case agent.Fold:
		r.folded[seat] = true
		r.lastActor = seat
		return res.Action, 0, nil
	case agent.Call:
		delta = res.Action.Amount
		r.committed[seat] += delta
	case agent.Bet:
		delta = res.Action.Amount
		r.committed[seat] += delta
	case agent.Raise:
		delta = res.Action.Amount - r.committed[seat]
		r.committed[seat] = res.Action.Amount
	case agent.AllIn:
		delta = res.Action.Amount
		r.committed[seat] += delta
		r.allIn[seat] = true
	case agent.Check:
		// no chip movement
	}

	r.currentBet = res.NewCurrentBet
	r.lastFullRaiseSize = res.NewLastFullRaiseSize
	if res.Reopens {
		r.generation++
	}
	r.actedGen[seat] = r.generation
	r.lastActor = seat
	return res.Action, delta, nil
}
