package engine

import (
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/pot"
)

// Street identifies which community-card stage a hand is on.
type Street string

const (
	Preflop  Street = "preflop"
	Flop     Street = "flop"
	Turn     Street = "turn"
	River    Street = "river"
	Showdown Street = "showdown"
)

// handState is the full mutable state of one hand in progress.
type handState struct {
	handNumber int
	buttonSeat int
	sbSeat     int // -1 if dead this hand
	bbSeat     int

	deck    *deck.Deck
	board   []deck.Card
	street  Street
	players map[int]*Player // seat -> player, only seats dealt into this hand

	pots []pot.Pot
}

// contributions snapshots every seat's total commitment this hand, the
// input to pot layering.
func (h *handState) contributions() []pot.Contribution {
	out := make([]pot.Contribution, 0, len(h.players))
	for s, p := range h.players {
		out = append(out, pot.Contribution{
			Seat:      s,
			Committed: p.CommittedTotal,
			Folded:    p.Status == StatusFolded,
		})
	}
	return out
}

func (h *handState) seatsInHandOrder() []int {
	order := make([]int, 0, len(h.players))
	for seat := range h.players {
		order = append(order, seat)
	}
	return order
}

// orderFrom filters a clockwise seat sequence down to seats dealt into
// this hand that haven't folded, preserving relative order.
func (h *handState) orderFrom(raw []int) []int {
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		if p, ok := h.players[s]; ok && p.Status != StatusFolded {
			out = append(out, s)
		}
	}
	return out
}

func (h *handState) totalCommitted() int {
	total := 0
	for _, p := range h.players {
		total += p.CommittedTotal
	}
	return total
}

func (h *handState) allInSeats() map[int]bool {
	out := make(map[int]bool)
	for s, p := range h.players {
		if p.Status == StatusAllIn {
			out[s] = true
		}
	}
	return out
}

func (h *handState) countLive() int {
	n := 0
	for _, p := range h.players {
		if p.Status != StatusFolded {
			n++
		}
	}
	return n
}

// anyLiveCanAct reports whether the street needs a betting round at all: if
// every live player but one is already all-in, there is no decision left to
// make and remaining streets are simply dealt out.
func (h *handState) anyLiveCanAct() bool {
	canAct := 0
	for _, p := range h.players {
		if p.Status == StatusActive {
			canAct++
		}
	}
	return canAct >= 2
}
