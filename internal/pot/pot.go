// Package pot implements layered side-pot construction and showdown
// distribution, including the deterministic odd-chip rule.
package pot

import (
	"sort"

	"github.com/lox/holdem-engine/internal/evaluator"
)

// Contribution is one seat's total chips committed to the pot so far this
// hand (across all streets).
type Contribution struct {
	Seat      int
	Committed int
	Folded    bool
}

// Pot is one layer of the pot: a main pot or a side pot, with the set of
// seats eligible to win it.
type Pot struct {
	Amount    int
	Eligible  map[int]bool
	Cap       int // the committed_total that defines this pot's ceiling
}

// BuildPots computes the ordered layered pots from the seats' total
// contributions this hand. Pots are ordered main pot first, each
// subsequent pot's cap strictly greater than the last; eligible sets are
// monotonically non-increasing with pot index.
func BuildPots(contributions []Contribution) []Pot {
	capSet := make(map[int]bool)
	for _, c := range contributions {
		if c.Committed > 0 {
			capSet[c.Committed] = true
		}
	}
	caps := make([]int, 0, len(capSet))
	for c := range capSet {
		caps = append(caps, c)
	}
	sort.Ints(caps)

	pots := make([]Pot, 0, len(caps))
	prevCap := 0
	for _, c := range caps {
		amount := 0
		eligible := make(map[int]bool)
		for _, contrib := range contributions {
			amount += clamp(contrib.Committed, prevCap, c) - clamp(contrib.Committed, prevCap, prevCap)
			if !contrib.Folded && contrib.Committed >= c {
				eligible[contrib.Seat] = true
			}
		}
		if amount > 0 {
			pots = append(pots, Pot{Amount: amount, Eligible: eligible, Cap: c})
		}
		prevCap = c
	}
	return pots
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Award is a single chip award to a seat, from one pot.
type Award struct {
	Seat   int
	Amount int
	PotCap int
}

// Distribute splits each pot among the eligible seats holding the best
// HandRanking, using integer division with the remainder going to the
// tied seat nearest clockwise from the button. order is the full seating
// order starting immediately left of the button (i.e. order[0] is first
// to act post-flop in a ring game); only seats present in a pot's
// eligible set matter for tie-break placement.
func Distribute(pots []Pot, rankings map[int]evaluator.HandRanking, order []int) []Award {
	var awards []Award
	for _, p := range pots {
		winners := bestRanked(p.Eligible, rankings)
		if len(winners) == 0 {
			continue
		}
		winners = orderClockwise(winners, order)
		share := p.Amount / len(winners)
		remainder := p.Amount % len(winners)
		for i, seat := range winners {
			amt := share
			if i < remainder {
				amt++
			}
			if amt > 0 {
				awards = append(awards, Award{Seat: seat, Amount: amt, PotCap: p.Cap})
			}
		}
	}
	return awards
}

// bestRanked returns the eligible seats holding the strongest ranking,
// tied ones included.
func bestRanked(eligible map[int]bool, rankings map[int]evaluator.HandRanking) []int {
	var best []int
	var bestRank evaluator.HandRanking
	first := true
	for seat := range eligible {
		r, ok := rankings[seat]
		if !ok {
			continue
		}
		if first {
			best = []int{seat}
			bestRank = r
			first = false
			continue
		}
		switch r.Compare(bestRank) {
		case 1:
			best = []int{seat}
			bestRank = r
		case 0:
			best = append(best, seat)
		}
	}
	return best
}

// orderClockwise returns winners sorted into the order they appear in
// the clockwise seating order, so remainder-chip placement is
// deterministic regardless of map iteration order.
func orderClockwise(winners []int, order []int) []int {
	pos := make(map[int]int, len(order))
	for i, seat := range order {
		pos[seat] = i
	}
	out := append([]int(nil), winners...)
	sort.Slice(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out
}

// Total returns the sum of all pot amounts.
func Total(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
