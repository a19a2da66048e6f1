package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
	"github.com/lox/holdem-engine/internal/pot"
)

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Short()
	}
	return out
}

func kindsToStrings(kinds []agent.ActionKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// winnerSummary renders a one-line hand outcome for provider notices.
func winnerSummary(handNumber int, winners []events.Winner) string {
	parts := make([]string, len(winners))
	for i, w := range winners {
		parts[i] = fmt.Sprintf("%s wins %d", w.PlayerID, w.Amount)
	}
	return fmt.Sprintf("hand %d complete: %s", handNumber, strings.Join(parts, ", "))
}

func potSnapshots(pots []pot.Pot) []events.PotSnapshot {
	out := make([]events.PotSnapshot, len(pots))
	for i, p := range pots {
		seats := make([]int, 0, len(p.Eligible))
		for s := range p.Eligible {
			seats = append(seats, s)
		}
		sort.Ints(seats)
		out[i] = events.PotSnapshot{Amount: p.Amount, EligibleSeats: seats, Cap: p.Cap}
	}
	return out
}
