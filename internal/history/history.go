// Package history renders a hand's event stream into a human-readable
// summary, the way a hand-history file would. It subscribes to the same
// events.Bus the engine publishes to and never touches engine internals
// directly.
package history

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/events"
)

// Recorder accumulates one table's event stream and can render the most
// recently completed hand as a summary string.
type Recorder struct {
	current []events.Event
	lines   []string
}

// NewRecorder returns an empty Recorder ready to subscribe to a Bus.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleEvent implements events.Subscriber.
func (r *Recorder) HandleEvent(e events.Event) {
	r.current = append(r.current, e)
	if e.Kind == events.HandEnded || e.Kind == events.HandAborted {
		r.lines = append(r.lines, renderHand(r.current))
		r.current = nil
	}
}

// Hands returns the rendered summary of every completed hand seen so far.
func (r *Recorder) Hands() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Last returns the most recently rendered hand summary, or "" if none.
func (r *Recorder) Last() string {
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

func renderHand(evs []events.Event) string {
	var b strings.Builder
	for _, e := range evs {
		switch p := e.Payload.(type) {
		case events.HandStartedPayload:
			fmt.Fprintf(&b, "-- hand #%d -- button seat %d\n", p.HandNumber, p.ButtonSeat)
		case events.StreetEnteredPayload:
			fmt.Fprintf(&b, "*** %s *** %s\n", strings.ToUpper(p.Street), strings.Join(p.CommunityCards, " "))
		case events.PlayerActionPayload:
			fmt.Fprintf(&b, "seat %d (%s): %s", p.Seat, p.PlayerID, p.Action)
			if p.Amount > 0 {
				fmt.Fprintf(&b, " %d", p.Amount)
			}
			if p.Note != "" {
				fmt.Fprintf(&b, " [%s]", p.Note)
			}
			b.WriteByte('\n')
		case events.PlayerEliminatedPayload:
			fmt.Fprintf(&b, "%s is eliminated\n", p.PlayerID)
		case events.HandEndedPayload:
			for _, w := range p.Winners {
				if w.HandRank != "" {
					fmt.Fprintf(&b, "%s wins %d with %s (%s)\n", w.PlayerID, w.Amount, w.HandRank, w.HandDescription)
				} else {
					fmt.Fprintf(&b, "%s wins %d uncontested\n", w.PlayerID, w.Amount)
				}
			}
		case events.HandAbortedPayload:
			fmt.Fprintf(&b, "hand aborted: %s\n", p.Reason)
		}
	}
	return b.String()
}
