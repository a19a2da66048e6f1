package engine

import "errors"

// errDeckExhausted marks a fatal engine bug: in legal no-limit hold'em with
// a single 52-card deck and the seat counts this engine supports, the deck
// should never run out. Seeing it aborts the hand rather than panicking.
var errDeckExhausted = errors.New("engine: deck exhausted mid-hand")
