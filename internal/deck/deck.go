package deck

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	mrand "math/rand/v2"

	"github.com/lox/holdem-engine/internal/randutil"
)

// ErrDeckExhausted is returned by Draw once every card in the deck (52 for
// a shuffled deck, however many were given to Inject) has been drawn.
// In legal play this should never happen; seeing it is a fatal engine bug.
var ErrDeckExhausted = errors.New("deck: exhausted")

// Deck is an ordered, finite sequence of unique cards. Production decks are
// shuffled from a cryptographically strong seed; tests construct decks with
// Inject to pin down an exact card order.
type Deck struct {
	cards []Card
	next  int
}

// NewDeck returns a freshly shuffled 52-card deck seeded from a
// cryptographically strong random source.
func NewDeck() *Deck {
	return NewDeckFromSeed(cryptoSeed())
}

// NewDeckFromSeed returns a freshly shuffled 52-card deck using a
// deterministic seed, for reproducible simulations and tests.
func NewDeckFromSeed(seed int64) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, s := range allSuits {
		for _, r := range allRanks {
			d.cards = append(d.cards, NewCard(s, r))
		}
	}
	shuffle(d.cards, randutil.New(seed))
	return d
}

// Inject returns a new deck that draws exactly the sequence given, in
// order, for deterministic test scenarios. The sequence need not be 52 cards; only
// the cards actually drawn before the hand ends matter.
func Inject(cards []Card) *Deck {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return &Deck{cards: cp}
}

func shuffle(cards []Card, rng *mrand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable; fall back to a
		// fixed seed rather than panicking mid-deal.
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Draw removes and returns the top card of the deck.
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// Remaining returns the number of cards left to draw.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
