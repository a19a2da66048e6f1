package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/internal/deck"
)

// Evaluate ranks the best five-card hand obtainable from the two hole cards
// plus the community board. The board must hold 3 to 5 cards: with fewer
// than five cards in total there is no five-card hand to rank and Evaluate
// panics. It is a pure function: the same
// inputs always produce the same HandRanking, and it never mutates its
// arguments.
func Evaluate(hole [2]deck.Card, board []deck.Card) HandRanking {
	cards := make([]deck.Card, 0, 2+len(board))
	cards = append(cards, hole[0], hole[1])
	cards = append(cards, board...)
	return evaluateCards(cards)
}

// evaluateCards classifies 5 to 7 cards into the best available hand. The
// rank/suit counting approach mirrors a classic hold'em evaluator: build a
// rank bitmap and suit histogram once, then check from strongest category
// down to weakest.
func evaluateCards(cards []deck.Card) HandRanking {
	if len(cards) < 5 || len(cards) > 7 {
		panic("evaluator: evaluateCards requires 5 to 7 cards")
	}

	var rankCounts [15]int // index 0,1 unused; 2-14 for card ranks
	var cardsByRank [15][]deck.Card
	var cardsBySuit [4][]deck.Card
	var rankBits uint32

	for _, c := range cards {
		rankCounts[c.Rank]++
		cardsByRank[c.Rank] = append(cardsByRank[c.Rank], c)
		cardsBySuit[c.Suit] = append(cardsBySuit[c.Suit], c)
		rankBits |= 1 << uint(c.Rank)
	}

	flushSuit := -1
	for s := 0; s < 4; s++ {
		if len(cardsBySuit[s]) >= 5 {
			flushSuit = s
			break
		}
	}

	if flushSuit != -1 {
		flushCards := cardsBySuit[flushSuit]
		var flushRankBits uint32
		for _, c := range flushCards {
			flushRankBits |= 1 << uint(c.Rank)
		}

		if high := findStraightInBitmap(flushRankBits); high > 0 {
			five := straightCardsOfSuit(flushCards, high)
			return HandRanking{
				Category:    StraightFlush,
				Description: straightDescription(StraightFlush, high),
				BestFive:    five,
				tiebreak:    [5]int{high},
			}
		}

		sort.Slice(flushCards, func(i, j int) bool { return flushCards[i].Rank > flushCards[j].Rank })
		five := flushCards[:5]
		return HandRanking{
			Category:    Flush,
			Description: fmt.Sprintf("Flush, %s high", deck.Rank(five[0].Rank)),
			BestFive:    append([]deck.Card(nil), five...),
			tiebreak:    rankVector(five),
		}
	}

	var fours, threes, pairs []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch rankCounts[r] {
		case 4:
			fours = append(fours, r)
		case 3:
			threes = append(threes, r)
		case 2:
			pairs = append(pairs, r)
		}
	}

	if len(fours) > 0 {
		quadRank := fours[0]
		kicker := highestExcluding(cards, quadRank)
		five := append(append([]deck.Card(nil), cardsByRank[quadRank]...), kicker)
		return HandRanking{
			Category:    Quads,
			Description: fmt.Sprintf("Four of a Kind, %ss", quadRank),
			BestFive:    five,
			tiebreak:    [5]int{int(quadRank), kicker.Value()},
		}
	}

	if len(threes) > 0 && (len(pairs) > 0 || len(threes) > 1) {
		tripRank := threes[0]
		var pairRank deck.Rank
		if len(threes) > 1 {
			pairRank = threes[1]
		} else {
			pairRank = pairs[0]
		}
		five := append(append([]deck.Card(nil), cardsByRank[tripRank]...), cardsByRank[pairRank][:2]...)
		return HandRanking{
			Category:    FullHouse,
			Description: fmt.Sprintf("Full House, %ss over %ss", tripRank, pairRank),
			BestFive:    five,
			tiebreak:    [5]int{int(tripRank), int(pairRank)},
		}
	}

	if high := findStraightInBitmap(rankBits); high > 0 {
		five := straightCards(cardsByRank, high)
		return HandRanking{
			Category:    Straight,
			Description: straightDescription(Straight, high),
			BestFive:    five,
			tiebreak:    [5]int{high},
		}
	}

	if len(threes) > 0 {
		tripRank := threes[0]
		kickers := highestExcludingN(cards, 2, tripRank)
		five := append(append([]deck.Card(nil), cardsByRank[tripRank]...), kickers...)
		return HandRanking{
			Category:    Trips,
			Description: fmt.Sprintf("Three of a Kind, %ss", tripRank),
			BestFive:    five,
			tiebreak:    [5]int{int(tripRank), kickers[0].Value(), kickers[1].Value()},
		}
	}

	if len(pairs) >= 2 {
		hiPair, loPair := pairs[0], pairs[1]
		kicker := highestExcluding(cards, hiPair, loPair)
		five := append(append(append([]deck.Card(nil), cardsByRank[hiPair]...), cardsByRank[loPair]...), kicker)
		return HandRanking{
			Category:    TwoPair,
			Description: fmt.Sprintf("Two Pair, %ss and %ss", hiPair, loPair),
			BestFive:    five,
			tiebreak:    [5]int{int(hiPair), int(loPair), kicker.Value()},
		}
	}

	if len(pairs) == 1 {
		pairRank := pairs[0]
		kickers := highestExcludingN(cards, 3, pairRank)
		five := append(append([]deck.Card(nil), cardsByRank[pairRank]...), kickers...)
		return HandRanking{
			Category:    Pair,
			Description: fmt.Sprintf("Pair of %ss", pairRank),
			BestFive:    five,
			tiebreak:    [5]int{int(pairRank), kickers[0].Value(), kickers[1].Value(), kickers[2].Value()},
		}
	}

	high := highestExcludingN(cards, 5)
	return HandRanking{
		Category:    HighCard,
		Description: fmt.Sprintf("High Card, %s high", deck.Rank(high[0].Rank)),
		BestFive:    high,
		tiebreak:    rankVector(high),
	}
}

// findStraightInBitmap checks for 5 consecutive rank bits, including the
// ace-low wheel (A-2-3-4-5). Returns the straight's high rank, or 0.
func findStraightInBitmap(rankBits uint32) int {
	wheel := uint32(1<<14 | 1<<5 | 1<<4 | 1<<3 | 1<<2)
	if (rankBits & wheel) == wheel {
		return 5
	}
	for high := 14; high >= 6; high-- {
		mask := uint32(0x1F) << uint(high-4)
		if (rankBits & mask) == mask {
			return high
		}
	}
	return 0
}

func straightRanks(high int) [5]deck.Rank {
	if high == 5 {
		return [5]deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two}
	}
	var out [5]deck.Rank
	for i := 0; i < 5; i++ {
		out[i] = deck.Rank(high - i)
	}
	return out
}

func straightCards(byRank [15][]deck.Card, high int) []deck.Card {
	ranks := straightRanks(high)
	cards := make([]deck.Card, 5)
	for i, r := range ranks {
		cards[i] = byRank[r][0]
	}
	return cards
}

func straightCardsOfSuit(suited []deck.Card, high int) []deck.Card {
	ranks := straightRanks(high)
	byRank := make(map[deck.Rank]deck.Card, len(suited))
	for _, c := range suited {
		byRank[c.Rank] = c
	}
	cards := make([]deck.Card, 5)
	for i, r := range ranks {
		cards[i] = byRank[r]
	}
	return cards
}

func straightDescription(cat Category, high int) string {
	label := "Straight"
	if cat == StraightFlush {
		if high == 14 {
			return "Royal Flush"
		}
		label = "Straight Flush"
	}
	return fmt.Sprintf("%s, %s high", label, deck.Rank(high))
}

// highestExcluding returns the single highest distinct-rank card excluding
// the given ranks.
func highestExcluding(cards []deck.Card, exclude ...deck.Rank) deck.Card {
	return highestExcludingN(cards, 1, exclude...)[0]
}

// highestExcludingN returns the n highest distinct-rank cards from cards,
// excluding any rank in exclude, highest first.
func highestExcludingN(cards []deck.Card, n int, exclude ...deck.Rank) []deck.Card {
	excluded := make(map[deck.Rank]bool, len(exclude))
	for _, r := range exclude {
		excluded[r] = true
	}
	seen := make(map[deck.Rank]deck.Card)
	for _, c := range cards {
		if excluded[c.Rank] {
			continue
		}
		if _, ok := seen[c.Rank]; !ok {
			seen[c.Rank] = c
		}
	}
	out := make([]deck.Card, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func rankVector(cards []deck.Card) [5]int {
	var v [5]int
	for i := 0; i < len(cards) && i < 5; i++ {
		v[i] = cards[i].Value()
	}
	return v
}
