// Package engine runs one hand of no-limit hold'em to completion: blinds,
// deal, the four betting streets, showdown, and pot settlement, emitting
// the full events protocol along the way. It never retains state between
// hands beyond what it hands back in HandResult; the Table and Seat
// Manager own everything longer-lived.
package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/betting"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/events"
	"github.com/lox/holdem-engine/internal/pot"
	"github.com/lox/holdem-engine/internal/seat"
)

// DefaultActionTimeout bounds how long a GetAction call may run before the
// engine substitutes the default policy (check if free, otherwise fold).
const DefaultActionTimeout = 30 * time.Second

// Engine runs hands for a single table. It is not safe for concurrent use
// by more than one goroutine at a time; a Table serializes calls to it.
type Engine struct {
	TableID       string
	Logger        *log.Logger
	Clock         quartz.Clock
	Bus           *events.Bus
	ActionTimeout time.Duration
	Providers     map[int]agent.Provider // seat -> player-provider
}

// New constructs an Engine. clock and logger may be nil; sensible defaults
// are substituted (a real clock, a silenced logger).
func New(tableID string, bus *events.Bus, logger *log.Logger, clock quartz.Clock, providers map[int]agent.Provider, actionTimeout time.Duration) *Engine {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if actionTimeout <= 0 {
		actionTimeout = DefaultActionTimeout
	}
	return &Engine{
		TableID:       tableID,
		Logger:        logger,
		Clock:         clock,
		Bus:           bus,
		ActionTimeout: actionTimeout,
		Providers:     providers,
	}
}

// RunHand advances the button, deals, runs every street, settles the pot,
// and returns a summary. seats is mutated: chip counts move, and any
// seat left with zero chips is removed from the table.
func (e *Engine) RunHand(ctx context.Context, seats *seat.Manager, smallBlind, bigBlind int, deckSource *deck.Deck, handNumber int) (HandResult, error) {
	rotation := seats.Rotation()
	assignment, err := seats.AdvanceButton()
	if err != nil {
		return HandResult{}, fmt.Errorf("engine: cannot start hand: %w", err)
	}

	h := &handState{
		handNumber: handNumber,
		buttonSeat: assignment.ButtonSeat,
		sbSeat:     assignment.SBSeat,
		bbSeat:     assignment.BBSeat,
		deck:       deckSource,
		street:     Preflop,
		players:    make(map[int]*Player),
	}

	var seatSummaries []events.SeatSummary
	for _, s := range seats.Seats() {
		if s.Status != seat.Occupied || s.Chips <= 0 {
			continue
		}
		h.players[s.Index] = &Player{
			Seat:       s.Index,
			ID:         s.PlayerID,
			Chips:      s.Chips,
			Status:     StatusActive,
			ChipsStart: s.Chips,
		}
		seatSummaries = append(seatSummaries, events.SeatSummary{Seat: s.Index, PlayerID: s.PlayerID, ChipsStart: s.Chips})
	}

	e.publish(events.HandStarted, handNumber, events.HandStartedPayload{
		HandNumber: handNumber,
		ButtonSeat: h.buttonSeat,
		SBSeat:     h.sbSeat,
		BBSeat:     h.bbSeat,
		Seats:      seatSummaries,
	})

	if err := e.dealHoleCards(h); err != nil {
		return e.abort(h, seats, rotation, err)
	}

	sbPosted, bbPosted, sbAllIn, bbAllIn := e.postBlinds(h, smallBlind, bigBlind)

	// The pre-flop bet level is the full big blind even when a short
	// stack posted less going all-in.
	preflopCommitted := map[int]int{h.bbSeat: bbPosted}
	preflopAllIn := map[int]bool{}
	if bbAllIn {
		preflopAllIn[h.bbSeat] = true
	}
	if h.sbSeat >= 0 {
		preflopCommitted[h.sbSeat] = sbPosted
		if sbAllIn {
			preflopAllIn[h.sbSeat] = true
		}
	}

	preflopOrder := h.orderFrom(seats.ClockwiseFrom(h.bbSeat))
	if err := e.runBettingStreet(ctx, h, preflopOrder, bigBlind, bigBlind, bigBlind, preflopCommitted, preflopAllIn); err != nil {
		return e.abort(h, seats, rotation, err)
	}

	streets := []struct {
		street Street
		reveal int
	}{
		{Flop, 3},
		{Turn, 1},
		{River, 1},
	}

	for _, st := range streets {
		if h.countLive() == 1 {
			break
		}
		h.street = st.street
		if err := e.dealCommunity(h, st.reveal); err != nil {
			return e.abort(h, seats, rotation, err)
		}
		if h.countLive() > 1 {
			order := h.orderFrom(seats.ClockwiseFrom(h.buttonSeat))
			if err := e.runBettingStreet(ctx, h, order, bigBlind, 0, bigBlind, map[int]int{}, h.allInSeats()); err != nil {
				return e.abort(h, seats, rotation, err)
			}
		}
	}

	foldWin := h.countLive() == 1
	if !foldWin {
		h.street = Showdown
	}

	winnerList, err := e.settle(h, seats, foldWin)
	if err != nil {
		return e.abort(h, seats, rotation, err)
	}

	return e.finishHand(h, seats, winnerList), nil
}

func (e *Engine) dealHoleCards(h *handState) error {
	seatsDealt := h.seatsInHandOrder()
	sort.Ints(seatsDealt)
	for _, s := range seatsDealt {
		var hole [2]deck.Card
		for i := 0; i < 2; i++ {
			c, err := h.deck.Draw()
			if err != nil {
				return fmt.Errorf("%w: dealing hole cards", errDeckExhausted)
			}
			hole[i] = c
		}
		h.players[s].HoleCards = hole
		if provider := e.Providers[s]; provider != nil {
			provider.ReceivePrivateCards(hole)
		}
	}
	e.publish(events.CardsDealt, h.handNumber, events.CardsDealtPayload{SeatsDealt: seatsDealt})
	return nil
}

func (e *Engine) dealCommunity(h *handState, n int) error {
	if _, err := h.deck.Draw(); err != nil {
		return fmt.Errorf("%w: burn before %s", errDeckExhausted, h.street)
	}
	for i := 0; i < n; i++ {
		c, err := h.deck.Draw()
		if err != nil {
			return fmt.Errorf("%w: dealing %s", errDeckExhausted, h.street)
		}
		h.board = append(h.board, c)
	}
	e.publish(events.StreetEntered, h.handNumber, events.StreetEnteredPayload{
		Street:         string(h.street),
		CommunityCards: cardStrings(h.board),
	})
	return nil
}

// postBlinds commits the small and big blind, clamping to a short stack's
// full remaining chips (a dead small blind is represented by sbSeat<0 and
// is simply skipped).
func (e *Engine) postBlinds(h *handState, smallBlind, bigBlind int) (sbPosted, bbPosted int, sbAllIn, bbAllIn bool) {
	if h.sbSeat >= 0 {
		sb := h.players[h.sbSeat]
		sbPosted = smallBlind
		if sbPosted >= sb.Chips {
			sbPosted = sb.Chips
			sbAllIn = true
		}
		sb.Chips -= sbPosted
		sb.CommittedTotal += sbPosted
		if sbAllIn {
			sb.Status = StatusAllIn
		}
		e.publish(events.PotUpdated, h.handNumber, events.PotUpdatedPayload{
			PlayerBet: &events.PlayerBetUpdate{PlayerID: sb.ID, Amount: sbPosted},
			PotTotal:  h.totalCommitted(),
		})
	}

	bb := h.players[h.bbSeat]
	bbPosted = bigBlind
	if bbPosted >= bb.Chips {
		bbPosted = bb.Chips
		bbAllIn = true
	}
	bb.Chips -= bbPosted
	bb.CommittedTotal += bbPosted
	if bbAllIn {
		bb.Status = StatusAllIn
	}
	e.publish(events.PotUpdated, h.handNumber, events.PotUpdatedPayload{
		PlayerBet: &events.PlayerBetUpdate{PlayerID: bb.ID, Amount: bbPosted},
		PotTotal:  h.totalCommitted(),
	})
	return
}

// runBettingStreet drives one street's betting round to completion. It is
// a no-op when fewer than two players are still able to act, so the
// remaining streets are simply dealt out with no decisions requested.
func (e *Engine) runBettingStreet(ctx context.Context, h *handState, order []int, bigBlind, currentBet, lastFullRaiseSize int, committed map[int]int, startAllIn map[int]bool) error {
	if !h.anyLiveCanAct() {
		return nil
	}

	round := betting.NewRound(order, bigBlind, currentBet, lastFullRaiseSize, committed, startAllIn)
	for {
		seatIdx, ok := round.Next()
		if !ok {
			break
		}
		player := h.players[seatIdx]

		minRaise, maxRaise := round.MinMaxRaise(seatIdx, player.Chips)
		toCall := round.CurrentBet() - round.Committed(seatIdx)
		if toCall < 0 {
			toCall = 0
		}
		details := events.BettingDetails{
			CurrentBet:           round.CurrentBet(),
			ToCall:               toCall,
			PotSize:              h.totalCommitted(),
			MinRaise:             minRaise,
			MaxRaise:             maxRaise,
			ValidActions:         kindsToStrings(round.ValidActionsFor(seatIdx, player.Chips)),
			PlayerChips:          player.Chips,
			PlayerCommittedRound: round.Committed(seatIdx),
		}

		e.publish(events.ActionRequested, h.handNumber, events.ActionRequestedPayload{
			Seat: seatIdx, PlayerID: player.ID, BettingDetails: details,
		})

		proposed, note, err := e.requestAction(ctx, h, round, player, details)
		if err != nil {
			return err
		}

		canonical, delta, err := round.Apply(seatIdx, player.Chips, proposed)
		if err != nil {
			if note == "" {
				note = fmt.Sprintf("proposed action rejected: %v", err)
			}
			canonical, delta, err = round.Apply(seatIdx, player.Chips, e.defaultAction(details))
			if err != nil {
				return fmt.Errorf("engine: seat %d could not act: %w", seatIdx, err)
			}
		}
		if note != "" {
			e.publish(events.ActionInvalid, h.handNumber, events.ActionInvalidPayload{
				Seat: seatIdx, PlayerID: player.ID, Reason: note,
			})
		}

		player.Chips -= delta
		player.CommittedTotal += delta
		player.LastAction = string(canonical.Kind)
		switch canonical.Kind {
		case agent.Fold:
			player.Status = StatusFolded
		case agent.AllIn:
			player.Status = StatusAllIn
		}

		e.publish(events.PlayerAction, h.handNumber, events.PlayerActionPayload{
			Seat:       seatIdx,
			PlayerID:   player.ID,
			Action:     string(canonical.Kind),
			Amount:     canonical.Amount,
			PotSize:    h.totalCommitted(),
			HandNumber: h.handNumber,
			Note:       note,
		})

		if h.countLive() == 1 {
			break
		}
	}

	// Round closed: the accumulated commitments are swept into the pot
	// layering and published.
	pots := pot.BuildPots(h.contributions())
	e.publish(events.PotUpdated, h.handNumber, events.PotUpdatedPayload{PotTotal: pot.Total(pots), Pots: potSnapshots(pots)})
	return nil
}

// requestAction calls the seat's provider under the engine's action
// timeout, substituting the default policy on error or timeout. A
// cancellation of the hand's own context is not a provider failure: it
// returns an error so the caller aborts the hand cleanly.
func (e *Engine) requestAction(ctx context.Context, h *handState, round *betting.Round, player *Player, details events.BettingDetails) (agent.Action, string, error) {
	if err := ctx.Err(); err != nil {
		return agent.Action{}, "", fmt.Errorf("engine: hand cancelled awaiting seat %d: %w", player.Seat, err)
	}

	provider := e.Providers[player.Seat]
	if provider == nil {
		return e.defaultAction(details), "no provider registered, defaulted", nil
	}

	view := e.viewFor(h, player.Seat, round)

	actionCtx, cancel := context.WithTimeout(ctx, e.ActionTimeout)
	defer cancel()

	type result struct {
		action agent.Action
		err    error
	}
	resultCh := make(chan result, 1)
	go func() {
		act, err := provider.GetAction(actionCtx, view, details)
		resultCh <- result{act, err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			e.Logger.Warn("provider error, defaulting", "seat", player.Seat, "err", res.err)
			return e.defaultAction(details), fmt.Sprintf("provider error: %v, defaulted", res.err), nil
		}
		return res.action, "", nil
	case <-actionCtx.Done():
		if err := ctx.Err(); err != nil {
			return agent.Action{}, "", fmt.Errorf("engine: hand cancelled awaiting seat %d: %w", player.Seat, err)
		}
		e.Logger.Warn("provider timed out, defaulting", "seat", player.Seat)
		return e.defaultAction(details), "provider timed out, defaulted", nil
	}
}

func (e *Engine) defaultAction(details events.BettingDetails) agent.Action {
	if details.ToCall == 0 {
		return agent.Action{Kind: agent.Check}
	}
	return agent.Action{Kind: agent.Fold}
}

func (e *Engine) viewFor(h *handState, seatIdx int, round *betting.Round) agent.PlayerView {
	players := make(map[string]agent.PlayerPublicState, len(h.players))
	for _, p := range h.players {
		players[p.ID] = agent.PlayerPublicState{
			Chips:              p.Chips,
			CommittedThisRound: round.Committed(p.Seat),
			Status:             string(p.Status),
			LastAction:         p.LastAction,
		}
	}
	return agent.PlayerView{
		MyID:           h.players[seatIdx].ID,
		Phase:          string(h.street),
		CommunityCards: append([]deck.Card(nil), h.board...),
		PotTotal:       h.totalCommitted(),
		CurrentBet:     round.CurrentBet(),
		Players:        players,
	}
}

// settle builds the layered side pots from total contributions and
// distributes them, either by showdown comparison or, on a fold win,
// entirely to the sole remaining player.
func (e *Engine) settle(h *handState, seats *seat.Manager, foldWin bool) ([]events.Winner, error) {
	pots := pot.BuildPots(h.contributions())

	var rankings map[int]evaluator.HandRanking
	if foldWin {
		sole := -1
		for s, p := range h.players {
			if p.Status != StatusFolded {
				sole = s
				break
			}
		}
		rankings = map[int]evaluator.HandRanking{sole: {}}
		for i := range pots {
			pots[i].Eligible = map[int]bool{sole: true}
		}
	} else {
		rankings = make(map[int]evaluator.HandRanking, len(h.players))
		for s, p := range h.players {
			if p.Status == StatusFolded {
				continue
			}
			rankings[s] = evaluator.Evaluate(p.HoleCards, h.board)
		}
	}

	h.pots = pots

	clockwise := seats.ClockwiseFrom(h.buttonSeat)
	awards := pot.Distribute(pots, rankings, clockwise)

	totals := make(map[int]int, len(h.players))
	for _, a := range awards {
		totals[a.Seat] += a.Amount
	}

	var winnerList []events.Winner
	for _, s := range clockwise {
		amount, ok := totals[s]
		if !ok || amount == 0 {
			continue
		}
		p := h.players[s]
		p.Chips += amount
		w := events.Winner{PlayerID: p.ID, Amount: amount, HoleCards: cardStrings(p.HoleCards[:])}
		if foldWin {
			w.HandDescription = "Won by fold"
		} else {
			r := rankings[s]
			w.HandRank = r.Category.String()
			w.HandDescription = r.Description
			w.BestFive = cardStrings(r.BestFive)
		}
		winnerList = append(winnerList, w)
		e.publish(events.ChipsAwarded, h.handNumber, events.ChipsAwardedPayload{PlayerID: p.ID, Amount: amount, TotalAfter: p.Chips})
	}
	return winnerList, nil
}

// finishHand writes settled chip counts back to the seat manager, removes
// anyone left with nothing, and emits the terminal event.
func (e *Engine) finishHand(h *handState, seats *seat.Manager, winnerList []events.Winner) HandResult {
	for s, p := range h.players {
		seats.SetChips(s, p.Chips)
	}

	type elimination struct{ seat, chipsStart int }
	var eliminated []elimination
	for s, p := range h.players {
		if p.Chips == 0 {
			eliminated = append(eliminated, elimination{s, p.ChipsStart})
		}
	}

	clockwise := seats.ClockwiseFrom(h.buttonSeat)
	pos := make(map[int]int, len(clockwise))
	for i, s := range clockwise {
		pos[s] = i
	}
	sort.Slice(eliminated, func(i, j int) bool {
		if eliminated[i].chipsStart != eliminated[j].chipsStart {
			return eliminated[i].chipsStart < eliminated[j].chipsStart
		}
		return pos[eliminated[i].seat] < pos[eliminated[j].seat]
	})

	for _, el := range eliminated {
		p := h.players[el.seat]
		e.publish(events.PlayerEliminated, h.handNumber, events.PlayerEliminatedPayload{PlayerID: p.ID, FinalChips: 0})
		seats.RemovePlayer(el.seat)
	}

	e.publish(events.HandEnded, h.handNumber, events.HandEndedPayload{
		Winners:        winnerList,
		PotTotal:       pot.Total(h.pots),
		CommunityCards: cardStrings(h.board),
	})

	for s := range h.players {
		if provider := e.Providers[s]; provider != nil {
			provider.ReceiveMessage(winnerSummary(h.handNumber, winnerList))
		}
	}

	return HandResult{
		HandNumber:     h.handNumber,
		Winners:        winnerList,
		PotTotal:       pot.Total(h.pots),
		CommunityCards: append([]deck.Card(nil), h.board...),
	}
}

// abort rolls the table back to its pre-hand state: seat chips were
// never written (committed amounts live only in the per-hand players),
// and the button/blind rotation is restored to its snapshot so the next
// start attempt replays the same assignment.
func (e *Engine) abort(h *handState, seats *seat.Manager, rotation seat.Rotation, cause error) (HandResult, error) {
	seats.RestoreRotation(rotation)
	e.Logger.Error("hand aborted", "hand", h.handNumber, "cause", cause)
	e.publish(events.HandAborted, h.handNumber, events.HandAbortedPayload{Reason: cause.Error()})
	return HandResult{HandNumber: h.handNumber, Aborted: true, AbortReason: cause.Error()}, cause
}

func (e *Engine) publish(kind events.Kind, handNum int, payload any) {
	if e.Bus == nil {
		return
	}
	e.Bus.Publish(events.Event{
		Kind:      kind,
		TableID:   e.TableID,
		HandNum:   handNum,
		Timestamp: e.Clock.Now(),
		Payload:   payload,
	})
}
