// Package table hosts one poker table end to end: seating, configuration,
// and the single hand Engine that runs on it. It is the thin coordination
// layer a server or simulator drives; all game logic lives in engine,
// betting, pot, validator, and seat.
package table

import (
	"context"
	"fmt"
	"sync"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/engine"
	"github.com/lox/holdem-engine/internal/events"
	"github.com/lox/holdem-engine/internal/gameid"
	"github.com/lox/holdem-engine/internal/seat"
)

// RefusalCode is a structured reason TryStartHand declined to start.
type RefusalCode string

const (
	TableNotReady       RefusalCode = "TABLE_NOT_READY"
	InsufficientPlayers RefusalCode = "INSUFFICIENT_PLAYERS"
	InsufficientActive  RefusalCode = "INSUFFICIENT_ACTIVE_PLAYERS"
	EngineError         RefusalCode = "ENGINE_ERROR"
)

// StartResult is the outcome of TryStartHand: either a hand ran, or a
// structured reason it did not.
type StartResult struct {
	Started    bool
	HandNumber int
	HandID     string // opaque unique id minted per hand
	Result     engine.HandResult
	Refusal    RefusalCode
	Err        error // set alongside EngineError
}

const defaultMinPlayers = 2

// Table coordinates seating and hand execution for one table.
type Table struct {
	ID     string
	Config config.TableConfig

	Seats  *seat.Manager
	Engine *engine.Engine
	Bus    *events.Bus

	mu         sync.Mutex
	inProgress bool
	closed     bool
	cancelHand context.CancelFunc
	handNumber int
	startQueue chan struct{}
}

// New builds a Table from config, wiring a fresh seat.Manager and Engine.
// An empty id mints an opaque one.
func New(id string, cfg config.TableConfig, bus *events.Bus, providers map[int]agent.Provider) *Table {
	if id == "" {
		id = gameid.Generate()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	seats := seat.NewManager(cfg.Seats)
	if cfg.DealerButton != nil {
		seats.SetInitialButton(*cfg.DealerButton)
	}
	eng := engine.New(id, bus, nil, nil, providers, cfg.ActionTimeout())
	return &Table{ID: id, Config: cfg, Seats: seats, Engine: eng, Bus: bus, startQueue: make(chan struct{}, 1)}
}

// QueueHandStart records a request to start another hand once the table
// is free. Unlike TryStartHand it is safe to call from inside an event
// handler while a hand is still running; duplicate requests collapse
// into one.
func (t *Table) QueueHandStart() {
	select {
	case t.startQueue <- struct{}{}:
	default:
	}
}

// TakeQueuedStart consumes a pending start request, reporting whether
// one was queued. The table's driver loop calls this between hands.
func (t *Table) TakeQueuedStart() bool {
	select {
	case <-t.startQueue:
		return true
	default:
		return false
	}
}

// AddPlayer seats a player, honoring the table's configured buy-in bounds.
// Additions are refused while a hand is in progress.
func (t *Table) AddPlayer(playerID string, chips, seatIndex int) (int, error) {
	t.mu.Lock()
	inProgress := t.inProgress
	t.mu.Unlock()
	if inProgress {
		return 0, fmt.Errorf("table: cannot seat %s, a hand is in progress", playerID)
	}
	if chips < t.Config.BuyInMin || chips > t.Config.BuyInMax {
		return 0, fmt.Errorf("table: buy-in %d outside [%d, %d]", chips, t.Config.BuyInMin, t.Config.BuyInMax)
	}
	idx, err := t.Seats.AddPlayer(playerID, chips, seatIndex)
	if err != nil {
		return 0, err
	}
	t.publishReady()
	return idx, nil
}

func (t *Table) minPlayers() int {
	if t.Config.MinPlayers >= defaultMinPlayers {
		return t.Config.MinPlayers
	}
	return defaultMinPlayers
}

func (t *Table) publishReady() {
	t.Bus.Publish(events.Event{
		Kind:    events.TableReady,
		TableID: t.ID,
		Payload: events.TableReadyPayload{SeatedCount: t.Seats.OccupiedCount(), MinPlayers: t.minPlayers()},
	})
}

// TryStartHand attempts to run one hand. It refuses with a structured
// reason rather than an error for ordinary preconditions (a hand already
// running, too few seated or active players); a genuine engine failure
// is reported as EngineError, and the hand is treated as never having
// started (no chips move, the button does not advance further than the
// engine itself rolled back).
func (t *Table) TryStartHand(ctx context.Context, deckSource *deck.Deck) StartResult {
	t.mu.Lock()
	if t.closed || t.inProgress {
		t.mu.Unlock()
		return StartResult{Refusal: TableNotReady}
	}
	if t.Seats.OccupiedCount() < t.minPlayers() {
		t.mu.Unlock()
		return StartResult{Refusal: InsufficientPlayers}
	}
	if t.Seats.EligibleCount() < t.minPlayers() {
		t.mu.Unlock()
		return StartResult{Refusal: InsufficientActive}
	}

	handCtx, cancel := context.WithCancel(ctx)
	t.inProgress = true
	t.cancelHand = cancel
	t.handNumber++
	handNumber := t.handNumber
	t.mu.Unlock()

	defer func() {
		cancel()
		t.mu.Lock()
		t.inProgress = false
		t.cancelHand = nil
		t.mu.Unlock()
	}()

	if deckSource == nil {
		deckSource = deck.NewDeck()
	}

	handID := gameid.Generate()
	result, err := t.Engine.RunHand(handCtx, t.Seats, t.Config.SmallBlind, t.Config.BigBlind, deckSource, handNumber)
	if err != nil {
		return StartResult{Refusal: EngineError, Err: err, HandNumber: handNumber, HandID: handID}
	}

	return StartResult{Started: true, HandNumber: handNumber, HandID: handID, Result: result}
}

// Close shuts the table down: any hand awaiting a player action is
// cancelled (the engine aborts it and refunds committed chips), and all
// further TryStartHand calls are refused.
func (t *Table) Close() {
	t.mu.Lock()
	t.closed = true
	cancel := t.cancelHand
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
