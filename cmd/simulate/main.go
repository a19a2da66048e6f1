// Command simulate runs a batch of hold'em hands against random-acting
// bots across one or more concurrent tables, and reports for each table how
// many hands were played and how many seats are still occupied.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/events"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/table"
)

// CLI is the simulate command's flag set.
type CLI struct {
	Hands      int    `default:"1000" help:"Number of hands to run per table"`
	Tables     int    `default:"1" help:"Number of tables to run concurrently"`
	Seats      int    `default:"6" help:"Seats per table"`
	SmallBlind int    `default:"1" help:"Small blind amount"`
	BigBlind   int    `default:"2" help:"Big blind amount"`
	BuyIn      int    `default:"200" help:"Starting chip stack per seat"`
	Seed       int64  `default:"0" help:"RNG seed (0 picks a random one)"`
	Verbose    bool   `short:"v" help:"Verbose logging"`
	History    bool   `help:"Print the last hand's history from each table"`
}

func main() {
	var cli CLI
	kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("running %d hands across %d table(s), seed %d\n", cli.Hands, cli.Tables, cli.Seed)

	start := time.Now()
	results, err := run(cli, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}

	for i, r := range results {
		fmt.Printf("table %d: %d hands played, %d aborted, final seats: %d\n", i, r.HandsPlayed, r.Aborted, r.FinalSeats)
		if cli.History && r.LastHand != "" {
			fmt.Println(r.LastHand)
		}
	}
	fmt.Printf("done in %s\n", time.Since(start))
}

type tableResult struct {
	HandsPlayed int
	Aborted     int
	FinalSeats  int
	LastHand    string
}

func run(cli CLI, logger *log.Logger) ([]tableResult, error) {
	results := make([]tableResult, cli.Tables)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < cli.Tables; i++ {
		i := i
		g.Go(func() error {
			r, err := runTable(ctx, cli, logger, int64(i), i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runTable(ctx context.Context, cli CLI, logger *log.Logger, seedOffset int64, tableIdx int) (tableResult, error) {
	cfg := config.TableConfig{
		Name:       fmt.Sprintf("sim-%d", tableIdx),
		Seats:      cli.Seats,
		SmallBlind: cli.SmallBlind,
		BigBlind:   cli.BigBlind,
		BuyInMin:   cli.BuyIn,
		BuyInMax:   cli.BuyIn * 10,
	}

	bus := events.NewBus()
	rec := history.NewRecorder()
	bus.Subscribe(rec)

	rng := rand.New(rand.NewPCG(uint64(cli.Seed+seedOffset), uint64(tableIdx+1)))
	providers := make(map[int]agent.Provider, cli.Seats)
	for s := 0; s < cli.Seats; s++ {
		providers[s] = agent.NewRandBot(rng, logger)
	}

	tb := table.New(cfg.Name, cfg, bus, providers)
	for s := 0; s < cli.Seats; s++ {
		if _, err := tb.AddPlayer(fmt.Sprintf("bot-%d", s), cli.BuyIn, s); err != nil {
			return tableResult{}, err
		}
	}

	var result tableResult
	deckSeed := cli.Seed + seedOffset
	for i := 0; i < cli.Hands; i++ {
		if tb.Seats.EligibleCount() < 2 {
			break
		}
		res := tb.TryStartHand(ctx, deck.NewDeckFromSeed(deckSeed+int64(i)))
		if !res.Started {
			if res.Refusal == table.EngineError {
				return result, res.Err
			}
			break
		}
		result.HandsPlayed++
		if res.Result.Aborted {
			result.Aborted++
		}
	}
	result.FinalSeats = tb.Seats.OccupiedCount()
	result.LastHand = rec.Last()
	return result, nil
}
