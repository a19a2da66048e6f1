// Package config loads table configuration from HCL files, the same
// declarative format the rest of this lineage's server tooling uses.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// File is the top-level HCL document: one or more table blocks.
type File struct {
	Tables []TableConfig `hcl:"table,block"`
}

// TableConfig defines one table's stakes, seat count, and timing.
type TableConfig struct {
	Name       string `hcl:"name,label"`
	Seats      int    `hcl:"seats,optional"`
	MinPlayers int    `hcl:"min_players,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	BuyInMin   int    `hcl:"buy_in_min,optional"`
	BuyInMax   int    `hcl:"buy_in_max,optional"`
	// DealerButton pins the first hand's button to a seat index; nil
	// lets the seat manager choose.
	DealerButton    *int `hcl:"dealer_button,optional"`
	ActionTimeoutMS int  `hcl:"action_timeout_ms,optional"`
	SimulationMode  bool `hcl:"simulation_mode,optional"`
}

// ActionTimeout returns the configured action timeout as a duration.
func (t TableConfig) ActionTimeout() time.Duration {
	return time.Duration(t.ActionTimeoutMS) * time.Millisecond
}

// DefaultTableConfig returns a reasonable single-table default.
func DefaultTableConfig(name string) TableConfig {
	return TableConfig{
		Name:            name,
		Seats:           6,
		MinPlayers:      2,
		SmallBlind:      1,
		BigBlind:        2,
		BuyInMin:        100,
		BuyInMax:        1000,
		ActionTimeoutMS: 30000,
	}
}

// Load parses an HCL file into a slice of table configs, applying
// defaults for any field the file leaves zero.
func Load(filename string) ([]TableConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return []TableConfig{DefaultTableConfig("main")}, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	var doc File
	diags = gohcl.DecodeBody(f.Body, nil, &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	for i := range doc.Tables {
		applyDefaults(&doc.Tables[i])
	}
	return doc.Tables, nil
}

func applyDefaults(t *TableConfig) {
	if t.Seats == 0 {
		t.Seats = 6
	}
	if t.MinPlayers == 0 {
		t.MinPlayers = 2
	}
	if t.BuyInMin == 0 {
		t.BuyInMin = t.BigBlind * 50
	}
	if t.BuyInMax == 0 {
		t.BuyInMax = t.BigBlind * 500
	}
	if t.ActionTimeoutMS == 0 {
		t.ActionTimeoutMS = 30000
	}
}

// Validate checks a table config for internal consistency.
func (t TableConfig) Validate() error {
	if t.SmallBlind <= 0 {
		return fmt.Errorf("config: table %s: small blind must be positive", t.Name)
	}
	if t.BigBlind < t.SmallBlind {
		return fmt.Errorf("config: table %s: big blind must be at least the small blind", t.Name)
	}
	if t.Seats < 2 || t.Seats > 10 {
		return fmt.Errorf("config: table %s: seats must be between 2 and 10", t.Name)
	}
	if t.MinPlayers < 2 || t.MinPlayers > t.Seats {
		return fmt.Errorf("config: table %s: min_players must be between 2 and seats", t.Name)
	}
	if t.DealerButton != nil && (*t.DealerButton < 0 || *t.DealerButton >= t.Seats) {
		return fmt.Errorf("config: table %s: dealer_button must name a seat", t.Name)
	}
	if t.BuyInMin >= t.BuyInMax {
		return fmt.Errorf("config: table %s: buy_in_min must be less than buy_in_max", t.Name)
	}
	return nil
}
