// Package engineconfig loads table configuration for the engine's command
// wrappers from HCL files.
package engineconfig

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/smarter-poker/arena-engine/internal/game"
)

// Config is the root configuration document.
type Config struct {
	Tables []TableConfig `hcl:"table,block"`
}

// TableConfig defines one table's stakes and rules.
type TableConfig struct {
	Name              string      `hcl:"name,label"`
	Variant           string      `hcl:"variant,optional"`
	HiLo              bool        `hcl:"hi_lo,optional"`
	SmallBlind        int         `hcl:"small_blind"`
	BigBlind          int         `hcl:"big_blind"`
	Ante              int         `hcl:"ante,optional"`
	BombPotMultiplier int         `hcl:"bomb_pot_multiplier,optional"`
	MaxPlayers        int         `hcl:"max_players,optional"`
	StartingStack     int         `hcl:"starting_stack,optional"`
	Rake              *RakeConfig `hcl:"rake,block"`
}

// RakeConfig defines the rake policy for a table.
type RakeConfig struct {
	Percent      float64 `hcl:"percent"`
	Cap          int     `hcl:"cap,optional"`
	NoFlopNoRake bool    `hcl:"no_flop_no_rake,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Tables: []TableConfig{
			{
				Name:          "main",
				Variant:       "holdem",
				SmallBlind:    5,
				BigBlind:      10,
				MaxPlayers:    6,
				StartingStack: 1000,
				Rake:          &RakeConfig{Percent: 0.05, Cap: 15, NoFlopNoRake: true},
			},
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	for i := range cfg.Tables {
		applyTableDefaults(&cfg.Tables[i])
	}
	return &cfg, nil
}

func applyTableDefaults(t *TableConfig) {
	if t.Variant == "" {
		t.Variant = "holdem"
	}
	if t.MaxPlayers == 0 {
		t.MaxPlayers = 6
	}
	if t.StartingStack == 0 {
		t.StartingStack = 100 * t.BigBlind
	}
}

// Table returns the named table, or the first one when name is empty.
func (c *Config) Table(name string) (*TableConfig, error) {
	if name == "" && len(c.Tables) > 0 {
		return &c.Tables[0], nil
	}
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("table %q not found", name)
}

// HandConfig converts the table configuration into the engine's per-hand
// parameters.
func (t *TableConfig) HandConfig(handNo uint64) (game.HandConfig, error) {
	variant, err := game.ParseVariant(t.Variant)
	if err != nil {
		return game.HandConfig{}, err
	}

	cfg := game.HandConfig{
		TableID:           t.Name,
		HandNo:            handNo,
		Variant:           variant,
		HiLo:              t.HiLo,
		SmallBlind:        t.SmallBlind,
		BigBlind:          t.BigBlind,
		Ante:              t.Ante,
		BombPotMultiplier: t.BombPotMultiplier,
	}
	if t.Rake != nil {
		cfg.Rake = game.RakePolicy{
			Percent:      t.Rake.Percent,
			Cap:          t.Rake.Cap,
			NoFlopNoRake: t.Rake.NoFlopNoRake,
		}
	}
	return cfg, nil
}
