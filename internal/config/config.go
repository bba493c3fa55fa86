// Package config loads match settings from an HCL file, a .env file and
// TOURNEY_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/tournament"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "TOURNEY_"

// Config is the complete match configuration.
type Config struct {
	Match Match
	Rules game.Rules
	Seats []Seat
}

// Match holds match-level settings. Every field can be overridden from the
// environment.
type Match struct {
	Hands         int     `hcl:"hands,optional" env:"HANDS"`
	StartingStack float64 `hcl:"starting_stack,optional" env:"STARTING_STACK"`
	EquitySamples int     `hcl:"equity_samples,optional" env:"EQUITY_SAMPLES"`
	Seed          int64   `hcl:"seed,optional" env:"SEED"`
	// DecisionTimeout is a Go duration string; the default is "2s". Empty or
	// "0" disables the limit.
	DecisionTimeout string `hcl:"decision_timeout,optional" env:"DECISION_TIMEOUT"`
	LogLevel        string `hcl:"log_level,optional" env:"LOG_LEVEL"`
	HistoryOut      string `hcl:"history_out,optional" env:"HISTORY_OUT"`
	Listen          string `hcl:"listen,optional" env:"LISTEN"`
}

// Seat names a player and the strategy it runs.
type Seat struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
}

// DefaultStrategies is the lineup used when no seats are configured.
var DefaultStrategies = []string{"equity", "pressure", "trend", "stack", "looseness"}

// Default returns the standard five seat match.
func Default() *Config {
	seats := make([]Seat, len(DefaultStrategies))
	for i, s := range DefaultStrategies {
		seats[i] = Seat{Name: fmt.Sprintf("Player %d", i+1), Strategy: s}
	}
	return &Config{
		Match: Match{
			Hands:           tournament.DefaultHands,
			StartingStack:   tournament.DefaultStartingStack,
			EquitySamples:   500,
			DecisionTimeout: tournament.DefaultDecisionTimeout.String(),
			LogLevel:        "info",
		},
		Rules: game.DefaultRules(),
		Seats: seats,
	}
}

// file mirrors the HCL layout. Blocks are decoded in a second pass on top of
// the defaults so that omitted attributes keep their default values.
type file struct {
	Match *remain `hcl:"match,block"`
	Rules *remain `hcl:"rules,block"`
	Seats []Seat  `hcl:"seat,block"`
}

type remain struct {
	Body hcl.Body `hcl:",remain"`
}

// Load reads filename on top of the defaults. A missing file gives the
// defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	if err := cfg.decode(f.Body); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads HCL source on top of the defaults. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	cfg := Default()
	if err := cfg.decode(f.Body); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(body hcl.Body) error {
	var raw file
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if raw.Match != nil {
		if diags := gohcl.DecodeBody(raw.Match.Body, nil, &c.Match); diags.HasErrors() {
			return fmt.Errorf("failed to decode match block: %s", diags.Error())
		}
	}
	if raw.Rules != nil {
		if diags := gohcl.DecodeBody(raw.Rules.Body, nil, &c.Rules); diags.HasErrors() {
			return fmt.Errorf("failed to decode rules block: %s", diags.Error())
		}
	}
	if len(raw.Seats) > 0 {
		c.Seats = raw.Seats
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = DefaultStrategies[0]
		}
	}
	return nil
}

// Environ returns the process environment merged with the given .env files.
// Process variables win over file values, and missing files are ignored.
func Environ(dotenv ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, path := range dotenv {
		vals, err := godotenv.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range vals {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out, nil
}

type seatOverride struct {
	// Seats replaces the lineup: "equity,maniac" or "Alice=equity,Bob=maniac".
	Seats []string `env:"SEATS" envSeparator:","`
}

// ApplyEnv overrides match settings and seats from environ. Only variables
// that are set take effect.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&c.Match, opts); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	var so seatOverride
	if err := env.ParseWithOptions(&so, opts); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if len(so.Seats) > 0 {
		c.Seats = parseSeats(so.Seats)
	}
	return nil
}

func parseSeats(specs []string) []Seat {
	seats := make([]Seat, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		name, strategy, ok := strings.Cut(spec, "=")
		if !ok {
			name, strategy = fmt.Sprintf("Player %d", len(seats)+1), spec
		}
		seats = append(seats, Seat{Name: strings.TrimSpace(name), Strategy: strings.TrimSpace(strategy)})
	}
	return seats
}

// Timeout parses DecisionTimeout.
func (m Match) Timeout() (time.Duration, error) {
	if m.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(m.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision_timeout %q: %w", m.DecisionTimeout, err)
	}
	return d, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Tournament(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Seats) < 2 {
		errs = append(errs, fmt.Errorf("need at least 2 seats, got %d", len(c.Seats)))
	}
	seen := map[string]bool{}
	for i, s := range c.Seats {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("seat %d has no name", i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("duplicate seat name %q", s.Name))
		}
		seen[s.Name] = true
	}
	return errors.Join(errs...)
}

// Tournament converts the settings into a match config. Seats, clock,
// logger and observer are left for the caller.
func (c *Config) Tournament() (tournament.Config, error) {
	timeout, err := c.Match.Timeout()
	if err != nil {
		return tournament.Config{}, err
	}
	tc := tournament.Config{
		Hands:           c.Match.Hands,
		StartingStack:   c.Match.StartingStack,
		Rules:           c.Rules,
		EquitySamples:   c.Match.EquitySamples,
		Seed:            c.Match.Seed,
		DecisionTimeout: timeout,
	}
	if err := tc.Validate(); err != nil {
		return tournament.Config{}, err
	}
	return tc, nil
}
