package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/bot"
	"github.com/lox/pokertourney/internal/config"
	"github.com/lox/pokertourney/internal/handlog"
	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/internal/report"
	"github.com/lox/pokertourney/internal/spectate"
	"github.com/lox/pokertourney/internal/tournament"
)

type RunCmd struct {
	Config     string        `short:"c" default:"tourney.hcl" type:"path" help:"Match configuration file (defaults apply when missing)"`
	EnvFile    []string      `name:"env-file" default:".env" help:"dotenv files to read TOURNEY_* overrides from"`
	Hands      int           `help:"Number of hands (overrides config)"`
	Seed       int64         `help:"Random seed (overrides config, 0 picks one)"`
	Timeout    time.Duration `help:"Time limit per strategy call (overrides config)"`
	HistoryOut string        `name:"history-out" type:"path" help:"Write the match history as TOML"`
	Serve      string        `help:"Serve the spectator feed on this address, e.g. :8080"`
	ShowHands  bool          `name:"show-hands" help:"Print a line for every hand"`
	Verbose    bool          `short:"V" help:"Enable debug logging"`
	NoColor    bool          `name:"no-color" help:"Disable colored output"`
}

func (c *RunCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	environ, err := config.Environ(c.EnvFile...)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return err
	}
	c.override(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Match.LogLevel, c.Verbose)
	if err != nil {
		return err
	}

	tc, err := cfg.Tournament()
	if err != nil {
		return err
	}
	if tc.Seed == 0 {
		tc.Seed = randutil.Seed()
	}
	tc.Logger = logger

	// Strategies draw from their own streams, offset from the deal.
	registry := bot.NewRegistry(logger.WithPrefix("bot"))
	rng := randutil.New(tc.Seed + 1)
	seats := make([]tournament.Seat, len(cfg.Seats))
	for i, s := range cfg.Seats {
		strategy, _ := registry.New(s.Strategy, randutil.Derive(rng))
		seats[i] = tournament.Seat{Name: s.Name, Strategy: strategy}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := report.New(os.Stdout, !c.NoColor)
	printer.Hands = c.ShowHands
	observers := []tournament.Observer{printer}

	var feed *spectate.Feed
	serveErr := make(chan error, 1)
	if addr := cfg.Match.Listen; addr != "" {
		feed = spectate.New(logger)
		observers = append(observers, feed)
		go func() { serveErr <- feed.Serve(ctx, addr) }()
	}
	tc.Observer = tournament.Observers(observers...)

	match, err := tournament.New(tc, seats)
	if err != nil {
		return err
	}
	res, err := match.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warn("Match interrupted", "hands", res.HandsPlayed)
		fmt.Print(printer.Standings(res))
	}

	if path := cfg.Match.HistoryOut; path != "" {
		if err := handlog.Write(path, res); err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
		logger.Info("History written", "path", path, "hands", res.HandsPlayed)
	}

	if feed != nil {
		logger.Info("Spectator feed still open, press Ctrl-C to exit", "addr", cfg.Match.Listen)
		return <-serveErr
	}
	return nil
}

// override applies command line flags last.
func (c *RunCmd) override(cfg *config.Config) {
	if c.Hands > 0 {
		cfg.Match.Hands = c.Hands
	}
	if c.Seed != 0 {
		cfg.Match.Seed = c.Seed
	}
	if c.Timeout > 0 {
		cfg.Match.DecisionTimeout = c.Timeout.String()
	}
	if c.HistoryOut != "" {
		cfg.Match.HistoryOut = c.HistoryOut
	}
	if c.Serve != "" {
		cfg.Match.Listen = c.Serve
	}
}

func newLogger(level string, verbose bool) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}
