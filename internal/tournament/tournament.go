// Package tournament runs a fixed-length match between seated strategies,
// carrying stacks and eliminations from hand to hand.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertourney/internal/equity"
	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/gameid"
	"github.com/lox/pokertourney/internal/randutil"
)

const (
	DefaultHands           = 50
	DefaultStartingStack   = 10000
	DefaultDecisionTimeout = 2 * time.Second
)

// Config controls a match.
type Config struct {
	Hands         int
	StartingStack float64
	Rules         game.Rules
	EquitySamples int
	// Seed fixes every deal and equity estimate. Zero picks a fresh seed.
	Seed int64
	// DecisionTimeout bounds each strategy call. Zero disables the limit.
	DecisionTimeout time.Duration
	Clock           quartz.Clock
	Logger          *log.Logger
	Observer        Observer
}

// DefaultConfig returns the standard 50 hand match.
func DefaultConfig() Config {
	return Config{
		Hands:           DefaultHands,
		StartingStack:   DefaultStartingStack,
		Rules:           game.DefaultRules(),
		EquitySamples:   equity.DefaultSamples,
		DecisionTimeout: DefaultDecisionTimeout,
	}
}

// Validate checks the match settings.
func (c Config) Validate() error {
	var errs []error
	if c.Hands < 1 {
		errs = append(errs, fmt.Errorf("hands must be at least 1, got %d", c.Hands))
	}
	if c.StartingStack < 0 {
		errs = append(errs, fmt.Errorf("starting stack must not be negative, got %v", c.StartingStack))
	}
	if c.EquitySamples < 0 {
		errs = append(errs, fmt.Errorf("equity samples must not be negative, got %d", c.EquitySamples))
	}
	if c.DecisionTimeout < 0 {
		errs = append(errs, fmt.Errorf("decision timeout must not be negative, got %s", c.DecisionTimeout))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Seat binds a name to a strategy for the whole match.
type Seat struct {
	Name     string
	Strategy game.Strategy
}

// Result is the final state of a match.
type Result struct {
	MatchID       string  `json:"match_id"`
	Seed          int64   `json:"seed"`
	StartingStack float64 `json:"starting_stack"`
	HandsPlayed   int     `json:"hands_played"`
	// Halted is set when fewer than two seats could post the buy-in.
	Halted    bool              `json:"halted"`
	History   []game.HandRecord `json:"history"`
	Wins      []float64         `json:"wins"`
	Standings []Standing        `json:"standings"`
}

// Match owns the seats and their ledgers. A Match is single use.
type Match struct {
	id        string
	cfg       Config
	seats     []Seat
	ledgers   []*game.Ledger
	guards    []*game.Guard
	estimator *equity.Estimator
	rng       *rand.Rand
	ids       *gameid.Generator
	logger    *log.Logger
	observer  Observer

	history []game.HandRecord
	wins    []float64
	played  bool
}

// New prepares a match. Every seat needs a strategy, and at least two seats
// are required.
func New(cfg Config, seats []Seat) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(seats) < 2 {
		return nil, fmt.Errorf("need at least 2 seats, got %d", len(seats))
	}
	for i, s := range seats {
		if s.Strategy == nil {
			return nil, fmt.Errorf("seat %d (%s) has no strategy", i, s.Name)
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = randutil.Seed()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Observer == nil {
		cfg.Observer = NullObserver{}
	}

	rng := randutil.New(cfg.Seed)
	ids := gameid.NewGenerator(randutil.Derive(rng), cfg.Clock)
	id := ids.Generate()
	logger := cfg.Logger.WithPrefix("match").With("match", id)

	m := &Match{
		id:        id,
		cfg:       cfg,
		seats:     seats,
		ledgers:   make([]*game.Ledger, len(seats)),
		guards:    make([]*game.Guard, len(seats)),
		estimator: equity.New(cfg.EquitySamples),
		rng:       rng,
		ids:       ids,
		logger:    logger,
		observer:  cfg.Observer,
		wins:      make([]float64, len(seats)),
	}
	for i, s := range seats {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		m.ledgers[i] = game.NewLedger(i, name, cfg.StartingStack)
		m.guards[i] = game.NewGuard(i, s.Strategy, cfg.DecisionTimeout, cfg.Clock, logger.With("name", name))
	}
	return m, nil
}

// ID returns the match ULID.
func (m *Match) ID() string { return m.id }

// Run plays up to Hands hands. It stops early when fewer than two seats can
// post the buy-in, or with ctx's error when ctx is cancelled between hands.
func (m *Match) Run(ctx context.Context) (Result, error) {
	if m.played {
		return Result{}, errors.New("match already run")
	}
	m.played = true

	m.logger.Info("Match starting", "seats", len(m.seats), "hands", m.cfg.Hands, "seed", m.cfg.Seed)
	for _, g := range m.guards {
		_ = g.SetSeat(ctx)
	}

	halted := false
	for n := 1; n <= m.cfg.Hands; n++ {
		if err := ctx.Err(); err != nil {
			return m.result(false), err
		}
		if !m.canDeal() {
			halted = true
			break
		}
		rec, err := m.playHand(ctx, n)
		if err != nil {
			return m.result(false), fmt.Errorf("hand %d: %w", n, err)
		}
		m.history = append(m.history, rec)
		m.observer.HandCompleted(rec.Clone(), m.standings())
	}

	res := m.result(halted)
	m.logger.Info("Match complete", "hands", res.HandsPlayed, "halted", halted)
	m.observer.MatchCompleted(res)
	return res, nil
}

// canDeal eliminates every underfunded seat and reports whether at least two
// remain. Nobody is debited when the match halts here.
func (m *Match) canDeal() bool {
	funded := game.FundedSeats(m.ledgers, m.cfg.Rules.BuyIn)
	if len(funded) >= 2 {
		return true
	}
	for _, l := range m.ledgers {
		if !l.Eliminated && !l.CanPost(m.cfg.Rules.BuyIn) {
			l.Eliminate()
			m.logger.Warn("Seat eliminated, cannot post buy-in", "seat", l.Seat, "name", l.Name)
		}
	}
	m.logger.Warn("Fewer than two funded seats, halting match", "funded", len(funded))
	return false
}

func (m *Match) playHand(ctx context.Context, n int) (game.HandRecord, error) {
	for i, l := range m.ledgers {
		if l.Eliminated {
			continue
		}
		_ = m.guards[i].InitializeHand(ctx, game.CloneHistory(m.history), n)
	}

	id := m.ids.Generate()
	hand, err := game.NewHand(randutil.Derive(m.rng), m.ledgers, m.guards,
		game.WithID(id),
		game.WithNumber(n),
		game.WithRules(m.cfg.Rules),
		game.WithEstimator(m.estimator),
		game.WithLogger(m.logger),
	)
	if err != nil {
		return game.HandRecord{}, err
	}
	rec, err := hand.Play(ctx)
	if err != nil {
		return game.HandRecord{}, err
	}

	for seat, credit := range rec.Settlement.WinCredits {
		m.wins[seat] += credit
	}
	return rec, nil
}

func (m *Match) standings() []Standing {
	faults := make([]int, len(m.guards))
	for i, g := range m.guards {
		faults[i] = g.Faults()
	}
	return rank(m.ledgers, m.wins, faults)
}

func (m *Match) result(halted bool) Result {
	return Result{
		MatchID:       m.id,
		Seed:          m.cfg.Seed,
		StartingStack: m.cfg.StartingStack,
		HandsPlayed:   len(m.history),
		Halted:        halted,
		History:       game.CloneHistory(m.history),
		Wins:          append([]float64(nil), m.wins...),
		Standings:     m.standings(),
	}
}
