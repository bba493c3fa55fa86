package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

var (
	// ErrTimeout is returned when a strategy exceeds its time budget.
	ErrTimeout = errors.New("strategy timed out")
	// ErrInvalidBet is returned for NaN, infinite or negative amounts.
	ErrInvalidBet = errors.New("strategy returned an invalid bet")
	// ErrBusy is returned while a timed out call is still running.
	ErrBusy = errors.New("strategy still running an earlier call")
)

// PanicError wraps a value recovered from a strategy.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("strategy panicked: %v", e.Value)
}

// Guard isolates one seat's strategy. A call that panics, overruns the
// timeout, is cancelled or returns an unusable amount reports an error and
// the caller applies the safe default. A timed out call keeps running in the
// background and its result is discarded. Until it returns, the strategy is
// not called again and every call faults with ErrBusy.
type Guard struct {
	seat     int
	strategy Strategy
	timeout  time.Duration
	clock    quartz.Clock
	logger   *log.Logger
	faults   int
	// pending is closed when the last timed out call returns.
	pending chan struct{}
}

// NewGuard wraps strategy for seat. A zero timeout runs calls inline with
// only panic recovery. A nil clock uses the real clock.
func NewGuard(seat int, strategy Strategy, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *Guard {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Guard{
		seat:     seat,
		strategy: strategy,
		timeout:  timeout,
		clock:    clock,
		logger:   logger.With("seat", seat),
	}
}

// Seat returns the guarded seat index.
func (g *Guard) Seat() int { return g.seat }

// Faults returns how many calls have been replaced by a default so far.
func (g *Guard) Faults() int { return g.faults }

// SetSeat tells the strategy its seat.
func (g *Guard) SetSeat(ctx context.Context) error {
	_, err := call(ctx, g, "set_seat", func() struct{} {
		g.strategy.SetSeat(g.seat)
		return struct{}{}
	})
	return err
}

// InitializeHand runs the per-hand hook. Failures are logged and counted.
func (g *Guard) InitializeHand(ctx context.Context, history []HandRecord, handNumber int) error {
	_, err := call(ctx, g, "initialize_hand", func() struct{} {
		g.strategy.InitializeHand(history, handNumber)
		return struct{}{}
	})
	return err
}

// Round1 asks for the round 1 action. On error the action is a fold.
func (g *Guard) Round1(ctx context.Context, v Round1View) (Round1Action, error) {
	a, err := call(ctx, g, "round1", func() Round1Action { return g.strategy.DecideRound1(v) })
	if err == nil && !a.Fold {
		err = g.checkBet("round1", a.Bet)
	}
	if err != nil {
		return Fold(), err
	}
	return a, nil
}

// Round2 asks for the raw round 2 bet. On error the caller uses the lower bound.
func (g *Guard) Round2(ctx context.Context, v Round2View) (float64, error) {
	bet, err := call(ctx, g, "round2", func() float64 { return g.strategy.DecideRound2(v) })
	if err == nil {
		err = g.checkBet("round2", bet)
	}
	return bet, err
}

// Round3 asks for the raw round 3 bet. On error the caller uses the lower bound.
func (g *Guard) Round3(ctx context.Context, v Round3View) (float64, error) {
	bet, err := call(ctx, g, "round3", func() float64 { return g.strategy.DecideRound3(v) })
	if err == nil {
		err = g.checkBet("round3", bet)
	}
	return bet, err
}

func (g *Guard) checkBet(op string, bet float64) error {
	if math.IsNaN(bet) || math.IsInf(bet, 0) || bet < 0 {
		g.faults++
		g.logger.Warn("Strategy returned invalid bet", "op", op, "bet", bet)
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidBet, bet)
	}
	return nil
}

type result[T any] struct {
	value T
	err   error
}

func call[T any](ctx context.Context, g *Guard, op string, fn func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, g.fault(op, err)
	}
	if g.pending != nil {
		select {
		case <-g.pending:
			g.pending = nil
		default:
			return zero, g.fault(op, ErrBusy)
		}
	}

	if g.timeout <= 0 {
		r := protect(fn)
		if r.err != nil {
			return zero, g.fault(op, r.err)
		}
		return r.value, nil
	}

	timedOut := make(chan struct{})
	timer := g.clock.AfterFunc(g.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	done := make(chan result[T], 1)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		done <- protect(fn)
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return zero, g.fault(op, r.err)
		}
		return r.value, nil
	case <-timedOut:
		g.pending = finished
		return zero, g.fault(op, fmt.Errorf("%w after %s", ErrTimeout, g.timeout))
	case <-ctx.Done():
		g.pending = finished
		return zero, g.fault(op, ctx.Err())
	}
}

func protect[T any](fn func() T) (r result[T]) {
	defer func() {
		if v := recover(); v != nil {
			r.err = &PanicError{Value: v}
		}
	}()
	return result[T]{value: fn()}
}

func (g *Guard) fault(op string, err error) error {
	g.faults++
	g.logger.Warn("Strategy fault, using default", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
