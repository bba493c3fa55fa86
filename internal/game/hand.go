package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/equity"
	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/poker"
)

// ErrNotEnoughPlayers is returned by Play when fewer than two seats can post
// the buy-in. No stack is touched in that case.
var ErrNotEnoughPlayers = errors.New("fewer than two seats can post the buy-in")

// Hand runs one deal from buy-ins to settlement. A Hand is single use.
type Hand struct {
	id        string
	number    int
	rules     Rules
	seats     []*Ledger
	guards    []*Guard
	estimator Estimator
	rank      poker.RankFunc
	rng       *rand.Rand
	deck      *poker.Deck
	logger    *log.Logger

	phase      Phase
	pot        float64
	board      []poker.Card
	stacks     []float64
	settlement Settlement
}

// NewHand prepares a hand for seats. guards[i] must wrap the strategy of
// seats[i], and seats[i].Seat must equal i.
func NewHand(rng *rand.Rand, seats []*Ledger, guards []*Guard, opts ...HandOption) (*Hand, error) {
	if rng == nil {
		return nil, errors.New("rng is required")
	}
	if len(seats) != len(guards) {
		return nil, fmt.Errorf("%d seats but %d guards", len(seats), len(guards))
	}
	for i, l := range seats {
		if l == nil || l.Seat != i {
			return nil, fmt.Errorf("seat %d has a mismatched ledger", i)
		}
		if guards[i] == nil || guards[i].Seat() != i {
			return nil, fmt.Errorf("seat %d has a mismatched guard", i)
		}
	}

	cfg := &handConfig{
		number: 1,
		rules:  DefaultRules(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if cfg.estimator == nil {
		cfg.estimator = equity.New(equity.DefaultSamples)
	}
	if cfg.rank == nil {
		cfg.rank = poker.Evaluate
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	return &Hand{
		id:        cfg.id,
		number:    cfg.number,
		rules:     cfg.rules,
		seats:     seats,
		guards:    guards,
		estimator: cfg.estimator,
		rank:      cfg.rank,
		rng:       rng,
		deck:      cfg.deck,
		logger:    cfg.logger.With("hand", cfg.number),
		phase:     Round1Flop,
	}, nil
}

// Phase returns the current state.
func (h *Hand) Phase() Phase { return h.phase }

// Pot returns the pot collected so far.
func (h *Hand) Pot() float64 { return h.pot }

// Play runs the hand to a terminal phase and returns its history entry.
// Strategy failures never abort the hand; they are replaced by defaults.
func (h *Hand) Play(ctx context.Context) (HandRecord, error) {
	if h.phase.Terminal() || h.board != nil {
		return HandRecord{}, errors.New("hand already played")
	}
	if len(FundedSeats(h.seats, h.rules.BuyIn)) < 2 {
		return HandRecord{}, ErrNotEnoughPlayers
	}

	for _, l := range h.seats {
		l.ResetHand()
	}
	h.postBuyIns()
	if err := h.deal(); err != nil {
		return HandRecord{}, err
	}
	h.stacks = make([]float64, len(h.seats))
	for i, l := range h.seats {
		h.stacks[i] = l.Stack
	}
	h.logger.Debug("Dealt hand", "id", h.id, "board", poker.FormatCards(h.board), "pot", h.pot)

	live := h.playRound1(ctx)
	switch len(live) {
	case 0:
		h.logger.Warn("No seat left after round 1, abandoning hand", "pot", h.pot)
		h.settle(Abandoned, Abandon(h.pot))
	case 1:
		l := h.seats[live[0]]
		h.settle(EarlyWin, SettleEarlyWin(h.rules, h.pot, l.Seat, l.Bets[0]))
	default:
		h.playRound(ctx, 2, live)
		h.playRound(ctx, 3, live)
		h.showdown(live)
	}

	h.logger.Info("Hand complete",
		"outcome", h.phase,
		"pot", h.pot,
		"winners", h.settlement.Winners,
		"redistributed", h.settlement.Redistributed)
	return h.record(), nil
}

func (h *Hand) postBuyIns() {
	for _, l := range h.seats {
		if l.Eliminated {
			continue
		}
		if l.Stack < h.rules.BuyIn {
			residual := l.Eliminate()
			l.Paid += residual
			h.pot += residual
			h.logger.Warn("Seat eliminated, cannot post buy-in", "seat", l.Seat, "name", l.Name, "forfeit", residual)
			continue
		}
		l.Stack -= h.rules.BuyIn
		l.Paid += h.rules.BuyIn
		h.pot += h.rules.BuyIn
		l.Dealt = true
	}
}

// deal fixes every card for the hand: hole cards in seat order, then the
// five community cards.
func (h *Hand) deal() error {
	if h.deck == nil {
		h.deck = poker.NewDeck(h.rng)
	}
	for _, l := range h.seats {
		if !l.Dealt {
			continue
		}
		if l.Hole = h.deck.Deal(2); l.Hole == nil {
			return fmt.Errorf("deck exhausted dealing seat %d", l.Seat)
		}
	}
	if h.board = h.deck.Deal(5); h.board == nil {
		return errors.New("deck exhausted dealing the board")
	}
	return nil
}

// playRound1 runs the flop round and returns the seats that did not fold.
func (h *Hand) playRound1(ctx context.Context) []int {
	h.phase = Round1Flop

	var eligible []int
	for _, l := range h.seats {
		if !l.InHand() {
			continue
		}
		if l.Stack < h.rules.Round1Min {
			residual := l.Eliminate()
			l.Paid += residual
			h.pot += residual
			h.logger.Warn("Seat eliminated, cannot cover round 1", "seat", l.Seat, "name", l.Name, "forfeit", residual)
			continue
		}
		eligible = append(eligible, l.Seat)
	}

	decisions := h.decide(ctx, 1, eligible)
	var live []int
	for i, seat := range eligible {
		l, d := h.seats[seat], decisions[i]
		l.Equities = append(l.Equities, d.equity)
		if d.err != nil {
			l.Faults++
		}
		if d.action.Fold {
			l.Folded = true
			h.logger.Debug("Seat folded", "seat", seat, "name", l.Name, "equity", d.equity)
			continue
		}
		h.commit(l, 1, h.rules.Clamp(1, d.action.Bet, 0, l.Stack), d.equity)
		live = append(live, seat)
	}
	return live
}

// playRound runs round 2 or 3 for seats. There is no fold; a faulty answer
// becomes the lower bound.
func (h *Hand) playRound(ctx context.Context, round int, seats []int) {
	if round == 2 {
		h.phase = Round2Turn
	} else {
		h.phase = Round3River
	}

	decisions := h.decide(ctx, round, seats)
	for i, seat := range seats {
		l, d := h.seats[seat], decisions[i]
		l.Equities = append(l.Equities, d.equity)
		prev := l.Bets[round-2]
		raw := d.raw
		if d.err != nil {
			l.Faults++
			raw, _ = h.rules.Bounds(round, prev)
		}
		h.commit(l, round, h.rules.Clamp(round, raw, prev, l.Stack), d.equity)
	}
}

type decision struct {
	equity float64
	action Round1Action
	raw    float64
	err    error
}

// decide evaluates every acting seat concurrently. Each seat gets its own
// child random stream, derived in seat order before any goroutine starts.
// Nothing here mutates hand state.
func (h *Hand) decide(ctx context.Context, round int, seats []int) []decision {
	board := h.board[:round+2]
	players := len(seats)
	pot := h.pot
	var r1, r2 []float64
	if round >= 2 {
		r1 = h.roundBets(1)
	}
	if round == 3 {
		r2 = h.roundBets(2)
	}

	streams := make([]*rand.Rand, len(seats))
	for i := range seats {
		streams[i] = randutil.Derive(h.rng)
	}

	out := make([]decision, len(seats))
	var g errgroup.Group
	for i, seat := range seats {
		guard := h.guards[seat]
		view := View{
			Seat:   seat,
			Hole:   slices.Clone(h.seats[seat].Hole),
			Board:  slices.Clone(board),
			Stacks: slices.Clone(h.stacks),
			Pot:    pot,
		}
		g.Go(func() error {
			d := &out[i]
			d.equity = h.estimator.Estimate(view.Hole, view.Board, players, streams[i])
			view.WinProb = d.equity
			switch round {
			case 1:
				d.action, d.err = guard.Round1(ctx, Round1View{View: view})
			case 2:
				d.raw, d.err = guard.Round2(ctx, Round2View{View: view, Round1Bets: slices.Clone(r1)})
			case 3:
				d.raw, d.err = guard.Round3(ctx, Round3View{
					View:       view,
					Round1Bets: slices.Clone(r1),
					Round2Bets: slices.Clone(r2),
				})
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// roundBets is the bet record for round: one entry per seat, 0 for seats
// that did not bet.
func (h *Hand) roundBets(round int) []float64 {
	bets := make([]float64, len(h.seats))
	for i, l := range h.seats {
		bets[i] = l.Bets[round-1]
	}
	return bets
}

func (h *Hand) commit(l *Ledger, round int, bet, equity float64) {
	l.Bets[round-1] = bet
	l.Stack -= bet
	l.Paid += bet
	h.pot += bet
	h.logger.Debug("Seat bet", "round", round, "seat", l.Seat, "name", l.Name, "bet", bet, "equity", equity)
}

func (h *Hand) showdown(seats []int) {
	full := poker.NewHand(h.board...)
	contenders := make([]Contender, 0, len(seats))
	for _, seat := range seats {
		l := h.seats[seat]
		l.Score = h.rank(full | poker.NewHand(l.Hole...))
		contenders = append(contenders, Contender{Seat: seat, Rank: l.Score, Bets: l.Bets})
	}
	h.settle(Showdown, SettleShowdown(h.rules, h.pot, contenders, seats))
}

func (h *Hand) settle(phase Phase, s Settlement) {
	h.phase = phase
	h.settlement = s
	for seat, amount := range s.Payouts {
		h.seats[seat].Stack += amount
	}
	for _, seat := range s.Recipients {
		h.seats[seat].Stack += s.RedistributionShare
	}
	if s.Unallocated > 0 {
		h.logger.Debug("Pot left unallocated", "amount", s.Unallocated)
	}
}

func (h *Hand) record() HandRecord {
	rec := HandRecord{
		ID:         h.id,
		Number:     h.number,
		Outcome:    h.phase,
		Board:      slices.Clone(h.board[:h.phase.VisibleBoard()]),
		Pot:        h.pot,
		Seats:      make([]SeatRecord, len(h.seats)),
		Settlement: h.settlement,
	}
	for i, l := range h.seats {
		sr := recordSeat(l)
		if h.phase == Showdown && sr.Score.Valid() {
			if desc, err := poker.Describe(append(slices.Clone(l.Hole), h.board...)); err == nil {
				sr.Description = desc
			}
		}
		rec.Seats[i] = sr
	}
	return rec
}
