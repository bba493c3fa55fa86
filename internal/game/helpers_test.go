package game

import (
	"io"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/poker"
)

// scripted is a strategy driven by closures. Nil closures bet the minimum.
type scripted struct {
	seat  int
	r1    func(Round1View) Round1Action
	r2    func(Round2View) float64
	r3    func(Round3View) float64
	init  func([]HandRecord, int)
	views struct {
		r1 []Round1View
		r2 []Round2View
		r3 []Round3View
	}
}

func (s *scripted) SetSeat(seat int) { s.seat = seat }

func (s *scripted) InitializeHand(history []HandRecord, n int) {
	if s.init != nil {
		s.init(history, n)
	}
}

func (s *scripted) DecideRound1(v Round1View) Round1Action {
	s.views.r1 = append(s.views.r1, v)
	if s.r1 == nil {
		return Bet(0)
	}
	return s.r1(v)
}

func (s *scripted) DecideRound2(v Round2View) float64 {
	s.views.r2 = append(s.views.r2, v)
	if s.r2 == nil {
		return 0
	}
	return s.r2(v)
}

func (s *scripted) DecideRound3(v Round3View) float64 {
	s.views.r3 = append(s.views.r3, v)
	if s.r3 == nil {
		return 0
	}
	return s.r3(v)
}

func folder() *scripted {
	return &scripted{r1: func(Round1View) Round1Action { return Fold() }}
}

func maxBettor() *scripted {
	return &scripted{
		r1: func(Round1View) Round1Action { return Bet(1e9) },
		r2: func(Round2View) float64 { return 1e9 },
		r3: func(Round3View) float64 { return 1e9 },
	}
}

// fixedEquity returns a constant win probability and records the player
// counts it was asked about.
type fixedEquity struct {
	value float64

	mu      sync.Mutex
	players []int
}

func (f *fixedEquity) Estimate(hole, board []poker.Card, players int, rng *rand.Rand) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = append(f.players, players)
	return f.value
}

func (f *fixedEquity) counts() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.players...)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// table builds ledgers and guards for strategies, each seat holding stack.
func table(t *testing.T, stack float64, strategies ...Strategy) ([]*Ledger, []*Guard) {
	t.Helper()
	seats := make([]*Ledger, len(strategies))
	guards := make([]*Guard, len(strategies))
	for i, s := range strategies {
		seats[i] = NewLedger(i, string(rune('A'+i)), stack)
		guards[i] = NewGuard(i, s, 0, nil, quietLogger())
		s.SetSeat(i)
	}
	return seats, guards
}

// stacked returns a deck dealing holes to seats in order, then the board.
func stacked(t *testing.T, holes []string, board string) *poker.Deck {
	t.Helper()
	var cards []poker.Card
	for _, h := range holes {
		cards = append(cards, poker.MustParseCards(h)...)
	}
	cards = append(cards, poker.MustParseCards(board)...)
	require.True(t, poker.Distinct(cards...), "stacked deck repeats a card")
	return poker.NewStackedDeck(cards)
}
