// Package bot provides example strategies and the registry that binds a
// strategy name to each seat.
package bot

import (
	"math"

	"github.com/lox/pokertourney/internal/game"
)

// seated stores the seat index and ignores history. Bots embed it and
// override what they need.
type seated struct {
	seat int
}

func (s *seated) SetSeat(seat int) { s.seat = seat }

func (s *seated) InitializeHand([]game.HandRecord, int) {}

// between keeps x inside [lo, hi].
func between(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// outbid counts the seats whose bet is above mine.
func outbid(bets []float64, mine float64) int {
	n := 0
	for _, b := range bets {
		if b > mine {
			n++
		}
	}
	return n
}

// Equity sizes every bet linearly from the win probability and folds hands
// under 10%.
type Equity struct {
	seated
}

func NewEquity() *Equity { return &Equity{} }

func (e *Equity) DecideRound1(v game.Round1View) game.Round1Action {
	if v.WinProb < 0.10 {
		return game.Fold()
	}
	return game.Bet(100 + v.WinProb*200)
}

func (e *Equity) DecideRound2(v game.Round2View) float64 {
	return v.OwnBet(v.Round1Bets) * (0.5 + v.WinProb)
}

func (e *Equity) DecideRound3(v game.Round3View) float64 {
	return v.OwnBet(v.Round2Bets) * (0.75 + v.WinProb*0.5)
}

// Pressure reads the other seats' bets: it only bets big when strong and
// nobody has outbid it.
type Pressure struct {
	seated
}

func NewPressure() *Pressure { return &Pressure{} }

func (p *Pressure) DecideRound1(v game.Round1View) game.Round1Action {
	if v.WinProb < 0.10 {
		return game.Fold()
	}
	return game.Bet(100 + v.WinProb*200)
}

func (p *Pressure) DecideRound2(v game.Round2View) float64 {
	mine := v.OwnBet(v.Round1Bets)
	if v.WinProb > 0.6 && outbid(v.Round1Bets, mine) == 0 {
		return mine * 1.5
	}
	return mine * 0.5
}

func (p *Pressure) DecideRound3(v game.Round3View) float64 {
	mine := v.OwnBet(v.Round2Bets)
	if v.WinProb > 0.7 && outbid(v.Round2Bets, mine) == 0 {
		return mine * 1.25
	}
	return mine * 0.75
}

// Trend remembers its equity from the previous round of the same hand and
// presses when the new card helped.
type Trend struct {
	seated
	prev1, prev2 float64
	seen1, seen2 bool
}

func NewTrend() *Trend { return &Trend{} }

func (t *Trend) InitializeHand([]game.HandRecord, int) {
	t.seen1, t.seen2 = false, false
}

func (t *Trend) DecideRound1(v game.Round1View) game.Round1Action {
	t.prev1, t.seen1 = v.WinProb, true
	if v.WinProb < 0.10 {
		return game.Fold()
	}
	return game.Bet(100 + v.WinProb*200)
}

func (t *Trend) DecideRound2(v game.Round2View) float64 {
	base := v.OwnBet(v.Round1Bets)
	old, ok := t.prev1, t.seen1
	t.prev2, t.seen2 = v.WinProb, true
	switch {
	case !ok:
		return base
	case v.WinProb > old:
		return base * 1.5
	default:
		return base * 0.5
	}
}

func (t *Trend) DecideRound3(v game.Round3View) float64 {
	base := v.OwnBet(v.Round2Bets)
	switch {
	case !t.seen2:
		return base
	case v.WinProb > t.prev2 && v.WinProb > 0.6:
		return base * 1.25
	default:
		return base * 0.75
	}
}

// Stack plays tighter when short and pushes value when the pot is large.
type Stack struct {
	seated
	// Short is the stack under which the bot tightens up.
	Short float64
	// BigPot is the pot above which strong hands bet the maximum.
	BigPot float64
}

func NewStack() *Stack { return &Stack{Short: 1000, BigPot: 1000} }

func (s *Stack) DecideRound1(v game.Round1View) game.Round1Action {
	short := v.OwnBet(v.Stacks) < s.Short
	threshold := 0.10
	if short {
		threshold = 0.20
	}
	switch {
	case v.WinProb < threshold:
		return game.Fold()
	case v.WinProb > 0.6:
		return game.Bet(300)
	case short:
		return game.Bet(100)
	default:
		return game.Bet(250)
	}
}

func (s *Stack) DecideRound2(v game.Round2View) float64 {
	base := v.OwnBet(v.Round1Bets)
	switch {
	case v.WinProb > 0.6 && v.Pot > s.BigPot:
		return base * 1.5
	case v.WinProb > 0.4:
		return base
	default:
		return base * 0.5
	}
}

func (s *Stack) DecideRound3(v game.Round3View) float64 {
	base := v.OwnBet(v.Round2Bets)
	if v.WinProb > 0.7 {
		return base * 1.25
	}
	return base * 0.75
}
