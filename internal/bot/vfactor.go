package bot

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/poker"
)

// VFactor rates every opponent from the last hand: how much it paid relative
// to its final equity, how weak its made hand was and how loose it plays.
// Strong tables make it fold more and bet less.
type VFactor struct {
	seated
	logger *log.Logger
	table  tracker
	// strength holds the last rating per opponent seat, 0 (harmless) to 1.
	strength map[int]float64
	// Scale normalizes chips paid. It defaults to the usual starting stack.
	Scale float64
}

func NewVFactor(logger *log.Logger) *VFactor {
	return &VFactor{logger: logger, strength: map[int]float64{}, Scale: 10000}
}

func (f *VFactor) InitializeHand(history []game.HandRecord, handNumber int) {
	if handNumber == 1 {
		f.table = tracker{}
		clear(f.strength)
	}
	f.table.observe(history, f.seat)
	if len(history) == 0 {
		return
	}
	for _, s := range history[len(history)-1].Seats {
		if s.Seat == f.seat {
			continue
		}
		f.strength[s.Seat] = f.rate(s)
	}
	f.logger.Debug("Opponents rated", "seat", f.seat, "hand", handNumber, "strength", f.tableStrength())
}

// rate scores one opponent's previous hand.
func (f *VFactor) rate(s game.SeatRecord) float64 {
	if !s.Dealt {
		return 0
	}
	loose := defaultLooseness
	if p := f.table.profiles[s.Seat]; p != nil {
		loose = between(p.looseness(defaultLooseness), 0.05, 0.5)
	}

	var value float64
	if !s.Folded {
		paid := s.Bets[0] + s.Bets[1] + s.Bets[2]
		eq := 0.0
		if n := len(s.Equities); n > 0 {
			eq = s.Equities[n-1]
		}
		value = paid / (math.Max(eq, 0.01) * f.Scale)
	}

	weak := 1.0
	if s.Score.Valid() {
		if w := float64(s.Score) / float64(poker.WorstRank); w > 0.5 {
			weak += w
		}
	}
	return math.Min(value*weak*math.Min(3, 1/loose)/2, 1)
}

func (f *VFactor) tableStrength() float64 {
	var sum float64
	n := 0
	for seat, s := range f.strength {
		if seat == f.seat {
			continue
		}
		sum += s
		n++
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}

func (f *VFactor) DecideRound1(v game.Round1View) game.Round1Action {
	avg := f.tableStrength()
	if v.WinProb < 0.10+0.10*avg {
		return game.Fold()
	}
	return game.Bet(between(100+v.WinProb*200*(1.5-avg), 100, 300))
}

func (f *VFactor) DecideRound2(v game.Round2View) float64 {
	base := v.OwnBet(v.Round1Bets)
	aggressive := outbid(v.Round1Bets, base) > 0
	mult := 0.5 + v.WinProb
	switch {
	case v.WinProb > 0.7 && !aggressive:
		mult = 1.5
	case v.WinProb < 0.4 && aggressive:
		mult = 0.5
	}
	return base * between(mult, 0.5, 1.5)
}

func (f *VFactor) DecideRound3(v game.Round3View) float64 {
	base := v.OwnBet(v.Round2Bets)
	mult := 0.75 + 0.5*v.WinProb
	switch {
	case v.WinProb > 0.8:
		mult = 1.25
	case v.WinProb < 0.5:
		mult = 0.75
	}
	return base * mult
}
