package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// profile counts how often an opponent stayed in a hand it was dealt.
type profile struct {
	seen, played int
}

// looseness is the share of dealt hands the opponent played past round 1.
func (p profile) looseness(fallback float64) float64 {
	if p.seen == 0 {
		return fallback
	}
	return float64(p.played) / float64(p.seen)
}

// tracker folds each completed hand into per-seat profiles.
type tracker struct {
	profiles map[int]*profile
}

// observe records the last hand in history. Seats that were not dealt in do
// not count.
func (t *tracker) observe(history []game.HandRecord, self int) {
	if t.profiles == nil {
		t.profiles = make(map[int]*profile)
	}
	if len(history) == 0 {
		return
	}
	last := history[len(history)-1]
	for _, s := range last.Seats {
		if s.Seat == self || !s.Dealt || s.Eliminated {
			continue
		}
		p := t.profiles[s.Seat]
		if p == nil {
			p = &profile{}
			t.profiles[s.Seat] = p
		}
		p.seen++
		if !s.Folded {
			p.played++
		}
	}
}

func (t *tracker) average(fallback float64) float64 {
	if len(t.profiles) == 0 {
		return fallback
	}
	var sum float64
	for _, p := range t.profiles {
		sum += p.looseness(fallback)
	}
	return sum / float64(len(t.profiles))
}

// Looseness adapts to how often the table plays its hands: it bets big
// against loose tables and tightens up against tight ones.
type Looseness struct {
	seated
	logger *log.Logger
	table  tracker
	avg    float64
}

const defaultLooseness = 0.20

func NewLooseness(logger *log.Logger) *Looseness {
	return &Looseness{logger: logger, avg: defaultLooseness}
}

func (l *Looseness) InitializeHand(history []game.HandRecord, handNumber int) {
	if handNumber == 1 {
		l.table = tracker{}
	}
	l.table.observe(history, l.seat)
	l.avg = l.table.average(defaultLooseness)
	l.logger.Debug("Table model updated", "seat", l.seat, "hand", handNumber, "looseness", l.avg)
}

func (l *Looseness) DecideRound1(v game.Round1View) game.Round1Action {
	threshold := 0.10
	if l.avg < 0.15 {
		threshold = 0.15
	}
	switch {
	case v.WinProb < threshold:
		return game.Fold()
	case l.avg > 0.25:
		return game.Bet(300)
	default:
		return game.Bet(100)
	}
}

func (l *Looseness) DecideRound2(v game.Round2View) float64 {
	base := v.OwnBet(v.Round1Bets)
	if v.WinProb > 0.6 && l.avg > 0.25 {
		return base * 1.3
	}
	return base * 0.5
}

func (l *Looseness) DecideRound3(v game.Round3View) float64 {
	base := v.OwnBet(v.Round2Bets)
	if v.WinProb > 0.7 {
		return base * 1.25
	}
	return base * 0.75
}
