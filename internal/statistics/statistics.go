// Package statistics summarizes each seat's chip results over a match.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/pokertourney/internal/game"
)

// HandResult is one seat's outcome in one hand it was dealt into.
type HandResult struct {
	// Net is the change in the seat's stack over the hand.
	Net     float64
	Outcome game.Phase
	Folded  bool
	// Won is set when the seat earned win credit.
	Won bool
	Pot float64
	// Paid and Credited are the chips the seat put in and took out of the
	// pot. Net should equal Credited - Paid.
	Paid     float64
	Credited float64
}

// Statistics accumulates a seat's results.
type Statistics struct {
	Hands  int
	SumNet float64
	// SumNet2 is the sum of squares for the variance.
	SumNet2 float64
	Values  []float64

	ShowdownWins int
	EarlyWins    int
	Folds        int
	ShowdownNet  float64
	OtherNet     float64
	AllNet       float64
	Paid         float64
	Credited     float64

	MaxPot float64
}

// Mean is the average net result per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance is the sample variance of the per-hand results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return math.Max(0, (s.SumNet2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError is the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% interval around the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add folds one hand into the totals.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumNet += r.Net
	s.SumNet2 += r.Net * r.Net
	s.Values = append(s.Values, r.Net)
	s.AllNet += r.Net
	s.Paid += r.Paid
	s.Credited += r.Credited

	if r.Outcome == game.Showdown {
		s.ShowdownNet += r.Net
	} else {
		s.OtherNet += r.Net
	}
	if r.Won {
		if r.Outcome == game.Showdown {
			s.ShowdownWins++
		} else {
			s.EarlyWins++
		}
	}
	if r.Folded {
		s.Folds++
	}
	s.MaxPot = math.Max(s.MaxPot, r.Pot)
}

// Median of the per-hand results.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile interpolates the value at p in [0,1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that the stack movement matches what the pot took
// and paid back.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-(s.Credited-s.Paid)) <= 1e-6
}

// Validate checks internal consistency.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: net=%.6f credited=%.6f paid=%.6f", s.AllNet, s.Credited, s.Paid)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length %d does not match hands %d", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.EarlyWins; wins > s.Hands {
		return fmt.Errorf("wins %d exceed hands %d", wins, s.Hands)
	}
	return nil
}

// FromHistory builds one Statistics per seat. A seat's net for a hand is its
// stack change since the previous hand, so forfeits are included. Hands a
// seat was not dealt into are skipped.
func FromHistory(history []game.HandRecord, seats int, startingStack float64) []Statistics {
	out := make([]Statistics, seats)
	prev := make([]float64, seats)
	for i := range prev {
		prev[i] = startingStack
	}
	for _, rec := range history {
		for _, s := range rec.Seats {
			if s.Seat < 0 || s.Seat >= seats {
				continue
			}
			net := s.Stack - prev[s.Seat]
			prev[s.Seat] = s.Stack
			if !s.Dealt {
				continue
			}
			out[s.Seat].Add(HandResult{
				Net:      net,
				Outcome:  rec.Outcome,
				Folded:   s.Folded,
				Won:      rec.Settlement.WinCredits[s.Seat] > 0,
				Pot:      rec.Pot,
				Paid:     s.Paid,
				Credited: rec.Settlement.Credited(s.Seat),
			})
		}
	}
	return out
}
