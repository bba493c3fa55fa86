package game

import (
	"errors"
	"fmt"
	"math"
)

// Rules are the betting limits of the format.
type Rules struct {
	BuyIn float64 `hcl:"buy_in,optional" toml:"buy_in"`

	// Round 1 bets are absolute.
	Round1Min float64 `hcl:"round1_min,optional" toml:"round1_min"`
	Round1Max float64 `hcl:"round1_max,optional" toml:"round1_max"`

	// Rounds 2 and 3 are multiples of the seat's previous bet.
	Round2MinMult float64 `hcl:"round2_min_mult,optional" toml:"round2_min_mult"`
	Round2MaxMult float64 `hcl:"round2_max_mult,optional" toml:"round2_max_mult"`
	Round3MinMult float64 `hcl:"round3_min_mult,optional" toml:"round3_min_mult"`
	Round3MaxMult float64 `hcl:"round3_max_mult,optional" toml:"round3_max_mult"`

	// CapMultiplier scales a winner's own stake into their payout cap.
	CapMultiplier float64 `hcl:"cap_multiplier,optional" toml:"cap_multiplier"`
}

// DefaultRules returns the standard limits.
func DefaultRules() Rules {
	return Rules{
		BuyIn:         100,
		Round1Min:     100,
		Round1Max:     300,
		Round2MinMult: 0.5,
		Round2MaxMult: 1.5,
		Round3MinMult: 0.75,
		Round3MaxMult: 1.25,
		CapMultiplier: 4,
	}
}

// Validate checks that every limit is finite and ordered.
func (r Rules) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative number, got %v", name, v))
		}
	}
	check("buy_in", r.BuyIn)
	check("round1_min", r.Round1Min)
	check("round1_max", r.Round1Max)
	check("round2_min_mult", r.Round2MinMult)
	check("round2_max_mult", r.Round2MaxMult)
	check("round3_min_mult", r.Round3MinMult)
	check("round3_max_mult", r.Round3MaxMult)
	check("cap_multiplier", r.CapMultiplier)

	if r.BuyIn <= 0 {
		errs = append(errs, errors.New("buy_in must be positive"))
	}
	if r.Round1Min > r.Round1Max {
		errs = append(errs, fmt.Errorf("round1_min %v exceeds round1_max %v", r.Round1Min, r.Round1Max))
	}
	if r.Round2MinMult > r.Round2MaxMult {
		errs = append(errs, fmt.Errorf("round2_min_mult %v exceeds round2_max_mult %v", r.Round2MinMult, r.Round2MaxMult))
	}
	if r.Round3MinMult > r.Round3MaxMult {
		errs = append(errs, fmt.Errorf("round3_min_mult %v exceeds round3_max_mult %v", r.Round3MinMult, r.Round3MaxMult))
	}
	if r.CapMultiplier <= 0 {
		errs = append(errs, errors.New("cap_multiplier must be positive"))
	}
	return errors.Join(errs...)
}

// Bounds returns the legal bet range for round (1-3) before the stack cap.
// prev is the seat's bet in the previous round and is ignored for round 1.
func (r Rules) Bounds(round int, prev float64) (lo, hi float64) {
	switch round {
	case 1:
		return r.Round1Min, r.Round1Max
	case 2:
		return prev * r.Round2MinMult, prev * r.Round2MaxMult
	case 3:
		return prev * r.Round3MinMult, prev * r.Round3MaxMult
	default:
		panic(fmt.Sprintf("game: no betting round %d", round))
	}
}

// Clamp forces raw into the round's bounds and then caps it at stack.
func (r Rules) Clamp(round int, raw, prev, stack float64) float64 {
	lo, hi := r.Bounds(round, prev)
	bet := math.Max(lo, math.Min(hi, raw))
	return math.Max(0, math.Min(bet, stack))
}

// Cap is the most a winner may collect given their own bets for the hand.
func (r Rules) Cap(bets ...float64) float64 {
	stake := r.BuyIn
	for _, b := range bets {
		stake += b
	}
	return r.CapMultiplier * stake
}
