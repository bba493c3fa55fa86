package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/poker"
)

// Fold gives up every hand.
type Fold struct {
	seated
}

func NewFold() *Fold { return &Fold{} }

func (*Fold) DecideRound1(game.Round1View) game.Round1Action { return game.Fold() }

func (*Fold) DecideRound2(game.Round2View) float64 { return 0 }

func (*Fold) DecideRound3(game.Round3View) float64 { return 0 }

// Maniac always bets the most it can.
type Maniac struct {
	seated
}

func NewManiac() *Maniac { return &Maniac{} }

func (*Maniac) DecideRound1(game.Round1View) game.Round1Action { return game.Bet(300) }

func (*Maniac) DecideRound2(v game.Round2View) float64 { return v.OwnBet(v.Round1Bets) * 1.5 }

func (*Maniac) DecideRound3(v game.Round3View) float64 { return v.OwnBet(v.Round2Bets) * 1.25 }

// Random folds a fifth of its hands and otherwise picks uniformly inside the
// default bounds. It owns its RNG, so give each seat its own stream.
type Random struct {
	seated
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (r *Random) DecideRound1(game.Round1View) game.Round1Action {
	if r.rng.Float64() < 0.2 {
		return game.Fold()
	}
	return game.Bet(100 + r.rng.Float64()*200)
}

func (r *Random) DecideRound2(v game.Round2View) float64 {
	return v.OwnBet(v.Round1Bets) * (0.5 + r.rng.Float64())
}

func (r *Random) DecideRound3(v game.Round3View) float64 {
	return v.OwnBet(v.Round2Bets) * (0.75 + r.rng.Float64()*0.5)
}

// Chart plays from a starting-hand chart and lets the flop rescue hands the
// chart would fold.
type Chart struct {
	seated
	logger *log.Logger
	tier   poker.HoleTier
}

func NewChart(logger *log.Logger) *Chart { return &Chart{logger: logger} }

func (c *Chart) DecideRound1(v game.Round1View) game.Round1Action {
	c.tier = poker.TierTrash
	if len(v.Hole) == 2 {
		c.tier = poker.TierOf(v.Hole[0], v.Hole[1])
	}
	c.logger.Debug("Chart decision", "seat", c.seat, "hole", poker.FormatCards(v.Hole), "tier", c.tier, "equity", v.WinProb)

	switch c.tier {
	case poker.TierPremium:
		return game.Bet(300)
	case poker.TierStrong:
		return game.Bet(250)
	case poker.TierMedium:
		if v.WinProb < 0.10 {
			return game.Fold()
		}
		return game.Bet(100 + 200*v.WinProb)
	default:
		if v.WinProb < 0.35 {
			return game.Fold()
		}
		return game.Bet(100)
	}
}

func (c *Chart) DecideRound2(v game.Round2View) float64 {
	base := v.OwnBet(v.Round1Bets)
	if c.tier >= poker.TierStrong {
		if v.WinProb > 0.5 {
			return base * 1.5
		}
		return base
	}
	return base * (0.5 + v.WinProb)
}

func (c *Chart) DecideRound3(v game.Round3View) float64 {
	return v.OwnBet(v.Round2Bets) * (0.75 + 0.5*v.WinProb)
}
