package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/poker"
)

// Estimator supplies win probabilities. *equity.Estimator satisfies it.
type Estimator interface {
	Estimate(hole, board []poker.Card, players int, rng *rand.Rand) float64
}

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	id        string
	number    int
	rules     Rules
	estimator Estimator
	rank      poker.RankFunc
	deck      *poker.Deck
	logger    *log.Logger
}

// WithID labels the hand in logs and history.
func WithID(id string) HandOption {
	return func(c *handConfig) {
		c.id = id
	}
}

// WithNumber sets the 1-based hand number. Default 1.
func WithNumber(n int) HandOption {
	return func(c *handConfig) {
		c.number = n
	}
}

// WithRules overrides DefaultRules.
func WithRules(r Rules) HandOption {
	return func(c *handConfig) {
		c.rules = r
	}
}

// WithEstimator replaces the default Monte Carlo estimator.
func WithEstimator(e Estimator) HandOption {
	return func(c *handConfig) {
		c.estimator = e
	}
}

// WithRank replaces poker.Evaluate for showdown scoring.
func WithRank(rank poker.RankFunc) HandOption {
	return func(c *handConfig) {
		c.rank = rank
	}
}

// WithDeck deals from a prepared deck instead of shuffling from the rng.
func WithDeck(d *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = d
	}
}

// WithLogger sets the hand logger. Default discards.
func WithLogger(l *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = l
	}
}
