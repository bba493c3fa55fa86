package game

import (
	"github.com/lox/pokertourney/poker"
)

// Strategy decides one seat's bets. Implementations are untrusted: every
// call goes through a Guard and every returned amount is clamped. Calls to
// one strategy never overlap, even after a timeout.
//
// Bet and stack slices are indexed by seat and cover every seat at the
// table, including seats that did not act.
type Strategy interface {
	// SetSeat is called once before the first hand.
	SetSeat(seat int)
	// InitializeHand is called before each hand with every completed hand so
	// far. handNumber starts at 1.
	InitializeHand(history []HandRecord, handNumber int)
	DecideRound1(v Round1View) Round1Action
	DecideRound2(v Round2View) float64
	DecideRound3(v Round3View) float64
}

// View is the public state shown to a seat in every round.
type View struct {
	Seat  int
	Hole  []poker.Card
	Board []poker.Card
	// Stacks is the snapshot taken before round 1.
	Stacks []float64
	// Pot is the pot when the round started.
	Pot     float64
	WinProb float64
}

// Round1View is shown with the flop.
type Round1View struct {
	View
}

// Round2View is shown with the turn.
type Round2View struct {
	View
	Round1Bets []float64
}

// Round3View is shown with the river.
type Round3View struct {
	View
	Round1Bets []float64
	Round2Bets []float64
}

// OwnBet returns the seat's entry in bets, or 0 when out of range.
func (v View) OwnBet(bets []float64) float64 {
	if v.Seat < 0 || v.Seat >= len(bets) {
		return 0
	}
	return bets[v.Seat]
}

// Round1Action is either a fold or a raw bet.
type Round1Action struct {
	Fold bool
	Bet  float64
}

// Fold gives up the hand in round 1.
func Fold() Round1Action { return Round1Action{Fold: true} }

// Bet plays round 1 for amount before clamping.
func Bet(amount float64) Round1Action { return Round1Action{Bet: amount} }
