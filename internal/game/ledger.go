package game

import (
	"github.com/lox/pokertourney/poker"
)

// Ledger is one seat's state. Stack and Eliminated persist across hands;
// everything else is reset by ResetHand.
type Ledger struct {
	Seat       int
	Name       string
	Stack      float64
	Eliminated bool

	Hole     []poker.Card
	Bets     [3]float64
	Folded   bool
	Equities []float64
	Score    poker.HandRank

	// Dealt is set once the buy-in is posted and cards are dealt.
	Dealt  bool
	// Paid is everything the seat put in the pot this hand, forfeits included.
	Paid   float64
	Faults int
}

// NewLedger returns a seat holding stack.
func NewLedger(seat int, name string, stack float64) *Ledger {
	return &Ledger{Seat: seat, Name: name, Stack: stack, Score: poker.NoHand}
}

// ResetHand clears per-hand fields, keeping stack and elimination.
func (l *Ledger) ResetHand() {
	l.Hole = nil
	l.Bets = [3]float64{}
	l.Folded = false
	l.Equities = nil
	l.Score = poker.NoHand
	l.Dealt = false
	l.Paid = 0
	l.Faults = 0
}

// Eliminate removes the seat from the match and returns the residual stack
// it forfeits.
func (l *Ledger) Eliminate() float64 {
	residual := l.Stack
	l.Stack = 0
	l.Eliminated = true
	return residual
}

// CanPost reports whether the seat is still in the match and can afford amount.
func (l *Ledger) CanPost(amount float64) bool {
	return !l.Eliminated && l.Stack >= amount
}

// InHand reports whether the seat holds live cards this hand.
func (l *Ledger) InHand() bool {
	return l.Dealt && !l.Folded && !l.Eliminated
}

// FundedSeats lists the seats able to post buyIn.
func FundedSeats(seats []*Ledger, buyIn float64) []int {
	var funded []int
	for _, l := range seats {
		if l.CanPost(buyIn) {
			funded = append(funded, l.Seat)
		}
	}
	return funded
}
