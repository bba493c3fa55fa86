package game

import (
	"maps"
	"slices"

	"github.com/lox/pokertourney/poker"
)

// SeatRecord is one seat's view of a completed hand.
type SeatRecord struct {
	Seat        int            `json:"seat"`
	Name        string         `json:"name"`
	Dealt       bool           `json:"dealt"`
	Hole        []poker.Card   `json:"hole,omitempty"`
	Folded      bool           `json:"folded"`
	Eliminated  bool           `json:"eliminated"`
	Score       poker.HandRank `json:"score"`
	Description string         `json:"description,omitempty"`
	Bets        [3]float64     `json:"bets"`
	Equities    []float64      `json:"equities"`
	Paid        float64        `json:"paid"`
	Stack       float64        `json:"stack"`
	Faults      int            `json:"faults,omitempty"`
}

// FinalBet is the seat's round 3 bet.
func (s SeatRecord) FinalBet() float64 { return s.Bets[2] }

// HandRecord is the immutable history entry for one hand. Board holds only
// the community cards that were shown.
type HandRecord struct {
	ID         string       `json:"id"`
	Number     int          `json:"number"`
	Outcome    Phase        `json:"outcome"`
	Board      []poker.Card `json:"board"`
	Pot        float64      `json:"pot"`
	Seats      []SeatRecord `json:"seats"`
	Settlement Settlement   `json:"settlement"`
}

// Clone returns a deep copy so a strategy cannot alter shared history.
func (r HandRecord) Clone() HandRecord {
	out := r
	out.Board = slices.Clone(r.Board)
	out.Seats = make([]SeatRecord, len(r.Seats))
	for i, s := range r.Seats {
		s.Hole = slices.Clone(s.Hole)
		s.Equities = slices.Clone(s.Equities)
		out.Seats[i] = s
	}
	st := r.Settlement
	st.Winners = slices.Clone(st.Winners)
	st.Recipients = slices.Clone(st.Recipients)
	st.Payouts = maps.Clone(st.Payouts)
	st.Caps = maps.Clone(st.Caps)
	st.WinCredits = maps.Clone(st.WinCredits)
	out.Settlement = st
	return out
}

// CloneHistory deep-copies a history slice.
func CloneHistory(history []HandRecord) []HandRecord {
	out := make([]HandRecord, len(history))
	for i, r := range history {
		out[i] = r.Clone()
	}
	return out
}

func recordSeat(l *Ledger) SeatRecord {
	return SeatRecord{
		Seat:       l.Seat,
		Name:       l.Name,
		Dealt:      l.Dealt,
		Hole:       slices.Clone(l.Hole),
		Folded:     l.Folded,
		Eliminated: l.Eliminated,
		Score:      l.Score,
		Bets:       l.Bets,
		Equities:   slices.Clone(l.Equities),
		Paid:       l.Paid,
		Stack:      l.Stack,
		Faults:     l.Faults,
	}
}
