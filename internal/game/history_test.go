package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/poker"
)

func sampleRecord() HandRecord {
	return HandRecord{
		ID:      "01HX",
		Number:  3,
		Outcome: Showdown,
		Board:   poker.MustParseCards("Ad Kc 9h 7d 2s"),
		Pot:     900,
		Seats: []SeatRecord{
			{Seat: 0, Name: "A", Dealt: true, Hole: poker.MustParseCards("As Ah"), Score: 1610, Bets: [3]float64{100, 50, 37.5}, Equities: []float64{0.9, 0.95, 1}},
			{Seat: 1, Name: "B", Dealt: true, Folded: true, Hole: poker.MustParseCards("3c 4d"), Score: poker.NoHand, Equities: []float64{0.1}},
		},
		Settlement: SettleShowdown(DefaultRules(), 900, []Contender{{Seat: 0, Rank: 1610, Bets: [3]float64{100, 50, 37.5}}}, []int{0}),
	}
}

func TestHandRecordCloneIsDeep(t *testing.T) {
	t.Parallel()
	orig := sampleRecord()
	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Board[0] = poker.NewCard(poker.Two, poker.Clubs)
	c.Seats[0].Hole[0] = poker.NewCard(poker.Two, poker.Clubs)
	c.Seats[0].Equities[0] = 0
	c.Settlement.Payouts[0] = 0
	c.Settlement.Winners[0] = 9

	assert.Equal(t, sampleRecord(), orig)
}

func TestCloneHistory(t *testing.T) {
	t.Parallel()
	history := []HandRecord{sampleRecord(), sampleRecord()}
	c := CloneHistory(history)
	c[1].Seats[1].Name = "Z"
	assert.Equal(t, "B", history[1].Seats[1].Name)
	assert.Empty(t, CloneHistory(nil))
}

func TestHandRecordJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(sampleRecord())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "showdown", raw["outcome"])
	assert.Equal(t, []any{"Ad", "Kc", "9h", "7d", "2s"}, raw["board"])

	var back HandRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sampleRecord(), back)
}

func TestSeatRecordFinalBet(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 37.5, sampleRecord().Seats[0].FinalBet())
}

func TestPhase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "early_win", EarlyWin.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
	assert.True(t, Showdown.Terminal())
	assert.True(t, Abandoned.Terminal())
	assert.False(t, Round2Turn.Terminal())
	assert.Equal(t, 3, EarlyWin.VisibleBoard())
	assert.Equal(t, 4, Round2Turn.VisibleBoard())
	assert.Equal(t, 5, Showdown.VisibleBoard())

	var p Phase
	require.NoError(t, p.UnmarshalText([]byte("round3_river")))
	assert.Equal(t, Round3River, p)
	assert.Error(t, p.UnmarshalText([]byte("preflop")))
}

func TestLedger(t *testing.T) {
	t.Parallel()
	l := NewLedger(2, "C", 250)
	l.Hole = poker.MustParseCards("As Ah")
	l.Bets = [3]float64{100, 50, 40}
	l.Folded = true
	l.Dealt = true
	l.Equities = []float64{0.5}
	l.Faults = 1

	l.ResetHand()
	assert.Equal(t, 250.0, l.Stack)
	assert.Nil(t, l.Hole)
	assert.Zero(t, l.Bets)
	assert.False(t, l.Folded)
	assert.False(t, l.InHand())
	assert.Equal(t, poker.NoHand, l.Score)
	assert.Zero(t, l.Faults)

	assert.True(t, l.CanPost(100))
	assert.Equal(t, 250.0, l.Eliminate())
	assert.Zero(t, l.Stack)
	assert.False(t, l.CanPost(0))

	seats := []*Ledger{NewLedger(0, "A", 100), NewLedger(1, "B", 99), l}
	assert.Equal(t, []int{0}, FundedSeats(seats, 100))
}
