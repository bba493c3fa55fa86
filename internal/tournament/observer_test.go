package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokertourney/internal/game"
)

func TestObserversFanOut(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NullObserver{}, Observers())
	assert.Equal(t, NullObserver{}, Observers(nil, nil))

	one := &recorder{}
	assert.Same(t, one, Observers(nil, one))

	a, b := &recorder{}, &recorder{}
	o := Observers(a, nil, b)
	o.HandCompleted(game.HandRecord{Number: 4}, nil)
	o.MatchCompleted(Result{MatchID: "m"})
	for _, r := range []*recorder{a, b} {
		assert.Len(t, r.hands, 1)
		assert.Equal(t, 4, r.hands[0].Number)
		assert.Equal(t, "m", r.done[0].MatchID)
	}
}

func TestRankOrdersByStackThenSeat(t *testing.T) {
	t.Parallel()
	seats := []*game.Ledger{
		game.NewLedger(0, "a", 100),
		game.NewLedger(1, "b", 300),
		game.NewLedger(2, "c", 100),
		game.NewLedger(3, "d", 0),
	}
	seats[3].Eliminate()
	got := rank(seats, []float64{1, 0.5, 0, 0}, []int{0, 2, 0, 0})

	order := make([]int, len(got))
	for i, s := range got {
		order[i] = s.Seat
	}
	assert.Equal(t, []int{1, 0, 2, 3}, order)
	assert.Equal(t, Standing{Seat: 1, Name: "b", Stack: 300, Wins: 0.5, Faults: 2}, got[0])
	assert.True(t, got[3].Eliminated)
}
