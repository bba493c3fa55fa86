package tournament

import (
	"cmp"
	"slices"

	"github.com/lox/pokertourney/internal/game"
)

// Standing is one seat's position in the match.
type Standing struct {
	Seat       int     `json:"seat" toml:"seat"`
	Name       string  `json:"name" toml:"name"`
	Stack      float64 `json:"stack" toml:"stack"`
	Wins       float64 `json:"wins" toml:"wins"`
	Eliminated bool    `json:"eliminated" toml:"eliminated"`
	Faults     int     `json:"faults" toml:"faults"`
}

// rank orders seats by stack, highest first, then by seat index.
func rank(seats []*game.Ledger, wins []float64, faults []int) []Standing {
	out := make([]Standing, len(seats))
	for i, l := range seats {
		out[i] = Standing{
			Seat:       l.Seat,
			Name:       l.Name,
			Stack:      l.Stack,
			Wins:       wins[i],
			Eliminated: l.Eliminated,
			Faults:     faults[i],
		}
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.Stack, a.Stack); c != 0 {
			return c
		}
		return cmp.Compare(a.Seat, b.Seat)
	})
	return out
}
