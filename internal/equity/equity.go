// Package equity estimates a hand's chance of winning at showdown by Monte
// Carlo simulation against randomly dealt opponents.
package equity

import (
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/poker"
)

const (
	// DefaultSamples is the trial count used when none is configured.
	DefaultSamples = 500
	// DefaultChunkSize is how many trials share one random stream.
	DefaultChunkSize = 64
)

// Result tallies a simulation. Ties count half a win.
type Result struct {
	Wins    int
	Ties    int
	Trials  int
	Skipped int
}

// Equity is the win probability in [0,1], or 0 when no trial ran.
func (r Result) Equity() float64 {
	if r.Trials == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Trials)
}

func (r *Result) add(o Result) {
	r.Wins += o.Wins
	r.Ties += o.Ties
	r.Trials += o.Trials
	r.Skipped += o.Skipped
}

// Estimator runs equity simulations. A zero ChunkSize, Workers or Rank falls
// back to the package defaults and poker.Evaluate; zero Samples runs nothing.
type Estimator struct {
	Samples   int
	ChunkSize int
	// Workers bounds concurrent chunks; zero means GOMAXPROCS.
	Workers int
	Rank    poker.RankFunc
}

// New returns an estimator running samples trials per call.
func New(samples int) *Estimator {
	return &Estimator{Samples: samples}
}

// Estimate returns the win probability of hole on board against players-1
// random opponents. Invalid input yields 0.
func (e *Estimator) Estimate(hole, board []poker.Card, players int, rng *rand.Rand) float64 {
	return e.Simulate(hole, board, players, rng).Equity()
}

// Simulate runs the trials and returns the raw tally.
//
// Trials are split into fixed-size chunks. Each chunk takes a child stream
// from rng in chunk order before any goroutine starts, so a seeded rng gives
// the same Result on any number of cores.
func (e *Estimator) Simulate(hole, board []poker.Card, players int, rng *rand.Rand) Result {
	samples := e.Samples
	if samples <= 0 || players < 1 || rng == nil || !validInput(hole, board) {
		return Result{}
	}
	if players == 1 {
		return Result{Wins: samples, Trials: samples}
	}

	known := poker.NewHand(hole...) | poker.NewHand(board...)
	pool := make([]poker.Card, 0, 52)
	for _, c := range poker.FullDeck() {
		if !known.HasCard(c) {
			pool = append(pool, c)
		}
	}

	t := trialSpec{
		hero:      poker.NewHand(hole...),
		board:     poker.NewHand(board...),
		boardNeed: 5 - len(board),
		opponents: players - 1,
		rank:      e.rank(),
	}
	if t.boardNeed+2*t.opponents > len(pool) {
		return Result{Skipped: samples}
	}

	chunk := e.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	n := (samples + chunk - 1) / chunk
	streams := make([]*rand.Rand, n)
	for i := range streams {
		streams[i] = randutil.Derive(rng)
	}

	results := make([]Result, n)
	var g errgroup.Group
	g.SetLimit(e.workers())
	for i := range n {
		trials := min(chunk, samples-i*chunk)
		g.Go(func() error {
			results[i] = t.run(trials, append([]poker.Card(nil), pool...), streams[i])
			return nil
		})
	}
	_ = g.Wait()

	var total Result
	for _, r := range results {
		total.add(r)
	}
	return total
}

func (e *Estimator) rank() poker.RankFunc {
	if e.Rank != nil {
		return e.Rank
	}
	return poker.Evaluate
}

func (e *Estimator) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func validInput(hole, board []poker.Card) bool {
	if len(hole) != 2 {
		return false
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return false
	}
	all := make([]poker.Card, 0, 7)
	all = append(all, hole...)
	all = append(all, board...)
	return poker.Distinct(all...)
}

type trialSpec struct {
	hero      poker.Hand
	board     poker.Hand
	boardNeed int
	opponents int
	rank      poker.RankFunc
}

// run plays trials using pool as scratch space. Each trial shuffles only the
// prefix it needs.
func (t trialSpec) run(trials int, pool []poker.Card, rng *rand.Rand) Result {
	var res Result
	need := t.boardNeed + 2*t.opponents
	for range trials {
		for i := 0; i < need; i++ {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}

		board := t.board | poker.NewHand(pool[:t.boardNeed]...)
		hero := t.rank(t.hero | board)
		best := poker.NoHand + 1
		for o := range t.opponents {
			k := t.boardNeed + 2*o
			if r := t.rank(board | poker.NewHand(pool[k], pool[k+1])); r < best {
				best = r
			}
		}

		res.Trials++
		switch {
		case hero < best:
			res.Wins++
		case hero == best:
			res.Ties++
		}
	}
	return res
}
