package bot

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// DefaultStrategy is used for unknown names.
const DefaultStrategy = "equity"

// Factory builds a fresh strategy. rng is private to the new strategy.
type Factory func(rng *rand.Rand, logger *log.Logger) game.Strategy

// Registry maps strategy names to factories.
type Registry struct {
	factories map[string]Factory
	logger    *log.Logger
}

// NewRegistry returns a registry holding the built-in strategies.
func NewRegistry(logger *log.Logger) *Registry {
	r := &Registry{factories: map[string]Factory{}, logger: logger}
	r.Register("equity", func(*rand.Rand, *log.Logger) game.Strategy { return NewEquity() })
	r.Register("pressure", func(*rand.Rand, *log.Logger) game.Strategy { return NewPressure() })
	r.Register("trend", func(*rand.Rand, *log.Logger) game.Strategy { return NewTrend() })
	r.Register("stack", func(*rand.Rand, *log.Logger) game.Strategy { return NewStack() })
	r.Register("looseness", func(_ *rand.Rand, l *log.Logger) game.Strategy { return NewLooseness(l) })
	r.Register("vfactor", func(_ *rand.Rand, l *log.Logger) game.Strategy { return NewVFactor(l) })
	r.Register("chart", func(_ *rand.Rand, l *log.Logger) game.Strategy { return NewChart(l) })
	r.Register("maniac", func(*rand.Rand, *log.Logger) game.Strategy { return NewManiac() })
	r.Register("random", func(rng *rand.Rand, _ *log.Logger) game.Strategy { return NewRandom(rng) })
	r.Register("fold", func(*rand.Rand, *log.Logger) game.Strategy { return NewFold() })
	return r
}

// Register adds or replaces a factory. Names are case-insensitive.
func (r *Registry) Register(name string, f Factory) {
	r.factories[strings.ToLower(name)] = f
}

// Names lists the registered strategies in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the named strategy. Unknown names log a warning and get
// DefaultStrategy; ok reports whether the name was found.
func (r *Registry) New(name string, rng *rand.Rand) (s game.Strategy, ok bool) {
	f, ok := r.factories[strings.ToLower(name)]
	if !ok {
		r.logger.Warn("Unknown strategy, using default", "name", name, "default", DefaultStrategy)
		f = r.factories[DefaultStrategy]
	}
	return f(rng, r.logger.With("strategy", name)), ok
}
