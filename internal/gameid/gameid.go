// Package gameid generates sortable match and hand identifiers.
package gameid

import (
	"encoding/binary"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/coder/quartz"
	"github.com/oklog/ulid/v2"
)

// Generator mints ULIDs: a millisecond timestamp from the clock followed by
// monotonic entropy. IDs from one generator always sort in creation order.
type Generator struct {
	mu      sync.Mutex
	clock   quartz.Clock
	entropy *ulid.MonotonicEntropy
}

// NewGenerator draws entropy from rng. A seeded rng and a mock clock give a
// reproducible sequence.
func NewGenerator(rng *rand.Rand, clock quartz.Clock) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{
		clock:   clock,
		entropy: ulid.Monotonic(reader{rng}, 0),
	}
}

// Generate returns a new 26 character ID.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.clock.Now()), g.entropy).String()
}

// Valid reports whether id parses as a ULID.
func Valid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// reader adapts a math/rand generator to io.Reader.
type reader struct {
	rng *rand.Rand
}

var _ io.Reader = reader{}

func (r reader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], r.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
