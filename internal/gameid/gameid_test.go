package gameid

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/randutil"
)

func TestGenerateIsReproducible(t *testing.T) {
	t.Parallel()
	mk := func() []string {
		clock := quartz.NewMock(t)
		clock.Set(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
		g := NewGenerator(randutil.New(7), clock)
		return []string{g.Generate(), g.Generate(), g.Generate()}
	}
	a, b := mk(), mk()
	assert.Equal(t, a, b)
	for _, id := range a {
		require.Len(t, id, 26)
		assert.True(t, Valid(id))
	}
}

func TestGenerateSortsInOrder(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	g := NewGenerator(randutil.New(1), clock)

	prev := g.Generate()
	for i := range 50 {
		if i%2 == 0 {
			clock.Advance(time.Millisecond)
		}
		id := g.Generate()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestValid(t *testing.T) {
	t.Parallel()
	assert.False(t, Valid("not-an-id"))
	assert.False(t, Valid(""))
}
