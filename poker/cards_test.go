package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	as := NewCard(Ace, Spades)
	assert.Equal(t, Ace, as.Rank())
	assert.Equal(t, Spades, as.Suit())
	assert.Equal(t, "As", as.String())
	assert.Equal(t, "2c", NewCard(Two, Clubs).String())
	assert.Equal(t, "??", Card(0).String())
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{"As", NewCard(Ace, Spades), false},
		{"2h", NewCard(Two, Hearts), false},
		{"td", NewCard(Ten, Diamonds), false},
		{"kC", NewCard(King, Clubs), false},
		{"1s", 0, true},
		{"Ax", 0, true},
		{"A", 0, true},
		{"Asd", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"AsKd", "As Kd", "As,Kd", "As, Kd"} {
		cards, err := ParseCards(in)
		require.NoError(t, err, in)
		assert.Equal(t, []Card{NewCard(Ace, Spades), NewCard(King, Diamonds)}, cards, in)
	}

	_, err := ParseCards("AsK")
	assert.Error(t, err)
	_, err = ParseCards("AsKx")
	assert.Error(t, err)
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			require.True(t, c.Valid())
			s := c.String()
			assert.False(t, seen[s], "duplicate %s", s)
			seen[s] = true

			parsed, err := ParseCard(s)
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	}
	assert.Len(t, seen, 52)
}

func TestHandOperations(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("As Kd 2c")
	h := NewHand(cards...)
	assert.Equal(t, 3, h.CountCards())
	assert.True(t, h.HasCard(NewCard(King, Diamonds)))
	assert.False(t, h.HasCard(NewCard(King, Spades)))

	h.AddCard(NewCard(Ace, Spades))
	assert.Equal(t, 3, h.CountCards(), "adding a held card is a no-op")

	h.AddCard(NewCard(Queen, Hearts))
	assert.Equal(t, 4, h.CountCards())
	assert.Equal(t, "2c Kd Qh As", h.String())
}

func TestSuitMask(t *testing.T) {
	t.Parallel()
	h := NewHand(MustParseCards("2s 5s As Ah")...)
	assert.Equal(t, uint16(1<<Two|1<<Five|1<<Ace), h.SuitMask(Spades))
	assert.Equal(t, uint16(1<<Ace), h.SuitMask(Hearts))
	assert.Zero(t, h.SuitMask(Clubs))
}

func TestDistinct(t *testing.T) {
	t.Parallel()
	assert.True(t, Distinct(MustParseCards("As Ks Qs")...))
	assert.False(t, Distinct(MustParseCards("As Ks As")...))
	assert.False(t, Distinct(NewCard(Ace, Spades), Card(0)))
	assert.True(t, Distinct())
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}

func TestCardText(t *testing.T) {
	t.Parallel()
	text, err := NewCard(Ten, Hearts).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Th", string(text))

	var c Card
	require.NoError(t, c.UnmarshalText([]byte("qd")))
	assert.Equal(t, NewCard(Queen, Diamonds), c)

	_, err = Card(0).MarshalText()
	assert.Error(t, err)
	assert.Error(t, c.UnmarshalText([]byte("zz")))
}
