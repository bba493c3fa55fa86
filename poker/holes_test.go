package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hole string
		want HoleTier
	}{
		{"As Ah", TierPremium},
		{"Jh Jd", TierPremium},
		{"Ac Kh", TierPremium},
		{"Tc Th", TierStrong},
		{"As Qs", TierStrong},
		{"Ad Jc", TierStrong},
		{"9c 9h", TierMedium},
		{"7h 7c", TierMedium},
		{"Ks Qs", TierMedium},
		{"Qd Jd", TierMedium},
		{"6c 6h", TierWeak},
		{"2d 2s", TierWeak},
		{"8h 7h", TierWeak},
		{"9s 7s", TierWeak},
		{"Kh Qd", TierTrash},
		{"7h 2c", TierTrash},
		{"9s 6s", TierTrash},
	}
	for _, tt := range tests {
		t.Run(tt.hole, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tt.hole)
			assert.Equal(t, tt.want, TierOf(cards[0], cards[1]))
			assert.Equal(t, tt.want, TierOf(cards[1], cards[0]))
		})
	}
}

func TestTierOfInvalid(t *testing.T) {
	t.Parallel()
	as := NewCard(Ace, Spades)
	assert.Equal(t, TierTrash, TierOf(as, as))
	assert.Equal(t, TierTrash, TierOf(as, 0))
	assert.Equal(t, "trash", TierTrash.String())
	assert.Equal(t, "premium", TierPremium.String())
}
