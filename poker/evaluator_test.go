package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/randutil"
)

func rankOf(t *testing.T, s string) HandRank {
	t.Helper()
	return EvaluateCards(MustParseCards(s)...)
}

func TestEvaluateKnownRanks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  HandRank
		cat   Category
	}{
		{"royal flush", "As Ks Qs Js Ts", 1, StraightFlush},
		{"steel wheel", "5h 4h 3h 2h Ah", 10, StraightFlush},
		{"four aces king", "Ac Ad Ah As Kd", 11, FourOfAKind},
		{"four deuces three", "2c 2d 2h 2s 3d", 166, FourOfAKind},
		{"aces full of kings", "Ac Ad Ah Ks Kd", 167, FullHouse},
		{"deuces full of threes", "2c 2d 2h 3s 3d", 322, FullHouse},
		{"ace high flush", "Ad Kd Qd Jd 9d", 323, Flush},
		{"worst flush", "7c 5c 4c 3c 2c", 1599, Flush},
		{"broadway", "As Kd Qh Jc Ts", 1600, Straight},
		{"wheel", "Ad 2c 3h 4s 5d", 1609, Straight},
		{"trip aces", "Ac Ad Ah Ks Qd", 1610, ThreeOfAKind},
		{"aces and kings", "Ac Ad Kh Ks Qd", 2468, TwoPair},
		{"pair of aces", "Ac Ad Kh Qs Jd", 3326, Pair},
		{"worst pair", "2c 2d 5h 4s 3d", 6185, Pair},
		{"ace high", "Ac Kd Qh Js 9d", 6186, HighCard},
		{"seven high", "7c 5d 4h 3s 2c", 7462, HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rankOf(t, tt.cards)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cat, got.Category())
			assert.Equal(t, tt.cat.String(), got.String())
		})
	}
}

func TestEvaluateSevenCards(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HandRank(11), rankOf(t, "As Ah Ad Ac Kd 2c 3h"))
	assert.Equal(t, HandRank(1), rankOf(t, "As Ks Qs Js Ts 2c 2d"), "board royal beats the pocket pair")
	assert.Equal(t, rankOf(t, "Kd Kc Kh 9s 9d"), rankOf(t, "Kd Kc Kh 9s 9d 2s 2c"),
		"full house uses the higher pair")
	assert.Equal(t, rankOf(t, "Qd Qc Qh Ts Td"), rankOf(t, "Qd Qc Qh Ts Td Th 4c"),
		"two trips make a full house with the lower trip as the pair")
	assert.Equal(t, StraightFlush, rankOf(t, "9h 8h 7h 6h 5h 4h 2c").Category())
	assert.Equal(t, HandRank(6), rankOf(t, "9h 8h 7h 6h 5h 4h 2c"), "nine high straight flush")
}

func TestEvaluateInvalidCounts(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NoHand, Evaluate(0))
	assert.Equal(t, NoHand, rankOf(t, "As Ks Qs Js"))
	assert.Equal(t, NoHand, rankOf(t, "As Ks Qs Js Ts 9s 8s 7s"))
	assert.Equal(t, NoHand, rankOf(t, "As As Ks Qs Js"), "duplicates collapse to four cards")
	assert.False(t, NoHand.Valid())
	assert.Equal(t, "No Hand", NoHand.String())
}

// Every five-card hand falls into the textbook category counts and the
// ranks cover 1..7462 without gaps.
func TestEvaluateAllFiveCardHands(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates 2.6M hands")
	}
	t.Parallel()

	deck := FullDeck()
	counts := map[Category]int{}
	seen := make([]bool, NoHand)
	for a := 0; a < 52; a++ {
		for b := a + 1; b < 52; b++ {
			for c := b + 1; c < 52; c++ {
				for d := c + 1; d < 52; d++ {
					for e := d + 1; e < 52; e++ {
						r := Evaluate(NewHand(deck[a], deck[b], deck[c], deck[d], deck[e]))
						require.True(t, r.Valid())
						counts[r.Category()]++
						seen[r] = true
					}
				}
			}
		}
	}

	assert.Equal(t, map[Category]int{
		StraightFlush: 40,
		FourOfAKind:   624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		ThreeOfAKind:  54912,
		TwoPair:       123552,
		Pair:          1098240,
		HighCard:      1302540,
	}, counts)
	for r := BestRank; r <= WorstRank; r++ {
		assert.True(t, seen[r], "rank %d never produced", r)
	}
}

// A seven-card rank equals the best of its 21 five-card subsets.
func TestEvaluateSevenMatchesBestSubset(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)
	for range 500 {
		cards := NewDeck(rng).Deal(7)
		best := NoHand
		for skipA := 0; skipA < 7; skipA++ {
			for skipB := skipA + 1; skipB < 7; skipB++ {
				var h Hand
				for i, c := range cards {
					if i != skipA && i != skipB {
						h.AddCard(c)
					}
				}
				if r := Evaluate(h); r < best {
					best = r
				}
			}
		}
		require.Equal(t, best, EvaluateCards(cards...), FormatCards(cards))
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, Compare(1, 2))
	assert.Equal(t, -1, Compare(NoHand, WorstRank))
	assert.Equal(t, 0, Compare(300, 300))
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	desc, err := Describe(MustParseCards("As Ks Qs Js Ts 2c 3d"))
	require.NoError(t, err)
	assert.NotEmpty(t, desc)

	_, err = Describe(MustParseCards("As Ks Qs Js"))
	assert.Error(t, err)
	_, err = Describe(MustParseCards("As As Qs Js Ts"))
	assert.Error(t, err)
}

func BenchmarkEvaluate7(b *testing.B) {
	h := NewHand(MustParseCards("As Kd Qh Jc 9s 4d 2c")...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(h)
	}
}
