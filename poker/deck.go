package poker

import (
	"math/rand/v2"
)

// Deck deals cards from the top. NewDeck gives a shuffled 52-card deck.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck returns a deck shuffled with rng. The RNG is required so that a
// seeded match replays the same deals.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: deck requires an rng")
	}
	d := &Deck{cards: FullDeck(), rng: rng}
	d.Shuffle()
	return d
}

// NewStackedDeck deals cards in the given order. It is used to replay or
// script a hand; Shuffle only rewinds it.
func NewStackedDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle restores every card and shuffles them (Fisher-Yates).
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the top. It returns nil when fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// FullDeck lists all 52 cards in bit order.
func FullDeck() []Card {
	cards := make([]Card, 52)
	for i := range cards {
		cards[i] = Card(1) << uint(i)
	}
	return cards
}
