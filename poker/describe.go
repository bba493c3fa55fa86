package poker

import (
	"fmt"

	ph "github.com/paulhankin/poker"
)

var phSuits = [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}

// toPH converts a card to the paulhankin representation, where an ace is
// rank 1 and the other ranks keep their face value.
func toPH(c Card) (ph.Card, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("invalid card %v", c)
	}
	r := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		r = 1
	}
	return ph.MakeCard(phSuits[c.Suit()], r)
}

// Describe names the best hand in 5-7 cards in words, for example
// "straight, king high".
func Describe(cards []Card) (string, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return "", fmt.Errorf("describe needs 5-7 cards, got %d", len(cards))
	}
	if !Distinct(cards...) {
		return "", fmt.Errorf("duplicate or invalid cards in %s", FormatCards(cards))
	}
	converted := make([]ph.Card, len(cards))
	for i, c := range cards {
		pc, err := toPH(c)
		if err != nil {
			return "", err
		}
		converted[i] = pc
	}
	return ph.Describe(converted)
}
