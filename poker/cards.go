package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single card stored as one bit of a 64-bit set.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], rank 0 is a deuce.
type Card uint64

// Hand is a set of cards. Multiple bits may be set.
type Hand uint64

// Suits
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

// Ranks (0-12 for 2-A)
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"

	// rankBits masks the 13 rank bits of a single suit.
	rankBits = 0x1FFF
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// index returns the bit position of the card (0-51), or 255 for the zero card.
func (c Card) index() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns 0-12, or 255 for an invalid card.
func (c Card) Rank() uint8 {
	idx := c.index()
	if idx == 255 {
		return 255
	}
	return idx % 13
}

// Suit returns 0-3, or 255 for an invalid card.
func (c Card) Suit() uint8 {
	idx := c.index()
	if idx == 255 {
		return 255
	}
	return idx / 13
}

// Valid reports whether exactly one of the 52 card bits is set.
func (c Card) Valid() bool {
	return bits.OnesCount64(uint64(c)) == 1 && c.index() < 52
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// MarshalText encodes the card as its two character name.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot encode invalid card %#x", uint64(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a two character card name.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a two character card such as "As" or "td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank %q in card %q", s[0], s)
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit %q in card %q", s[1], s)
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a run of cards, with or without separators:
// "AsKd", "As Kd" and "As,Kd" are all accepted.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card list %q", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures and tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand builds a set from cards. Duplicates collapse.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether c is in the hand.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// SuitMask returns the ranks held in one suit as a 13-bit mask.
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint(suit) * 13)) & rankBits)
}

// Cards expands the set in ascending bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

func (h Hand) String() string {
	return FormatCards(h.Cards())
}

// FormatCards joins cards with spaces ("As Kd Th").
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Distinct reports whether no card repeats and every card is valid.
func Distinct(cards ...Card) bool {
	var seen Hand
	for _, c := range cards {
		if !c.Valid() || seen.HasCard(c) {
			return false
		}
		seen.AddCard(c)
	}
	return true
}
