package poker

import (
	"math/bits"
)

// HandRank is the strength of the best five-card hand within 5-7 cards.
// Lower values are stronger: 1 is a royal flush and 7462 is 7-5-4-3-2
// unsuited. NoHand sorts after every real hand.
type HandRank int

const (
	BestRank  HandRank = 1
	WorstRank HandRank = 7462
	NoHand    HandRank = WorstRank + 1
)

// Category enumerates hand classes from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// band is the contiguous block of ranks a category occupies.
type band struct {
	start int
	size  int
}

var bands = [...]band{
	StraightFlush: {1, 10},
	FourOfAKind:   {11, 13 * 12},
	FullHouse:     {167, 13 * 12},
	Flush:         {323, 1277},
	Straight:      {1600, 10},
	ThreeOfAKind:  {1610, 13 * 66},
	TwoPair:       {2468, 78 * 11},
	Pair:          {3326, 13 * 220},
	HighCard:      {6186, 1277},
}

// rank converts an ascending in-category index (0 = weakest) to a HandRank.
func (b band) rank(idx int) HandRank {
	return HandRank(b.start + b.size - 1 - idx)
}

// Category returns the class of a valid rank.
func (r HandRank) Category() Category {
	for cat := StraightFlush; ; cat-- {
		b := bands[cat]
		if int(r) >= b.start && int(r) < b.start+b.size {
			return cat
		}
		if cat == HighCard {
			return HighCard
		}
	}
}

// Valid reports whether r is a real hand rank (not NoHand).
func (r HandRank) Valid() bool {
	return r >= BestRank && r <= WorstRank
}

func (r HandRank) String() string {
	if !r.Valid() {
		return "No Hand"
	}
	return r.Category().String()
}

// RankFunc maps a 5-7 card set to its rank. Evaluate is the standard one.
type RankFunc func(Hand) HandRank

// choose[n][k] for n <= 13, k <= 5.
var choose = func() [14][6]int {
	var c [14][6]int
	for n := 0; n < 14; n++ {
		c[n][0] = 1
		for k := 1; k < 6 && k <= n; k++ {
			c[n][k] = c[n-1][k-1] + c[n-1][k]
		}
	}
	return c
}()

// straightColex holds the five-rank colex index of each of the ten straights.
var straightColex = func() [10]int {
	var out [10]int
	out[0] = colex([]int{12, 3, 2, 1, 0})
	for high := 4; high <= 12; high++ {
		out[high-3] = colex([]int{high, high - 1, high - 2, high - 3, high - 4})
	}
	return out
}()

// colex returns the combinatorial-number-system index of distinct ranks given
// in descending order. Comparing indices compares the ranks high card first.
func colex(desc []int) int {
	k := len(desc)
	idx := 0
	for i, r := range desc {
		idx += choose[r][k-i]
	}
	return idx
}

// unpairedIndex indexes five distinct non-straight ranks into 0..1276.
func unpairedIndex(desc []int) int {
	idx := colex(desc)
	below := 0
	for _, s := range straightColex {
		if s < idx {
			below++
		}
	}
	return idx - below
}

// straightHigh returns the top rank of the best straight in mask, 3 for the
// wheel, or -1 when there is none.
func straightHigh(mask uint16) int {
	for high := 12; high >= 4; high-- {
		run := uint16(0x1F) << uint(high-4)
		if mask&run == run {
			return high
		}
	}
	const wheel = 0x100F
	if mask&wheel == wheel {
		return 3
	}
	return -1
}

// topRanks writes the n highest ranks of mask into dst, highest first.
func topRanks(mask uint16, n int, dst []int) []int {
	dst = dst[:0]
	for len(dst) < n && mask != 0 {
		r := bits.Len16(mask) - 1
		dst = append(dst, r)
		mask &^= 1 << uint(r)
	}
	return dst
}

// ordinal is r's position once the excluded ranks are removed from 0..12.
func ordinal(r int, exclude ...int) int {
	o := r
	for _, e := range exclude {
		if e < r {
			o--
		}
	}
	return o
}

// Evaluate ranks the best five-card hand in h. Sets with fewer than five or
// more than seven cards get NoHand.
func Evaluate(h Hand) HandRank {
	n := h.CountCards()
	if n < 5 || n > 7 {
		return NoHand
	}

	var suits [4]uint16
	var counts [13]uint8
	var all uint16
	flushSuit := -1
	for s := uint8(0); s < 4; s++ {
		m := h.SuitMask(s)
		suits[s] = m
		all |= m
		if bits.OnesCount16(m) >= 5 {
			flushSuit = int(s)
		}
		for rest := m; rest != 0; rest &= rest - 1 {
			counts[bits.TrailingZeros16(rest)]++
		}
	}

	if flushSuit >= 0 {
		if high := straightHigh(suits[flushSuit]); high >= 0 {
			return bands[StraightFlush].rank(high - 3)
		}
	}

	var quads, trips, pairs [7]int
	var nq, nt, np int
	for r := 12; r >= 0; r-- {
		switch counts[r] {
		case 4:
			quads[nq] = r
			nq++
		case 3:
			trips[nt] = r
			nt++
		case 2:
			pairs[np] = r
			np++
		}
	}

	var buf [5]int
	if nq > 0 {
		q := quads[0]
		k := topRanks(all&^(1<<uint(q)), 1, buf[:])[0]
		return bands[FourOfAKind].rank(q*12 + ordinal(k, q))
	}

	if nt > 0 && (nt > 1 || np > 0) {
		t := trips[0]
		p := -1
		if nt > 1 {
			p = trips[1]
		}
		if np > 0 && pairs[0] > p {
			p = pairs[0]
		}
		return bands[FullHouse].rank(t*12 + ordinal(p, t))
	}

	if flushSuit >= 0 {
		top := topRanks(suits[flushSuit], 5, buf[:])
		return bands[Flush].rank(unpairedIndex(top))
	}

	if high := straightHigh(all); high >= 0 {
		return bands[Straight].rank(high - 3)
	}

	if nt > 0 {
		t := trips[0]
		k := topRanks(all&^(1<<uint(t)), 2, buf[:])
		idx := t*66 + colex([]int{ordinal(k[0], t), ordinal(k[1], t)})
		return bands[ThreeOfAKind].rank(idx)
	}

	if np > 1 {
		hi, lo := pairs[0], pairs[1]
		k := topRanks(all&^(1<<uint(hi))&^(1<<uint(lo)), 1, buf[:])[0]
		idx := colex([]int{hi, lo})*11 + ordinal(k, hi, lo)
		return bands[TwoPair].rank(idx)
	}

	if np == 1 {
		p := pairs[0]
		k := topRanks(all&^(1<<uint(p)), 3, buf[:])
		idx := p*220 + colex([]int{ordinal(k[0], p), ordinal(k[1], p), ordinal(k[2], p)})
		return bands[Pair].rank(idx)
	}

	return bands[HighCard].rank(unpairedIndex(topRanks(all, 5, buf[:])))
}

// EvaluateCards is Evaluate over a card slice. Duplicate cards collapse, so a
// slice with repeats can rank as NoHand.
func EvaluateCards(cards ...Card) HandRank {
	return Evaluate(NewHand(cards...))
}

// Compare returns 1 when a beats b, -1 when b beats a and 0 on a tie.
func Compare(a, b HandRank) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}
