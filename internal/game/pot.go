package game

import (
	"math"
	"slices"

	"github.com/lox/pokertourney/poker"
)

// Settlement is how a hand's pot was distributed.
type Settlement struct {
	Pot      float64         `json:"pot"`
	Winners  []int           `json:"winners"`
	BestRank poker.HandRank  `json:"best_rank"`
	Payouts  map[int]float64 `json:"payouts"`
	Caps     map[int]float64 `json:"caps"`

	// Redistributed is the capped-off remainder, shared equally by Recipients.
	Redistributed       float64 `json:"redistributed"`
	RedistributionShare float64 `json:"redistribution_share"`
	Recipients          []int   `json:"recipients"`

	WinCredits map[int]float64 `json:"win_credits"`
	// Unallocated is pot that left play: the early-win excess or an
	// abandoned pot.
	Unallocated float64 `json:"unallocated"`
}

// Credited returns the total amount a seat receives.
func (s Settlement) Credited(seat int) float64 {
	total := s.Payouts[seat]
	if slices.Contains(s.Recipients, seat) {
		total += s.RedistributionShare
	}
	return total
}

// Distributed is everything paid back to seats.
func (s Settlement) Distributed() float64 {
	total := s.Redistributed
	for _, p := range s.Payouts {
		total += p
	}
	return total
}

// Contender is a seat still holding cards at showdown.
type Contender struct {
	Seat int
	Rank poker.HandRank
	Bets [3]float64
}

// SettleShowdown splits pot between the best-ranked contenders. Each winner
// takes min(pot/winners, cap) where cap covers their own buy-in and bets; a
// positive remainder is shared by recipients.
func SettleShowdown(rules Rules, pot float64, contenders []Contender, recipients []int) Settlement {
	s := Settlement{
		Pot:        pot,
		BestRank:   poker.NoHand,
		Payouts:    map[int]float64{},
		Caps:       map[int]float64{},
		WinCredits: map[int]float64{},
	}
	for _, c := range contenders {
		switch poker.Compare(c.Rank, s.BestRank) {
		case 1:
			s.BestRank = c.Rank
			s.Winners = []int{c.Seat}
		case 0:
			if c.Rank.Valid() {
				s.Winners = append(s.Winners, c.Seat)
			}
		}
	}
	if len(s.Winners) == 0 {
		s.Unallocated = pot
		return s
	}

	share := pot / float64(len(s.Winners))
	credit := 1 / float64(len(s.Winners))
	paid := 0.0
	for _, c := range contenders {
		if !slices.Contains(s.Winners, c.Seat) {
			continue
		}
		limit := rules.Cap(c.Bets[:]...)
		payout := math.Min(share, limit)
		s.Caps[c.Seat] = limit
		s.Payouts[c.Seat] = payout
		s.WinCredits[c.Seat] = credit
		paid += payout
	}

	if remainder := pot - paid; remainder > 0 {
		if len(recipients) == 0 {
			s.Unallocated = remainder
			return s
		}
		s.Recipients = slices.Clone(recipients)
		s.Redistributed = remainder
		s.RedistributionShare = remainder / float64(len(recipients))
	}
	return s
}

// SettleEarlyWin pays the last seat standing after round 1, capped on the
// buy-in plus its round 1 bet. The excess is not redistributed.
func SettleEarlyWin(rules Rules, pot float64, seat int, round1Bet float64) Settlement {
	limit := rules.Cap(round1Bet)
	payout := math.Min(pot, limit)
	return Settlement{
		Pot:         pot,
		Winners:     []int{seat},
		BestRank:    poker.NoHand,
		Payouts:     map[int]float64{seat: payout},
		Caps:        map[int]float64{seat: limit},
		WinCredits:  map[int]float64{seat: 1},
		Unallocated: pot - payout,
	}
}

// Abandon settles a hand nobody finished. The whole pot leaves play.
func Abandon(pot float64) Settlement {
	return Settlement{
		Pot:         pot,
		BestRank:    poker.NoHand,
		Payouts:     map[int]float64{},
		Caps:        map[int]float64{},
		WinCredits:  map[int]float64{},
		Unallocated: pot,
	}
}
