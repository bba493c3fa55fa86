package poker

// HoleTier is a coarse strength bucket for a pair of hole cards.
type HoleTier int

const (
	TierTrash HoleTier = iota
	TierWeak
	TierMedium
	TierStrong
	TierPremium
)

func (t HoleTier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierMedium:
		return "medium"
	case TierWeak:
		return "weak"
	default:
		return "trash"
	}
}

// TierOf buckets two hole cards:
//
//	premium  JJ+ and AK
//	strong   TT, AQ, AJ
//	medium   77-99 and suited cards both ten or better
//	weak     22-66 and suited cards at most two ranks apart
//	trash    everything else, including invalid input
func TierOf(a, b Card) HoleTier {
	if !a.Valid() || !b.Valid() || a == b {
		return TierTrash
	}
	hi, lo := a.Rank(), b.Rank()
	if lo > hi {
		hi, lo = lo, hi
	}
	suited := a.Suit() == b.Suit()
	pair := hi == lo

	switch {
	case pair && lo >= Jack, hi == Ace && lo == King:
		return TierPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return TierStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return TierMedium
	case pair, suited && hi-lo <= 2:
		return TierWeak
	}
	return TierTrash
}
