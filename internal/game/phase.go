package game

import "fmt"

// Phase is a state of the hand state machine.
type Phase int

const (
	Round1Flop Phase = iota
	Round2Turn
	Round3River
	Showdown
	EarlyWin
	Abandoned
)

var phaseNames = [...]string{
	Round1Flop:  "round1_flop",
	Round2Turn:  "round2_turn",
	Round3River: "round3_river",
	Showdown:    "showdown",
	EarlyWin:    "early_win",
	Abandoned:   "abandoned",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Terminal reports whether the hand is over.
func (p Phase) Terminal() bool {
	return p == Showdown || p == EarlyWin || p == Abandoned
}

// VisibleBoard is how many community cards are public in p.
func (p Phase) VisibleBoard() int {
	switch p {
	case Round2Turn:
		return 4
	case Round3River, Showdown:
		return 5
	default:
		return 3
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
