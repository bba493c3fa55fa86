package tournament

import "github.com/lox/pokertourney/internal/game"

// Observer receives match progress. Calls are made from the match goroutine
// after the state they describe is final.
type Observer interface {
	HandCompleted(rec game.HandRecord, standings []Standing)
	MatchCompleted(res Result)
}

// NullObserver ignores every event.
type NullObserver struct{}

func (NullObserver) HandCompleted(game.HandRecord, []Standing) {}
func (NullObserver) MatchCompleted(Result)                      {}

type multiObserver []Observer

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	filtered := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	switch len(filtered) {
	case 0:
		return NullObserver{}
	case 1:
		return filtered[0]
	default:
		return filtered
	}
}

func (m multiObserver) HandCompleted(rec game.HandRecord, standings []Standing) {
	for _, o := range m {
		o.HandCompleted(rec, standings)
	}
}

func (m multiObserver) MatchCompleted(res Result) {
	for _, o := range m {
		o.MatchCompleted(res)
	}
}
