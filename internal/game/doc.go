// Package game runs a single hand of the three-round tournament format.
//
// A hand moves through a fixed sequence of phases:
//
//	Round1Flop -> Round2Turn -> Round3River -> Showdown
//	     |
//	     +-> EarlyWin   (one player left after round 1)
//	     +-> Abandoned  (nobody left after round 1)
//
// Every funded seat posts the buy-in, receives two hole cards, and all five
// community cards are fixed before round 1. Round 1 shows the flop and is the
// only round where a seat may fold. Rounds 2 and 3 show the turn and river and
// bound each bet by a multiple of the seat's previous bet.
//
// # Seats and strategies
//
// Ledger holds a seat's persistent stack and per-hand state. Decisions come
// from a Strategy, always called through a Guard which recovers panics,
// enforces an optional time budget and replaces unusable answers with the
// safe default (fold in round 1, the lower bound in rounds 2 and 3).
//
// # Deterministic play
//
// A Hand takes an explicit *rand.Rand. The deck is shuffled from it and each
// acting seat gets a child stream derived in seat order, so seats can be
// evaluated concurrently and a seeded hand still replays exactly:
//
//	h, err := game.NewHand(rng, seats, guards,
//	    game.WithRules(game.DefaultRules()),
//	    game.WithLogger(logger))
//	record, err := h.Play(ctx)
//
// # Settlement
//
// At showdown the pot is split evenly between the best hands. Each winner's
// payout is capped at CapMultiplier times the buy-in plus their own bets and
// any remainder is shared by everyone who reached round 2.
package game
