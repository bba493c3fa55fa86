// Package handlog exports a finished match as a TOML document.
package handlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/tournament"
	"github.com/lox/pokertourney/poker"
)

// Document is the exported match. TOML tables cannot have integer keys, so
// per-seat maps become arrays of tables carrying the seat index.
type Document struct {
	MatchID     string                `toml:"match_id"`
	Seed        int64                 `toml:"seed"`
	HandsPlayed int                   `toml:"hands_played"`
	Halted      bool                  `toml:"halted"`
	Standings   []tournament.Standing `toml:"standing"`
	Hands       []Hand                `toml:"hand"`
}

// Hand is one history entry.
type Hand struct {
	ID            string  `toml:"id"`
	Number        int     `toml:"number"`
	Outcome       string  `toml:"outcome"`
	Board         string  `toml:"board"`
	Pot           float64 `toml:"pot"`
	Winners       []int   `toml:"winners"`
	BestRank      string  `toml:"best_rank,omitempty"`
	Redistributed float64 `toml:"redistributed"`
	Recipients    []int   `toml:"recipients"`
	Unallocated   float64 `toml:"unallocated"`
	Seats         []Seat  `toml:"seat"`
}

// Seat is one seat's part of a hand.
type Seat struct {
	Seat        int       `toml:"seat"`
	Name        string    `toml:"name"`
	Dealt       bool      `toml:"dealt"`
	Hole        string    `toml:"hole,omitempty"`
	Folded      bool      `toml:"folded"`
	Eliminated  bool      `toml:"eliminated"`
	Score       int       `toml:"score"`
	Description string    `toml:"description,omitempty"`
	Bets        []float64 `toml:"bets"`
	Equities    []float64 `toml:"equities"`
	Paid        float64   `toml:"paid"`
	Credited    float64   `toml:"credited"`
	WinCredit   float64   `toml:"win_credit"`
	Stack       float64   `toml:"stack"`
	Faults      int       `toml:"faults,omitempty"`
}

// FromResult flattens a match result into a Document.
func FromResult(res tournament.Result) Document {
	doc := Document{
		MatchID:     res.MatchID,
		Seed:        res.Seed,
		HandsPlayed: res.HandsPlayed,
		Halted:      res.Halted,
		Standings:   res.Standings,
		Hands:       make([]Hand, len(res.History)),
	}
	for i, rec := range res.History {
		doc.Hands[i] = fromRecord(rec)
	}
	return doc
}

func fromRecord(rec game.HandRecord) Hand {
	st := rec.Settlement
	h := Hand{
		ID:            rec.ID,
		Number:        rec.Number,
		Outcome:       rec.Outcome.String(),
		Board:         poker.FormatCards(rec.Board),
		Pot:           rec.Pot,
		Winners:       nonNil(st.Winners),
		Redistributed: st.Redistributed,
		Recipients:    nonNil(st.Recipients),
		Unallocated:   st.Unallocated,
		Seats:         make([]Seat, len(rec.Seats)),
	}
	if st.BestRank.Valid() {
		h.BestRank = st.BestRank.String()
	}
	for i, s := range rec.Seats {
		h.Seats[i] = Seat{
			Seat:        s.Seat,
			Name:        s.Name,
			Dealt:       s.Dealt,
			Hole:        poker.FormatCards(s.Hole),
			Folded:      s.Folded,
			Eliminated:  s.Eliminated,
			Score:       int(s.Score),
			Description: s.Description,
			Bets:        s.Bets[:],
			Equities:    nonNil(s.Equities),
			Paid:        s.Paid,
			Credited:    st.Credited(s.Seat),
			WinCredit:   st.WinCredits[s.Seat],
			Stack:       s.Stack,
			Faults:      s.Faults,
		}
	}
	return h
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Encode writes doc as TOML.
func Encode(w io.Writer, doc Document) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("handlog: %w", err)
	}
	return nil
}

// Decode reads a Document written by Encode.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("handlog: %w", err)
	}
	return doc, nil
}

// Write exports res to path. Readers see either the old file or the complete
// new one.
func Write(path string, res tournament.Result) error {
	var buf strings.Builder
	if err := Encode(&buf, FromResult(res)); err != nil {
		return err
	}
	return writeAtomic(path, []byte(buf.String()), 0o644)
}

// writeAtomic writes to a temp file in the target directory and renames it
// into place.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
