package main

import (
	"fmt"
	"os"

	"github.com/lox/pokertourney/internal/equity"
	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/internal/report"
	"github.com/lox/pokertourney/poker"
)

type EquityCmd struct {
	Hole    string `arg:"" help:"Hole cards, e.g. AsKd"`
	Board   string `short:"b" help:"Community cards: none, 3, 4 or 5"`
	Players int    `short:"p" default:"2" help:"Players at the table, including you"`
	Samples int    `short:"n" default:"10000" help:"Monte Carlo trials"`
	Seed    int64  `help:"Random seed (0 picks one)"`
	NoColor bool   `name:"no-color" help:"Disable colored output"`
}

func (c *EquityCmd) Run() error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("board must have 0, 3, 4 or 5 cards, got %d", len(board))
	}
	if !poker.Distinct(append(append([]poker.Card{}, hole...), board...)...) {
		return fmt.Errorf("duplicate cards in %s %s", c.Hole, c.Board)
	}
	if c.Players < 1 {
		return fmt.Errorf("players must be at least 1")
	}

	seed := c.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}
	res := equity.New(c.Samples).Simulate(hole, board, c.Players, randutil.New(seed))
	fmt.Print(report.New(os.Stdout, !c.NoColor).Equity(hole, board, c.Players, res))
	return nil
}

type DescribeCmd struct {
	Cards string `arg:"" help:"5 to 7 cards, e.g. 'As Ks Qs Js Ts'"`
}

func (c *DescribeCmd) Run() error {
	cards, err := poker.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	desc, err := poker.Describe(cards)
	if err != nil {
		return err
	}
	rank := poker.EvaluateCards(cards...)
	fmt.Printf("%s (%s, rank %d of %d)\n", desc, rank, rank, poker.WorstRank)
	return nil
}
