// Package report renders match results for a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/pokertourney/internal/equity"
	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/statistics"
	"github.com/lox/pokertourney/internal/tournament"
	"github.com/lox/pokertourney/poker"
)

type styles struct {
	header    lipgloss.Style
	title     lipgloss.Style
	red       lipgloss.Style
	black     lipgloss.Style
	winner    lipgloss.Style
	out       lipgloss.Style
	muted     lipgloss.Style
	highlight lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1),
		title:     r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		red:       r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		black:     r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		winner:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		out:       r.NewStyle().Foreground(lipgloss.Color("#626262")).Strikethrough(true),
		muted:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		highlight: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
	}
}

// Printer writes styled output to w. It implements tournament.Observer:
// each hand prints one summary line and the match prints the standings.
type Printer struct {
	w      io.Writer
	r      *lipgloss.Renderer
	styles styles
	// Hands enables the per-hand summary lines.
	Hands bool
}

var _ tournament.Observer = (*Printer)(nil)

// New returns a printer for w. With color false, or when w is not a
// terminal, output is plain ASCII.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, r: r, styles: newStyles(r)}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Cards renders cards with suit colors.
func (p *Printer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return p.styles.muted.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := p.styles.black
		if s := c.Suit(); s == poker.Hearts || s == poker.Diamonds {
			style = p.styles.red
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}

// Hand summarizes one completed hand on a single line.
func (p *Printer) Hand(rec game.HandRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s  pot %s",
		p.styles.title.Render(fmt.Sprintf("Hand %d", rec.Number)),
		p.Cards(rec.Board),
		p.styles.muted.Render(rec.Outcome.String()),
		money(rec.Pot))

	names := make(map[int]string, len(rec.Seats))
	for _, s := range rec.Seats {
		names[s.Seat] = s.Name
	}
	st := rec.Settlement
	for _, seat := range st.Winners {
		fmt.Fprintf(&b, "  %s +%s", p.styles.winner.Render(names[seat]), money(st.Payouts[seat]))
	}
	if st.Redistributed > 0 {
		fmt.Fprintf(&b, "  %s", p.styles.highlight.Render(
			fmt.Sprintf("redistributed %s to %d", money(st.Redistributed), len(st.Recipients))))
	}
	if st.Unallocated > 0 {
		fmt.Fprintf(&b, "  %s", p.styles.muted.Render("unallocated "+money(st.Unallocated)))
	}
	return b.String()
}

// Standings renders the final table.
func (p *Printer) Standings(res tournament.Result) string {
	rows := make([][]string, len(res.Standings))
	for i, s := range res.Standings {
		status := "active"
		if s.Eliminated {
			status = "eliminated"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			s.Name,
			money(s.Stack),
			strconv.FormatFloat(s.Wins, 'f', -1, 64),
			strconv.Itoa(s.Faults),
			status,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.muted).
		Headers("#", "Seat", "Stack", "Wins", "Faults", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := p.r.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Bold(true)
			case row < len(res.Standings) && res.Standings[row].Eliminated:
				return base.Inherit(p.styles.out)
			case row == 0:
				return base.Inherit(p.styles.winner)
			}
			return base
		})

	var b strings.Builder
	title := fmt.Sprintf("Match %s: %d hands", res.MatchID, res.HandsPlayed)
	if res.Halted {
		title += ", halted early"
	}
	b.WriteString(p.styles.header.Render(title))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(p.styles.muted.Render(fmt.Sprintf("seed %d", res.Seed)))
	b.WriteString("\n")
	return b.String()
}

// Stats renders per-seat chip results: the mean net per hand with its 95%
// interval, the median and how the seat won.
func (p *Printer) Stats(res tournament.Result) string {
	seats := len(res.Wins)
	stats := statistics.FromHistory(res.History, seats, res.StartingStack)
	names := make([]string, seats)
	for _, s := range res.Standings {
		if s.Seat >= 0 && s.Seat < seats {
			names[s.Seat] = s.Name
		}
	}

	rows := make([][]string, 0, seats)
	for seat, st := range stats {
		lo, hi := st.ConfidenceInterval95()
		rows = append(rows, []string{
			names[seat],
			strconv.Itoa(st.Hands),
			money(st.Mean()),
			fmt.Sprintf("[%s, %s]", money(lo), money(hi)),
			money(st.Median()),
			strconv.Itoa(st.ShowdownWins),
			strconv.Itoa(st.EarlyWins),
			strconv.Itoa(st.Folds),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.muted).
		Headers("Seat", "Hands", "Net/hand", "95% CI", "Median", "Showdown", "Early", "Folds").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := p.r.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true)
			}
			return base
		})
	return t.String() + "\n"
}

// Equity renders a simulation result.
func (p *Printer) Equity(hole, board []poker.Card, players int, res equity.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  board %s  players %d\n",
		p.styles.title.Render("Hole"), p.Cards(hole), p.Cards(board), players)
	fmt.Fprintf(&b, "%s %s\n", p.styles.winner.Render("Equity"), strconv.FormatFloat(res.Equity()*100, 'f', 2, 64)+"%")
	fmt.Fprintf(&b, "%s\n", p.styles.muted.Render(fmt.Sprintf(
		"wins %d  ties %d  trials %d  skipped %d", res.Wins, res.Ties, res.Trials, res.Skipped)))
	return b.String()
}

func (p *Printer) HandCompleted(rec game.HandRecord, _ []tournament.Standing) {
	if p.Hands {
		fmt.Fprintln(p.w, p.Hand(rec))
	}
}

func (p *Printer) MatchCompleted(res tournament.Result) {
	fmt.Fprint(p.w, p.Standings(res))
	if len(res.History) > 0 {
		fmt.Fprint(p.w, p.Stats(res))
	}
}
