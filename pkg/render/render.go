// Package render prints value functions and policies as grids.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/montplusa/light-riders-bot/pkg/game"
)

// Printer writes grids to w. Colours are only emitted when enabled.
type Printer struct {
	w  io.Writer
	au aurora.Aurora
}

func NewPrinter(w io.Writer, colors bool) *Printer {
	return &Printer{w: w, au: aurora.NewAurora(colors)}
}

func (p *Printer) separator(cols int) {
	fmt.Fprintln(p.w, strings.Repeat("-", 8*cols))
}

// Values prints V row by row; missing states print as 0.
func (p *Printer) Values(V map[game.State]float64, rows, cols int, current game.State) {
	fmt.Fprintln(p.w, "\nVALUES")
	for r := 0; r < rows; r++ {
		p.separator(cols)
		for c := 0; c < cols; c++ {
			s := game.State{Row: r, Col: c}
			cell := formatValue(V[s])
			switch {
			case s == current:
				fmt.Fprint(p.w, p.au.Green(cell))
			case V[s] < 0:
				fmt.Fprint(p.w, p.au.Red(cell))
			default:
				fmt.Fprint(p.w, p.au.Blue(cell))
			}
			fmt.Fprint(p.w, "|")
		}
		fmt.Fprintln(p.w)
	}
}

// Policy prints the action of every state, blank where undecided.
func (p *Printer) Policy(policy game.Policy, rows, cols int, current game.State) {
	fmt.Fprintln(p.w, "\nPOLICY")
	for r := 0; r < rows; r++ {
		p.separator(cols)
		for c := 0; c < cols; c++ {
			s := game.State{Row: r, Col: c}
			label := " "
			if a, ok := policy.Action(s); ok {
				label = a.String()
			}
			cell := center(label, 7)
			if s == current {
				fmt.Fprint(p.w, p.au.Green(cell))
			} else {
				fmt.Fprint(p.w, cell)
			}
			fmt.Fprint(p.w, "|")
		}
		fmt.Fprintln(p.w)
	}
}

// 負号の分だけ幅をそろえる
func formatValue(v float64) string {
	if v >= 0 {
		return fmt.Sprintf(" %6.2f", v)
	}
	return fmt.Sprintf("%7.2f", v)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
