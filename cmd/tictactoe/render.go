package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

// boardRenderer draws the board with cell indices on the empty squares,
// highlighting the last move
type boardRenderer struct {
	out *termenv.Output
}

func newBoardRenderer(w io.Writer) *boardRenderer {
	return &boardRenderer{out: termenv.NewOutput(w)}
}

func (r *boardRenderer) mark(p ttt.Player) termenv.Style {
	style := r.out.String(p.String())
	switch p {
	case ttt.Cross:
		return style.Foreground(termenv.ANSIBrightBlue).Bold()
	case ttt.Circle:
		return style.Foreground(termenv.ANSIBrightRed).Bold()
	}
	return style
}

func (r *boardRenderer) Render(board *ttt.Board, last int) string {
	size := board.Size()
	width := len(fmt.Sprint(board.Len() - 1))
	sep := strings.Repeat("-", (width+2)*size+size-1)

	var sb strings.Builder
	for row := range size {
		if row > 0 {
			sb.WriteString(sep + "\n")
		}
		for col := range size {
			if col > 0 {
				sb.WriteString("|")
			}
			i := board.Index(row, col)
			p := board.At(i)

			var cell termenv.Style
			pad := width
			if p == ttt.Empty {
				cell = r.out.String(fmt.Sprint(i)).Faint()
				pad -= len(fmt.Sprint(i))
			} else {
				cell = r.mark(p)
				pad -= 1
				if i == last {
					cell = cell.Underline()
				}
			}
			sb.WriteString(" " + strings.Repeat(" ", pad) + cell.String() + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *boardRenderer) Outcome(o ttt.Outcome) string {
	switch o {
	case ttt.OutcomeCrossWon:
		return r.mark(ttt.Cross).String() + " wins"
	case ttt.OutcomeCircleWon:
		return r.mark(ttt.Circle).String() + " wins"
	case ttt.OutcomeDraw:
		return r.out.String("draw").Bold().String()
	}
	return "in progress"
}
