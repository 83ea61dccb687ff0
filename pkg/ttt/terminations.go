package ttt

type Outcome int

const (
	OutcomeNone      Outcome = 0
	OutcomeCrossWon  Outcome = 1
	OutcomeCircleWon Outcome = 2
	OutcomeDraw      Outcome = 3
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCrossWon:
		return "X wins"
	case OutcomeCircleWon:
		return "O wins"
	case OutcomeDraw:
		return "draw"
	}
	return "undecided"
}

func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Winner returns the winning mark, Empty for draws and undecided games
func (o Outcome) Winner() Player {
	switch o {
	case OutcomeCrossWon:
		return Cross
	case OutcomeCircleWon:
		return Circle
	}
	return Empty
}

func wonBy(p Player) Outcome {
	if p == Cross {
		return OutcomeCrossWon
	}
	return OutcomeCircleWon
}

// Per-player mark counts of every row, column and both diagonals,
// filled in a single pass over the board
type lineTally struct {
	size  int
	rows  [2][]int
	cols  [2][]int
	diags [2][2]int
}

func newLineTally(size int) *lineTally {
	counters := make([]int, 4*size)
	return &lineTally{
		size: size,
		rows: [2][]int{counters[:size:size], counters[size : 2*size : 2*size]},
		cols: [2][]int{counters[2*size : 3*size : 3*size], counters[3*size:]},
	}
}

// add counts the mark at cell i and reports whether it completed a line
func (t *lineTally) add(i int, p Player) bool {
	k := p.index()
	row, col := i/t.size, i%t.size

	t.rows[k][row]++
	t.cols[k][col]++
	won := t.rows[k][row] == t.size || t.cols[k][col] == t.size

	// Main diagonal
	if row == col {
		t.diags[k][0]++
		won = won || t.diags[k][0] == t.size
	}
	// Anti-diagonal
	if row+col == t.size-1 {
		t.diags[k][1]++
		won = won || t.diags[k][1] == t.size
	}
	return won
}

// scan walks the board once, returning the winner as soon as a line is completed
func (t *lineTally) scan(cells []Player) Outcome {
	full := true
	for i, c := range cells {
		if c == Empty {
			full = false
			continue
		}
		if t.add(i, c) {
			return wonBy(c)
		}
	}

	if full {
		return OutcomeDraw
	}
	return OutcomeNone
}

// DetectOutcome checks for a completed row, column or diagonal, then for a
// full board. An empty board is always undecided.
func DetectOutcome(b *Board) Outcome {
	return newLineTally(b.size).scan(b.cells)
}

func (b *Board) Outcome() Outcome {
	return DetectOutcome(b)
}
