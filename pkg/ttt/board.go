package ttt

import (
	"fmt"
	"math"
	"strings"
)

// Board is a flat N*N grid, cell i sits at row i/N and column i%N
type Board struct {
	cells []Player
	size  int
}

func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Board{cells: make([]Player, size*size), size: size}, nil
}

// FromCells copies the given cells into a new board, len(cells) must be size*size
func FromCells(cells []Player, size int) (*Board, error) {
	if size < 1 || len(cells) != size*size {
		return nil, fmt.Errorf("%w: %d cells for size %d", ErrInvalidBoard, len(cells), size)
	}
	for i, c := range cells {
		if c != Empty && !c.Valid() {
			return nil, fmt.Errorf("%w: cell %d holds %d", ErrInvalidBoard, i, c)
		}
	}
	b := &Board{cells: make([]Player, len(cells)), size: size}
	copy(b.cells, cells)
	return b, nil
}

// ParseBoard reads a board notation: 'X', 'O' and '.' (or '-', '_') for empty cells,
// rows may be separated with '/', whitespace is ignored. The size is
// inferred from the number of cells, which must be a perfect square.
func ParseBoard(notation string) (*Board, error) {
	cells := make([]Player, 0, len(notation))
	for _, r := range notation {
		switch r {
		case 'X', 'x':
			cells = append(cells, Cross)
		case 'O', 'o':
			cells = append(cells, Circle)
		case '.', '-', '_':
			cells = append(cells, Empty)
		case '/', ' ', '\t', '\n', '\r':
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, r)
		}
	}

	size := int(math.Sqrt(float64(len(cells))))
	if size*size != len(cells) || size == 0 {
		return nil, fmt.Errorf("%w: %d cells is not a perfect square", ErrInvalidBoard, len(cells))
	}
	return FromCells(cells, size)
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Len() int {
	return len(b.cells)
}

func (b *Board) At(i int) Player {
	return b.cells[i]
}

// Set writes the cell without any checks, used by the search to place and
// take back marks. Use MakeMove for validated moves.
func (b *Board) Set(i int, p Player) {
	b.cells[i] = p
}

// MakeMove places the player's mark, rejecting it without touching the board
// if the index is out of bounds or the cell is taken
func (b *Board) MakeMove(i int, p Player) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, p)
	}
	if i < 0 || i >= len(b.cells) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfBounds, i, len(b.cells))
	}
	if b.cells[i] != Empty {
		return fmt.Errorf("%w: %d holds %v", ErrOccupied, i, b.cells[i])
	}
	b.cells[i] = p
	return nil
}

// Index converts (row, column) into a cell index
func (b *Board) Index(row, col int) int {
	return row*b.size + col
}

// Cells returns a copy of the underlying cells
func (b *Board) Cells() []Player {
	cells := make([]Player, len(b.cells))
	copy(cells, b.cells)
	return cells
}

func (b *Board) Clone() *Board {
	return &Board{cells: b.Cells(), size: b.size}
}

func (b *Board) EmptyCells() []int {
	moves := make([]int, 0, len(b.cells))
	for i, c := range b.cells {
		if c == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

func (b *Board) Full() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// Turn infers the side to move from the mark count, X always starts
func (b *Board) Turn() Player {
	crosses, circles := 0, 0
	for _, c := range b.cells {
		switch c {
		case Cross:
			crosses++
		case Circle:
			circles++
		}
	}
	if crosses > circles {
		return Circle
	}
	return Cross
}

// Notation is the inverse of ParseBoard
func (b *Board) Notation() string {
	builder := strings.Builder{}
	for i, c := range b.cells {
		if i > 0 && i%b.size == 0 {
			builder.WriteByte('/')
		}
		builder.WriteString(c.String())
	}
	return builder.String()
}

func (b *Board) String() string {
	builder := strings.Builder{}
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if col > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(b.cells[b.Index(row, col)].String())
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
