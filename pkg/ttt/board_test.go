package ttt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("XO./.X./..O")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, Cross, b.At(0))
	assert.Equal(t, Circle, b.At(1))
	assert.Equal(t, Empty, b.At(2))
	assert.Equal(t, "XO./.X./..O", b.Notation())

	b, err = ParseBoard("xo/.X")
	require.NoError(t, err)
	fromCells, err := FromCells([]Player{Cross, Circle, Empty, Cross}, 2)
	require.NoError(t, err)
	assert.Equal(t, fromCells, b)

	_, err = ParseBoard("XO.X.")
	assert.ErrorIs(t, err, ErrInvalidBoard)

	_, err = ParseBoard("XQ.X")
	assert.ErrorIs(t, err, ErrInvalidBoard)

	_, err = ParseBoard("")
	assert.ErrorIs(t, err, ErrInvalidBoard)
}

func TestFromCells(t *testing.T) {
	cells := []Player{Cross, Empty, Empty, Circle}
	b, err := FromCells(cells, 2)
	require.NoError(t, err)

	// The board owns its own copy
	cells[1] = Cross
	assert.Equal(t, Empty, b.At(1))

	_, err = FromCells(cells, 3)
	assert.ErrorIs(t, err, ErrInvalidBoard)

	_, err = FromCells([]Player{Cross, 7, Empty, Empty}, 2)
	assert.ErrorIs(t, err, ErrInvalidBoard)
}

func TestMakeMove(t *testing.T) {
	b, err := NewBoard(3)
	require.NoError(t, err)

	require.NoError(t, b.MakeMove(4, Cross))
	assert.Equal(t, Cross, b.At(4))

	before := b.Notation()
	assert.ErrorIs(t, b.MakeMove(4, Circle), ErrOccupied)
	assert.ErrorIs(t, b.MakeMove(9, Circle), ErrOutOfBounds)
	assert.ErrorIs(t, b.MakeMove(-1, Circle), ErrOutOfBounds)
	assert.ErrorIs(t, b.MakeMove(0, Empty), ErrInvalidPlayer)
	assert.Equal(t, before, b.Notation(), "rejected moves must not touch the board")
}

func TestBoardHelpers(t *testing.T) {
	b := mustParse(t, "XO./.X./...")
	assert.Equal(t, []int{2, 3, 5, 6, 7, 8}, b.EmptyCells())
	assert.False(t, b.Full())
	assert.Equal(t, Circle, b.Turn())
	assert.Equal(t, 7, b.Index(2, 1))
	assert.Equal(t, "X O .\n. X .\n. . .\n", b.String())

	clone := b.Clone()
	clone.Set(2, Circle)
	assert.Equal(t, Empty, b.At(2))

	full := mustParse(t, "XOX/OXO/OXO")
	assert.True(t, full.Full())
	assert.Empty(t, full.EmptyCells())
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, Circle, Cross.Opponent())
	assert.Equal(t, Cross, Circle.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
	assert.True(t, Cross.Maximizing())
	assert.False(t, Circle.Maximizing())

	p, err := ParsePlayer(" o ")
	require.NoError(t, err)
	assert.Equal(t, Circle, p)

	_, err = ParsePlayer("Z")
	assert.ErrorIs(t, err, ErrInvalidPlayer)
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(3))
	assert.NoError(t, ValidateSize(10))
	assert.ErrorIs(t, ValidateSize(2), ErrInvalidSize)
	assert.ErrorIs(t, ValidateSize(11), ErrInvalidSize)
	assert.Equal(t, 3, ClampSize(1))
	assert.Equal(t, 10, ClampSize(42))
	assert.Equal(t, 5, ClampSize(5))
}
