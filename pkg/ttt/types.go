package ttt

import (
	"errors"
	"fmt"
	"strings"
)

type Player uint8

const (
	Empty  Player = 0
	Cross  Player = 1 // "X", always the maximizing side
	Circle Player = 2 // "O", always the minimizing side
)

const (
	MinSize = 3
	MaxSize = 10
)

var (
	ErrOutOfBounds   = errors.New("ttt: move out of board bounds")
	ErrOccupied      = errors.New("ttt: cell already occupied")
	ErrInvalidPlayer = errors.New("ttt: invalid player")
	ErrInvalidSize   = errors.New("ttt: invalid board size")
	ErrInvalidBoard  = errors.New("ttt: invalid board")
)

// Opponent returns the other mark, Empty stays Empty
func (p Player) Opponent() Player {
	switch p {
	case Cross:
		return Circle
	case Circle:
		return Cross
	}
	return Empty
}

// Whether this player is the maximizing side of the search
func (p Player) Maximizing() bool {
	return p == Cross
}

func (p Player) Valid() bool {
	return p == Cross || p == Circle
}

func (p Player) String() string {
	switch p {
	case Cross:
		return "X"
	case Circle:
		return "O"
	}
	return "."
}

// index into per-player counters
func (p Player) index() int {
	return int(p) - 1
}

func ParsePlayer(s string) (Player, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return Cross, nil
	case "O":
		return Circle, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
}

// ValidateSize checks the board size range accepted by the game front-ends,
// the search itself works with any size >= 1
func ValidateSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: %d, must be in [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return nil
}

// ClampSize forces the size into the [MinSize, MaxSize] range
func ClampSize(size int) int {
	return min(max(size, MinSize), MaxSize)
}
