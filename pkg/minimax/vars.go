package minimax

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

// Returned as the move when there is no empty cell left
const NoMove = -1

// How many visited nodes between context checks, must be a power of 2
const cancelCheckInterval uint64 = 1 << 10

var (
	// Wraps worker panics and other failures of a single sub-search
	ErrSearchFailed = errors.New("minimax: search failed")

	ErrUnknownScoring = errors.New("minimax: unknown scoring")
	ErrUnknownVariant = errors.New("minimax: unknown variant")
)

func defaultThreads() int {
	return runtime.GOMAXPROCS(0)
}

// Magnitude of a won position inside the search. It is larger than
// ttt.WinScore on big boards, so that no heuristic total of the default line
// weight can outrank an actual win.
func winValue(size int) float64 {
	return max(ttt.WinScore, math.Pow(10, float64(size+2)))
}

type Scoring int

const (
	// Wins and losses are worth a fixed +-win value
	ScoreFixed Scoring = iota

	// Wins and losses are shifted by the depth they were found at,
	// preferring faster wins and slower losses
	ScoreDepthWeighted
)

func (s Scoring) String() string {
	switch s {
	case ScoreFixed:
		return "fixed"
	case ScoreDepthWeighted:
		return "depth-weighted"
	}
	return "unknown"
}

func ParseScoring(s string) (Scoring, error) {
	switch s {
	case "fixed", "":
		return ScoreFixed, nil
	case "depth-weighted", "depth":
		return ScoreDepthWeighted, nil
	}
	return ScoreFixed, fmt.Errorf("%w: %q", ErrUnknownScoring, s)
}
