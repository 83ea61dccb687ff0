package minimax

import (
	"encoding/json"
	"math"
	"strings"
)

type Limits struct {
	Depth    int
	NThreads int
	Infinite bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit int = math.MaxInt
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		NThreads: 1,
		Infinite: true,
	}
}

// Set the maximum depth of the search, past it the static evaluation is used.
// Depth 0 evaluates the position right after each candidate move.
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = max(depth, 0)
	l.Infinite = false
	return l
}

// Search until terminal positions only
func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	if infinite {
		l.Depth = DefaultDepthLimit
	}
	return l
}

// Set the number of workers used by the parallel dispatcher,
// values below 1 mean one worker per CPU
func (l *Limits) SetThreads(threads int) *Limits {
	if threads < 1 {
		threads = defaultThreads()
	}
	l.NThreads = threads
	return l
}

func (l *Limits) Clone() *Limits {
	c := *l
	return &c
}

// returns the depth cutoff, or -1 when unbounded
func (l *Limits) cutoff() int {
	if l.Infinite || l.Depth == DefaultDepthLimit {
		return -1
	}
	return l.Depth
}
