package minimax

import (
	"fmt"
	"time"
)

// Stats is the per-call diagnostics accumulator, owned by a single
// BestMove/Search invocation (each parallel worker has its own and they are
// merged after the join)
type Stats struct {
	// Number of search calls (visited positions)
	Nodes uint64
	// Deepest ply reached below the candidate move
	MaxDepth int
	// Number of alpha-beta cut-offs
	Cutoffs  uint64
	Duration time.Duration
}

func (s *Stats) visit(depth int) {
	s.Nodes++
	s.MaxDepth = max(s.MaxDepth, depth)
}

func (s *Stats) merge(other Stats) {
	s.Nodes += other.Nodes
	s.Cutoffs += other.Cutoffs
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
}

// Nodes per second
func (s Stats) Nps() uint64 {
	ms := max(s.Duration.Milliseconds(), 1)
	return s.Nodes * 1000 / uint64(ms)
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d maxdepth=%d cutoffs=%d time=%v nps=%d",
		s.Nodes, s.MaxDepth, s.Cutoffs, s.Duration, s.Nps())
}

// Candidate is a first move with its exact search value
type Candidate struct {
	Move  int
	Score float64
}

type Result struct {
	// Chosen cell index, NoMove if the board is full
	Move int
	// Search value of the chosen move, from X's perspective
	Score float64
	// Every evaluated first move, in board order
	Candidates []Candidate
	Stats      Stats
}

// Iterations is the total number of search calls made for this move
func (r Result) Iterations() uint64 {
	return r.Stats.Nodes
}

func (r Result) String() string {
	return fmt.Sprintf("Result={Move=%d, Score=%.2f, %v}", r.Move, r.Score, r.Stats)
}
