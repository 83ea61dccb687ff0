package minimax

import (
	"context"
	"fmt"
	"math"

	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// searcher runs a single sequential search. It exclusively owns its board for
// the duration of the call tree, every placed mark is taken back on return.
type searcher struct {
	ctx       context.Context
	board     *ttt.Board
	evaluator *ttt.Evaluator
	pruning   bool
	cutoff    int // -1 if unbounded
	scoring   Scoring
	win       float64
	stats     Stats
	err       error
}

func (e *Engine) newSearcher(ctx context.Context, board *ttt.Board) *searcher {
	return &searcher{
		ctx:       ctx,
		board:     board,
		evaluator: e.evaluator,
		pruning:   e.pruning,
		cutoff:    e.limits.cutoff(),
		scoring:   e.scoring,
		win:       winValue(board.Size()),
	}
}

// candidate searches the position after 'mover' plays 'move', with the
// opponent to move and a full window, so the returned value is exact
func (s *searcher) candidate(move int, mover ttt.Player) (float64, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	value := s.child(move, mover, 0, mover.Opponent().Maximizing(), negInf, posInf)
	return value, s.err
}

// child places the mark, searches and always takes the mark back
func (s *searcher) child(i int, mark ttt.Player, depth int, maximizing bool, alpha, beta float64) float64 {
	s.board.Set(i, mark)
	defer s.board.Set(i, ttt.Empty)
	return s.minimax(depth, maximizing, alpha, beta)
}

// minimax returns the value of the current position from X's perspective.
// X is the maximizing side, O the minimizing one.
func (s *searcher) minimax(depth int, maximizing bool, alpha, beta float64) float64 {
	s.stats.visit(depth)
	if (s.stats.Nodes-1)&(cancelCheckInterval-1) == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
		}
	}
	if s.err != nil {
		return 0
	}

	// Depth cutoff: single pass giving both the outcome and the static score
	if s.cutoff >= 0 && depth >= s.cutoff {
		eval := s.evaluator.Evaluate(s.board)
		if eval.Outcome.Terminal() {
			return s.terminal(eval.Outcome, depth)
		}
		return eval.Score.Diff()
	}

	if outcome := ttt.DetectOutcome(s.board); outcome.Terminal() {
		return s.terminal(outcome, depth)
	}

	mark, best := ttt.Circle, posInf
	if maximizing {
		mark, best = ttt.Cross, negInf
	}

	for i := 0; i < s.board.Len(); i++ {
		if s.board.At(i) != ttt.Empty {
			continue
		}

		value := s.child(i, mark, depth+1, !maximizing, alpha, beta)
		if s.err != nil {
			return 0
		}

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, value)
		} else {
			best = min(best, value)
			beta = min(beta, value)
		}

		if s.pruning && beta <= alpha {
			s.stats.Cutoffs++
			break
		}
	}

	return best
}

func (s *searcher) terminal(outcome ttt.Outcome, depth int) float64 {
	value := s.win
	if s.scoring == ScoreDepthWeighted {
		value -= float64(depth)
	}

	switch outcome {
	case ttt.OutcomeCrossWon:
		return value
	case ttt.OutcomeCircleWon:
		return -value
	}
	return 0
}

// Runs f, turning a panic into an error wrapping ErrSearchFailed
func guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrSearchFailed, r)
		}
	}()
	return f()
}
