package minimax

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

// Engine is a minimax move selector, with optional alpha-beta pruning, depth
// limit and parallel candidate search. It holds no per-search state, so one
// engine may serve many concurrent BestMove calls.
type Engine struct {
	pruning   bool
	parallel  bool
	scoring   Scoring
	limits    *Limits
	evaluator *ttt.Evaluator
	listener  *StatsListener
	logger    zerolog.Logger
}

type Option func(e *Engine)

func WithPruning(pruning bool) Option {
	return func(e *Engine) {
		e.pruning = pruning
	}
}

// Search every candidate first move on its own goroutine, the number of
// workers is set by Limits.NThreads
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.parallel = parallel
	}
}

// Number of parallel workers, below 1 means one per CPU
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		e.limits.SetThreads(workers)
	}
}

func WithScoring(scoring Scoring) Option {
	return func(e *Engine) {
		e.scoring = scoring
	}
}

func WithLimits(limits *Limits) Option {
	return func(e *Engine) {
		if limits != nil {
			e.limits = limits.Clone()
		}
	}
}

// Replace the static evaluator's line weight, used at the depth cutoff
func WithLineWeight(weight ttt.LineWeightFn) Option {
	return func(e *Engine) {
		e.evaluator = ttt.NewEvaluator(weight)
	}
}

func WithListener(listener StatsListener) Option {
	return func(e *Engine) {
		e.listener = &listener
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Apply a named preset, see Variant.Options
func WithVariant(variant Variant, depth, threads int) Option {
	return func(e *Engine) {
		for _, option := range variant.Options(depth, threads) {
			option(e)
		}
	}
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		pruning:   true,
		scoring:   ScoreFixed,
		limits:    DefaultLimits(),
		evaluator: ttt.NewEvaluator(nil),
		listener:  &StatsListener{},
		logger:    log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Limits() *Limits {
	return e.limits.Clone()
}

func (e *Engine) SetLimits(limits *Limits) {
	e.limits = limits.Clone()
}

func (e *Engine) Pruning() bool {
	return e.pruning
}

func (e *Engine) Parallel() bool {
	return e.parallel
}

func (e *Engine) Scoring() Scoring {
	return e.scoring
}

func (e *Engine) String() string {
	depth := "none"
	if c := e.limits.cutoff(); c >= 0 {
		depth = fmt.Sprint(c)
	}
	str := fmt.Sprintf("Engine={pruning=%v, depth=%s, scoring=%v", e.pruning, depth, e.scoring)
	if e.parallel {
		str += fmt.Sprintf(", threads=%d", e.limits.NThreads)
	}
	return str + "}"
}

// Search returns the value of the position (from X's perspective) with
// 'maximizing' telling whether X is to move
func (e *Engine) Search(ctx context.Context, board *ttt.Board, maximizing bool) (float64, Stats, error) {
	if board == nil {
		return 0, Stats{}, fmt.Errorf("%w: nil board", ttt.ErrInvalidBoard)
	}
	if err := ctx.Err(); err != nil {
		return 0, Stats{}, err
	}

	start := time.Now()
	s := e.newSearcher(ctx, board.Clone())
	var value float64
	err := guard(func() error {
		value = s.minimax(0, maximizing, negInf, posInf)
		return s.err
	})
	s.stats.Duration = time.Since(start)
	return value, s.stats, err
}

// BestMove chooses the move for 'mover': every empty cell is tried and the
// one with the extremal value wins (max for X, min for O), ties go to the
// lowest index. Returns NoMove if the board is full. The board is never
// modified. Any failed sub-search fails the whole call.
func (e *Engine) BestMove(ctx context.Context, board *ttt.Board, mover ttt.Player) (Result, error) {
	if board == nil {
		return Result{Move: NoMove}, fmt.Errorf("%w: nil board", ttt.ErrInvalidBoard)
	}
	if !mover.Valid() {
		return Result{Move: NoMove}, fmt.Errorf("%w: %v", ttt.ErrInvalidPlayer, mover)
	}

	start := time.Now()
	moves := board.EmptyCells()
	e.logger.Debug().Str("board", board.Notation()).Stringer("mover", mover).
		Int("candidates", len(moves)).Msg("finding best move")

	var (
		candidates []Candidate
		stats      Stats
		err        error
	)

	switch {
	case len(moves) == 0:
	case e.parallel:
		candidates, stats, err = e.dispatch(ctx, board, mover, moves)
	default:
		candidates, stats, err = e.sequential(ctx, board, mover, moves)
	}

	if err != nil {
		e.logger.Debug().Err(err).Msg("move selection failed")
		return Result{Move: NoMove}, err
	}

	result := choose(candidates, mover)
	result.Stats = stats
	result.Stats.Duration = time.Since(start)

	e.logger.Debug().Int("move", result.Move).Float64("score", result.Score).
		Uint64("iterations", result.Stats.Nodes).Int("maxdepth", result.Stats.MaxDepth).
		Msg("best move found")
	e.listener.invokeStop(result)
	return result, nil
}

func (e *Engine) sequential(ctx context.Context, board *ttt.Board, mover ttt.Player, moves []int) ([]Candidate, Stats, error) {
	candidates := make([]Candidate, 0, len(moves))
	stats := Stats{}
	s := e.newSearcher(ctx, board.Clone())

	err := guard(func() error {
		for _, move := range moves {
			s.stats = Stats{}
			value, err := s.candidate(move, mover)
			stats.merge(s.stats)
			if err != nil {
				return err
			}

			candidates = append(candidates, Candidate{Move: move, Score: value})
			e.reportCandidate(CandidateStats{
				Candidate: Candidate{Move: move, Score: value},
				Done:      len(candidates),
				Total:     len(moves),
				Stats:     s.stats,
			})
		}
		return nil
	})

	return candidates, stats, err
}

// dispatch searches every candidate on a separate goroutine, each with its own
// board copy and statistics. Results are merged after all workers are done,
// in board order. The first failure cancels the remaining workers.
func (e *Engine) dispatch(ctx context.Context, board *ttt.Board, mover ttt.Player, moves []int) ([]Candidate, Stats, error) {
	candidates := make([]Candidate, len(moves))
	workerStats := make([]Stats, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.limits.NThreads, 1))

	var (
		mu   sync.Mutex
		done int
	)

	for i, move := range moves {
		g.Go(func() error {
			s := e.newSearcher(gctx, board.Clone())
			err := guard(func() error {
				value, err := s.candidate(move, mover)
				candidates[i] = Candidate{Move: move, Score: value}
				return err
			})
			workerStats[i] = s.stats
			if err != nil {
				e.logger.Debug().Err(err).Int("move", move).Msg("worker failed")
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			done++
			e.reportCandidate(CandidateStats{
				Candidate: candidates[i],
				Done:      done,
				Total:     len(moves),
				Stats:     s.stats,
			})
			return nil
		})
	}

	err := g.Wait()
	stats := Stats{}
	for i := range workerStats {
		stats.merge(workerStats[i])
	}
	if err != nil {
		return nil, stats, err
	}
	return candidates, stats, nil
}

func (e *Engine) reportCandidate(stats CandidateStats) {
	e.logger.Debug().Int("move", stats.Move).Float64("value", stats.Score).
		Int("maxdepth", stats.Stats.MaxDepth).Uint64("nodes", stats.Stats.Nodes).
		Msg("candidate searched")
	e.listener.invokeCandidate(stats)
}

// choose picks the extremal candidate for the mover, first found wins ties
func choose(candidates []Candidate, mover ttt.Player) Result {
	result := Result{Move: NoMove, Candidates: candidates}
	for i, c := range candidates {
		better := c.Score < result.Score
		if mover.Maximizing() {
			better = c.Score > result.Score
		}
		if i == 0 || better {
			result.Move = c.Move
			result.Score = c.Score
		}
	}
	return result
}
