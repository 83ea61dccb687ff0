package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

/*
Arena benchmark subpackage, plays a series of computer vs computer games
between two move selectors (possibly the same one) and collects the results.
*/

var (
	ErrIllegalMove = errors.New("bench: agent returned an illegal move")
	ErrNotStarted  = errors.New("bench: arena was not started")
)

type SeedGeneratorFnType func() uint64

var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// Set custom seed generator function for the first move coin flips,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

type VersusArena struct {
	VersusArenaStats
	Player1   Contestant
	Player2   Contestant
	Size      int
	NGames    uint
	NThreads  uint
	FirstMove FirstMovePolicy
	ctx       context.Context
	logger    zerolog.Logger

	listener *syncListener
	group    *errgroup.Group
	start    time.Time
	mu       sync.Mutex
	records  []GameRecord
}

func NewVersusArena(size int, player1, player2 Contestant) *VersusArena {
	return &VersusArena{
		Player1:   player1,
		Player2:   player2,
		Size:      size,
		NGames:    100,
		NThreads:  2,
		FirstMove: FirstMoveRandom,
		ctx:       context.Background(),
		logger:    log.Logger,
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) WithLogger(logger zerolog.Logger) *VersusArena {
	va.logger = logger
	return va
}

func (va *VersusArena) Setup(nGames uint, nThreads uint, firstMove FirstMovePolicy) {
	va.NGames = nGames
	va.NThreads = max(nThreads, 1)
	va.FirstMove = firstMove
}

// Start distributes the games equally between worker goroutines and returns
// immediately, call Wait for the summary
func (va *VersusArena) Start(listener ListenerLike) {
	if listener == nil {
		listener = DefaultListener{}
	}
	va.listener = &syncListener{listener: listener}
	va.records = make([]GameRecord, 0, va.NGames)
	va.VersusArenaStats.reset()
	va.start = time.Now()

	va.listener.OnStart(VersusSummaryInfo{
		PlannedGames: int(va.NGames),
		BoardSize:    va.Size,
		Workers:      int(va.NThreads),
		P1Name:       va.Player1.Name,
		P2Name:       va.Player2.Name,
	})

	g, ctx := errgroup.WithContext(va.ctx)
	va.group = g

	threads := max(va.NThreads, 1)
	nGames := va.NGames / threads
	rest := va.NGames % threads
	offset := uint(0)
	for i := range threads {
		count := nGames
		if rest > 0 {
			count++
			rest--
		}
		first := offset
		offset += count
		g.Go(func() error {
			return va.worker(ctx, int(i), int(first), int(count))
		})
	}
}

// Wait blocks until all games are played or one of them failed
func (va *VersusArena) Wait() (VersusSummaryInfo, error) {
	if va.group == nil {
		return VersusSummaryInfo{}, ErrNotStarted
	}

	err := va.group.Wait()
	summary := va.Summary()
	if err != nil {
		va.logger.Error().Err(err).Int("finished", summary.TotalGames).Msg("arena stopped")
		return summary, err
	}

	va.listener.OnEnd(summary)
	return summary, nil
}

// Run is Start followed by Wait
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	va.Start(listener)
	return va.Wait()
}

// Summary of the games finished so far
func (va *VersusArena) Summary() VersusSummaryInfo {
	va.mu.Lock()
	records := make([]GameRecord, len(va.records))
	copy(records, va.records)
	va.mu.Unlock()

	summary := summarize(records, time.Since(va.start))
	summary.PlannedGames = int(va.NGames)
	summary.BoardSize = va.Size
	summary.Workers = int(va.NThreads)
	summary.P1Name = va.Player1.Name
	summary.P2Name = va.Player2.Name
	return summary
}

// Finished games, in completion order
func (va *VersusArena) Records() []GameRecord {
	va.mu.Lock()
	defer va.mu.Unlock()
	records := make([]GameRecord, len(va.records))
	copy(records, va.records)
	return records
}

// p1First decides who plays X in the game with given global index
func (va *VersusArena) p1First(r *rand.Rand, game int) bool {
	switch va.FirstMove {
	case FirstMoveAlternate:
		return game%2 == 0
	case FirstMovePlayer1:
		return true
	}
	return r.Intn(2) == 0
}

func (va *VersusArena) worker(ctx context.Context, id, first, nGames int) error {
	r := rand.New(rand.NewSource(SeedGeneratorFn() + uint64(id)))
	local := VersusArenaStats{}

	for i := range nGames {
		if err := ctx.Err(); err != nil {
			return err
		}

		p1First := va.p1First(r, first+i)
		game, err := va.playGame(ctx, id, nGames, i, p1First)
		if err != nil {
			return fmt.Errorf("worker %d, game %d: %w", id, i, err)
		}

		va.VersusArenaStats.record(game)
		local.record(game)
		va.mu.Lock()
		va.records = append(va.records, game)
		finished := len(va.records)
		va.mu.Unlock()

		va.logger.Debug().Int("worker", id).Stringer("result", game.Result).
			Int("moves", len(game.Moves)).Uint64("iterations", game.Iterations).
			Dur("duration", game.Duration).Msg("game finished")

		va.listener.OnFinishedGame(VersusWorkerInfo{
			WorkerID:      id,
			NGames:        int(va.NGames),
			FinishedGames: finished,
			GameMoveNum:   len(game.Moves),
			Moves:         game.Moves,
			P1Wins:        va.P1Wins(),
			P2Wins:        va.P2Wins(),
			Draws:         va.Draws(),
			P1Name:        va.Player1.Name,
			P2Name:        va.Player2.Name,
		})
	}

	va.listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: local.Total(),
		P1Wins:        local.P1Wins(),
		P2Wins:        local.P2Wins(),
		Draws:         local.Draws(),
		P1Name:        va.Player1.Name,
		P2Name:        va.Player2.Name,
	})
	return nil
}

// playGame plays a single game, X always moves first
func (va *VersusArena) playGame(ctx context.Context, workerId, nGames, gameNum int, p1First bool) (GameRecord, error) {
	start := time.Now()
	board, err := ttt.NewBoard(va.Size)
	if err != nil {
		return GameRecord{}, err
	}

	players := map[ttt.Player]Contestant{ttt.Cross: va.Player1, ttt.Circle: va.Player2}
	if !p1First {
		players[ttt.Cross], players[ttt.Circle] = va.Player2, va.Player1
	}

	game := GameRecord{P1First: p1First, Moves: make([]int, 0, board.Len())}
	turn := ttt.Cross
	outcome := ttt.OutcomeNone

	for !outcome.Terminal() {
		result, err := players[turn].Agent.BestMove(ctx, board, turn)
		if err != nil {
			return game, fmt.Errorf("%s: %w", players[turn].Name, err)
		}
		if result.Move == minimax.NoMove {
			break
		}
		if err := board.MakeMove(result.Move, turn); err != nil {
			return game, fmt.Errorf("%w: %s played %d: %w", ErrIllegalMove, players[turn].Name, result.Move, err)
		}

		game.Moves = append(game.Moves, result.Move)
		game.Iterations += result.Iterations()
		outcome = board.Outcome()
		turn = turn.Opponent()

		va.listener.OnMoveMade(VersusWorkerInfo{
			WorkerID:      workerId,
			NGames:        nGames,
			FinishedGames: gameNum,
			GameMoveNum:   len(game.Moves),
			Moves:         game.Moves,
			Board:         board.Clone(),
			P1Name:        va.Player1.Name,
			P2Name:        va.Player2.Name,
		})
	}

	game.Duration = time.Since(start)
	game.Winner = outcome.Winner()
	switch {
	case game.Winner == ttt.Empty:
		game.Result = VersusDraw
	case (game.Winner == ttt.Cross) == p1First:
		game.Result = VersusPl1Win
	default:
		game.Result = VersusPl2Win
	}
	return game, nil
}
