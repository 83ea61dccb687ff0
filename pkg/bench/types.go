package bench

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

// Agent chooses moves, *minimax.Engine is the usual implementation
type Agent interface {
	BestMove(ctx context.Context, board *ttt.Board, mover ttt.Player) (minimax.Result, error)
}

type Contestant struct {
	Name  string
	Agent Agent
}

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "player1"
	case VersusPl2Win:
		return "player2"
	}
	return "draw"
}

// Who gets X (and so moves first) in each game
type FirstMovePolicy int

const (
	// Coin flip per game
	FirstMoveRandom FirstMovePolicy = iota
	// Player 1 begins the even games, player 2 the odd ones
	FirstMoveAlternate
	// Player 1 always begins
	FirstMovePlayer1
)

var ErrUnknownFirstMove = errors.New("bench: unknown first move policy")

func (p FirstMovePolicy) String() string {
	switch p {
	case FirstMoveAlternate:
		return "alternate"
	case FirstMovePlayer1:
		return "player1"
	}
	return "random"
}

func ParseFirstMovePolicy(s string) (FirstMovePolicy, error) {
	for _, p := range []FirstMovePolicy{FirstMoveRandom, FirstMoveAlternate, FirstMovePlayer1} {
		if s == p.String() {
			return p, nil
		}
	}
	if s == "" {
		return FirstMoveRandom, nil
	}
	return FirstMoveRandom, fmt.Errorf("%w: %q", ErrUnknownFirstMove, s)
}

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return int(vas.P1Wins() + vas.P2Wins() + vas.Draws())
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

func (vas *VersusArenaStats) reset() {
	atomic.StoreUint32(&vas.p1Wins, 0)
	atomic.StoreUint32(&vas.p2Wins, 0)
	atomic.StoreUint32(&vas.draws, 0)
	atomic.StoreUint32(&vas.firstToMoveWins, 0)
	atomic.StoreUint32(&vas.secondToMoveWins, 0)
}

func (vas *VersusArenaStats) record(game GameRecord) {
	switch game.Result {
	case VersusDraw:
		atomic.AddUint32(&vas.draws, 1)
		return
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	}

	if game.Winner == ttt.Cross {
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	} else {
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}
}

// GameRecord holds the statistics of a single finished game
type GameRecord struct {
	Result VersusMatchResult
	// Winning mark, Empty on a draw
	Winner ttt.Player
	// Whether player 1 had X
	P1First    bool
	Moves      []int
	Iterations uint64
	Duration   time.Duration
}

type VersusWorkerInfo struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []int
	Board         *ttt.Board
	P1Wins        int
	P2Wins        int
	Draws         int
	P1Name        string
	P2Name        string
}

type VersusSummaryInfo struct {
	TotalGames        int           `json:"total_games" yaml:"total_games"`
	PlannedGames      int           `json:"planned_games" yaml:"planned_games"`
	BoardSize         int           `json:"board_size" yaml:"board_size"`
	P1Wins            int           `json:"player1_wins" yaml:"player1_wins"`
	P2Wins            int           `json:"player2_wins" yaml:"player2_wins"`
	FirstToMoveWins   int           `json:"first_to_move_wins" yaml:"first_to_move_wins"`
	SecondToMoveWins  int           `json:"second_to_move_wins" yaml:"second_to_move_wins"`
	Draws             int           `json:"draws" yaml:"draws"`
	Workers           int           `json:"workers" yaml:"workers"`
	P1Name            string        `json:"player1_name" yaml:"player1_name"`
	P2Name            string        `json:"player2_name" yaml:"player2_name"`
	AvgMoves          float64       `json:"avg_moves" yaml:"avg_moves"`
	TotalTime         time.Duration `json:"total_time" yaml:"total_time"`
	AvgGameTime       time.Duration `json:"avg_game_time" yaml:"avg_game_time"`
	StdDevGameTime    time.Duration `json:"stddev_game_time" yaml:"stddev_game_time"`
	TotalIterations   uint64        `json:"total_iterations" yaml:"total_iterations"`
	IterationsPerGame float64       `json:"iterations_per_game" yaml:"iterations_per_game"`
	StdDevIterations  float64       `json:"stddev_iterations" yaml:"stddev_iterations"`
}

// Percent of the finished games, 0 if none finished
func (s VersusSummaryInfo) Percent(n int) float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return 100 * float64(n) / float64(s.TotalGames)
}
