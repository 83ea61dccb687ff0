package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

var (
	ErrGameOver    = errors.New("the game is over")
	ErrNotYourTurn = errors.New("it's the computer's turn")
	ErrUnknownMode = errors.New("unknown game mode")
)

type Mode int

const (
	ModeHumanVsHuman Mode = iota
	ModeHumanVsComputer
	ModeComputerVsComputer
)

func (m Mode) String() string {
	switch m {
	case ModeHumanVsComputer:
		return "hvc"
	case ModeComputerVsComputer:
		return "cvc"
	}
	return "hvh"
}

func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeHumanVsHuman, ModeHumanVsComputer, ModeComputerVsComputer} {
		if s == m.String() {
			return m, nil
		}
	}
	return ModeHumanVsHuman, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Session is a single game, X always moves first
type Session struct {
	board  *ttt.Board
	turn   ttt.Player
	mode   Mode
	human  ttt.Player
	engine *minimax.Engine
	last   int
	// Result of the most recent computer move
	lastResult *minimax.Result
}

func NewSession(size int, mode Mode, engine *minimax.Engine) *Session {
	s := &Session{mode: mode, human: ttt.Cross, engine: engine}
	s.Reset(size)
	return s
}

// Reset starts a new game, the size is clamped to the supported range
func (s *Session) Reset(size int) {
	s.board, _ = ttt.NewBoard(ttt.ClampSize(size))
	s.turn = ttt.Cross
	s.last = minimax.NoMove
	s.lastResult = nil
}

func (s *Session) Board() *ttt.Board           { return s.board }
func (s *Session) Turn() ttt.Player            { return s.turn }
func (s *Session) Mode() Mode                  { return s.mode }
func (s *Session) Human() ttt.Player           { return s.human }
func (s *Session) Engine() *minimax.Engine     { return s.engine }
func (s *Session) LastMove() int               { return s.last }
func (s *Session) LastResult() *minimax.Result { return s.lastResult }
func (s *Session) Outcome() ttt.Outcome        { return s.board.Outcome() }
func (s *Session) SetEngine(e *minimax.Engine) { s.engine = e }

// SetMode changes who plays, 'human' is the human's side in hvc mode
func (s *Session) SetMode(mode Mode, human ttt.Player) {
	s.mode = mode
	if human.Valid() {
		s.human = human
	}
}

// ComputerToMove reports whether the side to move is played by the engine
func (s *Session) ComputerToMove() bool {
	switch s.mode {
	case ModeComputerVsComputer:
		return true
	case ModeHumanVsComputer:
		return s.turn != s.human
	}
	return false
}

// Play makes a human move
func (s *Session) Play(i int) error {
	if s.Outcome().Terminal() {
		return ErrGameOver
	}
	if s.ComputerToMove() {
		return ErrNotYourTurn
	}
	return s.place(i)
}

// ComputerMove lets the engine play for the side to move, regardless of the mode
func (s *Session) ComputerMove(ctx context.Context) (minimax.Result, error) {
	if s.Outcome().Terminal() {
		return minimax.Result{Move: minimax.NoMove}, ErrGameOver
	}
	result, err := s.engine.BestMove(ctx, s.board, s.turn)
	if err != nil {
		return result, err
	}
	if err := s.place(result.Move); err != nil {
		return result, err
	}
	s.lastResult = &result
	return result, nil
}

// Respond plays computer moves while it is the computer's turn and the game
// isn't over, calling 'after' after each of them
func (s *Session) Respond(ctx context.Context, after func(minimax.Result)) error {
	for s.ComputerToMove() && !s.Outcome().Terminal() {
		result, err := s.ComputerMove(ctx)
		if err != nil {
			return err
		}
		if after != nil {
			after(result)
		}
	}
	return nil
}

func (s *Session) place(i int) error {
	if err := s.board.MakeMove(i, s.turn); err != nil {
		return err
	}
	s.last = i
	s.turn = s.turn.Opponent()
	return nil
}
