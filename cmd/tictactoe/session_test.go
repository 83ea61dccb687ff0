package main

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func alphaBeta() *minimax.Engine {
	return minimax.New(minimax.WithVariant(minimax.VariantAlphaBeta, 0, 1))
}

func TestSessionHumanVsHuman(t *testing.T) {
	s := NewSession(3, ModeHumanVsHuman, alphaBeta())
	for _, i := range []int{0, 3, 1, 4, 2} {
		require.NoError(t, s.Play(i))
	}
	assert.Equal(t, ttt.OutcomeCrossWon, s.Outcome())
	assert.Equal(t, 2, s.LastMove())
	assert.ErrorIs(t, s.Play(8), ErrGameOver)
	assert.Nil(t, s.LastResult())
}

func TestSessionRejectsIllegalMoves(t *testing.T) {
	s := NewSession(3, ModeHumanVsHuman, alphaBeta())
	require.NoError(t, s.Play(4))
	assert.ErrorIs(t, s.Play(4), ttt.ErrOccupied)
	assert.ErrorIs(t, s.Play(9), ttt.ErrOutOfBounds)
	assert.Equal(t, ttt.Circle, s.Turn())
}

func TestSessionHumanVsComputer(t *testing.T) {
	s := NewSession(3, ModeHumanVsComputer, alphaBeta())
	require.NoError(t, s.Play(0))
	assert.True(t, s.ComputerToMove())
	assert.ErrorIs(t, s.Play(1), ErrNotYourTurn)

	var moves []int
	require.NoError(t, s.Respond(context.Background(), func(r minimax.Result) {
		moves = append(moves, r.Move)
	}))
	require.Len(t, moves, 1)
	// The only non-losing answer to a corner opening is the center
	assert.Equal(t, 4, moves[0])
	assert.Equal(t, ttt.Cross, s.Turn())
	require.NotNil(t, s.LastResult())
	assert.Positive(t, s.LastResult().Iterations())
}

func TestSessionComputerPlaysCross(t *testing.T) {
	s := NewSession(3, ModeHumanVsComputer, alphaBeta())
	s.SetMode(ModeHumanVsComputer, ttt.Circle)
	assert.True(t, s.ComputerToMove())
	require.NoError(t, s.Respond(context.Background(), nil))
	assert.Equal(t, ttt.Circle, s.Turn())
	assert.Len(t, s.Board().EmptyCells(), 8)
}

func TestSessionComputerVsComputer(t *testing.T) {
	s := NewSession(3, ModeComputerVsComputer, alphaBeta())
	n := 0
	require.NoError(t, s.Respond(context.Background(), func(minimax.Result) { n++ }))
	assert.Equal(t, 9, n)
	assert.Equal(t, ttt.OutcomeDraw, s.Outcome())

	_, err := s.ComputerMove(context.Background())
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSessionResetClampsSize(t *testing.T) {
	s := NewSession(1, ModeHumanVsHuman, alphaBeta())
	assert.Equal(t, ttt.MinSize, s.Board().Size())
	s.Reset(42)
	assert.Equal(t, ttt.MaxSize, s.Board().Size())
	assert.Equal(t, minimax.NoMove, s.LastMove())
	assert.Equal(t, ttt.Cross, s.Turn())
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeHumanVsHuman, ModeHumanVsComputer, ModeComputerVsComputer} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMode("pvp")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
