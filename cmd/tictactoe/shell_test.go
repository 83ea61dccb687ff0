package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-minimax/pkg/config"
	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

func newTestShell(mode Mode) (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig
	cfg.Engine.Variant = minimax.VariantAlphaBeta.String()
	engine, err := newEngine(&cfg)
	if err != nil {
		panic(err)
	}
	return NewShellController(&buf, NewSession(3, mode, engine), cfg), &buf
}

func TestShellMoveAndResponse(t *testing.T) {
	sc, buf := newTestShell(ModeHumanVsComputer)
	ctx := context.Background()

	require.NoError(t, sc.Execute(ctx, "move 0 0"))
	assert.Contains(t, buf.String(), "computer played 4, iterations:")
	assert.Equal(t, ttt.Cross, sc.session.Turn())

	require.NoError(t, sc.Execute(ctx, "stats"))
	assert.Contains(t, buf.String(), "Result={Move=4")

	assert.ErrorIs(t, sc.Execute(ctx, "move 4"), ttt.ErrOccupied)
	assert.ErrorIs(t, sc.Execute(ctx, "move 3 0"), ttt.ErrOutOfBounds)
	assert.ErrorIs(t, sc.Execute(ctx, "move"), ErrBadCommand)
}

func TestShellCommands(t *testing.T) {
	sc, buf := newTestShell(ModeHumanVsHuman)
	ctx := context.Background()

	require.NoError(t, sc.Execute(ctx, ""))
	require.NoError(t, sc.Execute(ctx, "help"))
	assert.Contains(t, buf.String(), "commands:")

	require.NoError(t, sc.Execute(ctx, "stats"))
	assert.Contains(t, buf.String(), "no computer move yet")

	require.NoError(t, sc.Execute(ctx, "new 4"))
	assert.Equal(t, 4, sc.session.Board().Size())

	require.NoError(t, sc.Execute(ctx, "variant parallel 2"))
	assert.True(t, sc.session.Engine().Parallel())
	assert.Equal(t, 2, sc.session.Engine().Limits().Depth)

	require.NoError(t, sc.Execute(ctx, "depth 3"))
	assert.Equal(t, 3, sc.session.Engine().Limits().Depth)

	require.NoError(t, sc.Execute(ctx, "scoring depth-weighted"))
	assert.Equal(t, minimax.ScoreDepthWeighted, sc.session.Engine().Scoring())

	require.NoError(t, sc.Execute(ctx, "ai"))
	assert.Equal(t, ttt.Circle, sc.session.Turn())

	require.NoError(t, sc.Execute(ctx, "show"))
	assert.Contains(t, buf.String(), "O to move (hvh)")

	assert.ErrorIs(t, sc.Execute(ctx, "variant mcts"), minimax.ErrUnknownVariant)
	assert.ErrorIs(t, sc.Execute(ctx, "scoring random"), minimax.ErrUnknownScoring)
	assert.Equal(t, minimax.ScoreDepthWeighted, sc.session.Engine().Scoring())
	assert.ErrorIs(t, sc.Execute(ctx, "depth -1"), ErrBadCommand)
	assert.ErrorIs(t, sc.Execute(ctx, "mode pvp"), ErrUnknownMode)
	assert.ErrorIs(t, sc.Execute(ctx, "fly"), ErrBadCommand)
	assert.ErrorIs(t, sc.Execute(ctx, `move "0`), ErrBadCommand)
	assert.ErrorIs(t, sc.Execute(ctx, "exit"), errQuit)
}

func TestShellComputerVsComputer(t *testing.T) {
	sc, buf := newTestShell(ModeHumanVsHuman)
	ctx := context.Background()

	require.NoError(t, sc.Execute(ctx, "mode cvc"))
	require.NoError(t, sc.Execute(ctx, "ai"))
	assert.Equal(t, ttt.OutcomeDraw, sc.session.Outcome())
	assert.Contains(t, buf.String(), "game over: draw")

	assert.ErrorIs(t, sc.Execute(ctx, "ai"), ErrGameOver)
}

func TestShellHumanPlaysCircle(t *testing.T) {
	sc, _ := newTestShell(ModeHumanVsHuman)
	require.NoError(t, sc.Execute(context.Background(), "mode hvc o"))
	assert.Equal(t, ttt.Circle, sc.session.Turn())
	assert.Len(t, sc.session.Board().EmptyCells(), 8)
}

func TestBoardRenderer(t *testing.T) {
	board, err := ttt.ParseBoard("X../.O./...")
	require.NoError(t, err)

	out := newBoardRenderer(&bytes.Buffer{}).Render(board, 4)
	assert.Equal(t, " X | 1 | 2 \n-----------\n 3 | O | 5 \n-----------\n 6 | 7 | 8 \n", out)
}
