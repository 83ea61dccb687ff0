package ttt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateTerminal(t *testing.T) {
	e := Evaluate(mustParse(t, "XXX/OO./..."))
	assert.Equal(t, OutcomeCrossWon, e.Outcome)
	assert.Equal(t, Score{Cross: WinScore, Circle: -WinScore}, e.Score)

	e = Evaluate(mustParse(t, "XX./OOO/X.."))
	assert.Equal(t, OutcomeCircleWon, e.Outcome)
	assert.Equal(t, -WinScore, e.Score.Diff()/2)

	e = Evaluate(mustParse(t, "XOX/OXO/OXO"))
	assert.Equal(t, OutcomeDraw, e.Outcome)
	assert.Zero(t, e.Score.Diff())
}

func TestEvaluateEmptyBoard(t *testing.T) {
	e := Evaluate(mustParse(t, ".../.../..."))
	assert.Equal(t, OutcomeNone, e.Outcome)
	assert.Equal(t, Score{}, e.Score)
}

func TestEvaluateSingleMark(t *testing.T) {
	// Center X on 3x3: row, column and both diagonals hold one mark each,
	// all unblocked. Each contributes 1 + 2^1 * 1/3.
	e := Evaluate(mustParse(t, ".../.X./..."))
	assert.Equal(t, OutcomeNone, e.Outcome)
	assert.InDelta(t, 4*(1+2.0/3), e.Score.Cross, 1e-9)
	assert.Zero(t, e.Score.Circle)
}

func TestEvaluateNearWinDominates(t *testing.T) {
	// X has two in the top row (unblocked, one move from winning)
	e := Evaluate(mustParse(t, "XX./.O./..."))
	assert.Greater(t, e.Score.Cross, 1000.0)
	assert.Greater(t, e.Score.Diff(), 0.0)

	// Same marks, but the top row is blocked
	blocked := Evaluate(mustParse(t, "XXO/.O./..."))
	assert.Less(t, blocked.Score.Cross, e.Score.Cross)
}

func TestEvaluateBlockedLineHasNoBonus(t *testing.T) {
	// 4x4 with one X and one O in the same row: row bonus is gone for both,
	// the columns stay unblocked
	e := NewEvaluator(func(count, size int) float64 { return 100 * float64(count) }).
		Evaluate(mustParse(t, "XO../..../..../...."))

	// X: row(1, blocked) + column(1 + 100) + main diagonal(1 + 100)
	assert.InDelta(t, 203, e.Score.Cross, 1e-9)
	// O: row(1, blocked) + column(1 + 100)
	assert.InDelta(t, 102, e.Score.Circle, 1e-9)
}

func TestDefaultLineWeight(t *testing.T) {
	assert.Equal(t, math.Pow(10, 3), DefaultLineWeight(2, 3))
	assert.Equal(t, math.Pow(10, 5), DefaultLineWeight(4, 5))
	assert.Zero(t, DefaultLineWeight(0, 4))
	assert.InDelta(t, 4*2.0/5, DefaultLineWeight(2, 5), 1e-9)
	assert.Less(t, DefaultLineWeight(2, 5), DefaultLineWeight(3, 5))
}

func BenchmarkEvaluate(b *testing.B) {
	board, _ := NewBoard(MaxSize)
	for i := 0; i < board.Len(); i += 7 {
		board.Set(i, Player(1+i%2))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Evaluate(board)
	}
}
