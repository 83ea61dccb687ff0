package ttt

import "math"

// Magnitude of the static score of a finished game
const WinScore float64 = 100000

// LineWeightFn scores an unblocked line holding 'count' marks of one player
// on a board of given size. Must grow with count, near-wins must dominate.
type LineWeightFn func(count, size int) float64

// DefaultLineWeight: 10^size for a line one move from completion,
// otherwise 2^count * (count / size)
func DefaultLineWeight(count, size int) float64 {
	if count == size-1 {
		return math.Pow(10, float64(size))
	}
	return math.Pow(2, float64(count)) * float64(count) / float64(size)
}

type Score struct {
	Cross  float64
	Circle float64
}

// Of returns the score of the given player
func (s Score) Of(p Player) float64 {
	if p == Circle {
		return s.Circle
	}
	return s.Cross
}

// Diff is the score from the maximizing (Cross) player's perspective
func (s Score) Diff() float64 {
	return s.Cross - s.Circle
}

type Evaluation struct {
	Score   Score
	Outcome Outcome
}

type Evaluator struct {
	weight LineWeightFn
}

// NewEvaluator creates static evaluator, nil weight means DefaultLineWeight
func NewEvaluator(weight LineWeightFn) *Evaluator {
	if weight == nil {
		weight = DefaultLineWeight
	}
	return &Evaluator{weight: weight}
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate scores the board with DefaultLineWeight
func Evaluate(b *Board) Evaluation {
	return defaultEvaluator.Evaluate(b)
}

// Evaluate scores the board in a single pass. A finished game gets
// +-WinScore (sign by winner) and its outcome. Otherwise each player gets the
// sum of its marks over every line plus a weighted bonus for each line
// free of the opponent's marks.
func (e *Evaluator) Evaluate(b *Board) Evaluation {
	tally := newLineTally(b.size)
	outcome := tally.scan(b.cells)

	switch outcome {
	case OutcomeCrossWon:
		return Evaluation{Score: Score{Cross: WinScore, Circle: -WinScore}, Outcome: outcome}
	case OutcomeCircleWon:
		return Evaluation{Score: Score{Cross: -WinScore, Circle: WinScore}, Outcome: outcome}
	case OutcomeDraw:
		return Evaluation{Outcome: outcome}
	}

	return Evaluation{
		Score: Score{
			Cross:  e.playerScore(tally, Cross),
			Circle: e.playerScore(tally, Circle),
		},
		Outcome: OutcomeNone,
	}
}

func (e *Evaluator) playerScore(tally *lineTally, p Player) float64 {
	own, opp := p.index(), p.Opponent().index()
	total := 0.0

	line := func(count, blockers int) {
		total += float64(count)
		if blockers == 0 {
			total += e.weight(count, tally.size)
		}
	}

	for i := 0; i < tally.size; i++ {
		line(tally.rows[own][i], tally.rows[opp][i])
		line(tally.cols[own][i], tally.cols[opp][i])
	}
	for d := 0; d < 2; d++ {
		line(tally.diags[own][d], tally.diags[opp][d])
	}
	return total
}
