package bench

import (
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// summarize aggregates finished games, wall is the total arena run time
func summarize(records []GameRecord, wall time.Duration) VersusSummaryInfo {
	summary := VersusSummaryInfo{
		TotalGames: len(records),
		TotalTime:  wall,
		P1Wins:     lo.CountBy(records, func(r GameRecord) bool { return r.Result == VersusPl1Win }),
		P2Wins:     lo.CountBy(records, func(r GameRecord) bool { return r.Result == VersusPl2Win }),
		Draws:      lo.CountBy(records, func(r GameRecord) bool { return r.Result == VersusDraw }),
		TotalIterations: lo.SumBy(records, func(r GameRecord) uint64 {
			return r.Iterations
		}),
	}
	summary.FirstToMoveWins = lo.CountBy(records, func(r GameRecord) bool {
		return r.Result != VersusDraw && r.Winner.Maximizing()
	})
	summary.SecondToMoveWins = summary.P1Wins + summary.P2Wins - summary.FirstToMoveWins

	if len(records) == 0 {
		return summary
	}

	moves := lo.Map(records, func(r GameRecord, _ int) float64 { return float64(len(r.Moves)) })
	durations := lo.Map(records, func(r GameRecord, _ int) float64 { return float64(r.Duration) })
	iterations := lo.Map(records, func(r GameRecord, _ int) float64 { return float64(r.Iterations) })

	summary.AvgMoves = stat.Mean(moves, nil)
	meanTime, stdTime := meanStdDev(durations)
	summary.AvgGameTime = time.Duration(meanTime)
	summary.StdDevGameTime = time.Duration(stdTime)
	summary.IterationsPerGame, summary.StdDevIterations = meanStdDev(iterations)
	return summary
}

// The sample standard deviation is undefined for a single game, report 0
func meanStdDev(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
