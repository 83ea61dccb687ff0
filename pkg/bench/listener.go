package bench

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
)

// Arena event callbacks, the arena serializes the calls so an implementation
// doesn't need its own locking
type ListenerLike interface {
	OnStart(summary VersusSummaryInfo)
	OnMoveMade(stats VersusWorkerInfo)
	OnFinishedGame(stats VersusWorkerInfo)
	OnFinishedWork(stats VersusWorkerInfo)
	OnEnd(summary VersusSummaryInfo)
}

type DefaultListener struct{}

func (DefaultListener) OnStart(VersusSummaryInfo)       {}
func (DefaultListener) OnMoveMade(VersusWorkerInfo)     {}
func (DefaultListener) OnFinishedGame(VersusWorkerInfo) {}
func (DefaultListener) OnFinishedWork(VersusWorkerInfo) {}
func (DefaultListener) OnEnd(VersusSummaryInfo)         {}

type syncListener struct {
	mu       sync.Mutex
	listener ListenerLike
}

func (s *syncListener) OnStart(summary VersusSummaryInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener.OnStart(summary)
}

func (s *syncListener) OnMoveMade(stats VersusWorkerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener.OnMoveMade(stats)
}

func (s *syncListener) OnFinishedGame(stats VersusWorkerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener.OnFinishedGame(stats)
}

func (s *syncListener) OnFinishedWork(stats VersusWorkerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener.OnFinishedWork(stats)
}

func (s *syncListener) OnEnd(summary VersusSummaryInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener.OnEnd(summary)
}

// TerminalListener prints a progress line every tenth of the planned games
// and a colored summary at the end
type TerminalListener struct {
	DefaultListener
	out   *termenv.Output
	every int
}

func NewTerminalListener(w io.Writer) *TerminalListener {
	return &TerminalListener{out: termenv.NewOutput(w)}
}

func (t *TerminalListener) OnStart(summary VersusSummaryInfo) {
	t.every = max(summary.PlannedGames/10, 1)
	fmt.Fprintf(t.out, "%s vs %s: %d games on %dx%d, %d workers\n",
		t.styled(summary.P1Name, termenv.ANSIBlue), t.styled(summary.P2Name, termenv.ANSIRed),
		summary.PlannedGames, summary.BoardSize, summary.BoardSize, summary.Workers)
}

func (t *TerminalListener) OnFinishedGame(stats VersusWorkerInfo) {
	if stats.FinishedGames%t.every != 0 && stats.FinishedGames != stats.NGames {
		return
	}
	fmt.Fprintf(t.out, "[%3d/%d] %s %d, %s %d, draws %d\n",
		stats.FinishedGames, stats.NGames,
		stats.P1Name, stats.P1Wins, stats.P2Name, stats.P2Wins, stats.Draws)
}

func (t *TerminalListener) OnEnd(s VersusSummaryInfo) {
	fmt.Fprintln(t.out, t.out.String("Summary").Bold())
	fmt.Fprintf(t.out, "  %-16s %d (%.1f%%)\n", s.P1Name+" wins", s.P1Wins, s.Percent(s.P1Wins))
	fmt.Fprintf(t.out, "  %-16s %d (%.1f%%)\n", s.P2Name+" wins", s.P2Wins, s.Percent(s.P2Wins))
	fmt.Fprintf(t.out, "  %-16s %d (%.1f%%)\n", "draws", s.Draws, s.Percent(s.Draws))
	fmt.Fprintf(t.out, "  %-16s %d / %d\n", "X / O wins", s.FirstToMoveWins, s.SecondToMoveWins)
	fmt.Fprintf(t.out, "  %-16s %.1f\n", "avg moves", s.AvgMoves)
	fmt.Fprintf(t.out, "  %-16s %v ± %v\n", "game time", s.AvgGameTime, s.StdDevGameTime)
	fmt.Fprintf(t.out, "  %-16s %.0f ± %.0f\n", "iterations", s.IterationsPerGame, s.StdDevIterations)
	fmt.Fprintf(t.out, "  %-16s %v\n", "total time", s.TotalTime)
}

func (t *TerminalListener) styled(s string, c termenv.ANSIColor) termenv.Style {
	return t.out.String(s).Foreground(c).Bold()
}
