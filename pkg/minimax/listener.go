package minimax

type CandidateStats struct {
	Candidate
	// Number of candidates finished so far (including this one) and in total
	Done  int
	Total int
	// Statistics of this candidate's sub-search only
	Stats Stats
}

// Listener function callback
type ListenerFunc[T any] func(T)

type StatsListener struct {
	// called after every candidate first move has been searched
	onCandidate ListenerFunc[CandidateStats]

	// called once the move was chosen
	onStop ListenerFunc[Result]
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

// Attach a callback for finished candidates. In parallel mode it is called from
// the worker goroutines, but never concurrently.
func (listener *StatsListener) OnCandidate(onCandidate ListenerFunc[CandidateStats]) *StatsListener {
	listener.onCandidate = onCandidate
	return listener
}

// Attach 'on search end' callback, not called when the search fails
func (listener *StatsListener) OnStop(onStop ListenerFunc[Result]) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeCandidate(stats CandidateStats) {
	if listener != nil && listener.onCandidate != nil {
		listener.onCandidate(stats)
	}
}

func (listener *StatsListener) invokeStop(result Result) {
	if listener != nil && listener.onStop != nil {
		listener.onStop(result)
	}
}
