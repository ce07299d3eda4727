package assistant

import "time"

// Stats is derived from the session counters on every call. HasAverages is false,
// and the averages zero, until there is at least one interaction and some elapsed
// time.
type Stats struct {
	Duration             time.Duration
	Interactions         int
	LastResponse         time.Duration
	TotalTokens          int
	HistoryTurns         int
	TokensPerMinute      float64
	TokensPerInteraction float64
	HasAverages          bool
}

func (s *Suite) Stats() Stats {
	s.mu.Lock()
	st := Stats{
		Duration:     s.now().Sub(s.started),
		Interactions: s.interactions,
		LastResponse: s.lastResponse,
		TotalTokens:  s.totalTokens,
	}
	s.mu.Unlock()
	st.HistoryTurns = s.history.Len()

	minutes := st.Duration.Minutes()
	if st.Interactions > 0 && minutes > 0 {
		st.HasAverages = true
		st.TokensPerMinute = float64(st.TotalTokens) / minutes
		st.TokensPerInteraction = float64(st.TotalTokens) / float64(st.Interactions)
	}
	return st
}
