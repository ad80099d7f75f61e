package session

// Progress counts answered questions in the current stage.
type Progress struct {
	Answered int
	Total    int
}

// Fraction returns Answered/Total, or 0 for an empty stage.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}

// Progress reports progress through the current stage. An empty or
// complete session reports 0/0.
func (s *Session) Progress() Progress {
	st, ok := s.Stage()
	if !ok {
		return Progress{}
	}
	p := Progress{Total: len(st.Questions)}
	for _, q := range st.Questions {
		if _, done := s.answers[q.ID]; done {
			p.Answered++
		}
	}
	return p
}

// Stats summarizes the whole session.
type Stats struct {
	TotalQuestions int
	Answered       int
	Wrong          int
}

// Accuracy returns the share of answered questions not in the ledger, or
// 0 when nothing has been answered. Essays count as answered and not
// wrong.
func (st Stats) Accuracy() float64 {
	if st.Answered == 0 {
		return 0
	}
	return float64(st.Answered-st.Wrong) / float64(st.Answered)
}

// Stats reports totals across every stage.
func (s *Session) Stats() Stats {
	return Stats{
		TotalQuestions: s.set.Count(),
		Answered:       len(s.answers),
		Wrong:          len(s.ledger),
	}
}
