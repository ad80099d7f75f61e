package session

// WeakArea is a topic the learner struggled with.
type WeakArea struct {
	Area          string
	Description   string
	RelatedSlides []int
}

// Feedback is remedial guidance derived from the ledger.
type Feedback struct {
	Analysis        string
	WeakAreas       []WeakArea
	Recommendations []string

	// Degraded marks generic feedback produced when generation failed.
	Degraded bool
}
