package study

import (
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/tutor"
)

// ReprocessMsg asks the app to process the deck again from scratch.
type ReprocessMsg struct {
	Path string
}

// feedbackMsg carries generated feedback for the attempt it was
// requested in.
type feedbackMsg struct {
	attempt  int
	feedback session.Feedback
}

type tutorReplyMsg struct {
	reply tutor.Reply
}

type suggestionsMsg struct {
	items []string
}

type exportMsg struct {
	paths []string
	err   error
}
