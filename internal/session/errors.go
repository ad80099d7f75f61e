package session

import "errors"

var (
	// ErrNotLoaded is returned by operations that need a quiz set before
	// one has been loaded.
	ErrNotLoaded = errors.New("no quiz set loaded")

	// ErrInvalidQuizSet is returned by Load for a set with no stages or
	// one that fails validation.
	ErrInvalidQuizSet = errors.New("invalid quiz set")

	// ErrAtFinalStage is returned by Advance once every stage is done.
	ErrAtFinalStage = errors.New("already past the final stage")

	// ErrAtFirstStage is returned by Retreat on the first stage.
	ErrAtFirstStage = errors.New("already at the first stage")

	// ErrQuestionNotFound is returned when a submission names a question
	// outside the current stage.
	ErrQuestionNotFound = errors.New("question not in current stage")

	// ErrAlreadyAnswered is returned for a second submission to the same
	// question.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrAnswerMismatch is returned when the answer does not fit the
	// question: a choice for a text question, text for multiple choice,
	// or an option index out of range.
	ErrAnswerMismatch = errors.New("answer does not fit question")
)
