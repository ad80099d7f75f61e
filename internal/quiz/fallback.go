package quiz

// Fallback returns the placeholder set used when generation fails: three
// stages, the first holding a single question that explains the failure.
// It always passes Validate.
func Fallback() Set {
	return Set{
		Fallback: true,
		Stages: []Stage{
			{
				Level: LevelBasic,
				Title: LevelBasic.Title(),
				Questions: []Question{{
					ID:          1,
					Prompt:      "Quiz generation failed. Press ctrl+r to reprocess the deck and try again.",
					SourceSlide: 1,
					Explanation: "The quiz could not be generated from this deck.",
					Body: &MultipleChoice{
						Options:      []string{"Option 1", "Option 2", "Option 3", "Option 4"},
						CorrectIndex: 0,
					},
				}},
			},
			{Level: LevelApplied, Title: LevelApplied.Title()},
			{Level: LevelAdvanced, Title: LevelAdvanced.Title()},
		},
	}
}
