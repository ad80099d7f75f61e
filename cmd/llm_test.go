package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/studydeck/internal/store"
)

func TestWritePurposeUsage(t *testing.T) {
	var buf bytes.Buffer
	err := writePurposeUsage(&buf, []store.PurposeUsage{
		{Purpose: "quiz", Calls: 2, InputTokens: 1000, OutputTokens: 400, AvgLatencyMs: 900},
		{Purpose: "tutor", Calls: 3, InputTokens: 300, OutputTokens: 150, AvgLatencyMs: 500},
	})

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "PURPOSE")
	assert.Contains(t, out, "quiz")
	assert.Regexp(t, `total\s+5\s+1300\s+550`, out)
}

func TestWriteModelCost(t *testing.T) {
	var buf bytes.Buffer
	err := writeModelCost(&buf, []store.ModelUsage{
		{Model: "claude-haiku-4-5-20251001", Calls: 1, InputTokens: 1_000_000, OutputTokens: 0},
		{Model: "gpt-4o-mini-2024-07-18", Calls: 2, InputTokens: 0, OutputTokens: 1_000_000},
		{Model: "local-llama", Calls: 4, InputTokens: 10, OutputTokens: 10},
	})

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "$1.00")
	assert.Contains(t, out, "$0.60")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: local-llama")
}

func TestWriteSection_NotCaptured(t *testing.T) {
	var buf bytes.Buffer
	writeSection(&buf, "Request", "")
	assert.Equal(t, "\n== Request ==\n(not captured)\n", buf.String())
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
