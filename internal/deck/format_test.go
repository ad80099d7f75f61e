package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSlides() []Slide {
	return []Slide{
		{Index: 1, Texts: []string{"Photosynthesis", "How plants make food"}},
		{Index: 2},
		{
			Index:          3,
			Texts:          []string{"Inputs"},
			Tables:         []Table{{{"Input", "Source"}, {"CO2", "Air"}}},
			VisionAnalysis: "A leaf cross-section.",
		},
	}
}

func TestCombinedText(t *testing.T) {
	got := CombinedText(sampleSlides()[2])
	assert.Equal(t, "Inputs\n[Table]\nInput | Source\nCO2 | Air", got)
}

func TestSlideText_SkipsEmptySlides(t *testing.T) {
	got := SlideText(sampleSlides())
	assert.Equal(t, "[Slide 1]\nPhotosynthesis\nHow plants make food\n\n[Slide 3]\nInputs", got)
}

func TestFormatContext(t *testing.T) {
	got := FormatContext(sampleSlides())
	assert.Contains(t, got, "[Slide 2]")
	assert.Contains(t, got, "[Table]\nInput | Source\nCO2 | Air")
	assert.Contains(t, got, "[Image analysis]\nA leaf cross-section.")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", Clip("short", 10))
	assert.Equal(t, "abc"+truncationMarker, Clip("abcdef", 3))

	// Counts runes, not bytes.
	got := Clip("광합성광합성", 3)
	assert.True(t, strings.HasPrefix(got, "광합성"))
	assert.True(t, strings.HasSuffix(got, truncationMarker))
}

func TestMediaType(t *testing.T) {
	tests := map[string]string{
		"png":  "image/png",
		"JPG":  "image/jpeg",
		"jpeg": "image/jpeg",
		".gif": "image/gif",
		"webp": "image/webp",
		"bmp":  "image/bmp",
		"emf":  "image/png",
	}
	for ext, want := range tests {
		assert.Equal(t, want, MediaType(ext), ext)
	}
}

func TestFind(t *testing.T) {
	s, ok := Find(sampleSlides(), 3)
	assert.True(t, ok)
	assert.Equal(t, []string{"Inputs"}, s.Texts)

	_, ok = Find(sampleSlides(), 7)
	assert.False(t, ok)
}
