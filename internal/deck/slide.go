// Package deck reads slide decks into a normalized per-slide content model.
package deck

import (
	"errors"
	"strings"
)

// ErrInvalidDeck is returned when a file is not a readable .pptx package.
var ErrInvalidDeck = errors.New("invalid slide deck")

// Slide is the extracted content of one slide. Slides are numbered from 1
// in presentation order. Everything except VisionAnalysis is fixed once
// parsing returns.
type Slide struct {
	Index      int
	Texts      []string
	Images     []Image
	Tables     []Table
	HasChart   bool
	HasDiagram bool

	// VisionAnalysis describes the slide's first image. Set at most once
	// by the processing pipeline.
	VisionAnalysis string
}

// Image is an embedded picture.
type Image struct {
	Data      []byte
	Ext       string // lowercase, without the dot
	MediaType string
}

// Table is a grid of cell texts, row-major.
type Table [][]string

// HasImages reports whether the slide embeds at least one picture.
func (s Slide) HasImages() bool {
	return len(s.Images) > 0
}

var mediaTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

// MediaType maps an image file extension to its MIME type. Unknown
// extensions map to image/png.
func MediaType(ext string) string {
	if mt, ok := mediaTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return mt
	}
	return "image/png"
}
