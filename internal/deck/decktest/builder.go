// Package decktest builds minimal .pptx packages for tests.
package decktest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Slide describes one slide of a synthetic deck.
type Slide struct {
	Texts  []string
	Images []Image
	Tables [][][]string
	Chart  bool
	Group  []string // texts placed inside a group shape
}

// Image is an embedded picture.
type Image struct {
	Name string // file name under ppt/media, e.g. "image1.png"
	Data []byte
}

const (
	nsP = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

	relsNS    = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
	slideType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	imageType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Build returns the bytes of a .pptx package containing slides.
func Build(slides ...Slide) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	var ids, rels strings.Builder
	for i := range slides {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, i+1, slideType, i+1)
	}

	files := map[string]string{
		"[Content_Types].xml":             `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"ppt/presentation.xml":            fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><p:presentation %s %s %s><p:sldIdLst>%s</p:sldIdLst></p:presentation>`, nsA, nsR, nsP, ids.String()),
		"ppt/_rels/presentation.xml.rels": fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Relationships %s>%s</Relationships>`, relsNS, rels.String()),
	}
	for name, content := range files {
		if err := write(name, content); err != nil {
			return nil, err
		}
	}

	for i, s := range slides {
		slideXML, slideRels := renderSlide(s)
		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML); err != nil {
			return nil, err
		}
		if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRels); err != nil {
			return nil, err
		}
		for _, img := range s.Images {
			if err := write("ppt/media/"+img.Name, string(img.Data)); err != nil {
				return nil, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile builds a deck and writes it into a temp dir, returning its path.
func WriteFile(t testing.TB, slides ...Slide) string {
	t.Helper()
	data, err := Build(slides...)
	if err != nil {
		t.Fatalf("build deck: %v", err)
	}
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return path
}

func renderSlide(s Slide) (string, string) {
	var tree, rels strings.Builder

	for _, text := range s.Texts {
		tree.WriteString(textShape(text))
	}
	for i, img := range s.Images {
		fmt.Fprintf(&tree, `<p:pic><p:blipFill><a:blip r:embed="rIdImg%d"/></p:blipFill></p:pic>`, i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rIdImg%d" Type="%s" Target="../media/%s"/>`, i+1, imageType, img.Name)
	}
	for _, table := range s.Tables {
		tree.WriteString(`<p:graphicFrame><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
		for _, row := range table {
			tree.WriteString("<a:tr>")
			for _, cell := range row {
				fmt.Fprintf(&tree, `<a:tc><a:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></a:txBody></a:tc>`, escape(cell))
			}
			tree.WriteString("</a:tr>")
		}
		tree.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	}
	if s.Chart {
		tree.WriteString(`<p:graphicFrame><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"/></a:graphic></p:graphicFrame>`)
	}
	if len(s.Group) > 0 {
		tree.WriteString("<p:grpSp>")
		for _, text := range s.Group {
			tree.WriteString(textShape(text))
		}
		tree.WriteString("</p:grpSp>")
	}

	slideXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><p:sld %s %s %s><p:cSld><p:spTree>%s</p:spTree></p:cSld></p:sld>`,
		nsA, nsR, nsP, tree.String())
	relsXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Relationships %s>%s</Relationships>`, relsNS, rels.String())
	return slideXML, relsXML
}

// textShape renders text as a shape; newlines start new paragraphs.
func textShape(text string) string {
	var b strings.Builder
	b.WriteString("<p:sp><p:txBody>")
	for _, para := range strings.Split(text, "\n") {
		fmt.Fprintf(&b, "<a:p><a:r><a:t>%s</a:t></a:r></a:p>", escape(para))
	}
	b.WriteString("</p:txBody></p:sp>")
	return b.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
