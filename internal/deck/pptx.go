package deck

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// maxPartSize bounds how much of a single package part is read.
const maxPartSize = 64 << 20

// Open parses the .pptx file at path.
func Open(filePath string) ([]Slide, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat deck: %w", err)
	}
	return Parse(f, info.Size())
}

// Parse reads a .pptx package and returns its slides in presentation
// order. Any structural problem is reported as ErrInvalidDeck; no partial
// result is returned.
func Parse(r io.ReaderAt, size int64) ([]Slide, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: not a .pptx package: %v", ErrInvalidDeck, err)
	}

	pkg := &pptxPackage{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}

	parts, err := pkg.slideParts()
	if err != nil {
		return nil, err
	}

	slides := make([]Slide, 0, len(parts))
	for i, part := range parts {
		s, err := pkg.parseSlide(part)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %v", ErrInvalidDeck, i+1, err)
		}
		s.Index = i + 1
		slides = append(slides, s)
	}
	return slides, nil
}

type pptxPackage struct {
	files map[string]*zip.File
}

type relationship struct {
	target   string
	external bool
}

func (p *pptxPackage) read(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxPartSize))
}

func (p *pptxPackage) readXML(name string) (*node, error) {
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return root, nil
}

// rels reads the relationship part that belongs to partName. A missing
// relationship part means the part has no relationships.
func (p *pptxPackage) rels(partName string) (map[string]relationship, error) {
	dir, file := path.Split(partName)
	relsName := dir + "_rels/" + file + ".rels"
	out := make(map[string]relationship)
	if _, ok := p.files[relsName]; !ok {
		return out, nil
	}

	root, err := p.readXML(relsName)
	if err != nil {
		return nil, err
	}
	root.each("Relationship", func(n *node) {
		out[n.attr("Id")] = relationship{
			target:   n.attr("Target"),
			external: n.attr("TargetMode") == "External",
		}
	})
	return out, nil
}

// resolve turns a relationship target into a package part name.
func resolve(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// slideParts returns slide part names in presentation order.
func (p *pptxPackage) slideParts() ([]string, error) {
	const presentation = "ppt/presentation.xml"

	root, err := p.readXML(presentation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	rels, err := p.rels(presentation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}

	var parts []string
	if list := root.child("sldIdLst"); list != nil {
		var missing string
		list.each("sldId", func(n *node) {
			rel, ok := rels[n.nsAttr("id")]
			if !ok {
				missing = n.nsAttr("id")
				return
			}
			parts = append(parts, resolve("ppt", rel.target))
		})
		if missing != "" {
			return nil, fmt.Errorf("%w: unknown slide relationship %q", ErrInvalidDeck, missing)
		}
	}
	return parts, nil
}

func (p *pptxPackage) parseSlide(part string) (Slide, error) {
	root, err := p.readXML(part)
	if err != nil {
		return Slide{}, err
	}
	rels, err := p.rels(part)
	if err != nil {
		return Slide{}, err
	}

	var s Slide
	csld := root.child("cSld")
	if csld == nil {
		return s, nil
	}
	tree := csld.child("spTree")
	if tree == nil {
		return s, nil
	}

	w := &shapeWalker{pkg: p, rels: rels, dir: path.Dir(part), slide: &s}
	w.walk(tree)
	return s, nil
}

// shapeWalker collects content from a shape tree, descending into groups.
type shapeWalker struct {
	pkg   *pptxPackage
	rels  map[string]relationship
	dir   string
	slide *Slide
}

func (w *shapeWalker) walk(tree *node) {
	for i := range tree.Children {
		shape := &tree.Children[i]
		switch shape.name() {
		case "sp":
			if text := textBody(shape.child("txBody")); text != "" {
				w.slide.Texts = append(w.slide.Texts, text)
			}
		case "pic":
			w.picture(shape)
		case "graphicFrame":
			w.graphicFrame(shape)
		case "grpSp":
			w.slide.HasDiagram = true
			w.walk(shape)
		case "AlternateContent":
			// Prefer the fallback branch, which holds plain DrawingML.
			if fb := shape.child("Fallback"); fb != nil {
				w.walk(fb)
			}
		}
	}
}

func (w *shapeWalker) picture(shape *node) {
	blip := shape.find("blip")
	if blip == nil {
		return
	}
	rel, ok := w.rels[blip.nsAttr("embed")]
	if !ok || rel.external {
		return
	}

	name := resolve(w.dir, rel.target)
	data, err := w.pkg.read(name)
	if err != nil {
		// A dangling image reference drops the image, not the deck.
		return
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	w.slide.Images = append(w.slide.Images, Image{
		Data:      data,
		Ext:       ext,
		MediaType: MediaType(ext),
	})
}

func (w *shapeWalker) graphicFrame(shape *node) {
	data := shape.find("graphicData")
	if data == nil {
		return
	}
	uri := data.attr("uri")
	switch {
	case strings.HasSuffix(uri, "/table"):
		if tbl := data.find("tbl"); tbl != nil {
			w.slide.Tables = append(w.slide.Tables, readTable(tbl))
		}
	case strings.HasSuffix(uri, "/chart"):
		w.slide.HasChart = true
	case strings.HasSuffix(uri, "/diagram"):
		w.slide.HasDiagram = true
	}
}

func readTable(tbl *node) Table {
	var t Table
	tbl.each("tr", func(tr *node) {
		var row []string
		tr.each("tc", func(tc *node) {
			row = append(row, textBody(tc.child("txBody")))
		})
		t = append(t, row)
	})
	return t
}
