package deck

import (
	"encoding/xml"
	"strings"
)

// node is a namespace-agnostic XML element. OOXML parts mix many
// namespaces, so matching is done on local names only.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func (n *node) name() string { return n.XMLName.Local }

// attr returns the value of the unprefixed attribute local.
func (n *node) attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// nsAttr returns the value of a namespaced attribute such as r:id or r:embed.
func (n *node) nsAttr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space != "" {
			return a.Value
		}
	}
	return ""
}

// child returns the first direct child named local.
func (n *node) child(local string) *node {
	for i := range n.Children {
		if n.Children[i].name() == local {
			return &n.Children[i]
		}
	}
	return nil
}

// find returns the first descendant named local, depth first.
func (n *node) find(local string) *node {
	for i := range n.Children {
		c := &n.Children[i]
		if c.name() == local {
			return c
		}
		if d := c.find(local); d != nil {
			return d
		}
	}
	return nil
}

// each calls fn for every direct child named local.
func (n *node) each(local string, fn func(*node)) {
	for i := range n.Children {
		if n.Children[i].name() == local {
			fn(&n.Children[i])
		}
	}
}

// textBody renders a DrawingML text body: runs are concatenated within a
// paragraph, line breaks become newlines and paragraphs are joined by
// newlines. The result is trimmed.
func textBody(body *node) string {
	if body == nil {
		return ""
	}
	var paras []string
	body.each("p", func(p *node) {
		var b strings.Builder
		collectRuns(p, &b)
		paras = append(paras, b.String())
	})
	return strings.TrimSpace(strings.Join(paras, "\n"))
}

func collectRuns(n *node, b *strings.Builder) {
	for i := range n.Children {
		c := &n.Children[i]
		switch c.name() {
		case "t":
			b.WriteString(c.Text)
		case "br":
			b.WriteString("\n")
		default:
			collectRuns(c, b)
		}
	}
}

func parseXML(data []byte) (*node, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}
