package chunk

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// HTML chunks zoning texts republished as HTML pages. It extracts the
// visible text with block boundaries preserved as newlines, then applies
// the same article splitting as the markdown chunker.
type HTML struct{}

// NewHTML creates an HTML chunker
func NewHTML() *HTML {
	return &HTML{}
}

// Name returns the chunker name
func (h *HTML) Name() string {
	return "html"
}

// Split parses the body as HTML and cuts it at "Artikel N" headings.
// Unparseable markup degrades to treating the body as plain text; a
// document never hard-fails chunking.
func (h *HTML) Split(doc *model.Document) []model.Chunk {
	body := doc.Text

	if node, err := html.Parse(strings.NewReader(body)); err == nil {
		body = visibleText(node)
	}

	return splitArticles(doc, normalizeBody(body))
}

// blockTags are elements that terminate a line of visible text
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "br": true, "table": true, "ul": true, "ol": true,
}

// visibleText walks the node tree collecting text, skipping script and
// style subtrees and emitting newlines at block boundaries.
func visibleText(root *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			b.WriteString("\n")
		}
	}

	walk(root)
	return b.String()
}
