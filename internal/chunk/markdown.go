package chunk

import "github.com/rkuiper/bouwvrij/internal/model"

// Markdown chunks the markdown-like body text the DSO exports use
type Markdown struct{}

// NewMarkdown creates the default chunker
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Name returns the chunker name
func (m *Markdown) Name() string {
	return "markdown"
}

// Split cuts the document body at "Artikel N" headings
func (m *Markdown) Split(doc *model.Document) []model.Chunk {
	return splitArticles(doc, normalizeBody(doc.Text))
}
