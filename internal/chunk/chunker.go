// Package chunk converts zoning documents into article-level chunks.
//
// Chunkers are pluggable per source format: Markdown covers the DSO export
// convention used today, HTML covers plans republished as web pages. Both
// emit the same Chunk shape, so the rest of the pipeline is format-agnostic.
package chunk

import (
	"regexp"
	"strings"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// Chunker splits one document into ordered article-level chunks.
// Implementations must never fail: a document with unrecognizable structure
// degrades to a single whole-document chunk.
type Chunker interface {
	Name() string
	Split(doc *model.Document) []model.Chunk
}

// unsegmentedHeading marks the fallback chunk of a document without
// recognizable article boundaries.
const unsegmentedHeading = "(ongesegmenteerd document)"

// Article heading patterns, tried in order of specificity. The designator is
// dotted-numeric ("3" / "3.12") or Roman.
var (
	hashHeadingRe  = regexp.MustCompile(`(?mi)^#{1,6}\s*artikel\s+(\d+(?:\.\d+)*|[IVXLCDM]+)\b[^\n]*$`)
	boldHeadingRe  = regexp.MustCompile(`(?mi)^\*\*artikel\s+(\d+(?:\.\d+)*|[IVXLCDM]+)\b[^*\n]*\*\*[^\n]*$`)
	plainHeadingRe = regexp.MustCompile(`(?mi)^artikel\s+(\d+(?:\.\d+)*|[IVXLCDM]+)\b[^\n]*$`)

	articleNumRe = regexp.MustCompile(`(?i)artikel\s+(\d+(?:\.\d+)*|[IVXLCDM]+)\b`)
)

// normalizeBody normalizes line endings, strips trailing space per line and
// collapses runs of blank lines. Content is not otherwise altered, so chunk
// excerpts stay traceable to the source.
func normalizeBody(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// findHeadings locates article heading lines, preferring markdown headings
// over bold lines over bare "Artikel N" lines.
func findHeadings(text string) [][]int {
	for _, re := range []*regexp.Regexp{hashHeadingRe, boldHeadingRe, plainHeadingRe} {
		if m := re.FindAllStringIndex(text, -1); len(m) > 0 {
			return m
		}
	}
	return nil
}

// splitArticles cuts normalized body text at article headings and builds the
// chunks for doc. Text before the first heading is preamble and dropped.
// Without any heading the whole body becomes one unnumbered chunk.
func splitArticles(doc *model.Document, body string) []model.Chunk {
	base := model.Chunk{
		DocID:           doc.ID,
		DocTitle:        doc.Title,
		DocType:         doc.Type(),
		EstablishedDate: doc.EstablishedDate,
		Zones:           doc.Bestemmingsvlakken,
	}

	if body == "" {
		return nil
	}

	headings := findHeadings(body)
	if len(headings) == 0 {
		c := base
		c.Heading = unsegmentedHeading
		c.Text = body
		return []model.Chunk{c}
	}

	chunks := make([]model.Chunk, 0, len(headings))
	seen := make(map[string]bool, len(headings))

	for i, loc := range headings {
		start := loc[0]
		end := len(body)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}

		text := strings.TrimSpace(body[start:end])
		headingLine := strings.TrimSpace(body[loc[0]:loc[1]])

		article := ""
		if m := articleNumRe.FindStringSubmatch(headingLine); m != nil {
			article = m[1]
		}
		// Article numbers are unique per document; a repeated designator
		// keeps its text but loses the number.
		if article != "" {
			if seen[article] {
				article = ""
			} else {
				seen[article] = true
			}
		}

		c := base
		c.Article = article
		c.Heading = headingLine
		c.Text = text
		chunks = append(chunks, c)
	}

	return chunks
}

// SplitAll chunks every document with the given chunker, in document order
func SplitAll(chunker Chunker, docs []model.Document) []model.Chunk {
	var all []model.Chunk
	for i := range docs {
		all = append(all, chunker.Split(&docs[i])...)
	}
	return all
}
