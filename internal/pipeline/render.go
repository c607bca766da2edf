package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// RenderContext turns the selected chunks into the excerpt blocks handed to
// the reasoning call. Chunk text is included verbatim so cited excerpts can
// be traced back to source.
func RenderContext(selected []model.ScoredChunk) string {
	blocks := make([]string, 0, len(selected))

	for _, sc := range selected {
		c := sc.Chunk
		article := c.Article
		if article == "" {
			article = "N/A"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "[SOURCE] %s | doc_id=%s | type=%s | date=%s\n", c.DocTitle, c.DocID, c.DocType, c.EstablishedDate)
		fmt.Fprintf(&b, "[ARTICLE] %s\n", article)
		fmt.Fprintf(&b, "[HEADING] %s\n", c.Heading)
		b.WriteString(c.Text)
		b.WriteString("\n")
		blocks = append(blocks, b.String())
	}

	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// Renderer writes assessment results for human and machine consumption
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full result as indented JSON
func (r *Renderer) RenderJSON(result *Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// RenderSummary prints the human-readable per-address report
func (r *Renderer) RenderSummary(w io.Writer, result *Result) {
	a := result.Assessment

	fmt.Fprintf(w, "Address: %s\n", result.Address)
	fmt.Fprintf(w, "Decision (permit-free): %s\n", a.PermitFree)
	fmt.Fprintf(w, "Summary: %s\n", a.Summary)

	if a.SuggestedChanges != "" {
		fmt.Fprintf(w, "Suggested changes: %s\n", a.SuggestedChanges)
	}
	if len(a.MissingInformation) > 0 {
		fmt.Fprintln(w, "Missing information:")
		for _, mi := range a.MissingInformation {
			fmt.Fprintf(w, " - %s\n", mi)
		}
	}
	if len(a.RiskFlags) > 0 {
		fmt.Fprintln(w, "Risk flags:")
		for _, rf := range a.RiskFlags {
			fmt.Fprintf(w, " - %s\n", rf)
		}
	}
	if len(a.CitedEvidence) > 0 {
		fmt.Fprintln(w, "Evidence:")
		for _, ev := range a.CitedEvidence {
			article := ev.Article
			if article == "" {
				article = "N/A"
			}
			fmt.Fprintf(w, " - %s | Artikel %s: %s (%s)\n", ev.SourceDocument, article, ev.Excerpt, ev.Relevance)
		}
	}
}
