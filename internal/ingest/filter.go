package ingest

import (
	"sort"
	"strings"
	"time"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// Filter removes out-of-scope documents before chunking is attempted.
// Pure and idempotent: filtering an already filtered list is a no-op.
type Filter struct {
	excludedTitleParts []string
	allowedTypes       map[model.DocumentType]bool
	sortByDateDesc     bool
}

// NewFilter builds a filter from the vocabulary. Title exclusions win over
// type checks; a Parapluplan is excluded even when its type is allowed.
func NewFilter(vocab model.Vocabulary) *Filter {
	allowed := make(map[model.DocumentType]bool, len(vocab.AllowedDocumentTypes))
	for _, t := range vocab.AllowedDocumentTypes {
		allowed[model.ParseDocumentType(t)] = true
	}

	parts := make([]string, 0, len(vocab.ExcludedTitleParts))
	for _, p := range vocab.ExcludedTitleParts {
		if s := strings.ToLower(strings.TrimSpace(p)); s != "" {
			parts = append(parts, s)
		}
	}

	return &Filter{
		excludedTitleParts: parts,
		allowedTypes:       allowed,
		sortByDateDesc:     true,
	}
}

// Apply returns the surviving documents, newest established date first.
// Documents without a parsable date sort after dated ones, keeping their
// relative order.
func (f *Filter) Apply(docs []model.Document) []model.Document {
	kept := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if f.keep(&d) {
			kept = append(kept, d)
		}
	}

	if f.sortByDateDesc {
		sortByEstablishedDesc(kept)
	}

	return kept
}

// keep decides a single document. The title rule is checked first.
func (f *Filter) keep(d *model.Document) bool {
	title := strings.ToLower(d.Title)
	for _, part := range f.excludedTitleParts {
		if strings.Contains(title, part) {
			return false
		}
	}
	return f.allowedTypes[d.Type()]
}

// sortByEstablishedDesc sorts newest first, stable so undated documents
// keep their relative order at the tail.
func sortByEstablishedDesc(docs []model.Document) {
	key := func(d *model.Document) time.Time {
		if t, ok := d.EstablishedTime(); ok {
			return t
		}
		return time.Time{}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return key(&docs[i]).After(key(&docs[j]))
	})
}
