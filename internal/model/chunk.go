package model

import (
	"strconv"
	"strings"
)

// Signal tags recorded by the scorer. The guardrail keys on TagPermitFreePhrase.
const (
	TagZoneMatch         = "zone-match"
	TagPermitFreePhrase  = "permit-free-phrase"
	TagForcedLivingSpace = "forced-living-space"
	TagPlanTerm          = "plan-term"
	TagPermitDutyContext = "permit-duty-context"
	TagDefinitions       = "definitions"
)

// Chunk is one article-level unit cut from a zoning document.
// Its text is a verbatim slice of the source body (modulo whitespace
// normalization) so excerpts stay traceable.
type Chunk struct {
	DocID           string       `json:"doc_id"`
	DocTitle        string       `json:"doc_title"`
	DocType         DocumentType `json:"doc_type"`
	EstablishedDate string       `json:"established_date,omitempty"`
	Article         string       `json:"article,omitempty"` // empty when the document had no recognizable headings
	Heading         string       `json:"heading"`
	Text            string       `json:"text"`
	Zones           []string     `json:"zones,omitempty"` // inherited from the owning document
}

// Key identifies a chunk for deduplication across documents
type Key struct {
	DocID   string
	Article string
	Heading string
}

// Key returns the deduplication key for the chunk
func (c Chunk) Key() Key {
	return Key{DocID: c.DocID, Article: c.Article, Heading: c.Heading}
}

// ScoredChunk pairs a chunk with its relevance score and the signal tags
// explaining the score. Ephemeral: lives only within one retrieval pass.
type ScoredChunk struct {
	Chunk    Chunk    `json:"chunk"`
	Score    float64  `json:"score"`
	Tags     []string `json:"tags,omitempty"`
	Forced   bool     `json:"forced,omitempty"` // bypasses ranking and budgets
	Position int      `json:"position"`         // original document/article order, the tie-break
}

// HasTag reports whether the scorer attached the given signal tag
func (s ScoredChunk) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Use is the declared use of the planned outbuilding
type Use string

const (
	UseStorage     Use = "storage"
	UseHobby       Use = "hobby"
	UseLivingSpace Use = "living_space"
	UseOther       Use = "other"
)

// ResidentPlan describes the outbuilding the resident wants to build
type ResidentPlan struct {
	Structure   string  `json:"structure"`
	AreaM2      float64 `json:"area_m2"`
	HeightM     float64 `json:"height_m"`
	IntendedUse string  `json:"intended_use"`
}

// DefaultResidentPlan is the assessment case the tool was built around:
// a 20 m2 outbuilding intended as living space, the high-risk variant.
func DefaultResidentPlan() ResidentPlan {
	return ResidentPlan{
		Structure:   "bijbehorend bouwwerk (outbuilding)",
		AreaM2:      20.0,
		HeightM:     3.0,
		IntendedUse: "Living space (verblijfsgebied), subordinate to the main house",
	}
}

// AsText renders the plan for the reasoning prompt
func (p ResidentPlan) AsText() string {
	var b strings.Builder
	b.WriteString("Structure: " + p.Structure + "\n")
	b.WriteString("Area: " + formatFloat(p.AreaM2) + " m2\n")
	b.WriteString("Height: " + formatFloat(p.HeightM) + " m\n")
	b.WriteString("Use: " + p.IntendedUse + "\n")
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Query is the per-address retrieval context derived from the resident's
// plan and the plot's zoning designations. Constructed once, read-only after.
type Query struct {
	Use       Use          `json:"use"`
	Zones     []string     `json:"zones"`      // applicable zoning-area names, as declared
	ZoneTerms []string     `json:"zone_terms"` // normalized lowercase search terms
	Plan      ResidentPlan `json:"plan"`
}
