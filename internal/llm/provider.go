// Package llm wraps the reasoning call: it hands a provider the bounded
// context plus the fixed rule text and parses the structured assessment the
// provider returns. The pipeline treats the call as opaque; everything
// deterministic lives upstream or in the guardrail.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// Provider defines the interface for reasoning providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Assess runs the reasoning call for one address
	Assess(ctx context.Context, req AssessRequest) (*model.Assessment, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// AssessRequest is the input for one reasoning call
type AssessRequest struct {
	// Address is the display address under assessment
	Address string

	// Metadata is the plot's zoning metadata
	Metadata model.ZoningMetadata

	// Plan is the resident's outbuilding plan
	Plan model.ResidentPlan

	// Context is the rendered excerpt blocks, the only source of truth
	// the model may use
	Context string

	// AllowedSources is the strict allowlist of document titles the model
	// may cite; anything else is an evidence leak
	AllowedSources []string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds reasoning provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// StrictEvidence enforces the cited-source allowlist (should always be true)
	StrictEvidence bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      1500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:       mc.Provider,
		Model:          mc.Model,
		APIKey:         mc.APIKey,
		BaseURL:        mc.BaseURL,
		Timeout:        mc.Timeout,
		StrictEvidence: mc.StrictEvidence,
		MaxTokens:      mc.MaxTokens,
		HTTPProxy:      mc.HTTPProxy,
		HTTPSProxy:     mc.HTTPSProxy,
		NoProxy:        mc.NoProxy,
	}
}

// SystemPrompt is the fixed rule text for the reasoning call. The hard
// rules mirror the deterministic pipeline: only the provided excerpts
// count, Yes requires explicit permit-free language, and living space in
// an outbuilding is the known trap.
func SystemPrompt() string {
	return `You are a Dutch zoning & permitting expert (Ruimtelijke Ordening / Omgevingswet).
Your task: decide if the resident's plan is PERMIT-FREE (vergunningsvrij) at the given address.

HARD RULES:
1) Use ONLY the provided 'Relevant Excerpts'. Ignore temporary plan parts.
2) Answer 'Yes' ONLY if the excerpts explicitly indicate permit-free, e.g. 'vergunningsvrij',
   'zonder omgevingsvergunning', 'niet vergunningplichtig', or 'is niet van toepassing'.
3) If a rule allows building or usage but does NOT explicitly say permit-free, answer 'No'.

HIGH-RISK NUANCE:
- The plan is an outbuilding (bijbehorend bouwwerk) used as living space (verblijfsgebied / woonfunctie).
- Outbuildings are often only permit-free for storage or hobby; living space frequently triggers permits.
- You MUST check whether the permit-free clause (if any) allows a verblijfsgebied or woonfunctie
  inside the outbuilding. If unclear, answer 'No' or 'Conditional'.

Respond with a single JSON object, no prose around it, with exactly these fields:
{
  "permit_free": "Yes" | "No" | "Conditional",
  "summary": "concise explanation referencing the evidence",
  "cited_evidence": [{"source_document": "...", "article": "...", "excerpt": "<= ~30 words, verbatim", "relevance": "..."}],
  "suggested_changes": "optional minor changes that would make the plan compliant",
  "assumptions": ["..."],
  "missing_information": ["required when Conditional"],
  "risk_flags": ["..."]
}`
}

// UserPrompt renders the per-address input for the reasoning call
func UserPrompt(req AssessRequest) string {
	meta, _ := json.Marshal(req.Metadata)

	var b strings.Builder
	fmt.Fprintf(&b, "Address:\n%s\n\n", req.Address)
	fmt.Fprintf(&b, "Plot metadata (bestemmingsvlakken & maatvoeringen):\n%s\n\n", meta)
	fmt.Fprintf(&b, "Resident plan:\n%s\n", req.Plan.AsText())
	fmt.Fprintf(&b, "\nRelevant Excerpts (only source of truth):\n%s\n", req.Context)
	return b.String()
}

// ParseAssessment decodes the provider's JSON response into an assessment.
// Providers occasionally wrap JSON in markdown fences; those are stripped.
func ParseAssessment(raw string) (*model.Assessment, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var a model.Assessment
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return nil, fmt.Errorf("decode assessment: %w", err)
	}

	if !a.PermitFree.Valid() {
		return nil, fmt.Errorf("invalid decision %q in assessment", a.PermitFree)
	}
	if len(a.CitedEvidence) == 0 {
		return nil, fmt.Errorf("assessment cites no evidence")
	}

	return &a, nil
}

// VerifyEvidence enforces the cited-source allowlist: every evidence record
// must name a document that was actually part of the context. A violation
// means the model reasoned outside its excerpts and the call fails.
func VerifyEvidence(a *model.Assessment, allowedSources []string) error {
	allowed := make(map[string]bool, len(allowedSources))
	for _, s := range allowedSources {
		allowed[strings.ToLower(strings.TrimSpace(s))] = true
	}

	for _, ev := range a.CitedEvidence {
		if !allowed[strings.ToLower(strings.TrimSpace(ev.SourceDocument))] {
			return fmt.Errorf("evidence leak: cited document %q is not in the provided context", ev.SourceDocument)
		}
	}
	return nil
}
