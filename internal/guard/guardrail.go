// Package guard cross-checks the reasoning call's draft decision against the
// evidence that was actually retrieved, not against the model's own claims.
// It is the sole defense against an overconfident affirmative answer.
package guard

import "github.com/rkuiper/bouwvrij/internal/model"

// Risk flags appended by the guardrail. Fixed strings so downstream
// consumers can match on them.
const (
	RiskFlagNoPermitFreeEvidence = "No explicit permit-free language found in the retrieved excerpts; verify the complete applicable articles."
	RiskFlagLivingSpace          = "Living space in outbuilding is high-risk"
)

// FinalDecision is the complete decision table. A draft Yes without
// permit-free evidence becomes Conditional; every other combination passes
// through. Because this is the only rule, "never upgrades" holds by
// construction: no input maps to a more permissive decision than the draft.
func FinalDecision(draft model.Decision, permitFreeEvidence bool) model.Decision {
	if draft == model.DecisionYes && !permitFreeEvidence {
		return model.DecisionConditional
	}
	return draft
}

// Verify applies the guardrail to a draft assessment given the assembled
// context. Only the decision and risk flags may change; summary, evidence
// and suggestions pass through untouched.
func Verify(draft model.Assessment, selected []model.ScoredChunk, q model.Query) model.Assessment {
	final := draft

	permitFree := false
	for _, sc := range selected {
		if sc.HasTag(model.TagPermitFreePhrase) {
			permitFree = true
			break
		}
	}

	final.PermitFree = FinalDecision(draft.PermitFree, permitFree)
	if final.PermitFree != draft.PermitFree {
		final.RiskFlags = appendFlag(final.RiskFlags, RiskFlagNoPermitFreeEvidence)
	}

	// Annotation, not a decision change: living space in an outbuilding
	// always warrants the warning.
	if q.Use == model.UseLivingSpace {
		final.RiskFlags = appendFlag(final.RiskFlags, RiskFlagLivingSpace)
	}

	return final
}

func appendFlag(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	// The draft's backing slice is never mutated.
	out := make([]string, len(flags), len(flags)+1)
	copy(out, flags)
	return append(out, flag)
}
