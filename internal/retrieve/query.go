package retrieve

import (
	"regexp"
	"strings"

	"github.com/rkuiper/bouwvrij/internal/model"
)

var trailingNumberRe = regexp.MustCompile(`\s+\d+$`)

// NewQuery derives the per-address retrieval context from the resident's
// plan and the plot's zoning designations. Built once per address, read-only
// afterwards.
func NewQuery(plan model.ResidentPlan, zones []string, vocab model.Vocabulary) model.Query {
	return model.Query{
		Use:       deriveUse(plan.IntendedUse, vocab),
		Zones:     zones,
		ZoneTerms: normalizeZoneTerms(zones),
		Plan:      plan,
	}
}

// deriveUse classifies the free-text intended use. Living space is decided
// by the living-space vocabulary since that is the classification the
// pipeline's force-include rule keys on.
func deriveUse(intendedUse string, vocab model.Vocabulary) model.Use {
	lower := strings.ToLower(intendedUse)

	for _, phrase := range vocab.LivingSpacePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return model.UseLivingSpace
		}
	}
	if strings.Contains(lower, "living space") {
		return model.UseLivingSpace
	}
	if strings.Contains(lower, "opslag") || strings.Contains(lower, "storage") || strings.Contains(lower, "berging") {
		return model.UseStorage
	}
	if strings.Contains(lower, "hobby") {
		return model.UseHobby
	}
	return model.UseOther
}

// normalizeZoneTerms expands zoning designations into lowercase search
// terms. "Wonen - 2" also yields "2"-less and suffix variants so that plan
// text referring to the base designation still matches.
func normalizeZoneTerms(zones []string) []string {
	var terms []string
	for _, raw := range zones {
		s := strings.ToLower(strings.TrimSpace(raw))
		if s == "" {
			continue
		}
		terms = append(terms, s)

		if strings.Contains(s, "-") {
			parts := strings.Split(s, "-")
			if last := strings.TrimSpace(parts[len(parts)-1]); last != "" {
				terms = append(terms, last)
			}
		}

		if base := strings.TrimRight(trailingNumberRe.ReplaceAllString(s, ""), " -"); base != "" && base != s {
			terms = append(terms, base)
		}
	}

	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
