// Package retrieve selects and bounds the evidence handed to the reasoning
// call: deterministic scoring of chunks against a per-address query, then
// budgeted assembly of the highest-ranking ones.
package retrieve

import (
	"strings"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// Scorer assigns relevance scores to chunks. Stateless and deterministic:
// identical (chunk, query) input always yields identical (score, tags).
type Scorer struct {
	weights model.WeightsConfig
	vocab   model.Vocabulary

	includeDefinitions bool
	forceLivingSpace   bool
}

// NewScorer creates a scorer with the given weights and vocabulary
func NewScorer(cfg model.RetrievalConfig, weights model.WeightsConfig, vocab model.Vocabulary) *Scorer {
	return &Scorer{
		weights:            weights,
		vocab:              vocab,
		includeDefinitions: cfg.IncludeDefinitions,
		forceLivingSpace:   cfg.ForceLivingSpace,
	}
}

// Score scores one chunk against the query. The order of the scoring
// effects is load-bearing: zone matches, then permit-free phrases, then the
// supplementary term bonuses, then the living-space force-include check.
func (s *Scorer) Score(chunk model.Chunk, q model.Query) (float64, []string) {
	sc := s.score(chunk, q)
	return sc.Score, sc.Tags
}

// ScoreAll scores every chunk, preserving original order in the Position
// field, and applies the run-level forced-definitions rule.
func (s *Scorer) ScoreAll(chunks []model.Chunk, q model.Query) []model.ScoredChunk {
	scored := make([]model.ScoredChunk, len(chunks))
	for i, c := range chunks {
		sc := s.score(c, q)
		sc.Position = i
		scored[i] = sc
	}

	// One definitions article per run is forced in so the reasoning call
	// always sees the plan's own terminology.
	if s.includeDefinitions {
		for i := range scored {
			if s.isDefinitionHeading(scored[i].Chunk.Heading) {
				scored[i].Forced = true
				scored[i].Tags = appendTag(scored[i].Tags, model.TagDefinitions)
				break
			}
		}
	}

	return scored
}

func (s *Scorer) score(chunk model.Chunk, q model.Query) model.ScoredChunk {
	text := strings.ToLower(chunk.Heading + "\n" + chunk.Text)

	sc := model.ScoredChunk{Chunk: chunk}

	// 1. Zone matches: each zoning-area name shared between the chunk's
	// inherited list and the query counts once, repetition ignored.
	if n := sharedZoneCount(chunk.Zones, q.Zones); n > 0 {
		sc.Score += float64(n) * s.weights.ZoneMatch
		sc.Tags = appendTag(sc.Tags, model.TagZoneMatch)
	}

	// 2. Permit-free vocabulary, case-insensitive substring match.
	if containsAny(text, s.vocab.PermitFreePhrases) {
		sc.Score += s.weights.PermitFreePhrase
		sc.Tags = appendTag(sc.Tags, model.TagPermitFreePhrase)
	}

	// 3. Plan terms and permit-duty context.
	planHits := 0
	for _, t := range s.vocab.PlanTerms {
		if strings.Contains(text, strings.ToLower(t)) {
			planHits++
		}
	}
	if planHits > 0 {
		sc.Score += float64(planHits) * s.weights.PlanTerm
		sc.Tags = appendTag(sc.Tags, model.TagPlanTerm)
	}

	dutyHits := 0
	if strings.Contains(text, "uitzondering") {
		dutyHits++
	}
	if strings.Contains(text, "vergunningplicht") {
		dutyHits++
	}
	if dutyHits > 0 {
		sc.Score += float64(dutyHits) * s.weights.PermitDutyContext
		sc.Tags = appendTag(sc.Tags, model.TagPermitDutyContext)
	}

	// 4. Living-space force-include: bypasses ranking and budgets entirely.
	if s.forceLivingSpace && q.Use == model.UseLivingSpace && containsAny(text, s.vocab.LivingSpacePhrases) {
		sc.Forced = true
		sc.Tags = appendTag(sc.Tags, model.TagForcedLivingSpace)
	}

	// Chunks that match nothing relevant to construction at this plot are
	// noise; they keep their tags for diagnostics but never rank.
	if !sc.Forced && !s.passesGate(text, q) {
		sc.Score = 0
	}

	return sc
}

// passesGate is the relevance gate: plan text unrelated to building,
// this plot's zones, or permitting never enters the ranking.
func (s *Scorer) passesGate(lowerText string, q model.Query) bool {
	if containsAny(lowerText, s.vocab.PermitFreePhrases) {
		return true
	}
	for _, z := range q.ZoneTerms {
		if z != "" && strings.Contains(lowerText, z) {
			return true
		}
	}
	if containsAny(lowerText, s.vocab.ConstructionTerms) {
		return true
	}
	if q.Use == model.UseLivingSpace && containsAny(lowerText, s.vocab.LivingSpacePhrases) {
		return true
	}
	return false
}

func (s *Scorer) isDefinitionHeading(heading string) bool {
	return containsAny(strings.ToLower(heading), s.vocab.DefinitionHeadings)
}

// sharedZoneCount counts distinct case-insensitive name overlaps
func sharedZoneCount(chunkZones, queryZones []string) int {
	if len(chunkZones) == 0 || len(queryZones) == 0 {
		return 0
	}

	want := make(map[string]bool, len(queryZones))
	for _, z := range queryZones {
		if s := strings.ToLower(strings.TrimSpace(z)); s != "" {
			want[s] = true
		}
	}

	counted := make(map[string]bool)
	n := 0
	for _, z := range chunkZones {
		s := strings.ToLower(strings.TrimSpace(z))
		if want[s] && !counted[s] {
			counted[s] = true
			n++
		}
	}
	return n
}

func containsAny(lowerText string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(lowerText, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func appendTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
