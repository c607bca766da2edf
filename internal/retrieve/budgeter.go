package retrieve

import (
	"sort"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// avgCharsPerToken is the fixed token estimation divisor. Deliberately not
// a tokenizer: the budget only needs a deterministic, reproducible bound.
const avgCharsPerToken = 4

// EstimateTokens estimates the token cost of a text
func EstimateTokens(text string) int {
	n := len(text) / avgCharsPerToken
	if n < 1 {
		return 1
	}
	return n
}

// Budgeter assembles the bounded context from scored chunks
type Budgeter struct {
	maxTokens int
	maxChunks int
}

// NewBudgeter creates a budgeter with the given limits
func NewBudgeter(maxTokens, maxChunks int) *Budgeter {
	return &Budgeter{maxTokens: maxTokens, maxChunks: maxChunks}
}

// Assemble selects and orders chunks under the budgets.
//
// Forced chunks come first, in stable original order, counting toward both
// budgets. A forced chunk is included even when it alone exceeds the token
// budget: living-space evidence is never silently dropped, which is the one
// documented exception to the size cap. Remaining chunks follow by
// descending score (ties on original order) while both budgets hold; the
// first chunk that would breach a limit stops assembly, and nothing is ever
// truncated to fit. Once the budget is exhausted or negative, no further
// ranked chunk is considered.
func (b *Budgeter) Assemble(scored []model.ScoredChunk) []model.ScoredChunk {
	var selected []model.ScoredChunk
	seen := make(map[model.Key]bool)
	tokens := 0

	add := func(sc model.ScoredChunk) bool {
		key := sc.Chunk.Key()
		if seen[key] {
			return false
		}
		seen[key] = true
		selected = append(selected, sc)
		tokens += EstimateTokens(sc.Chunk.Text)
		return true
	}

	for _, sc := range scored {
		if sc.Forced {
			add(sc)
		}
	}

	ranked := make([]model.ScoredChunk, 0, len(scored))
	for _, sc := range scored {
		if !sc.Forced && sc.Score > 0 {
			ranked = append(ranked, sc)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	for _, sc := range ranked {
		if len(selected) >= b.maxChunks {
			break
		}
		if tokens >= b.maxTokens {
			break
		}
		if seen[sc.Chunk.Key()] {
			continue
		}
		if tokens+EstimateTokens(sc.Chunk.Text) > b.maxTokens {
			break
		}
		add(sc)
	}

	return selected
}
