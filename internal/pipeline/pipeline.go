// Package pipeline runs the per-address assessment: filter the documents,
// chunk them into articles, score and budget the chunks, call the reasoning
// provider on the bounded context and guard the draft decision against the
// evidence that was actually selected.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rkuiper/bouwvrij/internal/cache"
	"github.com/rkuiper/bouwvrij/internal/chunk"
	"github.com/rkuiper/bouwvrij/internal/guard"
	"github.com/rkuiper/bouwvrij/internal/ingest"
	"github.com/rkuiper/bouwvrij/internal/llm"
	"github.com/rkuiper/bouwvrij/internal/model"
	"github.com/rkuiper/bouwvrij/internal/retrieve"
)

// Pipeline orchestrates one address run. All stages except the provider
// call are pure and deterministic; the provider call is the sole blocking
// point and the only stage that may fail transiently.
type Pipeline struct {
	filter   *ingest.Filter
	chunker  chunk.Chunker
	scorer   *retrieve.Scorer
	budgeter *retrieve.Budgeter
	provider llm.Provider
	cache    cache.Cache
	plan     model.ResidentPlan
	cfg      *model.Config
}

// New builds a pipeline from configuration. A nil provider (no provider
// configured) is valid: assessments then degrade to a Conditional result.
func New(cfg *model.Config, plan model.ResidentPlan) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".bouwvrij", "cache")
			}
		}
		if dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	return &Pipeline{
		filter:   ingest.NewFilter(cfg.Vocabulary),
		chunker:  chunk.NewMarkdown(),
		scorer:   retrieve.NewScorer(cfg.Retrieval, cfg.Weights, cfg.Vocabulary),
		budgeter: retrieve.NewBudgeter(cfg.Retrieval.MaxContextTokens, cfg.Retrieval.MaxChunks),
		provider: provider,
		cache:    store,
		plan:     plan,
		cfg:      cfg,
	}, nil
}

// WithChunker swaps the document chunker, for sources that are not the
// default markdown-like export.
func (p *Pipeline) WithChunker(c chunk.Chunker) *Pipeline {
	p.chunker = c
	return p
}

// WithProvider swaps the reasoning provider
func (p *Pipeline) WithProvider(provider llm.Provider) *Pipeline {
	p.provider = provider
	return p
}

// Result is the outcome of one address run
type Result struct {
	Address       string              `json:"address"`
	Assessment    *model.Assessment   `json:"assessment"`
	Selected      []model.ScoredChunk `json:"selected_chunks,omitempty"`
	Documents     int                 `json:"documents_considered"`
	ContextTokens int                 `json:"context_tokens"`
	FromCache     bool                `json:"from_cache,omitempty"`
	Elapsed       time.Duration       `json:"elapsed_ns"`
}

// Assess runs the full pipeline for one address. A reasoning failure is
// returned as an error for this address only; an address with no applicable
// documents is a legitimate Conditional outcome, not an error.
func (p *Pipeline) Assess(ctx context.Context, file *model.PlanFile) (*Result, error) {
	start := time.Now()
	address := file.Address.DisplayAddress

	docs := p.filter.Apply(file.Documents)
	if len(docs) == 0 {
		return &Result{
			Address:    address,
			Assessment: noApplicablePlans(),
			Elapsed:    time.Since(start),
		}, nil
	}

	query := retrieve.NewQuery(p.plan, file.Metadata.Bestemmingsvlakken, p.cfg.Vocabulary)

	chunks := chunk.SplitAll(p.chunker, docs)
	scored := p.scorer.ScoreAll(chunks, query)
	selected := p.budgeter.Assemble(scored)

	rendered := RenderContext(selected)

	p.logf("selected %d chunks (~%d tokens) for address=%s\n",
		len(selected), retrieve.EstimateTokens(rendered), address)
	if toks := retrieve.EstimateTokens(rendered); toks > p.cfg.Retrieval.MaxContextTokens {
		p.logf("warning: forced chunks push the context to ~%d tokens, over the %d budget\n",
			toks, p.cfg.Retrieval.MaxContextTokens)
	}

	draft, fromCache, err := p.reason(ctx, file, query, selected, rendered)
	if err != nil {
		return nil, fmt.Errorf("assess %s: %w", address, err)
	}

	final := guard.Verify(*draft, selected, query)

	if !fromCache {
		p.store(address, rendered, &final)
	}

	return &Result{
		Address:       address,
		Assessment:    &final,
		Selected:      selected,
		Documents:     len(docs),
		ContextTokens: retrieve.EstimateTokens(rendered),
		FromCache:     fromCache,
		Elapsed:       time.Since(start),
	}, nil
}

// reason resolves the draft assessment: cache, provider, or the no-provider
// fallback, in that order.
func (p *Pipeline) reason(ctx context.Context, file *model.PlanFile, query model.Query, selected []model.ScoredChunk, rendered string) (*model.Assessment, bool, error) {
	address := file.Address.DisplayAddress
	key := cache.Key(address, p.cfg.LLM.Model, rendered)

	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var a model.Assessment
			if err := json.Unmarshal(data, &a); err == nil {
				p.logf("cache hit for address=%s\n", address)
				return &a, true, nil
			}
		}
	}

	if p.provider == nil {
		return noProviderFallback(), false, nil
	}

	req := llm.AssessRequest{
		Address:        address,
		Metadata:       file.Metadata,
		Plan:           query.Plan,
		Context:        rendered,
		AllowedSources: sourceTitles(selected),
		Model:          p.cfg.LLM.Model,
		MaxTokens:      p.cfg.LLM.MaxTokens,
	}

	draft, err := p.provider.Assess(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("reasoning call: %w", err)
	}

	return draft, false, nil
}

func (p *Pipeline) store(address, rendered string, a *model.Assessment) {
	if p.cache == nil {
		return
	}
	if data, err := json.Marshal(a); err == nil {
		_ = p.cache.Set(cache.Key(address, p.cfg.LLM.Model, rendered), data, 0)
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// sourceTitles collects the distinct document titles in the context, the
// allowlist for the strict evidence check.
func sourceTitles(selected []model.ScoredChunk) []string {
	seen := make(map[string]bool, len(selected))
	var titles []string
	for _, sc := range selected {
		if !seen[sc.Chunk.DocTitle] {
			seen[sc.Chunk.DocTitle] = true
			titles = append(titles, sc.Chunk.DocTitle)
		}
	}
	return titles
}

// noApplicablePlans is the result state for an address whose documents were
// all filtered out: a finding, not a failure.
func noApplicablePlans() *model.Assessment {
	return &model.Assessment{
		PermitFree: model.DecisionConditional,
		Summary:    "No applicable zoning plans were found for this address after excluding umbrella amendments and out-of-scope document types.",
		MissingInformation: []string{
			"No Bestemmingsplan or Omgevingsplan documents apply to this address; obtain the governing plan before concluding anything about permit requirements.",
		},
	}
}

// noProviderFallback is the deterministic answer when reasoning is
// disabled. Never an affirmative: without a reasoning step there is no
// basis for Yes.
func noProviderFallback() *model.Assessment {
	return &model.Assessment{
		PermitFree: model.DecisionConditional,
		Summary:    "No reasoning provider is configured; retrieval ran but the permit-free decision requires an LLM provider (--llm-provider).",
		MissingInformation: []string{
			"Configure an LLM provider to obtain a reasoned assessment of the retrieved articles.",
		},
	}
}
