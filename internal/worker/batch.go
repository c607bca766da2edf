package worker

import (
	"context"
	"fmt"
	"sort"

	"github.com/rkuiper/bouwvrij/internal/ingest"
	"github.com/rkuiper/bouwvrij/internal/model"
	"github.com/rkuiper/bouwvrij/internal/pipeline"
)

// Assessor assesses one loaded address
type Assessor interface {
	Assess(ctx context.Context, file *model.PlanFile) (*pipeline.Result, error)
}

// AddressResult is the per-address outcome of a batch run. Err is set when
// loading or reasoning failed for that address; other addresses proceed.
type AddressResult struct {
	File   string
	Result *pipeline.Result
	Err    error
}

// BatchProcessor runs plan files across the pool with rate limiting on the
// reasoning endpoint
type BatchProcessor struct {
	assessor Assessor
	loader   *ingest.Loader
	pool     *Pool
	limiter  *Limiter
	endpoint string
}

// NewBatchProcessor creates a batch processor. The endpoint names the
// provider whose rate bucket the limiter should use; empty disables the
// limiter (no reasoning configured).
func NewBatchProcessor(assessor Assessor, loader *ingest.Loader, workers int, endpoint string, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if endpoint != "" {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		assessor: assessor,
		loader:   loader,
		pool:     NewPool(workers),
		limiter:  limiter,
		endpoint: endpoint,
	}
}

// ProcessDir assesses every plan file in the loader's data directory
func (b *BatchProcessor) ProcessDir(ctx context.Context) ([]AddressResult, error) {
	names, err := b.loader.ListFiles()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no plan files found")
	}
	return b.ProcessFiles(ctx, names), nil
}

// ProcessFiles assesses the named plan files concurrently. Results come
// back sorted by file name regardless of completion order.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, names []string) []AddressResult {
	results := make([]AddressResult, len(names))

	tasks := make([]Task, len(names))
	for i, name := range names {
		i, name := i, name
		tasks[i] = func(ctx context.Context) {
			results[i] = b.processOne(ctx, name)
		}
	}

	b.pool.Run(ctx, tasks)

	// Slots skipped by cancellation have a zero Result.
	for i, r := range results {
		if r.File == "" {
			results[i] = AddressResult{File: names[i], Err: ctx.Err()}
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results
}

func (b *BatchProcessor) processOne(ctx context.Context, name string) AddressResult {
	file, err := b.loader.LoadFile(name)
	if err != nil {
		return AddressResult{File: name, Err: err}
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx, b.endpoint); err != nil {
			return AddressResult{File: name, Err: err}
		}
	}

	result, err := b.assessor.Assess(ctx, file)
	return AddressResult{File: name, Result: result, Err: err}
}
