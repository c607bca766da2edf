package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rkuiper/bouwvrij/internal/ingest"
	"github.com/rkuiper/bouwvrij/internal/pipeline"
	"github.com/rkuiper/bouwvrij/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <data-dir>",
	Short: "Assess every plan file in a directory in parallel",
	Long: `Batch assesses all *.json plan files in a directory:
- Addresses run independently on a worker pool
- Reasoning calls are rate limited per provider
- One failing address never aborts the others

Example:
  bouwvrij batch ./data
  bouwvrij batch ./data --concurrency 8 --output-dir ./reports
  bouwvrij batch ./data --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for per-address JSON results (optional)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch run")

	batchCmd.Flags().IntVar(&maxContextTokens, "max-context-tokens", 10_000, "token budget for retrieved context")
	batchCmd.Flags().IntVar(&maxChunks, "max-chunks", 40, "maximum chunks to include in context")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the assessment cache")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "reasoning provider (openai, anthropic, ollama; empty disables reasoning)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "reasoning model name")
	batchCmd.Flags().Float64Var(&planArea, "area", 20.0, "planned outbuilding area in m2")
	batchCmd.Flags().Float64Var(&planHeight, "height", 3.0, "planned outbuilding height in m")
	batchCmd.Flags().StringVar(&planUse, "use", "", "intended use (default: living space, the high-risk case)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dataDir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") || !viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = concurrency
	}

	p, err := pipeline.New(cfg, buildPlan())
	if err != nil {
		return err
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	loader := ingest.NewLoader(dataDir)
	processor := worker.NewBatchProcessor(
		p, loader,
		cfg.Concurrency.Workers,
		cfg.LLM.Provider,
		cfg.Concurrency.RequestsPerSecond,
		cfg.Concurrency.BurstSize,
	)

	fmt.Fprintf(os.Stderr, "Assessing plan files in %s with %d workers...\n\n", dataDir, cfg.Concurrency.Workers)

	results, err := processor.ProcessDir(ctx)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer()
	okCount, failCount := 0, 0

	for _, r := range results {
		fmt.Printf("--- %s ---\n", r.File)

		if r.Err != nil {
			failCount++
			fmt.Printf("ERROR: %v\n\n", r.Err)
			continue
		}
		okCount++

		renderer.RenderSummary(os.Stdout, r.Result)

		if outputDir != "" {
			jsonPath := filepath.Join(outputDir, resultFileName(r.File))
			if err := renderer.RenderJSON(r.Result, jsonPath); err != nil {
				fmt.Fprintf(os.Stderr, "write %s: %v\n", jsonPath, err)
			}
		}

		fmt.Println()
	}

	fmt.Fprintf(os.Stderr, "Done: %d assessed, %d failed\n", okCount, failCount)
	return nil
}

// resultFileName maps a plan file name onto its result file name
func resultFileName(planFile string) string {
	base := strings.TrimSuffix(filepath.Base(planFile), filepath.Ext(planFile))
	return base + ".result.json"
}
