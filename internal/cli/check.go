package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rkuiper/bouwvrij/internal/ingest"
	"github.com/rkuiper/bouwvrij/internal/model"
	"github.com/rkuiper/bouwvrij/internal/pipeline"
)

var (
	maxContextTokens int
	maxChunks        int
	outJSON          string
	checkTimeout     time.Duration
	noCache          bool
	llmProvider      string
	llmModel         string
	planArea         float64
	planHeight       float64
	planUse          string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <plan-file.json>",
	Short: "Assess one address for a permit-free outbuilding",
	Long: `Check runs the full assessment for a single address:
- Filter out umbrella amendments (Parapluplan) and out-of-scope documents
- Split the surviving plans into article chunks
- Score and select the chunks relevant to the plot and the resident's plan
- Ask the reasoning model for a verdict on the selected excerpts only
- Downgrade an unsupported Yes to Conditional

Example:
  bouwvrij check data/zoning_plan_1.json
  bouwvrij check data/zoning_plan_1.json --llm-provider openai --llm-model gpt-4o
  bouwvrij check data/zoning_plan_1.json --use "storage" --json result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVar(&maxContextTokens, "max-context-tokens", 10_000, "token budget for retrieved context")
	checkCmd.Flags().IntVar(&maxChunks, "max-chunks", 40, "maximum chunks to include in context")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall timeout for the assessment")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the assessment cache")

	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "reasoning provider (openai, anthropic, ollama; empty disables reasoning)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "reasoning model name")

	checkCmd.Flags().Float64Var(&planArea, "area", 20.0, "planned outbuilding area in m2")
	checkCmd.Flags().Float64Var(&planHeight, "height", 3.0, "planned outbuilding height in m")
	checkCmd.Flags().StringVar(&planUse, "use", "", "intended use (default: living space, the high-risk case)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	plan := buildPlan()

	p, err := pipeline.New(cfg, plan)
	if err != nil {
		return err
	}

	file, err := ingest.NewLoader("").LoadFile(args[0])
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Address: %s\n", file.Address.DisplayAddress)
		fmt.Fprintf(os.Stderr, "Bestemmingsvlakken: %v\n", file.Metadata.Bestemmingsvlakken)
		fmt.Fprintln(os.Stderr)
	}

	result, err := p.Assess(ctx, file)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer()
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}

	renderer.RenderSummary(os.Stdout, result)
	return nil
}

// buildConfig layers the effective configuration: built-in defaults,
// then the config file and BOUWVRIJ_* environment (via viper), then
// flags the user set explicitly on the command line.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	sections := []struct {
		key    string
		target interface{}
	}{
		{"vocabulary", &cfg.Vocabulary},
		{"weights", &cfg.Weights},
		{"retrieval", &cfg.Retrieval},
		{"llm", &cfg.LLM},
		{"cache", &cfg.Cache},
		{"concurrency", &cfg.Concurrency},
	}
	for _, s := range sections {
		if err := viper.UnmarshalKey(s.key, s.target); err != nil {
			return nil, fmt.Errorf("invalid %s config: %w", s.key, err)
		}
	}

	// A flag only wins when the user actually set it, so config-file
	// values survive the flag defaults.
	flags := cmd.Flags()
	if flags.Changed("max-context-tokens") {
		cfg.Retrieval.MaxContextTokens = maxContextTokens
	}
	if flags.Changed("max-chunks") {
		cfg.Retrieval.MaxChunks = maxChunks
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	cfg.Output.Verbose = verbose

	// API keys come from the environment, never from the config file.
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// buildPlan derives the resident plan from flags; the default is the
// high-risk living-space outbuilding.
func buildPlan() model.ResidentPlan {
	plan := model.DefaultResidentPlan()
	plan.AreaM2 = planArea
	plan.HeightM = planHeight
	if planUse != "" {
		plan.IntendedUse = planUse
	}
	return plan
}
