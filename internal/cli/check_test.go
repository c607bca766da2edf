package cli

import (
	"testing"

	"github.com/spf13/viper"
)

func TestBuildConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := buildConfig(checkCmd)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.Retrieval.MaxContextTokens != 10_000 {
		t.Errorf("MaxContextTokens = %d, want 10000", cfg.Retrieval.MaxContextTokens)
	}
	if cfg.Retrieval.MaxChunks != 40 {
		t.Errorf("MaxChunks = %d, want 40", cfg.Retrieval.MaxChunks)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.LLM.Provider != "" {
		t.Errorf("Provider = %q, want disabled", cfg.LLM.Provider)
	}
}

func TestBuildConfigReadsConfigFileSections(t *testing.T) {
	viper.Set("retrieval.max_context_tokens", 2_000)
	viper.Set("retrieval.max_chunks", 12)
	viper.Set("llm.provider", "ollama")
	viper.Set("llm.model", "mistral")
	viper.Set("cache.enabled", false)
	defer viper.Reset()

	cfg, err := buildConfig(checkCmd)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.Retrieval.MaxContextTokens != 2_000 {
		t.Errorf("MaxContextTokens = %d, want 2000", cfg.Retrieval.MaxContextTokens)
	}
	if cfg.Retrieval.MaxChunks != 12 {
		t.Errorf("MaxChunks = %d, want 12", cfg.Retrieval.MaxChunks)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "mistral" {
		t.Errorf("Model = %q, want mistral", cfg.LLM.Model)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled=false from the file was ignored")
	}
	// Keys the file does not mention keep their defaults.
	if !cfg.Retrieval.IncludeDefinitions {
		t.Error("IncludeDefinitions default was lost while merging")
	}
}

func TestBuildConfigFlagBeatsConfigFile(t *testing.T) {
	viper.Set("retrieval.max_chunks", 12)
	defer viper.Reset()

	flags := checkCmd.Flags()
	if err := flags.Set("max-chunks", "7"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	defer func() {
		flags.Lookup("max-chunks").Changed = false
		maxChunks = 40
	}()

	cfg, err := buildConfig(checkCmd)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Retrieval.MaxChunks != 7 {
		t.Errorf("MaxChunks = %d, want the flag value 7", cfg.Retrieval.MaxChunks)
	}
}

func TestBuildConfigUnsetFlagKeepsFileValue(t *testing.T) {
	viper.Set("retrieval.max_context_tokens", 3_000)
	defer viper.Reset()

	cfg, err := buildConfig(checkCmd)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Retrieval.MaxContextTokens != 3_000 {
		t.Errorf("MaxContextTokens = %d, the flag default overwrote the file value", cfg.Retrieval.MaxContextTokens)
	}
}

func TestBuildConfigProviderFromFileNeedsKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	viper.Set("llm.provider", "openai")
	defer viper.Reset()

	if _, err := buildConfig(checkCmd); err == nil {
		t.Fatal("expected an error when the configured provider has no API key")
	}
}
