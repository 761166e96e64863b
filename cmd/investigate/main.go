package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gridscope-org/gridscope/investigate"
)

// ============================================================================
// INVESTIGATE — Batch LLM research over an organisations CSV
// ============================================================================
// Decoupled from the dashboard: reads its own inputs, writes its own output
// CSV, and nothing in the explorer pipeline consumes it.
// ============================================================================

type config struct {
	APIKey   string `env:"OPENAI_API_KEY"`
	Model    string `env:"INVESTIGATE_MODEL" envDefault:"gpt-4o-mini"`
	Endpoint string `env:"INVESTIGATE_ENDPOINT"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fatalf("Failed to parse environment: %v", err)
	}

	orgsPath := flag.String("orgs", "data/grid_operators.csv", "Organisations CSV (organisation, website, country)")
	frameworksPath := flag.String("frameworks", "data/closed_source_ESM_frameworks.csv", "Framework list CSV (Name column)")
	outPath := flag.String("out", "data/esm_usage_results.csv", "Output CSV for parsed findings")
	model := flag.String("model", cfg.Model, "Completion model name")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Investigate — LLM research of proprietary modelling-framework usage

Usage:
  investigate --orgs operators.csv --frameworks frameworks.csv --out results.csv

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  OPENAI_API_KEY        Required
  INVESTIGATE_MODEL     Model name (flag --model overrides)
  INVESTIGATE_ENDPOINT  Chat-completions URL override
`)
	}
	flag.Parse()

	if cfg.APIKey == "" {
		fatalf("OPENAI_API_KEY is required")
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	client := investigate.NewClient(investigate.Config{
		APIKey:   cfg.APIKey,
		Model:    *model,
		Endpoint: cfg.Endpoint,
	})

	runner := investigate.NewRunner(client, log)
	n, err := runner.Run(*orgsPath, *frameworksPath, *outPath)
	if err != nil {
		fatalf("Investigation failed: %v", err)
	}

	log.Info().Int("findings", n).Msg("✅ investigation completed")
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
