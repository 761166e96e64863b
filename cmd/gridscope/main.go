package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gridscope-org/gridscope/dataset"
	"github.com/gridscope-org/gridscope/httpapi"
)

// ============================================================================
// GRIDSCOPE SERVER — Dashboard API over the curated usage CSV
// ============================================================================

const version = "0.1.0"

type config struct {
	CSV  string `env:"GRIDSCOPE_CSV" envDefault:"national-electricity-ecosystem-2026-02-16.csv-curated.csv"`
	Addr string `env:"GRIDSCOPE_ADDR" envDefault:":8080"`
}

func main() {
	_ = godotenv.Load() // .env is optional

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fatalf("Failed to parse environment: %v", err)
	}

	csvPath := flag.String("csv", cfg.CSV, "Path to the curated usage CSV")
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Gridscope — grid-operator modelling-usage explorer API

Usage:
  gridscope --csv data.csv --addr :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  GRIDSCOPE_CSV     Dataset path (flag --csv overrides)
  GRIDSCOPE_ADDR    Listen address (flag --addr overrides)
`)
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("gridscope %s\n", version)
		os.Exit(0)
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	// The dataset is the session: if it can't be loaded, there is no
	// degraded dashboard to offer.
	ds, err := dataset.Load(*csvPath)
	if err != nil {
		var nf *dataset.NotFoundError
		if errors.As(err, &nf) {
			fatalf("Could not load the CSV. Make sure the file exists and is named exactly: %s", *csvPath)
		}
		fatalf("Failed to load dataset: %v", err)
	}
	log.Info().Int("records", ds.Len()).Int("columns", len(ds.Columns)).Str("path", *csvPath).Msg("📊 dataset loaded")

	handler := httpapi.New(ds, log)
	log.Info().Str("addr", *addr).Msg("⚡ serving dashboard API")
	if err := http.ListenAndServe(*addr, handler.Router()); err != nil {
		fatalf("Server failed: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
