// Package gridscope is the backend for a grid-operator modelling-usage
// explorer: a curated CSV of national grid operators and the energy-modelling
// tools they use, normalized into a fixed text schema, filtered
// interactively, and summarized into chart-ready counts.
//
// Usage:
//
//	ds, err := dataset.Load("national-electricity-ecosystem.csv")
//	view := engine.Apply(ds, engine.Criteria{Country: "France", Query: "balancing"})
//	buckets := engine.ValueCounts(view, dataset.ColToolName, engine.WithTopN(20))
//
// The dataset is loaded once per process and cached; filtering and
// aggregation are pure recomputations over the immutable dataset. The
// httpapi package serves the same outputs as JSON for a dashboard frontend,
// and cmd/investigate runs a separate LLM-backed enrichment batch that never
// feeds back into this pipeline.
package gridscope
