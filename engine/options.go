package engine

// ============================================================================
// COUNT OPTIONS — Functional options for ValueCounts
// ============================================================================

// CountOption configures ValueCounts.
type CountOption func(*countConfig)

type countConfig struct {
	TopN         int
	UnknownLabel string // "" = exclude empty values instead of substituting
}

// WithTopN truncates the result to the n highest counts. Zero or negative
// means no truncation.
func WithTopN(n int) CountOption {
	return func(c *countConfig) {
		c.TopN = n
	}
}

// WithUnknown substitutes label for empty values before counting, so the
// "unknown" share shows up as its own bucket instead of being dropped.
func WithUnknown(label string) CountOption {
	return func(c *countConfig) {
		c.UnknownLabel = label
	}
}

func applyCountOptions(opts []CountOption) *countConfig {
	cfg := &countConfig{
		TopN: 20, // the dashboard slider's default
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
