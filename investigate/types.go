// Package investigate enriches an organisations CSV by asking a
// language-model completion endpoint whether each organisation uses any of a
// fixed list of proprietary energy-modelling frameworks. It is a standalone
// batch job: its output CSV is a research artifact, consumed by nothing in
// the explorer pipeline.
package investigate

// ============================================================================
// TYPES — Batch job contract
// ============================================================================
// The model must answer with exactly one JSON object per organisation; a row
// whose answer fails to parse is dropped with a warning and the batch moves
// on. Confidence is the model's own self-assessment ("High"/"Medium"/"Low"),
// a string by contract, not a number.
// ============================================================================

// Finding is one successfully parsed model answer.
type Finding struct {
	Organisation       string `json:"organisation"`
	Country            string `json:"country"`
	UsedModelFramework string `json:"used_model_framework"`
	UseCase            string `json:"use_case"`
	ReferenceURL       string `json:"reference_url"`
	Confidence         string `json:"confidence"`
}

// findingHeader is the output CSV header, in field order.
var findingHeader = []string{
	"organisation",
	"country",
	"used_model_framework",
	"use_case",
	"reference_url",
	"confidence",
}

func (f Finding) row() []string {
	return []string{
		f.Organisation,
		f.Country,
		f.UsedModelFramework,
		f.UseCase,
		f.ReferenceURL,
		f.Confidence,
	}
}

// Organisation is one input row of the organisations CSV.
type Organisation struct {
	Name    string
	Website string
	Country string
}

// Config holds the completion-endpoint settings.
type Config struct {
	APIKey   string // provider API key
	Model    string // model name (empty = default)
	Endpoint string // chat-completions URL override (empty = default)
}
