package investigate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// RESPONSE PARSER — Strict JSON extraction
// ============================================================================

// ParseFinding extracts a Finding from the model's answer. Markdown code
// fences are tolerated; anything that isn't a single valid JSON object is an
// error — the caller drops the row and continues.
func ParseFinding(response string) (*Finding, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var f Finding
	if err := json.Unmarshal([]byte(response), &f); err != nil {
		return nil, fmt.Errorf("parse model answer: %w (response: %.200s)", err, response)
	}
	return &f, nil
}
