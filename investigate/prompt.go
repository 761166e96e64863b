package investigate

import (
	"fmt"
	"strings"
)

// ============================================================================
// PROMPT BUILDER — Per-organisation research prompt
// ============================================================================

// BuildPrompt renders the research prompt for one organisation. frameworks
// is the closed list of licensed model frameworks the model may report; it
// must never guess beyond it.
func BuildPrompt(org Organisation, frameworks []string) string {
	items := make([]string, len(frameworks))
	for i, f := range frameworks {
		items[i] = "- " + f
	}
	frameworkBlock := strings.Join(items, "\n")

	return fmt.Sprintf(`You are an energy systems research analyst.

Investigate whether the following organisation uses any proprietary energy system modeling frameworks.

Organisation: %s
Country: %s
Website: %s

Only consider the following licensed model frameworks:

%s

Instructions:
- Use official website and public reports.
- Only include confirmed evidence.
- Provide reference URLs.
- Do NOT guess.
- If no evidence found, state clearly.

Return ONLY valid JSON:

{
  "organisation": "",
  "country": "",
  "used_model_framework": "",
  "use_case": "",
  "reference_url": "",
  "confidence": "High/Medium/Low"
}
`, org.Name, org.Country, org.Website, frameworkBlock)
}
