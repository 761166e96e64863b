package investigate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// ============================================================================
// RUNNER TESTS
// ============================================================================

// scriptedCompleter replays canned answers keyed by organisation name.
type scriptedCompleter struct {
	answers map[string]string
	calls   int
}

func (s *scriptedCompleter) Complete(prompt string) (string, error) {
	s.calls++
	for org, answer := range s.answers {
		if strings.Contains(prompt, "Organisation: "+org) {
			return answer, nil
		}
	}
	return "", fmt.Errorf("no scripted answer for prompt")
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSkipsUnparseableAnswers(t *testing.T) {
	dir := t.TempDir()
	orgsPath := writeFile(t, dir, "orgs.csv",
		"organisation,website,country\nRTE,rte-france.com,France\nAmprion,amprion.net,Germany\nTerna,terna.it,Italy\n")
	frameworksPath := writeFile(t, dir, "frameworks.csv",
		"Name,Vendor\nPLEXOS,Energy Exemplar\nPROMOD,Hitachi\n")
	outPath := filepath.Join(dir, "results.csv")

	completer := &scriptedCompleter{answers: map[string]string{
		"RTE": `{"organisation":"RTE","country":"France","used_model_framework":"PLEXOS","use_case":"Adequacy studies","reference_url":"https://rte-france.com/r","confidence":"High"}`,
		// Amprion's answer is prose, not JSON — must be skipped, not fatal.
		"Amprion": "No confirmed evidence was found for this organisation.",
		"Terna": "```json\n{\"organisation\":\"Terna\",\"country\":\"Italy\",\"used_model_framework\":\"\",\"use_case\":\"\",\"reference_url\":\"\",\"confidence\":\"Low\"}\n```",
	}}

	runner := NewRunner(completer, zerolog.Nop())
	n, err := runner.Run(orgsPath, frameworksPath, outPath)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 findings (1 skipped), got %d", n)
	}
	if completer.calls != 3 {
		t.Errorf("expected 3 completions, got %d", completer.calls)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 3 { // header + 2 findings
		t.Fatalf("expected 3 output rows, got %d", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "organisation,country,used_model_framework,use_case,reference_url,confidence" {
		t.Errorf("wrong header: %s", got)
	}
	if rows[1][0] != "RTE" || rows[1][5] != "High" {
		t.Errorf("unexpected first finding: %v", rows[1])
	}
	if rows[2][0] != "Terna" || rows[2][5] != "Low" {
		t.Errorf("unexpected second finding: %v", rows[2])
	}
}

func TestRunMissingInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	frameworksPath := writeFile(t, dir, "frameworks.csv", "Name\nPLEXOS\n")

	runner := NewRunner(&scriptedCompleter{}, zerolog.Nop())
	_, err := runner.Run(filepath.Join(dir, "missing.csv"), frameworksPath, filepath.Join(dir, "out.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing organisations file")
	}
	if !strings.Contains(err.Error(), "missing.csv") {
		t.Errorf("error should name the missing file: %v", err)
	}
}

func TestLoadFrameworks(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "frameworks.csv", "Name,Vendor\nPLEXOS,Energy Exemplar\n ,x\nPROMOD,Hitachi\n")

	names, err := LoadFrameworks(path)
	if err != nil {
		t.Fatalf("LoadFrameworks failed: %v", err)
	}
	if len(names) != 2 || names[0] != "PLEXOS" || names[1] != "PROMOD" {
		t.Errorf("unexpected frameworks: %v", names)
	}
}

func TestBuildPromptEnumeratesFrameworks(t *testing.T) {
	org := Organisation{Name: "RTE", Website: "rte-france.com", Country: "France"}
	prompt := BuildPrompt(org, []string{"PLEXOS", "PROMOD"})

	for _, want := range []string{
		"Organisation: RTE",
		"Country: France",
		"Website: rte-france.com",
		"- PLEXOS",
		"- PROMOD",
		"Return ONLY valid JSON",
		`"confidence": "High/Medium/Low"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
