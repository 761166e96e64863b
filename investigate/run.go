package investigate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridscope-org/gridscope/dataset"
)

// ============================================================================
// RUNNER — Drives the batch end to end
// ============================================================================
// Missing input files are fatal. A single organisation failing — transport
// error or unparseable answer — is not: the row is logged and skipped, and
// the batch continues. Successfully parsed findings are written as one CSV.
// ============================================================================

// Completer is the model boundary, satisfied by *Client.
type Completer interface {
	Complete(prompt string) (string, error)
}

// Runner executes the investigation batch.
type Runner struct {
	client Completer
	log    zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(client Completer, log zerolog.Logger) *Runner {
	return &Runner{client: client, log: log}
}

// Run investigates every organisation in orgsPath against the framework list
// in frameworksPath and writes parsed findings to outPath. Returns the number
// of findings written.
func (r *Runner) Run(orgsPath, frameworksPath, outPath string) (int, error) {
	orgs, err := LoadOrganisations(orgsPath)
	if err != nil {
		return 0, err
	}
	frameworks, err := LoadFrameworks(frameworksPath)
	if err != nil {
		return 0, err
	}

	r.log.Info().
		Int("organisations", len(orgs)).
		Int("frameworks", len(frameworks)).
		Msg("starting investigation batch")

	var findings []Finding
	for _, org := range orgs {
		prompt := BuildPrompt(org, frameworks)

		answer, err := r.client.Complete(prompt)
		if err != nil {
			r.log.Warn().Err(err).Str("organisation", org.Name).Msg("completion failed, skipping")
			continue
		}

		finding, err := ParseFinding(answer)
		if err != nil {
			r.log.Warn().Err(err).Str("organisation", org.Name).Msg("JSON parse failed, skipping")
			continue
		}

		findings = append(findings, *finding)
	}

	if err := WriteFindings(outPath, findings); err != nil {
		return 0, err
	}

	r.log.Info().Int("findings", len(findings)).Str("out", outPath).Msg("investigation completed")
	return len(findings), nil
}

// ── Input loading ───────────────────────────────────────────────────────────

// LoadOrganisations reads the organisations CSV (columns: organisation,
// website, country).
func LoadOrganisations(path string) ([]Organisation, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx := columnIndex(header)
	orgCol, ok := idx["organisation"]
	if !ok {
		return nil, fmt.Errorf("%s: missing organisation column", path)
	}

	var orgs []Organisation
	for _, row := range rows {
		org := Organisation{Name: cell(row, orgCol)}
		if i, ok := idx["website"]; ok {
			org.Website = cell(row, i)
		}
		if i, ok := idx["country"]; ok {
			org.Country = cell(row, i)
		}
		if org.Name != "" {
			orgs = append(orgs, org)
		}
	}
	return orgs, nil
}

// LoadFrameworks reads the framework list CSV (a Name column).
func LoadFrameworks(path string) ([]string, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx := columnIndex(header)
	nameCol, ok := idx["name"]
	if !ok {
		return nil, fmt.Errorf("%s: missing Name column", path)
	}

	var names []string
	for _, row := range rows {
		if name := cell(row, nameCol); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("input not found: %s", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s header: %w", path, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// columnIndex maps normalized lowercase column names to their positions.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(dataset.NormalizeColumn(h))] = i
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ── Output ──────────────────────────────────────────────────────────────────

// WriteFindings writes findings to path as CSV with the fixed header.
func WriteFindings(path string, findings []Finding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(findingHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, finding := range findings {
		if err := cw.Write(finding.row()); err != nil {
			return fmt.Errorf("write finding: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
