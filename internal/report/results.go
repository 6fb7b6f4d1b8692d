package report

import (
	"path/filepath"

	json "github.com/json-iterator/go"
)

// ResultsWriter writes one JSON file per test plus summary.json
type ResultsWriter struct {
	Dir string
}

// Summary is the content of summary.json
type Summary struct {
	RunID    string   `json:"run_id"`
	Profile  string   `json:"profile,omitempty"`
	Browser  string   `json:"browser"`
	BaseURL  string   `json:"base_url"`
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"skipped"`
	Duration string   `json:"duration"`
	Failures []string `json:"failures,omitempty"`
}

func (w *ResultsWriter) Name() string { return ReporterResults }

func (w *ResultsWriter) Write(result RunResult) error {
	for _, t := range result.Tests {
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(w.Dir, filepath.Base(t.ID)+".json"), data); err != nil {
			return err
		}
	}

	passed, failed, skipped := result.Counts()
	summary := Summary{
		RunID:    result.RunID,
		Profile:  result.Profile,
		Browser:  result.Browser,
		BaseURL:  result.BaseURL,
		Passed:   passed,
		Failed:   failed,
		Skipped:  skipped,
		Duration: result.Duration.String(),
	}
	for _, t := range result.Tests {
		if t.Status != StatusPassed {
			summary.Failures = append(summary.Failures, t.ID)
		}
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(w.Dir, "summary.json"), data)
}
