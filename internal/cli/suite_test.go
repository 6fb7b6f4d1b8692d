package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/swaglabs/shopcheck/internal/browser/browsertest"
	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/runner"
	"go.uber.org/zap"
)

func TestLoadSuiteConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	// WHEN
	cfg, filter, err := LoadSuiteConfig(SuiteOptions{
		Profile: "smoke",
		Flags:   config.Flags{Workers: 2, BaseURL: "http://shop.test"},
		Files:   []string{"login"},
		Shard:   "1/2",
	})

	// THEN
	if err != nil {
		t.Fatalf("LoadSuiteConfig failed: %v", err)
	}
	if cfg.Workers != 2 || cfg.BaseURL != "http://shop.test" || cfg.Profile != "smoke" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(filter.Tags) != 1 || filter.Tags[0] != "smoke" {
		t.Errorf("expected the smoke tag from the profile, got %v", filter.Tags)
	}
	if filter.Shard != (runner.Shard{Index: 1, Total: 2}) {
		t.Errorf("unexpected shard %v", filter.Shard)
	}
}

func TestLoadSuiteConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    SuiteOptions
		env     map[string]string
		wantErr string
	}{
		{name: "unknown profile", opts: SuiteOptions{Profile: "opera"}, wantErr: `unknown profile "opera"`},
		{name: "bad shard", opts: SuiteOptions{Shard: "4/3"}, wantErr: "invalid shard"},
		{name: "retries", env: map[string]string{"SHOPCHECK_RETRIES": "2"}, wantErr: "retries must be 0"},
		{name: "unknown browser flag", opts: SuiteOptions{Flags: config.Flags{Browser: "lynx"}}, wantErr: `unsupported browser "lynx"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, _, err := LoadSuiteConfig(tt.opts)

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSelectScenarios(t *testing.T) {
	selected, err := SelectScenarios(runner.Filter{Files: []string{"handoff"}})
	if err != nil {
		t.Fatalf("SelectScenarios failed: %v", err)
	}
	if len(selected) != 2 || selected[0].ID != "TC_04" || selected[1].ID != "TC_05" {
		t.Errorf("unexpected selection %v", selected)
	}

	_, err = SelectScenarios(runner.Filter{Tags: []string{"nothing-has-this"}})
	if !errors.Is(err, ErrNoScenarios) {
		t.Errorf("expected ErrNoScenarios, got %v", err)
	}
}

func TestListScenarios(t *testing.T) {
	selected, err := SelectScenarios(runner.Filter{IDs: []string{"TC_01", "TC_08"}})
	if err != nil {
		t.Fatalf("SelectScenarios failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ListScenarios(&buf, selected); err != nil {
		t.Fatalf("ListScenarios failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "TC_01") || !strings.Contains(lines[0], "smoke") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "TC_08") || !strings.Contains(lines[1], "checkout") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestExecuteSuite_WritesReportsForFailures(t *testing.T) {
	// GIVEN
	t.Chdir(t.TempDir())
	out := t.TempDir()
	cfg, filter, err := LoadSuiteConfig(SuiteOptions{Flags: config.Flags{OutputDir: out}, IDs: []string{"TC_01"}})
	if err != nil {
		t.Fatalf("LoadSuiteConfig failed: %v", err)
	}
	cfg.Timeout = 300 * time.Millisecond
	cfg.PollInterval = 5 * time.Millisecond
	selected, err := SelectScenarios(filter)
	if err != nil {
		t.Fatalf("SelectScenarios failed: %v", err)
	}
	// an empty page never shows the login form
	engine := &browsertest.Engine{}

	// WHEN
	result, err := ExecuteSuite(context.Background(), engine, cfg, selected, zap.NewNop())

	// THEN
	if !errors.Is(err, ErrTestsFailed) {
		t.Fatalf("expected ErrTestsFailed, got %v", err)
	}
	if len(result.Tests) != 1 || !result.Tests[0].Failed() {
		t.Fatalf("expected one failed test, got %+v", result.Tests)
	}
	if engine.Open() != 0 {
		t.Errorf("expected every session closed, %d still open", engine.Open())
	}
	for _, name := range []string{"report.html", "junit.xml", filepath.Join("results", "summary.json"), filepath.Join("results", "TC_01.json")} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}
