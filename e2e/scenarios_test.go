package e2e

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/swaglabs/shopcheck/internal/browser"
	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/fixture"
	"github.com/swaglabs/shopcheck/internal/pages"
	"github.com/swaglabs/shopcheck/internal/report"
	"github.com/swaglabs/shopcheck/internal/runner"
	"github.com/swaglabs/shopcheck/internal/scenarios"
	"go.uber.org/zap/zaptest"
)

// TestScenarios runs the whole catalog the way `shopcheck run` does and
// reports every scenario as a subtest.
func TestScenarios(t *testing.T) {
	data, err := dataset.Default()
	if err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}
	logger := zaptest.NewLogger(t)

	provider := fixture.NewProvider(fixture.Options{
		Engine:      engine,
		Viewport:    browser.Viewport{Width: 1720, Height: 850},
		Pages:       pages.Options{BaseURL: baseURL, Poll: 100 * time.Millisecond, Headless: true},
		Artifacts:   config.ArtifactsOnFailure,
		OutputDir:   t.TempDir(),
		CallTimeout: 30 * time.Second,
		Logger:      logger,
	})
	r := runner.New(provider, data, report.NewConsole(logger), runner.Options{
		Workers: 4,
		Browser: engine.Name(),
		BaseURL: baseURL,
		Logger:  logger,
	})

	result := r.Run(context.Background(), scenarios.All())

	for _, res := range result.Tests {
		t.Run(res.FullName(), func(t *testing.T) {
			if res.Skipped() {
				t.Skip(res.Error)
			}
			if !res.Failed() {
				return
			}
			var steps []string
			for _, s := range res.Steps {
				steps = append(steps, s.Name)
			}
			t.Errorf("%s (%s) after steps [%s]", res.Error, res.Kind, strings.Join(steps, "; "))
		})
	}
}

// TestLoginPage checks the storefront directly through the engine
// Feature: Login page
//
//	As a shopper
//	I want to see the login form
//	So that I can sign in
func TestLoginPage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := engine.NewSession(ctx, browser.SessionOptions{Viewport: browser.Viewport{Width: 1280, Height: 720}})
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close(context.Background(), browser.CloseOptions{})
	page := session.Page()

	// Given I am on the homepage
	if err := page.Goto(ctx, baseURL+"/"); err != nil {
		t.Fatalf("Failed to navigate to homepage: %v", err)
	}

	// Then I should see the logo
	logo, err := page.Text(ctx, ".login_logo")
	if err != nil {
		t.Fatalf("Failed to find logo: %v", err)
	}
	if logo != "Swag Labs" {
		t.Errorf("Expected logo 'Swag Labs', got '%s'", logo)
	}

	// And I should see the login button
	visible, err := page.IsVisible(ctx, `[data-test="login-button"]`)
	if err != nil {
		t.Fatalf("Failed to check the login button: %v", err)
	}
	if !visible {
		t.Error("Login button is not visible")
	}
}
