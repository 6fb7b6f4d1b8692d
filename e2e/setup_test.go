// Package e2e runs the scenario catalog in a real browser against the
// bundled storefront, or against SHOPCHECK_BASE_URL when it is set.
package e2e

import (
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/swaglabs/shopcheck/internal/browser"
	"github.com/swaglabs/shopcheck/internal/cli"
	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/repository"
	"go.uber.org/zap"
)

var (
	engine  browser.Engine
	baseURL string
)

// TestMain starts the storefront and the browser for all tests. Without an
// installed Playwright driver the package is skipped.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	baseURL = os.Getenv("SHOPCHECK_BASE_URL")
	if baseURL == "" {
		deps, err := cli.BuildServerDependencies(
			config.ServerConfig{Port: "0", GlitchDelay: 500 * time.Millisecond},
			repository.NewMemoryOrderRepository(),
			zap.NewNop(),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build storefront: %v\n", err)
			return 1
		}
		listener, server, err := cli.StartServer(deps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start storefront: %v\n", err)
			return 1
		}
		defer listener.Close()
		defer server.Close()
		baseURL = fmt.Sprintf("http://127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)
	}

	// Browsers are installed with:
	// go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
	pw, err := browser.NewPlaywright(browser.LaunchOptions{Browser: config.BrowserChromium, Headless: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipping e2e tests: %v\n", err)
		return 0
	}
	engine = pw
	defer engine.Close()

	return m.Run()
}
