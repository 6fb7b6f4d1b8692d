package browser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifacts_Paths(t *testing.T) {
	assert.True(t, Artifacts{Dir: "out"}.Empty())

	a := Artifacts{Dir: "out", Screenshot: "out/screenshot.png", Video: "out/video.webm"}
	assert.Equal(t, []string{"out/screenshot.png", "out/video.webm"}, a.Paths())
	assert.False(t, a.Empty())
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, float64(1500), remaining(context.Background(), 1500*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ms := remaining(ctx, time.Hour)
	assert.LessOrEqual(t, ms, float64(10000))
	assert.Greater(t, ms, float64(9000))

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	assert.Equal(t, float64(1), remaining(expired, time.Hour), "an expired deadline still yields a positive timeout")
}

func TestLaunch_UnknownBrowser(t *testing.T) {
	_, err := Launch(LaunchOptions{Browser: "netscape"})
	assert.ErrorContains(t, err, `unknown browser "netscape"`)
}

func TestLaunch_CDPIsLazy(t *testing.T) {
	e, err := Launch(LaunchOptions{Browser: "cdp", Headless: true})
	require.NoError(t, err)
	assert.Equal(t, "cdp", e.Name())
	assert.NoError(t, e.Close())
}

func TestCDP_ScreenshotIsPNG(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	engine := NewCDP(LaunchOptions{Browser: "cdp", Headless: true})
	session, err := engine.NewSession(ctx, SessionOptions{Viewport: Viewport{Width: 800, Height: 600}})
	if err != nil {
		t.Skipf("chrome not available: %v", err)
	}
	defer session.Close(context.Background(), CloseOptions{})

	require.NoError(t, session.Page().Goto(ctx, "data:text/html,<h1>Swag Labs</h1>"))
	path := filepath.Join(t.TempDir(), "screenshot.png")
	require.NoError(t, session.Page().Screenshot(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "screenshot.png must hold PNG data")
}
