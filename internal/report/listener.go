package report

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RunInfo describes a run as it starts
type RunInfo struct {
	RunID   string
	Profile string
	Browser string
	BaseURL string
	Tests   int
	Workers int
}

// Listener observes a run. Calls may come from several workers; use Multi
// to serialize them. Listeners cannot change outcomes.
type Listener interface {
	OnRunStart(info RunInfo)
	OnTestStart(id, name string)
	OnStepStart(id, step string)
	OnStepEnd(id string, step StepResult)
	OnTestEnd(result TestResult)
	OnRunEnd(result RunResult)
}

// Multi fans every event out to its listeners under one lock
type Multi struct {
	mu        sync.Mutex
	listeners []Listener
}

// NewMulti returns a listener that forwards to ls in order
func NewMulti(ls ...Listener) *Multi {
	return &Multi{listeners: ls}
}

func (m *Multi) each(fn func(l Listener)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.listeners {
		fn(l)
	}
}

func (m *Multi) OnRunStart(info RunInfo) {
	m.each(func(l Listener) { l.OnRunStart(info) })
}

func (m *Multi) OnTestStart(id, name string) {
	m.each(func(l Listener) { l.OnTestStart(id, name) })
}

func (m *Multi) OnStepStart(id, step string) {
	m.each(func(l Listener) { l.OnStepStart(id, step) })
}

func (m *Multi) OnStepEnd(id string, step StepResult) {
	m.each(func(l Listener) { l.OnStepEnd(id, step) })
}

func (m *Multi) OnTestEnd(result TestResult) {
	m.each(func(l Listener) { l.OnTestEnd(result) })
}

func (m *Multi) OnRunEnd(result RunResult) {
	m.each(func(l Listener) { l.OnRunEnd(result) })
}

// Console logs run progress through zap
type Console struct {
	logger *zap.Logger
}

// NewConsole creates a console listener
func NewConsole(logger *zap.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) OnRunStart(info RunInfo) {
	c.logger.Info("Run started",
		zap.String("run_id", info.RunID),
		zap.String("profile", info.Profile),
		zap.String("browser", info.Browser),
		zap.String("base_url", info.BaseURL),
		zap.Int("tests", info.Tests),
		zap.Int("workers", info.Workers))
}

func (c *Console) OnTestStart(id, name string) {
	c.logger.Info("Test started", zap.String("test", id), zap.String("name", name))
}

func (c *Console) OnStepStart(id, step string) {
	c.logger.Debug("Step started", zap.String("test", id), zap.String("step", step))
}

func (c *Console) OnStepEnd(id string, step StepResult) {
	if step.Status == StatusFailed {
		c.logger.Debug("Step failed",
			zap.String("test", id),
			zap.String("step", step.Name),
			zap.Duration("duration", step.Duration),
			zap.String("error", step.Error))
		return
	}
	c.logger.Debug("Step passed",
		zap.String("test", id),
		zap.String("step", step.Name),
		zap.Duration("duration", step.Duration))
}

func (c *Console) OnTestEnd(result TestResult) {
	if result.Skipped() {
		c.logger.Warn("Test skipped",
			zap.String("test", result.ID),
			zap.String("reason", result.Error))
		return
	}
	if result.Failed() {
		c.logger.Error("Test failed",
			zap.String("test", result.ID),
			zap.String("kind", string(result.Kind)),
			zap.Duration("duration", result.Duration.Round(time.Millisecond)),
			zap.String("error", result.Error),
			zap.Int("artifacts", len(result.Artifacts)))
		return
	}
	c.logger.Info("Test passed",
		zap.String("test", result.ID),
		zap.Duration("duration", result.Duration.Round(time.Millisecond)))
}

func (c *Console) OnRunEnd(result RunResult) {
	passed, failed, skipped := result.Counts()
	c.logger.Info("Run finished",
		zap.String("run_id", result.RunID),
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
		zap.Duration("duration", result.Duration.Round(time.Millisecond)))
}
