package threading

import (
	"time"

	"glyphray/internal/config"
	"glyphray/internal/threading/monitoring"
	"glyphray/internal/threading/rendering"
)

// ThreadingComponents holds all threading-related components
type ThreadingComponents struct {
	ParallelRenderer   *rendering.ParallelRenderer
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates and initializes all threading components.
// The parallel renderer is only created when parallel ray casting is enabled.
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	tc := &ThreadingComponents{
		PerformanceMonitor: monitoring.NewPerformanceMonitor(
			time.Duration(cfg.Engine.TickMs)*time.Millisecond,
			time.Duration(cfg.Engine.MetricsIntervalSec)*time.Second,
		),
	}
	if cfg.Raycast.Parallel {
		tc.ParallelRenderer = rendering.NewParallelRenderer(cfg.Engine.Workers)
	}
	return tc
}

// CastColumns runs fn for every column, in parallel when a renderer exists
func (tc *ThreadingComponents) CastColumns(n int, fn func(col int)) {
	if tc.ParallelRenderer == nil {
		for col := 0; col < n; col++ {
			fn(col)
		}
		return
	}
	tc.ParallelRenderer.CastColumns(n, fn)
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.ParallelRenderer != nil {
		tc.ParallelRenderer.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.TickMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts()
}
