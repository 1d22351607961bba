package monitoring

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks tick and stage timings
type PerformanceMonitor struct {
	// Tick metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last tick
	totalTime  atomic.Uint64 // nanoseconds, all ticks

	// Stage metrics, last tick
	raycastTime      atomic.Uint64
	spriteRenderTime atomic.Uint64
	entityUpdateTime atomic.Uint64

	// Game-specific metrics
	entitiesUpdated atomic.Uint64
	playerBlocks    atomic.Uint64
	overBudget      atomic.Uint64

	mutex        sync.RWMutex
	avgFrameTime float64
	startTime    time.Time
	lastReport   time.Time

	budget         time.Duration
	reportInterval time.Duration
}

// NewPerformanceMonitor creates a monitor for a tick budget. A zero report
// interval disables periodic log summaries.
func NewPerformanceMonitor(budget, reportInterval time.Duration) *PerformanceMonitor {
	now := time.Now()
	return &PerformanceMonitor{
		startTime:      now,
		lastReport:     now,
		budget:         budget,
		reportInterval: reportInterval,
	}
}

// FrameTimer helps measure tick timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins tick timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes tick timing and returns the elapsed time
func (ft *FrameTimer) EndFrame() time.Duration {
	elapsed := time.Since(ft.startTime)
	pm := ft.monitor

	pm.frameTime.Store(uint64(elapsed.Nanoseconds()))
	pm.totalTime.Add(uint64(elapsed.Nanoseconds()))
	count := pm.frameCount.Add(1)
	if pm.budget > 0 && elapsed > pm.budget {
		pm.overBudget.Add(1)
	}

	pm.mutex.Lock()
	pm.avgFrameTime = float64(pm.totalTime.Load()) / float64(count)
	pm.mutex.Unlock()

	return elapsed
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "raycast":
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case "sprite_render":
		pm.spriteRenderTime.Store(uint64(duration.Nanoseconds()))
	case "entity_update":
		pm.entityUpdateTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// UpdateGameMetrics records how many entities were updated and whether the
// player was blocked this tick
func (pm *PerformanceMonitor) UpdateGameMetrics(entities int, playerBlocked bool) {
	pm.entitiesUpdated.Add(uint64(entities))
	if playerBlocked {
		pm.playerBlocks.Add(1)
	}
}

// TickMetrics is a snapshot of the monitor
type TickMetrics struct {
	Frames          uint64
	FrameTime       time.Duration
	AverageFrame    time.Duration
	RaycastTime     time.Duration
	SpriteTime      time.Duration
	EntityTime      time.Duration
	EntitiesUpdated uint64
	PlayerBlocks    uint64
	OverBudget      uint64
	TicksPerSecond  float64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() TickMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	pm.mutex.RUnlock()

	frameTime := pm.frameTime.Load()
	tps := 0.0
	if frameTime > 0 {
		tps = float64(time.Second) / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return TickMetrics{
		Frames:          pm.frameCount.Load(),
		FrameTime:       time.Duration(frameTime),
		AverageFrame:    time.Duration(avg),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		SpriteTime:      time.Duration(pm.spriteRenderTime.Load()),
		EntityTime:      time.Duration(pm.entityUpdateTime.Load()),
		EntitiesUpdated: pm.entitiesUpdated.Load(),
		PlayerBlocks:    pm.playerBlocks.Load(),
		OverBudget:      pm.overBudget.Load(),
		TicksPerSecond:  tps,
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	frameTime := time.Duration(pm.frameTime.Load())
	if pm.budget > 0 && frameTime > pm.budget {
		alerts = append(alerts, PerformanceAlert{
			Type:      "tick_over_budget",
			Message:   "Last tick took longer than the tick interval",
			Value:     float64(frameTime.Milliseconds()),
			Threshold: float64(pm.budget.Milliseconds()),
			Timestamp: currentTime,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// MaybeReport logs a summary and any alerts once per report interval.
// It returns true when a report was written.
func (pm *PerformanceMonitor) MaybeReport() bool {
	if pm.reportInterval <= 0 {
		return false
	}

	pm.mutex.Lock()
	if time.Since(pm.lastReport) < pm.reportInterval {
		pm.mutex.Unlock()
		return false
	}
	pm.lastReport = time.Now()
	pm.mutex.Unlock()

	m := pm.GetCurrentMetrics()
	log.Printf("Perf: %d ticks, avg %v, last %v (raycast %v, sprites %v, entities %v), %d over budget",
		m.Frames, m.AverageFrame, m.FrameTime, m.RaycastTime, m.SpriteTime, m.EntityTime, m.OverBudget)
	for _, a := range pm.CheckPerformanceAlerts() {
		log.Printf("Warning: %s (%.1f > %.1f)", a.Message, a.Value, a.Threshold)
	}
	return true
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.totalTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.entityUpdateTime.Store(0)
	pm.entitiesUpdated.Store(0)
	pm.playerBlocks.Store(0)
	pm.overBudget.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.lastReport = pm.startTime
	pm.mutex.Unlock()
}

// Uptime returns the time since creation or the last Reset
func (pm *PerformanceMonitor) Uptime() time.Duration {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return time.Since(pm.startTime)
}
