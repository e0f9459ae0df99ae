package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock derives game time from a TimeProvider minus every paused span
// RealTime keeps running while paused, for input timing and UI
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	realStart time.Time

	paused      atomic.Bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock starts a running clock at the provider's current time
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{
		source:    source,
		realStart: source.Now(),
	}
}

// Now returns game time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused.Load() {
		return pc.realStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPaused)
	}
	return pc.realStart.Add(pc.source.Now().Sub(pc.realStart) - pc.totalPaused)
}

// RealTime returns provider time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

func (pc *PausableClock) Pause() {
	if pc.paused.Load() {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.pauseStart = pc.source.Now()
	pc.paused.Store(true)
}

func (pc *PausableClock) Resume() {
	if !pc.paused.Load() {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.totalPaused += pc.source.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.paused.Store(false)
}

// Toggle flips the pause state and returns the new one
func (pc *PausableClock) Toggle() bool {
	if pc.paused.Load() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

func (pc *PausableClock) IsPaused() bool {
	return pc.paused.Load()
}

// TotalPauseDuration includes the pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused.Load() {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
