package engine

import (
	"log"
	"time"
)

// Hooks receive the simulation's two rates
// Update gets continuous sim seconds for movement, Tick fires once per fixed tick
type Hooks interface {
	Update(seconds float64)
	Tick()
}

// ClockConfig holds the external timing constants
type ClockConfig struct {
	Tick       time.Duration // fixed tick length in sim time
	Speed      float64       // sim seconds per wall second
	MinSleep   time.Duration // upper bound of the idle sleep between frames
	MaxCatchUp int           // ticks processed per frame before the rest is dropped
}

// DefaultClockConfig is 20 ticks per second at normal speed
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		Tick:       50 * time.Millisecond,
		Speed:      1,
		MinSleep:   5 * time.Millisecond,
		MaxCatchUp: 5,
	}
}

// SimClock drains a wall-clock budget in fixed ticks
// Each tick's span is fed to Update exactly once: the part before the tick
// boundary inside the tick loop, the carried remainder after it
type SimClock struct {
	cfg ClockConfig

	pending    time.Duration // budget not yet consumed by ticks
	integrated time.Duration // leading part of pending already passed to Update

	ticks   uint64
	dropped uint64
}

// NewSimClock fills unusable config values from DefaultClockConfig
func NewSimClock(cfg ClockConfig) *SimClock {
	def := DefaultClockConfig()
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Speed <= 0 {
		cfg.Speed = def.Speed
	}
	if cfg.MinSleep <= 0 {
		cfg.MinSleep = def.MinSleep
	}
	if cfg.MaxCatchUp <= 0 {
		cfg.MaxCatchUp = def.MaxCatchUp
	}
	return &SimClock{cfg: cfg}
}

// Advance adds wall elapsed time scaled by the game speed and runs due ticks
// Returns the number of ticks fired
func (c *SimClock) Advance(elapsed time.Duration, h Hooks) int {
	if elapsed > 0 {
		c.pending += time.Duration(float64(elapsed) * c.cfg.Speed)
	}

	// Too far behind: keep MaxCatchUp ticks, drop whole ticks beyond that
	if due := int(c.pending / c.cfg.Tick); due > c.cfg.MaxCatchUp {
		drop := due - c.cfg.MaxCatchUp
		c.pending -= time.Duration(drop) * c.cfg.Tick
		c.dropped += uint64(drop)
		log.Printf("engine: %d ticks behind, dropped %d", due, drop)
	}

	fired := 0
	for c.pending >= c.cfg.Tick {
		h.Update((c.cfg.Tick - c.integrated).Seconds())
		h.Tick()
		c.pending -= c.cfg.Tick
		c.integrated = 0
		c.ticks++
		fired++
	}

	if rest := c.pending - c.integrated; rest > 0 {
		h.Update(rest.Seconds())
		c.integrated = c.pending
	}
	return fired
}

// IdleSleep is the wall time to sleep when a frame fired no tick
// Bounded by MinSleep and by the wall time left until the next tick
func (c *SimClock) IdleSleep() time.Duration {
	untilTick := time.Duration(float64(c.cfg.Tick-c.pending) / c.cfg.Speed)
	return max(0, min(c.cfg.MinSleep, untilTick))
}

func (c *SimClock) Ticks() uint64               { return c.ticks }
func (c *SimClock) Dropped() uint64             { return c.dropped }
func (c *SimClock) Pending() time.Duration      { return c.pending }
func (c *SimClock) TickDuration() time.Duration { return c.cfg.Tick }
func (c *SimClock) Config() ClockConfig         { return c.cfg }
