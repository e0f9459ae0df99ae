package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/status"
)

// Frontend is a display plus input source driven by Loop.Run
type Frontend interface {
	// Actions returns resolved transitions observed since the previous call
	Actions(now time.Time) []input.Event
	// Present draws the current world state
	Present(w *sim.World)
}

// EventListener consumes gameplay events after each frame
type EventListener interface {
	OnEvent(ev sim.Event)
}

// ActionFunc handles one transition; returning false ends the loop
type ActionFunc func(pressed bool) bool

// Loop glues clock, world, input dispatch and presentation on one goroutine
type Loop struct {
	World *sim.World
	Clock *SimClock
	Time  *PausableClock

	dispatch  map[input.Action]ActionFunc
	listeners []EventListener
	last      time.Time
	simTime   time.Duration

	statTicks    *atomic.Int64
	statDropped  *atomic.Int64
	statBeetles  *atomic.Int64
	statEntities *atomic.Int64
	statPaused   *atomic.Bool
	statCarrying *atomic.Bool
	statSimTime  *status.AtomicFloat
}

// NewLoop builds the action dispatch table once; unbound actions go to the world
func NewLoop(w *sim.World, clock *SimClock, pc *PausableClock, reg *status.Registry) *Loop {
	l := &Loop{
		World:        w,
		Clock:        clock,
		Time:         pc,
		last:         pc.Now(),
		statTicks:    reg.Ints.Get(status.Ticks),
		statDropped:  reg.Ints.Get(status.Dropped),
		statBeetles:  reg.Ints.Get(status.Beetles),
		statEntities: reg.Ints.Get(status.Entities),
		statPaused:   reg.Bools.Get(status.Paused),
		statCarrying: reg.Bools.Get(status.Carrying),
		statSimTime:  reg.Floats.Get(status.SimTime),
	}

	l.dispatch = map[input.Action]ActionFunc{
		input.ActionQuit: func(pressed bool) bool { return !pressed },
		input.ActionPause: func(pressed bool) bool {
			if pressed {
				l.statPaused.Store(pc.Toggle())
			}
			return true
		},
	}
	return l
}

// Bind installs fn for action, replacing the previous handler
func (l *Loop) Bind(a input.Action, fn ActionFunc) {
	l.dispatch[a] = fn
}

// AddListener registers a consumer for gameplay events
func (l *Loop) AddListener(li EventListener) {
	l.listeners = append(l.listeners, li)
}

// HandleAction dispatches one resolved transition; false means quit
func (l *Loop) HandleAction(ev input.Event) bool {
	if fn, ok := l.dispatch[ev.Action]; ok {
		return fn(ev.Pressed)
	}
	l.World.ApplyAction(ev.Action, ev.Pressed)
	return true
}

// Frame advances the simulation to the current game time and publishes events and metrics
// Returns the idle sleep to perform before the next frame, zero when a tick fired
func (l *Loop) Frame() time.Duration {
	now := l.Time.Now()
	elapsed := now.Sub(l.last)
	l.last = now

	fired := l.Clock.Advance(elapsed, l.World)
	l.simTime += time.Duration(float64(max(elapsed, 0)) * l.Clock.Config().Speed)

	for _, ev := range l.World.DrainEvents() {
		for _, li := range l.listeners {
			li.OnEvent(ev)
		}
	}
	l.publish()

	if fired > 0 {
		return 0
	}
	return l.Clock.IdleSleep()
}

func (l *Loop) publish() {
	l.statTicks.Store(int64(l.Clock.Ticks()))
	l.statDropped.Store(int64(l.Clock.Dropped()))
	l.statBeetles.Store(int64(l.World.Count(sim.SpriteBeetle)))
	l.statEntities.Store(int64(l.World.Len()))
	l.statPaused.Store(l.Time.IsPaused())
	l.statSimTime.Set(l.simTime.Seconds())

	carrying := false
	if _, p := l.World.Player(); p != nil {
		carrying = p.Following != 0
	}
	l.statCarrying.Store(carrying)
}

// Run drives frames until quit or ctx is canceled
// Quit is honored as soon as it is read, before the frame it arrived in
func (l *Loop) Run(ctx context.Context, f Frontend) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, ev := range f.Actions(l.Time.RealTime()) {
			if !l.HandleAction(ev) {
				return nil
			}
		}

		sleep := l.Frame()
		f.Present(l.World)

		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
