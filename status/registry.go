package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys written by the loop and read by renderers
const (
	Ticks     = "engine.ticks"
	Dropped   = "engine.dropped"
	Paused    = "engine.paused"
	SimTime   = "engine.sim_seconds"
	Entities  = "sim.entities"
	Beetles   = "sim.beetles"
	Carrying  = "sim.carrying"
	Muted     = "audio.muted"
	MapSource = "map.source"
)

// Registry is the central metrics facade
// Writers cache pointers once; the frame loop stores directly into the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Line renders the one-line status summary shown under the map
func (r *Registry) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%.1fs tick %d", r.Floats.Get(SimTime).Get(), r.Ints.Get(Ticks).Load())
	if d := r.Ints.Get(Dropped).Load(); d > 0 {
		fmt.Fprintf(&b, " dropped %d", d)
	}
	fmt.Fprintf(&b, " beetles %d", r.Ints.Get(Beetles).Load())
	if r.Bools.Get(Carrying).Load() {
		b.WriteString(" carrying")
	}
	if src := r.Strings.Get(MapSource).Load(); src != "" {
		fmt.Fprintf(&b, " map %s", src)
	}
	if r.Bools.Get(Muted).Load() {
		b.WriteString(" [muted]")
	}
	if r.Bools.Get(Paused).Load() {
		b.WriteString(" [paused]")
	}
	return b.String()
}
