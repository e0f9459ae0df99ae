package sim

import (
	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/tilemap"
)

// EventKind classifies gameplay events consumed by audio and status
type EventKind uint8

const (
	EventTilePlaced EventKind = iota
	EventTileRemoved
	EventPackageGrabbed
	EventPackageThrown
	EventPackageDelivered
)

var eventNames = [...]string{
	EventTilePlaced:       "tile_placed",
	EventTileRemoved:      "tile_removed",
	EventPackageGrabbed:   "package_grabbed",
	EventPackageThrown:    "package_thrown",
	EventPackageDelivered: "package_delivered",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a gameplay fact produced during an update or tick
type Event struct {
	Kind   EventKind
	Cell   core.Point
	Tile   tilemap.KindID
	Entity EntityID
}

func (w *World) emit(ev Event) {
	w.events = append(w.events, ev)
}

// DrainEvents returns the events queued since the last drain
func (w *World) DrainEvents() []Event {
	if len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}
