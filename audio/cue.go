package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tileworld/sim"
)

// Cue names a short sound tied to a gameplay event
type Cue int

const (
	CueNone Cue = iota
	CuePlace
	CueRemove
	CueGrab
	CueThrow
	CueDeliver
)

// CueFor maps a gameplay event to its cue
func CueFor(k sim.EventKind) Cue {
	switch k {
	case sim.EventTilePlaced:
		return CuePlace
	case sim.EventTileRemoved:
		return CueRemove
	case sim.EventPackageGrabbed:
		return CueGrab
	case sim.EventPackageThrown:
		return CueThrow
	case sim.EventPackageDelivered:
		return CueDeliver
	}
	return CueNone
}

// Streamer builds a fresh stream for the cue at unity gain, nil for CueNone
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CuePlace:
		return tone(523.25, 60*time.Millisecond, WaveSquare, rate)
	case CueRemove:
		return beep.Seq(
			tone(220, 50*time.Millisecond, WaveSaw, rate),
			tone(164.81, 70*time.Millisecond, WaveSaw, rate),
		)
	case CueGrab:
		return beep.Mix(
			newVolume(sineTone(659.25, 90*time.Millisecond, rate), 0.7),
			newVolume(sineTone(1318.51, 90*time.Millisecond, rate), 0.3),
		)
	case CueThrow:
		return tone(0, 120*time.Millisecond, WaveNoise, rate)
	case CueDeliver:
		return beep.Seq(
			tone(987.77, 80*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 160*time.Millisecond, WaveSquare, rate),
		)
	}
	return nil
}
