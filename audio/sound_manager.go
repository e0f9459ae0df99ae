package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tileworld/sim"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays event cues through a shared mixer
// Safe to use without Initialize: cues are dropped until the speaker is up
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool

	onMute func(bool)
}

// NewSoundManager creates a manager at the given master volume in [0, 1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize opens the audio device and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close drops pending cues and releases the device
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// OnMuteChange registers a callback run after every mute change
func (sm *SoundManager) OnMuteChange(fn func(muted bool)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onMute = fn
}

// ToggleMute flips muting and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	sm.muted = !sm.muted
	muted, fn := sm.muted, sm.onMute
	sm.mu.Unlock()

	if fn != nil {
		fn(muted)
	}
	return muted
}

// SetMuted forces the mute state
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	fn := sm.onMute
	sm.mu.Unlock()

	if fn != nil {
		fn(muted)
	}
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// OnEvent plays the cue for a gameplay event
func (sm *SoundManager) OnEvent(ev sim.Event) {
	sm.Play(CueFor(ev.Kind))
}

// Play queues a cue; a no-op while muted or before Initialize
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := c.Streamer(sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(newVolume(s, sm.volume))
	speaker.Unlock()
}

// Pending returns the number of cues still playing in the mixer
func (sm *SoundManager) Pending() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
