package game

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/lixenwraith/tileworld/audio"
	"github.com/lixenwraith/tileworld/config"
	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/engine"
	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/status"
	"github.com/lixenwraith/tileworld/tilemap"
)

// Options selects what a Session is built from
type Options struct {
	Config    *config.Config
	Map       image.Image
	MapSource string              // shown in the status line
	Time      engine.TimeProvider // nil uses the monotonic clock
	Logger    *log.Logger         // decode diagnostics; nil uses the standard logger
}

// Session is one running game shared by every frontend
type Session struct {
	Config  *config.Config
	Keys    *input.KeyTable
	World   *sim.World
	Loop    *engine.Loop
	Stats   *status.Registry
	Sound   *audio.SoundManager
	Decoded *tilemap.Decoded
}

// New decodes the map, spawns the player and beetles and wires the loop
// Audio is wired but not opened; callers decide whether to Initialize it
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("game: no config")
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	dec := &tilemap.Decoder{Registry: reg, TileSize: cfg.Map.TileSize, Logger: opts.Logger}
	decoded, err := dec.Decode(opts.Map)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if decoded.Unknown > 0 {
		log.Printf("map: %d pixels with unknown colors became %s", decoded.Unknown, reg.Kind(reg.Default()).Name)
	}
	if decoded.Skipped > 0 {
		log.Printf("map: %d multi-tile placements did not fit", decoded.Skipped)
	}

	spawn := decoded.Spawn
	if !decoded.HasSpawn {
		m := decoded.Map
		spawn = core.Point{X: m.Width() / 2, Y: m.Height() / 2}.Scale(m.TileSize())
		log.Printf("map: no start tile, spawning at center %v", spawn)
	}

	world := sim.NewWorld(decoded.Map, cfg.Settings(), cfg.Units.Seed)
	world.SpawnPlayer(spawn)
	if n := world.SpawnBeetles(cfg.Units.Beetles); n < cfg.Units.Beetles {
		log.Printf("map: only %d of %d beetles found room", n, cfg.Units.Beetles)
	}

	tp := opts.Time
	if tp == nil {
		tp = engine.NewMonotonicTimeProvider()
	}
	stats := status.NewRegistry()
	stats.Strings.Get(status.MapSource).Store(opts.MapSource)

	loop := engine.NewLoop(world, engine.NewSimClock(cfg.ClockConfig()), engine.NewPausableClock(tp), stats)

	muted := stats.Bools.Get(status.Muted)
	sound := audio.NewSoundManager(cfg.Audio.Volume)
	sound.OnMuteChange(muted.Store)
	sound.SetMuted(cfg.Audio.Muted)
	loop.AddListener(sound)
	loop.Bind(input.ActionToggleMute, func(pressed bool) bool {
		if pressed {
			sound.ToggleMute()
		}
		return true
	})

	return &Session{
		Config:  cfg,
		Keys:    keys,
		World:   world,
		Loop:    loop,
		Stats:   stats,
		Sound:   sound,
		Decoded: decoded,
	}, nil
}

// Close releases the audio device
func (s *Session) Close() {
	s.Sound.Close()
}
