package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/engine"
	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/tilemap"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the whole game configuration as read from TOML
type Config struct {
	Timing TimingConfig   `toml:"timing"`
	Map    MapConfig      `toml:"map"`
	Tiles  []TileConfig   `toml:"tiles"`
	Units  UnitsConfig    `toml:"units"`
	Player PlayerConfig   `toml:"player"`
	Audio  AudioConfig    `toml:"audio"`
	Keys   input.Bindings `toml:"keys"`
}

type TimingConfig struct {
	TickMs     int     `toml:"tick_ms"`
	GameSpeed  float64 `toml:"game_speed"`
	MinSleepMs int     `toml:"min_sleep_ms"`
	MaxCatchUp int     `toml:"max_catch_up"`
}

type MapConfig struct {
	Path             string `toml:"path"` // empty uses the embedded map
	TileSize         int    `toml:"tile_size"`
	DefaultKind      string `toml:"default_kind"`
	StartColor       string `toml:"start_color"`
	DefaultPlaceable string `toml:"default_placeable"`
	PackageKind      string `toml:"package_kind"`
}

// TileConfig is one [[tiles]] entry; table order is color-match order
type TileConfig struct {
	Name         string `toml:"name"`
	Color        string `toml:"color,omitempty"` // "#rrggbb" or "r,g,b"; empty never matches a pixel
	Glyph        string `toml:"glyph,omitempty"`
	Placeable    bool   `toml:"placeable"`
	Walkable     bool   `toml:"walkable"`
	DestroyTicks int    `toml:"destroy_ticks"` // 0 is indestructible
	Footprint    []int  `toml:"footprint,omitempty"`
	Substitute   string `toml:"substitute,omitempty"`
}

type UnitsConfig struct {
	Beetles         int     `toml:"beetles"`
	BeetleSpeed     float64 `toml:"beetle_speed"`
	BeetleMaxTravel float64 `toml:"beetle_max_travel"`
	BeetleSize      int     `toml:"beetle_size"`
	Seed            uint64  `toml:"seed"` // 0 picks a random seed
}

type PlayerConfig struct {
	Speed        float64 `toml:"speed"`
	Size         int     `toml:"size"`
	PullMin      float64 `toml:"pull_min"`
	PullMax      float64 `toml:"pull_max"`
	PackageSpeed float64 `toml:"package_speed"`
	PackageSize  int     `toml:"package_size"`
}

type AudioConfig struct {
	Volume float64 `toml:"volume"`
	Muted  bool    `toml:"muted"`
}

// Load reads path on top of Default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default and validates the result
// A [[tiles]] list replaces the default tile table entirely
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// Decoding into a populated slice would merge entries field by field
	defaults := cfg.Tiles
	cfg.Tiles = nil
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if cfg.Tiles == nil {
		cfg.Tiles = defaults
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks value ranges and cross-section references
func (c *Config) Validate() error {
	switch {
	case c.Timing.TickMs <= 0:
		return fmt.Errorf("%w: timing.tick_ms must be positive", ErrInvalid)
	case c.Timing.GameSpeed <= 0:
		return fmt.Errorf("%w: timing.game_speed must be positive", ErrInvalid)
	case c.Timing.MinSleepMs < 0:
		return fmt.Errorf("%w: timing.min_sleep_ms must not be negative", ErrInvalid)
	case c.Timing.MaxCatchUp <= 0:
		return fmt.Errorf("%w: timing.max_catch_up must be positive", ErrInvalid)
	case c.Map.TileSize <= 0:
		return fmt.Errorf("%w: map.tile_size must be positive", ErrInvalid)
	case c.Units.Beetles < 0:
		return fmt.Errorf("%w: units.beetles must not be negative", ErrInvalid)
	case c.Player.PullMin < 0 || c.Player.PullMax <= c.Player.PullMin:
		return fmt.Errorf("%w: player pull band [%v, %v] is empty", ErrInvalid, c.Player.PullMin, c.Player.PullMax)
	case c.Player.Size <= 0 || c.Player.Size > c.Map.TileSize:
		return fmt.Errorf("%w: player.size must be in [1, %d]", ErrInvalid, c.Map.TileSize)
	case c.Player.PackageSize <= 0 || c.Player.PackageSize > c.Map.TileSize:
		return fmt.Errorf("%w: player.package_size must be in [1, %d]", ErrInvalid, c.Map.TileSize)
	case c.Units.BeetleSize <= 0 || c.Units.BeetleSize > c.Map.TileSize:
		return fmt.Errorf("%w: units.beetle_size must be in [1, %d]", ErrInvalid, c.Map.TileSize)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be in [0, 1]", ErrInvalid)
	}

	if _, err := c.Registry(); err != nil {
		return err
	}
	if _, err := c.KeyTable(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Registry builds the tile-kind registry from [[tiles]] and the [map] roles
func (c *Config) Registry() (*tilemap.Registry, error) {
	start, err := core.ParseRGB(c.Map.StartColor)
	if err != nil {
		return nil, fmt.Errorf("%w: map.start_color: %v", ErrInvalid, err)
	}

	defs := make([]tilemap.KindDef, 0, len(c.Tiles))
	for _, t := range c.Tiles {
		def := tilemap.KindDef{
			Name:         t.Name,
			Placeable:    t.Placeable,
			Walkable:     t.Walkable,
			DestroyTicks: t.DestroyTicks,
			Substitute:   t.Substitute,
		}
		if t.Color != "" {
			rgb, err := core.ParseRGB(t.Color)
			if err != nil {
				return nil, fmt.Errorf("%w: tile %q: %v", ErrInvalid, t.Name, err)
			}
			def.Color = &rgb
		}
		if t.DestroyTicks < 0 {
			return nil, fmt.Errorf("%w: tile %q: destroy_ticks must not be negative", ErrInvalid, t.Name)
		}
		for _, r := range t.Glyph {
			def.Glyph = r
			break
		}
		switch len(t.Footprint) {
		case 0:
		case 2:
			def.Footprint = tilemap.Footprint{W: t.Footprint[0], H: t.Footprint[1]}
		default:
			return nil, fmt.Errorf("%w: tile %q: footprint must be [w, h]", ErrInvalid, t.Name)
		}
		defs = append(defs, def)
	}

	reg, err := tilemap.NewRegistry(tilemap.RegistryConfig{
		Kinds:            defs,
		Default:          c.Map.DefaultKind,
		DefaultPlaceable: c.Map.DefaultPlaceable,
		Package:          c.Map.PackageKind,
		StartColor:       start,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return reg, nil
}

// KeyTable merges [keys] over the default bindings
func (c *Config) KeyTable() (*input.KeyTable, error) {
	return input.MergeKeyTable(input.DefaultKeyTable(), c.Keys)
}

// ClockConfig converts [timing] for the engine
func (c *Config) ClockConfig() engine.ClockConfig {
	return engine.ClockConfig{
		Tick:       time.Duration(c.Timing.TickMs) * time.Millisecond,
		Speed:      c.Timing.GameSpeed,
		MinSleep:   time.Duration(c.Timing.MinSleepMs) * time.Millisecond,
		MaxCatchUp: c.Timing.MaxCatchUp,
	}
}

// Settings converts [units] and [player] for the simulation
func (c *Config) Settings() sim.Settings {
	return sim.Settings{
		TickSeconds:     (time.Duration(c.Timing.TickMs) * time.Millisecond).Seconds(),
		PlayerSpeed:     c.Player.Speed,
		PlayerSize:      c.Player.Size,
		BeetleSpeed:     c.Units.BeetleSpeed,
		BeetleMaxTravel: c.Units.BeetleMaxTravel,
		BeetleSize:      c.Units.BeetleSize,
		PackageSpeed:    c.Player.PackageSpeed,
		PackageSize:     c.Player.PackageSize,
		PullMin:         c.Player.PullMin,
		PullMax:         c.Player.PullMax,
	}
}
