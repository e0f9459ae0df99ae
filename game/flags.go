package game

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/lixenwraith/tileworld/assets"
	"github.com/lixenwraith/tileworld/config"
	"github.com/lixenwraith/tileworld/input"
)

// Flags are the command-line settings every frontend accepts
type Flags struct {
	Config     string
	Map        string
	Keys       string
	Debug      bool
	Mute       bool
	DumpConfig bool
}

// RegisterFlags binds Flags to fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "TOML config file, built-in defaults when empty")
	fs.StringVar(&f.Map, "map", "", "map image (.png) or text raster (.txt), overrides [map] path")
	fs.StringVar(&f.Keys, "keys", "", "TOML keymap with a [keys] table, merged over the config")
	fs.BoolVar(&f.Debug, "debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	fs.BoolVar(&f.Mute, "mute", false, "start with audio muted")
	fs.BoolVar(&f.DumpConfig, "dump-config", false, "print the effective config as TOML and exit")
	return f
}

// LoadConfig applies the config file, keymap file and -mute in that order
func (f *Flags) LoadConfig() (*config.Config, error) {
	cfg := config.Default()
	if f.Config != "" {
		var err error
		if cfg, err = config.Load(f.Config); err != nil {
			return nil, err
		}
	}

	if f.Keys != "" {
		data, err := os.ReadFile(f.Keys)
		if err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
		keys, err := input.LoadKeyConfig(data)
		if err != nil {
			return nil, fmt.Errorf("keymap %s: %w", f.Keys, err)
		}
		if cfg.Keys == nil {
			cfg.Keys = make(input.Bindings, len(keys))
		}
		for action, k := range keys {
			cfg.Keys[action] = k
		}
		if _, err := cfg.KeyTable(); err != nil {
			return nil, fmt.Errorf("keymap %s: %w", f.Keys, err)
		}
	}

	if f.Map != "" {
		cfg.Map.Path = f.Map
	}
	if f.Mute {
		cfg.Audio.Muted = true
	}
	return cfg, nil
}

// LoadMap reads the map named by cfg, or the embedded one
// The returned name is what the status line shows
func LoadMap(cfg *config.Config) (image.Image, string, error) {
	img, err := assets.LoadMap(cfg.Map.Path)
	if err != nil {
		return nil, "", err
	}
	name := assets.DefaultMapName
	if cfg.Map.Path != "" {
		name = filepath.Base(cfg.Map.Path)
	}
	return img, name, nil
}

// Prepare parses flags into a ready Session; a nil Session with nil error means the caller should exit
func Prepare(f *Flags) (*Session, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, err
	}
	if f.DumpConfig {
		return nil, cfg.Encode(os.Stdout)
	}

	img, name, err := LoadMap(cfg)
	if err != nil {
		return nil, err
	}
	return New(Options{Config: cfg, Map: img, MapSource: name})
}
