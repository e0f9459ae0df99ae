package config

// Default returns the built-in configuration matching the embedded map
func Default() *Config {
	return &Config{
		Timing: TimingConfig{
			TickMs:     50,
			GameSpeed:  1,
			MinSleepMs: 5,
			MaxCatchUp: 5,
		},
		Map: MapConfig{
			TileSize:         16,
			DefaultKind:      "grass",
			StartColor:       "#ff00ff",
			DefaultPlaceable: "fence",
			PackageKind:      "crate",
		},
		Tiles: []TileConfig{
			{Name: "grass", Color: "#4a8f3c", Placeable: true, Walkable: true},
			{Name: "water", Color: "#3060c8", Glyph: "~", Placeable: true, Substitute: "sand"},
			{Name: "sand", Color: "#dec878", Glyph: ".", Walkable: true, DestroyTicks: 20},
			{Name: "fence", Color: "#8c643c", Glyph: "+", DestroyTicks: 30},
			{Name: "rock", Color: "#787878", Glyph: "^", DestroyTicks: 60},
			{Name: "tree", Color: "#1e5a1e", Glyph: "T", DestroyTicks: 80, Footprint: []int{2, 2}},
			{Name: "house", Color: "#aa3c32", Glyph: "H", Footprint: []int{3, 2}},
			{Name: "crate", Color: "#e69628", Glyph: "=", DestroyTicks: 10},
		},
		Units: UnitsConfig{
			Beetles:         6,
			BeetleSpeed:     24,
			BeetleMaxTravel: 64,
			BeetleSize:      8,
		},
		Player: PlayerConfig{
			Speed:        64,
			Size:         12,
			PullMin:      12,
			PullMax:      48,
			PackageSpeed: 72,
			PackageSize:  8,
		},
		Audio: AudioConfig{
			Volume: 0.6,
		},
	}
}
