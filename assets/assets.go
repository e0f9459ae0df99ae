package assets

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG format
	"os"
	"strings"

	"github.com/lixenwraith/tileworld/core"
)

//go:embed maps/*.txt
var builtinMaps embed.FS

// DefaultMapName is the embedded map used when no map file is given
const DefaultMapName = "meadow"

// ErrBadRaster reports a malformed text raster
var ErrBadRaster = errors.New("bad map raster")

// BuiltinMap decodes an embedded text raster by name
func BuiltinMap(name string) (*image.RGBA, error) {
	data, err := builtinMaps.ReadFile("maps/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("builtin map %q: %w", name, err)
	}
	return ParseRaster(data)
}

// LoadMap loads a map image from path, or the default embedded map when path is empty
// Files ending in .txt are read as text rasters, anything else through image.Decode
func LoadMap(path string) (image.Image, error) {
	if path == "" {
		return BuiltinMap(DefaultMapName)
	}
	if strings.HasSuffix(path, ".txt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("map: %w", err)
		}
		img, err := ParseRaster(data)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", path, err)
		}
		return img, nil
	}
	return LoadImage(path)
}

// LoadImage decodes any registered image format, PNG included
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	return img, nil
}

// ParseRaster converts a text raster into an image, one pixel per character
// Header lines "c = r,g,b" define the legend until a "---" separator; '#' lines are comments
// Rows may differ in length, short rows are padded with the first legend color
func ParseRaster(data []byte) (*image.RGBA, error) {
	legend := make(map[rune]core.RGB)
	var first core.RGB
	var rows [][]rune

	sc := bufio.NewScanner(bytes.NewReader(data))
	inHeader := true
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")

		if inHeader {
			trimmed := strings.TrimSpace(text)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			if trimmed == "---" {
				inHeader = false
				continue
			}
			key, rgb, err := parseLegend(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadRaster, line, err)
			}
			if _, dup := legend[key]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate legend %q", ErrBadRaster, line, key)
			}
			if len(legend) == 0 {
				first = rgb
			}
			legend[key] = rgb
			continue
		}

		if text == "" {
			continue
		}
		rows = append(rows, []rune(text))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRaster, err)
	}

	if len(legend) == 0 {
		return nil, fmt.Errorf("%w: no legend", ErrBadRaster)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadRaster)
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))
	for y, r := range rows {
		for x := 0; x < width; x++ {
			c := first
			if x < len(r) {
				var ok bool
				if c, ok = legend[r[x]]; !ok {
					return nil, fmt.Errorf("%w: row %d: character %q not in legend", ErrBadRaster, y, r[x])
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return img, nil
}

func parseLegend(s string) (rune, core.RGB, error) {
	runes := []rune(s)
	rest := strings.TrimSpace(string(runes[1:]))
	if !strings.HasPrefix(rest, "=") {
		return 0, core.RGB{}, fmt.Errorf("legend %q: expected 'c = r,g,b'", s)
	}
	rgb, err := core.ParseRGB(strings.TrimSpace(rest[1:]))
	if err != nil {
		return 0, core.RGB{}, err
	}
	return runes[0], rgb, nil
}
