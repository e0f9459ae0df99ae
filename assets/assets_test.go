package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestParseRaster(t *testing.T) {
	img, err := ParseRaster([]byte(`# test
. = 0,0,0
x = #ff0000
---
.x.
x
`))
	if err != nil {
		t.Fatalf("ParseRaster: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %dx%d", b.Dx(), b.Dy())
	}

	red := color.RGBA{R: 255, A: 255}
	black := color.RGBA{A: 255}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, black},
		{1, 0, red},
		{0, 1, red},
		{2, 1, black}, // padded
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("Expected %v at (%d, %d), got %v", tt.want, tt.x, tt.y, got)
		}
	}
}

func TestParseRasterEqualsKey(t *testing.T) {
	img, err := ParseRaster([]byte("= = 1,2,3\n---\n=\n"))
	if err != nil {
		t.Fatalf("ParseRaster: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("Expected (1,2,3), got %v", got)
	}
}

func TestParseRasterErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no legend", "---\n..\n"},
		{"no rows", ". = 0,0,0\n---\n"},
		{"unknown char", ". = 0,0,0\n---\n.?\n"},
		{"bad color", ". = red\n---\n.\n"},
		{"duplicate legend", ". = 0,0,0\n. = 1,1,1\n---\n.\n"},
		{"missing equals", ". 0,0,0\n---\n.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRaster([]byte(tt.data)); !errors.Is(err, ErrBadRaster) {
				t.Errorf("Expected ErrBadRaster, got %v", err)
			}
		})
	}
}

func TestBuiltinMap(t *testing.T) {
	img, err := BuiltinMap(DefaultMapName)
	if err != nil {
		t.Fatalf("BuiltinMap: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 22 {
		t.Errorf("Expected 40x22 default map, got %dx%d", b.Dx(), b.Dy())
	}

	starts := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{255, 0, 255, 255}) {
				starts++
			}
		}
	}
	if starts != 1 {
		t.Errorf("Expected exactly one start tile, got %d", starts)
	}

	if _, err := BuiltinMap("missing"); err == nil {
		t.Error("Expected error for unknown builtin map")
	}
}

func TestLoadMapPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Expected (10,20,30), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestLoadMapText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.txt")
	if err := os.WriteFile(path, []byte(". = 0,0,0\n---\n..\n"), 0644); err != nil {
		t.Fatal(err)
	}
	img, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("Expected width 2, got %d", img.Bounds().Dx())
	}
}

func TestLoadMapDefault(t *testing.T) {
	img, err := LoadMap("")
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("Expected non-empty default map")
	}
}

func TestLoadMapMissing(t *testing.T) {
	if _, err := LoadMap(filepath.Join(t.TempDir(), "nope.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}
