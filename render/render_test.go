package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/status"
	"github.com/lixenwraith/tileworld/tilemap"
)

var (
	grassRGB = core.RGB{R: 74, G: 143, B: 60}
	treeRGB  = core.RGB{R: 30, G: 90, B: 30}
)

func rgbPtr(c core.RGB) *core.RGB { return &c }

func testWorld(t *testing.T) *sim.World {
	t.Helper()
	reg, err := tilemap.NewRegistry(tilemap.RegistryConfig{
		Kinds: []tilemap.KindDef{
			{Name: "grass", Color: rgbPtr(grassRGB), Placeable: true},
			{Name: "fence", Glyph: '+', DestroyTicks: 2},
			{Name: "tree", Color: rgbPtr(treeRGB), Glyph: 'T', Footprint: tilemap.Footprint{W: 2, H: 2}},
			{Name: "crate", DestroyTicks: 1},
		},
		Default:          "grass",
		DefaultPlaceable: "fence",
		Package:          "crate",
		StartColor:       core.RGB{R: 255, B: 255},
	})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return sim.NewWorld(tilemap.New(reg, 6, 4, 16), sim.Settings{PlayerSize: 16, BeetleSize: 16}, 1)
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(4, 2)
	if b.DirtyCount() != 8 {
		t.Fatalf("Expected fresh buffer fully dirty, got %d", b.DirtyCount())
	}
	b.ClearDirty()

	c := Cell{Rune: 'x', Fg: core.RGBWhite, Bg: core.RGBBlack}
	if !b.Set(1, 1, c) || b.Set(1, 1, c) {
		t.Error("Expected only the first identical write to change the cell")
	}
	if b.Set(9, 9, c) {
		t.Error("Expected out of bounds write ignored")
	}

	b.DrawText(0, 0, "ab", core.RGBWhite, core.RGBBlack, 4)
	var got []core.Point
	b.Dirty(func(x, y int, _ Cell) { got = append(got, core.Point{X: x, Y: y}) })
	want := []core.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("Expected dirty %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dirty %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if cell, _ := b.Get(3, 0); cell.Rune != ' ' {
		t.Errorf("Expected padding space, got %q", cell.Rune)
	}
}

func TestPaletteFootprint(t *testing.T) {
	w := testWorld(t)
	tree, _ := w.Map.Registry().Lookup("tree")
	w.Map.Place(tree, 1, 1)
	pal := NewPalette(w.Map.Registry())

	head := pal.CellLook(w.Map, 1, 1)
	if head.Rune != 'T' || head.Bg != treeRGB {
		t.Errorf("Expected tree head look, got %+v", head)
	}
	ptr := pal.CellLook(w.Map, 2, 2)
	if ptr.Rune != ' ' || ptr.Bg != treeRGB.Scale(footprintDim) {
		t.Errorf("Expected dimmed pointer cell, got %+v", ptr)
	}

	fence, _ := w.Map.Registry().Lookup("fence")
	if l := pal.Tile(fence); l.Bg != core.RGBGray || l.Rune != '+' {
		t.Errorf("Expected gray fence with glyph, got %+v", l)
	}
}

func TestCompositorRedrawsOnlyChanges(t *testing.T) {
	w := testWorld(t)
	player := w.SpawnPlayer(core.Point{X: 16, Y: 16})
	comp := NewCompositor(w.Map, NewPalette(w.Map.Registry()), nil)
	buf := comp.Buffer()

	comp.Compose(w)
	if c, _ := buf.Get(1, 1); c.Rune != '@' || c.Bg != grassRGB {
		t.Errorf("Expected player over grass at (1, 1), got %+v", c)
	}
	if w.Map.NeedsRepaint() {
		t.Error("Expected repaint flag acknowledged")
	}
	buf.ClearDirty()

	comp.Compose(w)
	if buf.DirtyCount() != 0 {
		t.Errorf("Expected idle frame to dirty nothing, got %d", buf.DirtyCount())
	}

	// Sub-cell motion leaves the frame alone
	player.X += 3
	comp.Compose(w)
	if buf.DirtyCount() != 0 {
		t.Errorf("Expected no redraw within a cell, got %d", buf.DirtyCount())
	}

	player.X += 13
	comp.Compose(w)
	if buf.DirtyCount() != 2 {
		t.Errorf("Expected old and new cell dirty, got %d", buf.DirtyCount())
	}
	if c, _ := buf.Get(1, 1); c.Rune != ' ' {
		t.Errorf("Expected grass restored at (1, 1), got %q", c.Rune)
	}
	buf.ClearDirty()

	// Map change: full recompose, but only the changed cell differs
	fence, _ := w.Map.Registry().Lookup("fence")
	w.Map.Place(fence, 4, 3)
	comp.Compose(w)
	if buf.DirtyCount() != 1 {
		t.Errorf("Expected one changed tile, got %d", buf.DirtyCount())
	}
	buf.ClearDirty()

	w.Remove(player.ID)
	comp.Compose(w)
	if c, _ := buf.Get(2, 1); c.Rune == '@' {
		t.Error("Expected removed player erased")
	}
}

func TestCompositorStatusLine(t *testing.T) {
	w := testWorld(t)
	stats := status.NewRegistry()
	stats.Ints.Get(status.Beetles).Store(2)
	comp := NewCompositor(w.Map, NewPalette(w.Map.Registry()), stats)

	comp.Compose(w)
	var row []rune
	for x := 0; x < comp.Buffer().Width(); x++ {
		c, _ := comp.Buffer().Get(x, w.Map.Height())
		row = append(row, c.Rune)
	}
	if got := string(row); got != stats.Line()[:len(row)] {
		t.Errorf("Expected status row %q, got %q", stats.Line()[:len(row)], got)
	}
}

func TestTerminalRendererFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 6)

	w := testWorld(t)
	w.SpawnPlayer(core.Point{X: 32, Y: 0})
	r := NewTerminalRenderer(screen, NewCompositor(w.Map, NewPalette(w.Map.Registry()), nil))
	r.Present(w)

	primary, _, style, _ := screen.GetContent(2, 0)
	if primary != '@' {
		t.Errorf("Expected '@' at (2, 0), got %q", primary)
	}
	_, bg, _ := style.Decompose()
	if r, g, b := bg.RGB(); r != int32(grassRGB.R) || g != int32(grassRGB.G) || b != int32(grassRGB.B) {
		t.Errorf("Expected grass background, got (%d, %d, %d)", r, g, b)
	}
	if r.comp.Buffer().DirtyCount() != 0 {
		t.Error("Expected flush to clear dirty cells")
	}
}
