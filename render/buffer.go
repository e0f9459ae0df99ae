package render

import (
	"github.com/lixenwraith/tileworld/core"
)

// Cell is one character cell of the frame
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

var emptyCell = Cell{Rune: ' ', Fg: core.RGBWhite, Bg: core.RGBBlack}

// Buffer is a row-major frame with per-cell dirty tracking
// Writes that do not change a cell leave it clean
type Buffer struct {
	width  int
	height int
	cells  []Cell
	dirty  []bool
	nDirty int
}

// NewBuffer creates a buffer with every cell empty and dirty
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Resize reallocates only when capacity is short; content is reset and fully dirty
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.dirty = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.dirty = b.dirty[:size]
	}
	b.width, b.height = width, height
	for i := range b.cells {
		b.cells[i] = emptyCell
	}
	b.MarkAllDirty()
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); ok is false out of bounds
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Set writes c at (x, y) and reports whether the cell changed
func (b *Buffer) Set(x, y int, c Cell) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	if b.cells[idx] == c {
		return false
	}
	b.cells[idx] = c
	b.mark(idx)
	return true
}

// DrawText writes s from (x, y) and pads with spaces up to width cells; width 0 means no padding
func (b *Buffer) DrawText(x, y int, s string, fg, bg core.RGB, width int) {
	col := x
	for _, r := range s {
		if width > 0 && col-x >= width {
			return
		}
		b.Set(col, y, Cell{Rune: r, Fg: fg, Bg: bg})
		col++
	}
	for ; col-x < width; col++ {
		b.Set(col, y, Cell{Rune: ' ', Fg: fg, Bg: bg})
	}
}

func (b *Buffer) mark(idx int) {
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.nDirty++
	}
}

// MarkDirty forces (x, y) into the next flush
func (b *Buffer) MarkDirty(x, y int) {
	if b.inBounds(x, y) {
		b.mark(y*b.width + x)
	}
}

// MarkAllDirty forces a full flush
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.nDirty = len(b.dirty)
}

// DirtyCount returns the number of cells waiting for a flush
func (b *Buffer) DirtyCount() int { return b.nDirty }

// Dirty visits dirty cells in row-major order
func (b *Buffer) Dirty(fn func(x, y int, c Cell)) {
	if b.nDirty == 0 {
		return
	}
	for i, d := range b.dirty {
		if d {
			fn(i%b.width, i/b.width, b.cells[i])
		}
	}
}

// ClearDirty acknowledges a flush
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.nDirty = 0
}
