package core

// Point represents a 2D coordinate, grid cells or pixels depending on context
type Point struct {
	X, Y int
}

// Add returns the component-wise sum
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Scale multiplies both components by n
func (p Point) Scale(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

// Div divides both components by n, flooring toward negative infinity
func (p Point) Div(n int) Point {
	return Point{X: floorDiv(p.X, n), Y: floorDiv(p.Y, n)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
