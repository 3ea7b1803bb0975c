package widget

import "fmt"

// Geometry is the window origin and size in screen units.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Translate returns g moved by (dx, dy) with its size unchanged.
func (g Geometry) Translate(dx, dy int) Geometry {
	g.X += dx
	g.Y += dy
	return g
}

// String formats g as "WxH+X+Y".
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", g.Width, g.Height, g.X, g.Y)
}

// Contains reports whether the point (x, y) lies inside g.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.X && x < g.X+g.Width && y >= g.Y && y < g.Y+g.Height
}
