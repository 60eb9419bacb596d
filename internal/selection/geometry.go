package selection

import (
	"image"
	"math"
)

// Point is a position in image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsEmpty reports whether p is the origin. An origin corner is treated the
// same as a missing one.
func (p Point) IsEmpty() bool {
	return p.X == 0 && p.Y == 0
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect clips r to b. When the two do not overlap the result has zero
// width and/or height and sits on the nearest edge of b.
func (r Rect) Intersect(b Rect) Rect {
	x1 := math.Max(r.X, b.X)
	y1 := math.Max(r.Y, b.Y)
	x2 := math.Min(r.Right(), b.Right())
	y2 := math.Min(r.Bottom(), b.Bottom())

	x1 = math.Min(x1, b.Right())
	y1 = math.Min(y1, b.Bottom())

	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Image converts r to integer pixel bounds covering every partially
// selected pixel.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())),
		int(math.Ceil(r.Bottom())),
	)
}

// FromImage converts integer pixel bounds to a Rect.
func FromImage(b image.Rectangle) Rect {
	return Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// Compute returns the rectangle spanned by two drag corners, clipped to
// bounds. The corners may be given in any order. If either is nil or at the
// origin, the zero Rect is returned.
func Compute(from, to *Point, bounds Rect) Rect {
	if from == nil || to == nil || from.IsEmpty() || to.IsEmpty() {
		return Rect{}
	}

	x1, x2 := from.X, to.X
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	y1, y2 := from.Y, to.Y
	if y2 < y1 {
		y1, y2 = y2, y1
	}

	sel := Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	return sel.Intersect(bounds)
}
