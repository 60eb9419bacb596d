package selection

// ResizerType identifies one of the eight drag handles around a selection.
type ResizerType int

const (
	TopLeft     ResizerType = 0
	Top         ResizerType = 1 << 1
	TopRight    ResizerType = 1 << 2
	Right       ResizerType = 1 << 3
	BottomRight ResizerType = 1 << 4
	Bottom      ResizerType = 1 << 5
	BottomLeft  ResizerType = 1 << 6
	Left        ResizerType = 1 << 7
)

var resizerNames = map[ResizerType]string{
	TopLeft:     "top-left",
	Top:         "top",
	TopRight:    "top-right",
	Right:       "right",
	BottomRight: "bottom-right",
	Bottom:      "bottom",
	BottomLeft:  "bottom-left",
	Left:        "left",
}

func (t ResizerType) String() string {
	if s, ok := resizerNames[t]; ok {
		return s
	}
	return "unknown"
}

// Cursor returns the CSS cursor name shown while hovering the handle.
func (t ResizerType) Cursor() string {
	switch t {
	case TopLeft, BottomRight:
		return "nwse-resize"
	case TopRight, BottomLeft:
		return "nesw-resize"
	case Top, Bottom:
		return "ns-resize"
	case Left, Right:
		return "ew-resize"
	}
	return "default"
}

// Resizer is a single drag handle.
type Resizer struct {
	Type   ResizerType `json:"-"`
	Name   string      `json:"type"`
	Cursor string      `json:"cursor"`
	Region Rect        `json:"region"`
}

// Resizers returns the eight square handles of side size, centred on the
// corners and edge midpoints of sel, clockwise from the top-left. An empty
// selection has no handles.
func Resizers(sel Rect, size float64) []Resizer {
	if sel.IsEmpty() || size <= 0 {
		return nil
	}

	midX := sel.X + sel.Width/2
	midY := sel.Y + sel.Height/2
	centres := []struct {
		t    ResizerType
		x, y float64
	}{
		{TopLeft, sel.X, sel.Y},
		{Top, midX, sel.Y},
		{TopRight, sel.Right(), sel.Y},
		{Right, sel.Right(), midY},
		{BottomRight, sel.Right(), sel.Bottom()},
		{Bottom, midX, sel.Bottom()},
		{BottomLeft, sel.X, sel.Bottom()},
		{Left, sel.X, midY},
	}

	half := size / 2
	out := make([]Resizer, 0, len(centres))
	for _, c := range centres {
		out = append(out, Resizer{
			Type:   c.t,
			Name:   c.t.String(),
			Cursor: c.t.Cursor(),
			Region: Rect{X: c.x - half, Y: c.y - half, Width: size, Height: size},
		})
	}
	return out
}

// HitTest returns the first handle containing p. On tiny selections handles
// overlap and the earlier one in clockwise order wins.
func HitTest(resizers []Resizer, p Point) (ResizerType, bool) {
	for _, r := range resizers {
		if r.Region.Contains(p) {
			return r.Type, true
		}
	}
	return 0, false
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
