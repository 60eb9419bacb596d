package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-list-mcp/internal/selection"
)

// DefaultOverlayColor is the outline and handle colour used when none is
// given.
const DefaultOverlayColor = "#3B86FF"

// OverlayOptions controls how a selection preview is drawn.
type OverlayOptions struct {
	// Color is the outline and handle colour as "#RRGGBB".
	Color string

	// Dim darkens everything outside the selection, from 0 (untouched) to
	// 1 (black).
	Dim float64

	// HandleSize is the side of the square resize handles. Zero hides them.
	HandleSize float64

	// ShowLabel draws the selection size in the top-left corner.
	ShowLabel bool
}

// OverlayResult contains the rendered preview
type OverlayResult struct {
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Selection   selection.Rect      `json:"selection"`
	Resizers    []selection.Resizer `json:"resizers,omitempty"`
	ImageBase64 string              `json:"image_base64"`
	MimeType    string              `json:"mime_type"`
}

// SelectionOverlay renders img with sel highlighted the way the crop tool
// shows it: the outside dimmed, the selection outlined, and its resize
// handles drawn on top.
func SelectionOverlay(img image.Image, sel selection.Rect, opts OverlayOptions) (*OverlayResult, error) {
	if opts.Dim < 0 || opts.Dim > 1 {
		return nil, fmt.Errorf("dim must be between 0 and 1, got %g", opts.Dim)
	}
	hex := opts.Color
	if hex == "" {
		hex = DefaultOverlayColor
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid overlay color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	accent := color.RGBA{R: r, G: g, B: b, A: 255}

	// Work on an origin-based copy so selection and pixel coordinates line up
	// with the source image regardless of its bounds.
	origin := img.Bounds().Min
	src := imaging.Clone(img)
	bounds := src.Bounds()

	sel = selection.Rect{X: sel.X - float64(origin.X), Y: sel.Y - float64(origin.Y), Width: sel.Width, Height: sel.Height}
	sel = sel.Intersect(selection.FromImage(bounds))
	region := sel.Image().Intersect(bounds)

	var result *image.RGBA
	if opts.Dim > 0 {
		result = adjust.Brightness(src, -opts.Dim)
	} else {
		result = image.NewRGBA(bounds)
		draw.Draw(result, bounds, src, bounds.Min, draw.Src)
	}

	var handles []selection.Resizer
	if !region.Empty() {
		draw.Draw(result, region, src, region.Min, draw.Src)
		strokeRect(result, region, accent)

		handles = selection.Resizers(sel, opts.HandleSize)
		for _, h := range handles {
			draw.Draw(result, h.Region.Image().Intersect(bounds), &image.Uniform{C: accent}, image.Point{}, draw.Src)
		}

		if opts.ShowLabel {
			label := fmt.Sprintf("%dx%d", int(math.Round(sel.Width)), int(math.Round(sel.Height)))
			drawLabel(result, region.Min.X+2, region.Min.Y+2, label, accent)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	// Report geometry back in the caller's coordinate space.
	sel.X += float64(origin.X)
	sel.Y += float64(origin.Y)
	for i := range handles {
		handles[i].Region.X += float64(origin.X)
		handles[i].Region.Y += float64(origin.Y)
	}

	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Selection:   sel,
		Resizers:    handles,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// strokeRect draws a one pixel border just inside r.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel draws text in white on a box of the accent colour with its
// top-left corner at (x, y).
func drawLabel(img *image.RGBA, x, y int, text string, bg color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	box := image.Rect(x, y, x+width+4, y+height+2).Intersect(img.Bounds())
	draw.Draw(img, box, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	d.Dot = fixed.P(x+2, y+1+metrics.Ascent.Ceil())
	d.DrawString(text)
}
