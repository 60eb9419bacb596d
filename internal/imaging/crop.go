package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-list-mcp/internal/selection"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Selection   selection.Rect `json:"selection"`
	ImageBase64 string         `json:"image_base64"`
	MimeType    string         `json:"mime_type"`
}

// CropSelection extracts the selected region of an image. The selection is
// clipped to the image and rounded outward to whole pixels; scale resizes the
// result with Lanczos resampling when it is positive and not 1. A zero scale
// keeps the original size and a negative one is an error.
func CropSelection(img image.Image, sel selection.Rect, scale float64) (*CropResult, error) {
	if scale < 0 {
		return nil, fmt.Errorf("scale must not be negative, got %g", scale)
	}

	bounds := img.Bounds()
	sel = sel.Intersect(selection.FromImage(bounds))

	region := sel.Image().Intersect(bounds)
	if region.Empty() {
		return nil, fmt.Errorf("selection (%g,%g %gx%g) does not cover any pixel of the image (%d,%d)-(%d,%d)",
			sel.X, sel.Y, sel.Width, sel.Height, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	cropped := imaging.Crop(img, region)

	if scale != 1.0 && scale != 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %g reduces the selection below one pixel", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		Selection:   sel,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
