package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-list-mcp/internal/selection"
)

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// A viewer walking a folder revisits the same file for cropping and preview
// rendering, so decoded images are kept until Evict or Clear is called. The
// path string is the key as given; "./a.png" and "a.png" are separate
// entries.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP.
func (c *ImageCache) Load(path string) (image.Image, error) {
	ci, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return ci.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	ci, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return ci, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	ci = cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = ci
	c.mu.Unlock()

	return ci, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes an image file and the area a selection may cover.
type ImageInfo struct {
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Format        string         `json:"format"`
	FileSizeBytes int64          `json:"file_size_bytes"`
	ModifiedAt    time.Time      `json:"modified_at"`
	Bounds        selection.Rect `json:"bounds"`
}

// LoadImageInfo loads path through the cache and reports its dimensions,
// decoded format and file metadata. Format comes from the decoder, not the
// file extension.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	ci, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := ci.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        ci.format,
		FileSizeBytes: stat.Size(),
		ModifiedAt:    stat.ModTime().UTC(),
		Bounds:        selection.FromImage(bounds),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
