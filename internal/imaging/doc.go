// Package imaging loads images and renders selection previews for the MCP server.
//
// It turns the selection geometry from package selection into pixels: loading
// and caching decoded files, cropping a selection out of an image, and drawing
// a selection overlay the way a viewer's crop tool shows it.
//
// # Coordinate System
//
// Selections are float rectangles in the image's own coordinate space, with
// (0,0) at the top-left, X increasing rightward and Y increasing downward.
// Before touching pixels a selection is clipped to the image bounds and
// rounded outward to whole pixels, so a selection of (10.5,10.5 9x9) covers
// the pixel block (10,10)-(20,20).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. CropSelection and
// SelectionOverlay never modify their input image.
//
// # Formats
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are decoded. Rendered output is always
// PNG, returned base64 encoded so it can travel in a JSON-RPC response.
//
// # Performance Considerations
//
// Large images may consume significant memory when cached. Use Evict or
// Clear to manage memory in long-running processes.
package imaging
