// Package selection computes drag-selection rectangles for the crop tool.
//
// Coordinates follow the image convention: (0,0) is the top-left corner, X
// grows rightward and Y downward. Rectangles are in float64 so selections on
// zoomed views keep sub-pixel precision; Rect.Image rounds outward to pixels.
//
// All functions are pure and safe for concurrent use.
package selection
