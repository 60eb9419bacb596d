// Package order sorts image lists the way a desktop image viewer walks a
// folder.
//
// # Comparers
//
// Ordering is built from small Comparer values composed with Chain, By,
// Reverse and Identity. Natural compares names with numeric runs taken by
// value ("img2" before "img10") and case ignored. Directory compares the
// parent directories of two paths with the same rule.
//
// # Sorting
//
// Sorter.Sort applies, in order:
//   - the parent directory, when grouping by directory is enabled
//   - the chosen key (name, size, times, extension, EXIF date, random)
//   - the natural name, ascending, to break any remaining tie
//
// Metadata is read once per path before comparing, in parallel for keys that
// touch the filesystem. A path that cannot be stat'd does not fail the sort:
// it sorts last within its directory bucket and is listed in
// Result.Unavailable as a *MetadataError.
package order
