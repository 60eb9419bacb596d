package order

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the image file extensions Expand picks up when no
// explicit list is given.
var DefaultExtensions = []string{
	".avif", ".bmp", ".gif", ".heic", ".heif", ".ico", ".jpe", ".jpeg", ".jpg",
	".jfif", ".png", ".svg", ".tif", ".tiff", ".webp",
}

// DistinctDirs returns the distinct directories referenced by paths: a file
// contributes its parent directory, a directory contributes itself, and paths
// that do not exist are skipped. Directories keep the order in which they
// first appear.
func DistinctDirs(paths []string) []string {
	seen := make(map[string]bool)
	dirs := []string{}

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}

		dir := p
		if !fi.IsDir() {
			dir = filepath.Dir(p)
		}
		dir = filepath.Clean(dir)

		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// Expand turns a mix of files and directories into a flat file list.
//
// Directories are listed one level deep and only files whose extension is in
// exts (case-insensitive) are kept; a nil exts means DefaultExtensions. Files
// and paths that do not exist are passed through untouched, so a later Sort
// reports them as unavailable instead of silently dropping them.
func Expand(paths []string, exts []string) ([]string, error) {
	if exts == nil {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || !fi.IsDir() {
			files = append(files, p)
			continue
		}

		dirEntries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		for _, de := range dirEntries {
			if de.IsDir() {
				continue
			}
			if allowed[strings.ToLower(filepath.Ext(de.Name()))] {
				files = append(files, filepath.Join(p, de.Name()))
			}
		}
	}

	return files, nil
}
