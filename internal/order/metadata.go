package order

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/sourcegraph/conc/iter"
)

// entry is the per-path snapshot a sort runs on. Only the fields the chosen
// key needs are filled in.
type entry struct {
	path string
	size int64
	when time.Time
	ext  string
	tag  uint64
	err  *MetadataError
}

// snapshot reads the metadata for every path exactly once. Keys that need
// filesystem access fan out over at most workers goroutines; the returned
// slice keeps the input order.
func snapshot(paths []string, by OrderBy, workers int) []*entry {
	read := func(p *string) *entry {
		return readEntry(*p, by)
	}

	if !by.needsStat() || len(paths) < 2 {
		entries := make([]*entry, len(paths))
		for i := range paths {
			entries[i] = read(&paths[i])
		}
		return entries
	}

	// conc treats zero as GOMAXPROCS but runs nothing for negative bounds.
	if workers < 0 {
		workers = 0
	}
	mapper := iter.Mapper[string, *entry]{MaxGoroutines: workers}
	return mapper.Map(paths, read)
}

func readEntry(path string, by OrderBy) *entry {
	e := &entry{path: path}

	switch by {
	case Name:
	case Extension:
		e.ext = strings.ToLower(filepath.Ext(path))
	case Random:
		e.tag = rand.Uint64()
	case ExifDateTaken:
		when, err := dateTaken(path)
		if err != nil {
			e.err = &MetadataError{Path: path, Err: err}
			break
		}
		e.when = when
	default:
		fi, err := os.Stat(path)
		if err != nil {
			e.err = &MetadataError{Path: path, Err: err}
			break
		}
		switch by {
		case FileSize:
			e.size = fi.Size()
		case LastWriteTime:
			e.when = fi.ModTime().UTC()
		case CreationTime:
			created, _ := fileTimes(path, fi)
			e.when = created.UTC()
		case LastAccessTime:
			_, accessed := fileTimes(path, fi)
			e.when = accessed.UTC()
		}
	}

	return e
}

// dateTaken returns the EXIF DateTime of an image. Files without a readable
// EXIF date fall back to their modification time.
func dateTaken(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}
	if fi.IsDir() {
		return fi.ModTime().UTC(), nil
	}

	x, err := exif.Decode(f)
	if err != nil {
		return fi.ModTime().UTC(), nil
	}
	dt, err := x.DateTime()
	if err != nil {
		return fi.ModTime().UTC(), nil
	}
	return dt.UTC(), nil
}
