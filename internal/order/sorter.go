package order

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Sorter orders image lists. The zero value is ready to use; it snapshots
// metadata with GOMAXPROCS goroutines and does not log.
type Sorter struct {
	// Workers bounds the goroutines used to read file metadata. Zero or
	// less means GOMAXPROCS.
	Workers int

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// NewSorter creates a Sorter with the given worker bound and logger.
func NewSorter(workers int, logger *zap.Logger) *Sorter {
	return &Sorter{Workers: workers, Logger: logger}
}

// Sort returns paths ordered by opts.
//
// The order is: parent directory (only when opts.GroupByDir), then the
// primary key in the requested direction, then the natural name ascending.
// Paths whose metadata cannot be read are reported in Result.Unavailable and
// placed after the readable paths of their directory bucket. Random ignores
// the direction, directory buckets included, and draws a fresh order on
// every call.
//
// The input slice is not modified. Sort only fails when ctx is done.
func (s *Sorter) Sort(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	entries := snapshot(paths, opts.OrderBy, s.Workers)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, comparerFor(opts).Compare)

	res := &Result{Paths: make([]string, len(entries))}
	for i, e := range entries {
		res.Paths[i] = e.path
		if e.err != nil {
			res.Unavailable = append(res.Unavailable, e.err)
		}
	}

	if s.Logger != nil {
		s.Logger.Debug("sorted image list",
			zap.Int("count", len(res.Paths)),
			zap.Stringer("order_by", opts.OrderBy),
			zap.Stringer("order_type", opts.OrderType),
			zap.Bool("group_by_dir", opts.GroupByDir),
			zap.Int("unavailable", len(res.Unavailable)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return res, nil
}

// Sort orders paths with a zero-value Sorter.
func Sort(ctx context.Context, paths []string, opts Options) (*Result, error) {
	var s Sorter
	return s.Sort(ctx, paths, opts)
}

func comparerFor(opts Options) Comparer[*entry] {
	desc := opts.OrderType == Desc
	dir := By(pathOf, DirectoryComparer(opts.GroupByDir, desc))
	name := By(pathOf, NaturalComparer)

	switch opts.OrderBy {
	case Name:
		return Chain[*entry](dir, Direction(name, desc))
	case Random:
		asc := By(pathOf, DirectoryComparer(opts.GroupByDir, false))
		return Chain[*entry](asc, By(tagOf, Ordered[uint64]()), name)
	case Extension:
		return Chain[*entry](dir, Direction(By(extOf, NaturalComparer), desc), name)
	case FileSize:
		return Chain[*entry](dir, unavailableLast, Direction(By(sizeOf, Ordered[int64]()), desc), name)
	default:
		return Chain[*entry](dir, unavailableLast, Direction(By(whenOf, timeComparer), desc), name)
	}
}

var timeComparer Comparer[time.Time] = CompareFunc[time.Time](time.Time.Compare)

var unavailableLast = CompareFunc[*entry](func(a, b *entry) int {
	switch {
	case a.err == nil && b.err != nil:
		return -1
	case a.err != nil && b.err == nil:
		return 1
	}
	return 0
})

func pathOf(e *entry) string    { return e.path }
func extOf(e *entry) string     { return e.ext }
func sizeOf(e *entry) int64     { return e.size }
func whenOf(e *entry) time.Time { return e.when }
func tagOf(e *entry) uint64     { return e.tag }
