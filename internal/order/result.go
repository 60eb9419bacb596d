package order

import (
	"errors"
	"iter"
)

// Result is the outcome of a Sort call.
type Result struct {
	// Paths holds every input path, ordered.
	Paths []string

	// Unavailable lists the paths whose metadata could not be read, in the
	// order they appear in Paths.
	Unavailable []*MetadataError
}

// All yields the ordered paths. The sequence can be ranged over any number
// of times.
func (r *Result) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range r.Paths {
			if !yield(p) {
				return
			}
		}
	}
}

// Err joins the unavailable-metadata errors, or returns nil if there are
// none.
func (r *Result) Err() error {
	if len(r.Unavailable) == 0 {
		return nil
	}
	errs := make([]error, len(r.Unavailable))
	for i, e := range r.Unavailable {
		errs[i] = e
	}
	return errors.Join(errs...)
}
