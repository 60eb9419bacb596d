package order

import (
	"errors"
	"fmt"
)

// ErrMetadataUnavailable is matched by every *MetadataError.
var ErrMetadataUnavailable = errors.New("metadata unavailable")

// MetadataError records a path whose filesystem metadata could not be read
// while snapshotting a sort. Such paths are still part of the result; they
// sort after every readable path in the same directory bucket.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata unavailable for %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrMetadataUnavailable and the underlying cause.
func (e *MetadataError) Unwrap() []error {
	return []error{ErrMetadataUnavailable, e.Err}
}
