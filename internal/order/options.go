package order

import (
	"fmt"
	"strings"
)

// OrderBy selects the primary sort key of an image list.
type OrderBy int

const (
	Name OrderBy = iota
	FileSize
	CreationTime
	LastAccessTime
	LastWriteTime
	Extension
	Random
	ExifDateTaken
)

var orderByNames = map[OrderBy]string{
	Name:           "name",
	FileSize:       "file_size",
	CreationTime:   "creation_time",
	LastAccessTime: "last_access_time",
	LastWriteTime:  "last_write_time",
	Extension:      "extension",
	Random:         "random",
	ExifDateTaken:  "exif_date_taken",
}

// String returns the snake_case name used in config files and tool arguments.
func (o OrderBy) String() string {
	if s, ok := orderByNames[o]; ok {
		return s
	}
	return fmt.Sprintf("OrderBy(%d)", int(o))
}

// needsStat reports whether the key reads anything beyond the path string.
func (o OrderBy) needsStat() bool {
	switch o {
	case Name, Extension, Random:
		return false
	}
	return true
}

// ParseOrderBy parses a sort key name. Matching ignores case, underscores and
// hyphens, so "file_size", "FileSize" and "file-size" are all accepted. An
// empty string is Name.
func ParseOrderBy(s string) (OrderBy, error) {
	key := normalizeName(s)
	if key == "" {
		return Name, nil
	}
	for o, name := range orderByNames {
		if normalizeName(name) == key {
			return o, nil
		}
	}
	return Name, fmt.Errorf("unknown sort key: %q", s)
}

// OrderType is the sort direction.
type OrderType int

const (
	Asc OrderType = iota
	Desc
)

// String returns "asc" or "desc".
func (t OrderType) String() string {
	if t == Desc {
		return "desc"
	}
	return "asc"
}

// ParseOrderType parses "asc"/"ascending" or "desc"/"descending". An empty
// string is Asc.
func ParseOrderType(s string) (OrderType, error) {
	switch normalizeName(s) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return Asc, fmt.Errorf("unknown sort direction: %q", s)
}

// Options controls a single Sort call.
type Options struct {
	OrderBy    OrderBy
	OrderType  OrderType
	GroupByDir bool
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
