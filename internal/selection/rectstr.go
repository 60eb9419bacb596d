package selection

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseIntList parses a semicolon separated list such as "12; -40; 50".
// Items that are not integers are skipped rather than rejected, as are
// negative numbers when unsignedOnly is set. With distinct, repeated values
// keep only their first occurrence.
func ParseIntList(s string, unsignedOnly, distinct bool) []int {
	var nums []int
	seen := make(map[int]bool)

	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		n, err := strconv.Atoi(item)
		if err != nil {
			continue
		}
		if unsignedOnly && n < 0 {
			continue
		}
		if distinct {
			if seen[n] {
				continue
			}
			seen[n] = true
		}
		nums = append(nums, n)
	}

	return nums
}

// FormatIntList is the inverse of ParseIntList.
func FormatIntList(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ";")
}

// ParseRect parses "left;top;width;height" with integer components.
func ParseRect(s string) (Rect, error) {
	nums := ParseIntList(s, false, false)
	if len(nums) != 4 {
		return Rect{}, fmt.Errorf("invalid rectangle %q: want 4 integers (left;top;width;height), got %d", s, len(nums))
	}
	return Rect{
		X:      float64(nums[0]),
		Y:      float64(nums[1]),
		Width:  float64(nums[2]),
		Height: float64(nums[3]),
	}, nil
}

// FormatRect renders r as "left;top;width;height", rounding each component
// to the nearest integer.
func FormatRect(r Rect) string {
	return FormatIntList([]int{
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.Width)),
		int(math.Round(r.Height)),
	})
}

// ParsePoint parses "x,y".
func ParsePoint(s string) (*Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return &Point{X: x, Y: y}, nil
}
