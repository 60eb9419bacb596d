package order

import "cmp"

// Comparer orders two values of the same type.
//
// Compare returns a negative number when a sorts before b, a positive number
// when a sorts after b, and zero when the comparer cannot tell them apart.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// CompareFunc adapts an ordinary function to the Comparer interface.
type CompareFunc[T any] func(a, b T) int

// Compare calls f(a, b).
func (f CompareFunc[T]) Compare(a, b T) int {
	return f(a, b)
}

// Reverse returns a comparer with the sign of c inverted.
func Reverse[T any](c Comparer[T]) Comparer[T] {
	return CompareFunc[T](func(a, b T) int {
		return -c.Compare(a, b)
	})
}

// Identity returns a comparer that reports every pair as equal.
func Identity[T any]() Comparer[T] {
	return CompareFunc[T](func(a, b T) int {
		return 0
	})
}

// Chain evaluates comparers left to right and returns the first non-zero
// result. An empty chain reports every pair as equal.
func Chain[T any](cs ...Comparer[T]) Comparer[T] {
	return CompareFunc[T](func(a, b T) int {
		for _, c := range cs {
			if r := c.Compare(a, b); r != 0 {
				return r
			}
		}
		return 0
	})
}

// By lifts a comparer over K into a comparer over T using key to extract the
// compared value.
func By[T, K any](key func(T) K, c Comparer[K]) Comparer[T] {
	return CompareFunc[T](func(a, b T) int {
		return c.Compare(key(a), key(b))
	})
}

// Direction applies c forwards or reversed depending on desc.
func Direction[T any](c Comparer[T], desc bool) Comparer[T] {
	if desc {
		return Reverse(c)
	}
	return c
}

// Ordered returns a comparer for any ordered type using cmp.Compare.
func Ordered[T cmp.Ordered]() Comparer[T] {
	return CompareFunc[T](cmp.Compare[T])
}
