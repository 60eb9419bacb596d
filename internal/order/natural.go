package order

import (
	"cmp"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Natural compares two strings the way a file explorer orders names.
//
// Runs of ASCII digits are compared by numeric value, so "img2" sorts before
// "img10". Everything else is compared rune by rune ignoring case. Numbers of
// any length are supported; nothing is parsed into a machine integer.
//
// When two strings are equal under those rules, the one whose first differing
// digit run carries fewer leading zeros sorts first ("1" before "01"), and a
// plain byte comparison settles anything left so that distinct strings never
// compare equal.
func Natural(a, b string) int {
	if r := naturalFold(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// ReverseNatural is Natural with the sign inverted.
func ReverseNatural(a, b string) int {
	return -Natural(a, b)
}

// NaturalComparer orders strings with Natural.
var NaturalComparer Comparer[string] = CompareFunc[string](Natural)

// Directory compares the parent directories of two paths with Natural.
// Paths that share a parent directory compare equal.
func Directory(a, b string) int {
	return Natural(filepath.Dir(a), filepath.Dir(b))
}

// ReverseDirectory is Directory with the sign inverted.
func ReverseDirectory(a, b string) int {
	return -Directory(a, b)
}

// DirectoryComparer returns the comparer used to bucket paths by parent
// directory. When group is false every pair compares equal.
func DirectoryComparer(group, desc bool) Comparer[string] {
	if !group {
		return Identity[string]()
	}
	if desc {
		return CompareFunc[string](ReverseDirectory)
	}
	return CompareFunc[string](Directory)
}

func naturalFold(a, b string) int {
	zeros := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			runA, runB := a[si:i], b[sj:j]
			numA, numB := strings.TrimLeft(runA, "0"), strings.TrimLeft(runB, "0")
			if len(numA) != len(numB) {
				return cmp.Compare(len(numA), len(numB))
			}
			if r := strings.Compare(numA, numB); r != 0 {
				return r
			}
			if zeros == 0 {
				zeros = cmp.Compare(len(runA), len(runB))
			}
			continue
		}

		ra, wa := utf8.DecodeRuneInString(a[i:])
		rb, wb := utf8.DecodeRuneInString(b[j:])
		if ra != rb {
			fa, fb := unicode.ToLower(ra), unicode.ToLower(rb)
			if fa != fb {
				return cmp.Compare(fa, fb)
			}
		}
		i += wa
		j += wb
	}

	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return zeros
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
