package order

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// writeFile creates a file of the given size under dir and returns its path.
func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func setTimes(t *testing.T, path string, atime, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, atime, mtime); err != nil {
		t.Fatalf("failed to set times: %v", err)
	}
}

func mustSort(t *testing.T, paths []string, opts Options) *Result {
	t.Helper()
	res, err := Sort(context.Background(), paths, opts)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	return res
}

func sameMultiset(a, b []string) bool {
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func TestSort_NameNatural(t *testing.T) {
	res := mustSort(t, []string{"img2.png", "img10.png", "img1.png"}, Options{OrderBy: Name})

	want := []string{"img1.png", "img2.png", "img10.png"}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestSort_NameDescending(t *testing.T) {
	res := mustSort(t, []string{"img2.png", "img10.png", "img1.png"}, Options{OrderBy: Name, OrderType: Desc})

	want := []string{"img10.png", "img2.png", "img1.png"}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestSort_GroupByDirectory(t *testing.T) {
	b2 := filepath.Join("b", "2.png")
	a1 := filepath.Join("a", "1.png")
	a3 := filepath.Join("a", "3.png")
	b0 := filepath.Join("b", "0.png")

	res := mustSort(t, []string{b2, a1, a3}, Options{OrderBy: Name, GroupByDir: true})
	want := []string{a1, a3, b2}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("grouped asc: got %v, want %v", res.Paths, want)
	}

	// Without grouping the whole path is compared by natural order.
	res = mustSort(t, []string{b2, a1, b0, a3}, Options{OrderBy: Name})
	want = []string{a1, a3, b0, b2}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("ungrouped: got %v, want %v", res.Paths, want)
	}

	res = mustSort(t, []string{b2, a1, a3, b0}, Options{OrderBy: Name, OrderType: Desc, GroupByDir: true})
	want = []string{b2, b0, a3, a1}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("grouped desc: got %v, want %v", res.Paths, want)
	}
}

func TestSort_GroupingKeepsDirectoryBeforeKey(t *testing.T) {
	dir := t.TempDir()
	big := writeFile(t, dir, filepath.Join("b", "big.png"), 100)
	small := writeFile(t, dir, filepath.Join("a", "small.png"), 1)
	mid := writeFile(t, dir, filepath.Join("a", "mid.png"), 50)

	res := mustSort(t, []string{big, small, mid}, Options{OrderBy: FileSize, OrderType: Desc, GroupByDir: true})

	// Descending also reverses the directory buckets.
	want := []string{big, mid, small}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestSort_FileSize(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.png", 10)
	b := writeFile(t, dir, "b.png", 30)
	c := writeFile(t, dir, "c.png", 30)
	d := writeFile(t, dir, "d.png", 20)

	tests := []struct {
		name string
		typ  OrderType
		want []string
	}{
		{"ascending", Asc, []string{a, d, b, c}},
		{"descending ties by ascending name", Desc, []string{b, c, d, a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustSort(t, []string{c, a, d, b}, Options{OrderBy: FileSize, OrderType: tt.typ})
			if !slices.Equal(res.Paths, tt.want) {
				t.Errorf("got %v, want %v", res.Paths, tt.want)
			}
			if len(res.Unavailable) != 0 {
				t.Errorf("unexpected unavailable paths: %v", res.Unavailable)
			}
		})
	}
}

func TestSort_LastWriteTime(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p1 := writeFile(t, dir, "1.png", 1)
	p2 := writeFile(t, dir, "2.png", 1)
	p3 := writeFile(t, dir, "3.png", 1)
	setTimes(t, p1, base, base.Add(3*time.Hour))
	setTimes(t, p2, base, base.Add(1*time.Hour))
	setTimes(t, p3, base, base.Add(1*time.Hour))

	// Ascending is time first, then name, like every other key.
	res := mustSort(t, []string{p1, p2, p3}, Options{OrderBy: LastWriteTime})
	if want := []string{p2, p3, p1}; !slices.Equal(res.Paths, want) {
		t.Errorf("ascending: got %v, want %v", res.Paths, want)
	}

	res = mustSort(t, []string{p2, p3, p1}, Options{OrderBy: LastWriteTime, OrderType: Desc})
	if want := []string{p1, p2, p3}; !slices.Equal(res.Paths, want) {
		t.Errorf("descending: got %v, want %v", res.Paths, want)
	}
}

func TestSort_LastAccessTime(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	early := writeFile(t, dir, "z.png", 1)
	late := writeFile(t, dir, "a.png", 1)
	setTimes(t, early, base, base)
	setTimes(t, late, base.Add(48*time.Hour), base)

	res := mustSort(t, []string{late, early}, Options{OrderBy: LastAccessTime})
	if want := []string{early, late}; !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestSort_CreationTimeIsPermutation(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "c.png", 1),
		writeFile(t, dir, "a.png", 1),
		writeFile(t, dir, "b.png", 1),
	}

	for _, typ := range []OrderType{Asc, Desc} {
		res := mustSort(t, paths, Options{OrderBy: CreationTime, OrderType: typ})
		if !sameMultiset(res.Paths, paths) {
			t.Errorf("%s: result %v is not a permutation of %v", typ, res.Paths, paths)
		}
	}
}

func TestSort_Extension(t *testing.T) {
	paths := []string{"d.gif", "c.PNG", "b.jpg", "a.png", "e"}

	res := mustSort(t, paths, Options{OrderBy: Extension})
	want := []string{"e", "d.gif", "b.jpg", "a.png", "c.PNG"}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("ascending: got %v, want %v", res.Paths, want)
	}

	res = mustSort(t, paths, Options{OrderBy: Extension, OrderType: Desc})
	want = []string{"a.png", "c.PNG", "b.jpg", "d.gif", "e"}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("descending: got %v, want %v", res.Paths, want)
	}
}

func TestSort_Random(t *testing.T) {
	var paths []string
	for i := 0; i < 40; i++ {
		dir := "a"
		if i%2 == 1 {
			dir = "b"
		}
		paths = append(paths, filepath.Join(dir, strings.Repeat("x", i+1)+".png"))
	}

	// Direction never reverses the buckets: every a/ entry precedes every b/ entry.
	for _, typ := range []OrderType{Asc, Desc} {
		t.Run(typ.String(), func(t *testing.T) {
			res := mustSort(t, paths, Options{OrderBy: Random, OrderType: typ, GroupByDir: true})
			if !sameMultiset(res.Paths, paths) {
				t.Fatal("random sort lost or duplicated paths")
			}

			seenB := false
			for _, p := range res.Paths {
				inB := filepath.Dir(p) == "b"
				if seenB && !inB {
					t.Fatalf("directory grouping broken: %v", res.Paths)
				}
				seenB = seenB || inB
			}
		})
	}
}

func TestSort_RandomVariesBetweenCalls(t *testing.T) {
	var paths []string
	for i := 0; i < 30; i++ {
		paths = append(paths, strings.Repeat("p", i+1))
	}

	first := mustSort(t, paths, Options{OrderBy: Random})
	for i := 0; i < 10; i++ {
		next := mustSort(t, paths, Options{OrderBy: Random})
		if !slices.Equal(first.Paths, next.Paths) {
			return
		}
	}
	t.Error("random order never changed across 11 calls of 30 paths")
}

func TestSort_UnavailableSortsLast(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.png", 1)
	large := writeFile(t, dir, "large.png", 100)
	missing := filepath.Join(dir, "missing.png")
	gone := filepath.Join(dir, "gone.png")

	for _, typ := range []OrderType{Asc, Desc} {
		t.Run(typ.String(), func(t *testing.T) {
			res := mustSort(t, []string{missing, large, gone, small}, Options{OrderBy: FileSize, OrderType: typ})

			if !sameMultiset(res.Paths, []string{missing, large, gone, small}) {
				t.Fatalf("result is not a permutation: %v", res.Paths)
			}
			if tail := res.Paths[2:]; !slices.Equal(tail, []string{gone, missing}) {
				t.Errorf("unavailable paths should be last in natural order, got %v", res.Paths)
			}
			if len(res.Unavailable) != 2 {
				t.Fatalf("Unavailable: got %d entries, want 2", len(res.Unavailable))
			}
			if res.Unavailable[0].Path != gone {
				t.Errorf("Unavailable[0]: got %s, want %s", res.Unavailable[0].Path, gone)
			}

			err := res.Err()
			if !errors.Is(err, ErrMetadataUnavailable) {
				t.Errorf("Err() should match ErrMetadataUnavailable: %v", err)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Err() should wrap fs.ErrNotExist: %v", err)
			}

			var me *MetadataError
			if !errors.As(err, &me) {
				t.Error("Err() should contain a *MetadataError")
			}
		})
	}
}

func TestSort_NameKeyNeverTouchesFilesystem(t *testing.T) {
	res := mustSort(t, []string{"/does/not/exist/2.png", "/does/not/exist/1.png"}, Options{OrderBy: Name})
	if len(res.Unavailable) != 0 {
		t.Errorf("Name sort should not stat files, got %v", res.Unavailable)
	}
	if res.Err() != nil {
		t.Errorf("Err(): got %v, want nil", res.Err())
	}
}

func TestSort_PermutationsAndIdempotence(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, size := range []int{5, 3, 5, 9, 1, 3, 7} {
		name := filepath.Join([]string{"x", "y"}[i%2], "img"+strings.Repeat("0", i%3)+string(rune('a'+i))+".png")
		paths = append(paths, writeFile(t, dir, name, size))
	}

	keys := []OrderBy{Name, FileSize, LastWriteTime, Extension}
	rng := rand.New(rand.NewPCG(1, 2))

	for _, key := range keys {
		for _, typ := range []OrderType{Asc, Desc} {
			for _, group := range []bool{false, true} {
				opts := Options{OrderBy: key, OrderType: typ, GroupByDir: group}
				want := mustSort(t, paths, opts).Paths

				if !sameMultiset(want, paths) {
					t.Fatalf("%+v: not a permutation", opts)
				}

				again := mustSort(t, want, opts).Paths
				if !slices.Equal(again, want) {
					t.Errorf("%+v: re-sorting changed order: %v -> %v", opts, want, again)
				}

				for i := 0; i < 5; i++ {
					shuffled := slices.Clone(paths)
					rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
					got := mustSort(t, shuffled, opts).Paths
					if !slices.Equal(got, want) {
						t.Errorf("%+v: input order changed result: %v vs %v", opts, got, want)
					}
				}
			}
		}
	}
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	in := []string{"c", "a", "b"}
	mustSort(t, in, Options{})
	if !slices.Equal(in, []string{"c", "a", "b"}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestSort_KeepsDuplicates(t *testing.T) {
	res := mustSort(t, []string{"b", "a", "b"}, Options{})
	if want := []string{"a", "b", "b"}; !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestSort_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Sort(ctx, []string{"a"}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if res != nil {
		t.Error("result should be nil on cancellation")
	}
}

func TestSorter_WorkersAndLogger(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, writeFile(t, dir, "f"+strings.Repeat("1", i+1)+".png", 20-i))
	}

	s := NewSorter(3, zap.NewNop())
	res, err := s.Sort(context.Background(), paths, Options{OrderBy: FileSize})
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	want := slices.Clone(paths)
	slices.Reverse(want)
	if !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestResult_All(t *testing.T) {
	res := &Result{Paths: []string{"a", "b", "c"}}

	for round := 0; round < 2; round++ {
		var got []string
		for p := range res.All() {
			got = append(got, p)
		}
		if !slices.Equal(got, res.Paths) {
			t.Errorf("round %d: got %v", round, got)
		}
	}

	var first []string
	for p := range res.All() {
		first = append(first, p)
		break
	}
	if len(first) != 1 {
		t.Errorf("early break: got %v", first)
	}
}

func TestSorter_NegativeWorkers(t *testing.T) {
	dir := t.TempDir()
	big := writeFile(t, dir, "big.png", 30)
	small := writeFile(t, dir, "small.png", 10)

	res, err := NewSorter(-1, nil).Sort(context.Background(), []string{big, small}, Options{OrderBy: FileSize})
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if want := []string{small, big}; !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
}

func TestSort_ExifDateTakenFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	newer := writeFile(t, dir, "a.jpg", 5)
	older := writeFile(t, dir, "b.jpg", 5)
	missing := filepath.Join(dir, "c.jpg")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	setTimes(t, newer, base, base.Add(time.Hour))
	setTimes(t, older, base, base)

	res := mustSort(t, []string{missing, newer, older}, Options{OrderBy: ExifDateTaken})

	if want := []string{older, newer, missing}; !slices.Equal(res.Paths, want) {
		t.Errorf("got %v, want %v", res.Paths, want)
	}
	if len(res.Unavailable) != 1 || res.Unavailable[0].Path != missing {
		t.Errorf("Unavailable: got %v", res.Unavailable)
	}
}
