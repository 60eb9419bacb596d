package order

import (
	"slices"
	"testing"
)

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderBy
		wantErr bool
	}{
		{"", Name, false},
		{"name", Name, false},
		{"FileSize", FileSize, false},
		{"file_size", FileSize, false},
		{"file-size", FileSize, false},
		{"CreationTime", CreationTime, false},
		{"last_access_time", LastAccessTime, false},
		{"LASTWRITETIME", LastWriteTime, false},
		{"extension", Extension, false},
		{"random", Random, false},
		{"exif_date_taken", ExifDateTaken, false},
		{"colour", Name, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrderBy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderBy_StringRoundTrip(t *testing.T) {
	for o := Name; o <= ExifDateTaken; o++ {
		got, err := ParseOrderBy(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOrderBy(%q) = %v, %v", o.String(), got, err)
		}
	}
	if s := OrderBy(99).String(); s != "OrderBy(99)" {
		t.Errorf("unknown key string: got %s", s)
	}
}

func TestParseOrderType(t *testing.T) {
	for _, in := range []string{"", "asc", "Ascending"} {
		if got, err := ParseOrderType(in); err != nil || got != Asc {
			t.Errorf("ParseOrderType(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"desc", "DESCENDING"} {
		if got, err := ParseOrderType(in); err != nil || got != Desc {
			t.Errorf("ParseOrderType(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOrderType("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestChain(t *testing.T) {
	type pair struct {
		a int
		b string
	}
	pairs := []pair{{2, "b"}, {1, "z"}, {2, "a"}, {1, "a"}}

	c := Chain(
		By(func(p pair) int { return p.a }, Reverse(Ordered[int]())),
		By(func(p pair) string { return p.b }, Ordered[string]()),
	)
	slices.SortFunc(pairs, c.Compare)

	want := []pair{{2, "a"}, {2, "b"}, {1, "a"}, {1, "z"}}
	if !slices.Equal(pairs, want) {
		t.Errorf("got %v, want %v", pairs, want)
	}

	if Chain[int]().Compare(1, 2) != 0 {
		t.Error("empty chain should report equal")
	}
	if Identity[string]().Compare("a", "b") != 0 {
		t.Error("Identity should report equal")
	}
}
