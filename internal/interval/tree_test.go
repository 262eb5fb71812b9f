package interval

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		a0, a1     int
		b0, b1     int
		wantResult bool
	}{
		{"identical", 10, 20, 10, 20, true},
		{"contained", 10, 20, 12, 18, true},
		{"partial left", 0, 5, 3, 12, true},
		{"touching is not overlap", 0, 5, 5, 10, false},
		{"disjoint", 0, 5, 7, 10, false},
		{"empty a", 5, 5, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a0, tt.a1, tt.b0, tt.b1); got != tt.wantResult {
				t.Errorf("Overlaps() = %v, want %v", got, tt.wantResult)
			}
			if got := Overlaps(tt.b0, tt.b1, tt.a0, tt.a1); got != tt.wantResult {
				t.Errorf("Overlaps() should be symmetric")
			}
		})
	}
}

func TestTree_Query(t *testing.T) {
	tree := Build([]Interval{
		{Start: 0, End: 5, ID: 0},
		{Start: 10, End: 15, ID: 1},
		{Start: 3, End: 30, ID: 2},
		{Start: 20, End: 25, ID: 3},
	})

	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"spans two", 3, 12, []int{0, 2, 1}},
		{"inside long one", 16, 19, []int{2}},
		{"past everything", 30, 40, nil},
		{"before long one", 0, 3, []int{0}},
		{"empty query", 12, 12, nil},
		{"inverted query", 12, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.Query(tt.start, tt.end); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestTree_EmptyIntervalsNeverMatch(t *testing.T) {
	tree := Build([]Interval{{Start: 5, End: 5, ID: 0}})
	if got := tree.Query(0, 10); len(got) != 0 {
		t.Error("empty interval should not match any query")
	}
}

func TestTree_ZeroValue(t *testing.T) {
	var tree *Tree
	if tree.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tree.Len())
	}
	if got := tree.Query(0, 100); got != nil {
		t.Errorf("nil tree Query() = %v, want nil", got)
	}
	empty := Build(nil)
	if got := empty.Query(0, 100); len(got) != 0 {
		t.Error("empty tree should not match")
	}
}

func TestTree_DoesNotMutateInput(t *testing.T) {
	in := []Interval{{Start: 9, End: 10, ID: 0}, {Start: 1, End: 2, ID: 1}}
	Build(in)
	if in[0].ID != 0 || in[1].ID != 1 {
		t.Errorf("Build() reordered its input: %v", in)
	}
}

func TestTree_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		ivs := make([]Interval, n)
		for i := range ivs {
			s := rng.Intn(100)
			ivs[i] = Interval{Start: s, End: s + rng.Intn(15), ID: i}
		}
		tree := Build(ivs)

		for q := 0; q < 30; q++ {
			qs := rng.Intn(110)
			qe := qs + rng.Intn(20)

			var want []int
			for _, iv := range ivs {
				if !iv.Empty() && Overlaps(iv.Start, iv.End, qs, qe) {
					want = append(want, iv.ID)
				}
			}
			got := tree.Query(qs, qe)

			sort.Ints(want)
			sort.Ints(got)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round %d: Query(%d, %d) = %v, want %v", round, qs, qe, got, want)
			}
		}
	}
}
