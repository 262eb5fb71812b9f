// Package interval provides a static index over half-open integer intervals
// answering "which intervals overlap [start, end)" in O(log n + k).
//
// The index is an implicit balanced binary search tree laid over the
// intervals sorted by (Start, End, ID). Node mid of the range [lo, hi) is
// augmented with the maximum End found in that range, which lets a query
// prune whole subtrees that end before the query begins.
package interval

import "sort"

// Interval is a half-open range [Start, End) carrying a caller-chosen ID.
type Interval struct {
	Start int
	End   int
	ID    int
}

// Empty reports whether the interval covers nothing.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Overlaps reports whether two half-open intervals share at least one point.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Tree is an immutable interval index. The zero value is an empty tree.
type Tree struct {
	items  []Interval
	maxEnd []int
}

// Build indexes the given intervals. Empty intervals are kept but can never
// match a query. The input slice is not modified.
func Build(intervals []Interval) *Tree {
	items := make([]Interval, len(intervals))
	copy(items, intervals)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})

	t := &Tree{
		items:  items,
		maxEnd: make([]int, len(items)),
	}
	t.augment(0, len(items))
	return t
}

// augment fills maxEnd for the subtree rooted at the midpoint of [lo, hi)
// and returns that subtree's maximum End.
func (t *Tree) augment(lo, hi int) int {
	if lo >= hi {
		return minInt
	}
	mid := int(uint(lo+hi) >> 1)
	m := t.items[mid].End
	if l := t.augment(lo, mid); l > m {
		m = l
	}
	if r := t.augment(mid+1, hi); r > m {
		m = r
	}
	t.maxEnd[mid] = m
	return m
}

const minInt = -int(^uint(0)>>1) - 1

// Len returns the number of indexed intervals.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Query returns the IDs of all intervals overlapping [start, end), ordered
// by (Start, End, ID). An empty query range matches nothing.
func (t *Tree) Query(start, end int) []int {
	if t.Len() == 0 || end <= start {
		return nil
	}
	var ids []int
	t.visit(0, len(t.items), start, end, func(iv Interval) {
		ids = append(ids, iv.ID)
	})
	return ids
}

func (t *Tree) visit(lo, hi, start, end int, fn func(Interval)) {
	if lo >= hi {
		return
	}
	mid := int(uint(lo+hi) >> 1)
	// Nothing in this subtree reaches past the query start.
	if t.maxEnd[mid] <= start {
		return
	}
	t.visit(lo, mid, start, end, fn)
	iv := t.items[mid]
	// Everything from mid onward starts at or after the query end.
	if iv.Start >= end {
		return
	}
	if !iv.Empty() && Overlaps(iv.Start, iv.End, start, end) {
		fn(iv)
	}
	t.visit(mid+1, hi, start, end, fn)
}
