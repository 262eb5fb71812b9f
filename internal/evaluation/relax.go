package evaluation

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/annoeval/brat-compare/internal/annotation"
	"github.com/annoeval/brat-compare/internal/interval"
)

// bounds returns the half-open range a span occupies for overlap tests.
// A zero-length span is widened to the single position it marks.
func bounds(s annotation.Span) (int, int) {
	if s.End == s.Start {
		return s.Start, s.Start + 1
	}
	return s.Start, s.End
}

// buildTree indexes spans by position, each tagged with its input index.
func buildTree(spans []annotation.Span) *interval.Tree {
	ivs := make([]interval.Interval, len(spans))
	for i, s := range spans {
		start, end := bounds(s)
		ivs[i] = interval.Interval{Start: start, End: end, ID: i}
	}
	return interval.Build(ivs)
}

// relaxCompareDoc matches one document's spans by overlap. Each reference
// span that overlaps at least one system span counts once as a true
// positive no matter how many system spans it touches; every system span
// touched by some reference span is claimed. Unclaimed system spans are
// false positives, reported in input order.
func relaxCompareDoc(result EvaluationResult, doc string, system, reference annotation.GroupedSpans) {
	for _, typ := range system.Types() {
		e := result.evaluatorFor(typ)
		sys := system[typ]

		if len(reference[typ]) == 0 {
			for _, s := range sys {
				e.recordFP(doc, s)
			}
			continue
		}

		tree := buildTree(sys)
		claimed := roaring.New()

		for _, ref := range reference[typ] {
			ids := tree.Query(bounds(ref))
			if len(ids) == 0 {
				e.recordFN(doc, ref)
				continue
			}
			e.IncTP()
			for _, id := range ids {
				claimed.Add(uint32(id))
			}
		}

		unclaimed := roaring.New()
		unclaimed.AddRange(0, uint64(len(sys)))
		unclaimed.AndNot(claimed)
		it := unclaimed.Iterator()
		for it.HasNext() {
			e.recordFP(doc, sys[it.Next()])
		}
	}

	recordUnmatchedReference(result, doc, system, reference)
}
