package evaluation

import (
	"sort"

	"github.com/annoeval/brat-compare/internal/annotation"
)

// sortedByStart returns a copy of spans ordered by (Start, End), ties kept
// in input order.
func sortedByStart(spans []annotation.Span) []annotation.Span {
	out := make([]annotation.Span, len(spans))
	copy(out, spans)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// strictCompareDoc matches one document's spans by exact offsets. For each
// type in the system grouping both lists are sorted and walked with one
// cursor each; whichever side lags is advanced and its span recorded.
//
// The walk is greedy. When starts coincide but ends differ, the reference
// span is recorded as a false negative and both cursors move on, so that
// system span yields no outcome of its own.
func strictCompareDoc(result EvaluationResult, doc string, system, reference annotation.GroupedSpans) {
	for _, typ := range system.Types() {
		e := result.evaluatorFor(typ)
		sys := system[typ]

		if len(reference[typ]) == 0 {
			for _, s := range sys {
				e.recordFP(doc, s)
			}
			continue
		}

		a := sortedByStart(sys)
		b := sortedByStart(reference[typ])

		i, j := 0, 0
		for i < len(a) && j < len(b) {
			switch {
			case a[i].Start == b[j].Start:
				if a[i].End == b[j].End {
					e.IncTP()
				} else {
					e.recordFN(doc, b[j])
				}
				i++
				j++
			case a[i].Start < b[j].Start:
				e.recordFP(doc, a[i])
				i++
			default:
				e.recordFN(doc, b[j])
				j++
			}
		}

		for ; i < len(a); i++ {
			e.recordFP(doc, a[i])
		}
		for ; j < len(b); j++ {
			e.recordFN(doc, b[j])
		}
	}

	recordUnmatchedReference(result, doc, system, reference)
}

// recordUnmatchedReference files every span of a reference type the system
// side never produced as a false negative.
func recordUnmatchedReference(result EvaluationResult, doc string, system, reference annotation.GroupedSpans) {
	for _, typ := range reference.Types() {
		if _, ok := system[typ]; ok {
			continue
		}
		e := result.evaluatorFor(typ)
		for _, s := range reference[typ] {
			e.recordFN(doc, s)
		}
	}
}
