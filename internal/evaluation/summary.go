package evaluation

import "math"

// summarize turns an evaluator's counts into a TypeSummary.
func summarize(typ string, e *Evaluator) TypeSummary {
	ts := TypeSummary{Type: typ, TP: e.TP(), FP: e.FP(), FN: e.FN()}
	if v, err := e.Precision(); err == nil {
		ts.Precision = &v
	}
	if v, err := e.Recall(); err == nil {
		ts.Recall = &v
	}
	if v, err := e.F1(); err == nil {
		ts.F1 = &v
	}
	return ts
}

// Summarize aggregates results across annotation types. Micro metrics are
// computed from the summed counts; MacroF1 averages the per-type F1 over
// the types where it is defined.
func Summarize(result EvaluationResult, mode Mode) *Summary {
	summary := &Summary{
		Mode:  mode.String(),
		Types: make([]TypeSummary, 0, len(result)),
	}

	total := NewEvaluator()
	var f1Sum float64
	f1Count := 0

	for _, typ := range result.Types() {
		e := result[typ]
		ts := summarize(typ, e)
		summary.Types = append(summary.Types, ts)
		total.Merge(e)

		if ts.F1 != nil {
			f1Sum += *ts.F1
			f1Count++
		}
	}

	summary.Micro = summarize("ALL", total)
	if f1Count > 0 {
		macro := math.RoundToEven(100*f1Sum/float64(f1Count)) / 100
		summary.MacroF1 = &macro
	}

	return summary
}
