package evaluation

import (
	"fmt"

	"github.com/annoeval/brat-compare/internal/annotation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
)

// Evaluator accumulates agreement counts for one annotation type across a
// corpus, together with the false positive and false negative spans per
// document. TN stays absent unless AddTN is called; no matcher does.
type Evaluator struct {
	tp, fp, fn int
	tn         *int

	fps *Evidence
	fns *Evidence
}

// NewEvaluator creates an empty evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		fps: newEvidence(),
		fns: newEvidence(),
	}
}

func checkIncrement(counter string, n int) error {
	if n < 0 {
		return apperrors.ValidationError(fmt.Sprintf("negative %s increment %d", counter, n))
	}
	return nil
}

// AddTP adds n true positives.
func (e *Evaluator) AddTP(n int) error {
	if err := checkIncrement("tp", n); err != nil {
		return err
	}
	e.tp += n
	return nil
}

// AddFP adds n false positives.
func (e *Evaluator) AddFP(n int) error {
	if err := checkIncrement("fp", n); err != nil {
		return err
	}
	e.fp += n
	return nil
}

// AddFN adds n false negatives.
func (e *Evaluator) AddFN(n int) error {
	if err := checkIncrement("fn", n); err != nil {
		return err
	}
	e.fn += n
	return nil
}

// AddTN adds n true negatives, initializing the counter on first use.
func (e *Evaluator) AddTN(n int) error {
	if err := checkIncrement("tn", n); err != nil {
		return err
	}
	if e.tn == nil {
		v := n
		e.tn = &v
		return nil
	}
	*e.tn += n
	return nil
}

// IncTP records a single true positive.
func (e *Evaluator) IncTP() { e.tp++ }

// recordFP counts one false positive and files its span as evidence.
func (e *Evaluator) recordFP(doc string, s annotation.Span) {
	e.fp++
	e.fps.Append(doc, s)
}

// recordFN counts one false negative and files its span as evidence.
func (e *Evaluator) recordFN(doc string, s annotation.Span) {
	e.fn++
	e.fns.Append(doc, s)
}

// AppendFPs files false positive spans under doc without touching counts.
func (e *Evaluator) AppendFPs(doc string, spans ...annotation.Span) {
	e.fps.Append(doc, spans...)
}

// AppendFNs files false negative spans under doc without touching counts.
func (e *Evaluator) AppendFNs(doc string, spans ...annotation.Span) {
	e.fns.Append(doc, spans...)
}

// TP returns the true positive count.
func (e *Evaluator) TP() int { return e.tp }

// FP returns the false positive count.
func (e *Evaluator) FP() int { return e.fp }

// FN returns the false negative count.
func (e *Evaluator) FN() int { return e.fn }

// TN returns the true negative count and whether it was ever set.
func (e *Evaluator) TN() (int, bool) {
	if e.tn == nil {
		return 0, false
	}
	return *e.tn, true
}

// Values returns tp, fp, tn and fn; tn is nil when absent.
func (e *Evaluator) Values() (tp, fp int, tn *int, fn int) {
	if e.tn != nil {
		v := *e.tn
		tn = &v
	}
	return e.tp, e.fp, tn, e.fn
}

// Total returns tp + fp + fn + tn, with an absent tn counting as zero.
func (e *Evaluator) Total() int {
	tn, _ := e.TN()
	return e.tp + e.fp + e.fn + tn
}

// Recall returns tp / (tp + fn) rounded to two decimals.
func (e *Evaluator) Recall() (float64, error) {
	return Recall(e.tp, e.fn)
}

// Precision returns tp / (tp + fp) rounded to two decimals.
func (e *Evaluator) Precision() (float64, error) {
	return Precision(e.tp, e.fp)
}

// F1 returns the rounded harmonic mean of precision and recall.
func (e *Evaluator) F1() (float64, error) {
	return F1(e.tp, e.fp, e.fn)
}

// FPs returns the false positive spans per document.
func (e *Evaluator) FPs() *Evidence { return e.fps }

// FNs returns the false negative spans per document.
func (e *Evaluator) FNs() *Evidence { return e.fns }

// Merge folds other into e: counts sum and evidence lists are appended in
// other's document order.
func (e *Evaluator) Merge(other *Evaluator) {
	if other == nil {
		return
	}
	e.tp += other.tp
	e.fp += other.fp
	e.fn += other.fn
	if other.tn != nil {
		_ = e.AddTN(*other.tn)
	}
	for _, doc := range other.fps.Docs() {
		e.fps.Append(doc, other.fps.Get(doc)...)
	}
	for _, doc := range other.fns.Docs() {
		e.fns.Append(doc, other.fns.Get(doc)...)
	}
}
