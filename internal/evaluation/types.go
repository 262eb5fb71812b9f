package evaluation

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/annoeval/brat-compare/internal/annotation"
)

// Mode selects the span matching policy.
type Mode int

const (
	// Relax matches spans of the same type that overlap by any amount.
	Relax Mode = iota
	// Strict matches spans only when both offsets are equal.
	Strict
)

// ParseMode maps a user-supplied mode name to a Mode. Anything whose first
// character is "s" (any case) selects Strict; everything else, including a
// leading space, selects Relax.
func ParseMode(s string) Mode {
	if strings.HasPrefix(strings.ToLower(s), "s") {
		return Strict
	}
	return Relax
}

// String returns the canonical mode name.
func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "relax"
}

// EvaluationResult maps annotation type to its accumulated Evaluator.
type EvaluationResult map[string]*Evaluator

// Types returns the annotation types in sorted order.
func (r EvaluationResult) Types() []string {
	types := make([]string, 0, len(r))
	for t := range r {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// evaluatorFor returns the Evaluator for typ, creating it on first use.
func (r EvaluationResult) evaluatorFor(typ string) *Evaluator {
	e, ok := r[typ]
	if !ok {
		e = NewEvaluator()
		r[typ] = e
	}
	return e
}

// Evidence is an insertion-ordered mapping from document name to the spans
// recorded against it.
type Evidence struct {
	docs  []string
	spans map[string][]annotation.Span
}

func newEvidence() *Evidence {
	return &Evidence{spans: make(map[string][]annotation.Span)}
}

// Append adds spans under doc, creating the entry on first use.
func (e *Evidence) Append(doc string, spans ...annotation.Span) {
	if _, ok := e.spans[doc]; !ok {
		e.docs = append(e.docs, doc)
		e.spans[doc] = nil
	}
	e.spans[doc] = append(e.spans[doc], spans...)
}

// Docs returns document names in first-insertion order.
func (e *Evidence) Docs() []string {
	out := make([]string, len(e.docs))
	copy(out, e.docs)
	return out
}

// Get returns the spans recorded for doc.
func (e *Evidence) Get(doc string) []annotation.Span {
	return e.spans[doc]
}

// Len returns the number of documents with an entry.
func (e *Evidence) Len() int {
	return len(e.docs)
}

// Count returns the total number of spans across all documents.
func (e *Evidence) Count() int {
	n := 0
	for _, spans := range e.spans {
		n += len(spans)
	}
	return n
}

// MarshalJSON writes the mapping as a JSON object keeping insertion order.
func (e *Evidence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, doc := range e.docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		spans := e.spans[doc]
		if spans == nil {
			spans = []annotation.Span{}
		}
		val, err := json.Marshal(spans)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TypeSummary holds the counts and rounded metrics for one annotation type.
// Metrics are nil when their denominator is zero.
type TypeSummary struct {
	Type      string   `json:"type"`
	TP        int      `json:"tp"`
	FP        int      `json:"fp"`
	FN        int      `json:"fn"`
	Precision *float64 `json:"precision"`
	Recall    *float64 `json:"recall"`
	F1        *float64 `json:"f1"`
}

// Summary aggregates metrics across annotation types.
type Summary struct {
	Mode    string        `json:"mode"`
	Types   []TypeSummary `json:"types"`
	Micro   TypeSummary   `json:"micro"`
	MacroF1 *float64      `json:"macro_f1"`
}
