// Package annotation defines the span records compared by the evaluation
// engine and the per-document and per-corpus containers that hold them.
package annotation

import (
	"fmt"
	"sort"

	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
)

// Span is one annotated text span: a half-open character interval
// [Start, End) tagged with an annotation type. Text is informational.
type Span struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text,omitempty"`
}

// NewSpan builds a validated span.
func NewSpan(typ string, start, end int, text string) (Span, error) {
	s := Span{Type: typ, Start: start, End: end, Text: text}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate checks 0 <= Start <= End and a non-empty type.
func (s Span) Validate() error {
	if s.Type == "" {
		return apperrors.ValidationError("span has empty type")
	}
	if s.Start < 0 || s.Start > s.End {
		return apperrors.ValidationError(fmt.Sprintf("span %s has invalid offsets [%d, %d)", s.Type, s.Start, s.End)).
			WithDetail("start", fmt.Sprintf("%d", s.Start)).
			WithDetail("end", fmt.Sprintf("%d", s.End))
	}
	return nil
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// String renders the span like a BRAT text-bound annotation body.
func (s Span) String() string {
	if s.Text == "" {
		return fmt.Sprintf("%s %d %d", s.Type, s.Start, s.End)
	}
	return fmt.Sprintf("%s %d %d\t%s", s.Type, s.Start, s.End, s.Text)
}

// GroupedSpans maps an annotation type to the spans of that type in one
// document, in input order.
type GroupedSpans map[string][]Span

// Add appends a span under its own type.
func (g GroupedSpans) Add(s Span) {
	g[s.Type] = append(g[s.Type], s)
}

// Types returns the annotation types in sorted order.
func (g GroupedSpans) Types() []string {
	types := make([]string, 0, len(g))
	for t := range g {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Count returns the total number of spans across all types.
func (g GroupedSpans) Count() int {
	n := 0
	for _, spans := range g {
		n += len(spans)
	}
	return n
}

// Validate checks every span and that each is filed under its own type.
func (g GroupedSpans) Validate() error {
	for _, typ := range g.Types() {
		for i, s := range g[typ] {
			if s.Type != typ {
				return apperrors.ValidationError(fmt.Sprintf("span of type %s filed under %s", s.Type, typ))
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("%s span %d: %w", typ, i, err)
			}
		}
	}
	return nil
}
