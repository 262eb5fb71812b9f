// Package evaluation scores agreement between a system annotation corpus
// and a reference corpus, per annotation type, under strict (exact offset)
// or relax (overlap) matching.
package evaluation

import (
	"fmt"

	"github.com/annoeval/brat-compare/internal/annotation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
	"github.com/annoeval/brat-compare/internal/pkg/logger"
)

// Comparer orchestrates a comparison run.
type Comparer struct {
	log *logger.Logger
}

// NewComparer creates a comparer. A nil logger discards output.
func NewComparer(log *logger.Logger) *Comparer {
	if log == nil {
		log = logger.Discard()
	}
	return &Comparer{log: log}
}

// Compare scores system against reference using a throwaway comparer.
func Compare(system, reference *annotation.Corpus, mode Mode) (EvaluationResult, error) {
	return NewComparer(nil).Compare(system, reference, mode)
}

// Compare matches every system document against the reference document of
// the same name and accumulates one Evaluator per annotation type.
//
// Both corpora must hold the same number of documents and every system
// document must exist in the reference corpus. On error no result is
// returned.
func (c *Comparer) Compare(system, reference *annotation.Corpus, mode Mode) (EvaluationResult, error) {
	if system == nil || reference == nil {
		return nil, apperrors.ValidationError("both corpora are required")
	}
	if system.Len() != reference.Len() {
		return nil, apperrors.PreconditionError("the two corpora do not hold the same number of documents").
			WithDetail("system_documents", fmt.Sprintf("%d", system.Len())).
			WithDetail("reference_documents", fmt.Sprintf("%d", reference.Len()))
	}
	if err := system.Validate(); err != nil {
		return nil, fmt.Errorf("system corpus: %w", err)
	}
	if err := reference.Validate(); err != nil {
		return nil, fmt.Errorf("reference corpus: %w", err)
	}

	match := relaxCompareDoc
	if mode == Strict {
		match = strictCompareDoc
	}

	c.log.Info("comparing corpora", "mode", mode.String(), "documents", system.Len())

	result := EvaluationResult{}
	for _, doc := range system.Documents() {
		ref, ok := reference.Get(doc.Name)
		if !ok {
			return nil, apperrors.NotFoundError("reference document " + doc.Name).
				WithDetail("document", doc.Name)
		}
		match(result, doc.Name, doc.Spans, ref.Spans)
		c.log.WithDocument(doc.Name).Debug("document compared",
			"system_spans", doc.Spans.Count(),
			"reference_spans", ref.Spans.Count())
	}

	c.log.Info("comparison finished", "types", len(result))
	return result, nil
}
