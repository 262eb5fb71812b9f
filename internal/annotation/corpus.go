package annotation

import (
	"errors"
	"sort"

	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
)

// Document is one annotated text: its name, raw body, and spans.
type Document struct {
	Name  string
	Text  string
	Spans GroupedSpans
}

// Corpus is a collection of documents keyed by name. Iteration is in
// sorted name order.
type Corpus struct {
	docs  map[string]*Document
	names []string
	dirty bool
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docs: make(map[string]*Document)}
}

// Add inserts a document. Adding a name twice is an error.
func (c *Corpus) Add(doc *Document) error {
	if doc.Name == "" {
		return apperrors.ValidationError("document has empty name")
	}
	if _, ok := c.docs[doc.Name]; ok {
		return apperrors.ValidationError("duplicate document " + doc.Name)
	}
	if doc.Spans == nil {
		doc.Spans = GroupedSpans{}
	}
	c.docs[doc.Name] = doc
	c.names = append(c.names, doc.Name)
	c.dirty = true
	return nil
}

// Get returns the document with the given name.
func (c *Corpus) Get(name string) (*Document, bool) {
	doc, ok := c.docs[name]
	return doc, ok
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Names returns document names in sorted order.
func (c *Corpus) Names() []string {
	if c.dirty {
		sort.Strings(c.names)
		c.dirty = false
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Documents returns documents in name order.
func (c *Corpus) Documents() []*Document {
	names := c.Names()
	docs := make([]*Document, len(names))
	for i, n := range names {
		docs[i] = c.docs[n]
	}
	return docs
}

// Validate checks every span of every document.
func (c *Corpus) Validate() error {
	for _, doc := range c.Documents() {
		if err := doc.Spans.Validate(); err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				appErr.WithDetail("document", doc.Name)
			}
			return err
		}
	}
	return nil
}
