package brat

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/annoeval/brat-compare/internal/annotation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
	"github.com/annoeval/brat-compare/internal/pkg/hash"
	"github.com/annoeval/brat-compare/internal/pkg/logger"
)

const (
	textExt = ".txt"
	annExt  = ".ann"
)

// Loaded is a corpus read from disk together with a digest of the files it
// was built from.
type Loaded struct {
	Dir         string
	Corpus      *annotation.Corpus
	Fingerprint string
	Files       int
}

// Reader loads BRAT corpora from directories.
type Reader struct {
	log     *logger.Logger
	digests bool
}

// NewReader creates a reader. A nil logger discards output.
func NewReader(log *logger.Logger) *Reader {
	if log == nil {
		log = logger.Discard()
	}
	return &Reader{log: log}
}

// WithFileDigests makes Read log a BLAKE3 digest for every file it reads,
// at debug level.
func (r *Reader) WithFileDigests(on bool) *Reader {
	r.digests = on
	return r
}

// docName returns the document a file belongs to: the part of the name
// before the first dot.
func docName(file string) string {
	if i := strings.IndexByte(file, '.'); i >= 0 {
		return file[:i]
	}
	return file
}

// Read loads every .txt/.ann pair in dir (non-recursive). Files are paired
// by document name; a document with only a .txt has no annotations and one
// with only an .ann has empty text. Other files are ignored.
func (r *Reader) Read(dir string) (*Loaded, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.IOError("listing corpus directory", err).WithDetail("dir", dir)
	}

	docs := make(map[string]*annotation.Document)
	var order []string
	fp := hash.NewFingerprint()

	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		if entry.IsDir() || (ext != textExt && ext != annExt) {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.IOError("reading corpus file", err).WithDetail("file", path)
		}
		fp.Add(name, data)
		if r.digests {
			r.log.Debug("file read", "file", path, "bytes", len(data), "blake3", hash.Short(hash.BLAKE3(data), 16))
		}

		base := docName(name)
		doc, ok := docs[base]
		if !ok {
			doc = &annotation.Document{Name: base, Spans: annotation.GroupedSpans{}}
			docs[base] = doc
			order = append(order, base)
		}

		if ext == textExt {
			doc.Text = string(data)
			continue
		}

		spans, err := ParseLines(bytes.NewReader(data), path)
		if err != nil {
			return nil, err
		}
		for _, typ := range spans.Types() {
			doc.Spans[typ] = append(doc.Spans[typ], spans[typ]...)
		}
		r.log.Debug("annotations loaded", "file", path, "spans", spans.Count())
	}

	corpus := annotation.NewCorpus()
	for _, base := range order {
		if err := corpus.Add(docs[base]); err != nil {
			return nil, err
		}
	}

	r.log.Info("corpus loaded", "dir", dir, "documents", corpus.Len(), "files", fp.Len())

	return &Loaded{
		Dir:         dir,
		Corpus:      corpus,
		Fingerprint: fp.Sum(),
		Files:       fp.Len(),
	}, nil
}

// ReadCorpus loads dir with a silent reader.
func ReadCorpus(dir string) (*annotation.Corpus, error) {
	loaded, err := NewReader(nil).Read(dir)
	if err != nil {
		return nil, err
	}
	return loaded.Corpus, nil
}
