package brat

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annoeval/brat-compare/internal/annotation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
	"github.com/annoeval/brat-compare/internal/pkg/hash"
	"github.com/annoeval/brat-compare/internal/pkg/logger"
)

func TestParseLines(t *testing.T) {
	input := strings.Join([]string{
		"T1\tDisease 10 20\tpneumonia",
		"",
		"T2\tSymptom 0 5\tcough",
		"T3\tDisease 30 35;40 48\tlung opacity",
		"R1\tLocated Arg1:T1 Arg2:T2",
		"#1\tAnnotatorNotes T1\tchecked",
		"A1\tNegated T2",
		"T4\tSymptom 50 50",
		"   ",
	}, "\n")

	got, err := ParseLines(strings.NewReader(input), "doc.ann")
	require.NoError(t, err)

	assert.Equal(t, []string{"Disease", "Symptom"}, got.Types())
	assert.Equal(t, []annotation.Span{
		{Type: "Disease", Start: 10, End: 20, Text: "pneumonia"},
		{Type: "Disease", Start: 30, End: 48, Text: "lung opacity"},
	}, got["Disease"])
	assert.Equal(t, []annotation.Span{
		{Type: "Symptom", Start: 0, End: 5, Text: "cough"},
		{Type: "Symptom", Start: 50, End: 50},
	}, got["Symptom"])
}

func TestParseLines_CRLF(t *testing.T) {
	got, err := ParseLines(strings.NewReader("T1\tDisease 1 4\tflu\r\n"), "doc.ann")
	require.NoError(t, err)
	assert.Equal(t, "flu", got["Disease"][0].Text)
}

func TestParseLines_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing tab", "T1 Disease 1 2 text"},
		{"too few fields", "T1\tDisease 1\ttext"},
		{"non-integer start", "T1\tDisease one 2\ttext"},
		{"non-integer end", "T1\tDisease 1 two\ttext"},
		{"inverted offsets", "T1\tDisease 9 2\ttext"},
		{"negative start", "T1\tDisease -1 2\ttext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "T0\tDisease 0 1\tok\n" + tt.line + "\n"
			_, err := ParseLines(strings.NewReader(input), "bad.ann")
			require.Error(t, err)
			require.True(t, apperrors.IsParse(err), "got %v", err)

			appErr := err.(*apperrors.AppError)
			assert.Equal(t, "bad.ann", appErr.Details["file"])
			assert.Equal(t, "2", appErr.Details["line"])
		})
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestReader_Read(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.txt":     "The patient has a cough.",
		"b.ann":     "T1\tSymptom 18 23\tcough\n",
		"a.txt":     "No findings.",
		"c.ann":     "T1\tDisease 0 4\tflu\n",
		"notes.md":  "ignored",
		"a.ann.bak": "ignored",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ann"), 0o755))

	loaded, err := NewReader(nil).Read(dir)
	require.NoError(t, err)

	corpus := loaded.Corpus
	assert.Equal(t, []string{"a", "b", "c"}, corpus.Names())
	assert.Equal(t, 4, loaded.Files)
	assert.Len(t, loaded.Fingerprint, 64)

	a, _ := corpus.Get("a")
	assert.Equal(t, "No findings.", a.Text)
	assert.Empty(t, a.Spans)

	b, _ := corpus.Get("b")
	assert.Equal(t, []annotation.Span{{Type: "Symptom", Start: 18, End: 23, Text: "cough"}}, b.Spans["Symptom"])

	c, _ := corpus.Get("c")
	assert.Equal(t, "", c.Text)
	assert.Len(t, c.Spans["Disease"], 1)
}

func TestReader_FingerprintTracksContent(t *testing.T) {
	files := map[string]string{"a.ann": "T1\tDisease 0 4\tflu\n"}
	first, err := NewReader(nil).Read(writeFiles(t, files))
	require.NoError(t, err)
	same, err := NewReader(nil).Read(writeFiles(t, files))
	require.NoError(t, err)
	changed, err := NewReader(nil).Read(writeFiles(t, map[string]string{"a.ann": "T1\tDisease 0 5\tflu\n"}))
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, same.Fingerprint)
	assert.NotEqual(t, first.Fingerprint, changed.Fingerprint)
}

func TestReader_FileDigests(t *testing.T) {
	content := "T1\tDisease 0 4\tflu\n"
	dir := writeFiles(t, map[string]string{"a.ann": content})
	want := "blake3=" + hash.Short(hash.BLAKE3([]byte(content)), 16)

	var quiet bytes.Buffer
	_, err := NewReader(logger.NewWithWriter(&quiet, "debug", "text")).Read(dir)
	require.NoError(t, err)
	assert.NotContains(t, quiet.String(), "blake3=")

	var logs bytes.Buffer
	_, err = NewReader(logger.NewWithWriter(&logs, "debug", "text")).WithFileDigests(true).Read(dir)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "file read")
	assert.Contains(t, logs.String(), want)
}

func TestReader_Errors(t *testing.T) {
	_, err := ReadCorpus(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, apperrors.CodeIO, apperrors.CodeOf(err))

	dir := writeFiles(t, map[string]string{"a.ann": "T1\tDisease x 4\tflu\n"})
	_, err = ReadCorpus(dir)
	assert.True(t, apperrors.IsParse(err), "got %v", err)
}

func TestDocName(t *testing.T) {
	assert.Equal(t, "report", docName("report.ann"))
	assert.Equal(t, "report", docName("report.v2.txt"))
	assert.Equal(t, "plain", docName("plain"))
}
