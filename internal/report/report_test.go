package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/annoeval/brat-compare/internal/annotation"
	"github.com/annoeval/brat-compare/internal/evaluation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
)

func sampleResult(t *testing.T) evaluation.EvaluationResult {
	t.Helper()

	sys := annotation.GroupedSpans{}
	sys.Add(annotation.Span{Type: "Disease", Start: 10, End: 20, Text: "pneumonia"})
	sys.Add(annotation.Span{Type: "Disease", Start: 40, End: 44, Text: "flu"})
	ref := annotation.GroupedSpans{}
	ref.Add(annotation.Span{Type: "Disease", Start: 10, End: 20, Text: "pneumonia"})
	ref.Add(annotation.Span{Type: "Symptom", Start: 0, End: 5, Text: "cough"})

	system, reference := annotation.NewCorpus(), annotation.NewCorpus()
	if err := system.Add(&annotation.Document{Name: "doc1", Spans: sys}); err != nil {
		t.Fatal(err)
	}
	if err := reference.Add(&annotation.Document{Name: "doc1", Spans: ref}); err != nil {
		t.Fatal(err)
	}

	result, err := evaluation.Compare(system, reference, evaluation.Strict)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	return result
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	run := RunInfo{
		RunID:             "run-1",
		Mode:              "strict",
		Documents:         1,
		SystemDir:         "sys",
		SystemFingerprint: strings.Repeat("ab", 32),
	}

	if err := Render(&buf, run, sampleResult(t), Options{Format: FormatText, Evidence: true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"run run-1  mode=strict  documents=1",
		"system:    sys (abababababab)",
		"PRECISION",
		"Disease",
		"ALL",
		"n/a", // Symptom precision: no tp, no fp
		"macro F1:",
		"== Disease false positives (1)",
		"  Disease 40 44\tflu",
		"== Symptom false negatives (1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "reference:") {
		t.Errorf("reference line should be omitted without a directory:\n%s", out)
	}
}

func TestRender_TextWithoutEvidence(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, RunInfo{Mode: "strict"}, sampleResult(t), Options{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "==") {
		t.Errorf("evidence should not be listed:\n%s", buf.String())
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	run := RunInfo{RunID: "run-2", Mode: "strict", Documents: 1}

	if err := Render(&buf, run, sampleResult(t), Options{Format: FormatJSON, Evidence: true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got struct {
		Run     RunInfo `json:"run"`
		Summary struct {
			Mode  string `json:"mode"`
			Types []struct {
				Type      string   `json:"type"`
				TP        int      `json:"tp"`
				Precision *float64 `json:"precision"`
			} `json:"types"`
			Micro struct {
				TP int `json:"tp"`
				FP int `json:"fp"`
				FN int `json:"fn"`
			} `json:"micro"`
		} `json:"summary"`
		Evidence map[string]map[string]map[string][]annotation.Span `json:"evidence"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if got.Run.RunID != "run-2" || got.Summary.Mode != "strict" {
		t.Errorf("run = %+v, mode = %s", got.Run, got.Summary.Mode)
	}
	if len(got.Summary.Types) != 2 || got.Summary.Types[0].Type != "Disease" {
		t.Fatalf("types = %+v, want Disease then Symptom", got.Summary.Types)
	}
	if got.Summary.Types[1].Precision != nil {
		t.Errorf("Symptom precision = %v, want null", *got.Summary.Types[1].Precision)
	}
	if got.Summary.Micro.TP != 1 || got.Summary.Micro.FP != 1 || got.Summary.Micro.FN != 1 {
		t.Errorf("micro = %+v, want tp=1 fp=1 fn=1", got.Summary.Micro)
	}
	fps := got.Evidence["Disease"]["false_positives"]["doc1"]
	if len(fps) != 1 || fps[0].Start != 40 {
		t.Errorf("Disease false positives = %+v", fps)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, RunInfo{}, evaluation.EvaluationResult{}, Options{Format: "xml"})
	if !apperrors.IsValidation(err) {
		t.Errorf("Render() error = %v, want validation error", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, RunInfo{}, sampleResult(t), Options{Format: FormatText})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Render() error = %v, want disk full", err)
	}
}
