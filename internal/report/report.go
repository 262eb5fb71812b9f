// Package report renders comparison results for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/annoeval/brat-compare/internal/evaluation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
	"github.com/annoeval/brat-compare/internal/pkg/hash"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RunInfo describes the run a report belongs to.
type RunInfo struct {
	RunID                string `json:"run_id"`
	Mode                 string `json:"mode"`
	Documents            int    `json:"documents"`
	SystemDir            string `json:"system_dir,omitempty"`
	ReferenceDir         string `json:"reference_dir,omitempty"`
	SystemFingerprint    string `json:"system_fingerprint,omitempty"`
	ReferenceFingerprint string `json:"reference_fingerprint,omitempty"`
}

// Options controls rendering.
type Options struct {
	Format   string
	Evidence bool
}

type typeEvidence struct {
	FalsePositives *evaluation.Evidence `json:"false_positives"`
	FalseNegatives *evaluation.Evidence `json:"false_negatives"`
}

type jsonReport struct {
	Run      RunInfo                 `json:"run"`
	Summary  *evaluation.Summary     `json:"summary"`
	Evidence map[string]typeEvidence `json:"evidence,omitempty"`
}

// Render writes result to w in the requested format.
func Render(w io.Writer, run RunInfo, result evaluation.EvaluationResult, opts Options) error {
	summary := evaluation.Summarize(result, evaluation.ParseMode(run.Mode))

	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, run, summary, result, opts)
	case FormatText, "":
		return renderText(w, run, summary, result, opts)
	default:
		return apperrors.ValidationError(fmt.Sprintf("unknown report format %q", opts.Format))
	}
}

func renderJSON(w io.Writer, run RunInfo, summary *evaluation.Summary, result evaluation.EvaluationResult, opts Options) error {
	out := jsonReport{Run: run, Summary: summary}
	if opts.Evidence {
		out.Evidence = make(map[string]typeEvidence, len(result))
		for typ, e := range result {
			out.Evidence[typ] = typeEvidence{FalsePositives: e.FPs(), FalseNegatives: e.FNs()}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func metric(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func renderText(w io.Writer, run RunInfo, summary *evaluation.Summary, result evaluation.EvaluationResult, opts Options) error {
	ew := &errWriter{w: w}

	ew.printf("run %s  mode=%s  documents=%d\n", run.RunID, run.Mode, run.Documents)
	if run.SystemDir != "" {
		ew.printf("system:    %s (%s)\n", run.SystemDir, hash.Short(run.SystemFingerprint, 12))
	}
	if run.ReferenceDir != "" {
		ew.printf("reference: %s (%s)\n", run.ReferenceDir, hash.Short(run.ReferenceFingerprint, 12))
	}
	ew.printf("\n")

	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TYPE\tTP\tFP\tFN\tPRECISION\tRECALL\tF1\t")
	rows := make([]evaluation.TypeSummary, 0, len(summary.Types)+1)
	rows = append(rows, summary.Types...)
	for _, ts := range append(rows, summary.Micro) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t\n",
			ts.Type, ts.TP, ts.FP, ts.FN, metric(ts.Precision), metric(ts.Recall), metric(ts.F1))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	ew.printf("\nmacro F1: %s\n", metric(summary.MacroF1))

	if opts.Evidence {
		for _, typ := range result.Types() {
			e := result[typ]
			writeEvidence(ew, typ, "false positives", e.FPs())
			writeEvidence(ew, typ, "false negatives", e.FNs())
		}
	}

	return ew.err
}

func writeEvidence(ew *errWriter, typ, label string, ev *evaluation.Evidence) {
	if ev.Len() == 0 {
		return
	}
	ew.printf("\n== %s %s (%d)\n", typ, label, ev.Count())
	for _, doc := range ev.Docs() {
		ew.printf("%s\n", doc)
		for _, s := range ev.Get(doc) {
			ew.printf("  %s\n", s)
		}
	}
}

// errWriter remembers the first write error so rendering code can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(ew, format, args...)
}
