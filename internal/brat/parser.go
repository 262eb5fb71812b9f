// Package brat reads BRAT standoff annotation corpora: directories of
// NAME.txt document bodies paired with NAME.ann annotation files.
package brat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/annoeval/brat-compare/internal/annotation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
)

const maxLineBytes = 1 << 20

// ParseLines reads text-bound annotations from r and groups them by type.
//
// Each line is ID<TAB>TYPE START END<TAB>TEXT. Discontinuous offsets
// ("10 15;20 25") collapse to the first start and the last end. Lines whose
// ID does not start with "T" (relations, events, attributes, notes) are
// skipped, as are blank lines. file is used only in error details.
func ParseLines(r io.Reader, file string) (annotation.GroupedSpans, error) {
	grouped := annotation.GroupedSpans{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "T") {
			continue
		}

		span, err := parseLine(line)
		if err != nil {
			return nil, apperrors.ParseError(file, lineNo, err.Error())
		}
		grouped.Add(span)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.IOError("reading "+file, err)
	}

	return grouped, nil
}

func parseLine(line string) (annotation.Span, error) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 2 {
		return annotation.Span{}, fmt.Errorf("expected tab-separated ID and annotation, got %q", line)
	}

	fields := strings.Fields(parts[1])
	if len(fields) < 3 {
		return annotation.Span{}, fmt.Errorf("expected TYPE START END, got %q", parts[1])
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return annotation.Span{}, fmt.Errorf("start offset %q is not an integer", fields[1])
	}
	end, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return annotation.Span{}, fmt.Errorf("end offset %q is not an integer", fields[len(fields)-1])
	}

	var text string
	if len(parts) == 3 {
		text = parts[2]
	}

	span, err := annotation.NewSpan(fields[0], start, end, text)
	if err != nil {
		return annotation.Span{}, fmt.Errorf("%s %d %d: start must be non-negative and not after end", fields[0], start, end)
	}
	return span, nil
}
