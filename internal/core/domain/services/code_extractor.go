package services

import (
	"strings"

	"reconcile/internal/pkg/errs"
)

// CodeLength is the fixed length of a candidate code. Scanner hardware often
// prefixes garbage before the meaningful suffix, so extraction always keeps
// the last CodeLength characters of a committed line.
const CodeLength = 12

// ScanSource distinguishes how a buffer arrived. A scanner commits one line
// per terminal keystroke; a paste delivers a whole block at once.
type ScanSource int

const (
	SourceScan ScanSource = iota
	SourcePaste
)

// RawScanEvent is a committed input buffer. It is ephemeral: the extractor
// consumes it immediately and nothing else holds on to it.
type RawScanEvent struct {
	Text   string
	Source ScanSource
}

// NewRawScanEvent creates a scan event. The text may be empty; an empty
// buffer simply yields no candidates.
func NewRawScanEvent(text string, source ScanSource) (RawScanEvent, error) {
	if source != SourceScan && source != SourcePaste {
		return RawScanEvent{}, errs.NewValueIsInvalidError("source")
	}

	return RawScanEvent{Text: text, Source: source}, nil
}

// CodeExtractor is a domain service that turns raw keystroke/paste buffers
// into discrete, de-duplicated candidate codes.
//
// Scan mode considers only the last non-empty line of the buffer, since the
// scanner commits exactly one code per terminal keystroke. Paste mode treats
// every non-empty line as committed in one shot.
//
// The extractor performs no format validation. Codes that are not 12 digits
// pass through and are gated later, before any remote call is attempted.
type CodeExtractor struct{}

// NewCodeExtractor creates a new CodeExtractor instance.
func NewCodeExtractor() CodeExtractor {
	return CodeExtractor{}
}

// Extract returns the candidate codes committed by the given event, in input
// order. Codes are de-duplicated against each other within the same call;
// de-duplication against previously seen codes is the session's job.
//
// Each committed line is reduced to its last 12 characters. A line shorter
// than that yields the whole line.
func (CodeExtractor) Extract(event RawScanEvent) []string {
	lines := nonEmptyLines(event.Text)
	if len(lines) == 0 {
		return nil
	}

	if event.Source == SourceScan {
		lines = lines[len(lines)-1:]
	}

	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		code := tailCode(line)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func tailCode(line string) string {
	if len(line) <= CodeLength {
		return line
	}
	return line[len(line)-CodeLength:]
}
