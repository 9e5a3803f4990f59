package diag

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/octalide/mach/internal/lexer"
)

// Level distinguishes a hard failure from an advisory note.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelNote
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported record. Tok carries the source position;
// Data holds structured detail (e.g. the two types of a TC001 mismatch)
// for the JSON report encoder.
type Diagnostic struct {
	Level   Level
	Code    string
	Phase   string
	Message string
	File    string
	Tok     lexer.Token
	Data    map[string]any
}

// Sink collects diagnostics across a pipeline run, in insertion order.
// It is not safe for concurrent use by multiple goroutines without
// external synchronization.
type Sink struct {
	records []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Add appends a diagnostic, filling Phase from the code registry when
// the caller leaves it blank.
func (s *Sink) Add(d Diagnostic) {
	if d.Phase == "" {
		d.Phase = Phase(d.Code)
	}
	s.records = append(s.records, d)
}

// Errorf is a convenience wrapper for the common case of an error-level
// diagnostic anchored to a token.
func (s *Sink) Errorf(code, file string, tok lexer.Token, format string, args ...any) {
	s.Add(Diagnostic{Level: LevelError, Code: code, File: file, Tok: tok, Message: fmt.Sprintf(format, args...)})
}

// Warnf is Errorf's warning-level counterpart.
func (s *Sink) Warnf(code, file string, tok lexer.Token, format string, args ...any) {
	s.Add(Diagnostic{Level: LevelWarning, Code: code, File: file, Tok: tok, Message: fmt.Sprintf(format, args...)})
}

// Records returns every diagnostic collected so far, in insertion order.
func (s *Sink) Records() []Diagnostic {
	return s.records
}

// HasErrors reports whether any collected diagnostic is error-level; a
// pipeline stage fails iff this is true.
func (s *Sink) HasErrors() bool {
	for _, d := range s.records {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Merge appends another sink's records onto s, preserving insertion
// order of both.
func (s *Sink) Merge(other *Sink) {
	s.records = append(s.records, other.records...)
}

// ErrFailed is a sentinel for "a Sink reports at least one error". No
// pipeline stage in this module returns it; stages report failure
// through Sink.HasErrors.
var ErrFailed = errors.New("diagnostics reported one or more errors")

// colorFor maps a Level to the fatih/color style used when rendering.
func colorFor(l Level) *color.Color {
	switch l {
	case LevelError:
		return color.New(color.FgRed, color.Bold)
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// Render writes every diagnostic to w in the conventional
// file:line:col: level[code]: message form, followed by the offending
// source line and a caret under the computed column, when src has that
// file's bytes.
func Render(w io.Writer, records []Diagnostic, src map[string][]byte) {
	for _, d := range records {
		line, col := d.Tok.Position(src[d.File])
		label := colorFor(d.Level).Sprintf("%s[%s]", d.Level, d.Code)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", d.File, line, col, label, d.Message)

		lines := splitLines(src[d.File])
		if line >= 1 && line <= len(lines) {
			fmt.Fprintf(w, "    %s\n", lines[line-1])
			fmt.Fprintf(w, "    %s^\n", spaces(col-1))
		}
	}
}

func splitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	var lines []string
	start := 0
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, string(src[start:i]))
			start = i + 1
		}
	}
	lines = append(lines, string(src[start:]))
	return lines
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// SortedData returns d.Data's keys in sorted order, for deterministic
// JSON report output.
func SortedData(d map[string]any) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
