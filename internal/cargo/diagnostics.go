package cargo

import (
	"bufio"
	"encoding/json"
	"strings"
)

// DiagnosticLevel is the normalized severity of a compiler or clippy finding.
type DiagnosticLevel string

const (
	LevelError   DiagnosticLevel = "error"
	LevelWarning DiagnosticLevel = "warning"
	LevelNote    DiagnosticLevel = "note"
	LevelHelp    DiagnosticLevel = "help"
)

// Diagnostic is one normalized compiler or linter finding.
//
// A Diagnostic always has a source location; findings the compiler
// emits without any span are dropped during parsing rather than given
// a placeholder location.
type Diagnostic struct {
	Level   DiagnosticLevel
	Code    string // compiler error code or lint name, empty when absent
	Message string
	File    string
	Line    int // 1-based
	Column  int // 1-based

	// Rendered is the multi-line representation rustc produced for
	// terminal display, kept verbatim.
	Rendered string
	// Suggestion is the machine-applicable replacement for the
	// primary span, when rustc offered one.
	Suggestion string
}

// Wire format of cargo's --message-format=json stream. Only the
// fields the parser reads are declared.
type cargoMessage struct {
	Reason  string           `json:"reason"`
	Message *compilerMessage `json:"message"`
}

type compilerMessage struct {
	Level    string `json:"level"`
	Message  string `json:"message"`
	Rendered string `json:"rendered"`
	Code     *struct {
		Code string `json:"code"`
	} `json:"code"`
	Spans []diagnosticSpan `json:"spans"`
}

type diagnosticSpan struct {
	FileName             string  `json:"file_name"`
	LineStart            int     `json:"line_start"`
	ColumnStart          int     `json:"column_start"`
	Label                *string `json:"label"`
	SuggestedReplacement *string `json:"suggested_replacement"`
}

// ParseDiagnostics extracts normalized diagnostics from cargo's
// line-delimited JSON output.
//
// The stream interleaves compiler messages with other record kinds
// (artifacts, build script output) and occasionally plain text;
// anything that is not a well-formed compiler message is skipped
// silently. Diagnostics come back in emission order, duplicates
// included. The result is never nil.
func ParseDiagnostics(output string) []Diagnostic {
	diagnostics := []Diagnostic{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	// Rendered diagnostics for macro-heavy code can run far past the
	// default 64KiB line limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var msg cargoMessage
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			continue
		}
		if msg.Reason != "compiler-message" || msg.Message == nil {
			continue
		}
		if len(msg.Message.Spans) == 0 {
			// No span means no usable location ("2 warnings emitted"
			// style messages); dropped rather than defaulted.
			continue
		}

		span := primarySpan(msg.Message.Spans)

		d := Diagnostic{
			Level:    normalizeLevel(msg.Message.Level),
			Message:  msg.Message.Message,
			File:     span.FileName,
			Line:     span.LineStart,
			Column:   span.ColumnStart,
			Rendered: msg.Message.Rendered,
		}
		if msg.Message.Code != nil {
			d.Code = msg.Message.Code.Code
		}
		if span.SuggestedReplacement != nil {
			d.Suggestion = *span.SuggestedReplacement
		}

		diagnostics = append(diagnostics, d)
	}

	return diagnostics
}

// primarySpan picks the span to blame for a finding. Rustc marks the
// relevant code with a label annotation; when several spans exist
// (macro expansion sites, trait definitions) the labeled one wins,
// otherwise the first span in emission order.
func primarySpan(spans []diagnosticSpan) diagnosticSpan {
	for _, s := range spans {
		if s.Label != nil {
			return s
		}
	}
	return spans[0]
}

func normalizeLevel(level string) DiagnosticLevel {
	switch {
	case strings.HasPrefix(level, "error"):
		// Covers "error" and "error: internal compiler error".
		return LevelError
	case level == "warning":
		return LevelWarning
	case level == "help":
		return LevelHelp
	default:
		return LevelNote
	}
}
