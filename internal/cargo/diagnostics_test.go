package cargo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCompilerMessage = `{"reason":"compiler-message","message":{"level":"error","message":"mismatched types","code":{"code":"E0308"},"rendered":"error[E0308]: mismatched types\n","spans":[{"file_name":"src/main.rs","line_start":4,"column_start":13,"label":"expected i32, found String","suggested_replacement":null}]}}`

func TestParseDiagnosticsEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"only whitespace", "\n\n   \n"},
		{"only garbage", "this is not json\nneither is this"},
		{"only non-diagnostic records", `{"reason":"compiler-artifact","target":{"name":"foo"}}` + "\n" + `{"reason":"build-finished","success":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := ParseDiagnostics(tt.input)
			require.NotNil(t, diags, "parser must return an empty slice, never nil")
			assert.Empty(t, diags)
		})
	}
}

func TestParseDiagnosticsSingleMessage(t *testing.T) {
	diags := ParseDiagnostics(sampleCompilerMessage)

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, LevelError, d.Level)
	assert.Equal(t, "E0308", d.Code)
	assert.Equal(t, "mismatched types", d.Message)
	assert.Equal(t, "src/main.rs", d.File)
	assert.Equal(t, 4, d.Line)
	assert.Equal(t, 13, d.Column)
	assert.Equal(t, "error[E0308]: mismatched types\n", d.Rendered)
	assert.Empty(t, d.Suggestion)
}

func TestParseDiagnosticsSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"warning: build script output",
		sampleCompilerMessage,
		`{"reason":"compiler-message","message":{"level":`, // truncated JSON
		sampleCompilerMessage,
	}, "\n")

	diags := ParseDiagnostics(input)

	// Duplicates are preserved: the caller sees exactly what cargo
	// reported, once each.
	require.Len(t, diags, 2)
	assert.Equal(t, diags[0], diags[1])
}

func TestParseDiagnosticsLabeledSpanWins(t *testing.T) {
	// Two spans, the labeled one second: the labeled span must be
	// chosen regardless of array order.
	input := `{"reason":"compiler-message","message":{"level":"warning","message":"unused variable","code":{"code":"unused_variables"},"spans":[{"file_name":"src/expanded.rs","line_start":1,"column_start":1,"label":null},{"file_name":"src/lib.rs","line_start":9,"column_start":5,"label":"help: consider prefixing with an underscore","suggested_replacement":"_x"}]}}`

	diags := ParseDiagnostics(input)

	require.Len(t, diags, 1)
	assert.Equal(t, "src/lib.rs", diags[0].File)
	assert.Equal(t, 9, diags[0].Line)
	assert.Equal(t, 5, diags[0].Column)
	assert.Equal(t, "_x", diags[0].Suggestion)
}

func TestParseDiagnosticsFirstSpanFallback(t *testing.T) {
	input := `{"reason":"compiler-message","message":{"level":"note","message":"in this macro invocation","spans":[{"file_name":"src/a.rs","line_start":2,"column_start":3,"label":null},{"file_name":"src/b.rs","line_start":7,"column_start":1,"label":null}]}}`

	diags := ParseDiagnostics(input)

	require.Len(t, diags, 1)
	assert.Equal(t, "src/a.rs", diags[0].File)
	assert.Empty(t, diags[0].Code, "messages without a code carry none")
}

func TestParseDiagnosticsDropsSpanlessMessages(t *testing.T) {
	// "N warnings emitted" style messages have no span and no usable
	// location; they must be dropped, not defaulted.
	input := `{"reason":"compiler-message","message":{"level":"warning","message":"2 warnings emitted","spans":[]}}`

	diags := ParseDiagnostics(input)

	assert.Empty(t, diags)
}

func TestParseDiagnosticsPreservesOrder(t *testing.T) {
	first := `{"reason":"compiler-message","message":{"level":"error","message":"first","spans":[{"file_name":"src/a.rs","line_start":1,"column_start":1,"label":null}]}}`
	second := `{"reason":"compiler-message","message":{"level":"warning","message":"second","spans":[{"file_name":"src/b.rs","line_start":2,"column_start":2,"label":null}]}}`

	diags := ParseDiagnostics(first + "\n" + second)

	require.Len(t, diags, 2)
	assert.Equal(t, "first", diags[0].Message)
	assert.Equal(t, "second", diags[1].Message)
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want DiagnosticLevel
	}{
		{"error", LevelError},
		{"error: internal compiler error", LevelError},
		{"warning", LevelWarning},
		{"help", LevelHelp},
		{"note", LevelNote},
		{"failure-note", LevelNote},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLevel(tt.raw))
		})
	}
}
