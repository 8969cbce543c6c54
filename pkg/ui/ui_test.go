// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test format parsing, detection and table rendering

package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/ui"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"TERM", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"Json", ui.FormatJSON, false},
		{"yaml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("buffers are plain text", func(t *testing.T) {
		assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
	})

	t.Run("NO_COLOR wins", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(&bytes.Buffer{}))
	})

	t.Run("explicit format is kept", func(t *testing.T) {
		assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(&bytes.Buffer{}))
	})
}

func TestRenderTable(t *testing.T) {
	table := ui.Table{
		Title:  "Recipe",
		Header: []string{"Slot", "Material"},
		Rows:   [][]string{{"1", "stone"}, {"5", "stick"}},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ui.RenderTable(&buf, ui.FormatText, table))
		out := buf.String()
		assert.Contains(t, out, "Recipe")
		assert.Contains(t, out, "stone")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ui.RenderTable(&buf, ui.FormatJSON, table))
		var records []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
		assert.Equal(t, []map[string]string{
			{"slot": "1", "material": "stone"},
			{"slot": "5", "material": "stick"},
		}, records)
	})
}

func TestRenderError(t *testing.T) {
	assert.Empty(t, ui.RenderError(nil, ui.FormatText))

	err := errors.Markup("bad token")
	assert.Equal(t, "Error: "+err.Error(), ui.RenderError(err, ui.FormatText))
	assert.Contains(t, ui.RenderError(err, ui.FormatTerminal), "MARKUP")
}
