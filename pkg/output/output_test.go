package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, format OutputFormat) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	SetWriter(&buf)
	SetFormat(format)
	t.Cleanup(func() {
		SetWriter(nil)
		SetFormat("")
	})
	return &buf
}

func TestGetOutputFormat(t *testing.T) {
	format := GetOutputFormat()
	if format != FormatJSON && format != FormatText && format != FormatTable {
		t.Errorf("Invalid output format: %v", format)
	}
}

func TestSetFormatOverridesConfig(t *testing.T) {
	capture(t, FormatJSON)
	assert.Equal(t, FormatJSON, GetOutputFormat())

	SetFormat(FormatTable)
	assert.Equal(t, FormatTable, GetOutputFormat())
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		isValid bool
	}{
		{"json", true},
		{"text", true},
		{"table", true},
		{"invalid", false},
	}

	for _, tt := range tests {
		result := ValidateOutputFormat(tt.format)
		if result != tt.isValid {
			t.Errorf("ValidateOutputFormat(%s): got %v, want %v", tt.format, result, tt.isValid)
		}
	}
}

func TestPrintTable(t *testing.T) {
	buf := capture(t, FormatTable)

	err := PrintTable([]string{"ID", "NAME"}, [][]string{{"1", "Rendang"}, {"22", "Soto"}}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID  NAME", strings.TrimSpace(lines[0]))
	assert.Equal(t, "1   Rendang", strings.TrimSpace(lines[1]))
}

func TestPrintTableJSON(t *testing.T) {
	buf := capture(t, FormatJSON)

	items := []map[string]string{{"id": "1"}}
	require.NoError(t, PrintTable([]string{"ID"}, [][]string{{"1"}}, items))

	assert.JSONEq(t, `[{"id":"1"}]`, buf.String())
}

func TestPrintRecordSortedKeys(t *testing.T) {
	buf := capture(t, FormatText)

	require.NoError(t, PrintRecord("Profile", map[string]interface{}{
		"username": "alice",
		"bio":      "suka pedas",
	}))

	out := buf.String()
	assert.Contains(t, out, "Profile")
	assert.Less(t, strings.Index(out, "bio:"), strings.Index(out, "username:"))
}

func TestPrintMessages(t *testing.T) {
	buf := capture(t, FormatText)

	PrintSuccess("Saved %s", "resep")
	PrintError("failed")
	PrintWarning("careful")
	PrintInfo("fyi")

	out := buf.String()
	assert.Contains(t, out, "Saved resep")
	assert.Contains(t, out, "Error: failed")
	assert.Contains(t, out, "Warning: careful")
	assert.Contains(t, out, "fyi")
}

func TestFormatAsJSON(t *testing.T) {
	s, err := FormatAsJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, s)
}
