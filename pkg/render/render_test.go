package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

var testColumns = []models.Column{
	{Name: "id", DataType: "integer"},
	{Name: "name", DataType: "text"},
}

func renderAll(t *testing.T, format string, rows []models.Row) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := New(format, &buf)
	require.NoError(t, err)
	require.NoError(t, r.Header(testColumns))
	for _, row := range rows {
		require.NoError(t, r.Row(row))
	}
	require.NoError(t, r.Flush())
	return buf.String()
}

func TestTable_HeaderThenRows(t *testing.T) {
	out := renderAll(t, FormatTable, []models.Row{{int64(1), "a"}, {int64(3), "c"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 3, "expected header + 2 data rows")
	assert.Contains(t, lines[0], "id")
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[1], "1")
	assert.Contains(t, lines[1], "a")
	assert.Contains(t, lines[2], "3")
	assert.Contains(t, lines[2], "c")
	assert.Contains(t, lines[0], "|")
}

func TestTable_HeaderOnlyWhenNothingSelected(t *testing.T) {
	out := renderAll(t, FormatTable, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "id")
}

func TestRender_Idempotent(t *testing.T) {
	rows := []models.Row{{int64(1), "a"}, {int64(2), nil}}
	for _, format := range []string{FormatTable, FormatJSON, FormatYAML} {
		assert.Equal(t, renderAll(t, format, rows), renderAll(t, format, rows), format)
	}
}

func TestJSON_PreservesColumnOrder(t *testing.T) {
	out := renderAll(t, FormatJSON, []models.Row{{int64(1), "a"}, {int64(3), nil}})

	var doc struct {
		Columns []models.Column `json:"columns"`
		Rows    [][]any         `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, testColumns, doc.Columns)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, []any{float64(1), "a"}, doc.Rows[0])
	assert.Equal(t, []any{float64(3), nil}, doc.Rows[1])
}

func TestJSON_EmptyRowsIsArray(t *testing.T) {
	out := renderAll(t, FormatJSON, nil)
	assert.Contains(t, out, `"rows": []`)
}

func TestYAML_Document(t *testing.T) {
	out := renderAll(t, FormatYAML, []models.Row{{int64(2), "b"}})

	var doc struct {
		Columns []models.Column `yaml:"columns"`
		Rows    [][]any         `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, testColumns, doc.Columns)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, []any{2, "b"}, doc.Rows[0])
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{})
	assert.Error(t, err)
	assert.Error(t, ValidateFormat("csv"))
	assert.NoError(t, ValidateFormat(""))
	assert.NoError(t, ValidateFormat("JSON"))
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "NULL", FormatValue(nil))
	assert.Equal(t, "abc", FormatValue("abc"))
	assert.Equal(t, `\xcafe`, FormatValue([]byte{0xca, 0xfe}))
	assert.Equal(t, "2024-01-02T03:04:05Z", FormatValue(ts))
	assert.Equal(t, "0.25", FormatValue(0.25))
	assert.Equal(t, "NaN", FormatValue(math.NaN()))
	assert.Equal(t, "42", FormatValue(int32(42)))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "00000000-0000-0000-0000-000000000001",
		FormatValue([16]byte{15: 1}))
}

func TestTable_EscapesControlCharacters(t *testing.T) {
	out := renderAll(t, FormatTable, []models.Row{
		{int64(1), "tab\there"},
		{int64(2), "two\nlines\r"},
		{int64(3), "bell\a"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4, "expected header + 3 data rows")
	assert.Equal(t, `1   |  tab\there`, lines[1])
	assert.Equal(t, `2   |  two\nlines\r`, lines[2])
	assert.Equal(t, `3   |  bell\u0007`, lines[3])
}

func TestJSON_KeepsControlCharacters(t *testing.T) {
	out := renderAll(t, FormatJSON, []models.Row{{int64(1), "tab\there"}})

	var doc struct {
		Rows [][]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "tab\there", doc.Rows[0][1])
}
