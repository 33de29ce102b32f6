package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradebook() Dataset {
	return Dataset{
		Title:   "Gradebook",
		Headers: []string{"student", "grade"},
		Rows: []map[string]string{
			{"student": "Ann", "grade": "A"},
			{"student": "Bo, Jr.", "grade": "Not Graded", "ignored": "x"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(gradebook())
	require.NoError(t, err)
	assert.Equal(t, "student,grade\nAnn,A\n\"Bo, Jr.\",Not Graded\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(gradebook())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportersRequireHeaders(t *testing.T) {
	for _, r := range []Renderer{NewCSVExporter(), NewPDFExporter()} {
		_, err := r.Render(Dataset{})
		assert.Error(t, err, r.Extension())
	}
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths([]string{"a", "long header"}, [][]string{{"x", "y"}})
	require.Len(t, widths, 2)
	assert.InDelta(t, pdfPageWidth, widths[0]+widths[1], 0.001)
	assert.Less(t, widths[0], widths[1])
}
