package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agenda = Dataset{
	Headers: []string{"time", "client", "service"},
	Rows: []map[string]string{
		{"time": "09:00", "client": "João", "service": "Corte"},
		{"time": "10:00", "client": "Ana; Maria", "service": "Barba"},
	},
}

func TestCSVRenderOrdersColumnsByHeader(t *testing.T) {
	out, err := NewCSVExporter(0).Render(agenda)
	require.NoError(t, err)
	assert.Equal(t, "time,client,service\n09:00,João,Corte\n10:00,Ana; Maria,Barba\n", string(out))
}

func TestCSVRenderCustomDelimiterQuotes(t *testing.T) {
	out, err := NewCSVExporter(';').Render(agenda)
	require.NoError(t, err)
	assert.Contains(t, string(out), "10:00;\"Ana; Maria\";Barba")
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter(0).Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(agenda, "Agenda", "2024-06-03")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty := Dataset{Headers: agenda.Headers}
	out, err = NewPDFExporter().Render(empty, "Agenda", "")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPDFColumnWidths(t *testing.T) {
	weighted := agenda
	weighted.Widths = []float64{1, 2, 2}
	widths, err := columnWidths(weighted)
	require.NoError(t, err)
	assert.InDelta(t, 38.0, widths[0], 0.001)
	assert.InDelta(t, 76.0, widths[1], 0.001)

	weighted.Widths = []float64{1, 2}
	_, err = columnWidths(weighted)
	assert.Error(t, err)
}
