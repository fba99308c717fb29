package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fcerrors "github.com/cinefleet/fleetcheck/pkg/errors"
	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

func newImporter(t *testing.T, opts ...Option) *Importer {
	t.Helper()
	v, err := validator.New()
	require.NoError(t, err)
	return New(v, opts...)
}

const sample = "serialNumber,voltagePN,temperature,resolution,lensShift\n" +
	"SN-1,230,22,4K,3\n" +
	"SN-2,190,45,720p,\n" +
	"SN-3,abc,22,4K,1\n"

func TestImport(t *testing.T) {
	imp := newImporter(t, WithVersion("v0.1.0"))

	result, err := imp.Import(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, Kind, result.Kind)
	assert.Equal(t, "v0.1.0", result.Metadata["version"])
	assert.Equal(t, []measurement.Field{"voltagePN", "temperature", "resolution", "lensShift"}, result.Columns)
	assert.Equal(t, []measurement.Field{"lensShift"}, result.Unvalidated)

	require.Len(t, result.Rows, 3)

	assert.Equal(t, 2, result.Rows[0].Line)
	assert.Equal(t, "SN-1", result.Rows[0].ID)
	assert.Empty(t, result.Rows[0].Findings)
	assert.True(t, result.Rows[0].Summary.IsValid)

	assert.Equal(t, "SN-2", result.Rows[1].ID)
	assert.Equal(t, 2, result.Rows[1].Summary.Errors)
	assert.Equal(t, 1, result.Rows[1].Summary.Warnings)

	assert.Equal(t, 4, result.Rows[2].Line)
	require.Len(t, result.Rows[2].Findings, 1)
	assert.Equal(t, ranges.CategoryTechnical, result.Rows[2].Findings[0].Category)

	assert.Equal(t, 3, result.Summary.Errors)
	assert.Equal(t, 1, result.Summary.Warnings)
	assert.False(t, result.Summary.IsValid)
	assert.Equal(t, 2, result.InvalidRows())
}

func TestImport_StripsBOM(t *testing.T) {
	imp := newImporter(t)

	result, err := imp.Import(context.Background(), strings.NewReader("\ufeffserialNumber,humidity\nSN-9,95\n"))
	require.NoError(t, err)

	assert.Equal(t, []measurement.Field{"humidity"}, result.Columns)
	assert.Empty(t, result.Unvalidated)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "SN-9", result.Rows[0].ID)
	assert.Equal(t, 1, result.Rows[0].Summary.EnvironmentalIssues)
}

func TestImport_CustomIDColumnAndShortRows(t *testing.T) {
	imp := newImporter(t, WithIDColumn("site"))

	result, err := imp.Import(context.Background(), strings.NewReader("site,brightness,contrast\nScreen 1,5000\n"))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Screen 1", result.Rows[0].ID)
	assert.Empty(t, result.Rows[0].Findings, "missing optional cell is blank")
}

func TestImport_NoIDColumn(t *testing.T) {
	imp := newImporter(t, WithIDColumn(""))

	result, err := imp.Import(context.Background(), strings.NewReader("brightness\n\n5000\n"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Empty(t, result.Rows[0].ID)
}

func TestImport_PreservesOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("serialNumber,voltagePN\n")
	for i := 0; i < 200; i++ {
		v := 230
		if i%2 == 1 {
			v = 190
		}
		fmt.Fprintf(&b, "SN-%d,%d\n", i, v)
	}

	imp := newImporter(t, WithWorkers(4))
	result, err := imp.Import(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)

	require.Len(t, result.Rows, 200)
	for i, row := range result.Rows {
		assert.Equal(t, fmt.Sprintf("SN-%d", i), row.ID)
		assert.Equal(t, i+2, row.Line)
		assert.Equal(t, i%2 == 0, row.Summary.IsValid)
	}
	assert.Equal(t, 100, result.InvalidRows())
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"empty header cell", "serialNumber,,voltagePN\n"},
		{"duplicate header", "voltagePN,voltagePN\n"},
		{"malformed quote", "voltagePN\n\"230\n"},
	}

	imp := newImporter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := imp.Import(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, fcerrors.ErrCodeInvalidRequest, fcerrors.CodeOf(err))
		})
	}
}

func TestImport_Cancelled(t *testing.T) {
	imp := newImporter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.Import(ctx, strings.NewReader(sample))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_Table(t *testing.T) {
	imp := newImporter(t)
	result, err := imp.Import(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	headers, rows := result.Table()
	assert.Equal(t, []string{"LINE", "ID", "FIELD", "SEVERITY", "CATEGORY", "MESSAGE"}, headers)
	assert.Equal(t, []string{"2", "SN-1", "", "ok", "", ""}, rows[0])
	last := rows[len(rows)-1]
	assert.Equal(t, "TOTAL", last[0])
	assert.Equal(t, "invalid rows=2", last[5])
}

func TestImport_ExcludedColumns(t *testing.T) {
	v, err := validator.New(validator.WithExcludes("voltage*"))
	require.NoError(t, err)

	result, err := New(v).Import(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	assert.NotContains(t, result.Columns, measurement.Field("voltagePN"))
	for _, row := range result.Rows {
		for _, f := range row.Findings {
			assert.NotEqual(t, measurement.Field("voltagePN"), f.Field)
		}
	}
}
