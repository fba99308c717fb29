package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefleet/fleetcheck/pkg/importer"
)

const testCSV = "serialNumber,voltagePN,temperature,resolution\n" +
	"SN-1,230,22,4K\n" +
	"SN-2,abc,22,4K\n"

func TestImportCmd(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	in := writeTemp(t, "readings.csv", testCSV)
	out := filepath.Join(t.TempDir(), "import.json")

	cmd := importCmd()
	err := cmd.Run(context.Background(), []string{"import",
		"--file", in, "--workers", "2", "--format", "json", "--output", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var result importer.Result
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, importer.Kind, result.Kind)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "SN-1", result.Rows[0].ID)
	assert.Equal(t, 2, result.Rows[0].Line)
	assert.True(t, result.Rows[0].Summary.IsValid)
	assert.Equal(t, "SN-2", result.Rows[1].ID)
	assert.False(t, result.Rows[1].Summary.IsValid)
	assert.Equal(t, 1, result.Summary.Errors)
}

func TestImportCmd_Errors(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file flag", args: []string{"import"}},
		{name: "missing file", args: []string{"import", "--file", filepath.Join(t.TempDir(), "missing.csv")}},
		{name: "duplicate columns", args: []string{"import", "--file", writeTemp(t, "dup.csv", "voltagePN,voltagePN\n230,230\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := importCmd()
			assert.Error(t, cmd.Run(context.Background(), tt.args))
		})
	}
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := serveCmd()

	var names []string
	for _, f := range cmd.Flags {
		names = append(names, f.Names()...)
	}
	assert.Contains(t, names, "port")
	assert.Contains(t, names, "ranges")
}
