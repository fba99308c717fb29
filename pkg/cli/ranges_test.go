package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
)

func TestSelectRanges(t *testing.T) {
	reg := ranges.MustDefault()

	t.Run("all", func(t *testing.T) {
		doc, err := selectRanges(reg, "", "")
		require.NoError(t, err)
		assert.Len(t, doc.Specs, reg.Len())
	})

	t.Run("single field", func(t *testing.T) {
		doc, err := selectRanges(reg, "brightness", "")
		require.NoError(t, err)
		require.Len(t, doc.Specs, 1)
		assert.Equal(t, measurement.Field("brightness"), doc.Specs[0].Field)
	})

	t.Run("category", func(t *testing.T) {
		doc, err := selectRanges(reg, "", "Environmental")
		require.NoError(t, err)
		require.NotEmpty(t, doc.Specs)
		for _, s := range doc.Specs {
			assert.Equal(t, ranges.CategoryEnvironmental, s.Category)
		}
	})

	t.Run("field outside category", func(t *testing.T) {
		doc, err := selectRanges(reg, "brightness", "environmental")
		require.NoError(t, err)
		assert.Empty(t, doc.Specs)
	})

	t.Run("unknown field suggests", func(t *testing.T) {
		_, err := selectRanges(reg, "brightnes", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did you mean brightness")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := selectRanges(reg, "", "acoustic")
		assert.Error(t, err)
	})

	t.Run("does not alter registry", func(t *testing.T) {
		_, err := selectRanges(reg, "", "operational")
		require.NoError(t, err)
		assert.Len(t, reg.Specs(), reg.Len())
		_, ok := reg.Lookup("voltagePN")
		assert.True(t, ok)
	})
}

func TestRangesCmd(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	out := filepath.Join(t.TempDir(), "ranges.json")

	cmd := rangesCmd()
	err := cmd.Run(context.Background(), []string{"ranges",
		"--field", "temperature", "--format", "json", "--output", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc ranges.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, ranges.DocumentKind, doc.Kind)
	require.Len(t, doc.Specs, 1)
	assert.Equal(t, ranges.CategoryEnvironmental, doc.Specs[0].Category)
	require.NotNil(t, doc.Specs[0].Normal)
	assert.Equal(t, 15.0, doc.Specs[0].Normal.Min)
}

func TestRangesCmd_Table(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	out := filepath.Join(t.TempDir(), "ranges.txt")

	cmd := rangesCmd()
	err := cmd.Run(context.Background(), []string{"ranges",
		"--category", "critical", "--format", "table", "--output", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FIELD")
	assert.Contains(t, string(data), "lampRunningHours")
	assert.NotContains(t, string(data), "voltagePN")
}
