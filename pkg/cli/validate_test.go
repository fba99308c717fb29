package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

const testReport = `kind: ServiceReport
projector: SN-0042
site: Hall 3
readings:
  voltagePN: 230
  temperature: 22
  resolution: 720p
  lensShift: 3
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readResult(t *testing.T, path string) *validator.ValidationResult {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var result validator.ValidationResult
	require.NoError(t, json.Unmarshal(data, &result))
	return &result
}

func TestValidateCmd_Flags(t *testing.T) {
	cmd := validateCmd()

	hasName := func(f cli.Flag, name string) bool {
		for _, n := range f.Names() {
			if n == name {
				return true
			}
		}
		return false
	}

	for _, want := range []string{"field", "value", "report", "exclude", "notices", "fail-on-error", "ranges", "kubeconfig", "output", "format"} {
		found := false
		for _, f := range cmd.Flags {
			if hasName(f, want) {
				found = true
				break
			}
		}
		assert.True(t, found, "flag %q should be defined", want)
	}
}

func TestValidateCmd_Field(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	out := filepath.Join(t.TempDir(), "result.json")

	cmd := validateCmd()
	err := cmd.Run(context.Background(), []string{"validate",
		"--field", "voltagePN", "--value", "190",
		"--format", "json", "--output", out})
	require.NoError(t, err)

	result := readResult(t, out)
	assert.Equal(t, validator.Kind, result.Kind)
	require.Len(t, result.Results, 1)
	assert.Equal(t, measurement.Field("voltagePN"), result.Results[0].Field)
	require.Len(t, result.Results[0].Findings, 1)
	assert.Equal(t, ranges.SeverityError, result.Results[0].Findings[0].Severity)
	assert.Equal(t, 1, result.Summary.Errors)
	assert.False(t, result.Summary.IsValid)
}

func TestValidateCmd_Report(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	in := writeTemp(t, "visit.yaml", testReport)
	out := filepath.Join(t.TempDir(), "result.json")

	cmd := validateCmd()
	err := cmd.Run(context.Background(), []string{"validate",
		"--report", in, "--notices", "--exclude", "temp*",
		"--format", "json", "--output", out})
	require.NoError(t, err)

	result := readResult(t, out)
	assert.Equal(t, "SN-0042", result.Projector)
	assert.Equal(t, []measurement.Field{"temperature"}, result.Excluded)
	assert.Equal(t, []measurement.Field{"lensShift"}, result.Unvalidated)
	assert.Equal(t, 1, result.Summary.Warnings, "720p is outside the normal resolutions")
	assert.Equal(t, 1, result.Summary.Suggestions, "lensShift is unregistered")
	assert.True(t, result.Summary.IsValid)
}

func TestValidateCmd_RangesOverride(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	overrides := writeTemp(t, "ranges.yaml", `kind: RangeRegistry
specs:
  - field: voltagePN
    category: technical
    unit: V
    absolute: {min: 100, max: 280}
    normal: {min: 180, max: 240}
`)
	out := filepath.Join(t.TempDir(), "result.json")

	cmd := validateCmd()
	err := cmd.Run(context.Background(), []string{"validate",
		"--field", "voltagePN", "--value", "190", "--ranges", overrides,
		"--format", "json", "--output", out})
	require.NoError(t, err)

	result := readResult(t, out)
	assert.Empty(t, result.Findings())
	assert.True(t, result.Summary.IsValid)
}

func TestValidateCmd_FailOnError(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")
	out := filepath.Join(t.TempDir(), "result.json")

	cmd := validateCmd()
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	err := cmd.Run(context.Background(), []string{"validate",
		"--field", "voltagePN", "--value", "abc", "--fail-on-error",
		"--format", "json", "--output", out})
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, exitCodeInvalid, exitErr.ExitCode())
	assert.FileExists(t, out, "output is written before failing")
}

func TestValidateCmd_Errors(t *testing.T) {
	t.Setenv("FLEETCHECK_RANGES", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"validate"}},
		{name: "field and report", args: []string{"validate", "--field", "voltagePN", "--report", "visit.yaml"}},
		{name: "missing report", args: []string{"validate", "--report", filepath.Join(t.TempDir(), "missing.yaml")}},
		{name: "bad format", args: []string{"validate", "--field", "voltagePN", "--value", "230", "--format", "xml"}},
		{name: "bad ranges", args: []string{"validate", "--field", "voltagePN", "--value", "230", "--ranges", filepath.Join(t.TempDir(), "missing.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validateCmd()
			assert.Error(t, cmd.Run(context.Background(), tt.args))
		})
	}
}
