package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
	"github.com/cinefleet/fleetcheck/pkg/importer"
	"github.com/cinefleet/fleetcheck/pkg/serializer"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

func importCmd() *cli.Command {
	return &cli.Command{
		Name:                  "import",
		EnableShellCompletion: true,
		Usage:                 "Validate a CSV export of service readings in bulk.",
		Description: `Reads a CSV file whose first row names the fields and validates every
following row as one service report. Rows are validated concurrently and
reported in input order.

Validate an export and print invalid rows as a table:
  fleetcheck import --file readings.csv --id-column serialNumber --format table

Read from stdin:
  cat readings.csv | fleetcheck import --file -`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"i"},
				Required: true,
				Usage: `Path/URI to the CSV file.
	Supports: file paths, HTTP/HTTPS URLs, '-' for stdin, or ConfigMap URIs (cm://namespace/name/key).`,
			},
			&cli.StringFlag{
				Name:  "id-column",
				Value: defaults.ImportIDColumn,
				Usage: "Column used to label rows in the output (not validated)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: defaults.ImportWorkers,
				Usage: "Number of rows validated concurrently",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip columns matching the pattern (supports '*' wildcards, can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with a non-zero status when any row has error findings",
			},
			rangesFlag,
			kubeconfigFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			uri := cmd.String("file")
			data, err := serializer.ReadURI(ctx, uri, kubeOptions(cmd)...)
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", uri, err)
			}

			v, err := newValidator(ctx, cmd, validator.WithExcludes(cmd.StringSlice("exclude")...))
			if err != nil {
				return err
			}

			imp := importer.New(v,
				importer.WithIDColumn(cmd.String("id-column")),
				importer.WithWorkers(cmd.Int("workers")),
				importer.WithVersion(version),
			)

			result, err := imp.Import(ctx, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", uri, err)
			}

			slog.Debug("import complete",
				"rows", len(result.Rows),
				"invalid", result.InvalidRows(),
				"duration", result.Duration)

			if err := writeOutput(ctx, cmd, result); err != nil {
				return err
			}

			return failOnError(cmd, result.Summary)
		},
	}
}
