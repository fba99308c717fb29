package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/report"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a reading or a service report against the range registry.",
		Description: `Validates either a single reading (--field and --value) or a complete
service report (--report). Each reading produces zero or more findings with a
severity (error, warning, info) and the category of the field.

Validate a single reading:
  fleetcheck validate --field voltagePN --value 190

Validate a report from a file, URL or ConfigMap:
  fleetcheck validate --report visit.yaml --format table
  fleetcheck validate -r cm://field-service/visit-0314

Skip fields matching wildcard patterns:
  fleetcheck validate -r visit.yaml --exclude 'pm*' --exclude '*Notes'

Fail a pipeline step when errors are found:
  fleetcheck validate -r visit.yaml --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "Field identifier to validate (requires --value)",
			},
			&cli.StringFlag{
				Name:  "value",
				Usage: "Raw value of --field as entered by the engineer",
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage: `Path/URI to a service report.
	Supports: file paths, HTTP/HTTPS URLs, '-' for stdin, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip fields matching the pattern (supports '*' wildcards, can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "notices",
				Usage: "Report unregistered fields as info findings with suggestions",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with a non-zero status when any finding has error severity",
			},
			rangesFlag,
			kubeconfigFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			field := cmd.String("field")
			reportURI := cmd.String("report")
			if (field == "") == (reportURI == "") {
				return fmt.Errorf("exactly one of --field or --report is required")
			}

			v, err := newValidator(ctx, cmd,
				validator.WithUnregisteredNotices(cmd.Bool("notices")),
				validator.WithExcludes(cmd.StringSlice("exclude")...),
			)
			if err != nil {
				return err
			}

			var rep *report.Report
			if field != "" {
				rep = report.New(report.WithReading(measurement.Field(field), cmd.String("value")))
			} else {
				rep, err = report.FromURI(ctx, reportURI, kubeOptions(cmd)...)
				if err != nil {
					return fmt.Errorf("failed to load report from %q: %w", reportURI, err)
				}
			}

			result, err := v.ValidateReport(ctx, rep)
			if err != nil {
				return fmt.Errorf("failed to validate report: %w", err)
			}

			slog.Debug("validation complete",
				"fields", len(result.Results),
				"errors", result.Summary.Errors,
				"warnings", result.Summary.Warnings,
				"duration", result.Duration)

			if err := writeOutput(ctx, cmd, result); err != nil {
				return err
			}

			return failOnError(cmd, result.Summary)
		},
	}
}
