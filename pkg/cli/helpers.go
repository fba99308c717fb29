package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/ranges"
	"github.com/cinefleet/fleetcheck/pkg/serializer"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// kubeOptions returns serializer options derived from the kubeconfig flag.
func kubeOptions(cmd *cli.Command) []serializer.Option {
	if kc := cmd.String("kubeconfig"); kc != "" {
		return []serializer.Option{serializer.WithKubeconfig(kc)}
	}
	return nil
}

// loadRegistry returns the built-in registry with --ranges overrides applied.
func loadRegistry(ctx context.Context, cmd *cli.Command) (*ranges.Registry, error) {
	reg, err := ranges.Load(ctx, cmd.String("ranges"), kubeOptions(cmd)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load range registry: %w", err)
	}
	return reg, nil
}

// newValidator builds a validator over the registry selected by the flags.
func newValidator(ctx context.Context, cmd *cli.Command, opts ...validator.Option) (*validator.Validator, error) {
	reg, err := loadRegistry(ctx, cmd)
	if err != nil {
		return nil, err
	}
	opts = append([]validator.Option{
		validator.WithRegistry(reg),
		validator.WithVersion(version),
	}, opts...)
	return validator.New(opts...)
}

// writeOutput serializes data to the destination named by the output flag.
func writeOutput(ctx context.Context, cmd *cli.Command, data any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"), kubeOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("failed to create output writer: %w", err)
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, data)
}

// failOnError returns a non-zero exit error when the flag is set and the
// summary contains errors.
func failOnError(cmd *cli.Command, summary validator.Summary) error {
	if !cmd.Bool("fail-on-error") || summary.IsValid {
		return nil
	}
	return cli.Exit(fmt.Sprintf("validation failed: %d error(s), %d warning(s)",
		summary.Errors, summary.Warnings), exitCodeInvalid)
}
