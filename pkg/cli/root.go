package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/logging"
	"github.com/cinefleet/fleetcheck/pkg/serializer"
)

const (
	name           = "fleetcheck"
	versionDefault = "dev"

	// exitCodeInvalid is returned by --fail-on-error when findings include errors.
	exitCodeInvalid = 2
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/cinefleet/fleetcheck/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination: file path, ConfigMap URI (cm://namespace/name), or stdout (default).
	Use '-' for stdout explicitly.`,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   "Output format (yaml, json, table)",
	}

	rangesFlag = &cli.StringFlag{
		Name:    "ranges",
		Sources: cli.EnvVars("FLEETCHECK_RANGES"),
		Usage: `Range registry overrides merged over the built-in registry.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Sources: cli.EnvVars("KUBECONFIG"),
		Usage:   "Path to kubeconfig file used for ConfigMap URIs (defaults to in-cluster config)",
	}
)

// Execute starts the CLI application.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Projector field service validation",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("FLEETCHECK_DEBUG"),
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			logging.SetDefaultLogger(name, version, level, cmd.Bool("log-json"))
			slog.Debug("starting", "name", name, "version", version, "commit", commit, "date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			rangesCmd(),
			importCmd(),
			serveCmd(),
		},
		ShellComplete: commandLister,
	}
}

// commandLister prints the visible subcommands of the root command, one per line.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	root := cmd.Root()
	if root == nil {
		return
	}

	var w io.Writer = os.Stdout
	if root.Writer != nil {
		w = root.Writer
	}

	for _, c := range root.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}
