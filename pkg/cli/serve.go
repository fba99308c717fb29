package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cinefleet/fleetcheck/pkg/api"
	"github.com/cinefleet/fleetcheck/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the validation API server.",
		Description: `Serves the validation API until interrupted. Defaults come from the
environment (PORT, RATE_LIMIT, RATE_LIMIT_BURST, LOG_LEVEL, FLEETCHECK_RANGES).

  fleetcheck serve --port 9090`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides PORT)",
			},
			rangesFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			if cmd.IsSet("port") {
				cfg.Port = cmd.Int("port")
			}
			if cmd.IsSet("ranges") {
				cfg.RangesURI = cmd.String("ranges")
			}
			return api.ServeWithConfig(ctx, cfg, version)
		},
	}
}
