package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/server"
)

// serveCommand returns the "serve" CLI subcommand.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP casting API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			srv := server.New(cfg.Server, p, cfg.Network.DiscoveryWindow)
			return srv.Run(ctx)
		},
	}
}
