package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/stupside/autocast/internal/app"
)

// Root returns the root CLI command.
func Root() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:  "autocast",
		Usage: "Find movie streams and cast them to networked devices",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to configuration file",
				Value:       "config.yaml",
				Destination: &configPath,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := app.Load(configPath)
			if err != nil {
				return ctx, err
			}
			cmd.Metadata["config"] = cfg
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			castCommand(),
			searchCommand(),
			devicesCommand(),
			scanCommand(),
		},
		Metadata: map[string]any{},
	}
}
