package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/device"
)

// devicesCommand returns the "devices" CLI subcommand.
func devicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List the configured device registry",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			registry := device.NewRegistry(cfg.Devices)
			for _, d := range registry.List() {
				slog.InfoContext(ctx, "device", "name", d.Name, "type", string(d.Type), "address", d.Address)
			}
			return nil
		},
	}
}
