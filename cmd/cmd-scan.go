package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/device"
)

// scanCommand returns the "scan" CLI subcommand.
func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Discover castable devices on the local network",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			devices, err := device.Discover(ctx, cfg.Network.DiscoveryWindow)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(devices) == 0 {
				slog.Info("no devices found")
				return nil
			}

			slog.Info("scan complete", "count", len(devices))
			for _, d := range devices {
				slog.Info("device found", "name", d.Name, "type", string(d.Type), "address", d.Address)
			}
			return nil
		},
	}
}
