package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// castCommand returns the "cast" CLI subcommand for one-shot casts.
func castCommand() *cli.Command {
	var (
		title    string
		imdbID   string
		year     int
		deviceID string
		index    int
	)

	return &cli.Command{
		Name:  "cast",
		Usage: "Find a movie stream and play it on a device",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "Movie title to search for",
				Destination: &title,
			},
			&cli.StringFlag{
				Name:        "imdb",
				Usage:       "IMDb ID (tt...), takes precedence over the title",
				Destination: &imdbID,
			},
			&cli.IntFlag{
				Name:        "year",
				Aliases:     []string{"y"},
				Usage:       "Release year to disambiguate the title",
				Destination: &year,
			},
			&cli.StringFlag{
				Name:        "device",
				Aliases:     []string{"d"},
				Usage:       "Device name or address from the registry",
				Required:    true,
				Destination: &deviceID,
			},
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "Stream index to play instead of the configured policy",
				Value:       -1,
				Destination: &index,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			req := &media.Request{
				Title:       title,
				ImdbID:      imdbID,
				Year:        year,
				Destination: deviceID,
			}
			if index >= 0 {
				i := index
				req.StreamIndex = &i
			}

			result, err := p.Cast(ctx, req)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "now playing",
				"title", result.Metadata.Title,
				"year", result.Metadata.Year,
				"quality", result.Stream.Quality,
				"source", result.Stream.Source,
				"device", result.Device.Name,
			)
			return nil
		},
	}
}
