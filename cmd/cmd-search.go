package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// searchCommand returns the "search" CLI subcommand.
func searchCommand() *cli.Command {
	var (
		title  string
		imdbID string
		year   int
	)

	return &cli.Command{
		Name:  "search",
		Usage: "List available streams for a movie without casting",
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

			result, err := p.Search(ctx, &media.Request{
				Title:  title,
				ImdbID: imdbID,
				Year:   year,
			})
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "search complete",
				"title", result.Metadata.Title,
				"year", result.Metadata.Year,
				"streams", len(result.Streams),
			)
			for _, o := range result.Outcomes {
				slog.InfoContext(ctx, "provider result", "provider", o.Provider, "success", o.OK, "message", o.Message)
			}
			for i, s := range result.Streams {
				slog.InfoContext(ctx, "stream", "index", i, "quality", s.Quality, "source", s.Source, "url", s.URL)
			}
			return nil
		},
	}
}
