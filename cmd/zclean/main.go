// Command zclean consolidates the 2016 and 2017 property and transaction tables into one cleaned CSV,
// zips it and uploads the archive to S3.
//
// Usage:
//
//	zclean ACCESS_KEY_ID SECRET_ACCESS_KEY
//
// Settings are read from ZCLEAN_* environment variables and an optional .env file.
//
// Zip codes come from a centroid table, ZCLEAN_ZIPS (default zip_centroids.csv), a CSV with the header
// zipcode,latitude,longitude in decimal degrees. The Census Bureau's ZCTA Gazetteer file
// (https://www.census.gov/geographies/reference-files/time-series/geo/gazetteer-files.html) provides it:
// keep its GEOID, INTPTLAT and INTPTLONG columns and rename them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/invertedv/zclean/clean"
	"github.com/invertedv/zclean/config"
	d "github.com/invertedv/zclean/df"
	"github.com/invertedv/zclean/export"
	"github.com/invertedv/zclean/zipcode"
)

var rootCmd = &cobra.Command{
	Use:   "zclean ACCESS_KEY_ID SECRET_ACCESS_KEY",
	Short: "Clean the property transaction tables and publish them to S3",
	Args:  cobra.ExactArgs(2),

	// no usage text on a wrong argument count
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args)
		if err != nil {
			return err
		}

		log := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat).With().Str("run", uuid.NewString()).Logger()
		if err := run(cmd.Context(), cfg, log); err != nil {
			log.Error().Err(err).Msg("run failed")
			return err
		}

		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	start := time.Now()

	ix, err := zipcode.LoadIndex(cfg.Zips, zipcode.IndexRadius(cfg.Radius))
	if err != nil {
		return fmt.Errorf("loading zip centroids: %w", err)
	}

	log.Info().Str("file", cfg.Zips).Int("zips", ix.Len()).Msg("zip index built")

	src, closer, err := source(cfg)
	if err != nil {
		return err
	}
	defer closer()

	p := clean.NewPipeline(src, zipcode.NewCache(ix), log)
	p.Report = cfg.Report

	t, err := p.Run()
	if err != nil {
		return err
	}

	if err := export.WriteCSV(t, cfg.Output); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}

	if err := export.Archive(cfg.Output, cfg.Archive); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Archive, err)
	}

	log.Info().Str("csv", cfg.Output).Str("archive", cfg.Archive).Msg("written")

	up, err := export.NewS3(cfg.Credentials, cfg.Region)
	if err != nil {
		return err
	}

	if err := export.Publish(ctx, up, cfg.Bucket, cfg.Archive, log); err != nil {
		return err
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("done")

	return nil
}

func source(cfg *config.Config) (clean.Source, func(), error) {
	if cfg.Source == "csv" {
		return &clean.FileSource{Dir: cfg.Dir}, func() {}, nil
	}

	dlct, err := d.OpenDialect(cfg.Source, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to %s: %w", cfg.Source, err)
	}

	return &clean.DBSource{Dialect: dlct}, func() { _ = dlct.Close() }, nil
}
