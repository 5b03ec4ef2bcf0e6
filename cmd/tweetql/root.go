/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/botobag/tweetql/api"
	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/internal/config"
	"github.com/botobag/tweetql/internal/metrics"
	"github.com/botobag/tweetql/movies"
	"github.com/botobag/tweetql/store"

	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tweetql",
		Short: "GraphQL API for tweets and movies",
		Long: `tweetql serves a GraphQL API over an in-memory store of users and tweets and a
remote movie catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to YAML configuration file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newQueryCommand(opts))
	cmd.AddCommand(newSchemaCommand(opts))

	return cmd
}

// app bundles the components shared by commands.
type app struct {
	config config.Config
	logger *slog.Logger
	movies *movies.Client
	schema graphql.Schema
}

// newApp loads the configuration and wires the store, the movie client and the schema. Logs go to
// logOut.
func newApp(opts *rootOptions, logOut io.Writer, m *metrics.Metrics) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	return newAppWithConfig(cfg, logOut, m)
}

func newAppWithConfig(cfg config.Config, logOut io.Writer, m *metrics.Metrics) (*app, error) {
	logger := cfg.Log.NewLogger(logOut)

	s := store.NewWithSeed()
	if len(cfg.SeedFile) > 0 {
		var err error
		if s, err = store.LoadSeedFile(cfg.SeedFile); err != nil {
			return nil, err
		}
		logger.Info("loaded seed file", "path", cfg.SeedFile)
	}

	client, err := movies.NewClient(movies.Config{
		BaseURL: cfg.Movies.BaseURL,
		Timeout: cfg.Movies.Timeout,
		Logger:  logger,
		Metrics: m,
	})
	if err != nil {
		return nil, err
	}

	schema, err := api.NewSchema(api.Config{
		Store:   s,
		Movies:  client,
		Logger:  logger,
		Metrics: m,
	})
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	return &app{
		config: cfg,
		logger: logger,
		movies: client,
		schema: schema,
	}, nil
}
