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
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botobag/tweetql/api"
	"github.com/botobag/tweetql/graphql/handler"
	"github.com/botobag/tweetql/internal/metrics"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type serveOptions struct {
	*rootOptions
	addr        string
	metricsAddr string

	// onListen is called with the bound addresses once both servers accept connections.
	onListen func(addr, metricsAddr net.Addr)
}

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &serveOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the GraphQL API over HTTP",
		Long: `Serve the GraphQL API at /graphql (and /) and Prometheus metrics at /metrics on the
metrics address. The server stops gracefully on SIGINT or SIGTERM.

Example:
  tweetql serve --addr :4000
  tweetql serve --config tweetql.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address of the GraphQL server (overrides config)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "",
		"listen address of the metrics server (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *serveOptions) error {
	m := metrics.New()

	a, err := newApp(opts.rootOptions, cmd.ErrOrStderr(), m)
	if err != nil {
		return err
	}
	defer a.movies.CloseIdleConnections()

	cfg := a.config.Server
	if len(opts.addr) > 0 {
		cfg.Addr = opts.addr
	}
	if len(opts.metricsAddr) > 0 {
		cfg.MetricsAddr = opts.metricsAddr
	}

	graphqlHandler, err := handler.New(a.schema,
		handler.MaxBodySize(cfg.MaxBodySize),
		handler.OperationCacheSize(cfg.OperationCacheSize),
		handler.Logger(a.logger),
		handler.Middlewares(api.InstrumentOperations(m)),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", m.InstrumentHandler("graphql", graphqlHandler))
	mux.Handle("/", m.InstrumentHandler("graphql", graphqlHandler))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", m.Handler())

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	metricsListener, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		listener.Close()
		return err
	}

	servers := []*http.Server{
		{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		{Handler: metricsMux, ReadHeaderTimeout: 10 * time.Second},
	}
	listeners := []net.Listener{listener, metricsListener}

	g, gctx := errgroup.WithContext(ctx)
	for i := range servers {
		server, l := servers[i], listeners[i]
		g.Go(func() error {
			if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, server := range servers {
			errs = append(errs, server.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	a.logger.Info("server started",
		"addr", listener.Addr().String(),
		"metrics_addr", metricsListener.Addr().String())
	if opts.onListen != nil {
		opts.onListen(listener.Addr(), metricsListener.Addr())
	}

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
