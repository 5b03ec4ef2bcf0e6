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

// Package resolver implements the domain operations behind the GraphQL fields: reads and writes on
// the entity store, the relationships between users and tweets, and the movie catalog lookups.
//
// Engines take the store as an explicit dependency and never keep collections of their own.
// Absence is reported with a boolean (or a nil pointer) and never as an error; only the movie
// catalog can fail.
package resolver

import (
	"context"
	"log/slog"

	"github.com/botobag/tweetql/internal/ctxlog"
	"github.com/botobag/tweetql/movies"
)

// MovieGateway fetches movies from the remote catalog. *movies.Client implements it.
type MovieGateway interface {
	ListMovies(ctx context.Context) ([]movies.Movie, error)
	MovieDetails(ctx context.Context, id int) (*movies.Movie, error)
}

var _ MovieGateway = (*movies.Client)(nil)

type options struct {
	logger *slog.Logger
}

// Option configures an engine.
type Option func(*options)

// WithLogger sets the logger used when the context of an operation carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

func (o *options) loggerFor(ctx context.Context) *slog.Logger {
	return ctxlog.Or(ctx, o.logger)
}
