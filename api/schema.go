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

// Package api defines the GraphQL schema of the service and binds its fields to the engines in
// package resolver.
package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/internal/metrics"
	"github.com/botobag/tweetql/resolver"
	"github.com/botobag/tweetql/store"
)

var (
	errMissingStore  = errors.New("api: must specify a store")
	errMissingMovies = errors.New("api: must specify a movie gateway")
)

// Config specifies the dependencies of the schema.
type Config struct {
	// Entity store holding users and tweets
	Store *store.Store

	// Movie catalog
	Movies resolver.MovieGateway

	// Logger used by the engines when the request context carries none; slog.Default() if nil
	Logger *slog.Logger

	// Metrics observes every resolver call; may be nil.
	Metrics *metrics.Metrics
}

// NewSchema builds the schema and binds it to the engines created over the dependencies in config.
func NewSchema(config Config) (graphql.Schema, error) {
	if config.Store == nil {
		return nil, errMissingStore
	}
	if config.Movies == nil {
		return nil, errMissingMovies
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &schemaBuilder{
		relations: resolver.NewRelations(config.Store),
		query:     resolver.NewQuery(config.Store, config.Movies, resolver.WithLogger(logger)),
		mutation:  resolver.NewMutation(config.Store, resolver.WithLogger(logger)),
		metrics:   config.Metrics,
	}

	return b.build()
}

// MustNewSchema is a convenience function equivalent to NewSchema but panics on failure instead of
// returning an error.
func MustNewSchema(config Config) graphql.Schema {
	schema, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return schema
}

type schemaBuilder struct {
	relations *resolver.Relations
	query     *resolver.Query
	mutation  *resolver.Mutation
	metrics   *metrics.Metrics

	userType  graphql.Object
	tweetType graphql.Object
	movieType graphql.Object
}

func (b *schemaBuilder) build() (graphql.Schema, error) {
	var err error
	if b.userType, err = graphql.NewObject(b.userConfig()); err != nil {
		return nil, err
	}
	if b.tweetType, err = graphql.NewObject(b.tweetConfig()); err != nil {
		return nil, err
	}
	if b.movieType, err = graphql.NewObject(movieConfig()); err != nil {
		return nil, err
	}

	queryType, err := graphql.NewObject(b.queryConfig())
	if err != nil {
		return nil, err
	}
	mutationType, err := graphql.NewObject(b.mutationConfig())
	if err != nil {
		return nil, err
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// instrument wraps resolve to record its calls in metrics under object.field.
func (b *schemaBuilder) instrument(object, field string, resolve graphql.FieldResolverFunc) graphql.FieldResolver {
	m := b.metrics
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		start := time.Now()
		value, err := resolve(ctx, source, info)
		m.ObserveField(object, field, start, err)
		return value, err
	})
}

// nonNull is a shorthand of MustNewNonNullOfType.
func nonNull(t graphql.Type) graphql.Type {
	return graphql.MustNewNonNullOfType(t)
}

// nonNullListOf returns the type [T!]!.
func nonNullListOf(t graphql.Type) graphql.Type {
	return nonNull(graphql.MustNewListOfType(nonNull(t)))
}
