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

package api

import (
	"context"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/store"
)

func (b *schemaBuilder) userConfig() *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": {
				Type: nonNull(graphql.ID()),
			},
			"firstName": {
				Type: nonNull(graphql.String()),
			},
			"lastName": {
				Type: nonNull(graphql.String()),
			},
			"fullName": {
				Description: "Is the sum of firstName + lastName as a string",
				Type:        nonNull(graphql.String()),
				Resolver: b.instrument("User", "fullName",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return b.relations.FullName(source.(store.User)), nil
					}),
			},
		},
	}
}

func (b *schemaBuilder) tweetConfig() *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name:        "Tweet",
		Description: "Tweet object represents a resource for a Tweet",
		Fields: graphql.Fields{
			"id": {
				Type: nonNull(graphql.ID()),
			},
			"text": {
				Type: nonNull(graphql.String()),
			},
			"author": {
				Type: b.userType,
				Resolver: b.instrument("Tweet", "author",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						if author, found := b.relations.Author(source.(store.Tweet)); found {
							return author, nil
						}
						return nil, nil
					}),
			},
		},
	}
}

func (b *schemaBuilder) queryConfig() *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allUsers": {
				Type: nonNullListOf(b.userType),
				Resolver: b.instrument("Query", "allUsers",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return b.query.AllUsers(ctx), nil
					}),
			},
			"allTweets": {
				Type: nonNullListOf(b.tweetType),
				Resolver: b.instrument("Query", "allTweets",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return b.query.AllTweets(ctx), nil
					}),
			},
			"tweet": {
				Type: b.tweetType,
				Args: graphql.ArgumentConfigMap{
					"id": {
						Type: nonNull(graphql.ID()),
					},
				},
				Resolver: b.instrument("Query", "tweet",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						if tweet, found := b.query.Tweet(ctx, info.Args().GetString("id")); found {
							return tweet, nil
						}
						return nil, nil
					}),
			},
			"allMovies": {
				Type: nonNullListOf(b.movieType),
				Resolver: b.instrument("Query", "allMovies",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return b.query.AllMovies(ctx)
					}),
			},
			"movie": {
				Type: b.movieType,
				Args: graphql.ArgumentConfigMap{
					"id": {
						Type: nonNull(graphql.Int()),
					},
				},
				Resolver: b.instrument("Query", "movie",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						id, _ := info.Args().GetInt("id")
						movie, err := b.query.Movie(ctx, id)
						if err != nil || movie == nil {
							return nil, err
						}
						return movie, nil
					}),
			},
		},
	}
}

func (b *schemaBuilder) mutationConfig() *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"postTweet": {
				Type: b.tweetType,
				Args: graphql.ArgumentConfigMap{
					"text": {
						Type: nonNull(graphql.String()),
					},
					"userId": {
						Type: nonNull(graphql.ID()),
					},
				},
				Resolver: b.instrument("Mutation", "postTweet",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						args := info.Args()
						if tweet, ok := b.mutation.PostTweet(ctx, args.GetString("text"), args.GetString("userId")); ok {
							return tweet, nil
						}
						return nil, nil
					}),
			},
			"deleteTweet": {
				Description: "Deletes a Tweet if found, else returns false",
				Type:        nonNull(graphql.Boolean()),
				Args: graphql.ArgumentConfigMap{
					"id": {
						Type: nonNull(graphql.ID()),
					},
				},
				Resolver: b.instrument("Mutation", "deleteTweet",
					func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return b.mutation.DeleteTweet(ctx, info.Args().GetString("id")), nil
					}),
			},
		},
	}
}

// movieConfig defines Movie. Its fields are resolved from the tags of movies.Movie by the default
// resolver.
func movieConfig() *graphql.ObjectConfig {
	nonNullString := nonNull(graphql.String())
	nonNullInt := nonNull(graphql.Int())
	nonNullFloat := nonNull(graphql.Float())

	return &graphql.ObjectConfig{
		Name: "Movie",
		Fields: graphql.Fields{
			"id":                        {Type: nonNullInt},
			"url":                       {Type: nonNullString},
			"imdb_code":                 {Type: nonNullString},
			"title":                     {Type: nonNullString},
			"title_english":             {Type: nonNullString},
			"title_long":                {Type: nonNullString},
			"slug":                      {Type: nonNullString},
			"year":                      {Type: nonNullInt},
			"rating":                    {Type: nonNullFloat},
			"runtime":                   {Type: nonNullFloat},
			"genres":                    {Type: nonNullListOf(graphql.String())},
			"summary":                   {Type: graphql.String()},
			"description_full":          {Type: nonNullString},
			"synopsis":                  {Type: graphql.String()},
			"yt_trailer_code":           {Type: nonNullString},
			"language":                  {Type: nonNullString},
			"mpa_rating":                {Type: nonNullString},
			"background_image":          {Type: nonNullString},
			"background_image_original": {Type: nonNullString},
			"small_cover_image":         {Type: nonNullString},
			"medium_cover_image":        {Type: nonNullString},
			"large_cover_image":         {Type: nonNullString},
		},
	}
}
