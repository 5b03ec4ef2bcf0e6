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

package resolver

import (
	"context"
	"slices"

	"github.com/botobag/tweetql/movies"
	"github.com/botobag/tweetql/store"
)

// Query serves the read operations.
type Query struct {
	options
	store  *store.Store
	movies MovieGateway
}

// NewQuery creates a Query over s and the movie catalog behind gateway.
func NewQuery(s *store.Store, gateway MovieGateway, opts ...Option) *Query {
	return &Query{
		options: newOptions(opts),
		store:   s,
		movies:  gateway,
	}
}

// AllUsers returns every user ordered by id from the largest to the smallest.
func (q *Query) AllUsers(ctx context.Context) []store.User {
	users := q.store.ListUsers()
	slices.SortStableFunc(users, func(a, b store.User) int {
		return store.CompareIDs(b.ID, a.ID)
	})
	q.loggerFor(ctx).InfoContext(ctx, "get all users", "count", len(users))
	return users
}

// AllTweets returns every tweet ordered by id from the largest to the smallest.
func (q *Query) AllTweets(ctx context.Context) []store.Tweet {
	tweets := q.store.ListTweets()
	slices.SortStableFunc(tweets, func(a, b store.Tweet) int {
		return store.CompareIDs(b.ID, a.ID)
	})
	q.loggerFor(ctx).InfoContext(ctx, "get all tweets", "count", len(tweets))
	return tweets
}

// Tweet looks up a tweet by id.
func (q *Query) Tweet(ctx context.Context, id string) (store.Tweet, bool) {
	tweet, found := q.store.FindTweet(id)
	q.loggerFor(ctx).InfoContext(ctx, "get tweet", "id", id, "found", found)
	return tweet, found
}

// AllMovies returns the movie listing of the catalog.
func (q *Query) AllMovies(ctx context.Context) ([]movies.Movie, error) {
	result, err := q.movies.ListMovies(ctx)
	if err != nil {
		return nil, err
	}
	q.loggerFor(ctx).InfoContext(ctx, "get all movies", "count", len(result))
	return result, nil
}

// Movie looks up a movie in the catalog. It returns nil without an error if the catalog has no
// movie with the id.
func (q *Query) Movie(ctx context.Context, id int) (*movies.Movie, error) {
	movie, err := q.movies.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	q.loggerFor(ctx).InfoContext(ctx, "get movie", "id", id, "found", movie != nil)
	return movie, nil
}
