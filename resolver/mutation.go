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
	"sync"

	"github.com/botobag/tweetql/store"
)

// Mutation serves the write operations. Mutations run one at a time so that each one is applied as
// a whole or not at all.
type Mutation struct {
	options
	mu    sync.Mutex
	store *store.Store
}

// NewMutation creates a Mutation writing to s.
func NewMutation(s *store.Store, opts ...Option) *Mutation {
	return &Mutation{
		options: newOptions(opts),
		store:   s,
	}
}

// PostTweet creates a tweet with the given text on behalf of the user with userID. The new tweet
// takes the id following the largest one in the store. It returns false and leaves the store
// untouched when the user does not exist.
func (m *Mutation) PostTweet(ctx context.Context, text string, userID string) (store.Tweet, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := m.store.FindUser(userID); !found {
		return store.Tweet{}, false
	}

	tweets := m.store.ListTweets()
	ids := make([]string, len(tweets))
	for i := range tweets {
		ids[i] = tweets[i].ID
	}

	tweet := store.Tweet{
		ID:     store.NextID(ids),
		Text:   text,
		UserID: userID,
	}
	m.store.InsertTweet(tweet)

	m.loggerFor(ctx).InfoContext(ctx, "add tweet", "id", tweet.ID, "user_id", userID)
	return tweet, true
}

// DeleteTweet removes the tweet with the given id and reports whether it existed.
func (m *Mutation) DeleteTweet(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.store.RemoveTweet(id) {
		return false
	}

	m.loggerFor(ctx).InfoContext(ctx, "delete tweet", "id", id)
	return true
}
