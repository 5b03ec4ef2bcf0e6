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
	"github.com/botobag/tweetql/store"
)

// Relations computes the derived fields of users and tweets.
type Relations struct {
	store *store.Store
}

// NewRelations creates a Relations reading from s.
func NewRelations(s *store.Store) *Relations {
	return &Relations{store: s}
}

// FullName joins the first and last name of user with a single space.
func (r *Relations) FullName(user store.User) string {
	return user.FirstName + " " + user.LastName
}

// Author returns the user who posted tweet. A tweet whose user does not exist has no author.
func (r *Relations) Author(tweet store.Tweet) (store.User, bool) {
	return r.store.FindUser(tweet.UserID)
}
