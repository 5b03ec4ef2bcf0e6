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

package movies

import (
	"errors"
	"fmt"

	"github.com/botobag/tweetql/graphql"
)

// Operations reported in ProviderError.Op and in metrics.
const (
	OpListMovies   = "list_movies"
	OpMovieDetails = "movie_details"
)

// ProviderErrorCode is set to the "code" entry of extensions in GraphQL errors caused by a
// ProviderError.
const ProviderErrorCode = "PROVIDER_ERROR"

var (
	// ErrUnexpectedStatus is wrapped when the provider replies with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedEnvelope is wrapped when the reply lacks the expected data.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// ProviderError reports a failed request to the movie provider. Its message omits URL since it is
// presented to API clients.
type ProviderError struct {
	Op  string
	URL string
	Err error
}

var (
	_ error                       = (*ProviderError)(nil)
	_ graphql.ErrorWithExtensions = (*ProviderError)(nil)
)

func (e *ProviderError) Error() string {
	return fmt.Sprintf("movies: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Extensions implements graphql.ErrorWithExtensions.
func (e *ProviderError) Extensions() graphql.ErrorExtensions {
	return graphql.ErrorExtensions{
		"code": ProviderErrorCode,
	}
}
