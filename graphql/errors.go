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

package graphql

import (
	"github.com/botobag/tweetql/graphql/token"
)

// syntaxError is the cause of errors from NewSyntaxError. It reports the position of the offending
// token as the only location.
type syntaxError struct {
	description string
	location    ErrorLocation
}

var _ ErrorWithLocations = (*syntaxError)(nil)

func (e *syntaxError) Error() string {
	return "Syntax Error: " + e.description
}

// Locations implements ErrorWithLocations.
func (e *syntaxError) Locations() []ErrorLocation {
	return []ErrorLocation{e.location}
}

// NewSyntaxError returns an error of ErrKindSyntax for the token at location in source.
func NewSyntaxError(source *token.Source, location token.SourceLocation, description string) error {
	info := source.LocationInfoOf(location)
	e := &syntaxError{
		description: description,
		location: ErrorLocation{
			Line:   info.Line,
			Column: info.Column,
		},
	}
	return NewError(e.Error(), e, ErrKindSyntax)
}
