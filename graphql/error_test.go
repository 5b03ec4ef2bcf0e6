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

package graphql_test

import (
	"encoding/json"
	"errors"

	"github.com/botobag/tweetql/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func newError(message string, args ...interface{}) *graphql.Error {
	e, ok := graphql.NewError(message, args...).(*graphql.Error)
	Expect(ok).Should(BeTrue())
	return e
}

func expectSerializationResult(e error, expected string) {
	s, err := json.Marshal(e)
	Expect(err).ShouldNot(HaveOccurred())
	Expect(s).Should(MatchJSON(expected))
}

type errWithLocations struct {
	locations []graphql.ErrorLocation
}

// Locations implements graphql.ErrorWithLocations.
func (e *errWithLocations) Locations() []graphql.ErrorLocation {
	return e.locations
}

// Error implements Go's error interface
func (e *errWithLocations) Error() string {
	return "error provided locations"
}

type errWithExtensions struct {
	extensions graphql.ErrorExtensions
}

// Extensions implements graphql.ErrorWithExtensions.
func (e *errWithExtensions) Extensions() graphql.ErrorExtensions {
	return e.extensions
}

// Error implements Go's error interface
func (e *errWithExtensions) Error() string {
	return "error provided extensions"
}

var (
	_ graphql.ErrorWithLocations  = (*errWithLocations)(nil)
	_ graphql.ErrorWithExtensions = (*errWithExtensions)(nil)
)

var _ = Describe("Error", func() {
	var (
		mockLocation graphql.ErrorLocation
		mockPath     graphql.ResponsePath
	)

	BeforeEach(func() {
		mockLocation = graphql.ErrorLocation{
			Line:   1,
			Column: 3,
		}

		mockPath = graphql.ResponsePath{}
		mockPath.AppendFieldName("tweets")
		mockPath.AppendIndex(0)
		mockPath.AppendFieldName("body")
	})

	It("uses the message as the error string", func() {
		Expect(newError("msg").Error()).Should(Equal("msg"))
	})

	It("includes location, path and kind in the error string", func() {
		e := newError("msg", mockLocation, mockPath, graphql.ErrKindExecution)
		Expect(e.Error()).Should(Equal(
			"msg at [{Line:1 Column:3}] for response field in the path tweets[0].body: execution error"))
	})

	It("wraps a non-GraphQL error", func() {
		e := graphql.WrapError(errors.New("boom"), "outer")
		Expect(e.Error()).Should(Equal("outer: boom"))
		Expect(errors.Unwrap(e)).Should(MatchError("boom"))
	})

	It("inherits information from a wrapped Error", func() {
		inner := newError("inner", mockLocation, mockPath, graphql.ErrKindSyntax)
		e := newError("outer", inner)
		Expect(e.Locations).Should(Equal([]graphql.ErrorLocation{mockLocation}))
		Expect(e.Path.Keys()).Should(Equal([]interface{}{"tweets", 0, "body"}))
		Expect(e.Kind).Should(Equal(graphql.ErrKindSyntax))
	})

	It("suppresses repeated information when printing wrapped Error", func() {
		inner := newError("inner", graphql.ErrKindSyntax)
		e := newError("outer", inner)
		Expect(e.Error()).Should(Equal("outer: syntax error:\n  inner"))
	})

	It("takes locations from an error implementing ErrorWithLocations", func() {
		e := newError("msg", &errWithLocations{
			locations: []graphql.ErrorLocation{mockLocation},
		})
		Expect(e.Locations).Should(Equal([]graphql.ErrorLocation{mockLocation}))
	})

	It("takes extensions from an error implementing ErrorWithExtensions", func() {
		e := newError("msg", &errWithExtensions{
			extensions: graphql.ErrorExtensions{"code": "PROVIDER_ERROR"},
		})
		Expect(e.Extensions).Should(Equal(graphql.ErrorExtensions{"code": "PROVIDER_ERROR"}))
	})

	It("reports bad arguments", func() {
		err := graphql.NewError("msg", 3.14)
		_, ok := err.(*graphql.Error)
		Expect(ok).Should(BeFalse())
		Expect(err).Should(MatchError(ContainSubstring("unknown type float64")))
	})

	Describe("JSON", func() {
		It("serializes the message", func() {
			expectSerializationResult(newError("msg"), `{"message": "msg"}`)
		})

		It("serializes locations, path and extensions", func() {
			e := newError("msg", mockLocation, mockPath, graphql.ErrorExtensions{
				"code": "PROVIDER_ERROR",
				"op":   "lookup",
			})
			expectSerializationResult(e, `{
				"message": "msg",
				"locations": [{"line": 1, "column": 3}],
				"path": ["tweets", 0, "body"],
				"extensions": {"code": "PROVIDER_ERROR", "op": "lookup"}
			}`)
		})

		It("never serializes kind or the wrapped error", func() {
			e := newError("msg", graphql.ErrKindSyntax, errors.New("boom"))
			expectSerializationResult(e, `{"message": "msg"}`)
		})
	})
})

var _ = Describe("Errors", func() {
	It("reports no errors when empty", func() {
		Expect(graphql.NoErrors().HaveOccurred()).Should(BeFalse())
	})

	It("appends errors of any type", func() {
		var errs graphql.Errors
		errs.Emplace("first", graphql.ErrKindValidation)
		errs.Append(errors.New("second"))
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors).Should(HaveLen(2))
		Expect(errs.Errors[0].Kind).Should(Equal(graphql.ErrKindValidation))
		Expect(errs.Errors[1].Message).Should(Equal("second"))
		Expect(errs.Error()).Should(Equal("first: validation error\nsecond: second"))
	})

	It("builds from arguments of NewError", func() {
		errs := graphql.ErrorsOf("msg", mockLocationOf(2, 5))
		Expect(errs.Errors).Should(HaveLen(1))
		Expect(errs.Errors[0].Locations).Should(Equal([]graphql.ErrorLocation{{Line: 2, Column: 5}}))
	})
})

var _ = Describe("ResponsePath", func() {
	It("leaves the original path untouched when deriving", func() {
		var path graphql.ResponsePath
		path.AppendFieldName("users")
		derived := path.WithIndex(1).WithFieldName("tweets")
		Expect(path.String()).Should(Equal("users"))
		Expect(derived.String()).Should(Equal("users[1].tweets"))
	})

	It("serializes to a JSON array", func() {
		path := graphql.ResponsePath{}.WithFieldName("users").WithIndex(1)
		s, err := json.Marshal(path)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s).Should(MatchJSON(`["users", 1]`))
	})
})

func mockLocationOf(line, column uint) graphql.ErrorLocation {
	return graphql.ErrorLocation{
		Line:   line,
		Column: column,
	}
}
