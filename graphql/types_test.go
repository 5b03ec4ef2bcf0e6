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
	"github.com/botobag/tweetql/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Type", func() {
	var (
		objectType          graphql.Object
		listOfObjects       graphql.List
		nonNullString       graphql.NonNull
		listOfNonNullString graphql.List
	)

	BeforeEach(func() {
		objectType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Object",
			Fields: graphql.Fields{
				"name": {
					Type: graphql.String(),
				},
			},
		})
		listOfObjects = graphql.MustNewListOfType(objectType)
		nonNullString = graphql.MustNewNonNullOfType(graphql.String())
		listOfNonNullString = graphql.MustNewListOfType(nonNullString)
	})

	Describe("IsInputType", func() {
		It("returns true for scalars and their wrappers", func() {
			Expect(graphql.IsInputType(graphql.String())).Should(BeTrue())
			Expect(graphql.IsInputType(nonNullString)).Should(BeTrue())
			Expect(graphql.IsInputType(listOfNonNullString)).Should(BeTrue())
		})

		It("returns false for objects and their wrappers", func() {
			Expect(graphql.IsInputType(objectType)).Should(BeFalse())
			Expect(graphql.IsInputType(listOfObjects)).Should(BeFalse())
		})
	})

	Describe("IsOutputType", func() {
		It("returns true for scalars, objects and their wrappers", func() {
			Expect(graphql.IsOutputType(graphql.Int())).Should(BeTrue())
			Expect(graphql.IsOutputType(objectType)).Should(BeTrue())
			Expect(graphql.IsOutputType(listOfObjects)).Should(BeTrue())
			Expect(graphql.IsOutputType(graphql.MustNewNonNullOfType(listOfObjects))).Should(BeTrue())
		})
	})

	Describe("IsLeafType", func() {
		It("returns true only for unwrapped scalars", func() {
			Expect(graphql.IsLeafType(graphql.ID())).Should(BeTrue())
			Expect(graphql.IsLeafType(nonNullString)).Should(BeFalse())
			Expect(graphql.IsLeafType(objectType)).Should(BeFalse())
		})
	})

	Describe("IsListType", func() {
		It("returns true for list wrapper type", func() {
			Expect(graphql.IsListType(listOfObjects)).Should(BeTrue())
		})

		It("returns false for an unwrapped type", func() {
			Expect(graphql.IsListType(objectType)).Should(BeFalse())
		})

		It("returns false for a non-list wrapped type", func() {
			Expect(graphql.IsListType(graphql.MustNewNonNullOfType(listOfObjects))).Should(BeFalse())
		})
	})

	Describe("IsNonNullType", func() {
		It("returns true for non-null wrapper type", func() {
			Expect(graphql.IsNonNullType(nonNullString)).Should(BeTrue())
			Expect(graphql.IsNullableType(nonNullString)).Should(BeFalse())
		})

		It("returns false for a not non-null wrapped type", func() {
			Expect(graphql.IsNonNullType(listOfNonNullString)).Should(BeFalse())
			Expect(graphql.IsNullableType(listOfNonNullString)).Should(BeTrue())
		})
	})

	Describe("NullableTypeOf", func() {
		It("strips the outermost non-null wrapper", func() {
			Expect(graphql.NullableTypeOf(nonNullString)).Should(Equal(graphql.String()))
			Expect(graphql.NullableTypeOf(listOfNonNullString)).Should(Equal(listOfNonNullString))
		})
	})

	Describe("NamedTypeOf", func() {
		It("unwraps all wrappers", func() {
			Expect(graphql.NamedTypeOf(listOfNonNullString)).Should(Equal(graphql.String()))
			Expect(graphql.NamedTypeOf(objectType)).Should(Equal(objectType))
		})
	})

	Describe("String", func() {
		It("prints wrapped types in SDL notation", func() {
			Expect(listOfNonNullString.String()).Should(Equal("[String!]"))
			Expect(graphql.MustNewNonNullOfType(listOfObjects).String()).Should(Equal("[Object]!"))
		})
	})

	Describe("NewNonNullOfType", func() {
		It("rejects nil type", func() {
			_, err := graphql.NewNonNullOfType(nil)
			Expect(err).Should(HaveOccurred())
		})

		It("rejects wrapping a non-null type", func() {
			_, err := graphql.NewNonNullOfType(nonNullString)
			Expect(err).Should(MatchError("Expected a nullable type for NonNull but got an String!."))
		})
	})

	Describe("NewListOfType", func() {
		It("rejects nil type", func() {
			_, err := graphql.NewListOfType(nil)
			Expect(err).Should(MatchError("Must provide an non-nil element type for List."))
		})
	})
})
