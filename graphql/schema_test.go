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

var _ = Describe("Schema", func() {
	var (
		userType  graphql.Object
		tweetType graphql.Object
		queryType graphql.Object
	)

	BeforeEach(func() {
		userType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "User",
			FieldsThunk: func() graphql.Fields {
				return graphql.Fields{
					"id": {
						Type: graphql.MustNewNonNullOfType(graphql.ID()),
					},
					"tweets": {
						Type: graphql.MustNewListOfType(tweetType),
					},
				}
			},
		})

		tweetType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Tweet",
			FieldsThunk: func() graphql.Fields {
				return graphql.Fields{
					"body": {
						Type: graphql.String(),
					},
					"author": {
						Type: userType,
					},
				}
			},
		})

		queryType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"user": {
					Type: userType,
					Args: graphql.ArgumentConfigMap{
						"id": {
							Type: graphql.MustNewNonNullOfType(graphql.ID()),
						},
					},
				},
			},
		})
	})

	It("requires a query type", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{})
		Expect(err).Should(MatchError("Schema query must be Object Type but got: nil."))
	})

	It("collects every reachable named type", func() {
		schema, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: queryType,
		})
		Expect(err).ShouldNot(HaveOccurred())

		Expect(schema.Query()).Should(Equal(queryType))
		Expect(schema.Mutation()).Should(BeNil())

		typeMap := schema.TypeMap()
		Expect(typeMap.Names()).Should(Equal([]string{
			"Boolean", "Float", "ID", "Int", "Query", "String", "Tweet", "User",
		}))
		Expect(typeMap.Lookup("User")).Should(Equal(userType))
		Expect(typeMap.Lookup("Tweet")).Should(Equal(tweetType))
		Expect(typeMap.Lookup("Movie")).Should(BeNil())
	})

	It("includes unreachable types given in config", func() {
		extraType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Extra",
			Fields: graphql.Fields{
				"value": {
					Type: graphql.Int(),
				},
			},
		})

		schema, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: queryType,
			Types: []graphql.Type{extraType},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(schema.TypeMap().Lookup("Extra")).Should(Equal(extraType))
	})

	It("rejects multiple types with the same name", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: queryType,
			Types: []graphql.Type{
				graphql.MustNewObject(&graphql.ObjectConfig{
					Name: "User",
					Fields: graphql.Fields{
						"id": {
							Type: graphql.ID(),
						},
					},
				}),
			},
		})
		Expect(err).Should(MatchError(
			"Schema must contain unique named types but contains multiple types named User."))
	})

	It("reports errors from deferred fields", func() {
		brokenType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Broken",
			FieldsThunk: func() graphql.Fields {
				return graphql.Fields{
					"bad-name": {
						Type: graphql.String(),
					},
				}
			},
		})

		_, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: brokenType,
		})
		Expect(err).Should(MatchError(`Names must match /^[_a-zA-Z][_a-zA-Z0-9]*$/ but "bad-name" does not.`))
	})
})

var _ = Describe("Object", func() {
	It("requires a name", func() {
		_, err := graphql.NewObject(&graphql.ObjectConfig{
			Fields: graphql.Fields{
				"f": {
					Type: graphql.String(),
				},
			},
		})
		Expect(err).Should(MatchError("Must provide name for Object."))
	})

	It("requires fields", func() {
		_, err := graphql.NewObject(&graphql.ObjectConfig{
			Name: "Empty",
		})
		Expect(err).Should(MatchError(`Must provide fields for Object "Empty".`))

		_, err = graphql.NewObject(&graphql.ObjectConfig{
			Name:   "Empty",
			Fields: graphql.Fields{},
		})
		Expect(err).Should(MatchError("Empty fields must be an object with field names as keys."))
	})

	It("requires type for every field", func() {
		_, err := graphql.NewObject(&graphql.ObjectConfig{
			Name: "Object",
			Fields: graphql.Fields{
				"f": {},
			},
		})
		Expect(err).Should(MatchError(`Must provide type for field "Object.f".`))
	})

	It("rejects arguments of output-only types", func() {
		inner := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Inner",
			Fields: graphql.Fields{
				"f": {
					Type: graphql.String(),
				},
			},
		})

		_, err := graphql.NewObject(&graphql.ObjectConfig{
			Name: "Object",
			Fields: graphql.Fields{
				"f": {
					Type: graphql.String(),
					Args: graphql.ArgumentConfigMap{
						"arg": {
							Type: inner,
						},
					},
				},
			},
		})
		Expect(err).Should(MatchError(`The type of "Object.f(arg:)" must be an input type.`))
	})

	It("sorts arguments by name", func() {
		object := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Object",
			Fields: graphql.Fields{
				"f": {
					Type: graphql.String(),
					Args: graphql.ArgumentConfigMap{
						"b": {
							Type: graphql.Int(),
						},
						"a": {
							Type:         graphql.MustNewNonNullOfType(graphql.String()),
							DefaultValue: "x",
						},
						"c": {
							Type: graphql.MustNewNonNullOfType(graphql.String()),
						},
					},
				},
			},
		})

		field := object.Fields()["f"]
		Expect(field.Name()).Should(Equal("f"))
		Expect(field.Parent()).Should(Equal(object))

		args := field.Args()
		Expect(args).Should(HaveLen(3))
		Expect(args[0].Name()).Should(Equal("a"))
		Expect(args[1].Name()).Should(Equal("b"))
		Expect(args[2].Name()).Should(Equal("c"))

		Expect(args[0].HasDefaultValue()).Should(BeTrue())
		Expect(graphql.IsRequiredArgument(&args[0])).Should(BeFalse())
		Expect(graphql.IsRequiredArgument(&args[1])).Should(BeFalse())
		Expect(graphql.IsRequiredArgument(&args[2])).Should(BeTrue())
	})

	It("distinguishes a null default value from no default value", func() {
		object := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Object",
			Fields: graphql.Fields{
				"f": {
					Type: graphql.String(),
					Args: graphql.ArgumentConfigMap{
						"arg": {
							Type:         graphql.String(),
							DefaultValue: graphql.NilArgumentDefaultValue,
						},
					},
				},
			},
		})

		arg := &object.Fields()["f"].Args()[0]
		Expect(arg.HasDefaultValue()).Should(BeTrue())
		Expect(arg.DefaultValue()).Should(BeNil())
	})
})
