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

package executor_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/executor"
	"github.com/botobag/tweetql/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type deepData struct {
	A string
	B string
	C []interface{}
}

type exampleData struct {
	A        string
	B        string
	C        string
	Question string `graphql:"d"`
	E        func(ctx context.Context) (interface{}, error)
	Deep     *deepData
}

// extensionsError is an error that provides extensions data for the response.
type extensionsError struct {
	code string
}

func (e extensionsError) Error() string {
	return "error with code " + e.code
}

func (e extensionsError) Extensions() graphql.ErrorExtensions {
	return graphql.ErrorExtensions{
		"code": e.code,
	}
}

var _ = Describe("Execute: Handles basic execution tasks", func() {
	// graphql-js/src/execution/__tests__/executor-test.js
	It("executes arbitrary code", func() {
		deepDataType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "DeepDataType",
			Fields: graphql.Fields{
				"a": {Type: graphql.String()},
				"b": {Type: graphql.String()},
				"c": {Type: graphql.MustNewListOfType(graphql.String())},
			},
		})

		dataType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "DataType",
			Fields: graphql.Fields{
				"a": {Type: graphql.String()},
				"b": {Type: graphql.String()},
				"c": {Type: graphql.String()},
				"d": {Type: graphql.String()},
				"e": {Type: graphql.String()},
				"pic": {
					Type: graphql.String(),
					Args: graphql.ArgumentConfigMap{
						"size": {
							Type: graphql.Int(),
						},
					},
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						size, _ := info.Args().GetInt("size")
						return fmt.Sprintf("Pic of size: %d", size), nil
					}),
				},
				"deep": {Type: deepDataType},
			},
		})

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: dataType,
		})

		rootValue := &exampleData{
			A:        "Apple",
			B:        "Banana",
			C:        "Cookie",
			Question: "Donut",
			E: func(ctx context.Context) (interface{}, error) {
				return "Egg", nil
			},
			Deep: &deepData{
				A: "Already Been Done",
				B: "Boring",
				C: []interface{}{"Contrived", nil, "Confusing"},
			},
		}

		query := `
			query Example($size: Int) {
				a,
				b,
				x: c
				...c
				... on DataType {
					pic(size: $size)
				}
				deep {
					a
					b
					c
				}
			}

			fragment c on DataType {
				d
				e
			}
		`

		result := execute(schema, query, executor.ExecuteParams{
			RootValue: rootValue,
			VariableValues: map[string]interface{}{
				"size": 100,
			},
		})

		Expect(result).Should(MatchResultInJSON(`{
			"data": {
				"a": "Apple",
				"b": "Banana",
				"x": "Cookie",
				"d": "Donut",
				"e": "Egg",
				"pic": "Pic of size: 100",
				"deep": {
					"a": "Already Been Done",
					"b": "Boring",
					"c": ["Contrived", null, "Confusing"]
				}
			}
		}`))

		Expect(result.Data.ObjectValue().Keys).Should(Equal([]string{"a", "b", "x", "d", "e", "pic", "deep"}))
	})

	It("merges parallel fragments", func() {
		var typeType graphql.Object
		typeType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Type",
			FieldsThunk: func() graphql.Fields {
				return graphql.Fields{
					"a":    {Type: graphql.String()},
					"b":    {Type: graphql.String()},
					"c":    {Type: graphql.String()},
					"deep": {Type: typeType},
				}
			},
		})

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: typeType,
		})

		rootValue := map[string]interface{}{
			"a": "Apple",
			"b": "Banana",
			"c": "Cherry",
		}
		rootValue["deep"] = rootValue

		query := `
			{ a, ...FragOne, ...FragTwo }

			fragment FragOne on Type {
				b
				deep { b, deeper: deep { b } }
			}

			fragment FragTwo on Type {
				c
				deep { c, deeper: deep { c } }
			}
		`

		result := execute(schema, query, executor.ExecuteParams{
			RootValue: rootValue,
		})

		Expect(result).Should(MatchResultInJSON(`{
			"data": {
				"a": "Apple",
				"b": "Banana",
				"c": "Cherry",
				"deep": {
					"b": "Banana",
					"c": "Cherry",
					"deeper": {
						"b": "Banana",
						"c": "Cherry"
					}
				}
			}
		}`))

		Expect(result.Data.ObjectValue().Keys).Should(Equal([]string{"a", "b", "deep", "c"}))
		deep, ok := result.Data.ObjectValue().Lookup("deep")
		Expect(ok).Should(BeTrue())
		Expect(deep.ObjectValue().Keys).Should(Equal([]string{"b", "deeper", "c"}))
	})

	It("provides info about current execution state", func() {
		var (
			info   graphql.ResolveInfo
			source interface{}
		)

		testType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Test",
			Fields: graphql.Fields{
				"test": {
					Type: graphql.String(),
					Args: graphql.ArgumentConfigMap{
						"arg": {
							Type: graphql.String(),
						},
					},
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, s interface{}, i graphql.ResolveInfo) (interface{}, error) {
						source, info = s, i
						return nil, nil
					}),
				},
			},
		})

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: testType,
		})

		rootValue := &struct{ root string }{"val"}
		appContext := "app"

		result := execute(schema, `query ($var: String) { result: test(arg: $var) }`, executor.ExecuteParams{
			RootValue:  rootValue,
			AppContext: appContext,
			VariableValues: map[string]interface{}{
				"var": "abc",
			},
		})
		Expect(result.Errors.HaveOccurred()).Should(BeFalse())

		Expect(source).Should(BeIdenticalTo(rootValue))
		Expect(info.Field().Name()).Should(Equal("test"))
		Expect(info.FieldDefinitions()).Should(HaveLen(1))
		Expect(info.FieldDefinitions()[0].ResponseKey()).Should(Equal("result"))
		Expect(info.Field().Type()).Should(BeIdenticalTo(graphql.String()))
		Expect(info.Object()).Should(BeIdenticalTo(testType))
		Expect(info.Path().Keys()).Should(Equal([]interface{}{"result"}))
		Expect(info.Schema()).Should(BeIdenticalTo(schema))
		Expect(info.Args().Get("arg")).Should(Equal("abc"))
		Expect(info.RootValue()).Should(BeIdenticalTo(rootValue))
		Expect(info.AppContext()).Should(Equal(appContext))
		Expect(info.VariableValues().Get("var")).Should(Equal("abc"))
		Expect(info.Operation().Name.IsEmpty()).Should(BeTrue())
	})

	It("correctly threads arguments", func() {
		var args graphql.ArgumentValues

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Type",
				Fields: graphql.Fields{
					"b": {
						Type: graphql.String(),
						Args: graphql.ArgumentConfigMap{
							"numArg": {
								Type: graphql.Int(),
							},
							"stringArg": {
								Type: graphql.String(),
							},
							"defaultArg": {
								Type:         graphql.String(),
								DefaultValue: "default",
							},
						},
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							args = info.Args()
							return nil, nil
						}),
					},
				},
			}),
		})

		result := execute(schema, `query Example { b(numArg: 123, stringArg: "foo") }`, executor.ExecuteParams{})
		Expect(result.Errors.HaveOccurred()).Should(BeFalse())
		Expect(args.Get("numArg")).Should(Equal(123))
		Expect(args.Get("stringArg")).Should(Equal("foo"))
		Expect(args.Get("defaultArg")).Should(Equal("default"))
	})

	Describe("nulls out error subtrees", func() {
		var schema graphql.Schema

		BeforeEach(func() {
			resolveError := graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return nil, errors.New("Error getting " + info.Field().Name())
			})

			resolveNil := graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return nil, nil
			})

			var dataType graphql.Object
			dataType = graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "DataType",
				FieldsThunk: func() graphql.Fields {
					return graphql.Fields{
						"sync": {
							Type: graphql.String(),
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return "sync", nil
							}),
						},
						"syncError": {
							Type:     graphql.String(),
							Resolver: resolveError,
						},
						"syncNonNullError": {
							Type:     graphql.MustNewNonNullOfType(graphql.String()),
							Resolver: resolveError,
						},
						"syncNonNullNil": {
							Type:     graphql.MustNewNonNullOfType(graphql.String()),
							Resolver: resolveNil,
						},
						"extensionsError": {
							Type: graphql.String(),
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return nil, fmt.Errorf("wrapped: %w", extensionsError{"TEST_CODE"})
							}),
						},
						"nest": {
							Type: dataType,
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return struct{}{}, nil
							}),
						},
						"nonNullNest": {
							Type: graphql.MustNewNonNullOfType(dataType),
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return struct{}{}, nil
							}),
						},
						"list": {
							Type: graphql.MustNewListOfType(graphql.MustNewNonNullOfType(graphql.String())),
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return []interface{}{"a", nil, "c"}, nil
							}),
						},
						"nullableItems": {
							Type: graphql.MustNewListOfType(graphql.String()),
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return []string{"a", "b"}, nil
							}),
						},
						"notList": {
							Type: graphql.MustNewListOfType(graphql.String()),
							Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
								return "not a list", nil
							}),
						},
					}
				},
			})

			schema = graphql.MustNewSchema(&graphql.SchemaConfig{
				Query: dataType,
			})
		})

		It("nulls out the field that raises an error", func() {
			result := execute(schema, "{ sync, syncError }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Error getting syncError",
					"locations": [{ "line": 1, "column": 9 }],
					"path": ["syncError"]
				}],
				"data": {
					"sync": "sync",
					"syncError": null
				}
			}`))

			Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
				testutil.MatchGraphQLError(
					testutil.MessageEqual("Error getting syncError"),
					testutil.PathEqual("syncError"),
					testutil.KindIs(graphql.ErrKindExecution),
				),
			))
		})

		It("propagates null from non-null field to the nullable parent", func() {
			result := execute(schema, "{ sync, nest { sync, syncNonNullError } }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Error getting syncNonNullError",
					"locations": [{ "line": 1, "column": 22 }],
					"path": ["nest", "syncNonNullError"]
				}],
				"data": {
					"sync": "sync",
					"nest": null
				}
			}`))
		})

		It("propagates null through non-null parents", func() {
			result := execute(schema, "{ nest { nonNullNest { syncNonNullNil } } }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Cannot return null for non-nullable field DataType.syncNonNullNil.",
					"locations": [{ "line": 1, "column": 24 }],
					"path": ["nest", "nonNullNest", "syncNonNullNil"]
				}],
				"data": {
					"nest": null
				}
			}`))
		})

		It("nulls out data when a non-null root field raises an error", func() {
			result := execute(schema, "{ sync, syncNonNullError }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Error getting syncNonNullError",
					"locations": [{ "line": 1, "column": 9 }],
					"path": ["syncNonNullError"]
				}],
				"data": null
			}`))
			Expect(result.Data.IsNil()).Should(BeTrue())
		})

		It("keeps resolving sibling fields after a non-null root field fails", func() {
			result := execute(schema, "{ syncNonNullError, sync, syncError }", executor.ExecuteParams{})
			Expect(result.Data.IsNil()).Should(BeTrue())
			Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
				testutil.MatchGraphQLError(
					testutil.MessageEqual("Error getting syncNonNullError"),
					testutil.PathEqual("syncNonNullError"),
				),
				testutil.MatchGraphQLError(
					testutil.MessageEqual("Error getting syncError"),
					testutil.PathEqual("syncError"),
				),
			))
		})

		It("keeps resolving sibling fields of a nested object that becomes null", func() {
			result := execute(schema, "{ nest { syncNonNullNil, syncError } }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Cannot return null for non-nullable field DataType.syncNonNullNil.",
					"locations": [{ "line": 1, "column": 10 }],
					"path": ["nest", "syncNonNullNil"]
				}, {
					"message": "Error getting syncError",
					"locations": [{ "line": 1, "column": 26 }],
					"path": ["nest", "syncError"]
				}],
				"data": {
					"nest": null
				}
			}`))
		})

		It("nulls out a list that contains null for non-null items", func() {
			result := execute(schema, "{ list, nullableItems }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Cannot return null for non-nullable field DataType.list.",
					"locations": [{ "line": 1, "column": 3 }],
					"path": ["list", 1]
				}],
				"data": {
					"list": null,
					"nullableItems": ["a", "b"]
				}
			}`))
		})

		It("reports error for a list field which resolves to non-list value", func() {
			result := execute(schema, "{ notList }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "Expected Iterable, but did not find one for field \"DataType.notList\".",
					"locations": [{ "line": 1, "column": 3 }],
					"path": ["notList"]
				}],
				"data": {
					"notList": null
				}
			}`))
		})

		It("includes extensions provided by the error", func() {
			result := execute(schema, "{ extensionsError }", executor.ExecuteParams{})
			Expect(result).Should(MatchResultInJSON(`{
				"errors": [{
					"message": "wrapped: error with code TEST_CODE",
					"locations": [{ "line": 1, "column": 3 }],
					"path": ["extensionsError"],
					"extensions": {
						"code": "TEST_CODE"
					}
				}],
				"data": {
					"extensionsError": null
				}
			}`))

			var e extensionsError
			Expect(errors.As(result.Errors.Errors[0], &e)).Should(BeTrue())
		})

		It("serializes errors before data", func() {
			result := execute(schema, "{ syncError }", executor.ExecuteParams{})
			b, err := result.MarshalJSON()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(b)).Should(HavePrefix(`{"errors":[`))
			Expect(string(b)).Should(HaveSuffix(`"data":{"syncError":null}}`))
		})
	})

	It("uses the inline operation if no operation name is provided", func() {
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Type",
				Fields: graphql.Fields{
					"a": {Type: graphql.String()},
				},
			}),
		})

		result := execute(schema, "{ a }", executor.ExecuteParams{
			RootValue: map[string]interface{}{"a": "b"},
		})
		Expect(result).Should(MatchResultInJSON(`{ "data": { "a": "b" } }`))
	})

	It("resolves __typename", func() {
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Type",
				Fields: graphql.Fields{
					"a": {Type: graphql.String()},
				},
			}),
		})

		result := execute(schema, "{ __typename, a }", executor.ExecuteParams{
			RootValue: map[string]interface{}{"a": "b"},
		})
		Expect(result).Should(MatchResultInJSON(`{ "data": { "__typename": "Type", "a": "b" } }`))
	})

	It("dereferences leaf values given by pointer", func() {
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Type",
				Fields: graphql.Fields{
					"summary":  {Type: graphql.String()},
					"synopsis": {Type: graphql.String()},
					"year":     {Type: graphql.Int()},
				},
			}),
		})

		summary, year := "A thief", 2010
		result := execute(schema, "{ summary, synopsis, year }", executor.ExecuteParams{
			RootValue: struct {
				Summary  *string
				Synopsis *string
				Year     *int
			}{
				Summary: &summary,
				Year:    &year,
			},
		})
		Expect(result).Should(MatchResultInJSON(`{
			"data": { "summary": "A thief", "synopsis": null, "year": 2010 }
		}`))
	})

	Describe("chooses operation", func() {
		var schema graphql.Schema

		BeforeEach(func() {
			schema = graphql.MustNewSchema(&graphql.SchemaConfig{
				Query: graphql.MustNewObject(&graphql.ObjectConfig{
					Name: "Type",
					Fields: graphql.Fields{
						"a": {Type: graphql.String()},
					},
				}),
			})
		})

		It("uses the named operation if operation name is provided", func() {
			operation, errs := prepare(schema, "query Example { first: a } query OtherExample { second: a }", "OtherExample")
			Expect(errs.HaveOccurred()).Should(BeFalse())

			result := operation.Execute(context.Background(), executor.ExecuteParams{
				RootValue: map[string]interface{}{"a": "b"},
			})
			Expect(result).Should(MatchResultInJSON(`{ "data": { "second": "b" } }`))
		})

		It("provides error if no operation is provided", func() {
			_, errs := prepare(schema, "fragment Example on Type { a }")
			Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
				testutil.MatchGraphQLError(testutil.MessageEqual("Must provide an operation.")),
			))
		})

		It("errors if no op name is provided with multiple operations", func() {
			_, errs := prepare(schema, "query Example { a } query OtherExample { a }")
			Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
				testutil.MatchGraphQLError(
					testutil.MessageEqual("Must provide operation name if query contains multiple operations."),
				),
			))
		})

		It("errors if unknown operation name is provided", func() {
			_, errs := prepare(schema, "query Example { a } query OtherExample { a }", "UnknownExample")
			Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
				testutil.MatchGraphQLError(testutil.MessageEqual(`Unknown operation named "UnknownExample".`)),
			))
		})

		It("errors if schema does not support mutation", func() {
			_, errs := prepare(schema, "mutation { a }")
			Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
				testutil.MatchGraphQLError(
					testutil.MessageEqual("Schema is not configured for mutations."),
					testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 1}),
				),
			))
		})
	})

	It("executes mutation root fields serially", func() {
		var order []string

		setNumber := graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			number, _ := info.Args().GetInt("newNumber")
			order = append(order, fmt.Sprintf("%s(%d)", info.Path().Keys()[0], number))
			return number, nil
		})

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"numberHolder": {Type: graphql.Int()},
				},
			}),
			Mutation: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Mutation",
				Fields: graphql.Fields{
					"immediatelyChangeTheNumber": {
						Type: graphql.Int(),
						Args: graphql.ArgumentConfigMap{
							"newNumber": {Type: graphql.Int()},
						},
						Resolver: setNumber,
					},
				},
			}),
		})

		result := execute(schema, `
			mutation M {
				first: immediatelyChangeTheNumber(newNumber: 1)
				second: immediatelyChangeTheNumber(newNumber: 2)
				third: immediatelyChangeTheNumber(newNumber: 3)
			}
		`, executor.ExecuteParams{})

		Expect(result).Should(MatchResultInJSON(`{
			"data": {
				"first": 1,
				"second": 2,
				"third": 3
			}
		}`))
		Expect(order).Should(Equal([]string{"first(1)", "second(2)", "third(3)"}))
	})

	It("stops executing mutation root fields once the data becomes null", func() {
		var order []string

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"numberHolder": {Type: graphql.Int()},
				},
			}),
			Mutation: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Mutation",
				Fields: graphql.Fields{
					"failToChangeTheNumber": {
						Type: graphql.MustNewNonNullOfType(graphql.Int()),
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							order = append(order, "fail")
							return nil, errors.New("Cannot change the number")
						}),
					},
					"immediatelyChangeTheNumber": {
						Type: graphql.Int(),
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							order = append(order, "change")
							return 1, nil
						}),
					},
				},
			}),
		})

		result := execute(schema, `mutation { failToChangeTheNumber immediatelyChangeTheNumber }`, executor.ExecuteParams{})
		Expect(result).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "Cannot change the number",
				"locations": [{ "line": 1, "column": 12 }],
				"path": ["failToChangeTheNumber"]
			}],
			"data": null
		}`))
		Expect(order).Should(Equal([]string{"fail"}))
	})

	It("stops resolving fields when the context is canceled", func() {
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Type",
				Fields: graphql.Fields{
					"a": {Type: graphql.String()},
				},
			}),
		})

		operation, errs := prepare(schema, "{ a }")
		Expect(errs.HaveOccurred()).Should(BeFalse())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := operation.Execute(ctx, executor.ExecuteParams{
			RootValue: map[string]interface{}{"a": "b"},
		})
		Expect(result).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "context canceled",
				"locations": [{ "line": 1, "column": 3 }],
				"path": ["a"]
			}],
			"data": { "a": null }
		}`))
	})
})
