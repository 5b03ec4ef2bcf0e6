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

package parser_test

import (
	"fmt"
	"strings"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/ast"
	"github.com/botobag/tweetql/graphql/parser"
	"github.com/botobag/tweetql/graphql/token"
	"github.com/botobag/tweetql/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func parse(query string) (ast.Document, error) {
	return parser.Parse(token.NewSourceFromString(query))
}

func expectSyntaxError(query string, message string, line uint, column uint) {
	_, err := parse(query)
	ExpectWithOffset(1, err).Should(testutil.MatchGraphQLError(
		testutil.MessageEqual("Syntax Error: "+message),
		testutil.LocationEqual(graphql.ErrorLocation{Line: line, Column: column}),
		testutil.KindIs(graphql.ErrKindSyntax),
	))
}

var _ = Describe("Parser", func() {
	It("provides useful errors", func() {
		expectSyntaxError("{", "Expected Name, found <EOF>", 1, 2)
		expectSyntaxError("{ ...MissingOn }\nfragment MissingOn Type", `Expected "on", found Name "Type"`, 2, 20)
		expectSyntaxError("{ field: {} }", "Expected Name, found {", 1, 10)
		expectSyntaxError("notanoperation Foo { field }", `Unexpected Name "notanoperation"`, 1, 1)
		expectSyntaxError("...", "Unexpected ...", 1, 1)
		expectSyntaxError("", "Unexpected <EOF>", 1, 1)
	})

	It("does not accept fragments named \"on\"", func() {
		expectSyntaxError("fragment on on on { on }", `Unexpected Name "on"`, 1, 10)
	})

	It("does not accept variables in constant default values", func() {
		expectSyntaxError("query Foo($x: Complex = { a: { b: [ $var ] } }) { field }", `Unexpected $`, 1, 37)
	})

	Describe("nesting depth", func() {
		depthError := fmt.Sprintf("Document exceeds the maximum nesting depth of %d", parser.MaxDepth)

		It("rejects deeply nested selection sets", func() {
			query := "{" + strings.Repeat(" a {", parser.MaxDepth) + " a" + strings.Repeat(" }", parser.MaxDepth+1)
			expectSyntaxError(query, depthError, 1, uint(1+4*parser.MaxDepth))
		})

		It("rejects deeply nested list arguments", func() {
			n := 1 << 20
			query := "{ tweet(id: " + strings.Repeat("[", n) + strings.Repeat("]", n) + ") { id } }"
			// The enclosing selection set takes one level.
			expectSyntaxError(query, depthError, 1, uint(12+parser.MaxDepth))
		})

		It("rejects deeply nested object arguments", func() {
			query := "{ tweet(id: " + strings.Repeat("{ a: ", parser.MaxDepth) + "1" +
				strings.Repeat(" }", parser.MaxDepth) + ") { id } }"
			_, err := parse(query)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Syntax Error: "+depthError),
				testutil.KindIs(graphql.ErrKindSyntax),
			))
		})

		It("rejects deeply nested list types", func() {
			query := "query ($v: " + strings.Repeat("[", parser.MaxDepth+1) + "Int" +
				strings.Repeat("]", parser.MaxDepth+1) + ") { a }"
			_, err := parse(query)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Syntax Error: "+depthError),
				testutil.KindIs(graphql.ErrKindSyntax),
			))
		})

		It("accepts nesting up to the limit", func() {
			query := "{" + strings.Repeat(" a {", parser.MaxDepth-1) + " a" + strings.Repeat(" }", parser.MaxDepth)
			_, err := parse(query)
			Expect(err).ShouldNot(HaveOccurred())
		})
	})

	It("parses query shorthand", func() {
		document, err := parse("{ allTweets { id } }")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(document.Definitions).Should(HaveLen(1))

		operation := document.Definitions[0].(*ast.OperationDefinition)
		Expect(operation.IsQueryShorthand()).Should(BeTrue())
		Expect(operation.OperationType()).Should(Equal(ast.OperationTypeQuery))
		Expect(operation.Location()).Should(Equal(token.SourceLocationInfo{
			Name:   "GraphQL request",
			Line:   1,
			Column: 1,
		}))

		field := operation.SelectionSet[0].(*ast.Field)
		Expect(field.Name.Value).Should(Equal("allTweets"))
		Expect(field.ResponseKey()).Should(Equal("allTweets"))
		Expect(field.SelectionSet).Should(HaveLen(1))
	})

	It("parses named operations with variables, aliases, arguments and directives", func() {
		document, err := parse(`mutation Post($text: String!, $userId: ID = "1", $tags: [String!]) {
			created: postTweet(text: $text, userId: $userId) @include(if: true) {
				id
			}
		}`)
		Expect(err).ShouldNot(HaveOccurred())

		operation := document.Definitions[0].(*ast.OperationDefinition)
		Expect(operation.OperationType()).Should(Equal(ast.OperationTypeMutation))
		Expect(operation.Name.Value).Should(Equal("Post"))

		Expect(operation.VariableDefinitions).Should(HaveLen(3))
		Expect(operation.VariableDefinitions[0].Variable.Name.Value).Should(Equal("text"))
		Expect(operation.VariableDefinitions[0].Type.String()).Should(Equal("String!"))
		Expect(operation.VariableDefinitions[0].DefaultValue).Should(BeNil())
		Expect(operation.VariableDefinitions[1].DefaultValue).Should(Equal(ast.StringValue{
			NodeBase: ast.NodeBase{
				Loc: token.SourceLocationInfo{Name: "GraphQL request", Line: 1, Column: 45},
			},
			Value: "1",
		}))
		Expect(operation.VariableDefinitions[2].Type.String()).Should(Equal("[String!]"))

		field := operation.SelectionSet[0].(*ast.Field)
		Expect(field.Alias.Value).Should(Equal("created"))
		Expect(field.Name.Value).Should(Equal("postTweet"))
		Expect(field.ResponseKey()).Should(Equal("created"))
		Expect(field.Location().Line).Should(Equal(uint(2)))
		Expect(field.Location().Column).Should(Equal(uint(2)))

		Expect(field.Arguments).Should(HaveLen(2))
		Expect(field.Arguments.Lookup("text").Value).Should(BeAssignableToTypeOf(ast.Variable{}))
		Expect(field.Arguments.Lookup("missing")).Should(BeNil())

		directive := field.Directives.Lookup("include")
		Expect(directive).ShouldNot(BeNil())
		Expect(directive.Arguments.Lookup("if").Value.Interface()).Should(Equal(true))
	})

	It("parses fragments", func() {
		document, err := parse(`
			query { tweet(id: 1) { ...TweetFields ... on Tweet { text } ... @skip(if: false) { id } } }
			fragment TweetFields on Tweet { id author { fullName } }
		`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(document.Definitions).Should(HaveLen(2))

		selections := document.Definitions[0].GetSelectionSet()[0].(*ast.Field).SelectionSet
		Expect(selections).Should(HaveLen(3))

		spread := selections[0].(*ast.FragmentSpread)
		Expect(spread.Name.Value).Should(Equal("TweetFields"))

		inline := selections[1].(*ast.InlineFragment)
		Expect(inline.HasTypeCondition()).Should(BeTrue())
		Expect(inline.TypeCondition.Name.Value).Should(Equal("Tweet"))

		untyped := selections[2].(*ast.InlineFragment)
		Expect(untyped.HasTypeCondition()).Should(BeFalse())
		Expect(untyped.Directives.Lookup("skip")).ShouldNot(BeNil())

		fragment := document.Definitions[1].(*ast.FragmentDefinition)
		Expect(fragment.Name.Value).Should(Equal("TweetFields"))
		Expect(fragment.TypeCondition.Name.Value).Should(Equal("Tweet"))
		Expect(fragment.SelectionSet).Should(HaveLen(2))
	})

	It("parses block strings in arguments", func() {
		document, err := parse(`{ postTweet(text: """
			multi
			line
		""") { id } }`)
		Expect(err).ShouldNot(HaveOccurred())
		field := document.Definitions[0].GetSelectionSet()[0].(*ast.Field)
		value := field.Arguments.Lookup("text").Value.(ast.StringValue)
		Expect(value.Block).Should(BeTrue())
		Expect(value.Value).Should(Equal("multi\nline"))
	})
})

var _ = Describe("ParseValue", func() {
	It("parses list values", func() {
		value, err := parser.ParseValue(token.NewSourceFromString(`[123 "abc"]`))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(value.Interface()).Should(Equal([]interface{}{int64(123), "abc"}))
	})

	It("parses object values", func() {
		value, err := parser.ParseValue(token.NewSourceFromString(`{ a: 1.5, b: [true, null], c: ENUM }`))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(value.Interface()).Should(Equal(map[string]interface{}{
			"a": 1.5,
			"b": []interface{}{true, nil},
			"c": "ENUM",
		}))
	})

	It("rejects values nested beyond the depth limit", func() {
		n := parser.MaxDepth + 1
		_, err := parser.ParseValue(token.NewSourceFromString(strings.Repeat("[", n) + strings.Repeat("]", n)))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(fmt.Sprintf("Syntax Error: Document exceeds the maximum nesting depth of %d", parser.MaxDepth)),
			testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: uint(n)}),
		))

		value, err := parser.ParseValue(token.NewSourceFromString(
			strings.Repeat("[", parser.MaxDepth) + strings.Repeat("]", parser.MaxDepth)))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(value).Should(BeAssignableToTypeOf(ast.ListValue{}))
	})

	It("rejects trailing tokens", func() {
		_, err := parser.ParseValue(token.NewSourceFromString(`1 2`))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Syntax Error: Expected <EOF>, found Int \"2\""),
		))
	})
})
