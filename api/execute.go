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

package api

import (
	"context"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/executor"
	"github.com/botobag/tweetql/graphql/parser"
	"github.com/botobag/tweetql/graphql/token"
)

// Request is one GraphQL request served outside of HTTP.
type Request struct {
	Query         string
	OperationName string
	Variables     map[string]interface{}
}

// Execute parses, prepares and executes request against schema. Syntax and validation errors are
// reported in the Errors of the result which then has no Data.
func Execute(ctx context.Context, schema graphql.Schema, request Request) executor.ExecutionResult {
	document, err := parser.Parse(token.NewSourceFromString(request.Query))
	if err != nil {
		var errs graphql.Errors
		errs.Append(err)
		return executor.ExecutionResult{
			Errors: errs,
		}
	}

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:        schema,
		Document:      document,
		OperationName: request.OperationName,
	})
	if errs.HaveOccurred() {
		return executor.ExecutionResult{
			Errors: errs,
		}
	}

	return operation.Execute(ctx, executor.ExecuteParams{
		VariableValues: request.Variables,
	})
}
