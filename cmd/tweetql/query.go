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

package main

import (
	"fmt"
	"io"

	"github.com/botobag/tweetql/api"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type queryOptions struct {
	*rootOptions
	variables     string
	operationName string
}

func newQueryCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &queryOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <document>",
		Short: "Execute a GraphQL document",
		Long: `Execute a GraphQL document against a freshly seeded store and print the result
in JSON. Pass "-" to read the document from standard input.

Example:
  tweetql query '{ allTweets { id text author { fullName } } }'
  tweetql query 'query ($id: ID!) { tweet(id: $id) { text } }' --variables '{"id": "1"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.variables, "variables", "", "variable values in JSON object")
	cmd.Flags().StringVar(&opts.operationName, "operation", "", "name of the operation to execute")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *queryOptions, document string) error {
	if document == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		document = string(b)
	}

	var variables map[string]interface{}
	if len(opts.variables) > 0 {
		if err := json.Unmarshal([]byte(opts.variables), &variables); err != nil {
			return fmt.Errorf("invalid variables: %w", err)
		}
	}

	a, err := newApp(opts.rootOptions, cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	defer a.movies.CloseIdleConnections()

	result := api.Execute(cmd.Context(), a.schema, api.Request{
		Query:         document,
		OperationName: opts.operationName,
		Variables:     variables,
	})

	b, err := result.MarshalJSON()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := out.Write(b); err != nil {
		return err
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return err
	}

	if n := len(result.Errors.Errors); n > 0 {
		return fmt.Errorf("query completed with %d error(s)", n)
	}
	return nil
}
