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

package executor

import (
	"context"
	"fmt"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/ast"
)

// PreparedOperation is like "prepared statement" in conventional DBMS. In GraphQL, an Operation [0]
// is an executable definition [1] in GraphQL Document [2]. Operation can be either a (read-only)
// query or a mutation. Before executing an operation, executor needs to make some "preparations"
// such as operation selection and validation. PreparedOperation allows you to perform these static
// tasks in advance to save the overheads for subsequent repeatedly execution.
//
// A PreparedOperation is immutable and can be executed concurrently.
//
// [0]: https://spec.graphql.org/June2018/#sec-Language.Operations
// [1]: https://spec.graphql.org/June2018/#ExecutableDefinition
// [2]: https://spec.graphql.org/June2018/#sec-Language.Document
type PreparedOperation struct {
	// Schema of the type system that is currently executing
	schema graphql.Schema

	// Document that contains definitions for this operation
	document ast.Document

	// Definition of this operation
	definition *ast.OperationDefinition

	// rootType extracts the root type corresponding to the operation in the schema.
	rootType graphql.Object

	// FragmentMap maps name to the fragment definition in the document to speed up lookup when
	// fragment spread during execution.
	fragmentMap map[string]*ast.FragmentDefinition

	// Resolver to be used for resolving field value when the field doesn't provide one.
	defaultFieldResolver graphql.FieldResolver
}

// PrepareParams specifies parameters to Prepare. All data are required except OperationName and
// DefaultFieldResolver.
type PrepareParams struct {
	// Schema of the type system that this operation is executing on
	Schema graphql.Schema

	// Document that contains operations to be prepared for execution
	Document ast.Document

	// The name of the Operation in the Document to execute.
	OperationName string

	// Resolver to be used to fields without providing custom resolvers.
	DefaultFieldResolver graphql.FieldResolver
}

// Prepare prepares an operation for execution. It selects the operation from the document and
// validates its selections against the schema. It creates a PreparedOperation on success.
func Prepare(params PrepareParams) (*PreparedOperation, graphql.Errors) {
	schema := params.Schema
	document := params.Document

	// Find the definition for the operation to be executed from document.
	var operation *ast.OperationDefinition

	operationName := params.OperationName
	// Also build map for fragmentMap.
	fragmentMap := map[string]*ast.FragmentDefinition{}

	for _, definition := range document.Definitions {
		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			if len(operationName) == 0 {
				if operation != nil {
					return nil, graphql.ErrorsOf("Must provide operation name if query contains multiple operations.")
				}
				operation = definition
			} else if operationName == definition.Name.Value {
				operation = definition
			}

		case *ast.FragmentDefinition:
			name := definition.Name.Value
			if _, exists := fragmentMap[name]; exists {
				return nil, graphql.ErrorsOf(
					fmt.Sprintf(`There can be only one fragment named "%s".`, name),
					graphql.ErrorLocationOfASTNode(definition.Name),
					graphql.ErrKindValidation)
			}
			fragmentMap[name] = definition
		}
	}

	if operation == nil {
		if len(operationName) > 0 {
			return nil, graphql.ErrorsOf(fmt.Sprintf(`Unknown operation named "%s".`, operationName))
		}
		return nil, graphql.ErrorsOf("Must provide an operation.")
	}

	// Extract the root operation type.
	var rootType graphql.Object
	switch operation.OperationType() {
	case ast.OperationTypeQuery:
		rootType = schema.Query()

	case ast.OperationTypeMutation:
		rootType = schema.Mutation()
		if rootType == nil {
			return nil, graphql.ErrorsOf(
				"Schema is not configured for mutations.",
				[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(operation)})
		}

	case ast.OperationTypeSubscription:
		return nil, graphql.ErrorsOf(
			"Schema is not configured for subscriptions.",
			[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(operation)})

	default:
		return nil, graphql.ErrorsOf(
			"Can only have query and mutation operations.",
			[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(operation)})
	}

	if errs := validateOperation(schema, operation, rootType, fragmentMap); errs.HaveOccurred() {
		return nil, errs
	}

	defaultFieldResolver := params.DefaultFieldResolver
	if defaultFieldResolver == nil {
		defaultFieldResolver = NewDefaultFieldResolver()
	}

	return &PreparedOperation{
		schema:               schema,
		document:             document,
		definition:           operation,
		rootType:             rootType,
		fragmentMap:          fragmentMap,
		defaultFieldResolver: defaultFieldResolver,
	}, graphql.NoErrors()
}

// Schema returns the type system definition which the operation is based on.
func (operation *PreparedOperation) Schema() graphql.Schema {
	return operation.schema
}

// Document returns the request document.
func (operation *PreparedOperation) Document() ast.Document {
	return operation.document
}

// Definition returns the definition of the operation in the document.
func (operation *PreparedOperation) Definition() *ast.OperationDefinition {
	return operation.definition
}

// Type returns the type of the operation.
func (operation *PreparedOperation) Type() ast.OperationType {
	return operation.definition.OperationType()
}

// VariableDefinitions returns the variable definitions describing the variables taken by the
// operation.
func (operation *PreparedOperation) VariableDefinitions() []*ast.VariableDefinition {
	return operation.definition.VariableDefinitions
}

// ExecuteParams specifies parameter to execute a prepared operation.
type ExecuteParams struct {
	// RootValue is an initial value corresponding to the root type being executed. Conceptually, an
	// initial value represents the “universe” of data available via a GraphQL Service. It is common
	// for a GraphQL Service to always use the same initial value for every request.
	RootValue interface{}

	// AppContext is an application-specific data that will get passed to all resolve functions.
	AppContext interface{}

	// VariableValues contains values for any Variables [0] defined by the Operation. They are raw
	// values, for example decoded from a request in JSON, and are coerced before execution.
	//
	// [0]: https://spec.graphql.org/June2018/#sec-Language.Variables
	VariableValues map[string]interface{}
}

// ExecutionResult contains result from running an Executor.
type ExecutionResult struct {
	// Data is the root of the result tree. It is nil when execution did not start (for example
	// because variables could not be coerced) and a nil node when execution failed to produce a
	// value for a non-null root field.
	Data *ResultNode

	// Errors raised during execution
	Errors graphql.Errors
}

// Execute executes the prepared operation. It blocks until the result is available. Root fields of
// a mutation are executed serially in the order they appear in the document.
func (operation *PreparedOperation) Execute(c context.Context, params ExecuteParams) ExecutionResult {
	variableValues, errs := coerceVariableValues(operation.schema, operation.definition, params.VariableValues)
	if errs.HaveOccurred() {
		return ExecutionResult{
			Errors: errs,
		}
	}

	ctx := &ExecutionContext{
		operation:      operation,
		rootValue:      params.RootValue,
		appContext:     params.AppContext,
		variableValues: variableValues,
	}

	return ctx.execute(c)
}
