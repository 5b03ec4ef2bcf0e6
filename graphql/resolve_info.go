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
	"github.com/botobag/tweetql/graphql/ast"

	jsoniter "github.com/json-iterator/go"
)

// An ArgumentValues contains argument values given to a field. It is immutable after it is created.
type ArgumentValues struct {
	values map[string]interface{}
}

var noArgumentValues = ArgumentValues{
	// Allocate an non-nil map to eliminate null-check for Lookup.
	values: map[string]interface{}{},
}

// NoArgumentValues represents an empty argument value set.
func NoArgumentValues() ArgumentValues {
	return noArgumentValues
}

// NewArgumentValues creates an ArgumentValues from given values.
func NewArgumentValues(values map[string]interface{}) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	return ArgumentValues{values}
}

// Lookup returns argument value for the given name. If argument with the given name doesn't exist,
// returns nil. The second value (ok) is a bool that is true if the argument exists, and false if
// not.
func (args ArgumentValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns argument value for the given name. It returns nil if no such argument was found.
func (args ArgumentValues) Get(name string) interface{} {
	return args.values[name]
}

// GetString returns the argument value as string; It returns an empty string if the argument is
// absent or is not a string.
func (args ArgumentValues) GetString(name string) string {
	s, _ := args.values[name].(string)
	return s
}

// GetInt returns the argument value as int and whether it was given.
func (args ArgumentValues) GetInt(name string) (int, bool) {
	i, ok := args.values[name].(int)
	return i, ok
}

// MarshalJSON implements json.Marshaler to serialize the internal map in ArgumentValues into JSON.
// This is primarily used by tests for verifying argument values.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(args.values)
}

// VariableValues contains values for variables defined by the query. It is immutable after it is
// created.
//
// Reference: https://spec.graphql.org/June2018/#sec-Language.Variables
type VariableValues struct {
	values map[string]interface{}
}

var noVariableValues = VariableValues{
	values: map[string]interface{}{},
}

// NoVariableValues represents an empty variable value set.
func NoVariableValues() VariableValues {
	return noVariableValues
}

// NewVariableValues creates an VariableValues from given values.
func NewVariableValues(values map[string]interface{}) VariableValues {
	if values == nil {
		return noVariableValues
	}
	return VariableValues{values}
}

// Lookup returns variable value for the given name. The second value (ok) is a bool that is true if
// the variable exists, and false if not.
func (vars VariableValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = vars.values[name]
	return
}

// Get returns variable value for the given name. It returns nil if no such variable was found.
func (vars VariableValues) Get(name string) interface{} {
	return vars.values[name]
}

// MarshalJSON implements json.Marshaler to serialize the internal map in VariableValues into JSON.
func (vars VariableValues) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(vars.values)
}

// ResolveInfo exposes a collection of information about execution state for resolvers.
type ResolveInfo interface {
	// Schema of the type system that is currently executing.
	Schema() Schema

	// Definition of this operation
	Operation() *ast.OperationDefinition

	// Object is the type that defines the resolving field.
	Object() Object

	// Field that is being resolved
	Field() Field

	// FieldDefinitions contains all selections in the request for the field being resolved. The
	// list has more than one node when the response key is selected multiple times in the query.
	FieldDefinitions() []*ast.Field

	// Path in the response to this field
	Path() ResponsePath

	// Args contains the coerced argument values of the field.
	Args() ArgumentValues

	// VariableValues contains the coerced values for variables defined by the operation.
	VariableValues() VariableValues

	// RootValue is the value given for the root of the operation.
	RootValue() interface{}

	// AppContext is the application-specific data given when executing the operation.
	AppContext() interface{}
}
