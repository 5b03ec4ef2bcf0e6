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
	"errors"

	"github.com/botobag/tweetql/graphql/ast"
)

// ScalarResultCoercer coerces result value into a value represented in the Scalar type.
//
// Reference: https://spec.graphql.org/June2018/#sec-Scalars
type ScalarResultCoercer interface {
	// CoerceResultValue coerces the given value for the field to return.
	CoerceResultValue(value interface{}) (interface{}, error)
}

// CoerceScalarResultFunc is an adapter to allow the use of ordinary functions as
// ScalarResultCoercer.
type CoerceScalarResultFunc func(value interface{}) (interface{}, error)

// CoerceResultValue calls f(value).
func (f CoerceScalarResultFunc) CoerceResultValue(value interface{}) (interface{}, error) {
	return f(value)
}

var _ ScalarResultCoercer = (CoerceScalarResultFunc)(nil)

// ScalarInputCoercer coerces input values in the GraphQL requests into a value represented the
// Scalar type.
type ScalarInputCoercer interface {
	// CoerceVariableValue coerces a scalar value in input query variables.
	CoerceVariableValue(value interface{}) (interface{}, error)

	// CoerceArgumentValue coerces a scalar value in input field arguments.
	CoerceArgumentValue(value ast.Value) (interface{}, error)
}

// ScalarInputCoercerFuncs is an adapter to create a ScalarInputCoercer from function values.
type ScalarInputCoercerFuncs struct {
	CoerceVariableValueFunc func(value interface{}) (interface{}, error)
	CoerceArgumentValueFunc func(value ast.Value) (interface{}, error)
}

// CoerceVariableValue calls f.CoerceVariableValueFunc(value).
func (f ScalarInputCoercerFuncs) CoerceVariableValue(value interface{}) (interface{}, error) {
	return f.CoerceVariableValueFunc(value)
}

// CoerceArgumentValue calls f.CoerceArgumentValueFunc(value).
func (f ScalarInputCoercerFuncs) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return f.CoerceArgumentValueFunc(value)
}

var _ ScalarInputCoercer = ScalarInputCoercerFuncs{}

// ScalarConfig provides specification to define a Scalar type.
type ScalarConfig struct {
	// Name of the defining Scalar
	Name string

	// Description for the Scalar type
	Description string

	// ResultCoercer serializes value for return in execution result.
	ResultCoercer ScalarResultCoercer

	// InputCoercer parses input value in query variables and field arguments.
	InputCoercer ScalarInputCoercer
}

// scalar is our built-in implementation for Scalar.
type scalar struct {
	config ScalarConfig
}

var _ Scalar = (*scalar)(nil)

// NewScalar defines a Scalar type from a ScalarConfig.
func NewScalar(config *ScalarConfig) (Scalar, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Scalar.")
	} else if config.ResultCoercer == nil {
		return nil, NewError(`Must provide ResultCoercer for Scalar "` + config.Name + `".`)
	} else if config.InputCoercer == nil {
		return nil, NewError(`Must provide InputCoercer for Scalar "` + config.Name + `".`)
	}

	return &scalar{
		config: *config,
	}, nil
}

// MustNewScalar is a convenience function equivalent to NewScalar but panics on failure instead of
// returning an error.
func MustNewScalar(config *ScalarConfig) Scalar {
	s, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return s
}

func (*scalar) graphqlType()       {}
func (*scalar) graphqlLeafType()   {}
func (*scalar) graphqlScalarType() {}

// Name implements TypeWithName.
func (s *scalar) Name() string {
	return s.config.Name
}

// Description implements TypeWithDescription.
func (s *scalar) Description() string {
	return s.config.Description
}

// String implements fmt.Stringer.
func (s *scalar) String() string {
	return s.config.Name
}

// CoerceResultValue implements LeafType.
func (s *scalar) CoerceResultValue(value interface{}) (interface{}, error) {
	return s.config.ResultCoercer.CoerceResultValue(value)
}

// CoerceVariableValue implements Scalar.
func (s *scalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	return s.config.InputCoercer.CoerceVariableValue(value)
}

// CoerceArgumentValue implements Scalar.
func (s *scalar) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return s.config.InputCoercer.CoerceArgumentValue(value)
}

// ErrInvalidScalarValue is returned by scalar coercers when the value cannot be represented in the
// scalar type. The executor replaces it with a message that names the type.
var ErrInvalidScalarValue = errors.New("invalid scalar value")
