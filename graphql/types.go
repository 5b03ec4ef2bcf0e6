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
	"fmt"

	"github.com/botobag/tweetql/graphql/ast"
)

// Type is implemented by every GraphQL type. The type system has scalars and objects as named
// types, wrapped in lists and non-nulls.
//
// Reference: https://spec.graphql.org/June2018/#sec-Types
type Type interface {
	fmt.Stringer

	// graphqlType seals the interface to this package.
	graphqlType()
}

// TypeWithName is implemented by named types.
type TypeWithName interface {
	Name() string
}

// TypeWithDescription is implemented by types carrying documentation.
type TypeWithDescription interface {
	Description() string
}

// LeafType ends the selection of a field. Scalar is the only leaf type.
type LeafType interface {
	Type
	TypeWithName
	TypeWithDescription

	// CoerceResultValue turns a value returned by a resolver into its serialized form.
	CoerceResultValue(value interface{}) (interface{}, error)

	graphqlLeafType()
}

// Scalar is a leaf type that also accepts input from variables and literals.
//
// Reference: https://spec.graphql.org/June2018/#sec-Scalars
type Scalar interface {
	LeafType

	// CoerceVariableValue converts a decoded JSON variable value.
	CoerceVariableValue(value interface{}) (interface{}, error)

	// CoerceArgumentValue converts a literal from the document.
	CoerceArgumentValue(value ast.Value) (interface{}, error)

	graphqlScalarType()
}

// Object is a named set of fields. Selections on an object recurse into its fields.
//
// Reference: https://spec.graphql.org/June2018/#sec-Objects
type Object interface {
	Type
	TypeWithName
	TypeWithDescription

	Fields() FieldMap

	graphqlObjectType()
}

// WrappingType is List or NonNull.
//
// Reference: https://spec.graphql.org/June2018/#sec-Wrapping-Types
type WrappingType interface {
	Type

	// UnwrappedType returns the type one level down.
	UnwrappedType() Type

	graphqlWrappingType()
}

// List is a sequence of ElementType.
type List interface {
	WrappingType

	ElementType() Type

	graphqlListType()
}

// NonNull forbids null for InnerType. A null produced for it is an execution error that
// propagates to the closest nullable parent.
type NonNull interface {
	WrappingType

	InnerType() Type

	graphqlNonNullType()
}

// Deprecation marks a field as deprecated. A nil *Deprecation means the field is current.
type Deprecation struct {
	Reason string
}

// Defined returns true if d marks a deprecation.
func (d *Deprecation) Defined() bool {
	return d != nil
}

// IsInputType returns true if t can be the type of an argument. Only scalars are accepted as
// input.
func IsInputType(t Type) bool {
	_, ok := NamedTypeOf(t).(Scalar)
	return ok
}

// IsOutputType returns true if t can be the type of a field.
func IsOutputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case Scalar, Object:
		return true
	}
	return false
}

// IsLeafType returns true if t is a LeafType.
func IsLeafType(t Type) bool {
	_, ok := t.(LeafType)
	return ok
}

// IsNonNullType returns true if t is a NonNull.
func IsNonNullType(t Type) bool {
	_, ok := t.(NonNull)
	return ok
}

// IsNullableType is the negation of IsNonNullType.
func IsNullableType(t Type) bool {
	return !IsNonNullType(t)
}

// IsListType returns true if t is a List.
func IsListType(t Type) bool {
	_, ok := t.(List)
	return ok
}

// NullableTypeOf strips one NonNull from t.
func NullableTypeOf(t Type) Type {
	if nonNull, ok := t.(NonNull); ok {
		return nonNull.InnerType()
	}
	return t
}

// NamedTypeOf strips every List and NonNull from t.
func NamedTypeOf(t Type) Type {
	for {
		wrappingType, ok := t.(WrappingType)
		if !ok {
			return t
		}
		t = wrappingType.UnwrappedType()
	}
}
