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
	"reflect"
	"sort"
)

// TypeMap keeps track of all named types referenced within the schema.
type TypeMap struct {
	types map[string]Type
}

// add a type and every type reachable from it into the map. This is only used by NewSchema to
// initialize type map incrementally.
func (typeMap TypeMap) add(t Type) error {
	// stack contains types to be added to the map.
	stack := []Type{t}

	for len(stack) > 0 {
		t, stack = stack[len(stack)-1], stack[:len(stack)-1]

		// Skip nil type quickly. Before validation, we may have nil Type or nil type instance wrapped
		// in a Type.
		if t == nil || reflect.ValueOf(t).IsNil() {
			continue
		}

		if namedType, ok := t.(TypeWithName); ok {
			name := namedType.Name()
			prev, exists := typeMap.types[name]
			if exists {
				if prev != t {
					return NewError(fmt.Sprintf(
						"Schema must contain unique named types but contains multiple types named %s.", name))
				}
				continue
			}
			typeMap.types[name] = t
		}

		switch t := t.(type) {
		case Scalar:
			// Nothing to to.

		case Object:
			if o, ok := t.(*object); ok {
				if err := o.fieldsError(); err != nil {
					return err
				}
			}
			for _, field := range t.Fields() {
				stack = append(stack, field.Type())
				args := field.Args()
				for i := range args {
					stack = append(stack, args[i].Type())
				}
			}

		case WrappingType:
			stack = append(stack, t.UnwrappedType())

		default:
			return NewError(fmt.Sprintf("Cannot add %s to schema: unsupported type %T", t, t))
		}
	}

	return nil
}

// Lookup finds a type with given name.
func (typeMap TypeMap) Lookup(name string) Type {
	return typeMap.types[name]
}

// Names returns names of all types in the map in alphabetical order.
func (typeMap TypeMap) Names() []string {
	names := make([]string, 0, len(typeMap.types))
	for name := range typeMap.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaConfig contains configuration to define a GraphQL schema.
type SchemaConfig struct {
	// Query and Mutation returns GraphQL Root Operation defined by the schema.
	Query    Object
	Mutation Object

	// List of types that are declared in the schema but not reachable from the roots.
	Types []Type
}

// Schema Definition
//
// A GraphQL service’s collective type system capabilities are referred to as that service’s
// “schema”. A schema is defined in terms of the types it supports as well as the root operation
// types for each kind of operation.
//
// Reference: https://spec.graphql.org/June2018/#sec-Schema
type Schema interface {
	// TypeMap returns all named types in the schema including the built-in scalars.
	TypeMap() TypeMap

	// Query returns the root type for query operations.
	Query() Object

	// Mutation returns the root type for mutation operations. It is nil if the schema doesn't
	// support mutations.
	Mutation() Object
}

type schema struct {
	typeMap  TypeMap
	query    Object
	mutation Object
}

var _ Schema = (*schema)(nil)

// NewSchema creates a Schema object from a SchemaConfig.
func NewSchema(config *SchemaConfig) (Schema, error) {
	if config.Query == nil {
		return nil, NewError("Schema query must be Object Type but got: nil.")
	}

	typeMap := TypeMap{
		types: map[string]Type{},
	}

	initialTypes := []Type{config.Query}
	if config.Mutation != nil {
		initialTypes = append(initialTypes, config.Mutation)
	}
	initialTypes = append(initialTypes, config.Types...)
	for _, scalar := range StandardScalars() {
		initialTypes = append(initialTypes, scalar)
	}

	for _, t := range initialTypes {
		if err := typeMap.add(t); err != nil {
			return nil, err
		}
	}

	return &schema{
		typeMap:  typeMap,
		query:    config.Query,
		mutation: config.Mutation,
	}, nil
}

// MustNewSchema panics on error when creating a schema with NewSchema.
func MustNewSchema(config *SchemaConfig) Schema {
	s, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return s
}

// TypeMap implements Schema.
func (s *schema) TypeMap() TypeMap {
	return s.typeMap
}

// Query implements Schema.
func (s *schema) Query() Object {
	return s.query
}

// Mutation implements Schema.
func (s *schema) Mutation() Object {
	return s.mutation
}
