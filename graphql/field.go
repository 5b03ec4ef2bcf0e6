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
	"context"
	"regexp"
	"sort"
)

// FieldResolver resolves field value during execution.
//
// Reference: https://spec.graphql.org/June2018/#ResolveFieldValue()
type FieldResolver interface {
	// Context carries deadlines and cancelation signals.
	//
	// Source is the "source" value. It contains the value that has been resolved by field's enclosing
	// object.
	//
	// Info contains a collection of information about the current execution state.
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(
	ctx context.Context,
	source interface{},
	info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

var _ FieldResolver = FieldResolverFunc(nil)

// Fields maps field name to its definition.
type Fields map[string]*FieldConfig

// FieldConfig provides definition of a field when defining an object.
type FieldConfig struct {
	// Description of the defining field
	Description string

	// Type of the value returned by the field
	Type Type

	// Arguments that can be specified when querying the field
	Args ArgumentConfigMap

	// Resolver for resolving field value during execution. Fields without a resolver are resolved
	// by the executor's default resolver.
	Resolver FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation *Deprecation
}

// Field representing a field in an object. It is built from a FieldConfig.
//
// Reference: https://spec.graphql.org/June2018/#FieldsDefinition
type Field interface {
	// Name of the field
	Name() string

	// Description of the field
	Description() string

	// Type of the value returned by the field
	Type() Type

	// Parent is the object that defines this field.
	Parent() Object

	// Args returns the arguments accepted by the field sorted by name.
	Args() []Argument

	// Resolver returns the resolver for the field value; It is nil when not specified.
	Resolver() FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation() *Deprecation
}

// FieldMap maps field name to the Field.
type FieldMap map[string]Field

// SortedNames returns the field names in alphabetical order.
func (fields FieldMap) SortedNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type field struct {
	config FieldConfig
	name   string
	parent Object
	args   []Argument
}

var _ Field = (*field)(nil)

// Name implements Field.
func (f *field) Name() string {
	return f.name
}

// Description implements Field.
func (f *field) Description() string {
	return f.config.Description
}

// Type implements Field.
func (f *field) Type() Type {
	return f.config.Type
}

// Parent implements Field.
func (f *field) Parent() Object {
	return f.parent
}

// Args implements Field.
func (f *field) Args() []Argument {
	return f.args
}

// Resolver implements Field.
func (f *field) Resolver() FieldResolver {
	return f.config.Resolver
}

// Deprecation implements Field.
func (f *field) Deprecation() *Deprecation {
	return f.config.Deprecation
}

var nameRegExp = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

// IsValidName returns true if name matches /^[_a-zA-Z][_a-zA-Z0-9]*$/.
func IsValidName(name string) bool {
	return nameRegExp.MatchString(name)
}

// buildFieldMap builds a FieldMap for the parent from Fields.
func buildFieldMap(parent Object, fields Fields) (FieldMap, error) {
	if len(fields) == 0 {
		return nil, NewError(parent.Name() + " fields must be an object with field names as keys.")
	}

	result := make(FieldMap, len(fields))
	for name, config := range fields {
		if !IsValidName(name) {
			return nil, NewError(`Names must match /^[_a-zA-Z][_a-zA-Z0-9]*$/ but "` + name + `" does not.`)
		}
		if config == nil || config.Type == nil {
			return nil, NewError(`Must provide type for field "` + parent.Name() + "." + name + `".`)
		}
		if !IsOutputType(config.Type) {
			return nil, NewError(`The type of "` + parent.Name() + "." + name + `" must be an output type.`)
		}

		args, err := buildArguments(parent.Name()+"."+name, config.Args)
		if err != nil {
			return nil, err
		}

		result[name] = &field{
			config: *config,
			name:   name,
			parent: parent,
			args:   args,
		}
	}

	return result, nil
}

// ArgumentConfigMap maps argument name to its definition.
type ArgumentConfigMap map[string]ArgumentConfig

// An intentionally internal type for marking a "null" as default value for an argument
type argumentNilValueType int

// NilArgumentDefaultValue is a value that has a special meaning when it is given to the
// DefaultValue in ArgumentConfig. It sets the argument with default value set to "null". While
// setting DefaultValue to "nil" or not giving it a value means there's no default value.
const NilArgumentDefaultValue argumentNilValueType = 0

// ArgumentConfig provides definition for defining an argument in a field.
type ArgumentConfig struct {
	// Description fo the argument
	Description string

	// Type of the value that can be given to the argument
	Type Type

	// DefaultValue specified the value to be assigned to the argument when no value is provided.
	DefaultValue interface{}
}

func buildArguments(fieldName string, argConfigMap ArgumentConfigMap) ([]Argument, error) {
	if len(argConfigMap) == 0 {
		return nil, nil
	}

	args := make([]Argument, 0, len(argConfigMap))
	for name, argConfig := range argConfigMap {
		if !IsValidName(name) {
			return nil, NewError(`Names must match /^[_a-zA-Z][_a-zA-Z0-9]*$/ but "` + name + `" does not.`)
		}
		if argConfig.Type == nil || !IsInputType(argConfig.Type) {
			return nil, NewError(`The type of "` + fieldName + "(" + name + `:)" must be an input type.`)
		}
		args = append(args, Argument{
			name:         name,
			description:  argConfig.Description,
			ttype:        argConfig.Type,
			defaultValue: argConfig.DefaultValue,
		})
	}

	sort.Slice(args, func(i, j int) bool {
		return args[i].name < args[j].name
	})

	return args, nil
}

// Argument is accepted in querying a field to further specify the return value.
//
// Reference: https://spec.graphql.org/June2018/#sec-Field-Arguments
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the value that can be given to the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if the argument has a default value.
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue specifies the value to be assigned to the argument when no value is provided.
func (arg *Argument) DefaultValue() interface{} {
	if _, ok := arg.defaultValue.(argumentNilValueType); ok {
		return nil
	}
	return arg.defaultValue
}

// IsRequiredArgument returns true if value must be provided to the argument for execution.
func IsRequiredArgument(arg *Argument) bool {
	return IsNonNullType(arg.Type()) && !arg.HasDefaultValue()
}
