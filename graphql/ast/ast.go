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

package ast

import (
	"strconv"

	"github.com/botobag/tweetql/graphql/token"
)

// Node represents a node in an AST tree from parsing GraphQL language.
type Node interface {
	// Location of the first token of the node in the source
	Location() token.SourceLocationInfo
}

// NodeBase stores the location for a Node. It is embedded in every node type.
type NodeBase struct {
	Loc token.SourceLocationInfo
}

// Location implements Node.
func (base NodeBase) Location() token.SourceLocationInfo {
	return base.Loc
}

// Name represents a name.
//
// Reference: https://spec.graphql.org/June2018/#sec-Names
type Name struct {
	NodeBase
	Value string
}

// IsEmpty returns true if the name is not given (e.g., an anonymous operation).
func (name Name) IsEmpty() bool {
	return len(name.Value) == 0
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

// Document represents a GraphQL Document. Only executable definitions are supported.
//
// Reference: https://spec.graphql.org/June2018/#Document
type Document struct {
	// Definitions defined in the document.
	Definitions []Definition
}

// Definition is either an OperationDefinition or a FragmentDefinition.
type Definition interface {
	Node

	// GetSelectionSet returns the selection set in the definition.
	GetSelectionSet() SelectionSet

	definitionNode()
}

var (
	_ Definition = (*OperationDefinition)(nil)
	_ Definition = (*FragmentDefinition)(nil)
)

// OperationType specifies the type of operation model.
//
// Reference: https://spec.graphql.org/June2018/#OperationType
type OperationType string

// Enumeration of OperationType
const (
	OperationTypeQuery        OperationType = "query"
	OperationTypeMutation     OperationType = "mutation"
	OperationTypeSubscription OperationType = "subscription"
)

// OperationDefinition represents a GraphQL operation.
//
// Reference: https://spec.graphql.org/June2018/#OperationDefinition
type OperationDefinition struct {
	NodeBase

	// Type of the operation; Empty for query shorthand.
	Type OperationType

	// Name of the operation
	Name Name

	// VariableDefinitions contains variables given to the operation
	VariableDefinitions []*VariableDefinition

	// Directives applied to the operation
	Directives Directives

	// SelectionSet specifies the sets of fields to fetch.
	SelectionSet SelectionSet
}

// GetSelectionSet implements Definition.
func (definition *OperationDefinition) GetSelectionSet() SelectionSet {
	return definition.SelectionSet
}

// IsQueryShorthand returns true if this is a short form of query operation such as "{ field }".
func (definition *OperationDefinition) IsQueryShorthand() bool {
	return len(definition.Type) == 0
}

// OperationType returns the type of operation.
func (definition *OperationDefinition) OperationType() OperationType {
	if definition.IsQueryShorthand() {
		return OperationTypeQuery
	}
	return definition.Type
}

func (*OperationDefinition) definitionNode() {}

// FragmentDefinition defines a named fragment.
//
// Reference: https://spec.graphql.org/June2018/#FragmentDefinition
type FragmentDefinition struct {
	NodeBase
	Name          Name
	TypeCondition NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// GetSelectionSet implements Definition.
func (definition *FragmentDefinition) GetSelectionSet() SelectionSet {
	return definition.SelectionSet
}

func (*FragmentDefinition) definitionNode() {}

//===----------------------------------------------------------------------------------------====//
// Selections
//===----------------------------------------------------------------------------------------====//

// SelectionSet specifies the information to be fetched.
//
// Reference: https://spec.graphql.org/June2018/#SelectionSet
type SelectionSet []Selection

// Selection represents a field or a set of fields.
//
//	Selection ::
//		Field
//		FragmentSpread
//		InlineFragment
type Selection interface {
	Node

	// GetDirectives returns directives applied to the selection.
	GetDirectives() Directives

	selectionNode()
}

var (
	_ Selection = (*Field)(nil)
	_ Selection = (*FragmentSpread)(nil)
	_ Selection = (*InlineFragment)(nil)
)

// Field describes a field selection.
//
// Reference: https://spec.graphql.org/June2018/#Field
type Field struct {
	NodeBase

	// Alias specifies a different name of the key to be used in response object for returning the
	// field value.
	Alias Name

	// Name of the field
	Name Name

	// Arguments taken by the field
	Arguments Arguments

	// Directives applied to the field
	Directives Directives

	// Set of information to be fetched that is nested in the field.
	SelectionSet SelectionSet
}

// ResponseKey returns the key of the field in the response object: alias if one was given,
// otherwise the field name.
func (node *Field) ResponseKey() string {
	if !node.Alias.IsEmpty() {
		return node.Alias.Value
	}
	return node.Name.Value
}

// GetDirectives implements Selection.
func (node *Field) GetDirectives() Directives {
	return node.Directives
}

func (*Field) selectionNode() {}

// FragmentSpread spreads a named fragment into the enclosing selection set.
//
// Reference: https://spec.graphql.org/June2018/#FragmentSpread
type FragmentSpread struct {
	NodeBase
	Name       Name
	Directives Directives
}

// GetDirectives implements Selection.
func (node *FragmentSpread) GetDirectives() Directives {
	return node.Directives
}

func (*FragmentSpread) selectionNode() {}

// InlineFragment is an unnamed fragment defined in place.
//
// Reference: https://spec.graphql.org/June2018/#InlineFragment
type InlineFragment struct {
	NodeBase
	TypeCondition NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// HasTypeCondition returns true if the inline fragment is qualified with a type.
func (node *InlineFragment) HasTypeCondition() bool {
	return !node.TypeCondition.Name.IsEmpty()
}

// GetDirectives implements Selection.
func (node *InlineFragment) GetDirectives() Directives {
	return node.Directives
}

func (*InlineFragment) selectionNode() {}

//===----------------------------------------------------------------------------------------====//
// Arguments and Directives
//===----------------------------------------------------------------------------------------====//

// Arguments is a list of Argument.
type Arguments []*Argument

// Lookup finds the argument with the given name or returns nil.
func (args Arguments) Lookup(name string) *Argument {
	for _, arg := range args {
		if arg.Name.Value == name {
			return arg
		}
	}
	return nil
}

// Argument is a named value given to a field or a directive.
//
// Reference: https://spec.graphql.org/June2018/#Argument
type Argument struct {
	NodeBase
	Name  Name
	Value Value
}

// Directives is a list of Directive.
type Directives []*Directive

// Lookup finds the directive with the given name or returns nil.
func (directives Directives) Lookup(name string) *Directive {
	for _, directive := range directives {
		if directive.Name.Value == name {
			return directive
		}
	}
	return nil
}

// Directive describes alternate runtime execution and type validation behavior.
//
// Reference: https://spec.graphql.org/June2018/#Directive
type Directive struct {
	NodeBase
	Name      Name
	Arguments Arguments
}

//===----------------------------------------------------------------------------------------====//
// Values
//===----------------------------------------------------------------------------------------====//

// Value represents an input value literal.
//
// Reference: https://spec.graphql.org/June2018/#Value
type Value interface {
	Node

	// Interface returns the Go value represented by the literal; For Variable, it is the variable
	// name.
	Interface() interface{}

	valueNode()
}

var (
	_ Value = IntValue{}
	_ Value = FloatValue{}
	_ Value = StringValue{}
	_ Value = BooleanValue{}
	_ Value = NullValue{}
	_ Value = EnumValue{}
	_ Value = ListValue{}
	_ Value = ObjectValue{}
	_ Value = Variable{}
)

// IntValue represents an integer literal. The literal text is kept and converted on demand.
type IntValue struct {
	NodeBase
	Value string
}

// Interface implements Value.
func (value IntValue) Interface() interface{} {
	if v, err := strconv.ParseInt(value.Value, 10, 64); err == nil {
		return v
	}
	return value.Value
}

// Int32Value converts the literal into an int32.
func (value IntValue) Int32Value() (int32, error) {
	v, err := strconv.ParseInt(value.Value, 10, 32)
	return int32(v), err
}

// FloatValue converts the literal into a float64.
func (value IntValue) FloatValue() (float64, error) {
	return strconv.ParseFloat(value.Value, 64)
}

func (IntValue) valueNode() {}

// FloatValue represents a float literal.
type FloatValue struct {
	NodeBase
	Value string
}

// Interface implements Value.
func (value FloatValue) Interface() interface{} {
	if v, err := value.FloatValue(); err == nil {
		return v
	}
	return value.Value
}

// FloatValue converts the literal into a float64.
func (value FloatValue) FloatValue() (float64, error) {
	return strconv.ParseFloat(value.Value, 64)
}

func (FloatValue) valueNode() {}

// StringValue represents a string or a block string literal. Value holds the interpreted content.
type StringValue struct {
	NodeBase
	Value string
	Block bool
}

// Interface implements Value.
func (value StringValue) Interface() interface{} {
	return value.Value
}

func (StringValue) valueNode() {}

// BooleanValue represents true or false.
type BooleanValue struct {
	NodeBase
	Value bool
}

// Interface implements Value.
func (value BooleanValue) Interface() interface{} {
	return value.Value
}

func (BooleanValue) valueNode() {}

// NullValue represents the keyword null.
type NullValue struct {
	NodeBase
}

// Interface implements Value.
func (NullValue) Interface() interface{} {
	return nil
}

func (NullValue) valueNode() {}

// EnumValue represents a name which is not true, false or null.
type EnumValue struct {
	NodeBase
	Value string
}

// Interface implements Value.
func (value EnumValue) Interface() interface{} {
	return value.Value
}

func (EnumValue) valueNode() {}

// ListValue represents a list literal.
type ListValue struct {
	NodeBase
	Values []Value
}

// Interface implements Value.
func (value ListValue) Interface() interface{} {
	result := make([]interface{}, len(value.Values))
	for i, v := range value.Values {
		result[i] = v.Interface()
	}
	return result
}

func (ListValue) valueNode() {}

// ObjectValue represents an input object literal.
type ObjectValue struct {
	NodeBase
	Fields []*ObjectField
}

// Interface implements Value.
func (value ObjectValue) Interface() interface{} {
	result := make(map[string]interface{}, len(value.Fields))
	for _, field := range value.Fields {
		result[field.Name.Value] = field.Value.Interface()
	}
	return result
}

func (ObjectValue) valueNode() {}

// ObjectField is a name-value pair in an ObjectValue.
type ObjectField struct {
	NodeBase
	Name  Name
	Value Value
}

// Variable references a variable defined by the operation.
//
// Reference: https://spec.graphql.org/June2018/#Variable
type Variable struct {
	NodeBase
	Name Name
}

// Interface implements Value.
func (value Variable) Interface() interface{} {
	return value.Name.Value
}

func (Variable) valueNode() {}

// VariableDefinition declares a variable taken by an operation.
//
// Reference: https://spec.graphql.org/June2018/#VariableDefinition
type VariableDefinition struct {
	NodeBase
	Variable     Variable
	Type         Type
	DefaultValue Value
}

//===----------------------------------------------------------------------------------------====//
// Types
//===----------------------------------------------------------------------------------------====//

// Type references a type in a variable definition.
//
// Reference: https://spec.graphql.org/June2018/#Type
type Type interface {
	Node

	// String prints the type in GraphQL notation (e.g., "[Int!]").
	String() string

	typeNode()
}

var (
	_ Type = NamedType{}
	_ Type = ListType{}
	_ Type = NonNullType{}
)

// NamedType references a type by name.
type NamedType struct {
	NodeBase
	Name Name
}

// String implements Type.
func (t NamedType) String() string {
	return t.Name.Value
}

func (NamedType) typeNode() {}

// ListType wraps an item type.
type ListType struct {
	NodeBase
	ItemType Type
}

// String implements Type.
func (t ListType) String() string {
	return "[" + t.ItemType.String() + "]"
}

func (ListType) typeNode() {}

// NonNullType wraps a named type or a list type.
type NonNullType struct {
	NodeBase
	Type Type
}

// String implements Type.
func (t NonNullType) String() string {
	return t.Type.String() + "!"
}

func (NonNullType) typeNode() {}
