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
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/ast"
)

// typeFromAST returns the schema type referenced by an AST type or nil if it cannot be found.
func typeFromAST(schema graphql.Schema, t ast.Type) graphql.Type {
	switch t := t.(type) {
	case ast.NamedType:
		return schema.TypeMap().Lookup(t.Name.Value)

	case ast.ListType:
		elementType := typeFromAST(schema, t.ItemType)
		if elementType == nil {
			return nil
		}
		return graphql.MustNewListOfType(elementType)

	case ast.NonNullType:
		innerType := typeFromAST(schema, t.Type)
		if innerType == nil {
			return nil
		}
		nonNull, err := graphql.NewNonNullOfType(innerType)
		if err != nil {
			return nil
		}
		return nonNull
	}
	return nil
}

// coerceVariableValues prepares an object map of variable values of the correct type based on the
// provided variable definitions and arbitrary input.
//
// Reference: https://spec.graphql.org/June2018/#CoerceVariableValues()
func coerceVariableValues(
	schema graphql.Schema,
	operation *ast.OperationDefinition,
	inputs map[string]interface{}) (graphql.VariableValues, graphql.Errors) {

	if len(operation.VariableDefinitions) == 0 {
		return graphql.NoVariableValues(), graphql.NoErrors()
	}

	var errs graphql.Errors
	coercedValues := make(map[string]interface{}, len(operation.VariableDefinitions))

	for _, definition := range operation.VariableDefinitions {
		name := definition.Variable.Name.Value
		location := graphql.ErrorLocationOfASTNode(definition)

		varType := typeFromAST(schema, definition.Type)
		if varType == nil || !graphql.IsInputType(varType) {
			// Validated in Prepare.
			errs.Emplace(
				fmt.Sprintf(`Variable "$%s" expected value of type "%s" which cannot be used as an input type.`,
					name, definition.Type),
				location, graphql.ErrKindCoercion)
			continue
		}

		value, hasValue := inputs[name]
		if !hasValue {
			if definition.DefaultValue != nil {
				defaultValue, err := valueFromAST(definition.DefaultValue, varType, graphql.NoVariableValues())
				if err != nil {
					errs.Emplace(
						fmt.Sprintf(`Variable "$%s" has invalid default value %s.`, name, printValue(definition.DefaultValue)),
						location, graphql.ErrKindCoercion, err)
					continue
				}
				coercedValues[name] = defaultValue
			} else if graphql.IsNonNullType(varType) {
				errs.Emplace(
					fmt.Sprintf(`Variable "$%s" of required type "%s" was not provided.`, name, varType),
					location, graphql.ErrKindCoercion)
			}
			continue
		}

		if value == nil && graphql.IsNonNullType(varType) {
			errs.Emplace(
				fmt.Sprintf(`Variable "$%s" of non-null type "%s" must not be null.`, name, varType),
				location, graphql.ErrKindCoercion)
			continue
		}

		coercedValue, err := coerceInputValue(value, varType)
		if err != nil {
			message := fmt.Sprintf(`Variable "$%s" got invalid value %s`, name, printInputValue(value))
			if e, ok := err.(*graphql.Error); ok && len(e.Message) > 0 {
				message += "; " + e.Message
			}
			errs.Emplace(message, location, graphql.ErrKindCoercion, err)
			continue
		}
		coercedValues[name] = coercedValue
	}

	if errs.HaveOccurred() {
		return graphql.NoVariableValues(), errs
	}

	return graphql.NewVariableValues(coercedValues), graphql.NoErrors()
}

// coerceInputValue coerces a value given externally (e.g., decoded from JSON) to the given input
// type.
func coerceInputValue(value interface{}, t graphql.Type) (interface{}, error) {
	switch t := t.(type) {
	case graphql.NonNull:
		if value == nil {
			return nil, graphql.NewCoercionError(`Expected non-nullable type "%s" not to be null.`, t)
		}
		return coerceInputValue(value, t.InnerType())

	case graphql.List:
		if value == nil {
			return nil, nil
		}

		v := reflect.ValueOf(value)
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			// A single item is accepted as a list of one.
			item, err := coerceInputValue(value, t.ElementType())
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}

		items := make([]interface{}, v.Len())
		for i := range items {
			item, err := coerceInputValue(v.Index(i).Interface(), t.ElementType())
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil

	case graphql.Scalar:
		if value == nil {
			return nil, nil
		}
		return t.CoerceVariableValue(value)
	}

	return nil, graphql.NewCoercionError(`Unexpected input type "%v".`, t)
}

// errUndefinedVariable is returned by valueFromAST when the value contains a variable without
// runtime value.
var errUndefinedVariable = graphql.NewError("undefined variable", graphql.ErrKindCoercion)

// valueFromAST produces a Go value given a GraphQL Value AST.
//
// Reference: https://github.com/graphql/graphql-js/blob/v14.0.0/src/utilities/valueFromAST.js
func valueFromAST(valueNode ast.Value, t graphql.Type, variables graphql.VariableValues) (interface{}, error) {
	if variable, ok := valueNode.(ast.Variable); ok {
		value, exists := variables.Lookup(variable.Name.Value)
		if !exists {
			return nil, errUndefinedVariable
		}
		if value == nil && graphql.IsNonNullType(t) {
			return nil, graphql.NewCoercionError(`Expected non-nullable type "%s" not to be null.`, t)
		}
		// Variable values have been coerced.
		return value, nil
	}

	switch t := t.(type) {
	case graphql.NonNull:
		if _, isNull := valueNode.(ast.NullValue); isNull {
			return nil, graphql.NewCoercionError(`Expected non-nullable type "%s" not to be null.`, t)
		}
		return valueFromAST(valueNode, t.InnerType(), variables)

	case graphql.List:
		if _, isNull := valueNode.(ast.NullValue); isNull {
			return nil, nil
		}

		listValue, ok := valueNode.(ast.ListValue)
		if !ok {
			item, err := valueFromAST(valueNode, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}

		items := make([]interface{}, len(listValue.Values))
		for i, itemNode := range listValue.Values {
			item, err := valueFromAST(itemNode, t.ElementType(), variables)
			if err == errUndefinedVariable && !graphql.IsNonNullType(t.ElementType()) {
				// Missing variables in a list is treated as null.
				item, err = nil, nil
			}
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil

	case graphql.Scalar:
		if _, isNull := valueNode.(ast.NullValue); isNull {
			return nil, nil
		}
		return t.CoerceArgumentValue(valueNode)
	}

	return nil, graphql.NewCoercionError(`Unexpected input type "%v".`, t)
}

// argumentValues prepares a map of argument values given a list of argument definitions and list
// of argument AST nodes.
//
// Reference: https://spec.graphql.org/June2018/#CoerceArgumentValues()
func argumentValues(
	field graphql.Field,
	node *ast.Field,
	variables graphql.VariableValues) (graphql.ArgumentValues, error) {

	argDefs := field.Args()
	if len(argDefs) == 0 {
		return graphql.NoArgumentValues(), nil
	}

	coercedValues := make(map[string]interface{}, len(argDefs))
	for i := range argDefs {
		argDef := &argDefs[i]
		name := argDef.Name()
		argType := argDef.Type()

		argNode := node.Arguments.Lookup(name)
		if argNode == nil {
			if argDef.HasDefaultValue() {
				coercedValues[name] = argDef.DefaultValue()
			} else if graphql.IsNonNullType(argType) {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of required type "%s" was not provided.`, name, argType),
					graphql.ErrorLocationOfASTNode(node), graphql.ErrKindCoercion)
			}
			continue
		}

		if variable, ok := argNode.Value.(ast.Variable); ok {
			variableName := variable.Name.Value
			value, exists := variables.Lookup(variableName)
			if !exists {
				if argDef.HasDefaultValue() {
					coercedValues[name] = argDef.DefaultValue()
				} else if graphql.IsNonNullType(argType) {
					return graphql.NoArgumentValues(), graphql.NewError(
						fmt.Sprintf(`Argument "%s" of required type "%s" was provided the variable "$%s" which was not provided a runtime value.`,
							name, argType, variableName),
						graphql.ErrorLocationOfASTNode(argNode.Value), graphql.ErrKindCoercion)
				}
				continue
			}

			if value == nil && graphql.IsNonNullType(argType) {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of non-null type "%s" must not be null.`, name, argType),
					graphql.ErrorLocationOfASTNode(argNode.Value), graphql.ErrKindCoercion)
			}

			coercedValues[name] = value
			continue
		}

		value, err := valueFromAST(argNode.Value, argType, variables)
		if err != nil {
			message := fmt.Sprintf(`Argument "%s" has invalid value %s.`, name, printValue(argNode.Value))
			if e, ok := err.(*graphql.Error); ok && err != errUndefinedVariable {
				message = fmt.Sprintf(`Argument "%s" has invalid value %s; %s`, name, printValue(argNode.Value), e.Message)
			}
			return graphql.NoArgumentValues(), graphql.NewError(
				message, graphql.ErrorLocationOfASTNode(argNode.Value), graphql.ErrKindCoercion, err)
		}
		coercedValues[name] = value
	}

	return graphql.NewArgumentValues(coercedValues), nil
}

// printValue converts a value literal into its textual form in GraphQL.
func printValue(value ast.Value) string {
	switch value := value.(type) {
	case ast.IntValue:
		return value.Value
	case ast.FloatValue:
		return value.Value
	case ast.StringValue:
		return strconv.Quote(value.Value)
	case ast.BooleanValue:
		return strconv.FormatBool(value.Value)
	case ast.NullValue:
		return "null"
	case ast.EnumValue:
		return value.Value
	case ast.Variable:
		return "$" + value.Name.Value

	case ast.ListValue:
		items := make([]string, len(value.Values))
		for i, item := range value.Values {
			items[i] = printValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"

	case ast.ObjectValue:
		fields := make([]string, len(value.Fields))
		for i, field := range value.Fields {
			fields[i] = field.Name.Value + ": " + printValue(field.Value)
		}
		return "{" + strings.Join(fields, ", ") + "}"
	}
	return fmt.Sprintf("%v", value)
}

// printInputValue formats an externally given value for error messages.
func printInputValue(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(value)
	}
	return fmt.Sprintf("%v", value)
}
