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
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/ast"
)

const typeNameMetaFieldName = "__typename"

var typeNameMetaFieldType = graphql.MustNewNonNullOfType(graphql.String())

// typeNameMetaField implements the "__typename" field which can be queried on any object.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-Name-Introspection
type typeNameMetaField struct {
	parent graphql.Object
}

var _ graphql.Field = typeNameMetaField{}

// Name implements graphql.Field.
func (typeNameMetaField) Name() string {
	return typeNameMetaFieldName
}

// Description implements graphql.Field.
func (typeNameMetaField) Description() string {
	return "The name of the current Object type at runtime."
}

// Type implements graphql.Field.
func (typeNameMetaField) Type() graphql.Type {
	return typeNameMetaFieldType
}

// Parent implements graphql.Field.
func (f typeNameMetaField) Parent() graphql.Object {
	return f.parent
}

// Args implements graphql.Field.
func (typeNameMetaField) Args() []graphql.Argument {
	return nil
}

// Deprecation implements graphql.Field.
func (typeNameMetaField) Deprecation() *graphql.Deprecation {
	return nil
}

// Resolver implements graphql.Field.
func (typeNameMetaField) Resolver() graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return info.Object().Name(), nil
	})
}

// findFieldDef looks up the field on the given type. It has special casing for "__typename" which
// can always be queried as a field.
func findFieldDef(parentType graphql.Object, fieldName string) graphql.Field {
	if fieldName == typeNameMetaFieldName {
		return typeNameMetaField{parentType}
	}
	return parentType.Fields()[fieldName]
}

// fieldGroup contains all field nodes with the same response key in a selection set.
type fieldGroup struct {
	responseKey string
	field       graphql.Field
	nodes       []*ast.Field
}

// collectFields groups fields in the selection sets by their response key. Fields are returned in
// the order they are first seen in a depth-first traversal through fragments.
//
// Reference: https://spec.graphql.org/June2018/#CollectFields()
func (ctx *ExecutionContext) collectFields(
	runtimeType graphql.Object,
	selectionSets ...ast.SelectionSet) ([]*fieldGroup, error) {

	var (
		groups   []*fieldGroup
		groupMap = map[string]*fieldGroup{}

		// Boolean set to prevent named fragment to be applied twice or more in a selection set.
		visitedFragmentNames = map[string]bool{}
	)

	var collect func(selectionSet ast.SelectionSet) error
	collect = func(selectionSet ast.SelectionSet) error {
		for _, selection := range selectionSet {
			// Check @skip and @include.
			shouldInclude, err := ctx.shouldIncludeNode(selection)
			if err != nil {
				return err
			} else if !shouldInclude {
				continue
			}

			switch selection := selection.(type) {
			case *ast.Field:
				name := selection.ResponseKey()
				if group := groupMap[name]; group != nil {
					// Coalesce selection sets of fields with the same response key.
					group.nodes = append(group.nodes, selection)
					continue
				}

				fieldDef := findFieldDef(runtimeType, selection.Name.Value)
				if fieldDef == nil {
					// Schema doesn't contain the field. Skip it without an error.
					continue
				}

				group := &fieldGroup{
					responseKey: name,
					field:       fieldDef,
					nodes:       []*ast.Field{selection},
				}
				groups = append(groups, group)
				groupMap[name] = group

			case *ast.InlineFragment:
				if selection.HasTypeCondition() && !doesTypeConditionSatisfy(selection.TypeCondition, runtimeType) {
					continue
				}
				if err := collect(selection.SelectionSet); err != nil {
					return err
				}

			case *ast.FragmentSpread:
				fragmentName := selection.Name.Value
				if visitedFragmentNames[fragmentName] {
					continue
				}
				visitedFragmentNames[fragmentName] = true

				fragmentDef := ctx.operation.fragmentMap[fragmentName]
				if fragmentDef == nil || !doesTypeConditionSatisfy(fragmentDef.TypeCondition, runtimeType) {
					continue
				}
				if err := collect(fragmentDef.SelectionSet); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, selectionSet := range selectionSets {
		if err := collect(selectionSet); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// Determines if a type condition is satisfied with the given type. There are no abstract types so
// the condition must name the object type itself.
func doesTypeConditionSatisfy(typeCondition ast.NamedType, t graphql.Object) bool {
	return typeCondition.Name.Value == t.Name()
}

var nonNullBooleanType = graphql.MustNewNonNullOfType(graphql.Boolean())

// Determines if a field should be included based on the @include and @skip directives, where @skip
// has higher precedence than @include.
//
// Reference: https://spec.graphql.org/June2018/#sec--include
func (ctx *ExecutionContext) shouldIncludeNode(node ast.Selection) (bool, error) {
	directives := node.GetDirectives()

	if skip := directives.Lookup("skip"); skip != nil {
		shouldSkip, err := ctx.directiveCondition(skip)
		if err != nil {
			return false, err
		} else if shouldSkip {
			return false, nil
		}
	}

	if include := directives.Lookup("include"); include != nil {
		shouldInclude, err := ctx.directiveCondition(include)
		if err != nil {
			return false, err
		} else if !shouldInclude {
			return false, nil
		}
	}

	return true, nil
}

// directiveCondition evaluates the "if" argument of @skip and @include.
func (ctx *ExecutionContext) directiveCondition(directive *ast.Directive) (bool, error) {
	arg := directive.Arguments.Lookup("if")
	if arg == nil {
		return false, graphql.NewError(
			fmt.Sprintf(`Directive "@%s" argument "if" of type "Boolean!" is required, but it was not provided.`,
				directive.Name.Value),
			graphql.ErrorLocationOfASTNode(directive), graphql.ErrKindCoercion)
	}

	value, err := valueFromAST(arg.Value, nonNullBooleanType, ctx.variableValues)
	if err != nil {
		return false, graphql.NewError(
			fmt.Sprintf(`Argument "if" of directive "@%s" has invalid value %s.`,
				directive.Name.Value, printValue(arg.Value)),
			graphql.ErrorLocationOfASTNode(arg.Value), graphql.ErrKindCoercion, err)
	}

	b, _ := value.(bool)
	return b, nil
}

// execute runs the operation from its root type.
//
// Reference: https://spec.graphql.org/June2018/#sec-Executing-Operations
func (ctx *ExecutionContext) execute(c context.Context) ExecutionResult {
	operation := ctx.operation

	groups, err := ctx.collectFields(operation.rootType, operation.definition.SelectionSet)
	if err != nil {
		ctx.errs.Append(err)
		return ExecutionResult{
			Data:   NilResultNode(),
			Errors: ctx.errs,
		}
	}

	// Fields are executed one after another in the order of the response. A mutation stops at the
	// first root field that nulls the data.
	serial := operation.Type() == ast.OperationTypeMutation
	data := ctx.executeFields(c, operation.rootType, ctx.rootValue, groups, graphql.ResponsePath{}, serial)
	if data == nil {
		data = NilResultNode()
	}

	return ExecutionResult{
		Data:   data,
		Errors: ctx.errs,
	}
}

// executeFields executes the fields in a selection set and returns an object result. It returns nil
// if a non-null field became null. The remaining fields are still executed unless serial is set.
func (ctx *ExecutionContext) executeFields(
	c context.Context,
	parentType graphql.Object,
	source interface{},
	groups []*fieldGroup,
	path graphql.ResponsePath,
	serial bool) *ResultNode {

	object := &ObjectResultValue{
		Keys:        make([]string, 0, len(groups)),
		FieldValues: make([]*ResultNode, 0, len(groups)),
	}

	nulled := false
	for _, group := range groups {
		result := ctx.executeField(c, parentType, source, group, path.WithFieldName(group.responseKey))
		if result == nil {
			if serial {
				return nil
			}
			nulled = true
			continue
		}
		if !nulled {
			object.append(group.responseKey, result)
		}
	}

	if nulled {
		return nil
	}

	return &ResultNode{
		Kind:  ResultKindObject,
		Value: object,
	}
}

// executeField resolves the field on the given source value and completes the result. It returns
// nil if the field is non-null but could not produce a value.
//
// Reference: https://spec.graphql.org/June2018/#ExecuteField()
func (ctx *ExecutionContext) executeField(
	c context.Context,
	parentType graphql.Object,
	source interface{},
	group *fieldGroup,
	path graphql.ResponsePath) *ResultNode {

	field := group.field
	returnType := field.Type()

	if err := c.Err(); err != nil {
		return ctx.handleFieldError(err, returnType, group.nodes, path)
	}

	args, err := argumentValues(field, group.nodes[0], ctx.variableValues)
	if err != nil {
		return ctx.handleFieldError(err, returnType, group.nodes, path)
	}

	info := &ResolveInfo{
		ExecutionContext: ctx,
		ParentType:       parentType,
		FieldDef:         field,
		Nodes:            group.nodes,
		ResponsePath:     path,
		ArgumentValues:   args,
	}

	resolver := field.Resolver()
	if resolver == nil {
		resolver = ctx.operation.defaultFieldResolver
	}

	value, err := resolver.Resolve(c, source, info)
	if err != nil {
		return ctx.handleFieldError(err, returnType, group.nodes, path)
	}

	return ctx.completePosition(c, returnType, info, path, value)
}

// completePosition completes a value for a position in the response (a field or a list item). A
// nullable position absorbs a null propagated from its descendants.
func (ctx *ExecutionContext) completePosition(
	c context.Context,
	returnType graphql.Type,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{}) *ResultNode {

	result := ctx.completeValue(c, returnType, info, path, value)
	if result == nil && graphql.IsNullableType(returnType) {
		return NilResultNode()
	}
	return result
}

// newFieldError wraps err raised for a field into a graphql.Error with locations of the field and
// its response path.
func newFieldError(err error, nodes []*ast.Field, path graphql.ResponsePath) *graphql.Error {
	locations := make([]graphql.ErrorLocation, len(nodes))
	for i, node := range nodes {
		locations[i] = graphql.ErrorLocationOfASTNode(node)
	}

	message := err.Error()
	args := []interface{}{locations, path.Clone(), err}

	var e *graphql.Error
	if errors.As(err, &e) {
		if len(e.Message) > 0 {
			message = e.Message
		}
	} else {
		args = append(args, graphql.ErrKindExecution)
	}

	var withExtensions graphql.ErrorWithExtensions
	if errors.As(err, &withExtensions) {
		if extensions := withExtensions.Extensions(); extensions != nil {
			args = append(args, extensions)
		}
	}

	return graphql.NewError(message, args...).(*graphql.Error)
}

func (ctx *ExecutionContext) handleFieldError(
	err error,
	returnType graphql.Type,
	nodes []*ast.Field,
	path graphql.ResponsePath) *ResultNode {

	ctx.appendError(newFieldError(err, nodes, path))

	// If the field type is non-nullable, then it is resolved without any protection from errors;
	// Propagate the null to the parent.
	if graphql.IsNonNullType(returnType) {
		return nil
	}
	return NilResultNode()
}

// completeValue implements "Value Completion" [0]. It ensures the value resolved from the field
// resolver adheres to the expected return type. It returns nil when an error was raised and the
// null must be propagated to the closest nullable position.
//
// [0]: https://spec.graphql.org/June2018/#sec-Value-Completion
func (ctx *ExecutionContext) completeValue(
	c context.Context,
	returnType graphql.Type,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{}) *ResultNode {

	if nonNullType, ok := returnType.(graphql.NonNull); ok {
		result := ctx.completeValue(c, nonNullType.InnerType(), info, path, value)
		if result == nil {
			return nil
		}
		if result.IsNil() {
			ctx.appendError(newFieldError(
				graphql.NewError(fmt.Sprintf("Cannot return null for non-nullable field %s.%s.",
					info.Object().Name(), info.Field().Name()), graphql.ErrKindExecution),
				info.Nodes, path))
			return nil
		}
		return result
	}

	if isNullish(value) {
		return NilResultNode()
	}

	switch returnType := returnType.(type) {
	case graphql.List:
		return ctx.completeListValue(c, returnType, info, path, value)

	case graphql.LeafType:
		return ctx.completeLeafValue(returnType, info, path, value)

	case graphql.Object:
		return ctx.completeObjectValue(c, returnType, info, path, value)
	}

	ctx.appendError(newFieldError(
		graphql.NewError(fmt.Sprintf(`Cannot complete value of unexpected type "%v".`, returnType)),
		info.Nodes, path))
	return nil
}

func (ctx *ExecutionContext) completeListValue(
	c context.Context,
	returnType graphql.List,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{}) *ResultNode {

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		ctx.appendError(newFieldError(
			graphql.NewError(fmt.Sprintf(`Expected Iterable, but did not find one for field "%s.%s".`,
				info.Object().Name(), info.Field().Name()), graphql.ErrKindExecution),
			info.Nodes, path))
		return nil
	}

	elementType := returnType.ElementType()
	items := make([]*ResultNode, v.Len())
	for i := range items {
		item := ctx.completePosition(c, elementType, info, path.WithIndex(i), v.Index(i).Interface())
		if item == nil {
			// A non-null item became null; the list becomes null.
			return nil
		}
		items[i] = item
	}

	return &ResultNode{
		Kind:  ResultKindList,
		Value: items,
	}
}

func (ctx *ExecutionContext) completeLeafValue(
	returnType graphql.LeafType,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{}) *ResultNode {

	// Leaf values may be given by pointer (e.g., *string for a nullable String).
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return NilResultNode()
			}
			v = v.Elem()
		}
		value = v.Interface()
	}

	coercedValue, err := returnType.CoerceResultValue(value)
	if err != nil {
		ctx.appendError(newFieldError(err, info.Nodes, path))
		return nil
	}

	return &ResultNode{
		Kind:  ResultKindLeaf,
		Value: coercedValue,
	}
}

func (ctx *ExecutionContext) completeObjectValue(
	c context.Context,
	returnType graphql.Object,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{}) *ResultNode {

	// Collect sub-fields from the selection sets of all field nodes.
	selectionSets := make([]ast.SelectionSet, len(info.Nodes))
	for i, node := range info.Nodes {
		selectionSets[i] = node.SelectionSet
	}

	groups, err := ctx.collectFields(returnType, selectionSets...)
	if err != nil {
		ctx.appendError(newFieldError(err, info.Nodes, path))
		return nil
	}

	return ctx.executeFields(c, returnType, value, groups, path, false /* serial */)
}

// isNullish returns true if the value represents null in GraphQL: nil, a nil pointer, map, slice or
// interface, or NaN.
func isNullish(v interface{}) bool {
	switch value := v.(type) {
	case float32:
		return math.IsNaN(float64(value))

	case float64:
		return math.IsNaN(value)

	case nil:
		return true

	default:
		// Use reflect.Value.IsNil to check underlying value.
		v := reflect.ValueOf(value)
		switch v.Kind() {
		case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Interface, reflect.Slice:
			return v.IsNil()
		}
	}

	return false
}
