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
	"sort"
	"strings"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/ast"
	"github.com/botobag/tweetql/internal/util"
)

// validationContext checks an operation and the fragments it references against the schema. Only
// structural rules are checked: names must exist, required arguments must be given, literals must
// be coercible, leaf and composite fields must be selected properly, fragments must not form cycles
// and variables must be defined and used at compatible positions.
type validationContext struct {
	schema      graphql.Schema
	operation   *ast.OperationDefinition
	fragmentMap map[string]*ast.FragmentDefinition

	variableDefs  map[string]*ast.VariableDefinition
	usedVariables map[string]bool

	// Fragments that have been visited by validateFragment
	visitedFragments map[string]bool

	errs graphql.Errors
}

func validateOperation(
	schema graphql.Schema,
	operation *ast.OperationDefinition,
	rootType graphql.Object,
	fragmentMap map[string]*ast.FragmentDefinition) graphql.Errors {

	v := &validationContext{
		schema:           schema,
		operation:        operation,
		fragmentMap:      fragmentMap,
		variableDefs:     map[string]*ast.VariableDefinition{},
		usedVariables:    map[string]bool{},
		visitedFragments: map[string]bool{},
	}

	v.validateVariableDefinitions()
	v.validateDefinitionDirectives(operation.Directives, strings.ToUpper(string(operation.OperationType())))
	v.validateSelectionSet(rootType, operation.SelectionSet)
	v.validateFragmentCycles()
	v.validateUnusedVariables()

	return v.errs
}

func (v *validationContext) report(message string, nodes ...ast.Node) {
	v.errs.Emplace(message, graphql.ErrorLocationsOfASTNodes(nodes...), graphql.ErrKindValidation)
}

func (v *validationContext) validateVariableDefinitions() {
	for _, definition := range v.operation.VariableDefinitions {
		name := definition.Variable.Name.Value
		if _, exists := v.variableDefs[name]; exists {
			v.report(fmt.Sprintf(`There can be only one variable named "$%s".`, name), definition.Variable)
			continue
		}
		v.variableDefs[name] = definition

		varType := typeFromAST(v.schema, definition.Type)
		if varType == nil {
			v.report(fmt.Sprintf(`Unknown type "%s".`, namedTypeOfAST(definition.Type)), definition.Type)
			continue
		}

		if !graphql.IsInputType(varType) {
			v.report(fmt.Sprintf(`Variable "$%s" cannot be non-input type "%s".`, name, definition.Type),
				definition.Type)
			continue
		}

		if definition.DefaultValue != nil {
			v.validateLiteral(varType, definition.DefaultValue)
		}
	}
}

func (v *validationContext) validateUnusedVariables() {
	for _, definition := range v.operation.VariableDefinitions {
		name := definition.Variable.Name.Value
		if v.usedVariables[name] {
			continue
		}
		if v.operation.Name.IsEmpty() {
			v.report(fmt.Sprintf(`Variable "$%s" is never used.`, name), definition)
		} else {
			v.report(fmt.Sprintf(`Variable "$%s" is never used in operation "%s".`,
				name, v.operation.Name.Value), definition)
		}
	}
}

// validateDefinitionDirectives reports directives on operation and fragment definitions. @skip and
// @include are only allowed on selections.
func (v *validationContext) validateDefinitionDirectives(directives ast.Directives, location string) {
	for _, directive := range directives {
		name := directive.Name.Value
		if name != "skip" && name != "include" {
			v.report(fmt.Sprintf(`Unknown directive "@%s".`, name), directive)
			continue
		}
		v.report(fmt.Sprintf(`Directive "@%s" may not be used on %s.`, name, location), directive)
	}
}

func (v *validationContext) validateSelectionDirectives(directives ast.Directives) {
	seen := map[string]bool{}
	for _, directive := range directives {
		name := directive.Name.Value
		if name != "skip" && name != "include" {
			v.report(fmt.Sprintf(`Unknown directive "@%s".`, name), directive)
			continue
		}

		if seen[name] {
			v.report(fmt.Sprintf(`The directive "@%s" can only be used once at this location.`, name), directive)
			continue
		}
		seen[name] = true

		hasCondition := false
		for _, arg := range directive.Arguments {
			if arg.Name.Value != "if" {
				v.report(fmt.Sprintf(`Unknown argument "%s" on directive "@%s".`, arg.Name.Value, name), arg)
				continue
			}
			hasCondition = true
			v.validateValue(nonNullBooleanType, arg.Value, false)
		}

		if !hasCondition {
			v.report(fmt.Sprintf(`Directive "@%s" argument "if" of type "Boolean!" is required, but it was not provided.`,
				name), directive)
		}
	}
}

func (v *validationContext) validateSelectionSet(parentType graphql.Object, selectionSet ast.SelectionSet) {
	for _, selection := range selectionSet {
		v.validateSelectionDirectives(selection.GetDirectives())

		switch selection := selection.(type) {
		case *ast.Field:
			v.validateField(parentType, selection)

		case *ast.InlineFragment:
			fragmentType := parentType
			if selection.HasTypeCondition() {
				t, ok := v.lookupCompositeType(selection.TypeCondition, "")
				if !ok {
					continue
				}
				if t.Name() != parentType.Name() {
					v.report(fmt.Sprintf(
						`Fragment cannot be spread here as objects of type "%s" can never be of type "%s".`,
						parentType.Name(), t.Name()), selection)
				}
				fragmentType = t
			}
			v.validateSelectionSet(fragmentType, selection.SelectionSet)

		case *ast.FragmentSpread:
			name := selection.Name.Value
			fragment := v.fragmentMap[name]
			if fragment == nil {
				v.report(fmt.Sprintf(`Unknown fragment "%s".`, name), selection.Name)
				continue
			}

			if t, ok := v.schema.TypeMap().Lookup(fragment.TypeCondition.Name.Value).(graphql.Object); ok &&
				t.Name() != parentType.Name() {
				v.report(fmt.Sprintf(
					`Fragment "%s" cannot be spread here as objects of type "%s" can never be of type "%s".`,
					name, parentType.Name(), t.Name()), selection)
			}

			v.validateFragment(fragment)
		}
	}
}

// lookupCompositeType finds the object type named in a type condition. fragmentName is empty for an
// inline fragment.
func (v *validationContext) lookupCompositeType(typeCondition ast.NamedType, fragmentName string) (graphql.Object, bool) {
	name := typeCondition.Name.Value
	t := v.schema.TypeMap().Lookup(name)
	if t == nil {
		v.report(fmt.Sprintf(`Unknown type "%s".`, name), typeCondition)
		return nil, false
	}

	object, ok := t.(graphql.Object)
	if !ok {
		if len(fragmentName) > 0 {
			v.report(fmt.Sprintf(`Fragment "%s" cannot condition on non composite type "%s".`, fragmentName, name),
				typeCondition)
		} else {
			v.report(fmt.Sprintf(`Fragment cannot condition on non composite type "%s".`, name), typeCondition)
		}
		return nil, false
	}

	return object, true
}

func (v *validationContext) validateFragment(fragment *ast.FragmentDefinition) {
	name := fragment.Name.Value
	if v.visitedFragments[name] {
		return
	}
	v.visitedFragments[name] = true

	v.validateDefinitionDirectives(fragment.Directives, "FRAGMENT_DEFINITION")

	t, ok := v.lookupCompositeType(fragment.TypeCondition, name)
	if !ok {
		return
	}
	v.validateSelectionSet(t, fragment.SelectionSet)
}

func (v *validationContext) validateField(parentType graphql.Object, node *ast.Field) {
	name := node.Name.Value

	field := findFieldDef(parentType, name)
	if field == nil {
		message := fmt.Sprintf(`Cannot query field "%s" on type "%s".`, name, parentType.Name())
		if suggestions := util.SuggestionList(name, parentType.Fields().SortedNames()); len(suggestions) > 0 {
			message += fmt.Sprintf(" Did you mean %s?", util.OrList(suggestions, 5, true))
		}
		v.report(message, node)
		return
	}

	v.validateArguments(parentType, field, node)

	fieldType := field.Type()
	switch namedType := graphql.NamedTypeOf(fieldType).(type) {
	case graphql.LeafType:
		if len(node.SelectionSet) > 0 {
			v.report(fmt.Sprintf(`Field "%s" must not have a selection since type "%s" has no subfields.`,
				name, fieldType), node)
		}

	case graphql.Object:
		if len(node.SelectionSet) == 0 {
			v.report(fmt.Sprintf(`Field "%s" of type "%s" must have a selection of subfields. Did you mean "%s { ... }"?`,
				name, fieldType, name), node)
			return
		}
		v.validateSelectionSet(namedType, node.SelectionSet)
	}
}

func (v *validationContext) validateArguments(parentType graphql.Object, field graphql.Field, node *ast.Field) {
	argDefs := field.Args()

	findArgDef := func(name string) *graphql.Argument {
		for i := range argDefs {
			if argDefs[i].Name() == name {
				return &argDefs[i]
			}
		}
		return nil
	}

	seen := map[string]bool{}
	for _, arg := range node.Arguments {
		name := arg.Name.Value
		if seen[name] {
			v.report(fmt.Sprintf(`There can be only one argument named "%s".`, name), arg.Name)
			continue
		}
		seen[name] = true

		argDef := findArgDef(name)
		if argDef == nil {
			argNames := make([]string, len(argDefs))
			for i := range argDefs {
				argNames[i] = argDefs[i].Name()
			}

			message := fmt.Sprintf(`Unknown argument "%s" on field "%s.%s".`, name, parentType.Name(), field.Name())
			if suggestions := util.SuggestionList(name, argNames); len(suggestions) > 0 {
				message += fmt.Sprintf(" Did you mean %s?", util.OrList(suggestions, 5, true))
			}
			v.report(message, arg)
			continue
		}

		v.validateValue(argDef.Type(), arg.Value, argDef.HasDefaultValue())
	}

	for i := range argDefs {
		argDef := &argDefs[i]
		if !seen[argDef.Name()] && graphql.IsRequiredArgument(argDef) {
			v.report(fmt.Sprintf(`Field "%s" argument "%s" of type "%s" is required, but it was not provided.`,
				field.Name(), argDef.Name(), argDef.Type()), node)
		}
	}
}

// validateValue checks a value given to an argument of the given type. Variables are checked for
// usage at compatible positions; literals are checked by coercing them.
func (v *validationContext) validateValue(t graphql.Type, value ast.Value, hasLocationDefault bool) {
	switch value := value.(type) {
	case ast.Variable:
		v.validateVariableUsage(value, t, hasLocationDefault)
		return

	case ast.ListValue:
		if listType, ok := graphql.NullableTypeOf(t).(graphql.List); ok {
			for _, item := range value.Values {
				v.validateValue(listType.ElementType(), item, false)
			}
			return
		}
	}

	v.validateLiteral(t, value)
}

func (v *validationContext) validateLiteral(t graphql.Type, value ast.Value) {
	if _, err := valueFromAST(value, t, graphql.NoVariableValues()); err != nil && err != errUndefinedVariable {
		if _, isNull := value.(ast.NullValue); isNull {
			v.report(fmt.Sprintf(`Expected value of type "%s", found null.`, t), value)
			return
		}

		message := fmt.Sprintf(`Expected value of type "%s", found %s.`, t, printValue(value))
		if e, ok := err.(*graphql.Error); ok && e.Kind == graphql.ErrKindCoercion {
			message = fmt.Sprintf(`Expected value of type "%s", found %s; %s`, t, printValue(value), e.Message)
		}
		v.report(message, value)
	}
}

func (v *validationContext) validateVariableUsage(variable ast.Variable, locationType graphql.Type, hasLocationDefault bool) {
	name := variable.Name.Value
	v.usedVariables[name] = true

	definition := v.variableDefs[name]
	if definition == nil {
		if v.operation.Name.IsEmpty() {
			v.report(fmt.Sprintf(`Variable "$%s" is not defined.`, name), variable, v.operation)
		} else {
			v.report(fmt.Sprintf(`Variable "$%s" is not defined by operation "%s".`, name, v.operation.Name.Value),
				variable, v.operation)
		}
		return
	}

	varType := typeFromAST(v.schema, definition.Type)
	if varType == nil || !graphql.IsInputType(varType) {
		// Reported in validateVariableDefinitions.
		return
	}

	if !isVariableUsageAllowed(definition, varType, locationType, hasLocationDefault) {
		v.report(fmt.Sprintf(`Variable "$%s" of type "%s" used in position expecting type "%s".`,
			name, varType, locationType), definition, variable)
	}
}

// isVariableUsageAllowed returns true if the variable is allowed in the location it was found,
// which includes considering if default values exist for either the variable or the location at
// which it is located.
func isVariableUsageAllowed(
	definition *ast.VariableDefinition,
	varType graphql.Type,
	locationType graphql.Type,
	hasLocationDefault bool) bool {

	if nonNullLocationType, ok := locationType.(graphql.NonNull); ok && !graphql.IsNonNullType(varType) {
		_, isNullDefault := definition.DefaultValue.(ast.NullValue)
		hasNonNullVariableDefault := definition.DefaultValue != nil && !isNullDefault
		if !hasNonNullVariableDefault && !hasLocationDefault {
			return false
		}
		return isTypeSubTypeOf(varType, nonNullLocationType.InnerType())
	}
	return isTypeSubTypeOf(varType, locationType)
}

// isTypeSubTypeOf returns true if a value of maybeSubType can be used where superType is expected.
func isTypeSubTypeOf(maybeSubType graphql.Type, superType graphql.Type) bool {
	if superNonNull, ok := superType.(graphql.NonNull); ok {
		if subNonNull, ok := maybeSubType.(graphql.NonNull); ok {
			return isTypeSubTypeOf(subNonNull.InnerType(), superNonNull.InnerType())
		}
		return false
	}

	if subNonNull, ok := maybeSubType.(graphql.NonNull); ok {
		// If superType is nullable, maybeSubType may be non-null or nullable.
		return isTypeSubTypeOf(subNonNull.InnerType(), superType)
	}

	if superList, ok := superType.(graphql.List); ok {
		if subList, ok := maybeSubType.(graphql.List); ok {
			return isTypeSubTypeOf(subList.ElementType(), superList.ElementType())
		}
		return false
	}

	if _, ok := maybeSubType.(graphql.List); ok {
		return false
	}

	subNamed, ok1 := maybeSubType.(graphql.TypeWithName)
	superNamed, ok2 := superType.(graphql.TypeWithName)
	return ok1 && ok2 && subNamed.Name() == superNamed.Name()
}

// validateFragmentCycles reports fragment spreads that form a cycle among the visited fragments.
func (v *validationContext) validateFragmentCycles() {
	// Names of fragments whose spreads have been fully explored
	explored := map[string]bool{}
	// Fragment spreads on the current path, indexed by fragment name
	spreadPathIndex := map[string]int{}
	var spreadPath []*ast.FragmentSpread

	var detect func(fragment *ast.FragmentDefinition)
	detect = func(fragment *ast.FragmentDefinition) {
		name := fragment.Name.Value
		if explored[name] {
			return
		}
		explored[name] = true

		spreadPathIndex[name] = len(spreadPath)
		for _, spread := range fragmentSpreadsOf(fragment.SelectionSet) {
			spreadName := spread.Name.Value
			cycleIndex, inPath := spreadPathIndex[spreadName]

			spreadPath = append(spreadPath, spread)
			if !inPath {
				if spreadFragment := v.fragmentMap[spreadName]; spreadFragment != nil {
					detect(spreadFragment)
				}
			} else {
				cyclePath := spreadPath[cycleIndex:]
				nodes := make([]ast.Node, len(cyclePath))
				via := make([]string, 0, len(cyclePath)-1)
				for i, s := range cyclePath {
					nodes[i] = s
					if i < len(cyclePath)-1 {
						via = append(via, `"`+s.Name.Value+`"`)
					}
				}

				message := fmt.Sprintf(`Cannot spread fragment "%s" within itself`, spreadName)
				if len(via) > 0 {
					message += " via " + strings.Join(via, ", ")
				}
				v.report(message+".", nodes...)
			}
			spreadPath = spreadPath[:len(spreadPath)-1]
		}
		delete(spreadPathIndex, name)
	}

	for _, definition := range v.sortedVisitedFragments() {
		detect(definition)
	}
}

// sortedVisitedFragments returns visited fragments in the order of fragmentMap's source positions.
func (v *validationContext) sortedVisitedFragments() []*ast.FragmentDefinition {
	fragments := make([]*ast.FragmentDefinition, 0, len(v.visitedFragments))
	for name := range v.visitedFragments {
		if fragment := v.fragmentMap[name]; fragment != nil {
			fragments = append(fragments, fragment)
		}
	}
	sortFragmentsBySource(fragments)
	return fragments
}

// fragmentSpreadsOf returns all fragment spreads in the selection set, including the ones nested in
// fields and inline fragments.
func fragmentSpreadsOf(selectionSet ast.SelectionSet) []*ast.FragmentSpread {
	var spreads []*ast.FragmentSpread
	for _, selection := range selectionSet {
		switch selection := selection.(type) {
		case *ast.Field:
			spreads = append(spreads, fragmentSpreadsOf(selection.SelectionSet)...)
		case *ast.InlineFragment:
			spreads = append(spreads, fragmentSpreadsOf(selection.SelectionSet)...)
		case *ast.FragmentSpread:
			spreads = append(spreads, selection)
		}
	}
	return spreads
}

// namedTypeOfAST returns the name of the named type within a type reference.
func namedTypeOfAST(t ast.Type) string {
	for {
		switch tt := t.(type) {
		case ast.NamedType:
			return tt.Name.Value
		case ast.ListType:
			t = tt.ItemType
		case ast.NonNullType:
			t = tt.Type
		default:
			return ""
		}
	}
}

func sortFragmentsBySource(fragments []*ast.FragmentDefinition) {
	sort.Slice(fragments, func(i, j int) bool {
		a, b := fragments[i].Location(), fragments[j].Location()
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
