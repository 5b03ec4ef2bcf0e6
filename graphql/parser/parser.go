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

// Package parser builds an AST from executable GraphQL documents.
package parser

import (
	"fmt"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/ast"
	"github.com/botobag/tweetql/graphql/lexer"
	"github.com/botobag/tweetql/graphql/token"
)

// Parse parses the given GraphQL source into a Document. Only executable definitions (operations
// and fragments) are accepted.
func Parse(source *token.Source) (ast.Document, error) {
	p, err := newParser(source)
	if err != nil {
		return ast.Document{}, err
	}
	return p.parseDocument()
}

// MustParse is like Parse but panics if the source cannot be parsed.
func MustParse(source *token.Source) ast.Document {
	document, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return document
}

// ParseValue parses the AST for string containing a GraphQL value (e.g., `[42]`).
func ParseValue(source *token.Source) (ast.Value, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}

	value, err := p.parseValue(false /* isConst */)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindEOF); err != nil {
		return nil, err
	}

	return value, nil
}

// MaxDepth bounds the nesting of selection sets, list and object values and list types in a
// document.
const MaxDepth = 256

type parser struct {
	source *token.Source
	lexer  *lexer.Lexer

	// The current token
	tok token.Token

	// Number of nested constructs currently open
	depth int
}

func newParser(source *token.Source) (*parser, error) {
	if source == nil {
		return nil, graphql.NewError("Must provide Source. Received: nil")
	}

	p := &parser{
		source: source,
		lexer:  lexer.New(source),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// loc returns the location info of the current token for building AST nodes.
func (p *parser) loc() ast.NodeBase {
	return ast.NodeBase{
		Loc: p.source.LocationInfoOf(p.tok.Location),
	}
}

func (p *parser) peek(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// If the next token is of the given kind, return true after advancing the lexer. Otherwise, do not
// change the parser state and return false.
func (p *parser) skip(kind token.Kind) (bool, error) {
	if p.tok.Kind != kind {
		return false, nil
	}
	return true, p.advance()
}

// If the next token is of the given kind, return that token after advancing the lexer. Otherwise,
// do not change the parser state and return an error.
func (p *parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, graphql.NewSyntaxError(p.source, tok.Location,
			fmt.Sprintf("Expected %v, found %s", kind, tok.Description()))
	}
	return tok, p.advance()
}

// If the next token is a keyword with the given value, advance the lexer. Otherwise, do not change
// the parser state and return an error.
func (p *parser) expectKeyword(keyword string) error {
	if p.tok.Kind == token.KindName && p.tok.Value == keyword {
		return p.advance()
	}
	return graphql.NewSyntaxError(p.source, p.tok.Location,
		fmt.Sprintf(`Expected "%s", found %s`, keyword, p.tok.Description()))
}

// enter opens one level of nesting at the current token. Callers must call leave when the nested
// construct is done.
func (p *parser) enter() error {
	if p.depth >= MaxDepth {
		return graphql.NewSyntaxError(p.source, p.tok.Location,
			fmt.Sprintf("Document exceeds the maximum nesting depth of %d", MaxDepth))
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// Helper function for creating an error when an unexpected lexed token is encountered.
func (p *parser) unexpected() error {
	return graphql.NewSyntaxError(p.source, p.tok.Location,
		fmt.Sprintf("Unexpected %s", p.tok.Description()))
}

// Converts a name lex token into a name parse node.
func (p *parser) parseName() (ast.Name, error) {
	base := p.loc()
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{
		NodeBase: base,
		Value:    tok.Value,
	}, nil
}

//	Document ::
//		ExecutableDefinition+
func (p *parser) parseDocument() (ast.Document, error) {
	var definitions []ast.Definition
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return ast.Document{}, err
		}
		definitions = append(definitions, definition)

		if p.peek(token.KindEOF) {
			break
		}
	}

	return ast.Document{
		Definitions: definitions,
	}, nil
}

//	ExecutableDefinition ::
//		OperationDefinition
//		FragmentDefinition
func (p *parser) parseDefinition() (ast.Definition, error) {
	switch p.tok.Kind {
	case token.KindName:
		switch p.tok.Value {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		}

	case token.KindLeftBrace:
		return p.parseQueryShorthand()
	}

	return nil, p.unexpected()
}

//	OperationDefinition ::
//		OperationType Name? VariableDefinitions? Directives? SelectionSet
func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	definition := &ast.OperationDefinition{
		NodeBase: p.loc(),
		Type:     ast.OperationType(p.tok.Value),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var err error
	if p.peek(token.KindName) {
		if definition.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if p.peek(token.KindLeftParen) {
		if definition.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
			return nil, err
		}
	}

	if definition.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if definition.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return definition, nil
}

// Parse a "Query Shorthand" which only specifies a SelectionSet (e.g., "{ field }").
func (p *parser) parseQueryShorthand() (*ast.OperationDefinition, error) {
	base := p.loc()
	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.OperationDefinition{
		NodeBase:     base,
		SelectionSet: selectionSet,
	}, nil
}

//	VariableDefinitions ::
//		( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if _, err := p.expect(token.KindLeftParen); err != nil {
		return nil, err
	}

	var definitions []*ast.VariableDefinition
	for {
		definition, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)

		if stop, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if stop {
			return definitions, nil
		}
	}
}

//	VariableDefinition ::
//		Variable : Type DefaultValue?
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	base := p.loc()

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var defaultValue ast.Value
	if hasDefault, err := p.skip(token.KindEquals); err != nil {
		return nil, err
	} else if hasDefault {
		if defaultValue, err = p.parseValue(true /* isConst */); err != nil {
			return nil, err
		}
	}

	return &ast.VariableDefinition{
		NodeBase:     base,
		Variable:     variable,
		Type:         t,
		DefaultValue: defaultValue,
	}, nil
}

//	Variable ::
//		$ Name
func (p *parser) parseVariable() (ast.Variable, error) {
	base := p.loc()
	if _, err := p.expect(token.KindDollar); err != nil {
		return ast.Variable{}, err
	}
	name, err := p.parseName()
	if err != nil {
		return ast.Variable{}, err
	}
	return ast.Variable{
		NodeBase: base,
		Name:     name,
	}, nil
}

//	SelectionSet ::
//		{ Selection+ }
func (p *parser) parseSelectionSet() (ast.SelectionSet, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var selectionSet ast.SelectionSet
	for {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selectionSet = append(selectionSet, selection)

		if stop, err := p.skip(token.KindRightBrace); err != nil {
			return nil, err
		} else if stop {
			return selectionSet, nil
		}
	}
}

//	Selection ::
//		Field
//		FragmentSpread
//		InlineFragment
func (p *parser) parseSelection() (ast.Selection, error) {
	if p.peek(token.KindSpread) {
		return p.parseFragment()
	}
	return p.parseField()
}

//	Field ::
//		Alias? Name Arguments? Directives? SelectionSet?
//
//	Alias ::
//		Name :
func (p *parser) parseField() (*ast.Field, error) {
	field := &ast.Field{
		NodeBase: p.loc(),
	}

	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if hasAlias, err := p.skip(token.KindColon); err != nil {
		return nil, err
	} else if hasAlias {
		field.Alias = nameOrAlias
		if field.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	} else {
		field.Name = nameOrAlias
	}

	if field.Arguments, err = p.parseArguments(false /* isConst */); err != nil {
		return nil, err
	}

	if field.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if p.peek(token.KindLeftBrace) {
		if field.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return field, nil
}

//	Arguments[Const] ::
//		( Argument[?Const]+ )
func (p *parser) parseArguments(isConst bool) (ast.Arguments, error) {
	if hasArgs, err := p.skip(token.KindLeftParen); err != nil || !hasArgs {
		return nil, err
	}

	var args ast.Arguments
	for {
		arg, err := p.parseArgument(isConst)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if stop, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if stop {
			return args, nil
		}
	}
}

//	Argument[Const] ::
//		Name : Value[?Const]
func (p *parser) parseArgument(isConst bool) (*ast.Argument, error) {
	base := p.loc()

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue(isConst)
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		NodeBase: base,
		Name:     name,
		Value:    value,
	}, nil
}

// Corresponds to both FragmentSpread and InlineFragment in the GraphQL grammar.
//
//	FragmentSpread ::
//		... FragmentName Directives?
//
//	InlineFragment ::
//		... TypeCondition? Directives? SelectionSet
func (p *parser) parseFragment() (ast.Selection, error) {
	base := p.loc()
	if _, err := p.expect(token.KindSpread); err != nil {
		return nil, err
	}

	if p.peek(token.KindName) && p.tok.Value != "on" {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(false /* isConst */)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{
			NodeBase:   base,
			Name:       name,
			Directives: directives,
		}, nil
	}

	fragment := &ast.InlineFragment{
		NodeBase: base,
	}

	var err error
	if p.peek(token.KindName) {
		// Must be "on".
		if err := p.advance(); err != nil {
			return nil, err
		}
		if fragment.TypeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}

	if fragment.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if fragment.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return fragment, nil
}

//	FragmentDefinition ::
//		fragment FragmentName TypeCondition Directives? SelectionSet
//
//	FragmentName ::
//		Name but not on
func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	definition := &ast.FragmentDefinition{
		NodeBase: p.loc(),
	}

	if err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}

	if p.tok.Kind == token.KindName && p.tok.Value == "on" {
		return nil, p.unexpected()
	}

	var err error
	if definition.Name, err = p.parseName(); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}

	if definition.TypeCondition, err = p.parseNamedType(); err != nil {
		return nil, err
	}

	if definition.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if definition.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return definition, nil
}

//	Value[Const] ::
//		[~Const] Variable
//		IntValue
//		FloatValue
//		StringValue
//		BooleanValue
//		NullValue
//		EnumValue
//		ListValue[?Const]
//		ObjectValue[?Const]
//
//	BooleanValue : one of `true` `false`
//
//	NullValue : `null`
//
//	EnumValue : Name but not `true`, `false` or `null`
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	tok := p.tok
	base := p.loc()

	switch tok.Kind {
	case token.KindLeftBracket:
		return p.parseListValue(isConst)

	case token.KindLeftBrace:
		return p.parseObjectValue(isConst)

	case token.KindInt:
		return ast.IntValue{NodeBase: base, Value: tok.Value}, p.advance()

	case token.KindFloat:
		return ast.FloatValue{NodeBase: base, Value: tok.Value}, p.advance()

	case token.KindString, token.KindBlockString:
		return ast.StringValue{
			NodeBase: base,
			Value:    tok.Value,
			Block:    tok.Kind == token.KindBlockString,
		}, p.advance()

	case token.KindName:
		var value ast.Value
		switch tok.Value {
		case "true", "false":
			value = ast.BooleanValue{NodeBase: base, Value: tok.Value == "true"}
		case "null":
			value = ast.NullValue{NodeBase: base}
		default:
			value = ast.EnumValue{NodeBase: base, Value: tok.Value}
		}
		return value, p.advance()

	case token.KindDollar:
		if !isConst {
			return p.parseVariable()
		}
	}

	return nil, p.unexpected()
}

//	ListValue[Const] ::
//		[ ]
//		[ Value[?Const]+ ]
func (p *parser) parseListValue(isConst bool) (ast.ListValue, error) {
	list := ast.ListValue{
		NodeBase: p.loc(),
	}

	if err := p.enter(); err != nil {
		return list, err
	}
	defer p.leave()

	if _, err := p.expect(token.KindLeftBracket); err != nil {
		return list, err
	}

	for {
		if stop, err := p.skip(token.KindRightBracket); err != nil {
			return list, err
		} else if stop {
			return list, nil
		}

		value, err := p.parseValue(isConst)
		if err != nil {
			return list, err
		}
		list.Values = append(list.Values, value)
	}
}

//	ObjectValue[Const] ::
//		{ }
//		{ ObjectField[?Const]+ }
//
//	ObjectField[Const] ::
//		Name : Value[?Const]
func (p *parser) parseObjectValue(isConst bool) (ast.ObjectValue, error) {
	object := ast.ObjectValue{
		NodeBase: p.loc(),
	}

	if err := p.enter(); err != nil {
		return object, err
	}
	defer p.leave()

	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return object, err
	}

	for {
		if stop, err := p.skip(token.KindRightBrace); err != nil {
			return object, err
		} else if stop {
			return object, nil
		}

		base := p.loc()
		name, err := p.parseName()
		if err != nil {
			return object, err
		}

		if _, err := p.expect(token.KindColon); err != nil {
			return object, err
		}

		value, err := p.parseValue(isConst)
		if err != nil {
			return object, err
		}

		object.Fields = append(object.Fields, &ast.ObjectField{
			NodeBase: base,
			Name:     name,
			Value:    value,
		})
	}
}

//	Directives[Const] ::
//		Directive[?Const]+
//
//	Directive[Const] ::
//		@ Name Arguments[?Const]?
func (p *parser) parseDirectives(isConst bool) (ast.Directives, error) {
	var directives ast.Directives
	for p.peek(token.KindAt) {
		base := p.loc()
		if err := p.advance(); err != nil {
			return nil, err
		}

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		args, err := p.parseArguments(isConst)
		if err != nil {
			return nil, err
		}

		directives = append(directives, &ast.Directive{
			NodeBase:  base,
			Name:      name,
			Arguments: args,
		})
	}
	return directives, nil
}

//	Type ::
//		NamedType
//		ListType
//		NonNullType
func (p *parser) parseType() (ast.Type, error) {
	base := p.loc()

	var t ast.Type
	if hasBracket, err := p.skip(token.KindLeftBracket); err != nil {
		return nil, err
	} else if hasBracket {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		itemType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KindRightBracket); err != nil {
			return nil, err
		}
		t = ast.ListType{
			NodeBase: base,
			ItemType: itemType,
		}
	} else if t, err = p.parseNamedType(); err != nil {
		return nil, err
	}

	if nonNull, err := p.skip(token.KindBang); err != nil {
		return nil, err
	} else if nonNull {
		return ast.NonNullType{
			NodeBase: base,
			Type:     t,
		}, nil
	}

	return t, nil
}

//	NamedType ::
//		Name
func (p *parser) parseNamedType() (ast.NamedType, error) {
	base := p.loc()
	name, err := p.parseName()
	if err != nil {
		return ast.NamedType{}, err
	}
	return ast.NamedType{
		NodeBase: base,
		Name:     name,
	}, nil
}
