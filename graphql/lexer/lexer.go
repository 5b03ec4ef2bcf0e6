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

// Package lexer converts GraphQL source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/token"
)

// Lexer is a stateful stream generator in that every time it is advanced, it returns the next token
// in the Source. Assuming the source lexes, the final Token emitted by the lexer will be of kind
// EOF, after which the lexer will repeatedly return the same EOF token whenever called. Comments
// and insignificant commas are skipped.
type Lexer struct {
	source *token.Source
	body   token.SourceBody

	// Current offest into the source body
	bytePos uint

	// This caches the value of body.Size().
	bodySize uint

	// Token returned by Peek but not yet consumed by Next
	peeked    token.Token
	hasPeeked bool
}

// New initializes a Lexer for given Source object.
func New(source *token.Source) *Lexer {
	body := source.Body()
	return &Lexer{
		source:   source,
		body:     body,
		bodySize: body.Size(),
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Next advances the token stream and returns the next non-ignored token.
func (lexer *Lexer) Next() (token.Token, error) {
	if lexer.hasPeeked {
		lexer.hasPeeked = false
		return lexer.peeked, nil
	}
	return lexer.lexToken()
}

// Peek returns the next non-ignored token without consuming it.
func (lexer *Lexer) Peek() (token.Token, error) {
	if !lexer.hasPeeked {
		tok, err := lexer.lexToken()
		if err != nil {
			return tok, err
		}
		lexer.peeked, lexer.hasPeeked = tok, true
	}
	return lexer.peeked, nil
}

// location returns SourceLocation for the specified position in the source.
func (lexer *Lexer) location(bytePos uint) token.SourceLocation {
	return lexer.source.LocationFromPos(bytePos)
}

func (lexer *Lexer) syntaxError(bytePos uint, format string, a ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.location(bytePos), fmt.Sprintf(format, a...))
}

// peek returns the byte at bytePos without consuming it. It returns 0 at the end of body.
func (lexer *Lexer) peek() byte {
	if lexer.bytePos >= lexer.bodySize {
		return 0
	}
	return lexer.body[lexer.bytePos]
}

// consume reads a byte at current bytePos and then advances the bytePos.
func (lexer *Lexer) consume() byte {
	b := lexer.peek()
	if lexer.bytePos < lexer.bodySize {
		lexer.bytePos++
	}
	return b
}

// skipIgnored consumes whitespace, line terminators, commas, the unicode BOM and comments.
//
// Reference: https://spec.graphql.org/June2018/#sec-Source-Text.Ignored-Tokens
func (lexer *Lexer) skipIgnored() {
	body := lexer.body
	bodySize := lexer.bodySize
	bytePos := lexer.bytePos

	for bytePos < bodySize {
		switch body[bytePos] {
		case '\t', ' ', ',', '\n', '\r':
			bytePos++

		case '\xEF':
			// Unicode BOM.
			if bodySize-bytePos >= 3 && body[bytePos+1] == '\xBB' && body[bytePos+2] == '\xBF' {
				bytePos += 3
				continue
			}
			lexer.bytePos = bytePos
			return

		case '#':
			// Comment runs until a line terminator.
			for bytePos < bodySize {
				c := body[bytePos]
				if c == '\n' || c == '\r' {
					break
				}
				bytePos++
			}

		default:
			lexer.bytePos = bytePos
			return
		}
	}

	lexer.bytePos = bytePos
}

func (lexer *Lexer) charAtPosToStr(bytePos uint) string {
	if bytePos >= lexer.bodySize {
		return "<EOF>"
	}

	r, _ := lexer.body.RuneAt(bytePos)

	// Print as ASCII for printable range.
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}

	return fmt.Sprintf(`"\u%04X"`, r)
}

func (lexer *Lexer) unexpectedCharacterError(bytePos uint) error {
	char := lexer.body.At(bytePos)
	switch {
	case char < 0x0020 && char != '\t' && char != '\n' && char != '\r':
		return lexer.syntaxError(bytePos, "Cannot contain the invalid character %s.", lexer.charAtPosToStr(bytePos))
	case char == '\'':
		return lexer.syntaxError(bytePos, "Unexpected single quote character ('), did you mean to use a double quote (\")?")
	}
	return lexer.syntaxError(bytePos, "Cannot parse the unexpected character %s.", lexer.charAtPosToStr(bytePos))
}

func (lexer *Lexer) makeToken(kind token.Kind, startPos uint, value string) token.Token {
	return token.Token{
		Kind:     kind,
		Location: lexer.location(startPos),
		Length:   lexer.bytePos - startPos,
		Value:    value,
	}
}

// punctuators maps a single byte to its punctuator token kind.
var punctuators = [256]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'&': token.KindAmp,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'|': token.KindPipe,
	'}': token.KindRightBrace,
}

func isNameStart(char byte) bool {
	return char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

// lexToken gets the next token from the source. It skips over ignored tokens until it finds the
// next lexable token, then lexes punctuators immediately or calls the appropriate helper function
// for more complicated tokens.
func (lexer *Lexer) lexToken() (token.Token, error) {
	lexer.skipIgnored()

	startPos := lexer.bytePos
	if startPos >= lexer.bodySize {
		return token.Token{
			Kind:     token.KindEOF,
			Location: lexer.location(startPos),
		}, nil
	}

	char := lexer.peek()
	if kind := punctuators[char]; kind != 0 {
		lexer.consume()
		return lexer.makeToken(kind, startPos, ""), nil
	}

	switch {
	case char == '.':
		for i := 0; i < 3; i++ {
			if lexer.peek() != '.' {
				return token.Token{}, lexer.unexpectedCharacterError(startPos)
			}
			lexer.consume()
		}
		return lexer.makeToken(token.KindSpread, startPos, ""), nil

	case isNameStart(char):
		return lexer.lexName(), nil

	case char == '-' || isDigit(char):
		return lexer.lexNumber()

	case char == '"':
		if lexer.bodySize-startPos >= 3 && string(lexer.body[startPos:startPos+3]) == `"""` {
			lexer.bytePos += 3
			return lexer.lexBlockString(startPos)
		}
		lexer.consume()
		return lexer.lexString(startPos)
	}

	return token.Token{}, lexer.unexpectedCharacterError(startPos)
}

// lexName lexes a Name token from source.
//
//	Name ::
//		/[_A-Za-z][_0-9A-Za-z]*/
func (lexer *Lexer) lexName() token.Token {
	startPos := lexer.bytePos
	lexer.consume()
	for {
		char := lexer.peek()
		if !isNameStart(char) && !isDigit(char) {
			break
		}
		lexer.consume()
	}
	return lexer.makeToken(token.KindName, startPos, string(lexer.body[startPos:lexer.bytePos]))
}

// consumeDigits consumes at least one digit. Return error if the first character is not a digit.
func (lexer *Lexer) consumeDigits() error {
	if !isDigit(lexer.peek()) {
		return lexer.syntaxError(lexer.bytePos, "Invalid number, expected digit but got: %s.",
			lexer.charAtPosToStr(lexer.bytePos))
	}
	for isDigit(lexer.peek()) {
		lexer.consume()
	}
	return nil
}

// lexNumber reads a number token from the source file, either a float or an int depending on
// whether a decimal point or an exponent appears.
//
// Reference: https://spec.graphql.org/June2018/#sec-Int-Value
func (lexer *Lexer) lexNumber() (token.Token, error) {
	startPos := lexer.bytePos
	kind := token.KindInt

	if lexer.peek() == '-' {
		lexer.consume()
	}

	if lexer.peek() == '0' {
		lexer.consume()
		if isDigit(lexer.peek()) {
			return token.Token{}, lexer.syntaxError(lexer.bytePos,
				"Invalid number, unexpected digit after 0: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}
	} else if err := lexer.consumeDigits(); err != nil {
		return token.Token{}, err
	}

	if lexer.peek() == '.' {
		kind = token.KindFloat
		lexer.consume()
		if err := lexer.consumeDigits(); err != nil {
			return token.Token{}, err
		}
	}

	if char := lexer.peek(); char == 'E' || char == 'e' {
		kind = token.KindFloat
		lexer.consume()
		if char := lexer.peek(); char == '+' || char == '-' {
			lexer.consume()
		}
		if err := lexer.consumeDigits(); err != nil {
			return token.Token{}, err
		}
	}

	// Numbers must not be followed by a name start or a dot.
	if char := lexer.peek(); char == '.' || isNameStart(char) {
		return token.Token{}, lexer.syntaxError(lexer.bytePos,
			"Invalid number, expected digit but got: %s.", lexer.charAtPosToStr(lexer.bytePos))
	}

	return lexer.makeToken(kind, startPos, string(lexer.body[startPos:lexer.bytePos])), nil
}

// lexString reads a string token from the source file. The opening quote was consumed.
//
//	StringCharacter ::
//		SourceCharacter but not " or \ or LineTerminator
//		\u EscapedUnicode
//		\ EscapedCharacter
//
// Reference: https://spec.graphql.org/June2018/#sec-String-Value
func (lexer *Lexer) lexString(startPos uint) (token.Token, error) {
	var value strings.Builder

	for lexer.bytePos < lexer.bodySize {
		char := lexer.peek()

		if char == '\n' || char == '\r' {
			break
		}

		if char == '"' {
			lexer.consume()
			return lexer.makeToken(token.KindString, startPos, value.String()), nil
		}

		if char < 0x0020 && char != '\t' {
			return token.Token{}, lexer.syntaxError(lexer.bytePos,
				"Invalid character within String: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}

		lexer.consume()
		if char != '\\' {
			value.WriteByte(char)
			continue
		}

		escapePos := lexer.bytePos - 1
		switch char = lexer.consume(); char {
		case '"', '\\', '/':
			value.WriteByte(char)
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')

		case 'u':
			if lexer.bodySize-lexer.bytePos >= 4 {
				code := lexer.body[lexer.bytePos : lexer.bytePos+4]
				if r := uniCharCode(code[0], code[1], code[2], code[3]); r >= 0 {
					lexer.bytePos += 4
					value.WriteRune(r)
					break
				}
			}
			end := lexer.bytePos + 4
			if end > lexer.bodySize {
				end = lexer.bodySize
			}
			return token.Token{}, lexer.syntaxError(escapePos,
				"Invalid character escape sequence: \\u%s.", string(lexer.body[lexer.bytePos:end]))

		default:
			return token.Token{}, lexer.syntaxError(escapePos,
				"Invalid character escape sequence: \\%c.", char)
		}
	}

	return token.Token{}, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}

// Converts four hexadecimal chars to the integer that the string represents. Returns a negative
// number if any char was invalid.
func uniCharCode(a byte, b byte, c byte, d byte) rune {
	return (char2hex(a) << 12) | (char2hex(b) << 8) | (char2hex(c) << 4) | char2hex(d)
}

func char2hex(a byte) rune {
	switch {
	case a >= '0' && a <= '9':
		return rune(a - '0')
	case a >= 'A' && a <= 'F':
		return rune(a - 'A' + 10)
	case a >= 'a' && a <= 'f':
		return rune(a - 'a' + 10)
	}
	return -1
}

// lexBlockString reads a block string token from the source file. The opening triple-quote was
// consumed.
func (lexer *Lexer) lexBlockString(startPos uint) (token.Token, error) {
	var raw strings.Builder

	for lexer.bytePos < lexer.bodySize {
		rest := lexer.body[lexer.bytePos:]

		switch {
		case len(rest) >= 3 && string(rest[:3]) == `"""`:
			lexer.bytePos += 3
			return lexer.makeToken(token.KindBlockString, startPos, BlockStringValue(raw.String())), nil

		case len(rest) >= 4 && string(rest[:4]) == `\"""`:
			lexer.bytePos += 4
			raw.WriteString(`"""`)

		default:
			char := rest[0]
			if char < 0x0020 && char != '\t' && char != '\r' && char != '\n' {
				return token.Token{}, lexer.syntaxError(lexer.bytePos,
					"Invalid character within String: %s.", lexer.charAtPosToStr(lexer.bytePos))
			}
			lexer.consume()
			raw.WriteByte(char)
		}
	}

	return token.Token{}, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}
