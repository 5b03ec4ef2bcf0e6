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

package token

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// SourceBody contains contents of a GraphQL document in a byte sequence.
type SourceBody []byte

// RuneAt decodes a rune at given pos. It also returns the number of bytes occupied by the
// rune.
func (body SourceBody) RuneAt(pos uint) (rune, uint) {
	if uint(len(body)) <= pos {
		// Return -1 to indicate an <EOF>.
		return -1, 0
	}

	// Fast path: characters below Runeself are represented as themselves in a single byte.
	c := body[pos]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}

	r, n := utf8.DecodeRune(body[pos:])
	return r, uint(n)
}

// At returns the byte in the source at given position. Return 0 if the given position is out of
// body's range.
func (body SourceBody) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the body size in bytes.
func (body SourceBody) Size() uint {
	return uint(len(body))
}

// SourceLocation encodes a position in source file. Its value is an 1-indexed offset relative to the
// beginning of source measured in bytes. Given a SourceLocation value loc and the Source s, you can
// convert it into larger representation SourceLocationInfo by calling s.LocationInfoOf(loc).
type SourceLocation uint

// NoSourceLocation is a special SourceLocation that doesn't exists in any source.
const NoSourceLocation SourceLocation = 0

// IsValid return true if the SourceLocation is valid.
func (location SourceLocation) IsValid() bool {
	return location != NoSourceLocation
}

// SourceLocationInfo describes a source location with source name, line and column number.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// IsValid returns true if the info points to a line in the source.
func (info SourceLocationInfo) IsValid() bool {
	return info.Line > 0
}

// SourceConfig specifies configuration of a Source.
type SourceConfig struct {
	Body SourceBody

	// Name is optional and defaults to "GraphQL request". It is useful for clients that load
	// documents from files.
	Name string
}

// Source represent a GraphQL source text.
type Source struct {
	config SourceConfig

	// Byte offsets where each line begins; built on the first call to LocationInfoOf.
	lineStartsOnce sync.Once
	lineStarts     []uint
}

// NewSource initializes a Source instance from given config.
func NewSource(config *SourceConfig) *Source {
	source := &Source{
		config: *config,
	}
	if len(config.Name) == 0 {
		source.config.Name = "GraphQL request"
	}
	return source
}

// NewSourceFromString is a shortcut to create a Source from a query string.
func NewSourceFromString(body string) *Source {
	return NewSource(&SourceConfig{
		Body: SourceBody(body),
	})
}

// Body returns source.config.Body.
func (source *Source) Body() SourceBody {
	return source.config.Body
}

// Name returns source.config.Name.
func (source *Source) Name() string {
	return source.config.Name
}

// LocationFromPos returns a SourceLocation that represent the location for given position in the
// body.
func (source *Source) LocationFromPos(bytePos uint) SourceLocation {
	if bytePos > source.Body().Size() {
		panic("illegal byte position value")
	}
	return SourceLocation(bytePos + 1)
}

// buildLineStarts records the offset of the first byte of every line. "\r\n", "\r" and "\n" are
// all line terminators.
func (source *Source) buildLineStarts() {
	body := source.Body()
	bodySize := body.Size()
	lineStarts := []uint{0}
	for i := uint(0); i < bodySize; i++ {
		switch body[i] {
		case '\r':
			if i+1 < bodySize && body[i+1] == '\n' {
				i++
			}
			lineStarts = append(lineStarts, i+1)
		case '\n':
			lineStarts = append(lineStarts, i+1)
		}
	}
	source.lineStarts = lineStarts
}

// LocationInfoOf computes and returns a SourceLocationInfo for a given SourceLocation.
func (source *Source) LocationInfoOf(loc SourceLocation) SourceLocationInfo {
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.Name(),
		}
	}

	source.lineStartsOnce.Do(source.buildLineStarts)

	position := uint(loc) - 1
	if bodySize := source.Body().Size(); position > bodySize {
		position = bodySize
	}

	lineStarts := source.lineStarts
	// Find the last line that starts at or before position.
	line := sort.Search(len(lineStarts), func(i int) bool {
		return lineStarts[i] > position
	}) - 1

	return SourceLocationInfo{
		Name:   source.Name(),
		Line:   uint(line) + 1,
		Column: position - lineStarts[line] + 1,
	}
}
