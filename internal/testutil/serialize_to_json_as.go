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

package testutil

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

type serializeToJSONAsMatcher struct {
	expected string
	matcher  types.GomegaMatcher
	encoded  string
}

// SerializeToJSONAs returns a Gomega matcher that serializes actual value with json-iterator and
// compares the result against the expected JSON text. Object keys order and whitespace are
// ignored.
func SerializeToJSONAs(expected string) types.GomegaMatcher {
	return &serializeToJSONAsMatcher{
		expected: expected,
		matcher:  gomega.MatchJSON(expected),
	}
}

// Match implements types.GomegaMatcher.
func (matcher *serializeToJSONAsMatcher) Match(actual interface{}) (success bool, err error) {
	encoded, err := jsoniter.MarshalToString(actual)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs matcher cannot encode actual into JSON: %s", err)
	}
	matcher.encoded = encoded
	return matcher.matcher.Match(encoded)
}

// FailureMessage implements types.GomegaMatcher.
func (matcher *serializeToJSONAsMatcher) FailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected\n\t%s\nto serialize to JSON value as\n\t%s", matcher.encoded, matcher.expected)
}

// NegatedFailureMessage implements types.GomegaMatcher.
func (matcher *serializeToJSONAsMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected\n\t%s\nnot to serialize to JSON value as\n\t%s", matcher.encoded, matcher.expected)
}
