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

// ResultKind specifies which kind of value is held in the ResultNode. More specifically, it
// describes the type of ResultNode.Value.
type ResultKind uint8

// Enumeration of ResultKind
const (
	// ResultNode was resolved to a nil value (either because the field resolve to a nil value or
	// because an error occurred.) The Value contains an nil interface.
	ResultKindNil ResultKind = iota

	// ResultNode was resolved to a List value. The value contains an []*ResultNode.
	ResultKindList

	// ResultNode was resolved to an Object value. The value contains an *ObjectResultValue.
	ResultKindObject

	// ResultNode was resolved to a Scalar value. The value contains value that has went through
	// type's result coercion.
	ResultKindLeaf
)

// A ResultNode holds a field value. Result data from an execution of a GraphQL Operation [0] is
// made up of ResultNode's formed in a tree structure. ResultNode can be serialized to the response
// format [1].
//
// [0]: https://spec.graphql.org/June2018/#sec-Executing-Operations
// [1]: https://spec.graphql.org/June2018/#sec-Data
type ResultNode struct {
	// Kind describes kind of Value
	Kind ResultKind

	// The result value; This could be in a various format based on Kind.
	Value interface{}
}

// ObjectResultValue stores result from executing an Object field. Keys and FieldValues are in the
// order of the response.
type ObjectResultValue struct {
	// Response keys (alias or field name) of fields
	Keys []string

	// FieldValues[i] stores result for the field keyed with Keys[i].
	FieldValues []*ResultNode
}

// Len returns number of fields in the object.
func (value *ObjectResultValue) Len() int {
	return len(value.Keys)
}

// Lookup returns the value for the given response key.
func (value *ObjectResultValue) Lookup(key string) (*ResultNode, bool) {
	for i, k := range value.Keys {
		if k == key {
			return value.FieldValues[i], true
		}
	}
	return nil, false
}

func (value *ObjectResultValue) append(key string, node *ResultNode) {
	value.Keys = append(value.Keys, key)
	value.FieldValues = append(value.FieldValues, node)
}

var nilResultNode = &ResultNode{Kind: ResultKindNil}

// NilResultNode returns a ResultNode that represents null.
func NilResultNode() *ResultNode {
	return nilResultNode
}

// IsNil returns true if the node holds nil value (either because the field resolve to a nil value
// or because an error occurred.)
func (node *ResultNode) IsNil() bool {
	return node == nil || node.Kind == ResultKindNil
}

// IsList returns true if the node holds result for a List field.
func (node *ResultNode) IsList() bool {
	return node != nil && node.Kind == ResultKindList
}

// IsObject returns true if the node holds result for an Object field.
func (node *ResultNode) IsObject() bool {
	return node != nil && node.Kind == ResultKindObject
}

// IsLeaf returns true if the node holds result for a Scalar field.
func (node *ResultNode) IsLeaf() bool {
	return node != nil && node.Kind == ResultKindLeaf
}

// ListValue returns value for node with ResultKindList.
func (node *ResultNode) ListValue() []*ResultNode {
	return node.Value.([]*ResultNode)
}

// ObjectValue returns value for node with ResultKindObject.
func (node *ResultNode) ObjectValue() *ObjectResultValue {
	return node.Value.(*ObjectResultValue)
}

// Interface converts the result tree into plain Go values: objects become map[string]interface{}
// and lists become []interface{}. Field order is lost in the conversion.
func (node *ResultNode) Interface() interface{} {
	switch {
	case node.IsNil():
		return nil

	case node.IsList():
		nodes := node.ListValue()
		values := make([]interface{}, len(nodes))
		for i, n := range nodes {
			values[i] = n.Interface()
		}
		return values

	case node.IsObject():
		object := node.ObjectValue()
		values := make(map[string]interface{}, object.Len())
		for i, key := range object.Keys {
			values[key] = object.FieldValues[i].Interface()
		}
		return values
	}

	return node.Value
}
