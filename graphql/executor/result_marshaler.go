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
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

// resultNodeMarshaller writes the result tree in response order. It cannot use json.Marshal on
// Interface() which loses the order of object fields.
type resultNodeMarshaller struct{}

var _ jsoniter.ValEncoder = resultNodeMarshaller{}

func (resultNodeMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

func (resultNodeMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	writeResultNode((*ResultNode)(ptr), stream)
}

func writeResultNode(node *ResultNode, stream *jsoniter.Stream) {
	switch {
	case node.IsNil():
		stream.WriteNil()

	case node.IsList():
		stream.WriteArrayStart()
		for i, n := range node.ListValue() {
			if i > 0 {
				stream.WriteMore()
			}
			writeResultNode(n, stream)
		}
		stream.WriteArrayEnd()

	case node.IsObject():
		object := node.ObjectValue()
		stream.WriteObjectStart()
		for i, key := range object.Keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(key)
			writeResultNode(object.FieldValues[i], stream)
		}
		stream.WriteObjectEnd()

	default:
		stream.WriteVal(node.Value)
	}
}

// MarshalJSON serializes the result tree.
func (node *ResultNode) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(node)
}

type executionResultMarshaller struct{}

var _ jsoniter.ValEncoder = executionResultMarshaller{}

func (executionResultMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

// Encode writes "errors" first so clients see problems before data, then "data" when execution
// started.
func (executionResultMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	result := (*ExecutionResult)(ptr)

	stream.WriteObjectStart()
	more := false
	if result.Errors.HaveOccurred() {
		stream.WriteObjectField("errors")
		stream.WriteVal(result.Errors.Errors)
		more = true
	}

	if result.Data != nil {
		if more {
			stream.WriteMore()
		}
		stream.WriteObjectField("data")
		writeResultNode(result.Data, stream)
	}
	stream.WriteObjectEnd()
}

// MarshalJSON serializes the result into the response format.
func (result ExecutionResult) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(&result)
}

func init() {
	jsoniter.RegisterTypeEncoder("executor.ResultNode", resultNodeMarshaller{})
	jsoniter.RegisterTypeEncoder("executor.ExecutionResult", executionResultMarshaller{})
}
