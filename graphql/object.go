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

package graphql

import (
	"sync"
)

// ObjectConfig configures an Object type.
type ObjectConfig struct {
	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Fields in the object
	Fields Fields

	// FieldsThunk is called once on the first access to the fields when Fields is not given. Use it
	// to define objects that refer to each other.
	FieldsThunk func() Fields
}

// object is our built-in implementation for Object. It is configured with and built from
// ObjectConfig.
type object struct {
	config ObjectConfig

	fieldsOnce sync.Once
	fields     FieldMap
	fieldsErr  error
}

var _ Object = (*object)(nil)

// NewObject defines an Object type from a ObjectConfig.
func NewObject(config *ObjectConfig) (Object, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Object.")
	}
	if config.Fields == nil && config.FieldsThunk == nil {
		return nil, NewError(`Must provide fields for Object "` + config.Name + `".`)
	}

	o := &object{
		config: *config,
	}

	// Build fields eagerly unless the object defers them.
	if config.Fields != nil {
		if err := o.buildFields(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// MustNewObject is a convenience function equivalent to NewObject but panics on failure instead of
// returning an error.
func MustNewObject(config *ObjectConfig) Object {
	o, err := NewObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *object) buildFields() error {
	o.fieldsOnce.Do(func() {
		fields := o.config.Fields
		if fields == nil {
			fields = o.config.FieldsThunk()
		}
		o.fields, o.fieldsErr = buildFieldMap(o, fields)
	})
	return o.fieldsErr
}

func (*object) graphqlType()       {}
func (*object) graphqlObjectType() {}

// Name implements TypeWithName.
func (o *object) Name() string {
	return o.config.Name
}

// Description implements TypeWithDescription.
func (o *object) Description() string {
	return o.config.Description
}

// String implements fmt.Stringer.
func (o *object) String() string {
	return o.config.Name
}

// Fields implements Object. Fields from a failing FieldsThunk are reported by NewSchema.
func (o *object) Fields() FieldMap {
	o.buildFields()
	return o.fields
}

// fieldsError reports error from building fields.
func (o *object) fieldsError() error {
	return o.buildFields()
}
