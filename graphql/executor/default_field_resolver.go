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
	"fmt"
	"reflect"
	"strings"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/internal/util"
)

// DefaultFieldResolverOption specifies an option to configure field resolver instance created by
// NewDefaultFieldResolver.
type DefaultFieldResolverOption func(*defaultFieldResolver)

// defaultFieldResolver is used when no resolver is given to a field. It resolves the field value to
// the value of field in source object value whose name matches, or if it's a function, returns the
// result of calling that function.
type defaultFieldResolver struct {
	unresolvedAsError   bool   // default: true
	scanAnonymousFields bool   // default: true
	scanMethods         bool   // default: true
	fieldTagName        string // default: "graphql"
}

// NewDefaultFieldResolver configures a field resolver which is useful as "default" resolver for
// fields without resolver. It is given to Prepare via PrepareParams.DefaultFieldResolver.
//
// When source value is a struct, the created resolver takes the value from the field with the
// matching tag or the matching name in CamelCase. When source value is a map with string keys, the
// value at the field name is taken.
func NewDefaultFieldResolver(opts ...DefaultFieldResolverOption) graphql.FieldResolver {
	resolver := &defaultFieldResolver{
		unresolvedAsError:   true,
		scanAnonymousFields: true,
		scanMethods:         true,
		fieldTagName:        "graphql",
	}

	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

// UnresolvedAsError specifies whether error should be returned for fields that cannot be
// successfully resolved by the resolver. If disabled, such fields resolve to null.
func UnresolvedAsError(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.unresolvedAsError = enabled
	}
}

// ScanAnonymousFields specifies whether embedded structs should be inspected further to find
// matching field.
func ScanAnonymousFields(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.scanAnonymousFields = enabled
	}
}

// ScanMethods specifies whether public methods exposed by the source value should also be taken
// into consideration. It matches method named with the field name in camel case. For example,
// "FullName()" will be used for field named "fullName".
func ScanMethods(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.scanMethods = enabled
	}
}

// FieldTagName specifies the struct field tag that is used to specify custom name in source object
// field for matching targeting field. For example,
//
//	type Movie struct {
//		ImdbCode string `graphql:"imdb_code"`
//	}
//
// The feature can be disabled by FieldTagName("").
func FieldTagName(name string) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.fieldTagName = name
	}
}

// Resolve implements graphql.FieldResolver.
func (resolver *defaultFieldResolver) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	value := reflect.ValueOf(source)
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, resolver.unresolvedError(info)
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return resolver.resolveFromStruct(ctx, source, value, info)
	case reflect.Map:
		return resolver.resolveFromMap(ctx, value, info)
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *defaultFieldResolver) unresolvedError(info graphql.ResolveInfo) error {
	if !resolver.unresolvedAsError {
		return nil
	}
	return graphql.NewError(fmt.Sprintf(`default resolver cannot resolve value for "%s.%s"`,
		info.Object().Name(), info.Field().Name()))
}

func (resolver *defaultFieldResolver) resolveFromFunc(
	ctx context.Context,
	source interface{},
	name string,
	f interface{},
	info graphql.ResolveInfo) (interface{}, error) {

	switch f := f.(type) {
	case func() string:
		return f(), nil

	case func(ctx context.Context) (interface{}, error):
		return f(ctx)

	case func(ctx context.Context, source interface{}) (interface{}, error):
		return f(ctx, source)

	case func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error):
		return f(ctx, source, info)
	}

	if !resolver.unresolvedAsError {
		return nil, nil
	}
	return nil, graphql.NewError(fmt.Sprintf(
		`default resolver found %s but is unable to call it for resolving "%s.%s": unexpected type %T`,
		name, info.Object().Name(), info.Field().Name(), f))
}

func (resolver *defaultFieldResolver) resolveFromValueOrFunc(
	ctx context.Context,
	source interface{},
	name string,
	value reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	if value.Kind() == reflect.Interface && !value.IsNil() {
		value = value.Elem()
	}
	if value.Kind() == reflect.Func {
		return resolver.resolveFromFunc(ctx, source, name, value.Interface(), info)
	}
	return value.Interface(), nil
}

func (resolver *defaultFieldResolver) resolveFromStruct(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	targetFieldName := info.Field().Name()
	camelTargetFieldName := util.CamelCase(targetFieldName)
	queue := []reflect.Value{sourceValue}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		currentType := current.Type()
		for i := 0; i < current.NumField(); i++ {
			field := currentType.Field(i)
			if len(field.PkgPath) > 0 && !field.Anonymous {
				// Unexported.
				continue
			}

			if resolver.scanAnonymousFields && field.Anonymous && field.Type.Kind() == reflect.Struct {
				queue = append(queue, current.Field(i))
				continue
			}

			if len(resolver.fieldTagName) > 0 {
				tagName := strings.Split(field.Tag.Get(resolver.fieldTagName), ",")[0]
				if tagName == targetFieldName {
					return resolver.resolveFromValueOrFunc(
						ctx, source, currentType.Name()+"."+field.Name, current.Field(i), info)
				}
			}
		}

		if fieldType, ok := currentType.FieldByName(camelTargetFieldName); ok && len(fieldType.PkgPath) == 0 {
			return resolver.resolveFromValueOrFunc(
				ctx, source, currentType.Name()+"."+camelTargetFieldName, current.FieldByIndex(fieldType.Index), info)
		}
	}

	if resolver.scanMethods {
		receiver := sourceValue
		if receiver.CanAddr() {
			receiver = receiver.Addr()
		}

		method := receiver.MethodByName(camelTargetFieldName)
		if method.IsValid() {
			return resolver.resolveFromFunc(
				ctx, source, sourceValue.Type().Name()+"."+camelTargetFieldName, method.Interface(), info)
		}
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *defaultFieldResolver) resolveFromMap(
	ctx context.Context,
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	if sourceValue.Type().Key().Kind() != reflect.String {
		return nil, resolver.unresolvedError(info)
	}

	fieldName := info.Field().Name()
	value := sourceValue.MapIndex(reflect.ValueOf(fieldName).Convert(sourceValue.Type().Key()))
	if !value.IsValid() {
		return nil, resolver.unresolvedError(info)
	}

	return resolver.resolveFromValueOrFunc(ctx, sourceValue.Interface(), "map["+fieldName+"]", value, info)
}
