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
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/botobag/tweetql/graphql/ast"
)

// The "type of internal value" for each built-in scalar are listed as follows,
//
// +--------------+---------------------------------+
// | GraphQL Type | Go Type ("internal value type") |
// +--------------+---------------------------------+
// | Int          | int                             |
// | Float        | float64                         |
// | String       | string                          |
// | Boolean      | bool                            |
// | ID           | string                          |
// +--------------+---------------------------------+
//
// That is, the type of underlying value behind the interface{} returned by CoerceArgumentValue and
// CoerceVariableValue are fixed to the one given in the table for each type. Therefore, for
// example, when you receive an Int argument, you can expect you got an "int" not int32 or others.

// Reasons for the error when coercing built-in scalar types
const (
	coercionErrorNonInteger      = "not an integer"
	coercionErrorIntegerTooLarge = "value too large for 32-bit signed integer"
	coercionErrorIntegerTooSmall = "value too small for 32-bit signed integer"
	coercionErrorNonNumeric      = "not a numeric value"
	coercionErrorNonBoolean      = "not a boolean value"
	coercionErrorNonString       = "not a string value"
	coercionErrorUnexpectedType  = "unexpected type"
)

// NewCoercionError creates an Error with ErrKindCoercion for value coercion failures.
func NewCoercionError(format string, a ...interface{}) error {
	return NewError(fmt.Sprintf(format, a...), ErrKindCoercion)
}

func raiseCoercionError(typeName string, value interface{}, reason string) error {
	if v, ok := value.(string); ok {
		// Quote the string for pretty printing.
		value = strconv.Quote(v)
	}
	return NewCoercionError("%s cannot represent %v: %s", typeName, value, reason)
}

func raiseArgumentTypeError(typeName string, value ast.Value) error {
	return NewCoercionError("%s cannot represent %v: unexpected argument node type `%T`",
		typeName, value.Interface(), value)
}

// numericValue classifies value into signed integer, unsigned integer or float.
type numericKind int

const (
	notNumeric numericKind = iota
	signedNumeric
	unsignedNumeric
	floatNumeric
)

func numericValueOf(value interface{}) (kind numericKind, i int64, u uint64, f float64) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumeric, v.Int(), 0, 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedNumeric, 0, v.Uint(), 0
	case reflect.Float32, reflect.Float64:
		return floatNumeric, 0, 0, v.Float()
	}
	return notNumeric, 0, 0, 0
}

func checkInt32(typeName string, value interface{}, i int64) (interface{}, error) {
	if i > math.MaxInt32 {
		return nil, raiseCoercionError(typeName, value, coercionErrorIntegerTooLarge)
	} else if i < math.MinInt32 {
		return nil, raiseCoercionError(typeName, value, coercionErrorIntegerTooSmall)
	}
	return int(i), nil
}

// coerceInt32 accepts Go integers and integral floats within 32-bit signed range.
func coerceInt32(typeName string, value interface{}) (interface{}, error) {
	kind, i, u, f := numericValueOf(value)
	switch kind {
	case signedNumeric:
		return checkInt32(typeName, value, i)
	case unsignedNumeric:
		if u > math.MaxInt32 {
			return nil, raiseCoercionError(typeName, value, coercionErrorIntegerTooLarge)
		}
		return int(u), nil
	case floatNumeric:
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
			return nil, raiseCoercionError(typeName, value, coercionErrorNonInteger)
		}
		if f > math.MaxInt32 {
			return nil, raiseCoercionError(typeName, value, coercionErrorIntegerTooLarge)
		} else if f < math.MinInt32 {
			return nil, raiseCoercionError(typeName, value, coercionErrorIntegerTooSmall)
		}
		return int(f), nil
	}
	return nil, raiseCoercionError(typeName, value, coercionErrorNonInteger)
}

func coerceFloat(typeName string, value interface{}) (interface{}, error) {
	kind, i, u, f := numericValueOf(value)
	switch kind {
	case signedNumeric:
		return float64(i), nil
	case unsignedNumeric:
		return float64(u), nil
	case floatNumeric:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, raiseCoercionError(typeName, value, coercionErrorNonNumeric)
		}
		return f, nil
	}
	return nil, raiseCoercionError(typeName, value, coercionErrorNonNumeric)
}

// stringOf returns the string for a value of string kind (including named string types).
func stringOf(value interface{}) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

//===----------------------------------------------------------------------------------------====//
// Int
//===----------------------------------------------------------------------------------------====//

var intType = MustNewScalar(&ScalarConfig{
	Name: "Int",
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values. " +
		"Int can represent values between -(2^31) and 2^31 - 1.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		switch value := value.(type) {
		case bool:
			if value {
				return 1, nil
			}
			return 0, nil
		case string:
			if i, err := strconv.ParseInt(value, 10, 64); err == nil {
				return checkInt32("Int", value, i)
			}
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				return coerceInt32("Int", f)
			}
			return nil, raiseCoercionError("Int", value, coercionErrorNonInteger)
		}
		return coerceInt32("Int", value)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
			return coerceInt32("Int", value)
		},
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			if value, ok := value.(ast.IntValue); ok {
				i, err := strconv.ParseInt(value.Value, 10, 64)
				if err != nil {
					return nil, raiseCoercionError("Int", value.Value, coercionErrorIntegerTooLarge)
				}
				return checkInt32("Int", value.Value, i)
			}
			return nil, raiseArgumentTypeError("Int", value)
		},
	},
})

// Int returns the GraphQL built-in Int type definition.
func Int() Scalar {
	return intType
}

//===----------------------------------------------------------------------------------------====//
// Float
//===----------------------------------------------------------------------------------------====//

var floatType = MustNewScalar(&ScalarConfig{
	Name: "Float",
	Description: "The `Float` scalar type represents signed double-precision fractional values as " +
		"specified by [IEEE 754](http://en.wikipedia.org/wiki/IEEE_floating_point).",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		switch value := value.(type) {
		case bool:
			if value {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, raiseCoercionError("Float", value, coercionErrorNonNumeric)
			}
			return coerceFloat("Float", f)
		}
		return coerceFloat("Float", value)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
			return coerceFloat("Float", value)
		},
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			switch value := value.(type) {
			case ast.IntValue:
				return value.FloatValue()
			case ast.FloatValue:
				return value.FloatValue()
			}
			return nil, raiseArgumentTypeError("Float", value)
		},
	},
})

// Float returns the GraphQL built-in Float type definition.
func Float() Scalar {
	return floatType
}

//===----------------------------------------------------------------------------------------====//
// String
//===----------------------------------------------------------------------------------------====//

var stringType = MustNewScalar(&ScalarConfig{
	Name: "String",
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character " +
		"sequences. The String type is most often used by GraphQL to represent free-form " +
		"human-readable text.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		if s, ok := stringOf(value); ok {
			return s, nil
		}
		switch value := value.(type) {
		case bool:
			return strconv.FormatBool(value), nil
		case fmt.Stringer:
			return value.String(), nil
		}
		kind, i, u, f := numericValueOf(value)
		switch kind {
		case signedNumeric:
			return strconv.FormatInt(i, 10), nil
		case unsignedNumeric:
			return strconv.FormatUint(u, 10), nil
		case floatNumeric:
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
		return nil, raiseCoercionError("String", value, coercionErrorUnexpectedType)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
			if s, ok := value.(string); ok {
				return s, nil
			}
			return nil, raiseCoercionError("String", value, coercionErrorNonString)
		},
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			if value, ok := value.(ast.StringValue); ok {
				return value.Value, nil
			}
			return nil, raiseArgumentTypeError("String", value)
		},
	},
})

// String returns the GraphQL built-in String type definition.
func String() Scalar {
	return stringType
}

//===----------------------------------------------------------------------------------------====//
// Boolean
//===----------------------------------------------------------------------------------------====//

var booleanType = MustNewScalar(&ScalarConfig{
	Name:        "Boolean",
	Description: "The `Boolean` scalar type represents `true` or `false`.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		if b, ok := value.(bool); ok {
			return b, nil
		}
		kind, i, u, f := numericValueOf(value)
		switch kind {
		case signedNumeric:
			return i != 0, nil
		case unsignedNumeric:
			return u != 0, nil
		case floatNumeric:
			return f != 0, nil
		}
		return nil, raiseCoercionError("Boolean", value, coercionErrorNonBoolean)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
			if b, ok := value.(bool); ok {
				return b, nil
			}
			return nil, raiseCoercionError("Boolean", value, coercionErrorNonBoolean)
		},
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			if value, ok := value.(ast.BooleanValue); ok {
				return value.Value, nil
			}
			return nil, raiseArgumentTypeError("Boolean", value)
		},
	},
})

// Boolean returns the GraphQL built-in Boolean type definition.
func Boolean() Scalar {
	return booleanType
}

//===----------------------------------------------------------------------------------------====//
// ID
//===----------------------------------------------------------------------------------------====//

// coerceIDValue accepts strings and integers. Integral floats are accepted because JSON decoders
// produce float64 for every number in query variables.
func coerceIDValue(value interface{}) (interface{}, error) {
	if s, ok := stringOf(value); ok {
		return s, nil
	}
	kind, i, u, f := numericValueOf(value)
	switch kind {
	case signedNumeric:
		return strconv.FormatInt(i, 10), nil
	case unsignedNumeric:
		return strconv.FormatUint(u, 10), nil
	case floatNumeric:
		if !math.IsNaN(f) && !math.IsInf(f, 0) && math.Trunc(f) == f && math.Abs(f) < (1<<53) {
			return strconv.FormatInt(int64(f), 10), nil
		}
	}
	return nil, raiseCoercionError("ID", value, coercionErrorUnexpectedType)
}

var idType = MustNewScalar(&ScalarConfig{
	Name: "ID",
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an " +
		"object or as key for a cache. The ID type appears in a JSON response as a String; " +
		"however, it is not intended to be human-readable. When expected as an input type, any " +
		"string (such as `\"4\"`) or integer (such as `4`) input value will be accepted as an ID.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		if stringer, ok := value.(fmt.Stringer); ok {
			return stringer.String(), nil
		}
		return coerceIDValue(value)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceIDValue,
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			switch value := value.(type) {
			case ast.StringValue:
				return value.Value, nil
			case ast.IntValue:
				return value.Value, nil
			}
			return nil, raiseArgumentTypeError("ID", value)
		},
	},
})

// ID returns the GraphQL built-in ID type definition.
func ID() Scalar {
	return idType
}

var standardScalars = []Scalar{intType, floatType, stringType, booleanType, idType}

// StandardScalars returns the built-in scalar types.
func StandardScalars() []Scalar {
	return standardScalars
}
