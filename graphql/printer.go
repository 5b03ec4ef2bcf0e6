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
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// PrintSchema prints the schema in GraphQL Schema Definition Language. Types and fields are sorted
// by name and built-in scalars are omitted.
func PrintSchema(schema Schema) string {
	var b strings.Builder

	if definition := schemaDefinitionOf(schema); len(definition) > 0 {
		b.WriteString(definition)
	}

	typeMap := schema.TypeMap()
	for _, name := range typeMap.Names() {
		t := typeMap.Lookup(name)
		if isStandardScalar(t) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		printType(&b, t)
	}

	return b.String()
}

func isStandardScalar(t Type) bool {
	for _, scalar := range standardScalars {
		if t == scalar {
			return true
		}
	}
	return false
}

// schemaDefinitionOf returns the schema block. It is only needed when root types use unconventional
// names.
func schemaDefinitionOf(schema Schema) string {
	query := schema.Query()
	mutation := schema.Mutation()
	if query.Name() == "Query" && (mutation == nil || mutation.Name() == "Mutation") {
		return ""
	}

	var b strings.Builder
	b.WriteString("schema {\n")
	b.WriteString("  query: " + query.Name() + "\n")
	if mutation != nil {
		b.WriteString("  mutation: " + mutation.Name() + "\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func printType(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case Scalar:
		printDescription(b, "", t.Description())
		b.WriteString("scalar ")
		b.WriteString(t.Name())
		b.WriteString("\n")

	case Object:
		printDescription(b, "", t.Description())
		b.WriteString("type ")
		b.WriteString(t.Name())
		b.WriteString(" {\n")
		fields := t.Fields()
		for _, name := range fields.SortedNames() {
			printField(b, fields[name])
		}
		b.WriteString("}\n")
	}
}

func printField(b *strings.Builder, field Field) {
	printDescription(b, "  ", field.Description())
	b.WriteString("  ")
	b.WriteString(field.Name())

	args := field.Args()
	if len(args) > 0 {
		b.WriteString("(")
		for i := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg := &args[i]
			b.WriteString(arg.Name())
			b.WriteString(": ")
			b.WriteString(arg.Type().String())
			if arg.HasDefaultValue() {
				b.WriteString(" = ")
				b.WriteString(printValue(arg.DefaultValue()))
			}
		}
		b.WriteString(")")
	}

	b.WriteString(": ")
	b.WriteString(field.Type().String())

	if deprecation := field.Deprecation(); deprecation.Defined() {
		b.WriteString(" @deprecated")
		if len(deprecation.Reason) > 0 {
			b.WriteString("(reason: ")
			b.WriteString(printValue(deprecation.Reason))
			b.WriteString(")")
		}
	}

	b.WriteString("\n")
}

func printDescription(b *strings.Builder, indent string, description string) {
	if len(description) == 0 {
		return
	}

	b.WriteString(indent)
	if !strings.Contains(description, "\n") {
		b.WriteString(printValue(description))
		b.WriteString("\n")
		return
	}

	b.WriteString(`"""`)
	b.WriteString("\n")
	for _, line := range strings.Split(description, "\n") {
		if len(line) > 0 {
			b.WriteString(indent)
			b.WriteString(strings.ReplaceAll(line, `"""`, `\"""`))
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString(`"""`)
	b.WriteString("\n")
}

// printValue prints a Go value in GraphQL literal notation.
func printValue(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return "null"
	case string:
		s, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(value)
		if err != nil {
			return fmt.Sprintf("%q", value)
		}
		return s
	case []interface{}:
		items := make([]string, len(value))
		for i, item := range value {
			items[i] = printValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return fmt.Sprint(value)
}
