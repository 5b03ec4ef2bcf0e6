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

// Package graphql provides the type system of a small GraphQL engine. It provides foundation to
// build a GraphQL schema from Go values and to serve queries against that schema with the executor
// package.
//
// Config-Thunk Design
//
// Each named type is created from a config struct (ObjectConfig, ScalarConfig). Objects that refer
// to each other cannot list their fields eagerly without hitting an "initialization loop", so
// ObjectConfig accepts a FieldsThunk instead of Fields. The thunk is called at most once, on the
// first access to the fields, which usually happens when NewSchema walks the type graph. Errors
// from a thunk are reported by NewSchema.
//
// The type system only supports scalars, objects and the list and non-null wrappers. Field
// arguments are scalars (possibly wrapped).
package graphql
