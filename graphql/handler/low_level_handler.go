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

package handler

import (
	"context"
	"errors"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/executor"
)

// DefaultOperationCacheSize is the number of prepared operations kept when LLConfig doesn't
// provide a cache or a size.
const DefaultOperationCacheSize = 512

// Request is an operation ready to be executed by LLHandler.
type Request struct {
	Ctx       context.Context
	Operation *executor.PreparedOperation
	Params    executor.ExecuteParams
}

// ExecuteFunc executes a Request.
type ExecuteFunc func(request *Request) executor.ExecutionResult

// RequestMiddleware decorates the execution of requests. The returned function may change the
// request before passing it to next or produce a result without calling next at all.
type RequestMiddleware func(next ExecuteFunc) ExecuteFunc

// LLConfig contains configuration to set up a LLHandler.
type LLConfig struct {
	Schema graphql.Schema

	// OperationCache keeps prepared operations across requests. An LRU cache holding
	// OperationCacheSize entries is created when it is nil.
	OperationCache     OperationCache
	OperationCacheSize int

	// Middlewares wrap the execution. The first one sees the request first.
	Middlewares []RequestMiddleware
}

// LLHandler executes prepared operations against a schema. It is the transport-independent part
// of the HTTP handler.
type LLHandler struct {
	schema  graphql.Schema
	cache   OperationCache
	execute ExecuteFunc
}

var errMissingSchema = errors.New("handler: must specify a schema")

// NewLLHandler creates a LLHandler from given configuration.
func NewLLHandler(config *LLConfig) (*LLHandler, error) {
	if config.Schema == nil {
		return nil, errMissingSchema
	}

	cache := config.OperationCache
	if cache == nil {
		size := config.OperationCacheSize
		if size == 0 {
			size = DefaultOperationCacheSize
		}
		var err error
		if cache, err = NewLRUOperationCache(size); err != nil {
			return nil, err
		}
	}

	execute := ExecuteFunc(func(request *Request) executor.ExecutionResult {
		return request.Operation.Execute(request.Ctx, request.Params)
	})
	for i := len(config.Middlewares) - 1; i >= 0; i-- {
		execute = config.Middlewares[i](execute)
	}

	return &LLHandler{
		schema:  config.Schema,
		cache:   cache,
		execute: execute,
	}, nil
}

// Schema returns the schema served by the handler.
func (handler *LLHandler) Schema() graphql.Schema {
	return handler.schema
}

// OperationCache returns the cache of prepared operations.
func (handler *LLHandler) OperationCache() OperationCache {
	return handler.cache
}

// Serve executes request through the middlewares. request must not be nil.
func (handler *LLHandler) Serve(request *Request) executor.ExecutionResult {
	return handler.execute(request)
}

// Reject returns a middleware-produced result carrying err.
func Reject(err error) executor.ExecutionResult {
	return executor.ExecutionResult{
		Errors: graphql.ErrorsOf(err),
	}
}
