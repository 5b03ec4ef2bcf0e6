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
	"errors"

	"github.com/botobag/tweetql/graphql/executor"

	lru "github.com/hashicorp/golang-lru/v2"
)

// OperationCache caches executor.PreparedOperation created from a query to save parsing efforts.
type OperationCache interface {
	// Get looks up operation for the given key.
	Get(key string) (operation *executor.PreparedOperation, ok bool)

	// Add adds an operation that associated with the key to the cache.
	Add(key string, operation *executor.PreparedOperation)
}

// cacheKey identifies a prepared operation. The same document prepares to different operations for
// different operation names.
func cacheKey(query string, operationName string) string {
	if len(operationName) == 0 {
		return query
	}
	return operationName + "\x00" + query
}

var errZeroCacheSize = errors.New("handler: must provide a positive size for operation cache")

// LRUOperationCache implements an OperationCache with fixed number of entries. It is safe for
// concurrent use.
type LRUOperationCache struct {
	cache *lru.Cache[string, *executor.PreparedOperation]
}

var _ OperationCache = (*LRUOperationCache)(nil)

// NewLRUOperationCache creates a new LRUOperationCache with given size.
func NewLRUOperationCache(maxEntries int) (*LRUOperationCache, error) {
	if maxEntries <= 0 {
		return nil, errZeroCacheSize
	}

	cache, err := lru.New[string, *executor.PreparedOperation](maxEntries)
	if err != nil {
		return nil, err
	}

	return &LRUOperationCache{
		cache: cache,
	}, nil
}

// Get implements OperationCache.
func (c *LRUOperationCache) Get(key string) (operation *executor.PreparedOperation, ok bool) {
	return c.cache.Get(key)
}

// Add implements OperationCache.
func (c *LRUOperationCache) Add(key string, operation *executor.PreparedOperation) {
	c.cache.Add(key, operation)
}

// Len returns the number of cached operations.
func (c *LRUOperationCache) Len() int {
	return c.cache.Len()
}

// NopOperationCache does nothing.
type NopOperationCache struct{}

var _ OperationCache = NopOperationCache{}

// Get implements OperationCache.
func (NopOperationCache) Get(key string) (operation *executor.PreparedOperation, ok bool) {
	return
}

// Add implements OperationCache.
func (NopOperationCache) Add(key string, operation *executor.PreparedOperation) {}
