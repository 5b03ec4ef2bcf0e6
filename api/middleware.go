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

package api

import (
	"time"

	"github.com/botobag/tweetql/graphql/executor"
	"github.com/botobag/tweetql/graphql/handler"
	"github.com/botobag/tweetql/internal/metrics"
)

// InstrumentOperations returns a middleware recording every operation executed by a handler in m.
func InstrumentOperations(m *metrics.Metrics) handler.RequestMiddleware {
	return func(next handler.ExecuteFunc) handler.ExecuteFunc {
		return func(request *handler.Request) executor.ExecutionResult {
			start := time.Now()
			result := next(request)
			m.ObserveOperation(string(request.Operation.Type()), start, len(result.Errors.Errors))
			return result
		}
	}
}
