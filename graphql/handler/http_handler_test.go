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

package handler_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/botobag/tweetql/graphql"
	"github.com/botobag/tweetql/graphql/executor"
	"github.com/botobag/tweetql/graphql/handler"
	"github.com/botobag/tweetql/internal/ctxlog"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func newTestSchema() graphql.Schema {
	return graphql.MustNewSchema(&graphql.SchemaConfig{
		Query: graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"hello": {
					Type: graphql.String(),
					Args: graphql.ArgumentConfigMap{
						"name": {
							Type:         graphql.String(),
							DefaultValue: "world",
						},
					},
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						ctxlog.FromContext(ctx).Info("say hello")
						return "hello " + info.Args().GetString("name"), nil
					}),
				},
				"fail": {
					Type: graphql.String(),
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return nil, errors.New("boom")
					}),
				},
			},
		}),
	})
}

func mustNewHandler(opts ...handler.Option) http.Handler {
	opts = append([]handler.Option{handler.Logger(ctxlog.Discard())}, opts...)
	h, err := handler.New(newTestSchema(), opts...)
	Expect(err).ShouldNot(HaveOccurred())
	return h
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, r)
	return recorder
}

func newGetRequest(params url.Values) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/graphql?"+params.Encode(), nil)
}

func newPostRequest(contentType string, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	return r
}

var _ = Describe("HTTP Handler", func() {
	var h http.Handler

	BeforeEach(func() {
		h = mustNewHandler()
	})

	It("requires a schema", func() {
		_, err := handler.New(nil)
		Expect(err).Should(MatchError("handler: must specify a schema"))
	})

	Describe("GET", func() {
		It("serves query in URL", func() {
			resp := serve(h, newGetRequest(url.Values{
				"query": {"{ hello }"},
			}))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Header().Get("Content-Type")).Should(Equal("application/json"))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello world"}}`))
		})

		It("accepts variables and operation name", func() {
			resp := serve(h, newGetRequest(url.Values{
				"query":         {"query A { a: hello } query B($name: String) { b: hello(name: $name) }"},
				"operationName": {"B"},
				"variables":     {`{"name": "nico"}`},
			}))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"b": "hello nico"}}`))
		})

		It("rejects invalid variables", func() {
			resp := serve(h, newGetRequest(url.Values{
				"query":     {"{ hello }"},
				"variables": {`{"name": `},
			}))
			Expect(resp.Code).Should(Equal(http.StatusBadRequest))
			Expect(resp.Body.String()).Should(ContainSubstring("invalid variables"))
		})

		It("rejects multiple queries", func() {
			resp := serve(h, newGetRequest(url.Values{
				"query": {"{ hello }", "{ fail }"},
			}))
			Expect(resp.Code).Should(Equal(http.StatusBadRequest))
			Expect(resp.Body.String()).Should(MatchJSON(`{
				"errors": [{"message": "multiple values are provided to \"query\", but only one expected"}]
			}`))
		})
	})

	Describe("POST", func() {
		It("serves JSON body", func() {
			resp := serve(h, newPostRequest("application/json", `{
				"query": "query Hello($name: String) { hello(name: $name) }",
				"variables": {"name": "jungbin"}
			}`))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello jungbin"}}`))
		})

		It("treats missing content type as JSON", func() {
			resp := serve(h, newPostRequest("", `{"query": "{ hello }"}`))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello world"}}`))
		})

		It("serves application/graphql body", func() {
			resp := serve(h, newPostRequest("application/graphql; charset=utf-8", `{ hello(name: "las") }`))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello las"}}`))
		})

		It("serves form body", func() {
			resp := serve(h, newPostRequest("application/x-www-form-urlencoded", url.Values{
				"query": {"{ hello }"},
			}.Encode()))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello world"}}`))
		})

		It("rejects malformed JSON body", func() {
			resp := serve(h, newPostRequest("application/json", `{"query": `))
			Expect(resp.Code).Should(Equal(http.StatusBadRequest))
			Expect(resp.Body.String()).Should(ContainSubstring("invalid JSON body"))
		})

		It("limits size of body", func() {
			h = mustNewHandler(handler.MaxBodySize(8))
			resp := serve(h, newPostRequest("application/graphql", `{ hello }`))
			Expect(resp.Code).Should(Equal(http.StatusRequestEntityTooLarge))
			Expect(resp.Body.String()).Should(MatchJSON(`{"errors": [{"message": "request body is too large"}]}`))
		})
	})

	It("rejects unsupported methods", func() {
		resp := serve(h, httptest.NewRequest(http.MethodPut, "/graphql", nil))
		Expect(resp.Code).Should(Equal(http.StatusMethodNotAllowed))
		Expect(resp.Header().Get("Allow")).Should(Equal("GET, POST"))
	})

	It("rejects empty query", func() {
		resp := serve(h, newGetRequest(url.Values{}))
		Expect(resp.Code).Should(Equal(http.StatusBadRequest))
		Expect(resp.Body.String()).Should(MatchJSON(`{"errors": [{"message": "Must provide query string."}]}`))
	})

	It("rejects query with syntax error", func() {
		resp := serve(h, newPostRequest("application/graphql", `{ hello`))
		Expect(resp.Code).Should(Equal(http.StatusBadRequest))
		Expect(resp.Body.String()).Should(ContainSubstring(`"message":"Syntax Error`))
		Expect(resp.Body.String()).Should(ContainSubstring(`"locations":[{"line":1,"column":8}]`))
	})

	It("presents validation errors with 200 OK", func() {
		resp := serve(h, newPostRequest("application/graphql", `{ unknown }`))
		Expect(resp.Code).Should(Equal(http.StatusOK))
		Expect(resp.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "Cannot query field \"unknown\" on type \"Query\".",
				"locations": [{"line": 1, "column": 3}]
			}]
		}`))
	})

	It("presents execution errors along with data", func() {
		resp := serve(h, newPostRequest("application/graphql", `{ hello fail }`))
		Expect(resp.Code).Should(Equal(http.StatusOK))
		Expect(resp.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "boom",
				"locations": [{"line": 1, "column": 9}],
				"path": ["fail"]
			}],
			"data": {"hello": "hello world", "fail": null}
		}`))
	})

	Describe("Request ID", func() {
		It("generates a request id", func() {
			resp := serve(h, newGetRequest(url.Values{
				"query": {"{ hello }"},
			}))
			_, err := uuid.Parse(resp.Header().Get(handler.RequestIDHeader))
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("keeps the request id given by client", func() {
			id := uuid.NewString()
			r := newGetRequest(url.Values{
				"query": {"{ hello }"},
			})
			r.Header.Set(handler.RequestIDHeader, id)
			resp := serve(h, r)
			Expect(resp.Header().Get(handler.RequestIDHeader)).Should(Equal(id))
		})

		It("replaces malformed request id", func() {
			r := newGetRequest(url.Values{
				"query": {"{ hello }"},
			})
			r.Header.Set(handler.RequestIDHeader, "not-an-id")
			resp := serve(h, r)
			Expect(resp.Header().Get(handler.RequestIDHeader)).ShouldNot(Equal("not-an-id"))
		})

		It("passes a request-scoped logger to resolvers", func() {
			var buf bytes.Buffer
			h = mustNewHandler(handler.Logger(slog.New(slog.NewTextHandler(&buf, nil))))

			resp := serve(h, newGetRequest(url.Values{
				"query": {"{ hello }"},
			}))
			id := resp.Header().Get(handler.RequestIDHeader)
			Expect(buf.String()).Should(ContainSubstring(`msg="say hello" request_id=` + id))
			Expect(buf.String()).Should(ContainSubstring(`msg="serve graphql request" request_id=` + id))
		})
	})

	Describe("Operation cache", func() {
		var cache *handler.LRUOperationCache

		BeforeEach(func() {
			var err error
			cache, err = handler.NewLRUOperationCache(2)
			Expect(err).ShouldNot(HaveOccurred())
			h = mustNewHandler(handler.OverrideOperationCache(cache))
		})

		It("rejects non-positive size", func() {
			_, err := handler.NewLRUOperationCache(0)
			Expect(err).Should(HaveOccurred())
		})

		It("reuses prepared operations", func() {
			for i := 0; i < 3; i++ {
				resp := serve(h, newPostRequest("application/graphql", `{ hello }`))
				Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello world"}}`))
			}
			Expect(cache.Len()).Should(Equal(1))
		})

		It("caches operations by operation name", func() {
			query := "query A { a: hello } query B { b: hello }"
			for _, name := range []string{"A", "B", "A"} {
				serve(h, newPostRequest("application/json",
					`{"query": "`+query+`", "operationName": "`+name+`"}`))
			}
			Expect(cache.Len()).Should(Equal(2))

			resp := serve(h, newPostRequest("application/json", `{"query": "`+query+`", "operationName": "B"}`))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"b": "hello world"}}`))
		})

		It("evicts least recently used operation", func() {
			for _, query := range []string{"{ a: hello }", "{ b: hello }", "{ c: hello }"} {
				serve(h, newPostRequest("application/graphql", query))
			}
			Expect(cache.Len()).Should(Equal(2))
			_, ok := cache.Get("{ a: hello }")
			Expect(ok).Should(BeFalse())
			_, ok = cache.Get("{ c: hello }")
			Expect(ok).Should(BeTrue())
		})

		It("does not cache operations that fail to prepare", func() {
			serve(h, newPostRequest("application/graphql", `{ unknown }`))
			Expect(cache.Len()).Should(Equal(0))
		})

		It("can be disabled", func() {
			h = mustNewHandler(handler.OverrideOperationCache(handler.NopOperationCache{}))
			resp := serve(h, newPostRequest("application/graphql", `{ hello }`))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello world"}}`))
		})
	})

	Describe("Middlewares", func() {
		It("can change execute params", func() {
			h = mustNewHandler(handler.Middlewares(
				func(next handler.ExecuteFunc) handler.ExecuteFunc {
					return func(request *handler.Request) executor.ExecutionResult {
						request.Params.VariableValues = map[string]interface{}{
							"name": "middleware",
						}
						return next(request)
					}
				},
			))
			resp := serve(h, newPostRequest("application/graphql", `query($name: String) { hello(name: $name) }`))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello middleware"}}`))
		})

		It("can stop execution with an error", func() {
			executed := false
			h = mustNewHandler(handler.Middlewares(
				func(next handler.ExecuteFunc) handler.ExecuteFunc {
					return func(request *handler.Request) executor.ExecutionResult {
						return handler.Reject(graphql.NewError("rate limited"))
					}
				},
				func(next handler.ExecuteFunc) handler.ExecuteFunc {
					return func(request *handler.Request) executor.ExecutionResult {
						executed = true
						return next(request)
					}
				},
			))
			resp := serve(h, newPostRequest("application/graphql", `{ hello }`))
			Expect(resp.Code).Should(Equal(http.StatusOK))
			Expect(resp.Body.String()).Should(MatchJSON(`{"errors": [{"message": "rate limited"}]}`))
			Expect(executed).Should(BeFalse())
		})

		It("applies middlewares in the given order", func() {
			var order []string
			trace := func(name string) handler.RequestMiddleware {
				return func(next handler.ExecuteFunc) handler.ExecuteFunc {
					return func(request *handler.Request) executor.ExecutionResult {
						order = append(order, name+" before")
						result := next(request)
						order = append(order, name+" after")
						return result
					}
				}
			}

			h = mustNewHandler(handler.Middlewares(trace("outer"), trace("inner")))
			resp := serve(h, newPostRequest("application/graphql", `{ hello }`))
			Expect(resp.Body.String()).Should(MatchJSON(`{"data": {"hello": "hello world"}}`))
			Expect(order).Should(Equal([]string{"outer before", "inner before", "inner after", "outer after"}))
		})
	})
})
