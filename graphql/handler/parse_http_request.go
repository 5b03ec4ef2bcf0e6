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
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultMaxBodySize caps the request body read by ParseHTTPRequest when no size is configured.
const DefaultMaxBodySize = 10 << 20 // 10MB

// Content types accepted in POST bodies
const (
	contentTypeJSON    = "application/json"
	contentTypeGraphQL = "application/graphql"
	contentTypeForm    = "application/x-www-form-urlencoded"
)

// ErrRequestBodyTooLarge is wrapped in HTTPRequestParseError when the body exceeds the limit.
var ErrRequestBodyTooLarge = errors.New("request body is too large")

// ParseHTTPRequestOptions provides settings to ParseHTTPRequest.
type ParseHTTPRequestOptions struct {
	// Maximum size in bytes of a request body; DefaultMaxBodySize if zero.
	MaxBodySize uint
}

func (options *ParseHTTPRequestOptions) maxBodySize() uint {
	if options == nil || options.MaxBodySize == 0 {
		return DefaultMaxBodySize
	}
	return options.MaxBodySize
}

// HTTPRequest is a GraphQL request decoded from HTTP.
type HTTPRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HTTPRequestParseError is returned by ParseHTTPRequest for a malformed request.
type HTTPRequestParseError struct {
	Request *http.Request
	Err     error
}

func (err *HTTPRequestParseError) Error() string {
	return err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *HTTPRequestParseError) Unwrap() error {
	return err.Err
}

// ParseHTTPRequest decodes a GraphQL request from r. GET reads the URL query. POST reads a JSON,
// GraphQL or form body. Other methods and unknown content types yield an empty request.
func ParseHTTPRequest(r *http.Request, options *ParseHTTPRequestOptions) (*HTTPRequest, error) {
	var (
		req *HTTPRequest
		err error
	)
	switch r.Method {
	case http.MethodGet:
		req, err = parseGETRequest(r)
	case http.MethodPost:
		req, err = parsePOSTRequest(r, options.maxBodySize())
	default:
		req = &HTTPRequest{}
	}

	if err != nil {
		return nil, &HTTPRequestParseError{
			Request: r,
			Err:     err,
		}
	}
	return req, nil
}

func parseGETRequest(r *http.Request) (*HTTPRequest, error) {
	// r.Form is used if the caller has parsed it already.
	values := r.Form
	if values == nil {
		var err error
		if values, err = url.ParseQuery(r.URL.RawQuery); err != nil {
			return nil, err
		}
	}
	return requestFromValues(values)
}

func parsePOSTRequest(r *http.Request, maxBodySize uint) (*HTTPRequest, error) {
	// Unparsable content type is treated as absent.
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == contentTypeForm && r.Form != nil {
		return requestFromValues(r.Form)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBodySize)+1))
	if err != nil {
		return nil, err
	}
	if uint(len(body)) > maxBodySize {
		return nil, ErrRequestBodyTooLarge
	}

	switch contentType {
	case contentTypeGraphQL:
		return &HTTPRequest{Query: string(body)}, nil

	case contentTypeForm:
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, err
		}
		return requestFromValues(values)

	case "", contentTypeJSON:
		var req HTTPRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		return &req, nil
	}

	return &HTTPRequest{}, nil
}

// requestFromValues reads query, operationName and variables from URL-encoded values. Each key
// may appear at most once.
func requestFromValues(values url.Values) (*HTTPRequest, error) {
	single := func(key string) (string, error) {
		if v := values[key]; len(v) > 1 {
			return "", fmt.Errorf(`multiple values are provided to "%s", but only one expected`, key)
		}
		return values.Get(key), nil
	}

	var (
		req HTTPRequest
		err error
	)
	if req.Query, err = single("query"); err != nil {
		return nil, err
	}
	if req.OperationName, err = single("operationName"); err != nil {
		return nil, err
	}

	variables, err := single("variables")
	if err != nil {
		return nil, err
	}
	if len(variables) > 0 {
		if err := json.UnmarshalFromString(variables, &req.Variables); err != nil {
			return nil, fmt.Errorf("invalid variables: %w", err)
		}
	}

	return &req, nil
}
