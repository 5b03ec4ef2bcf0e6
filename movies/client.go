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

package movies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/botobag/tweetql/internal/ctxlog"
	"github.com/botobag/tweetql/internal/metrics"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout bounds each request when Config.Timeout is not given.
const DefaultTimeout = 10 * time.Second

// maxResponseSize bounds the size of a response body.
const maxResponseSize = 32 << 20

var errMissingBaseURL = errors.New("movies: must specify a base URL")

// Config specifies the options for creating a Client.
type Config struct {
	// Base URL of the provider API (e.g., "https://yts.mx/api/v2")
	BaseURL string

	// Timeout of each request including reading the response body; DefaultTimeout if zero
	Timeout time.Duration

	// Transport used by the underlying http.Client; a pooled http.Transport if nil
	Transport http.RoundTripper

	// Logger receives a record for each request unless the request context carries one.
	Logger *slog.Logger

	// Metrics counts and times requests; may be nil.
	Metrics *metrics.Metrics
}

// Client talks to the movie provider. It has no retry, no cache and no rate limiting.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a client from config.
func NewClient(config Config) (*Client, error) {
	if len(config.BaseURL) == 0 {
		return nil, errMissingBaseURL
	}
	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("movies: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf(`movies: base URL must use "http" or "https", got %q`, config.BaseURL)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := config.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger:  logger,
		metrics: config.Metrics,
	}, nil
}

// ListMovies fetches the catalog listing and returns its data.movies.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	env, err := c.fetch(ctx, OpListMovies, c.baseURL+"/list_movies.json", func(env *envelope) error {
		if env.Data == nil || env.Data.Movies == nil {
			return fmt.Errorf(`%w: missing "data.movies"`, ErrMalformedEnvelope)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	movies := *env.Data.Movies
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

// MovieDetails fetches the movie with the given id. It returns nil without an error when the provider
// knows no such movie.
func (c *Client) MovieDetails(ctx context.Context, id int) (*Movie, error) {
	u := c.baseURL + "/movie_details.json?movie_id=" + strconv.Itoa(id)

	env, err := c.fetch(ctx, OpMovieDetails, u, func(env *envelope) error {
		if env.Data == nil {
			return fmt.Errorf(`%w: missing "data"`, ErrMalformedEnvelope)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The provider answers an unknown id with an empty movie object.
	movie := env.Data.Movie
	if movie == nil || movie.ID == 0 {
		return nil, nil
	}
	return movie, nil
}

// CloseIdleConnections closes idle connections held by the client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) fetch(
	ctx context.Context,
	op string,
	u string,
	check func(env *envelope) error) (env envelope, err error) {

	logger := ctxlog.Or(ctx, c.logger)
	start := time.Now()
	defer func() {
		c.metrics.ObserveProviderRequest(op, start, err)
		if err != nil {
			logger.WarnContext(ctx, "movies provider request failed",
				"op", op, "url", u, "duration", time.Since(start), "error", err)
		} else {
			logger.DebugContext(ctx, "movies provider request",
				"op", op, "url", u, "duration", time.Since(start))
		}
	}()

	wrap := func(err error) error {
		return &ProviderError{Op: op, URL: u, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return env, wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error repeats the request URL in its message.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return env, wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bit of the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return env, wrap(fmt.Errorf("%w %s", ErrUnexpectedStatus, resp.Status))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&env); err != nil {
		return env, wrap(fmt.Errorf("%w: %v", ErrMalformedEnvelope, err))
	}

	if err := check(&env); err != nil {
		return env, wrap(err)
	}

	return env, nil
}
