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

// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tweetql"

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	fieldResolutions *prometheus.CounterVec
	fieldDuration    *prometheus.HistogramVec

	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates collectors and registers them to a new registry together with the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "operations_total",
			Help:      "Number of executed operations by type and outcome.",
		}, []string{"type", "outcome"}),

		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "operation_duration_seconds",
			Help:      "Time spent executing operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),

		fieldResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "field_resolutions_total",
			Help:      "Number of field resolver invocations by object, field and outcome.",
		}, []string{"object", "field", "outcome"}),

		fieldDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "field_resolution_duration_seconds",
			Help:      "Time spent in field resolvers.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 10},
		}, []string{"object", "field"}),

		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "movies",
			Name:      "provider_requests_total",
			Help:      "Number of requests sent to the movie provider by operation and outcome.",
		}, []string{"op", "outcome"}),

		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "movies",
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of requests sent to the movie provider.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by handler, method and status code.",
		}, []string{"handler", "method", "code"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler", "method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.operationDuration,
		m.fieldResolutions,
		m.fieldDuration,
		m.providerRequests,
		m.providerDuration,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry returns the registry that holds all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// ObserveOperation records one executed operation of the given type ("query" or "mutation"). An
// operation whose result carries errors counts as an error.
func (m *Metrics) ObserveOperation(operationType string, start time.Time, numErrors int) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if numErrors > 0 {
		outcome = OutcomeError
	}
	m.operations.WithLabelValues(operationType, outcome).Inc()
	m.operationDuration.WithLabelValues(operationType).Observe(time.Since(start).Seconds())
}

// ObserveField records one invocation of the resolver for object.field that started at start.
func (m *Metrics) ObserveField(object, field string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.fieldResolutions.WithLabelValues(object, field, outcomeOf(err)).Inc()
	m.fieldDuration.WithLabelValues(object, field).Observe(time.Since(start).Seconds())
}

// ObserveProviderRequest records one request to the movie provider.
func (m *Metrics) ObserveProviderRequest(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(op, outcomeOf(err)).Inc()
	m.providerDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// InstrumentHandler wraps next to count and time the requests it serves under the given handler
// name.
func (m *Metrics) InstrumentHandler(name string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	labels := prometheus.Labels{"handler": name}
	return promhttp.InstrumentHandlerCounter(
		m.httpRequests.MustCurryWith(labels),
		promhttp.InstrumentHandlerDuration(m.httpDuration.MustCurryWith(labels), next),
	)
}
