// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every docsite metric
const Namespace = "docsite"

var (
	// PagesProcessed counts the pages that went through the page data pass
	PagesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "pages_processed_total",
		Help:      "Number of pages processed by the page data pass.",
	})

	// HeadersNormalized counts the page headers whose titles were decoded
	HeadersNormalized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "headers_normalized_total",
		Help:      "Number of page headers decoded by the header normalizer.",
	})

	// BuildDuration observes the duration of complete site builds
	BuildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "build_duration_seconds",
		Help:      "A histogram of site build durations.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	},
		[]string{"result"},
	)
)

// RegisterAll registers the build and client metrics with registry, or
// with the default registerer when registry is nil
func RegisterAll(registry prometheus.Registerer) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(PagesProcessed, HeadersNormalized, BuildDuration)
	RegisterClientMetrics(registry)
}

// Handler serves the metrics of the default gatherer
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor serves the metrics of gatherer
func HandlerFor(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
