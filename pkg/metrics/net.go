// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Client metrics

	clientInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "client_in_flight_requests",
		Help:      "A gauge of in-flight requests for the wrapped client.",
	})

	clientCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "client_api_requests_total",
		Help:      "A counter for GitHub API requests by response code and method.",
	},
		[]string{"code", "method"},
	)

	// observed from the DNSStart and DNSDone trace hooks
	clientDNSLatencyVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "dns_duration_seconds",
		Help:      "Trace dns latency histogram.",
		Buckets:   []float64{.005, .01, .025, .05},
	},
		[]string{"event"},
	)

	// observed from the TLS handshake trace hooks
	clientTLSLatencyVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "tls_duration_seconds",
		Help:      "Trace tls latency histogram.",
		Buckets:   []float64{.05, .1, .25, .5},
	},
		[]string{"event"},
	)

	clientHistVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "client_request_duration_seconds",
		Help:      "A histogram of GitHub API request latencies.",
		Buckets:   prometheus.DefBuckets,
	},
		[]string{},
	)
)

// RegisterClientMetrics registers the HTTP client metrics with registry
func RegisterClientMetrics(registry prometheus.Registerer) {
	ResetClientMetrics()
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(clientCounter, clientTLSLatencyVec, clientDNSLatencyVec, clientHistVec, clientInFlightGauge)
}

// ResetClientMetrics resets the HTTP client metrics
func ResetClientMetrics() {
	clientCounter.Reset()
	clientTLSLatencyVec.Reset()
	clientDNSLatencyVec.Reset()
	clientHistVec.Reset()
	clientInFlightGauge.Set(0.0)
}

// InstrumentRoundTripper wraps next with in-flight, count, trace and
// duration instrumentation. A nil next wraps http.DefaultTransport.
func InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	trace := &promhttp.InstrumentTrace{
		DNSStart: func(t float64) {
			clientDNSLatencyVec.WithLabelValues("dns_start").Observe(t)
		},
		DNSDone: func(t float64) {
			clientDNSLatencyVec.WithLabelValues("dns_done").Observe(t)
		},
		TLSHandshakeStart: func(t float64) {
			clientTLSLatencyVec.WithLabelValues("tls_handshake_start").Observe(t)
		},
		TLSHandshakeDone: func(t float64) {
			clientTLSLatencyVec.WithLabelValues("tls_handshake_done").Observe(t)
		},
	}
	return promhttp.InstrumentRoundTripperInFlight(clientInFlightGauge,
		promhttp.InstrumentRoundTripperCounter(clientCounter,
			promhttp.InstrumentRoundTripperTrace(trace,
				promhttp.InstrumentRoundTripperDuration(clientHistVec, next),
			),
		),
	)
}
