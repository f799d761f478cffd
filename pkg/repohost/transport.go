// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package repohost

import (
	"net/http"

	"golang.org/x/time/rate"
	"k8s.io/klog/v2"
)

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(req *http.Request) (*http.Response, error)

// RoundTrip implements the RoundTripper interface.
func (rt RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return rt(r)
}

// WithClientHTTPLogging logs requests and response status at verbosity 6
func WithClientHTTPLogging(next http.RoundTripper) RoundTripperFunc {
	return func(r *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(r)
		if err != nil {
			klog.V(6).Infof("HTTP %s %s: %v", r.Method, r.URL, err)
			return resp, err
		}
		klog.V(6).Infof("HTTP %s %s %s", r.Method, r.URL, resp.Status)
		return resp, nil
	}
}

// WithClientRateLimit delays requests to the rate of limiter. Waiting
// stops when the request context is done.
func WithClientRateLimit(next http.RoundTripper, limiter *rate.Limiter) RoundTripperFunc {
	return func(r *http.Request) (*http.Response, error) {
		if err := limiter.Wait(r.Context()); err != nil {
			return nil, err
		}
		return next.RoundTrip(r)
	}
}
