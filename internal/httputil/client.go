// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides shared HTTP clients for the source adapters.
//
// All adapters share one pooled transport; each gets its own client with
// the timeout its source allows. There is no retry layer: a failed or
// timed-out call is attempted exactly once per run, and the adapter
// converts the failure into its no-data result.
package httputil

import (
	"net"
	"net/http"
	"sync"
	"time"
)

var (
	sharedTransport *http.Transport
	transportOnce   sync.Once
)

func transport() *http.Transport {
	transportOnce.Do(func() {
		sharedTransport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	})
	return sharedTransport
}

// NewClient returns a client with the given total-request timeout backed
// by the shared transport. A zero timeout means no limit.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: transport(),
	}
}
