package service

import (
	"net/http"
	"time"
)

// NewHTTPClient builds the HTTP client shared by submit, poll, and analyze
// calls. The client talks to a single backend, so idle connections are pooled
// and reused across poll ticks instead of being redialed every second.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
