package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient builds the shared transport. A zero timeout leaves requests
// unbounded; long AI completions on the chat endpoint rely on that.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
