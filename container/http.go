package container

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultHTTPClient returns the transport used when none is injected:
// a retrying client that backs off on connection errors and 5xx
// responses. Transport-level retries are invisible to the pipeline,
// which only ever sees the final response of an exchange.
func DefaultHTTPClient(timeout time.Duration) HTTPClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 10 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	client := rc.StandardClient()
	return client
}

var _ HTTPClient = (*http.Client)(nil)
