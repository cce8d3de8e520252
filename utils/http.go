package utils

import (
	"context"
	"net/http"
)

// CustomHttpRequest performs a request with the configured User-Agent. An
// empty rangeHeader sends no Range header.
func CustomHttpRequest(ctx context.Context, client *http.Client, method string, url string, userAgent string, rangeHeader string) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = GetEnv("USER_AGENT")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)

	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
