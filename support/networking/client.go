package networking

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultClientTimeout bounds a single request made through the client
const DefaultClientTimeout = 10 * time.Second

type httpClient struct {
	client *http.Client
}

// NewHttpClient makes a client with the DefaultClientTimeout
func NewHttpClient() *httpClient {
	return NewHttpClientWithTimeout(DefaultClientTimeout)
}

// NewHttpClientWithTimeout makes a client that gives up on requests after timeout
func NewHttpClientWithTimeout(timeout time.Duration) *httpClient {
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches the body at url, any status other than 200 is an error
func (hc httpClient) Get(url string) ([]byte, error) {
	res, err := hc.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("http client error: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http client error: status code %d", res.StatusCode)
	}

	bytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("http client error: could not read body %w", err)
	}

	return bytes, nil
}
