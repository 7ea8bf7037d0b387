package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outbound request of the engine.
const UserAgent = "go-sync-engine"

// HTTPClient is the resty client used for the auth service, the network
// probe and the control API client.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client carrying [UserAgent]. A
// positive timeout bounds every request.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().SetHeader("User-Agent", UserAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
