package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
)

type httpNetworkProbe struct {
	client *utils.HTTPClient
	url    string
	logger *logger.Logger
}

// NewNetworkProbe returns a [NetworkProbe] issuing HEAD requests to url. Any
// HTTP answer, whatever its status, means the network is up.
func NewNetworkProbe(url string, timeout time.Duration, logger *logger.Logger) NetworkProbe {
	client := utils.NewHTTPClient(timeout)

	return &httpNetworkProbe{
		client: client,
		url:    url,
		logger: logger,
	}
}

func (p *httpNetworkProbe) Reachable(ctx context.Context) bool {
	resp, err := p.client.R().SetContext(ctx).Head(p.url)
	if err != nil {
		p.logger.Debug().Err(err).Str("url", p.url).Msg("probe failed")
		return false
	}

	p.logger.Debug().Int("status", resp.StatusCode()).Str("url", p.url).Msg("probe answered")
	return true
}
