package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

const syncAPIPrefix = "/api/sync"

type controlClient struct {
	client  *utils.HTTPClient
	baseURL string
	logger  *logger.Logger
}

// NewControlClient returns a [ControlAPI] for the engine listening on
// address, given either as host:port or as a URL.
func NewControlClient(address string, timeout time.Duration, logger *logger.Logger) (ControlAPI, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid control API address: %w", err)
	}

	client := utils.NewHTTPClient(timeout)
	client.SetBaseURL(baseURL + syncAPIPrefix)

	return &controlClient{
		client:  client,
		baseURL: baseURL,
		logger:  logger.WithComponent("control-client"),
	}, nil
}

func (c *controlClient) Status(ctx context.Context) (models.EngineStatus, error) {
	var status models.EngineStatus
	if err := c.get(ctx, "/status", &status); err != nil {
		return models.EngineStatus{}, err
	}
	return status, nil
}

func (c *controlClient) FailedChanges(ctx context.Context) ([]models.LocalChange, error) {
	var resp models.ChangesResponse
	if err := c.get(ctx, "/changes/failed", &resp); err != nil {
		return nil, err
	}
	return resp.Changes, nil
}

func (c *controlClient) Connect(ctx context.Context) error {
	return c.post(ctx, "/connect", nil, nil)
}

func (c *controlClient) Disconnect(ctx context.Context) error {
	return c.post(ctx, "/disconnect", nil, nil)
}

func (c *controlClient) Flush(ctx context.Context) error {
	return c.post(ctx, "/flush", nil, nil)
}

func (c *controlClient) RetryFailed(ctx context.Context) (int64, error) {
	var resp models.CountResponse
	if err := c.post(ctx, "/changes/retry", models.RetryRequest{}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *controlClient) Resync(ctx context.Context) error {
	return c.post(ctx, "/resync", nil, nil)
}

func (c *controlClient) get(ctx context.Context, path string, result any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		c.logger.Err(err).Str("func", "*controlClient.get").Str("path", path).Msg("request failed")
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (c *controlClient) post(ctx context.Context, path string, body, result any) error {
	req := c.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		c.logger.Err(err).Str("func", "*controlClient.post").Str("path", path).Msg("request failed")
		return fmt.Errorf("POST %s: %w", path, err)
	}
	return mapHTTPError(resp)
}
