package client

import (
	"context"
	"net/http"

	"thought-diary-cli/internal/models"
)

// Health — публичная проверка живости API.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/health",
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}

// Version — публичная информация о версии API.
func (c *Client) Version(ctx context.Context) (*models.Version, error) {
	var out models.Version
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/version",
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}
