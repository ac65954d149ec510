// Package zendesk is a small client for the helpdesk REST API (v2).
package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/config"
)

// Client talks to one helpdesk account using API token authentication.
// Every call is a single attempt; callers decide what a failure means.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a client for cfg.Domain.
func NewClient(cfg config.ZendeskConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Domain, "/") + "/api/v2").
		SetTimeout(cfg.Timeout()).
		SetRetryCount(0).
		SetBasicAuth(cfg.Email+"/token", cfg.APIToken).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, logger: logger}
}

func (c *Client) do(ctx context.Context, method, path string, prepare func(*resty.Request), out any) error {
	req := c.http.R().SetContext(ctx)
	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("zendesk request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	c.logger.Debug("zendesk request",
		zap.String("method", method),
		zap.String("url", resp.Request.URL),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", time.Since(start)))

	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Method: method, Path: path, Body: resp.Body()}
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("zendesk %s %s: decode response: %w", method, path, err)
	}
	return nil
}
