package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
)

// Logger defines the logging operations the qdrant package emits
// connection and query diagnostics through.

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=qdrant
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Client wraps the official Qdrant gRPC client together with the
// collection configuration it operates on. All methods are safe for
// concurrent use; the underlying SDK multiplexes over one connection.
type Client struct {
	api     *qdrant.Client
	cfg     *Config
	logger  Logger
	started bool
}

// NewQdrantClient constructs a connected client and verifies the server
// is reachable. It is registered as an Fx provider and injected wherever
// *Client is a dependency.
func NewQdrantClient(p QdrantParams) (*Client, error) {
	cfg := p.Config
	if cfg.Port == 0 {
		cfg.Port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   cfg.Port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize qdrant client: %w", err)
	}

	c := &Client{
		api:     api,
		cfg:     cfg,
		logger:  p.Logger,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("qdrant health check failed: %w", err)
	}

	return c, nil
}

// healthCheck verifies connectivity and logs the server identity.
func (c *Client) healthCheck() error {
	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}

	c.logger.Info("Connected to Qdrant", nil, map[string]interface{}{
		"title":   resp.Title,
		"version": resp.Version,
	})

	return nil
}

// Close releases the underlying gRPC connection. Safe to call more
// than once.
func (c *Client) Close() {
	if !c.started {
		return
	}
	if err := c.api.Close(); err != nil {
		c.logger.Warn("Failed to close qdrant client cleanly", err, nil)
	}
	c.started = false
	c.logger.Info("Qdrant client closed", nil, nil)
}
