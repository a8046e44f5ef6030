package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/shared"
)

// doRequest is the single choke point for every outbound call. It injects the
// stored bearer credential, retries rate-limited responses with exponential
// backoff (base doubling per attempt, capped at maxRetries extra attempts)
// and, on an authorization failure, wipes the stored credentials and fires
// the session-expired hook before surfacing the error.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, contentType string, body []byte) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}

	// One correlation id per logical call, reused across retries
	requestID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if c.creds != nil {
			if token := c.creds.Token(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
		}

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		closeErr := resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("api: failed to read response: %w", err)
		}
		if closeErr != nil {
			c.logger.Warn("Failed to close response body",
				zap.String("request_id", requestID),
				zap.Error(closeErr))
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			delay := c.retryBase << attempt
			c.logger.Warn("Rate limited, retrying",
				zap.String("request_id", requestID),
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay))
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.expireSession(requestID)
			return nil, decodeError(resp.StatusCode, respBody)
		}

		if resp.StatusCode >= 400 {
			return nil, decodeError(resp.StatusCode, respBody)
		}

		c.logger.Debug("API request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return respBody, nil
	}
}

// expireSession clears stored credentials and notifies the application, once
// per unauthorized response
func (c *Client) expireSession(requestID string) {
	if c.creds != nil {
		if err := c.creds.Clear(); err != nil {
			c.logger.Error("Failed to clear credentials",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
	}
	c.logger.Info("Session expired, credentials cleared",
		zap.String("request_id", requestID))
	if c.onExpired != nil {
		c.onExpired()
	}
}
