// Package paypal implements the outbound REST client for the PayPal
// billing API: OAuth token management, webhook signature verification,
// catalog/plan creation, and subscription lookups.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/config"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

const (
	defaultTimeout = 15 * time.Second

	// tokenSafetyBuffer is subtracted from the advertised token lifetime
	// so an in-flight request never rides an about-to-expire token.
	tokenSafetyBuffer = 60 * time.Second

	// maxResponseSize caps provider response bodies (1MB).
	maxResponseSize = 1 << 20
)

// Client talks to the PayPal REST API. It caches a single OAuth access
// token behind a mutex; concurrent callers share one token fetch result.
type Client struct {
	httpClient *http.Client
	cfg        config.PayPalConfig
	logger     logger.Interface

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg config.PayPalConfig, log logger.Interface) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		logger:     log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// SetTokenForTest seeds the token cache so tests can bypass the OAuth
// round trip.
func (c *Client) SetTokenForTest(token string, expiry time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
	c.tokenExpiry = expiry
}

// getAccessToken returns a cached token or fetches a fresh one. A fetch
// failure clears the slot so the next caller retries from scratch.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := biztime.NowUTC()
	if c.accessToken != "" && now.Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	c.accessToken = ""
	c.tokenExpiry = time.Time{}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(raw))
	}

	var tr tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access token")
	}

	c.accessToken = tr.AccessToken
	c.tokenExpiry = now.Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSafetyBuffer)

	c.logger.Debugw("fetched provider access token", "expires_in", tr.ExpiresIn)
	return c.accessToken, nil
}

// doJSON executes an authenticated JSON request and decodes the response
// into out when out is non-nil. Any non-2xx status is an error.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		c.logger.Warnw("provider request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}
