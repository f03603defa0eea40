// Package oauth talks to the campus intra API, which acts as the identity
// provider for the dashboard and issues tokens for the events feed.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/42roma/monitor/internal/config"
	"github.com/42roma/monitor/internal/entity"
	"go.uber.org/zap"
)

type Client struct {
	cfg        *config.OAuthConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.OAuthConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// AuthURL is where the login page sends the browser to start the flow.
func (c *Client) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "public")
	return c.cfg.AuthorizeURL + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (c *Client) postToken(ctx context.Context, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("oauth.Client: building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oauth.Client: requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oauth.Client: token endpoint returned %s", resp.Status)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("oauth.Client: decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("oauth.Client: token response had no access_token")
	}
	return tok.AccessToken, nil
}

// Token fetches a client-credentials token for the server-side feeds.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	return c.postToken(ctx, form)
}

// ExchangeCode completes the login flow: it trades the authorization code
// for a token and resolves the caller's identity from /v2/me.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*entity.Identity, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	token, err := c.postToken(ctx, form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/v2/me", nil)
	if err != nil {
		return nil, fmt.Errorf("oauth.Client.ExchangeCode: building me request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth.Client.ExchangeCode: fetching user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth.Client.ExchangeCode: me endpoint returned %s", resp.Status)
	}

	var user struct {
		Login string `json:"login"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("oauth.Client.ExchangeCode: decoding user: %w", err)
	}

	c.logger.Info("OAuth login completed", zap.String("login", user.Login), zap.String("kind", user.Kind))
	return &entity.Identity{Login: user.Login, Kind: user.Kind}, nil
}
