// Package feeds pulls the remote data shown on the dashboard map: machine
// online/offline status from YAML endpoints, a local events JSON endpoint
// and upcoming campus events from the intra API. Every fetch has a short
// timeout and degrades to an empty result so the map always renders.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/42roma/monitor/internal/config"
	"github.com/42roma/monitor/internal/entity"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Client struct {
	cfg        *config.FeedsConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.FeedsConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feeds.Client: building request for %s: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feeds.Client: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feeds.Client: %s returned %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// machineList reads a YAML machine-status payload and extracts the list
// under key, falling back to any list found when the key is absent.
func (c *Client) machineList(ctx context.Context, url, key string) []string {
	data, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.Warn("Machine status feed unavailable", zap.String("url", url), zap.Error(err))
		return nil
	}

	var parsed map[string][]string
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		c.logger.Warn("Malformed machine status feed", zap.String("url", url), zap.Error(err))
		return nil
	}
	if pcs, ok := parsed[key]; ok {
		return pcs
	}
	for _, pcs := range parsed {
		return pcs
	}
	return nil
}

// OfflinePCs lists machines currently marked offline.
func (c *Client) OfflinePCs(ctx context.Context) []string {
	return c.machineList(ctx, c.cfg.SiteURL+"/offline", "offline")
}

// OnlinePCs lists machines currently in use.
func (c *Client) OnlinePCs(ctx context.Context) []string {
	return c.machineList(ctx, c.cfg.SiteURL+"/online", "used")
}

// Events reads the local events JSON endpoint.
func (c *Client) Events(ctx context.Context) []entity.Event {
	data, err := c.fetch(ctx, c.cfg.SiteURL+"/get")
	if err != nil {
		c.logger.Warn("Events feed unavailable", zap.Error(err))
		return nil
	}
	var events []entity.Event
	if err := json.Unmarshal(data, &events); err != nil {
		c.logger.Warn("Malformed events feed", zap.Error(err))
		return nil
	}
	return events
}

const intraTimeLayout = "2006-01-02T15:04:05.000Z"

// UpcomingCampusEvents fetches campus events from the intra API within the
// configured lookahead window, keeping only ones that begin in the future.
func (c *Client) UpcomingCampusEvents(ctx context.Context, apiBaseURL, token string, now time.Time) []entity.Event {
	if token == "" {
		return nil
	}

	from := now.UTC().Format(intraTimeLayout)
	to := now.UTC().AddDate(0, 0, c.cfg.LookaheadDays).Format(intraTimeLayout)
	url := fmt.Sprintf("%s/v2/campus/%d/cursus/%d/events?filter[begin_at]=%s,%s",
		apiBaseURL, c.cfg.CampusID, c.cfg.CursusID, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("Failed to build campus events request", zap.Error(err))
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Campus events feed unavailable", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Campus events feed returned error", zap.String("status", resp.Status))
		return nil
	}

	var all []entity.Event
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		c.logger.Warn("Malformed campus events feed", zap.Error(err))
		return nil
	}

	upcoming := make([]entity.Event, 0, len(all))
	for _, e := range all {
		begin, err := time.Parse(intraTimeLayout, e.BeginAt)
		if err != nil || !begin.After(now) {
			continue
		}
		upcoming = append(upcoming, e)
	}
	return upcoming
}
