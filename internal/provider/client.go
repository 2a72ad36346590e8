package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openmohaa/forecast-api/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRPS     = 10
	maxBodyBytes   = 4 << 20
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Config configures a provider Client
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	RPS     int
	Logger  *zap.Logger
}

// Client talks to the external statistics provider. It serves both as the
// Tier-1 stats provider and as an entity source for the resolver.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.SugaredLogger
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
		logger:  logger.Sugar(),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debugw("Provider request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(respBody)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: snippet}
	}
	return respBody, nil
}

// QueryStats fetches the raw statistics document for a team. The payload
// shape is not interpreted here.
func (c *Client) QueryStats(ctx context.Context, id string, filter models.StatsFilter) (json.RawMessage, error) {
	q := url.Values{}
	if filter.TimeWindow != "" {
		q.Set("timeWindow", filter.TimeWindow)
	}
	path := "/teams/" + url.PathEscape(id) + "/statistics"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// teamDTO is the provider's team shape. IDs arrive as numbers or strings.
type teamDTO struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	ShortName string          `json:"nameShortened"`
	Aliases   []string        `json:"aliases"`
}

func (t teamDTO) entity() (models.CanonicalEntity, bool) {
	id := strings.Trim(strings.TrimSpace(string(t.ID)), `"`)
	if id == "" || id == "null" || t.Name == "" {
		return models.CanonicalEntity{}, false
	}
	return models.CanonicalEntity{
		ID:           id,
		Name:         t.Name,
		ShortName:    t.ShortName,
		AliasesKnown: t.Aliases,
	}, true
}

// decodeTeams accepts either a bare array or {"teams": [...]}
func decodeTeams(body []byte) ([]teamDTO, error) {
	var teams []teamDTO
	if err := json.Unmarshal(body, &teams); err == nil {
		return teams, nil
	}
	var wrapped struct {
		Teams []teamDTO `json:"teams"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	return wrapped.Teams, nil
}

// ListEntities returns every team the provider knows about
func (c *Client) ListEntities(ctx context.Context) ([]models.CanonicalEntity, error) {
	body, err := c.do(ctx, http.MethodGet, "/teams", nil)
	if err != nil {
		return nil, err
	}
	teams, err := decodeTeams(body)
	if err != nil {
		return nil, err
	}

	entities := make([]models.CanonicalEntity, 0, len(teams))
	for _, t := range teams {
		if e, ok := t.entity(); ok {
			entities = append(entities, e)
		}
	}
	return entities, nil
}

// FindEntity looks a team up by exact name (case-insensitive). Returns nil, nil
// when the provider has no such team.
func (c *Client) FindEntity(ctx context.Context, name string) (*models.CanonicalEntity, error) {
	body, err := c.do(ctx, http.MethodGet, "/teams/search?name="+url.QueryEscape(name), nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	teams, err := decodeTeams(body)
	if err != nil {
		return nil, err
	}

	for _, t := range teams {
		if !strings.EqualFold(t.Name, name) {
			continue
		}
		if e, ok := t.entity(); ok {
			return &e, nil
		}
	}
	return nil, nil
}
