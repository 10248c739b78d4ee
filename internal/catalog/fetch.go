package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hemant18-09/DOCai/internal/model"
)

const maxResponseBytes = 2 << 20 // 2 MiB; signal documents are small

// Client talks to the remote signals service. All methods are bounded
// by the configured timeout; callers treat any error as "keep using the
// current snapshot".
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *gocache.Cache
}

// NewClient creates a signals client for the given base URL
// (e.g. http://localhost:8080). Per-category lookups are cached for
// cacheTTL to keep UI-driven polling off the service.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// envelope is the response wrapper the signals service uses.
type envelope struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message,omitempty"`
	Data     *model.Catalog       `json:"data,omitempty"`
	Category string               `json:"category,omitempty"`
	Symptoms []model.SignalPhrase `json:"symptoms,omitempty"`
	Contexts []string             `json:"contexts,omitempty"`
}

// Fetch retrieves the full catalog document.
func (c *Client) Fetch(ctx context.Context) (*model.Catalog, error) {
	var env envelope
	if err := c.get(ctx, "/api/signals", &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, fmt.Errorf("signals service returned no catalog")
	}
	return env.Data, nil
}

// SymptomCategory retrieves one symptom category's phrase list.
func (c *Client) SymptomCategory(ctx context.Context, name string) ([]model.SignalPhrase, error) {
	key := "symptom:" + name
	if v, ok := c.cache.Get(key); ok {
		return v.([]model.SignalPhrase), nil
	}

	var env envelope
	if err := c.get(ctx, "/api/signals/symptom/"+name, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("signals service: %s", env.Message)
	}
	c.cache.SetDefault(key, env.Symptoms)
	return env.Symptoms, nil
}

// ContextCategory retrieves one context category's phrase list.
func (c *Client) ContextCategory(ctx context.Context, name string) ([]string, error) {
	key := "context:" + name
	if v, ok := c.cache.Get(key); ok {
		return v.([]string), nil
	}

	var env envelope
	if err := c.get(ctx, "/api/signals/context/"+name, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("signals service: %s", env.Message)
	}
	c.cache.SetDefault(key, env.Contexts)
	return env.Contexts, nil
}

// Init asks the service to seed its store with the default catalog.
func (c *Client) Init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/signals/init", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, nil)
}

// Replace pushes a full catalog document to the service.
func (c *Client) Replace(ctx context.Context, cat *model.Catalog) error {
	body, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/signals", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.cache.Flush()
	return c.do(req, nil)
}

func (c *Client) get(ctx context.Context, path string, out *envelope) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out *envelope) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("signals request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("signals request: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
