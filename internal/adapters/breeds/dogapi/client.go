package dogapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kennel-console/internal/platform/httpclient"
)

var (
	ErrUnauthorized = errors.New("dog api unauthorized")
	ErrUpstream     = errors.New("dog api upstream error")
)

const DefaultBaseURL = "https://api.thedogapi.com"

type Config struct {
	BaseURL string
	// Opcional: el endpoint de búsqueda funciona sin key, con límites más bajos.
	APIKey  string
	Timeout time.Duration

	// Opcional (tests).
	Transport http.RoundTripper
}

// Client implementa breeds.Searcher contra thedogapi.com.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	header := http.Header{}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		header.Set("x-api-key", key)
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   timeout,
		Header:    header,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("dogapi: %w", err)
	}
	return &Client{http: hc}, nil
}

type breed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Search llama GET /v1/breeds/search?q=prefix y devuelve los nombres.
func (c *Client) Search(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}

	var items []breed
	err := c.http.GetJSON(ctx, "/v1/breeds/search", url.Values{"q": {prefix}}, &items)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Name)
	}
	return out, nil
}
