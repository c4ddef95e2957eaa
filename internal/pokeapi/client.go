// Package pokeapi fetches the creature catalog from a PokeAPI-compatible
// JSON API: one collection request followed by a detail request per entry.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/bestiary/internal/model"
)

// ErrUnexpectedStatus is matched by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a non-2xx response from the remote API.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s %d", e.URL, ErrUnexpectedStatus, e.StatusCode)
}

func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedStatus }

// Config configures a Client.
type Config struct {
	BaseURL        string
	CollectionPath string
	PageSize       int
	Timeout        time.Duration
	// MaxConcurrent bounds the detail fan-out. Zero means unbounded.
	MaxConcurrent int
	HTTPClient    *http.Client
}

// Client talks to the remote catalog API.
type Client struct {
	baseURL        string
	collectionPath string
	pageSize       int
	maxConcurrent  int
	http           *http.Client
}

// Summary is one entry of the collection listing.
type Summary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type collectionResponse struct {
	Results []Summary `json:"results"`
}

type detailResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// NewClient creates a client, applying defaults for zero config fields.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = model.DefaultAPIBaseURL
	}
	if cfg.CollectionPath == "" {
		cfg.CollectionPath = model.DefaultCollectionPath
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = model.DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = model.DefaultRequestTimeout
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		collectionPath: strings.Trim(cfg.CollectionPath, "/"),
		pageSize:       cfg.PageSize,
		maxConcurrent:  cfg.MaxConcurrent,
		http:           hc,
	}, nil
}

// CollectionURL returns the URL of the fixed-size collection page.
func (c *Client) CollectionURL() string {
	return c.baseURL + "/" + c.collectionPath + "?limit=" + strconv.Itoa(c.pageSize)
}

// FetchCollection fetches the collection summary page.
func (c *Client) FetchCollection(ctx context.Context) ([]Summary, error) {
	var resp collectionResponse
	if err := c.getJSON(ctx, c.CollectionURL(), &resp); err != nil {
		return nil, fmt.Errorf("fetching collection: %w", err)
	}
	return resp.Results, nil
}

// FetchDetail fetches one detail record and converts it to an Item.
func (c *Client) FetchDetail(ctx context.Context, detailURL string) (model.Item, error) {
	var resp detailResponse
	if err := c.getJSON(ctx, detailURL, &resp); err != nil {
		return model.Item{}, fmt.Errorf("fetching detail: %w", err)
	}

	item := model.Item{
		ID:         resp.ID,
		Name:       resp.Name,
		ImageURL:   resp.Sprites.FrontDefault,
		Categories: make([]string, 0, len(resp.Types)),
	}
	for _, t := range resp.Types {
		item.Categories = append(item.Categories, t.Type.Name)
	}
	return item, nil
}

// LoadCatalog fetches the collection and then every detail record
// concurrently. It waits for all detail fetches to settle; if any failed the
// whole load fails and no items are returned. A failed fetch does not cancel
// its siblings. Items are returned in collection order.
func (c *Client) LoadCatalog(ctx context.Context) ([]model.Item, error) {
	summaries, err := c.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, len(summaries))
	var g errgroup.Group
	if c.maxConcurrent > 0 {
		g.SetLimit(c.maxConcurrent)
	}
	for i, s := range summaries {
		g.Go(func() error {
			item, err := c.FetchDetail(ctx, s.URL)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return nil
}
