// Package provider talks to the scraping gateway that fronts the provider
// catalog. The gateway speaks JSON; scraping itself happens behind it.
package provider

import (
	"bytes"
	"context"
	"errors"
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/structures"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var ErrNotFound = catalog.ErrNotFound

// looseYear accepts 2010, "2010", "2010-07-15", "" and null.
type looseYear struct {
	value *int
}

func (y *looseYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		y.value = catalog.YearFromDate(strings.TrimSpace(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	if n > 0 {
		v := int(n)
		y.value = &v
	}
	return nil
}

// looseID accepts numeric and string ids.
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = looseID(s)
		return nil
	}
	*id = looseID(data)
	return nil
}

type listingPayload struct {
	Slug   string    `json:"slug"`
	Title  string    `json:"title"`
	Year   looseYear `json:"year"`
	Type   string    `json:"type"`
	Poster string    `json:"poster"`
}

type searchPayload struct {
	Results []listingPayload `json:"results"`
}

type detailPayload struct {
	ID          looseID   `json:"id"`
	Title       string    `json:"title"`
	Year        looseYear `json:"year"`
	Description string    `json:"description"`
	Released    string    `json:"released"`
	Genres      []string  `json:"genres"`
	Poster      string    `json:"poster"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on a copy of the current http client,
// so a client passed through WithHTTPClient is left as it was.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			clone := *c.httpClient
			clone.Timeout = timeout
			c.httpClient = &clone
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("provider base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchByTitle returns the gateway's hits in its own order. The gateway may
// answer with a bare array or with {"results": [...]}.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]catalog.Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", title)

	var raw json.RawMessage
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	var items []listingPayload
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode provider search: %w", err)
		}
	} else {
		var wrapped searchPayload
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode provider search: %w", err)
		}
		items = wrapped.Results
	}

	listings := make([]catalog.Listing, 0, len(items))
	for _, item := range items {
		if item.Slug == "" {
			continue
		}
		t, ok := models.ParseContentType(item.Type)
		if !ok {
			t = models.SlugContentType(item.Slug)
		}
		listings = append(listings, catalog.Listing{
			Slug:   item.Slug,
			Title:  item.Title,
			Year:   item.Year.value,
			Type:   t,
			Poster: item.Poster,
		})
	}
	return listings, nil
}

func (c *Client) GetDetails(ctx context.Context, slug string) (catalog.Detail, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return catalog.Detail{}, errors.New("slug must not be empty")
	}
	params := url.Values{}
	params.Set("slug", slug)

	var payload detailPayload
	if err := c.get(ctx, "/details", params, &payload); err != nil {
		return catalog.Detail{}, err
	}
	return catalog.Detail{
		ID:          string(payload.ID),
		Title:       payload.Title,
		Year:        payload.Year.value,
		Description: payload.Description,
		Released:    payload.Released,
		Genres:      payload.Genres,
		Poster:      payload.Poster,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("provider %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider %s returned %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}

// ProvideCatalog builds the gateway client from config.
func ProvideCatalog(conf *structures.Config) (catalog.ProviderCatalog, error) {
	return New(conf.Provider.BaseURL, WithTimeout(conf.Provider.Timeout))
}
