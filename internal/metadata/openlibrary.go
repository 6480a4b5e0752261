// Package metadata looks up book summaries and author details on OpenLibrary.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://openlibrary.org"
	DefaultCoversURL = "https://covers.openlibrary.org"
	DefaultTimeout   = 8 * time.Second

	userAgent = "Homebranch (self-hosted e-book library)"
)

// errNotFound is returned when OpenLibrary has no matching record.
var errNotFound = errors.New("not found")

// Options configures an OpenLibraryClient. Zero values fall back to the
// public OpenLibrary endpoints, an 8 second timeout and one request per second.
type Options struct {
	BaseURL           string
	CoversURL         string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// OpenLibraryClient is a thin, rate-limited client for the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	limiter    *rate.Limiter
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate limiting.
func NewOpenLibraryClient(opts Options) *OpenLibraryClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CoversURL == "" {
		opts.CoversURL = DefaultCoversURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	limit := rate.Limit(opts.RequestsPerSecond)
	switch {
	case opts.RequestsPerSecond < 0:
		limit = rate.Inf
	case opts.RequestsPerSecond == 0:
		limit = rate.Limit(1)
	}

	return &OpenLibraryClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		coversURL:  strings.TrimRight(opts.CoversURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// SearchWork returns the key of the best work matching title and author,
// e.g. "/works/OL893415W".
func (c *OpenLibraryClient) SearchWork(ctx context.Context, title, author string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("title is required")
	}

	params := url.Values{}
	params.Set("title", title)
	if author != "" {
		params.Set("author", author)
	}
	params.Set("limit", "1")

	var res workSearchResult
	if err := c.getJSON(ctx, c.baseURL+"/search.json?"+params.Encode(), &res); err != nil {
		return "", fmt.Errorf("search works: %w", err)
	}
	if len(res.Docs) == 0 || res.Docs[0].Key == "" {
		return "", errNotFound
	}
	return res.Docs[0].Key, nil
}

// WorkDescription fetches the description of a work.
func (c *OpenLibraryClient) WorkDescription(ctx context.Context, workKey string) (string, error) {
	key := strings.TrimPrefix(workKey, "/works/")

	var work struct {
		Description textValue `json:"description"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/works/%s.json", c.baseURL, url.PathEscape(key)), &work); err != nil {
		return "", fmt.Errorf("fetch work: %w", err)
	}
	if work.Description == "" {
		return "", errNotFound
	}
	return string(work.Description), nil
}

// SearchAuthor returns the OpenLibrary ID (e.g. "OL79034A") of the author
// whose name equals name ignoring case, or of the first result otherwise.
func (c *OpenLibraryClient) SearchAuthor(ctx context.Context, name string) (string, error) {
	var res authorSearchResult
	if err := c.getJSON(ctx, c.baseURL+"/search/authors.json?q="+url.QueryEscape(name), &res); err != nil {
		return "", fmt.Errorf("search authors: %w", err)
	}
	if len(res.Docs) == 0 {
		return "", errNotFound
	}

	match := res.Docs[0]
	for _, doc := range res.Docs {
		if strings.EqualFold(doc.Name, name) {
			match = doc
			break
		}
	}
	if match.Key == "" {
		return "", errNotFound
	}
	return strings.TrimPrefix(match.Key, "/authors/"), nil
}

// AuthorBiography fetches the biography of the author with the given ID.
func (c *OpenLibraryClient) AuthorBiography(ctx context.Context, olid string) (string, error) {
	var author struct {
		Bio textValue `json:"bio"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/authors/%s.json", c.baseURL, url.PathEscape(olid)), &author); err != nil {
		return "", fmt.Errorf("fetch author: %w", err)
	}
	if author.Bio == "" {
		return "", errNotFound
	}
	return string(author.Bio), nil
}

// AuthorPhotoURL returns the large photo URL of the author if OpenLibrary
// has one.
func (c *OpenLibraryClient) AuthorPhotoURL(ctx context.Context, olid string) (string, error) {
	photoURL := fmt.Sprintf("%s/a/olid/%s-L.jpg", c.coversURL, url.PathEscape(olid))

	resp, err := c.do(ctx, http.MethodHead, photoURL+"?default=false")
	if err != nil {
		return "", fmt.Errorf("check author photo: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errNotFound
	}
	return photoURL, nil
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *OpenLibraryClient) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.httpClient.Do(req)
}

// textValue decodes OpenLibrary text fields, which are either a plain
// string or an object of the form {"type": "/type/text", "value": "..."}.
type textValue string

func (t *textValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = textValue(strings.TrimSpace(s))
		return nil
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = textValue(strings.TrimSpace(obj.Value))
	return nil
}

// OpenLibrary API response types (internal)

type workSearchResult struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key   string `json:"key"`
		Title string `json:"title"`
	} `json:"docs"`
}

type authorSearchResult struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"docs"`
}
