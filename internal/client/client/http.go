package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	pathDiscover      = "discover/movie"
	pathMovie         = "movie/"
	pathConfiguration = "configuration"

	detailsLanguage = "en-US"
)

// HTTPClient implements Client over the catalog's REST API with bearer auth.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient returns a client for baseURL (e.g. https://api.themoviedb.org/3).
// timeout bounds each request; zero means no client-side timeout.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchPage(ctx context.Context, req PageRequest) (*PageResponse, error) {
	if req.Page < 1 {
		return nil, fmt.Errorf("%w: invalid page %d", ErrProtocol, req.Page)
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = SortPopularityDesc
	}
	q.Set("sort_by", sortBy)
	if req.ReleaseYear != nil {
		q.Set("primary_release_year", strconv.Itoa(*req.ReleaseYear))
	}
	if req.MinRating != nil {
		q.Set("vote_average.gte", strconv.FormatFloat(*req.MinRating, 'f', -1, 64))
	}

	var resp PageResponse
	if err := c.get(ctx, pathDiscover, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) FetchMovie(ctx context.Context, id int) (*MovieDTO, error) {
	q := url.Values{}
	q.Set("language", detailsLanguage)

	var m MovieDTO
	if err := c.get(ctx, pathMovie+strconv.Itoa(id), q, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var v map[string]any
	return c.get(ctx, pathConfiguration, nil, &v)
}

type statusBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mapTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrProtocol, path, err)
	}
	return nil
}

// mapTransportError keeps caller cancellation distinguishable and folds
// everything else that prevented a response into ErrUnavailable.
func mapTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func mapStatus(code int, body []byte) error {
	var sb statusBody
	msg := http.StatusText(code)
	if json.Unmarshal(body, &sb) == nil && sb.StatusMessage != "" {
		msg = sb.StatusMessage
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %d %s", ErrUnauthorized, code, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %d %s", ErrNotFound, code, msg)
	default:
		return fmt.Errorf("%w: unexpected status %d %s", ErrProtocol, code, msg)
	}
}
