// internal/catalog/http.go
//
// Client for the KinoGuessr backend.
//
// Endpoints:
//   GET /api/get_film_names/       → ["Inception", ...]
//   GET /api/get_film_indexes/     → [1, 2, ...] (numbers or strings)
//   GET /api/get_film_details/{id} → {"title","actors":[paths],"poster":path}
//   GET /api/get_random_film/      → same shape as details
//
// Image paths are served relative to the backend, so they are joined with the
// base URL before a film leaves this package.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/robalobadob/kinoguessr/internal/game"
)

// HTTPClient talks to the film backend over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient returns a client for the backend at baseURL
// (e.g. "http://localhost:8000").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListFilmNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "/api/get_film_names/", &names); err != nil {
		return nil, fmt.Errorf("list film names: %w", err)
	}
	return names, nil
}

func (c *HTTPClient) ListFilmIdentifiers(ctx context.Context) ([]string, error) {
	var raw []any
	if err := c.getJSON(ctx, "/api/get_film_indexes/", &raw); err != nil {
		return nil, fmt.Errorf("list film identifiers: %w", err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		switch id := v.(type) {
		case json.Number:
			ids = append(ids, id.String())
		case string:
			ids = append(ids, id)
		default:
			return nil, fmt.Errorf("list film identifiers: unexpected id %v (%T)", v, v)
		}
	}
	return ids, nil
}

func (c *HTTPClient) GetFilmDetails(ctx context.Context, id string) (game.Film, error) {
	return c.getFilm(ctx, "/api/get_film_details/"+url.PathEscape(id))
}

func (c *HTTPClient) GetRandomFilm(ctx context.Context) (game.Film, error) {
	return c.getFilm(ctx, "/api/get_random_film/")
}

func (c *HTTPClient) getFilm(ctx context.Context, path string) (game.Film, error) {
	var r Record
	if err := c.getJSON(ctx, path, &r); err != nil {
		return game.Film{}, fmt.Errorf("get %s: %w", path, err)
	}
	for i, a := range r.Actors {
		r.Actors[i] = c.absolute(a)
	}
	if r.Poster != "" {
		r.Poster = c.absolute(r.Poster)
	}
	return r.Film()
}

// absolute prefixes backend-relative paths with the base URL.
func (c *HTTPClient) absolute(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return c.baseURL + p
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
