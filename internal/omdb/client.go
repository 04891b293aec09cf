// Package omdb implements the external metadata gateway: it resolves a
// movie title to canonical attributes through the OMDb HTTP API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "http://www.omdbapi.com/"

// Movie is the subset of the OMDb payload the import path consumes. Genre
// and Actors are comma-separated lists exactly as OMDb returns them;
// splitting is left to the caller.
type Movie struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Plot     string `json:"Plot"`
	Genre    string `json:"Genre"`
	Actors   string `json:"Actors"`
	Response string `json:"Response"`
}

// ErrMovieUnavailable indicates that OMDb has no entry for the title.
var ErrMovieUnavailable = errors.New("movie not found in OMDb")

// ErrUpstream indicates a transport failure or an unexpected status from
// OMDb.
var ErrUpstream = errors.New("OMDb request failed")

// Client calls the OMDb API with a fixed API key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub
// server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Fetch resolves a title. It returns ErrMovieUnavailable when OMDb reports
// no match and a wrapped ErrUpstream for transport-level failures.
func (c *Client) Fetch(ctx context.Context, title string) (*Movie, error) {
	q := url.Values{}
	q.Set("t", title)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var m Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if m.Response == "False" {
		return nil, ErrMovieUnavailable
	}
	return &m, nil
}
