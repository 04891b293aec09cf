package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Inception", r.URL.Query().Get("t"))
		assert.Equal(t, "k123", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Title": "Inception",
			"Year": "2010",
			"Plot": "A thief who steals corporate secrets.",
			"Genre": "Action, Sci-Fi",
			"Actors": "Leonardo DiCaprio, Joseph Gordon-Levitt",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k123", srv.URL)
	m, err := c.Fetch(context.Background(), "Inception")
	require.NoError(t, err)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, "Action, Sci-Fi", m.Genre)
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k123", srv.URL)
	_, err := c.Fetch(context.Background(), "No Such Movie")
	require.ErrorIs(t, err, ErrMovieUnavailable)
}

func TestFetchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k123", srv.URL)
	_, err := c.Fetch(context.Background(), "Inception")
	require.ErrorIs(t, err, ErrUpstream)

	// Unreachable server is also an upstream failure.
	srv.Close()
	_, err = c.Fetch(context.Background(), "Inception")
	require.ErrorIs(t, err, ErrUpstream)
}
