package tmdb_test

import (
	"context"
	"errors"
	"flixmap/internal/catalog"
	"flixmap/internal/catalog/tmdb"
	"flixmap/internal/models"
	"flixmap/internal/structures"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := tmdb.New("key", server.URL, "en-US")
	require.NoError(t, err)
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := tmdb.New("  ", "https://example.com", "en-US")
	assert.Error(t, err)
	_, err = tmdb.New("key", "", "en-US")
	assert.Error(t, err)
}

func TestDetails_Movie(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"id":27205,"title":"Inception","release_date":"2010-07-15","popularity":83.1}`))
	})

	res, err := client.Details(context.Background(), "movie", 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception", res.DisplayTitle())
	assert.Equal(t, "2010-07-15", res.Date())
}

func TestDetails_NotFound(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34}`))
	})

	_, err := client.Details(context.Background(), "tv", 1)
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
	assert.True(t, catalog.IsNotFound(err))
}

func TestDetails_ServerErrorIsTransient(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Details(context.Background(), "movie", 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, tmdb.ErrNotFound))
}

func TestDetails_UnknownKind(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	require.NoError(t, err)
	_, err = client.Details(context.Background(), "anime", 1)
	assert.Error(t, err)
}

func TestSearch_PreservesOrder(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/tv", r.URL.Path)
		assert.Equal(t, "Dark", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":70523,"name":"Dark","first_air_date":"2017-12-01"},{"id":2,"name":"Dark Angel"}]}`))
	})

	resp, err := client.Search(context.Background(), "tv", "Dark")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 70523, resp.Results[0].ID)
	assert.Equal(t, "Dark Angel", resp.Results[1].DisplayTitle())
}

func TestSearch_EmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	require.NoError(t, err)
	_, err = client.Search(context.Background(), "movie", "  ")
	assert.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", tmdb.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = client.Details(context.Background(), "movie", 1)
	assert.Error(t, err)
}

func TestClient_TimeoutLeavesSharedClientAlone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	shared := &http.Client{Timeout: time.Minute}
	client, err := tmdb.New("key", server.URL, "", tmdb.WithHTTPClient(shared), tmdb.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = client.Details(context.Background(), "movie", 1)
	assert.Error(t, err)
	assert.Equal(t, time.Minute, shared.Timeout)
}

func TestProvideCatalog_MissingAPIKey(t *testing.T) {
	conf := &structures.Config{Reference: structures.ReferenceConfig{BaseURL: "https://api.themoviedb.org/3"}}
	_, err := tmdb.ProvideCatalog(conf, nil)
	assert.ErrorContains(t, err, "TMDB_API_KEY")
}

func TestCatalog_GetByID(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1399,"name":"Game of Thrones","first_air_date":"2011-04-17","popularity":0.4}`))
	})

	meta, err := tmdb.NewCatalog(client).GetByID(context.Background(), 1399, models.Series)
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", meta.Title)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 2011, *meta.Year)
	assert.InDelta(t, 0.4, meta.Popularity, 1e-9)
}

func TestCatalog_SearchMissingDateHasNoYear(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":5,"title":"Untitled","release_date":""}]}`))
	})

	metas, err := tmdb.NewCatalog(client).SearchByTitle(context.Background(), "Untitled", models.Movie)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Nil(t, metas[0].Year)
}
