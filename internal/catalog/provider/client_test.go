package provider_test

import (
	"context"
	"flixmap/internal/catalog"
	"flixmap/internal/catalog/provider"
	"flixmap/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *provider.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := provider.New(server.URL + "/")
	require.NoError(t, err)
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := provider.New(" ")
	assert.Error(t, err)
}

func TestWithTimeoutCopiesClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	shared := &http.Client{}
	client, err := provider.New(server.URL, provider.WithHTTPClient(shared), provider.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = client.GetDetails(context.Background(), "movie/watch-heat-555")
	assert.Error(t, err)
	assert.Zero(t, shared.Timeout)
}

func TestSearchByTitle_WrappedResults(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results":[
			{"slug":"movie/watch-inception-19764","title":"Inception","year":2010,"type":"Movie","poster":"p.jpg"},
			{"slug":"tv/watch-inception-x-1","title":"Inception X","year":"2019","type":"TV"},
			{"slug":"movie/watch-unknown-2","title":"Unknown","year":null},
			{"slug":"","title":"broken"}
		]}`))
	})

	listings, err := client.SearchByTitle(context.Background(), "Inception")
	require.NoError(t, err)
	require.Len(t, listings, 3)

	assert.Equal(t, models.Movie, listings[0].Type)
	require.NotNil(t, listings[0].Year)
	assert.Equal(t, 2010, *listings[0].Year)
	assert.Equal(t, "p.jpg", listings[0].Poster)

	assert.Equal(t, models.Series, listings[1].Type)
	require.NotNil(t, listings[1].Year)
	assert.Equal(t, 2019, *listings[1].Year)

	assert.Equal(t, models.Movie, listings[2].Type, "type falls back to the slug")
	assert.Nil(t, listings[2].Year)
}

func TestSearchByTitle_BareArray(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"slug":"tv/watch-dark-1","title":"Dark","type":"tv"}]`))
	})

	listings, err := client.SearchByTitle(context.Background(), "Dark")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "tv/watch-dark-1", listings[0].Slug)
}

func TestSearchByTitle_UpstreamError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := client.SearchByTitle(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, catalog.IsNotFound(err))
}

func TestGetDetails(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details", r.URL.Path)
		assert.Equal(t, "movie/watch-inception-19764", r.URL.Query().Get("slug"))
		_, _ = w.Write([]byte(`{"id":19764,"title":"Inception","description":"Dreams.","released":"2010-07-16","genres":["Action","Sci-Fi"],"poster":"p.jpg"}`))
	})

	detail, err := client.GetDetails(context.Background(), "/movie/watch-inception-19764")
	require.NoError(t, err)
	assert.Equal(t, "19764", detail.ID)
	assert.Equal(t, "Dreams.", detail.Description)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, detail.Genres)
	assert.Nil(t, detail.Year)
}

func TestGetDetails_StringIDAndYear(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"abc","title":"X","year":"2001-01-01"}`))
	})

	detail, err := client.GetDetails(context.Background(), "movie/x-abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", detail.ID)
	require.NotNil(t, detail.Year)
	assert.Equal(t, 2001, *detail.Year)
}

func TestGetDetails_NotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := client.GetDetails(context.Background(), "movie/gone-1")
	assert.ErrorIs(t, err, provider.ErrNotFound)
}
