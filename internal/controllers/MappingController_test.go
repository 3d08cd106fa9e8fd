package controllers

import (
	"errors"
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/testutil"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward_LiveThenCache(t *testing.T) {
	s := newTestServer(t)
	s.addInception()

	rr := s.do(http.MethodGet, "/map/tmdb/27205?type=movie", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decode(t, rr)
	assert.Equal(t, true, body["found"])
	assert.Equal(t, "live", body["source"])
	assert.Equal(t, float64(27205), body["tmdb_id"])
	assert.Equal(t, "movie/watch-inception-19764", body["flix_slug"])
	assert.Equal(t, "https://flixhq.to/movie/watch-inception-19764", body["flix_url"])
	assert.Equal(t, float64(2010), body["flix_year"])
	assert.NotContains(t, body, "poster")

	rr = s.do(http.MethodGet, "/map/tmdb/27205", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cache", decode(t, rr)["source"])
}

func TestForward_Errors(t *testing.T) {
	s := newTestServer(t)
	s.addInception()
	s.reference.Add(models.Movie, catalog.ReferenceMeta{ID: 7, Title: "Unlisted"})

	cases := []struct {
		name   string
		target string
		status int
		msg    string
	}{
		{"non numeric id", "/map/tmdb/abc", http.StatusBadRequest, "Invalid TMDB ID"},
		{"bad type", "/map/tmdb/1?type=anime", http.StatusBadRequest, "type must be movie or tv"},
		{"unknown id", "/map/tmdb/999", http.StatusNotFound, "Invalid TMDB ID"},
		{"no provider match", "/map/tmdb/7", http.StatusNotFound, "Not found on FlixHQ"},
		{"wrong type", "/map/tmdb/27205?type=tv", http.StatusNotFound, "Invalid TMDB ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := s.do(http.MethodGet, tc.target, "")
			assert.Equal(t, tc.status, rr.Code)
			body := decode(t, rr)
			assert.Equal(t, false, body["found"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestForward_PersistFailureIs500(t *testing.T) {
	file := &testutil.MemorySnapshot{}
	file.Fail(errors.New("disk full"))
	s := newTestServerWith(t, file)
	s.addInception()

	rr := s.do(http.MethodGet, "/map/tmdb/27205", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error", decode(t, rr)["error"])
	assert.Zero(t, s.mappings.Len())
}

func TestReverse(t *testing.T) {
	s := newTestServer(t)
	s.provider.Details["tv/watch-dark-19801"] = catalog.Detail{ID: "19801", Title: "Dark", Year: testutil.Year(2017)}
	s.reference.Results["tv:Dark"] = []catalog.ReferenceMeta{{ID: 70523, Title: "Dark", Year: testutil.Year(2017)}}

	rr := s.do(http.MethodGet, "/map/flix/tv/watch-dark-19801", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode(t, rr)
	assert.Equal(t, "live_reverse", body["source"])
	assert.Equal(t, float64(70523), body["tmdb_id"])
	assert.Equal(t, "tv", body["type"])

	rr = s.do(http.MethodGet, "/map/flix/tv/watch-dark-19801", "")
	assert.Equal(t, "cache", decode(t, rr)["source"])

	rr = s.do(http.MethodGet, "/map/flix/movie/unknown-1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "TMDB match not found for this FlixHQ content", decode(t, rr)["error"])
}

func TestLatest(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/getlatest?type=descending", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"id": float64(0), "found": false}, decode(t, rr))

	for _, id := range []int{5, 1, 2, 3, 7} {
		_, err := s.mappings.Append(models.Mapping{TmdbID: id, Type: models.Movie, FlixSlug: fmt.Sprintf("movie/m-%d", id)})
		require.NoError(t, err)
	}
	_, err := s.mappings.Append(models.Mapping{TmdbID: 4, Type: models.Series, FlixSlug: "tv/s-4"})
	require.NoError(t, err)

	cases := map[string]float64{
		"/getlatest?type=ascending":                1,
		"/getlatest?type=descending&content=movie": 3,
		"/getlatest?type=descending":               5,
		"/getlatest":                               7,
		"/getlatest?type=other&content=tv":         4,
	}
	for target, want := range cases {
		rr := s.do(http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rr.Code, target)
		assert.Equal(t, map[string]any{"id": want}, decode(t, rr), target)
	}

	rr = s.do(http.MethodGet, "/getlatest?content=anime", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
