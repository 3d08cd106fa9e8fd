package controllers

import (
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/services"
	"flixmap/internal/structures"
	"flixmap/internal/testutil"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

const secret = "s3cret"

type testServer struct {
	mux       *http.ServeMux
	mappings  *models.MappingStore
	skips     *models.SkipStore
	reference *testutil.MockReference
	provider  *testutil.MockProvider
	logger    *testutil.MockLogger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, &testutil.MemorySnapshot{})
}

func newTestServerWith(t *testing.T, mappingsFile models.Snapshotter) *testServer {
	t.Helper()
	conf := &structures.Config{
		Provider: structures.ProviderConfig{SiteURL: "https://flixhq.to"},
		Skip:     structures.SkipConfig{AdminSecret: secret},
	}
	s := &testServer{
		mux:       http.NewServeMux(),
		mappings:  models.NewMappingStore(mappingsFile),
		skips:     models.NewSkipStore(&testutil.MemorySnapshot{}),
		reference: testutil.NewMockReference(),
		provider:  testutil.NewMockProvider(),
		logger:    &testutil.MockLogger{},
	}
	metrics := testutil.NewMockMetrics()
	mapper := services.NewMappingService(conf, s.mappings, s.reference, s.provider, s.logger, metrics)
	skipper := services.NewSkipService(conf, s.skips, s.logger, metrics)

	mc := NewMappingController(s.logger, mapper, s.mappings)
	sc := NewSkipController(s.logger, skipper)
	hc := NewHealthController(s.mappings, s.skips)

	s.mux.HandleFunc("GET /map/tmdb/{id}", mc.Forward)
	s.mux.HandleFunc("GET /map/flix/{slug...}", mc.Reverse)
	s.mux.HandleFunc("GET /getlatest", mc.Latest)
	s.mux.HandleFunc("GET /skip/{id}/{season}/{episode}", sc.Best)
	s.mux.HandleFunc("POST /skip/{id}/{season}/{episode}", sc.Submit)
	s.mux.HandleFunc("DELETE /skip/{id}/{season}/{episode}", sc.PurgeEpisode)
	s.mux.HandleFunc("POST /skip/vote", sc.Vote)
	s.mux.HandleFunc("POST /skip/verify", sc.Verify)
	s.mux.HandleFunc("DELETE /skip", sc.PurgeAll)
	s.mux.HandleFunc("/health", hc.Health)
	return s
}

func (s *testServer) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) addInception() {
	s.reference.Add(models.Movie, catalog.ReferenceMeta{ID: 27205, Title: "Inception", Year: testutil.Year(2010)})
	s.provider.Listings["Inception"] = []catalog.Listing{
		{Slug: "movie/watch-inception-19764", Title: "Inception", Year: testutil.Year(2010), Type: models.Movie},
	}
	s.provider.Details["movie/watch-inception-19764"] = catalog.Detail{ID: "19764", Title: "Inception", Released: "2010-07-16", Genres: []string{"Action"}}
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}
