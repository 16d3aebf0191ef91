package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/internal/resource"
	"github.com/hupe1980/neodb/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, opts ...neodb.Option) *neodb.DB {
	t.Helper()

	mustNEO := func(des, name, diameter, pha string) *model.NearEarthObject {
		neo, err := model.NewNearEarthObject(des, name, diameter, pha)
		require.NoError(t, err)
		return neo
	}
	mustCA := func(des, cd, dist, vel string) *model.CloseApproach {
		ca, err := model.NewCloseApproach(des, cd, dist, vel)
		require.NoError(t, err)
		return ca
	}

	neos := []*model.NearEarthObject{
		mustNEO("433", "Eros", "16.84", "N"),
		mustNEO("2019 AA", "", "", "Y"),
	}
	approaches := []*model.CloseApproach{
		mustCA("433", "1900-Jan-01 00:11", "0.0921", "3.83"),
		mustCA("2019 AA", "2020-Jan-01 12:30", "0.15", "5.5"),
		mustCA("433", "2020-Jan-02 00:00", "0.3", "4.1"),
		mustCA("9999 ZZ", "2020-Jan-03 00:00", "0.2", "12"),
	}

	db, err := neodb.New(neos, approaches, opts...)
	require.NoError(t, err)
	return db
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndStats(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{})

	rec := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = get(t, srv.Handler(), "/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats neodb.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.NEOs)
	assert.Equal(t, 4, stats.Approaches)
	assert.Equal(t, 1, stats.Orphans)
}

func TestRequestIDPropagates(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestNEOByDesignation(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{})

	rec := get(t, srv.Handler(), "/v1/neos/433")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NEOResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Eros", resp.Name)
	require.NotNil(t, resp.DiameterKM)
	assert.InDelta(t, 16.84, *resp.DiameterKM, 1e-9)
	require.Len(t, resp.Approaches, 2)
	assert.Equal(t, "1900-01-01 00:11", resp.Approaches[0].DatetimeUTC)

	rec = get(t, srv.Handler(), "/v1/neos/2019%20AA")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.DiameterKM)
	assert.True(t, resp.PotentiallyHazardous)

	rec = get(t, srv.Handler(), "/v1/neos/9999%20ZZ")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNEOByName(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{})

	rec := get(t, srv.Handler(), "/v1/neos?name=Eros")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"designation":"433"`)

	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), "/v1/neos?name=Ceres").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv.Handler(), "/v1/neos").Code)
}

func TestApproaches(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{})

	t.Run("all in input order", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/v1/approaches")
		require.Equal(t, http.StatusOK, rec.Code)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 4)
		assert.Nil(t, rows[3]["neo"])
	})

	t.Run("hazardous false", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/v1/approaches?hazardous=false&start_date=2020-01-01")
		require.Equal(t, http.StatusOK, rec.Code)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "2020-01-02 00:00", rows[0]["datetime_utc"])
	})

	t.Run("limit", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/v1/approaches?limit=2")
		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		assert.Len(t, rows, 2)
	})

	t.Run("csv", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/v1/approaches?format=csv&max_distance=0.1")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))

		records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "datetime_utc", records[0][0])
		assert.Equal(t, "433", records[1][3])
	})

	t.Run("bad input", func(t *testing.T) {
		for _, q := range []string{"date=yesterday", "min_distance=far", "hazardous=maybe", "limit=-1", "format=xml"} {
			rec := get(t, srv.Handler(), "/v1/approaches?"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})
}

func TestApproachesCache(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{CacheBytes: 1 << 20})

	first := get(t, srv.Handler(), "/v1/approaches?hazardous=true&limit=5")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))

	// Parameter order does not matter.
	second := get(t, srv.Handler(), "/v1/approaches?limit=5&hazardous=true")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())

	csvResp := get(t, srv.Handler(), "/v1/approaches?hazardous=true&limit=5&format=csv")
	assert.Equal(t, "MISS", csvResp.Header().Get(CacheHeader))

	hits, misses := srv.cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestQuerySlots(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxConcurrentQueries: 1})
	require.True(t, rc.TryAcquireQuery())

	srv := New(newTestDB(t), nil, Config{})
	srv.engine.GET("/busy", QuerySlots(rc), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv.Handler(), "/busy").Code)

	rc.ReleaseQuery()
	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/busy").Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheusCollector(reg)
	db := newTestDB(t, neodb.WithMetricsCollector(collector))

	assert.InDelta(t, 1, testutil.ToFloat64(collector.records.WithLabelValues("orphans")), 0)

	srv := New(db, nil, Config{Gatherer: reg})
	get(t, srv.Handler(), "/v1/neos/433")
	get(t, srv.Handler(), "/v1/neos/nope")
	get(t, srv.Handler(), "/v1/approaches")

	assert.InDelta(t, 1, testutil.ToFloat64(collector.lookups.WithLabelValues("designation", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.lookups.WithLabelValues("designation", "miss")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(collector.queryRows.WithLabelValues("matched")), 0)

	rec := get(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "neodb_lookups_total")
	assert.Contains(t, rec.Body.String(), "neodb_query_duration_seconds")
}

func TestCORS(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{CORSOrigins: []string{"https://example.org"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.org")
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServeShutdown(t *testing.T) {
	srv := New(newTestDB(t), nil, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var err error
	wg.Add(1)
	go func() {
		defer wg.Done()
		err = srv.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	wg.Wait()
	assert.NoError(t, err)
}
