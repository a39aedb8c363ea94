package elevation

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"spiralplan/internal/geo"
)

func newTestServer(t *testing.T, calls *int64, status string, elevationM float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		if r.URL.Query().Get("locations") == "" {
			t.Errorf("missing locations parameter")
		}
		fmt.Fprintf(w, `{"status":%q,"results":[{"elevation":%f}]}`, status, elevationM)
	}))
}

func TestElevationFeetConvertsAndCaches(t *testing.T) {
	var calls int64
	srv := newTestServer(t, &calls, "OK", 1000) // 1000 m
	defer srv.Close()

	svc := NewService(NewClient("test-key", srv.URL), nil)

	got := svc.ElevationFeet(context.Background(), 41.73218, -111.83979)
	want := 1000 * geo.MetersToFeet
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %f ft, want %f", got, want)
	}

	// Second lookup at the same (quantized) coordinate hits the cache.
	svc.ElevationFeet(context.Background(), 41.73218, -111.83979)
	if calls != 1 {
		t.Errorf("expected 1 provider call, got %d", calls)
	}
	if svc.CacheSize() != 1 {
		t.Errorf("expected cache size 1, got %d", svc.CacheSize())
	}
}

func TestElevationFeetNoCredential(t *testing.T) {
	svc := NewService(nil, nil)
	if got := svc.ElevationFeet(context.Background(), 41.7, -111.8); got != FallbackNoKeyFt {
		t.Errorf("got %f, want %f", got, FallbackNoKeyFt)
	}
}

func TestElevationFeetProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(NewClient("test-key", srv.URL), nil)
	if got := svc.ElevationFeet(context.Background(), 41.7, -111.8); got != FallbackErrorFt {
		t.Errorf("got %f, want %f", got, FallbackErrorFt)
	}
	// Fallbacks are not cached; a later call retries the provider.
	if svc.CacheSize() != 0 {
		t.Errorf("fallback should not be cached, cache size %d", svc.CacheSize())
	}
}

func TestElevationFeetPayloadNotOK(t *testing.T) {
	var calls int64
	srv := newTestServer(t, &calls, "OVER_QUERY_LIMIT", 123)
	defer srv.Close()

	svc := NewService(NewClient("test-key", srv.URL), nil)
	if got := svc.ElevationFeet(context.Background(), 41.7, -111.8); got != FallbackErrorFt {
		t.Errorf("got %f, want %f", got, FallbackErrorFt)
	}
}

func TestElevationsForSpatialDedup(t *testing.T) {
	var calls int64
	srv := newTestServer(t, &calls, "OK", 500)
	defer srv.Close()

	svc := NewService(NewClient("test-key", srv.URL), nil)

	center := geo.Coordinate{Lat: 41.73218, Lon: -111.83979}
	pr := geo.NewProjector(center)

	// Two points 10 ft apart plus one far away: two provider calls.
	locs := []geo.Coordinate{
		center,
		pr.ToGeo(geo.PlanarPoint{X: 10, Y: 0}),
		pr.ToGeo(geo.PlanarPoint{X: 2000, Y: 0}),
	}
	out := svc.ElevationsFor(context.Background(), locs)
	if len(out) != 3 {
		t.Fatalf("expected 3 elevations, got %d", len(out))
	}
	if out[0] != out[1] {
		t.Errorf("points 10 ft apart should share elevation: %f vs %f", out[0], out[1])
	}
	if calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", calls)
	}
}
