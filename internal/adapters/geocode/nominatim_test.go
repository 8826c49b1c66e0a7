package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"visit-planner-service/internal/config"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

type memoryCoordCache struct {
	entries map[string]domain.Coordinates
}

func newMemoryCoordCache() *memoryCoordCache {
	return &memoryCoordCache{entries: make(map[string]domain.Coordinates)}
}

func (m *memoryCoordCache) Get(_ context.Context, address string) (domain.Coordinates, bool, error) {
	c, ok := m.entries[address]
	return c, ok, nil
}

func (m *memoryCoordCache) Put(_ context.Context, address string, c domain.Coordinates) error {
	m.entries[address] = c
	return nil
}

func newTestGeocoder(serverURL string, cache coordCache) *NominatimGeocoder {
	return NewNominatimGeocoder(config.GeocoderConfig{
		BaseURL:       serverURL,
		UserAgent:     "visit-planner-test",
		CountryCode:   "de",
		AddressSuffix: ", Würzburg, Germany",
	}, cache)
}

func TestNominatimResolve(t *testing.T) {
	var gotQuery, gotCountry, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCountry = r.URL.Query().Get("countrycodes")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"49.79245","lon":"9.93296"}]`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, nil)

	coords, err := g.Resolve(context.Background(), "Juliuspromenade 19")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if coords.Lat != 49.79245 || coords.Lon != 9.93296 {
		t.Errorf("coords = %+v, want Würzburg", coords)
	}
	if gotQuery != "Juliuspromenade 19, Würzburg, Germany" {
		t.Errorf("query = %q, address suffix not applied", gotQuery)
	}
	if gotCountry != "de" {
		t.Errorf("countrycodes = %q, want de", gotCountry)
	}
	if gotAgent != "visit-planner-test" {
		t.Errorf("User-Agent = %q, want the configured identity", gotAgent)
	}
}

func TestNominatimResolveNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, nil)

	if _, err := g.Resolve(context.Background(), "Nowhere Lane 99"); !errors.Is(err, ports.ErrNoResults) {
		t.Errorf("Resolve = %v, want ErrNoResults", err)
	}
}

func TestNominatimResolveEmptyAddress(t *testing.T) {
	g := newTestGeocoder("http://unused.invalid", nil)

	if _, err := g.Resolve(context.Background(), "   "); !errors.Is(err, ports.ErrNoResults) {
		t.Errorf("Resolve(blank) = %v, want ErrNoResults", err)
	}
}

func TestNominatimResolveRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"lat":"49.80","lon":"9.94"}]`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, nil)

	coords, err := g.Resolve(context.Background(), "Schweinfurter Str. 4")
	if err != nil {
		t.Fatalf("Resolve after retry: %v", err)
	}
	if coords.Lat != 49.80 {
		t.Errorf("coords = %+v, want the retried response", coords)
	}
	if calls.Load() != 2 {
		t.Errorf("server saw %d calls, want 2 (one failure, one retry)", calls.Load())
	}
}

func TestNominatimResolveUsesCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"lat":"49.79","lon":"9.96"}]`))
	}))
	defer server.Close()

	cache := newMemoryCoordCache()
	g := newTestGeocoder(server.URL, cache)

	if _, err := g.Resolve(context.Background(), "Rottendorfer Str. 30"); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if _, err := g.Resolve(context.Background(), "Rottendorfer Str. 30"); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want 1 (second lookup served from cache)", calls.Load())
	}
	if len(cache.entries) != 1 {
		t.Errorf("cache holds %d entries, want 1", len(cache.entries))
	}
}
