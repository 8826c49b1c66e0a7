package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"visit-planner-service/internal/config"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/platform/obs"
	"visit-planner-service/internal/ports"
)

// coordCache is what the Nominatim geocoder needs from a persistent cache.
// *cache.SQLGeocodeCache satisfies it.
type coordCache interface {
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, address string, c domain.Coordinates) error
}

// NominatimGeocoder resolves free-text addresses via the Nominatim search
// API, consulting a persistent cache first to respect the OSM usage policy.
type NominatimGeocoder struct {
	baseURL       string
	userAgent     string
	countryCode   string
	addressSuffix string
	session       *http.Client
	cache         coordCache
}

func NewNominatimGeocoder(cfg config.GeocoderConfig, cache coordCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:     cfg.UserAgent,
		countryCode:   cfg.CountryCode,
		addressSuffix: cfg.AddressSuffix,
		session:       &http.Client{Timeout: 15 * time.Second},
		cache:         cache,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve geocodes one address. A lookup without results returns
// ports.ErrNoResults; callers surface that as a non-fatal warning and keep
// the record coordinate-less.
func (g *NominatimGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, ports.ErrNoResults
	}

	query := address
	if g.addressSuffix != "" {
		query = address + g.addressSuffix
	}

	if g.cache != nil {
		if c, ok, err := g.cache.Get(ctx, query); err == nil && ok {
			return c, nil
		}
	}

	endpoint := g.baseURL + "/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", query)
		q.Set("format", "json")
		q.Set("limit", "1")
		if g.countryCode != "" {
			q.Set("countrycodes", g.countryCode)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, ports.ErrNoResults
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lat %q: %w", address, decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lon %q: %w", address, decoded[0].Lon, err)
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}

	if g.cache != nil {
		// Cache failures must not fail the lookup itself.
		if err := g.cache.Put(ctx, query, coords); err != nil {
			log.Printf("req_id=%s op=geocode.cache.Put err=%v", obs.RequestID(ctx), err)
		}
	}

	return coords, nil
}
