package elevation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"spiralplan/internal/geo"
)

const (
	// FallbackNoKeyFt is returned when no provider credential is configured.
	FallbackNoKeyFt = 4500.0
	// FallbackErrorFt is returned when the provider call fails.
	FallbackErrorFt = 1000.0

	// clusterRadiusFt bounds the spatial dedup in ElevationsFor: waypoints
	// within this distance of an already-resolved point reuse its elevation.
	clusterRadiusFt = 15.0
)

// Service resolves ground elevations with a memoizing cache and soft
// degradation: provider failures become fixed fallback values, never errors.
// The cache is instance state, safe for concurrent use, keyed by coordinate
// quantized to 1e-6 degree. It grows with distinct coordinates; bound the
// Service's lifetime if that matters to you.
type Service struct {
	client *Client
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]float64 // feet
}

// NewService creates an elevation service. client may be nil when no
// provider credential is configured; lookups then return FallbackNoKeyFt.
func NewService(client *Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		logger: logger,
		cache:  make(map[string]float64),
	}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}

// ElevationFeet returns the ground elevation at a coordinate in feet.
// Results are cached; failures degrade to fallback constants.
func (s *Service) ElevationFeet(ctx context.Context, lat, lon float64) float64 {
	if s.client == nil {
		return FallbackNoKeyFt
	}

	key := cacheKey(lat, lon)
	s.mu.RLock()
	ft, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return ft
	}

	meters, err := s.client.ElevationMeters(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("elevation lookup failed, using fallback",
			"lat", lat, "lon", lon, "fallback_ft", FallbackErrorFt, "err", err)
		return FallbackErrorFt
	}

	ft = meters * geo.MetersToFeet
	s.mu.Lock()
	s.cache[key] = ft
	s.mu.Unlock()
	return ft
}

// ElevationsFor resolves elevations for a batch of locations, in input
// order. A location within clusterRadiusFt of an already-resolved location
// in the same batch reuses its elevation instead of issuing a new lookup,
// so external calls are bounded by the number of spatially distinct
// clusters.
func (s *Service) ElevationsFor(ctx context.Context, locations []geo.Coordinate) []float64 {
	type resolved struct {
		coord geo.Coordinate
		ft    float64
	}

	out := make([]float64, 0, len(locations))
	refs := make([]resolved, 0, len(locations))

	for _, loc := range locations {
		reused := false
		for _, r := range refs {
			if geo.HaversineFeet(loc, r.coord) <= clusterRadiusFt {
				out = append(out, r.ft)
				reused = true
				break
			}
		}
		if reused {
			continue
		}
		ft := s.ElevationFeet(ctx, loc.Lat, loc.Lon)
		refs = append(refs, resolved{coord: loc, ft: ft})
		out = append(out, ft)
	}
	return out
}

// CacheSize reports the number of memoized coordinates.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
