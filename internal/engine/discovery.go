package engine

import (
	"context"
	"fmt"

	"github.com/Pruthvi695/Unseen-Spots/internal/logger"
	"github.com/Pruthvi695/Unseen-Spots/internal/model"
)

// Discover geocodes the city, issues one nearby search and applies the
// inverse filter: high rating, low-but-nonzero review count. Output
// preserves the order of the raw results. Malformed hits are treated
// as non-matches, never as errors.
func (e *Engine) Discover(ctx context.Context, p Params) ([]model.Candidate, error) {
	logger.Log.Infof("discovery: searching for %q in %s", p.Query, p.City)

	locs, err := e.places.Geocode(ctx, p.City)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", p.City, err)
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, p.City)
	}
	// Ambiguous names are not retried; the first geocode result wins.
	center := locs[0]

	hits, err := e.places.Nearby(ctx, center, p.RadiusMeters, p.Query)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	seen := make(map[string]struct{}, len(hits))
	var out []model.Candidate
	for _, h := range hits {
		if h.Name == "" || h.PlaceID == "" {
			continue
		}
		if h.Rating < p.MinRating || h.UserRatingsTotal <= 0 || h.UserRatingsTotal > p.MaxReviews {
			continue
		}
		if _, dup := seen[h.PlaceID]; dup {
			continue
		}
		seen[h.PlaceID] = struct{}{}
		out = append(out, model.Candidate{
			Name:        h.Name,
			PlaceID:     h.PlaceID,
			Rating:      h.Rating,
			ReviewCount: h.UserRatingsTotal,
		})
	}

	logger.Log.Infof("discovery: %d of %d nearby results survived the inverse filter", len(out), len(hits))
	return out, nil
}
