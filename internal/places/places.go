package places

import "context"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// NearbyHit is one raw result from a nearby search, before any filtering.
// Fields missing from the upstream response are left at their zero value.
type NearbyHit struct {
	Name             string
	PlaceID          string
	Rating           float64
	UserRatingsTotal int
}

// Review is a single customer review attached to a place.
type Review struct {
	Text string
}

// Details is the subset of place details the pipeline consumes.
type Details struct {
	Reviews []Review
	URL     string
}

// Geocoder resolves free-text locations to coordinates. Implementations
// return all matches; callers decide how to handle ambiguity.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]LatLng, error)
}

// NearbySearcher returns places around a coordinate matching a keyword.
type NearbySearcher interface {
	Nearby(ctx context.Context, loc LatLng, radiusMeters int, keyword string) ([]NearbyHit, error)
}

// DetailFetcher returns reviews and the canonical map URL for a place.
type DetailFetcher interface {
	Details(ctx context.Context, placeID string, fields []string) (*Details, error)
}

// Client groups the three capabilities a pipeline run needs.
type Client interface {
	Geocoder
	NearbySearcher
	DetailFetcher
}
