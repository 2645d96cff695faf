package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Pruthvi695/Unseen-Spots/internal/places"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client is a Google Maps Web Services API client covering geocoding,
// nearby search and place details.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a new Maps client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Ensure Client implements places.Client
var _ places.Client = (*Client)(nil)

// geocodeResponse Geocoding API response
type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// nearbyResponse Places Nearby Search response
type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name             string  `json:"name"`
		PlaceID          string  `json:"place_id"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
	} `json:"results"`
}

// detailsResponse Place Details response
type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		URL     string `json:"url"`
		Reviews []struct {
			Text string `json:"text"`
		} `json:"reviews"`
	} `json:"result"`
}

// Geocode resolves an address to coordinates. A ZERO_RESULTS status is
// not an error; it yields an empty slice.
func (c *Client) Geocode(ctx context.Context, address string) ([]places.LatLng, error) {
	q := url.Values{}
	q.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, statusError("geocode", resp.Status, resp.ErrorMessage)
	}

	var locs []places.LatLng
	for _, r := range resp.Results {
		locs = append(locs, places.LatLng{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		})
	}
	return locs, nil
}

// Nearby returns places around loc whose keywords match keyword.
func (c *Client) Nearby(ctx context.Context, loc places.LatLng, radiusMeters int, keyword string) ([]places.NearbyHit, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("keyword", keyword)
	q.Set("language", "en")

	var resp nearbyResponse
	if err := c.get(ctx, "/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, statusError("nearby search", resp.Status, resp.ErrorMessage)
	}

	var hits []places.NearbyHit
	for _, r := range resp.Results {
		hits = append(hits, places.NearbyHit{
			Name:             r.Name,
			PlaceID:          r.PlaceID,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
		})
	}
	return hits, nil
}

// Details fetches the requested fields for a place.
func (c *Client) Details(ctx context.Context, placeID string, fields []string) (*places.Details, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	if len(fields) > 0 {
		q.Set("fields", strings.Join(fields, ","))
	}

	var resp detailsResponse
	if err := c.get(ctx, "/place/details/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, statusError("place details", resp.Status, resp.ErrorMessage)
	}

	det := &places.Details{URL: resp.Result.URL}
	for _, r := range resp.Result.Reviews {
		det.Reviews = append(det.Reviews, places.Review{Text: r.Text})
	}
	return det, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("maps api error (status %d): %s", res.StatusCode, string(body))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

func statusError(op, status, message string) error {
	if message != "" {
		return fmt.Errorf("%s failed (%s): %s", op, status, message)
	}
	return fmt.Errorf("%s failed (%s)", op, status)
}
