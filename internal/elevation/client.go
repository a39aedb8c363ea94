// Ground elevation lookups against an external elevation API.
package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL points at the Google Maps elevation endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/elevation/json"

// Client queries the elevation provider over HTTP. It reports failures to
// the caller; fallback substitution is the Service's job.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. baseURL may be empty to use the default.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type providerResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// ElevationMeters fetches the ground elevation at a coordinate, in meters.
func (c *Client) ElevationMeters(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{}
	params.Set("locations", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create elevation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("elevation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("elevation API status %d", resp.StatusCode)
	}

	var pr providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("decode elevation response: %w", err)
	}
	if pr.Status != "OK" || len(pr.Results) == 0 {
		return 0, fmt.Errorf("elevation API payload status %q", pr.Status)
	}

	return pr.Results[0].Elevation, nil
}
