package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/sapore/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the Google Places API.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	// DefaultRadius is the search radius in meters when none is given.
	DefaultRadius = 1000
)

// Client is a Google Places API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new Places API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request to the API. The API key is appended here and
// redacted from logs.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	logURL := fmt.Sprintf("%s%s?%s&key=***REDACTED***", c.baseURL, path, params.Encode())
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", logURL).
			Msg("Places API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// NearbySearch returns restaurants around a location. A ZERO_RESULTS status
// is an empty slice, not an error.
func (c *Client) NearbySearch(ctx context.Context, location models.Location, radius int) ([]models.Place, error) {
	if radius <= 0 {
		radius = DefaultRadius
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	params.Set("radius", fmt.Sprintf("%d", radius))
	params.Set("type", "restaurant")

	var apiResp nearbySearchResponse
	if err := c.get(ctx, "/nearbysearch/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Status, apiResp.ErrorMessage)
	}

	places := make([]models.Place, len(apiResp.Results))
	for i, result := range apiResp.Results {
		places[i] = result.toPlace()
	}

	if c.logger != nil {
		c.logger.Info().
			Int("results_count", len(places)).
			Str("status", apiResp.Status).
			Msg("Nearby search completed")
	}

	return places, nil
}

// PlaceDetails returns extended details for a single place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if placeID == "" {
		return nil, fmt.Errorf("place ID cannot be empty")
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_address,formatted_phone_number,website,reviews")

	var apiResp detailsResponse
	if err := c.get(ctx, "/details/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "OK" {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Status, apiResp.ErrorMessage)
	}

	return &apiResp.Result, nil
}
