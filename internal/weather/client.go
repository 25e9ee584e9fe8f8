// Package weather looks up current conditions from the OpenWeather API
// for event-location planning.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the OpenWeather current-conditions endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// requestTimeout bounds every weather lookup.
const requestTimeout = 10 * time.Second

// ErrMissingAPIKey is returned by NewClient when no API key is
// configured.
var ErrMissingAPIKey = fmt.Errorf("OpenWeather API key not configured")

// Conditions is the current weather at a location.
type Conditions struct {
	// City is the resolved city name
	City string `json:"city"`

	// TemperatureCelsius is the current temperature, rounded to one decimal
	TemperatureCelsius float64 `json:"temperature_celsius"`

	// Conditions is the primary weather group (Clear, Rain, Clouds, ...)
	Conditions string `json:"conditions"`
}

// Config holds the settings for constructing a Client.
type Config struct {
	// APIKey is the OpenWeather API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Used by tests; leave empty
	// for the real service.
	BaseURL string

	// HTTPClient overrides the HTTP client. A default client with the
	// request timeout is used when nil.
	HTTPClient *http.Client
}

// Client queries the OpenWeather API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client. A missing API key fails here,
// before any network activity.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// apiResponse is the subset of the OpenWeather payload the client uses.
type apiResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Current returns the current conditions for a city. An empty country
// code defaults to "US".
func (c *Client) Current(ctx context.Context, city, countryCode string) (*Conditions, error) {
	if city == "" {
		return nil, fmt.Errorf("city is required")
	}
	if countryCode == "" {
		countryCode = "US"
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s,%s", city, countryCode))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather lookup failed: %s", string(body))
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return nil, fmt.Errorf("weather response missing conditions")
	}

	return &Conditions{
		City:               payload.Name,
		TemperatureCelsius: math.Round(payload.Main.Temp*10) / 10,
		Conditions:         payload.Weather[0].Main,
	}, nil
}
