package weather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// Client handles HTTP requests to the aviation weather API
type Client struct {
	config     config.WeatherConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new weather API client
func NewClient(cfg config.WeatherConfig, logger *logger.Logger) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		logger: logger.Named("weather-client"),
	}
}

// FetchMETARs fetches the latest METAR observations for the given station
// identifiers in a single request. The program is a single-pass batch
// classifier: a failed fetch is fatal to the run, so there is no retry here.
func (c *Client) FetchMETARs(ids []string) ([]StationRecord, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no station identifiers to fetch")
	}

	url := fmt.Sprintf("%s/metar?ids=%s&format=json&taf=false", c.config.APIBaseURL, strings.Join(ids, ","))

	c.logger.Info("Fetching METAR data",
		logger.Int("stations", len(ids)),
		logger.String("url", url))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("error making request to weather API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var records []StationRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding weather data: %w", err)
	}

	c.logger.Info("Fetched METAR data", logger.Int("records", len(records)))
	return records, nil
}
