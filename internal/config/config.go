package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	LEDs      LEDConfig       `toml:"leds"`      // LED strip hardware settings
	Colors    ColorConfig     `toml:"colors"`    // Per-category and effect colors
	Animation AnimationConfig `toml:"animation"` // Wind/lightning animation settings
	Dimming   DimmingConfig   `toml:"dimming"`   // Daytime dimming settings
	Display   DisplayConfig   `toml:"display"`   // External OLED display settings
	Legend    LegendConfig    `toml:"legend"`    // Trailing legend segment settings
	Weather   WeatherConfig   `toml:"wx"`        // Weather data fetching settings
	Logging   LoggingConfig   `toml:"logging"`   // Application logging settings
}

// LEDConfig contains LED strip hardware configuration
type LEDConfig struct {
	Count               int     `toml:"count"`                 // Number of LEDs in the strip
	Pin                 int     `toml:"pin"`                   // GPIO data pin driving the strip (e.g. 18)
	Brightness          float64 `toml:"brightness"`            // Brightness level (0.0 to 1.0)
	BrightnessDim       float64 `toml:"brightness_dim"`        // Dimmed brightness level used outside the bright window
	ColorOrder          string  `toml:"color_order"`           // Strip color order: "RGB", "GRB", "BRG" or "BGR"
	AirportsPath        string  `toml:"airports_path"`         // Path to the airport list file (one ICAO per LED position)
	DisplayAirportsPath string  `toml:"display_airports_path"` // Optional path to the display subset file
}

// ColorConfig contains the RGB colors for each flight category plus the
// faded variants and the effect colors
type ColorConfig struct {
	VFR       RGB `toml:"vfr"`
	VFRFade   RGB `toml:"vfr_fade"`
	MVFR      RGB `toml:"mvfr"`
	MVFRFade  RGB `toml:"mvfr_fade"`
	IFR       RGB `toml:"ifr"`
	IFRFade   RGB `toml:"ifr_fade"`
	LIFR      RGB `toml:"lifr"`
	LIFRFade  RGB `toml:"lifr_fade"`
	Clear     RGB `toml:"clear"`
	Lightning RGB `toml:"lightning"`
	HighWinds RGB `toml:"high_winds"`
}

// AnimationConfig contains the animation feature toggles, thresholds and timing
type AnimationConfig struct {
	Wind                  bool    `toml:"wind"`                     // Enable wind blink/fade animation
	Lightning             bool    `toml:"lightning"`                // Enable lightning flash animation
	FadeInsteadOfBlink    bool    `toml:"fade_instead_of_blink"`    // Fade to a dimmed color instead of blinking off
	AlwaysBlinkForGusts   bool    `toml:"always_blink_for_gusts"`   // Blink for any reported gust regardless of speed
	WindBlinkThresholdKts int     `toml:"wind_blink_threshold"`     // Sustained wind speed (kts) at or above which a station blinks
	HighWindsThresholdKts int     `toml:"high_winds_threshold"`     // Wind/gust speed (kts) for the high-wind color, -1 to disable
	BlinkSpeedSeconds     float64 `toml:"blink_speed_seconds"`      // Duration of one animation tick
	BlinkTotalTimeSeconds float64 `toml:"blink_total_time_seconds"` // Total duration of the animation loop
	ReplaceCatWithClosest bool    `toml:"replace_cat_with_closest"` // Fill missing flight categories from the nearest station
}

// DimmingConfig contains daytime dimming configuration
type DimmingConfig struct {
	Enabled          bool   `toml:"enabled"`            // Dim the strip outside the bright window
	UseSunriseSunset bool   `toml:"use_sunrise_sunset"` // Derive the bright window from sunrise/sunset at a named location
	Location         string `toml:"location"`           // Named location for sunrise/sunset lookup (e.g. "London")
	BrightTimeStart  string `toml:"bright_time_start"`  // Fixed bright window start, "HH:MM"
	DimTimeStart     string `toml:"dim_time_start"`     // Fixed dim window start, "HH:MM"
}

// DisplayConfig contains external OLED display configuration
type DisplayConfig struct {
	Enabled              bool    `toml:"enabled"`                // Enable the rotating METAR display
	RotationSpeedSeconds float64 `toml:"rotation_speed_seconds"` // How long each station is shown before rotating
	I2CBus               string  `toml:"i2c_bus"`                // I2C bus name, empty for the first available bus
	Width                int     `toml:"width"`                  // Display width in pixels
	Height               int     `toml:"height"`                 // Display height in pixels
	WindInMagnetic       bool    `toml:"wind_in_magnetic"`       // Show wind direction in degrees magnetic instead of true
}

// LegendConfig contains the trailing legend segment configuration
type LegendConfig struct {
	Enabled bool `toml:"enabled"` // Write legend swatches past the last airport LED
	Offset  int  `toml:"offset"`  // Number of LEDs to skip between the last airport and the legend
}

// WeatherConfig contains the weather data source configuration
type WeatherConfig struct {
	APIBaseURL            string `toml:"api_base_url"`            // Base URL of the aviation weather API
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // HTTP request timeout in seconds
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// RGB is a color decoded from a 3-element TOML array, e.g. vfr = [255, 0, 0]
type RGB struct {
	R, G, B uint8
}

// UnmarshalTOML implements toml.Unmarshaler for 3-element integer arrays
func (c *RGB) UnmarshalTOML(v interface{}) error {
	parts, ok := v.([]interface{})
	if !ok || len(parts) != 3 {
		return fmt.Errorf("color must be a 3-element array, got %v", v)
	}
	vals := make([]uint8, 3)
	for i, p := range parts {
		n, ok := p.(int64)
		if !ok {
			return fmt.Errorf("color component must be an integer, got %v", p)
		}
		if n < 0 || n > 255 {
			return fmt.Errorf("color component out of range: %d", n)
		}
		vals[i] = uint8(n)
	}
	c.R, c.G, c.B = vals[0], vals[1], vals[2]
	return nil
}

// Default returns a configuration populated with sensible defaults
func Default() *Config {
	return &Config{
		LEDs: LEDConfig{
			Count:         50,
			Pin:           18,
			Brightness:    0.5,
			BrightnessDim: 0.1,
			ColorOrder:    "GRB",
			AirportsPath:  "airports",
		},
		Colors: ColorConfig{
			VFR:       RGB{0, 255, 0},
			VFRFade:   RGB{0, 125, 0},
			MVFR:      RGB{0, 0, 255},
			MVFRFade:  RGB{0, 0, 125},
			IFR:       RGB{255, 0, 0},
			IFRFade:   RGB{125, 0, 0},
			LIFR:      RGB{125, 0, 125},
			LIFRFade:  RGB{75, 0, 75},
			Clear:     RGB{0, 0, 0},
			Lightning: RGB{255, 255, 255},
			HighWinds: RGB{255, 255, 0},
		},
		Animation: AnimationConfig{
			Wind:                  true,
			Lightning:             true,
			WindBlinkThresholdKts: 15,
			HighWindsThresholdKts: 25,
			BlinkSpeedSeconds:     1.0,
			BlinkTotalTimeSeconds: 300,
			ReplaceCatWithClosest: true,
		},
		Dimming: DimmingConfig{
			BrightTimeStart: "07:00",
			DimTimeStart:    "19:00",
		},
		Display: DisplayConfig{
			RotationSpeedSeconds: 5.0,
			Width:                128,
			Height:               64,
		},
		Weather: WeatherConfig{
			APIBaseURL:            "https://aviationweather.gov/api/data",
			RequestTimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads the configuration from the specified file path
func Load(path string) (*Config, error) {
	config := Default()

	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read the config file over the defaults
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return config, nil
}

// LoadWithFallback loads the configuration by checking multiple locations in order of preference
func LoadWithFallback(preferredPath string) (*Config, error) {
	// List of paths to check in order of preference
	searchPaths := []string{
		preferredPath,                // User-specified path (if provided)
		os.Getenv("METARMAP_CONFIG"), // Environment override (set directly or via .env)
		"configs/config.toml",        // configs/ folder
		"config.toml",                // Root directory
	}

	// Remove duplicates while preserving order
	uniquePaths := make([]string, 0, len(searchPaths))
	seen := make(map[string]bool)
	for _, path := range searchPaths {
		if path != "" && !seen[path] {
			uniquePaths = append(uniquePaths, path)
			seen[path] = true
		}
	}

	var lastErr error
	for _, path := range uniquePaths {
		if _, err := os.Stat(path); err == nil {
			// File exists, try to load it
			config, err := Load(path)
			if err != nil {
				lastErr = fmt.Errorf("failed to load config from %s: %w", path, err)
				continue
			}
			return config, nil
		}
		lastErr = fmt.Errorf("config file not found: %s", path)
	}

	return nil, fmt.Errorf("config file not found in any of the expected locations: %v. Last error: %w", uniquePaths, lastErr)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LEDs.Count <= 0 {
		return fmt.Errorf("invalid LED count: %d", c.LEDs.Count)
	}
	if c.LEDs.Brightness < 0 || c.LEDs.Brightness > 1 {
		return fmt.Errorf("invalid brightness: %f (must be between 0.0 and 1.0)", c.LEDs.Brightness)
	}
	if c.LEDs.BrightnessDim < 0 || c.LEDs.BrightnessDim > 1 {
		return fmt.Errorf("invalid dimmed brightness: %f (must be between 0.0 and 1.0)", c.LEDs.BrightnessDim)
	}

	switch c.LEDs.ColorOrder {
	case "RGB", "GRB", "BRG", "BGR":
		// Valid color order
	default:
		return fmt.Errorf("invalid color order: %s (must be 'RGB', 'GRB', 'BRG' or 'BGR')", c.LEDs.ColorOrder)
	}

	if c.LEDs.AirportsPath == "" {
		return fmt.Errorf("airports_path is required")
	}

	if c.Animation.BlinkSpeedSeconds <= 0 {
		return fmt.Errorf("invalid blink speed: %f", c.Animation.BlinkSpeedSeconds)
	}
	if c.Animation.BlinkTotalTimeSeconds <= 0 {
		return fmt.Errorf("invalid blink total time: %f", c.Animation.BlinkTotalTimeSeconds)
	}
	if c.Animation.WindBlinkThresholdKts < 0 {
		return fmt.Errorf("invalid wind blink threshold: %d", c.Animation.WindBlinkThresholdKts)
	}
	if c.Animation.HighWindsThresholdKts < -1 {
		return fmt.Errorf("invalid high winds threshold: %d (use -1 to disable)", c.Animation.HighWindsThresholdKts)
	}

	// Fixed bright/dim times must parse even when sunrise/sunset is enabled,
	// since they are the fallback for an unrecognized location
	if _, err := time.Parse("15:04", c.Dimming.BrightTimeStart); err != nil {
		return fmt.Errorf("invalid bright_time_start: %w", err)
	}
	if _, err := time.Parse("15:04", c.Dimming.DimTimeStart); err != nil {
		return fmt.Errorf("invalid dim_time_start: %w", err)
	}
	if c.Dimming.UseSunriseSunset && c.Dimming.Location == "" {
		return fmt.Errorf("location is required when use_sunrise_sunset is enabled")
	}

	if c.Display.Enabled {
		if c.Display.RotationSpeedSeconds <= 0 {
			return fmt.Errorf("invalid display rotation speed: %f", c.Display.RotationSpeedSeconds)
		}
		if c.Display.Width <= 0 || c.Display.Height <= 0 {
			return fmt.Errorf("invalid display dimensions: %dx%d", c.Display.Width, c.Display.Height)
		}
	}

	if c.Legend.Enabled && c.Legend.Offset < 0 {
		return fmt.Errorf("invalid legend offset: %d", c.Legend.Offset)
	}

	if c.Weather.APIBaseURL == "" {
		return fmt.Errorf("api_base_url cannot be empty")
	}
	if c.Weather.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be greater than 0")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid log level
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid log format
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
