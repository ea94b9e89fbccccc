package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ejmmje/METARMap/internal/animation"
	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/internal/daylight"
	"github.com/ejmmje/METARMap/internal/display"
	"github.com/ejmmje/METARMap/internal/leds"
	"github.com/ejmmje/METARMap/internal/weather"
	"github.com/ejmmje/METARMap/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	// Load .env if present so METARMAP_CONFIG can be set per deployment
	_ = godotenv.Load()

	// Load configuration with fallback logic
	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting METARMap",
		logger.String("version", Version),
		logger.Bool("wind_animation", cfg.Animation.Wind),
		logger.Bool("lightning_animation", cfg.Animation.Lightning),
		logger.Bool("daytime_dimming", cfg.Dimming.Enabled),
		logger.Bool("external_display", cfg.Display.Enabled),
	)

	// Read the airport list (one identifier per LED position)
	airports, err := config.LoadAirports(cfg.LEDs.AirportsPath)
	if err != nil {
		log.Error("Failed to load airports file", logger.Error(err))
		os.Exit(1)
	}

	displayAirports, err := config.LoadDisplayAirports(cfg.LEDs.DisplayAirportsPath)
	if err != nil {
		log.Error("Failed to load display airports file", logger.Error(err))
		os.Exit(1)
	}
	if displayAirports != nil {
		log.Info("Using subset of airports for display rotation",
			logger.Int("stations", len(displayAirports)))
	} else {
		log.Info("Rotating through all airports on the display")
	}

	// Hard precondition: every airport needs a physical LED position.
	// Checked before any hardware is touched.
	if len(airports) > cfg.LEDs.Count {
		log.Error("Too many airports in airports file, increase leds.count or reduce the number of airports",
			logger.Int("airports", len(airports)),
			logger.Int("led_count", cfg.LEDs.Count))
		os.Exit(1)
	}

	// Single upstream fetch; a failure here is fatal to the run
	client := weather.NewClient(cfg.Weather, log)
	records, err := client.FetchMETARs(config.StationIDs(airports))
	if err != nil {
		log.Error("Failed to fetch METAR data", logger.Error(err))
		os.Exit(1)
	}

	// Classify all stations and fill in missing categories
	classifier := weather.NewClassifier(weather.ClassifierConfig{
		AlwaysBlinkForGusts:   cfg.Animation.AlwaysBlinkForGusts,
		WindBlinkThresholdKts: cfg.Animation.WindBlinkThresholdKts,
	}, log)
	result := classifier.Classify(records, displayAirports)

	if cfg.Animation.ReplaceCatWithClosest {
		resolver := weather.NewFallbackResolver(log)
		if n := resolver.Resolve(result); n > 0 {
			log.Info("Filled missing flight categories from nearest stations",
				logger.Int("stations", n))
		}
	}

	sched := animation.NewScheduler(cfg, airports, result, log)
	if sched.MaxIndex() >= cfg.LEDs.Count {
		log.Error("Legend extends past the end of the strip, increase leds.count or reduce legend.offset",
			logger.Int("max_index", sched.MaxIndex()),
			logger.Int("led_count", cfg.LEDs.Count))
		os.Exit(1)
	}

	// Pick the brightness for this run from the daylight window
	now := time.Now()
	window := daylight.Resolve(cfg.Dimming, now, log)
	brightness := cfg.LEDs.Brightness
	if cfg.Dimming.Enabled && !window.Bright(now) {
		brightness = cfg.LEDs.BrightnessDim
	}

	strip, err := leds.New(cfg.LEDs, brightness, log)
	if err != nil {
		log.Error("Failed to initialize LED strip", logger.Error(err))
		os.Exit(1)
	}
	defer strip.Close()

	var disp display.Display
	if cfg.Display.Enabled {
		oled, err := display.NewOLED(cfg.Display, log)
		if err != nil {
			log.Warn("External display unavailable, continuing without it", logger.Error(err))
		} else {
			defer oled.Shutdown()
			if err := oled.Clear(); err != nil {
				log.Warn("Failed to clear display", logger.Error(err))
			}
			disp = oled
		}
	}

	runAnimation(sched, strip, disp, cfg.Animation.BlinkSpeedSeconds, log)

	log.Info("Done")
}

// runAnimation drives the fixed-iteration animation loop: one frame per
// tick, one atomic strip push per frame, one blink interval of sleep between
// ticks
func runAnimation(sched *animation.Scheduler, strip leds.Strip, disp display.Display, blinkSeconds float64, log *logger.Logger) {
	interval := time.Duration(blinkSeconds * float64(time.Second))

	st := sched.InitialState()
	log.Info("Starting animation loop",
		logger.Int("ticks", st.TicksRemaining),
		logger.Duration("tick_interval", interval))

	for st.TicksRemaining > 0 {
		frame, next := sched.Advance(st)

		for _, p := range frame.Pixels {
			strip.Set(p.Index, p.Color)
		}
		if err := strip.Show(); err != nil {
			log.Error("Failed to push strip frame", logger.Error(err))
		}

		if disp != nil && frame.Display != nil {
			log.Debug("Showing METAR display", logger.String("station", frame.Display.Station))
			if err := disp.Render(frame.Display.Station, frame.Display.Condition); err != nil {
				log.Warn("Failed to render display frame", logger.Error(err))
			}
		}

		time.Sleep(interval)
		st = next
	}
}
