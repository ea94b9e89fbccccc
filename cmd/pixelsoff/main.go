// Command pixelsoff turns off all LEDs and, when configured, the external
// display. Run it when the system shuts down or the map should go dark.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/internal/display"
	"github.com/ejmmje/METARMap/internal/leds"
	"github.com/ejmmje/METARMap/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	strip, err := leds.New(cfg.LEDs, cfg.LEDs.Brightness, log)
	if err != nil {
		log.Error("Failed to initialize LED strip", logger.Error(err))
		os.Exit(1)
	}
	if err := strip.Off(); err != nil {
		log.Error("Failed to blank LED strip", logger.Error(err))
	}
	if err := strip.Close(); err != nil {
		log.Error("Failed to close LED strip", logger.Error(err))
	}

	if cfg.Display.Enabled {
		oled, err := display.NewOLED(cfg.Display, log)
		if err != nil {
			log.Warn("External display unavailable, nothing to shut down", logger.Error(err))
		} else if err := oled.Shutdown(); err != nil {
			log.Warn("Failed to shut down display", logger.Error(err))
		}
	}

	log.Info("LEDs off")
}
