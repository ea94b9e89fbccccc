//go:build !ws281x

package leds

import (
	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// Without the ws281x build tag there is no hardware driver; the console
// strip stands in so the pipeline can run off-device.
func newDeviceStrip(cfg config.LEDConfig, brightness float64, log *logger.Logger) (Strip, error) {
	log.Info("Built without ws281x support, using console strip",
		logger.Int("count", cfg.Count),
		logger.Float64("brightness", brightness))
	return NewConsole(cfg.Count, log), nil
}
