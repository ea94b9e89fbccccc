// Package leds drives the addressable LED strip. The pipeline talks to the
// Strip interface only; the WS281x hardware driver is selected with the
// "ws281x" build tag, and the default build gets a console strip so the
// classifier and animation loop run anywhere.
package leds

import (
	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// Strip is the narrow interface to the LED hardware. Set stages a color into
// the strip buffer; Show pushes the whole buffer to the hardware in one
// atomic write.
type Strip interface {
	Set(index int, c config.RGB)
	Show() error
	Off() error
	Close() error
}

// New creates the strip for the current build: the WS281x device when built
// with the ws281x tag, otherwise a console strip
func New(cfg config.LEDConfig, brightness float64, log *logger.Logger) (Strip, error) {
	return newDeviceStrip(cfg, brightness, log)
}
