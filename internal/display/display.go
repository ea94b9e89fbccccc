// Package display renders per-station METAR summaries onto a small I2C OLED.
// The bitmap layout is pure image code so it can be tested without hardware;
// the SSD1306 device is a thin periph.io wrapper around it.
package display

import "github.com/ejmmje/METARMap/internal/weather"

// Display is the narrow interface to the optional secondary device
type Display interface {
	Clear() error
	Render(station string, cond *weather.Condition) error
	Shutdown() error
}
