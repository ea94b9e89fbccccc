// Package daylight decides when the LED strip runs at full brightness. The
// bright window comes either from fixed configured times or from the
// computed sunrise/sunset at a named location.
package daylight

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// Default bright window used when the configured location is not recognized
// or sunrise/sunset cannot be computed
const (
	defaultBrightStart = 8 * 60  // 08:00
	defaultDimStart    = 19 * 60 // 19:00
)

// Window is the daily interval during which the strip runs at full
// brightness, as minutes since local midnight
type Window struct {
	BrightStart int
	DimStart    int
}

// Bright reports whether the given local time falls inside the bright window
func (w Window) Bright(now time.Time) bool {
	m := now.Hour()*60 + now.Minute()
	return w.BrightStart < m && m < w.DimStart
}

// Resolve computes the bright window for the given day. With sunrise/sunset
// enabled, the configured location is looked up in the builtin city table
// and the window spans sunrise to sunset in that city's timezone; an unknown
// location or timezone degrades to the fixed default window with a
// diagnostic rather than failing the run.
func Resolve(cfg config.DimmingConfig, now time.Time, log *logger.Logger) Window {
	log = log.Named("daylight")

	if !cfg.UseSunriseSunset {
		return fixedWindow(cfg, log)
	}

	city, ok := LookupCity(cfg.Location)
	if !ok {
		log.Warn("Location not recognized, falling back to default bright/dim times",
			logger.String("location", cfg.Location))
		return Window{BrightStart: defaultBrightStart, DimStart: defaultDimStart}
	}

	loc, err := time.LoadLocation(city.Timezone)
	if err != nil {
		log.Warn("Failed to load timezone, falling back to default bright/dim times",
			logger.String("timezone", city.Timezone),
			logger.Error(err))
		return Window{BrightStart: defaultBrightStart, DimStart: defaultDimStart}
	}

	rise, set := sunrise.SunriseSunset(city.Latitude, city.Longitude, now.Year(), now.Month(), now.Day())
	if rise.IsZero() || set.IsZero() {
		// Polar day/night: the model reports no sunrise or sunset
		log.Warn("No sunrise/sunset for location today, falling back to default bright/dim times",
			logger.String("location", cfg.Location))
		return Window{BrightStart: defaultBrightStart, DimStart: defaultDimStart}
	}

	rise = rise.In(loc)
	set = set.In(loc)
	w := Window{
		BrightStart: rise.Hour()*60 + rise.Minute(),
		DimStart:    set.Hour()*60 + set.Minute(),
	}

	log.Info("Using sunrise/sunset bright window",
		logger.String("location", cfg.Location),
		logger.String("sunrise", rise.Format("15:04")),
		logger.String("sunset", set.Format("15:04")))
	return w
}

// fixedWindow parses the configured HH:MM bright/dim times. Validation
// guarantees these parse, but a malformed value still degrades to defaults.
func fixedWindow(cfg config.DimmingConfig, log *logger.Logger) Window {
	bright, err1 := time.Parse("15:04", cfg.BrightTimeStart)
	dim, err2 := time.Parse("15:04", cfg.DimTimeStart)
	if err1 != nil || err2 != nil {
		log.Warn("Unparseable bright/dim times, falling back to defaults",
			logger.String("bright", cfg.BrightTimeStart),
			logger.String("dim", cfg.DimTimeStart))
		return Window{BrightStart: defaultBrightStart, DimStart: defaultDimStart}
	}
	return Window{
		BrightStart: bright.Hour()*60 + bright.Minute(),
		DimStart:    dim.Hour()*60 + dim.Minute(),
	}
}
