package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/ejmmje/METARMap/internal/geo"
	"github.com/ejmmje/METARMap/internal/weather"
)

// Fixed two-column layout for a 128x64 page: station and category in the
// large face, then time, wind, visibility/weather, temperature/dewpoint,
// altimeter and up to four sky layers in the small face.
const (
	colSplit     = 62 // x position of the vertical separator
	rightCol     = 64 // x position of the right column
	maxSkyLayers = 4
)

// RenderOptions controls optional render behavior
type RenderOptions struct {
	// WindInMagnetic converts a numeric wind direction from true to
	// magnetic using the station's declination
	WindInMagnetic bool
}

// RenderCondition draws the METAR page for one station into dst. A nil
// condition renders the station name only.
func RenderCondition(dst draw.Image, station string, cond *weather.Condition, opts RenderOptions) {
	// Clear the page
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	large := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: inconsolata.Bold8x16,
	}
	small := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}

	if cond == nil {
		large.Dot = fixed.P(0, 12)
		large.DrawString(station)
		return
	}

	// Header: station-category large, observation time top right
	large.Dot = fixed.P(0, 12)
	large.DrawString(station + "-" + string(cond.FlightCategory))
	small.Dot = fixed.P(90, 10)
	small.DrawString(cond.ObsTime.Format("15:04Z"))

	// Column separator below the header
	for y := 18; y < dst.Bounds().Dy(); y++ {
		dst.Set(colSplit, y, color.White)
	}

	// Wind and visibility/weather row
	small.Dot = fixed.P(0, 26)
	small.DrawString(windText(cond, opts))
	small.Dot = fixed.P(rightCol, 26)
	small.DrawString(fmt.Sprintf("%dSM %s", cond.VisibilitySM, cond.WxString))

	// Temperature/dewpoint and altimeter row
	small.Dot = fixed.P(0, 36)
	small.DrawString(fmt.Sprintf("%dC/%dC", cond.TempC, cond.DewpointC))
	small.Dot = fixed.P(rightCol, 36)
	small.DrawString(fmt.Sprintf("A%.2fHg", cond.Altimeter))

	// Sky condition layers in two columns
	x, y := 0, 46
	for i, sky := range cond.SkyConditions {
		if i >= maxSkyLayers {
			break
		}
		text := sky.Cover
		if sky.BaseFt > 0 {
			text += "@" + strconv.Itoa(sky.BaseFt)
		}
		small.Dot = fixed.P(x, y)
		small.DrawString(text)
		if x == 0 {
			x = rightCol
		} else {
			x = 0
			y += 10
		}
	}
}

// windText formats the wind group, optionally converting a numeric direction
// from true to magnetic using the station's declination
func windText(cond *weather.Condition, opts RenderOptions) string {
	dir := cond.WindDir
	if opts.WindInMagnetic {
		if trueDeg, err := strconv.ParseFloat(dir, 64); err == nil {
			decl := geo.MagneticDeclination(cond.Latitude, cond.Longitude, cond.ObsTime)
			dir = fmt.Sprintf("%03.0f", normalizeDegrees(trueDeg-decl))
		}
	}

	text := fmt.Sprintf("%s@%d", dir, cond.WindSpeedKts)
	if cond.WindGust {
		text += "G" + strconv.Itoa(cond.WindGustKts)
	}
	return text
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
