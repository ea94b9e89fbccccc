// Package animation implements the tick-driven LED animation state machine.
// Each tick computes one full frame of pixel updates from the per-station
// conditions and the current animation phase; the caller owns the real clock
// and the hardware, so the scheduler is testable without delays.
package animation

import (
	"math"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/internal/weather"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// State holds the mutable animation state. It is owned by the caller and
// advanced once per tick.
type State struct {
	// WindCycle is the single phase clock shared by both effects: wind
	// blink/fade renders on the true half, lightning on the false half
	WindCycle bool
	// TicksRemaining counts down to loop termination
	TicksRemaining int
	// DisplayIndex is the current position in the rotating display list
	DisplayIndex int
	// DisplayElapsed accumulates seconds the current station has been shown
	DisplayElapsed float64
}

// PixelUpdate assigns a color to one physical LED index
type PixelUpdate struct {
	Index int
	Color config.RGB
}

// DisplayFrame names the station to render on the external display this tick
type DisplayFrame struct {
	Station   string
	Condition *weather.Condition
}

// Frame is the output of one tick: the pixel writes for the strip (pushed to
// the hardware as one atomic show) and the optional display update.
// Placeholder airport slots get no pixel update at all.
type Frame struct {
	Pixels  []PixelUpdate
	Display *DisplayFrame
}

// Scheduler computes frames from conditions and the animation configuration
type Scheduler struct {
	animation  config.AnimationConfig
	colors     config.ColorConfig
	legend     config.LegendConfig
	displayCfg config.DisplayConfig
	airports   []string
	conditions map[string]*weather.Condition
	stations   []string
	logger     *logger.Logger
}

// NewScheduler creates a scheduler for one classified fetch cycle. airports
// is the full LED-ordered list including placeholders; stations is the
// rotating display list.
func NewScheduler(cfg *config.Config, airports []string, result *weather.ClassifyResult, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		animation:  cfg.Animation,
		colors:     cfg.Colors,
		legend:     cfg.Legend,
		displayCfg: cfg.Display,
		airports:   airports,
		conditions: result.Conditions,
		stations:   result.Stations,
		logger:     logger.Named("animation"),
	}
}

// TickBudget returns the total number of ticks for one run: the configured
// blink time divided into blink intervals, or a single render-once tick when
// neither animation nor the external display is active.
func (s *Scheduler) TickBudget() int {
	if !s.animation.Wind && !s.animation.Lightning && !s.displayCfg.Enabled {
		return 1
	}
	return int(math.Round(s.animation.BlinkTotalTimeSeconds / s.animation.BlinkSpeedSeconds))
}

// InitialState returns the starting animation state. The wind cycle starts
// on the false half so the first frame shows base colors and lightning.
func (s *Scheduler) InitialState() State {
	return State{TicksRemaining: s.TickBudget()}
}

// Advance computes the frame for the current state and returns the state for
// the next tick. The caller applies the frame, sleeps one blink interval,
// and loops until TicksRemaining reaches zero.
func (s *Scheduler) Advance(st State) (Frame, State) {
	var frame Frame

	for i, airport := range s.airports {
		// Unpopulated position: no write, but the index still advances so
		// subsequent airports land on the correct physical LED
		if airport == config.PlaceholderID {
			continue
		}
		frame.Pixels = append(frame.Pixels, PixelUpdate{
			Index: i,
			Color: s.colorFor(s.conditions[airport], st.WindCycle),
		})
	}

	if s.legend.Enabled {
		frame.Pixels = append(frame.Pixels, s.legendPixels(st.WindCycle)...)
	}

	next := st
	if s.displayCfg.Enabled && len(s.stations) > 0 {
		if st.DisplayElapsed <= s.displayCfg.RotationSpeedSeconds {
			station := s.stations[st.DisplayIndex]
			frame.Display = &DisplayFrame{
				Station:   station,
				Condition: s.conditions[station],
			}
			next.DisplayElapsed += s.animation.BlinkSpeedSeconds
		} else {
			// Rotate to the next station; it renders on the next tick
			next.DisplayElapsed = 0
			next.DisplayIndex = (st.DisplayIndex + 1) % len(s.stations)
		}
	}

	next.WindCycle = !st.WindCycle
	next.TicksRemaining = st.TicksRemaining - 1
	return frame, next
}

// colorFor resolves the final LED color for one station in one phase.
// Precedence, highest first: lightning flash, high winds, wind fade/blink,
// base category color. A missing or unknown category always renders the
// clear color.
func (s *Scheduler) colorFor(cond *weather.Condition, windCycle bool) config.RGB {
	if cond == nil {
		return s.colors.Clear
	}

	base, fade, known := s.categoryColors(cond.FlightCategory)
	if !known {
		return s.colors.Clear
	}

	windy := s.animation.Wind && windCycle &&
		(cond.WindSpeedKts >= s.animation.WindBlinkThresholdKts || cond.WindGust)
	highWinds := windy && s.animation.HighWindsThresholdKts != -1 &&
		(cond.WindSpeedKts >= s.animation.HighWindsThresholdKts || cond.WindGustKts >= s.animation.HighWindsThresholdKts)
	lightning := s.animation.Lightning && !windCycle && cond.Lightning

	switch {
	case lightning:
		return s.colors.Lightning
	case highWinds:
		return s.colors.HighWinds
	case windy:
		if s.animation.FadeInsteadOfBlink {
			return fade
		}
		return s.colors.Clear
	default:
		return base
	}
}

// categoryColors returns the base and faded color for a flight category
func (s *Scheduler) categoryColors(cat weather.FlightCategory) (base, fade config.RGB, known bool) {
	switch cat {
	case weather.CategoryVFR:
		return s.colors.VFR, s.colors.VFRFade, true
	case weather.CategoryMVFR:
		return s.colors.MVFR, s.colors.MVFRFade, true
	case weather.CategoryIFR:
		return s.colors.IFR, s.colors.IFRFade, true
	case weather.CategoryLIFR:
		return s.colors.LIFR, s.colors.LIFRFade, true
	default:
		return s.colors.Clear, s.colors.Clear, false
	}
}

// legendPixels writes the fixed reference swatches past the last airport
// LED, plus blinking effect swatches for each enabled animation
func (s *Scheduler) legendPixels(windCycle bool) []PixelUpdate {
	start := len(s.airports) + s.legend.Offset
	pixels := []PixelUpdate{
		{Index: start, Color: s.colors.VFR},
		{Index: start + 1, Color: s.colors.MVFR},
		{Index: start + 2, Color: s.colors.IFR},
		{Index: start + 3, Color: s.colors.LIFR},
	}

	if s.animation.Lightning {
		c := s.colors.VFR
		if windCycle {
			c = s.colors.Lightning
		}
		pixels = append(pixels, PixelUpdate{Index: start + 4, Color: c})
	}

	if s.animation.Wind {
		c := s.colors.VFR
		if windCycle {
			c = s.colors.Clear
			if s.animation.FadeInsteadOfBlink {
				c = s.colors.VFRFade
			}
		}
		pixels = append(pixels, PixelUpdate{Index: start + 5, Color: c})

		if s.animation.HighWindsThresholdKts != -1 {
			c := s.colors.VFR
			if windCycle {
				c = s.colors.HighWinds
			}
			pixels = append(pixels, PixelUpdate{Index: start + 6, Color: c})
		}
	}

	return pixels
}

// MaxIndex returns the highest LED index a frame from this scheduler can
// touch, for precondition checks against the configured strip length
func (s *Scheduler) MaxIndex() int {
	max := len(s.airports) - 1
	if s.legend.Enabled {
		max = len(s.airports) + s.legend.Offset + 3
		if s.animation.Lightning {
			max = len(s.airports) + s.legend.Offset + 4
		}
		if s.animation.Wind {
			max = len(s.airports) + s.legend.Offset + 5
			if s.animation.HighWindsThresholdKts != -1 {
				max = len(s.airports) + s.legend.Offset + 6
			}
		}
	}
	return max
}
