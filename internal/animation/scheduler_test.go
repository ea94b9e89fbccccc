package animation

import (
	"testing"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/internal/weather"
	"github.com/ejmmje/METARMap/pkg/logger"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Animation.Wind = true
	cfg.Animation.Lightning = true
	cfg.Animation.FadeInsteadOfBlink = true
	cfg.Animation.WindBlinkThresholdKts = 15
	cfg.Animation.HighWindsThresholdKts = 25
	cfg.Animation.BlinkSpeedSeconds = 1.0
	cfg.Animation.BlinkTotalTimeSeconds = 300
	return cfg
}

func newTestScheduler(cfg *config.Config, airports []string, conds map[string]*weather.Condition, stations []string) *Scheduler {
	return NewScheduler(cfg, airports, &weather.ClassifyResult{
		Conditions: conds,
		Stations:   stations,
	}, logger.NewNop())
}

func pixelAt(frame Frame, index int) (config.RGB, bool) {
	for _, p := range frame.Pixels {
		if p.Index == index {
			return p.Color, true
		}
	}
	return config.RGB{}, false
}

func TestColorPrecedence(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name      string
		cond      *weather.Condition
		windCycle bool
		want      config.RGB
	}{
		{
			name: "lightning wins over wind on the off phase",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryVFR,
				WindSpeedKts:   30,
				WindGust:       true,
				WindGustKts:    40,
				Lightning:      true,
			},
			windCycle: false,
			want:      cfg.Colors.Lightning,
		},
		{
			name: "high winds on the on phase",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryVFR,
				WindSpeedKts:   30,
				Lightning:      true, // lightning only renders on the off phase
			},
			windCycle: true,
			want:      cfg.Colors.HighWinds,
		},
		{
			name: "wind fade on the on phase",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryVFR,
				WindSpeedKts:   20,
			},
			windCycle: true,
			want:      cfg.Colors.VFRFade,
		},
		{
			name: "wind at exactly the blink threshold fades",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryVFR,
				WindSpeedKts:   15,
			},
			windCycle: true,
			want:      cfg.Colors.VFRFade,
		},
		{
			name: "calm station keeps its base color on the on phase",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryMVFR,
				WindSpeedKts:   5,
			},
			windCycle: true,
			want:      cfg.Colors.MVFR,
		},
		{
			name: "windy station shows base color on the off phase",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryIFR,
				WindSpeedKts:   20,
			},
			windCycle: false,
			want:      cfg.Colors.IFR,
		},
		{
			name: "gust flag triggers wind effect below sustained threshold",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryLIFR,
				WindSpeedKts:   5,
				WindGust:       true,
				WindGustKts:    18,
			},
			windCycle: true,
			want:      cfg.Colors.LIFRFade,
		},
		{
			name: "gust at high-wind threshold shows high-wind color",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryVFR,
				WindSpeedKts:   16,
				WindGust:       true,
				WindGustKts:    25,
			},
			windCycle: true,
			want:      cfg.Colors.HighWinds,
		},
		{
			name: "unknown category renders clear even with lightning",
			cond: &weather.Condition{
				FlightCategory: weather.CategoryUnknown,
				Lightning:      true,
			},
			windCycle: false,
			want:      cfg.Colors.Clear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler(cfg, []string{"KTST"}, map[string]*weather.Condition{"KTST": tt.cond}, nil)
			frame, _ := s.Advance(State{WindCycle: tt.windCycle, TicksRemaining: 1})

			got, ok := pixelAt(frame, 0)
			if !ok {
				t.Fatal("expected a pixel update for LED 0")
			}
			if got != tt.want {
				t.Errorf("color = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBlinkModeUsesClearInsteadOfFade(t *testing.T) {
	cfg := testConfig()
	cfg.Animation.FadeInsteadOfBlink = false

	cond := &weather.Condition{FlightCategory: weather.CategoryVFR, WindSpeedKts: 20}
	s := newTestScheduler(cfg, []string{"KTST"}, map[string]*weather.Condition{"KTST": cond}, nil)

	frame, _ := s.Advance(State{WindCycle: true, TicksRemaining: 1})
	got, _ := pixelAt(frame, 0)
	if got != cfg.Colors.Clear {
		t.Errorf("blink mode color = %+v, want clear", got)
	}
}

func TestHighWindsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Animation.HighWindsThresholdKts = -1

	cond := &weather.Condition{FlightCategory: weather.CategoryVFR, WindSpeedKts: 50}
	s := newTestScheduler(cfg, []string{"KTST"}, map[string]*weather.Condition{"KTST": cond}, nil)

	frame, _ := s.Advance(State{WindCycle: true, TicksRemaining: 1})
	got, _ := pixelAt(frame, 0)
	if got != cfg.Colors.VFRFade {
		t.Errorf("color = %+v, want VFR fade (high winds disabled)", got)
	}
}

func TestPlaceholderSlotSkipped(t *testing.T) {
	cfg := testConfig()
	conds := map[string]*weather.Condition{
		"KAAA": {FlightCategory: weather.CategoryVFR},
		"KBBB": {FlightCategory: weather.CategoryIFR},
	}
	s := newTestScheduler(cfg, []string{"KAAA", config.PlaceholderID, "KBBB"}, conds, nil)

	frame, _ := s.Advance(State{TicksRemaining: 1})

	if _, ok := pixelAt(frame, 1); ok {
		t.Error("placeholder slot received a pixel update")
	}
	// The slot after the placeholder keeps its un-shifted physical position
	got, ok := pixelAt(frame, 2)
	if !ok {
		t.Fatal("expected a pixel update for LED 2")
	}
	if got != cfg.Colors.IFR {
		t.Errorf("LED 2 color = %+v, want IFR", got)
	}
}

func TestUnreportedStationRendersClear(t *testing.T) {
	cfg := testConfig()
	s := newTestScheduler(cfg, []string{"KNOWX"}, map[string]*weather.Condition{}, nil)

	frame, _ := s.Advance(State{TicksRemaining: 1})
	got, ok := pixelAt(frame, 0)
	if !ok {
		t.Fatal("expected a pixel update for LED 0")
	}
	if got != cfg.Colors.Clear {
		t.Errorf("color = %+v, want clear", got)
	}
}

func TestTickBudget(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		want    int
	}{
		{
			name:   "animation enabled",
			mutate: func(c *config.Config) {},
			want:   300,
		},
		{
			name: "nothing animated renders once",
			mutate: func(c *config.Config) {
				c.Animation.Wind = false
				c.Animation.Lightning = false
				c.Display.Enabled = false
			},
			want: 1,
		},
		{
			name: "display alone keeps the loop running",
			mutate: func(c *config.Config) {
				c.Animation.Wind = false
				c.Animation.Lightning = false
				c.Display.Enabled = true
			},
			want: 300,
		},
		{
			name: "budget rounds to nearest tick",
			mutate: func(c *config.Config) {
				c.Animation.BlinkSpeedSeconds = 2.0
				c.Animation.BlinkTotalTimeSeconds = 301
			},
			want: 150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			s := newTestScheduler(cfg, []string{"KTST"}, nil, nil)
			if got := s.TickBudget(); got != tt.want {
				t.Errorf("TickBudget = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvancePhaseAndCountdown(t *testing.T) {
	cfg := testConfig()
	s := newTestScheduler(cfg, []string{"KTST"}, nil, nil)

	st := s.InitialState()
	if st.WindCycle {
		t.Error("wind cycle must start on the false half")
	}

	_, next := s.Advance(st)
	if !next.WindCycle {
		t.Error("wind cycle did not flip after a tick")
	}
	if next.TicksRemaining != st.TicksRemaining-1 {
		t.Errorf("TicksRemaining = %d, want %d", next.TicksRemaining, st.TicksRemaining-1)
	}

	_, afterTwo := s.Advance(next)
	if afterTwo.WindCycle {
		t.Error("wind cycle did not flip back on the second tick")
	}
}

func TestLegendPixels(t *testing.T) {
	cfg := testConfig()
	cfg.Legend.Enabled = true
	cfg.Legend.Offset = 2

	airports := []string{"KAAA", "KBBB"}
	s := newTestScheduler(cfg, airports, nil, nil)

	start := len(airports) + cfg.Legend.Offset

	t.Run("off phase", func(t *testing.T) {
		frame, _ := s.Advance(State{WindCycle: false, TicksRemaining: 1})
		wantColors := []config.RGB{
			cfg.Colors.VFR, cfg.Colors.MVFR, cfg.Colors.IFR, cfg.Colors.LIFR,
			cfg.Colors.VFR, // lightning swatch idle
			cfg.Colors.VFR, // wind swatch idle
			cfg.Colors.VFR, // high wind swatch idle
		}
		for i, want := range wantColors {
			got, ok := pixelAt(frame, start+i)
			if !ok {
				t.Fatalf("no legend pixel at index %d", start+i)
			}
			if got != want {
				t.Errorf("legend pixel %d = %+v, want %+v", i, got, want)
			}
		}
	})

	t.Run("on phase animates swatches", func(t *testing.T) {
		frame, _ := s.Advance(State{WindCycle: true, TicksRemaining: 1})
		if got, _ := pixelAt(frame, start+4); got != cfg.Colors.Lightning {
			t.Errorf("lightning swatch = %+v, want lightning color", got)
		}
		if got, _ := pixelAt(frame, start+5); got != cfg.Colors.VFRFade {
			t.Errorf("wind swatch = %+v, want VFR fade", got)
		}
		if got, _ := pixelAt(frame, start+6); got != cfg.Colors.HighWinds {
			t.Errorf("high wind swatch = %+v, want high winds color", got)
		}
	})
}

func TestDisplayRotation(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Enabled = true
	cfg.Display.RotationSpeedSeconds = 2.0
	cfg.Animation.BlinkSpeedSeconds = 1.0

	conds := map[string]*weather.Condition{
		"KAAA": {FlightCategory: weather.CategoryVFR},
		"KBBB": {FlightCategory: weather.CategoryIFR},
	}
	s := newTestScheduler(cfg, []string{"KAAA", "KBBB"}, conds, []string{"KAAA", "KBBB"})

	st := s.InitialState()

	// Ticks 0..2: elapsed 0, 1, 2 are all within the rotation window
	for i := 0; i < 3; i++ {
		var frame Frame
		frame, st = s.Advance(st)
		if frame.Display == nil {
			t.Fatalf("tick %d: expected a display frame", i)
		}
		if frame.Display.Station != "KAAA" {
			t.Fatalf("tick %d: station = %s, want KAAA", i, frame.Display.Station)
		}
	}

	// Elapsed now exceeds the window: this tick rotates without rendering
	frame, st := s.Advance(st)
	if frame.Display != nil {
		t.Fatal("rotation tick should not render the display")
	}
	if st.DisplayIndex != 1 {
		t.Fatalf("DisplayIndex = %d, want 1", st.DisplayIndex)
	}

	// Next tick shows the new station
	frame, _ = s.Advance(st)
	if frame.Display == nil || frame.Display.Station != "KBBB" {
		t.Fatalf("expected KBBB on the display, got %+v", frame.Display)
	}
	if frame.Display.Condition != conds["KBBB"] {
		t.Error("display frame carries the wrong condition")
	}
}

func TestDisplayRotationWraps(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Enabled = true
	cfg.Display.RotationSpeedSeconds = 0.5
	cfg.Animation.BlinkSpeedSeconds = 1.0

	s := newTestScheduler(cfg, []string{"KAAA", "KBBB"},
		map[string]*weather.Condition{}, []string{"KAAA", "KBBB"})

	// Start on the last station with the window already exceeded
	_, next := s.Advance(State{DisplayIndex: 1, DisplayElapsed: 1.0, TicksRemaining: 2})
	if next.DisplayIndex != 0 {
		t.Errorf("DisplayIndex = %d, want wrap to 0", next.DisplayIndex)
	}
	if next.DisplayElapsed != 0 {
		t.Errorf("DisplayElapsed = %f, want reset to 0", next.DisplayElapsed)
	}
}

func TestMaxIndex(t *testing.T) {
	cfg := testConfig()
	airports := []string{"KAAA", "KBBB", "KCCC"}

	t.Run("no legend", func(t *testing.T) {
		s := newTestScheduler(cfg, airports, nil, nil)
		if got := s.MaxIndex(); got != 2 {
			t.Errorf("MaxIndex = %d, want 2", got)
		}
	})

	t.Run("legend with all swatches", func(t *testing.T) {
		c := testConfig()
		c.Legend.Enabled = true
		c.Legend.Offset = 1
		s := newTestScheduler(c, airports, nil, nil)
		// 3 airports + offset 1 + 6 swatch positions
		if got := s.MaxIndex(); got != 10 {
			t.Errorf("MaxIndex = %d, want 10", got)
		}
	})
}
