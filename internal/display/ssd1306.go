package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/internal/weather"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// OLED drives an SSD1306 display over I2C
type OLED struct {
	bus    i2c.BusCloser
	dev    *ssd1306.Dev
	opts   RenderOptions
	logger *logger.Logger
}

// NewOLED opens the I2C bus and initializes the SSD1306 display
func NewOLED(cfg config.DisplayConfig, log *logger.Logger) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: cfg.Width, H: cfg.Height})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize SSD1306: %w", err)
	}

	log.Named("display").Info("External display initialized",
		logger.Int("width", cfg.Width),
		logger.Int("height", cfg.Height))

	return &OLED{
		bus:    bus,
		dev:    dev,
		opts:   RenderOptions{WindInMagnetic: cfg.WindInMagnetic},
		logger: log.Named("display"),
	}, nil
}

// Clear blanks the display
func (o *OLED) Clear() error {
	img := image1bit.NewVerticalLSB(o.dev.Bounds())
	return o.dev.Draw(o.dev.Bounds(), img, image.Point{})
}

// Render draws the METAR page for one station
func (o *OLED) Render(station string, cond *weather.Condition) error {
	img := image1bit.NewVerticalLSB(o.dev.Bounds())
	RenderCondition(img, station, cond, o.opts)
	if err := o.dev.Draw(o.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("failed to draw display frame: %w", err)
	}
	return nil
}

// Shutdown blanks and halts the display and closes the bus
func (o *OLED) Shutdown() error {
	if err := o.Clear(); err != nil {
		o.logger.Warn("Failed to clear display on shutdown", logger.Error(err))
	}
	if err := o.dev.Halt(); err != nil {
		o.logger.Warn("Failed to halt display", logger.Error(err))
	}
	return o.bus.Close()
}
