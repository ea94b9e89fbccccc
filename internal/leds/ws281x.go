//go:build ws281x

package leds

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// ws281xStrip drives a WS281x strip through the rpi-ws281x C library
type ws281xStrip struct {
	dev    *ws2811.WS2811
	order  string
	count  int
	logger *logger.Logger
}

func newDeviceStrip(cfg config.LEDConfig, brightness float64, log *logger.Logger) (Strip, error) {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = cfg.Pin
	opt.Channels[0].LedCount = cfg.Count
	opt.Channels[0].Brightness = int(brightness * 255)
	opt.Channels[0].StripeType = stripeType(cfg.ColorOrder)

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create WS281x device: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize WS281x device: %w", err)
	}

	log.Named("ws281x").Info("LED strip initialized",
		logger.Int("count", cfg.Count),
		logger.Int("pin", cfg.Pin),
		logger.Float64("brightness", brightness),
		logger.String("color_order", cfg.ColorOrder))

	return &ws281xStrip{
		dev:    dev,
		order:  cfg.ColorOrder,
		count:  cfg.Count,
		logger: log.Named("ws281x"),
	}, nil
}

func stripeType(order string) int {
	switch order {
	case "RGB":
		return ws2811.StripRGB
	case "BRG":
		return ws2811.StripBRG
	case "BGR":
		return ws2811.StripBGR
	default:
		return ws2811.StripGRB
	}
}

// Set stages a color into the device buffer. The stripe type handles the
// physical color order, so the buffer always holds 0xRRGGBB.
func (s *ws281xStrip) Set(index int, c config.RGB) {
	if index < 0 || index >= s.count {
		return
	}
	s.dev.Leds(0)[index] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Show pushes the whole buffer to the strip in one render
func (s *ws281xStrip) Show() error {
	if err := s.dev.Render(); err != nil {
		return fmt.Errorf("failed to render LED strip: %w", err)
	}
	return nil
}

// Off blanks every LED
func (s *ws281xStrip) Off() error {
	buf := s.dev.Leds(0)
	for i := range buf {
		buf[i] = 0
	}
	return s.Show()
}

// Close blanks the strip and releases the device
func (s *ws281xStrip) Close() error {
	if err := s.Off(); err != nil {
		s.logger.Warn("Failed to blank strip on close", logger.Error(err))
	}
	s.dev.Fini()
	return nil
}
