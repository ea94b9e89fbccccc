package leds

import (
	"github.com/ejmmje/METARMap/internal/config"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// ConsoleStrip is a Strip that logs writes instead of driving hardware.
// Used by tests and by builds without the ws281x tag.
type ConsoleStrip struct {
	colors []config.RGB
	logger *logger.Logger
}

// NewConsole creates a console strip with the given LED count
func NewConsole(count int, log *logger.Logger) *ConsoleStrip {
	return &ConsoleStrip{
		colors: make([]config.RGB, count),
		logger: log.Named("console-strip"),
	}
}

// Set stages a color for one LED
func (s *ConsoleStrip) Set(index int, c config.RGB) {
	if index < 0 || index >= len(s.colors) {
		return
	}
	s.colors[index] = c
}

// Show logs the staged buffer as one frame
func (s *ConsoleStrip) Show() error {
	s.logger.Debug("Strip frame", logger.Any("colors", s.colors))
	return nil
}

// Off blanks the strip
func (s *ConsoleStrip) Off() error {
	for i := range s.colors {
		s.colors[i] = config.RGB{}
	}
	return s.Show()
}

// Close releases nothing for the console strip
func (s *ConsoleStrip) Close() error {
	return nil
}

// Colors exposes the staged buffer for tests
func (s *ConsoleStrip) Colors() []config.RGB {
	return s.colors
}
