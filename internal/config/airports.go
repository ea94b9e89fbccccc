package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PlaceholderID marks an LED position with no station mounted. Placeholder
// slots are never written to the strip but still occupy their physical index.
const PlaceholderID = "NULL"

// LoadAirports reads the ordered airport list, one ICAO identifier per line,
// one-to-one with physical LED positions. Placeholder entries are preserved.
func LoadAirports(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airports file: %w", err)
	}
	defer file.Close()

	var airports []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		airports = append(airports, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read airports file: %w", err)
	}

	if len(airports) == 0 {
		return nil, fmt.Errorf("airports file is empty: %s", path)
	}

	return airports, nil
}

// LoadDisplayAirports reads the optional display subset file. A missing file
// is not an error: it means the display rotates through all parsed stations.
func LoadDisplayAirports(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadAirports(path)
}

// StationIDs returns the airports list with placeholder entries removed,
// suitable for the upstream API query.
func StationIDs(airports []string) []string {
	ids := make([]string, 0, len(airports))
	for _, a := range airports {
		if a != PlaceholderID {
			ids = append(ids, a)
		}
	}
	return ids
}
