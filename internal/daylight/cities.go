package daylight

import "strings"

// City is one entry in the builtin sunrise/sunset location table
type City struct {
	Latitude  float64
	Longitude float64
	Timezone  string
}

// cities maps lower-cased location names to coordinates and timezone.
// Covers the locations commonly used for METAR maps; anything else falls
// back to the fixed bright/dim times.
var cities = map[string]City{
	"amsterdam":     {52.3676, 4.9041, "Europe/Amsterdam"},
	"atlanta":       {33.7490, -84.3880, "America/New_York"},
	"auckland":      {-36.8485, 174.7633, "Pacific/Auckland"},
	"berlin":        {52.5200, 13.4050, "Europe/Berlin"},
	"boston":        {42.3601, -71.0589, "America/New_York"},
	"chicago":       {41.8781, -87.6298, "America/Chicago"},
	"dallas":        {32.7767, -96.7970, "America/Chicago"},
	"denver":        {39.7392, -104.9903, "America/Denver"},
	"dublin":        {53.3498, -6.2603, "Europe/Dublin"},
	"edinburgh":     {55.9533, -3.1883, "Europe/London"},
	"london":        {51.5074, -0.1278, "Europe/London"},
	"los angeles":   {34.0522, -118.2437, "America/Los_Angeles"},
	"madrid":        {40.4168, -3.7038, "Europe/Madrid"},
	"melbourne":     {-37.8136, 144.9631, "Australia/Melbourne"},
	"miami":         {25.7617, -80.1918, "America/New_York"},
	"minneapolis":   {44.9778, -93.2650, "America/Chicago"},
	"new york":      {40.7128, -74.0060, "America/New_York"},
	"paris":         {48.8566, 2.3522, "Europe/Paris"},
	"phoenix":       {33.4484, -112.0740, "America/Phoenix"},
	"rome":          {41.9028, 12.4964, "Europe/Rome"},
	"san francisco": {37.7749, -122.4194, "America/Los_Angeles"},
	"seattle":       {47.6062, -122.3321, "America/Los_Angeles"},
	"sydney":        {-33.8688, 151.2093, "Australia/Sydney"},
	"toronto":       {43.6532, -79.3832, "America/Toronto"},
	"vancouver":     {49.2827, -123.1207, "America/Vancouver"},
}

// LookupCity resolves a configured location name, case-insensitively
func LookupCity(name string) (City, bool) {
	c, ok := cities[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
