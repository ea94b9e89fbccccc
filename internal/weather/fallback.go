package weather

import (
	"github.com/ejmmje/METARMap/internal/geo"
	"github.com/ejmmje/METARMap/pkg/logger"
)

// FallbackResolver fills in missing flight categories from the nearest
// station that reports one
type FallbackResolver struct {
	logger *logger.Logger
}

// NewFallbackResolver creates a new fallback resolver
func NewFallbackResolver(logger *logger.Logger) *FallbackResolver {
	return &FallbackResolver{logger: logger.Named("category-fallback")}
}

// Resolve overwrites the flight category of every condition whose category is
// empty and whose coordinates are known, copying it from the nearest station
// (by great-circle distance) that has a category and valid coordinates. Ties
// go to the first minimum in iteration order. Returns the number of stations
// resolved. It never fails: with no valid reference stations every missing
// category is left empty and renders as the off color downstream.
func (r *FallbackResolver) Resolve(result *ClassifyResult) int {
	var valid []StationMeta
	for _, m := range result.Meta {
		if m.FlightCategory != CategoryUnknown && m.Latitude != 0 && m.Longitude != 0 {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	resolved := 0
	for _, m := range result.Meta {
		if m.FlightCategory != CategoryUnknown || m.Latitude == 0 || m.Longitude == 0 {
			continue
		}

		var nearest *StationMeta
		nearestDist := 0.0
		for i := range valid {
			ref := &valid[i]
			dist := geo.Haversine(m.Latitude, m.Longitude, ref.Latitude, ref.Longitude)
			if nearest == nil || dist < nearestDist {
				nearest = ref
				nearestDist = dist
			}
		}

		if nearest != nil {
			result.Conditions[m.ICAOID].FlightCategory = nearest.FlightCategory
			resolved++
			r.logger.Info("Missing flight category, using nearest station",
				logger.String("station", m.ICAOID),
				logger.String("nearest", nearest.ICAOID),
				logger.Float64("distance_km", nearestDist),
				logger.String("category", string(nearest.FlightCategory)))
		}
	}

	return resolved
}
