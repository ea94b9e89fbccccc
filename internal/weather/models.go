package weather

import "time"

// FlightCategory is the ceiling/visibility-derived severity classification
// reported by the upstream API.
type FlightCategory string

const (
	CategoryVFR     FlightCategory = "VFR"
	CategoryMVFR    FlightCategory = "MVFR"
	CategoryIFR     FlightCategory = "IFR"
	CategoryLIFR    FlightCategory = "LIFR"
	CategoryUnknown FlightCategory = ""
)

// StationRecord represents one raw METAR observation as returned by the
// aviationweather.gov JSON API. The upstream field set is inconsistently
// typed (numbers as strings, missing keys, explicit nulls), so scalar fields
// are decoded loosely and normalized before use.
type StationRecord struct {
	ICAOID         interface{}  `json:"icaoId"`
	ObsTime        interface{}  `json:"obsTime"`
	Temp           interface{}  `json:"temp"`
	Dewpoint       interface{}  `json:"dewp"`
	WindDir        interface{}  `json:"wdir"`
	WindSpeed      interface{}  `json:"wspd"`
	WindGust       interface{}  `json:"wgst"`
	Visibility     interface{}  `json:"visib"`
	Altimeter      interface{}  `json:"altim"`
	WxString       interface{}  `json:"wxString"`
	RawOb          interface{}  `json:"rawOb"`
	Latitude       interface{}  `json:"lat"`
	Longitude      interface{}  `json:"lon"`
	Name           interface{}  `json:"name"`
	FlightCategory interface{}  `json:"fltCat"`
	Clouds         []CloudLayer `json:"clouds"`
}

// CloudLayer represents one reported cloud layer
type CloudLayer struct {
	Cover string      `json:"cover"`
	Base  interface{} `json:"base"`
}

// Condition is the derived per-station condition record. Conditions are
// created once per fetch cycle and never mutated afterwards, except for
// FlightCategory which the fallback resolver may fill in when empty.
type Condition struct {
	FlightCategory FlightCategory `json:"flight_category"`
	ObsTime        time.Time      `json:"obs_time"`
	WindDir        string         `json:"wind_dir"`
	WindSpeedKts   int            `json:"wind_speed_kts"`
	WindGust       bool           `json:"wind_gust"`
	WindGustKts    int            `json:"wind_gust_kts"`
	VisibilitySM   int            `json:"visibility_sm"`
	WxString       string         `json:"wx_string"`
	TempC          int            `json:"temp_c"`
	DewpointC      int            `json:"dewpoint_c"`
	Altimeter      float64        `json:"altimeter"`
	SkyConditions  []SkyCondition `json:"sky_conditions"`
	Lightning      bool           `json:"lightning"`
	Latitude       float64        `json:"lat"`
	Longitude      float64        `json:"lon"`
}

// SkyCondition is one normalized cloud layer
type SkyCondition struct {
	Cover  string `json:"cover"`
	BaseFt int    `json:"base_ft"`
}

// StationMeta is the subset of a Condition used for nearest-neighbor
// category fallback. Read-only after creation.
type StationMeta struct {
	ICAOID         string         `json:"icao_id"`
	Latitude       float64        `json:"lat"`
	Longitude      float64        `json:"lon"`
	FlightCategory FlightCategory `json:"flight_category"`
}

// ClassifyResult is the output of one classification pass over a fetch
type ClassifyResult struct {
	// Conditions maps station identifier to its derived condition record
	Conditions map[string]*Condition
	// Stations is the ordered list of parsed identifiers shown on the
	// rotating display (restricted to the display subset when one is set)
	Stations []string
	// Meta holds one entry per accepted record, for fallback resolution
	Meta []StationMeta
}
