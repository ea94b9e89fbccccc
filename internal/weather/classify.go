package weather

import (
	"regexp"
	"strings"
	"time"

	"github.com/ejmmje/METARMap/pkg/logger"
)

// lightningPattern recognizes thunderstorm and lightning phenomenon codes in
// the raw report text: general thunderstorm codes (VCTS, TS with optional
// intensity and precipitation qualifiers), lightning-type codes (LTGIC,
// LTGCC, LTGCG, LTGCA) and frequency/occurrence-qualified lightning mentions
// (FRQ/OCNL/CONS/DSNT LTG).
var lightningPattern = regexp.MustCompile(`\b(VCTS|[-+]?TS(?:RA|SN|PL|GR|SG|GS|SH|UP|SP|SNRA)?|LTG(?:IC|CC|CG|CA)?|(?:FRQ|OCNL|CONS|DSNT)\s+LTG)\b`)

// tsNotObserved matches the "thunderstorm information not available" token,
// which suppresses lightning detection for the whole report
var tsNotObserved = regexp.MustCompile(`\bTSNO\b`)

// epochSentinel is substituted when the observation timestamp is unparseable
var epochSentinel = time.Unix(0, 0).UTC()

// ClassifierConfig contains the settings the classifier needs to derive the
// per-station gust flag
type ClassifierConfig struct {
	AlwaysBlinkForGusts   bool
	WindBlinkThresholdKts int
}

// Classifier turns raw station records into per-station condition records
type Classifier struct {
	config ClassifierConfig
	logger *logger.Logger
}

// NewClassifier creates a new station classifier
func NewClassifier(cfg ClassifierConfig, logger *logger.Logger) *Classifier {
	return &Classifier{
		config: cfg,
		logger: logger.Named("classifier"),
	}
}

// Classify normalizes and classifies one fetch worth of station records.
// Records with an empty station identifier are silently dropped. When
// displaySubset is non-nil, the rotating display list is restricted to it.
func (c *Classifier) Classify(records []StationRecord, displaySubset []string) *ClassifyResult {
	result := &ClassifyResult{
		Conditions: make(map[string]*Condition, len(records)),
	}

	var subset map[string]bool
	if displaySubset != nil {
		subset = make(map[string]bool, len(displaySubset))
		for _, id := range displaySubset {
			subset[id] = true
		}
	}

	for _, rec := range records {
		icaoID := NormalizeStr(rec.ICAOID, "")
		if icaoID == "" {
			continue
		}

		cond := c.classifyRecord(rec)
		result.Conditions[icaoID] = cond
		result.Meta = append(result.Meta, StationMeta{
			ICAOID:         icaoID,
			Latitude:       cond.Latitude,
			Longitude:      cond.Longitude,
			FlightCategory: cond.FlightCategory,
		})

		if subset == nil || subset[icaoID] {
			result.Stations = append(result.Stations, icaoID)
		}

		c.logger.Debug("Classified station",
			logger.String("station", icaoID),
			logger.String("category", string(cond.FlightCategory)),
			logger.Int("wind_kts", cond.WindSpeedKts),
			logger.Bool("gust", cond.WindGust),
			logger.Bool("lightning", cond.Lightning))
	}

	c.logger.Info("Parsed stations", logger.Int("count", len(result.Conditions)))
	return result
}

// classifyRecord normalizes every field of one raw record into a Condition
func (c *Classifier) classifyRecord(rec StationRecord) *Condition {
	gustKts := NormalizeInt(rec.WindGust, 0)
	rawOb := NormalizeStr(rec.RawOb, "")

	cond := &Condition{
		FlightCategory: FlightCategory(NormalizeStr(rec.FlightCategory, "")),
		ObsTime:        parseObsTime(rec.ObsTime),
		WindDir:        NormalizeStr(rec.WindDir, ""),
		WindSpeedKts:   NormalizeInt(rec.WindSpeed, 0),
		WindGust:       c.config.AlwaysBlinkForGusts || gustKts >= c.config.WindBlinkThresholdKts,
		WindGustKts:    gustKts,
		VisibilitySM:   parseVisibility(rec.Visibility),
		WxString:       NormalizeStr(rec.WxString, ""),
		TempC:          NormalizeRound(rec.Temp, 0),
		DewpointC:      NormalizeRound(rec.Dewpoint, 0),
		Altimeter:      NormalizeFloat(rec.Altimeter, 0),
		Lightning:      detectLightning(rawOb),
		Latitude:       NormalizeFloat(rec.Latitude, 0),
		Longitude:      NormalizeFloat(rec.Longitude, 0),
	}

	// The cloud layer list may be empty; an absent list renders as no layers
	for _, layer := range rec.Clouds {
		cond.SkyConditions = append(cond.SkyConditions, SkyCondition{
			Cover:  layer.Cover,
			BaseFt: NormalizeInt(layer.Base, 0),
		})
	}

	return cond
}

// parseObsTime converts the epoch-seconds observation time into a timestamp,
// substituting the epoch sentinel when the value is unparseable
func parseObsTime(v interface{}) time.Time {
	sec := int64(NormalizeFloat(v, -1))
	if sec <= 0 {
		return epochSentinel
	}
	return time.Unix(sec, 0).UTC()
}

// parseVisibility takes the visibility field as text, strips the leading "+"
// used for "10+" style reports, and integer-normalizes the remainder
func parseVisibility(v interface{}) int {
	s := NormalizeStr(v, "0")
	if s == "" {
		s = "0"
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "+", ""))
	return NormalizeInt(s, 0)
}

// detectLightning reports whether the raw report text mentions thunderstorm
// or lightning phenomena. The explicit TSNO token suppresses detection even
// when another token is present.
func detectLightning(rawOb string) bool {
	upper := strings.ToUpper(rawOb)
	if tsNotObserved.MatchString(upper) {
		return false
	}
	return lightningPattern.MatchString(upper)
}
