package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defensive parsing of heterogeneous API field values. The upstream API
// returns numbers as JSON numbers or strings depending on the station, and
// omits or nulls fields freely. Every value pulled from a StationRecord goes
// through one of these before downstream logic trusts it. Parse failures
// never propagate: the supplied default is returned instead.

// NormalizeStr returns the trimmed string form of v. Nil and the literal
// text "None" are treated as absent and replaced with the default.
func NormalizeStr(v interface{}, def string) string {
	switch s := v.(type) {
	case nil:
		return def
	case string:
		if s == "None" {
			return def
		}
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// NormalizeFloat returns v as a float64. Strings are trimmed and parsed;
// empty strings and unparseable values yield the default.
func NormalizeFloat(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		t := strings.TrimSpace(n)
		if t == "" {
			return def
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// NormalizeInt returns v as an int, truncating any fractional part
func NormalizeInt(v interface{}, def int) int {
	return int(NormalizeFloat(v, float64(def)))
}

// NormalizeRound returns v rounded to the nearest whole number using
// round-half-to-even, for fields that must present as integers
// (temperature, dewpoint).
func NormalizeRound(v interface{}, def int) int {
	if v == nil {
		return def
	}
	return int(math.RoundToEven(NormalizeFloat(v, float64(def))))
}
