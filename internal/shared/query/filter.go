// Package query provides optional filter values and the sentinel rules used to parse them.
package query

import (
	"math"
	"strconv"
	"strings"
)

// PriceUnbounded is the upper price bound treated as "no maximum".
const PriceUnbounded = 999999

// unsetMarkers are the raw inputs that mean "filter not applied".
var unsetMarkers = map[string]struct{}{
	"":          {},
	"none":      {},
	"null":      {},
	"undefined": {},
}

// IsUnset reports whether raw is one of the "not set" markers.
func IsUnset(raw string) bool {
	_, ok := unsetMarkers[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ParseID parses a dropdown value into an identifier.
// Unset markers, non-numeric text and non-positive numbers are absent.
func ParseID(raw string) Optional[int64] {
	if IsUnset(raw) {
		return None[int64]()
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return None[int64]()
	}
	return Some(id)
}

// ParseIDs parses a multi-select into the identifiers it holds, dropping invalid entries.
// An empty result means the filter is absent.
func ParseIDs(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		if id, ok := ParseID(r).Get(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParseYear treats zero and negative years as absent.
func ParseYear(year int) Optional[int] {
	if year <= 0 {
		return None[int]()
	}
	return Some(year)
}

// ParseYearString parses a year from text, e.g. a query string parameter.
func ParseYearString(raw string) Optional[int] {
	if IsUnset(raw) {
		return None[int]()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 {
		return None[int]()
	}
	return ParseYear(int(f))
}

// PriceMin applies only to strictly positive lower bounds.
func PriceMin(v float64) Optional[float64] {
	if math.IsNaN(v) || v <= 0 {
		return None[float64]()
	}
	return Some(v)
}

// PriceMax applies only to strictly positive upper bounds below PriceUnbounded.
func PriceMax(v float64) Optional[float64] {
	if math.IsNaN(v) || v <= 0 || v >= PriceUnbounded {
		return None[float64]()
	}
	return Some(v)
}

// PriceMinPtr and PriceMaxPtr accept the nil "left empty" input from JSON bodies.
func PriceMinPtr(v *float64) Optional[float64] {
	if v == nil {
		return None[float64]()
	}
	return PriceMin(*v)
}

func PriceMaxPtr(v *float64) Optional[float64] {
	if v == nil {
		return None[float64]()
	}
	return PriceMax(*v)
}
