package action

import (
	"encoding/json"
	"math"
)

const (
	MinUTCOffsetMinutes = -720
	MaxUTCOffsetMinutes = 840
)

// ResolveOffset picks the caller's UTC offset: the params field, then the
// context field, then the header. The first finite number wins, whatever
// its value.
func ResolveOffset(params, context json.RawMessage, header string) (float64, bool) {
	if v, ok := FiniteNumber(params); ok {
		return v, true
	}
	if v, ok := FiniteNumber(context); ok {
		return v, true
	}
	return FiniteHeaderNumber(header)
}

// ValidOffset reports whether v is a whole number of minutes inside the
// range real time zones use.
func ValidOffset(v float64) bool {
	return v == math.Trunc(v) && v >= MinUTCOffsetMinutes && v <= MaxUTCOffsetMinutes
}
