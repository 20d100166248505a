package smarthome

import (
	"math"
	"strconv"
	"strings"

	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/unit"
)

// absentValues are raw values meaning "no current reading". Compared
// case-insensitively; "-" is the no-value marker some integrations render.
var absentValues = map[string]struct{}{
	"unavailable": {},
	"unknown":     {},
	"none":        {},
	"":            {},
	"-":           {},
}

// IsAbsent reports whether raw is a "no current value" sentinel.
func IsAbsent(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		_, ok := absentValues[strings.ToLower(strings.TrimSpace(v))]
		return ok
	}
	return false
}

// Bounds is the declared numeric range of an instance.
type Bounds struct {
	Min float64
	Max float64
}

// Unbounded passes every value through.
var Unbounded = Bounds{Min: math.Inf(-1), Max: math.Inf(1)}

// AtLeast bounds values from below only.
func AtLeast(lower float64) Bounds {
	return Bounds{Min: lower, Max: math.Inf(1)}
}

// Between bounds values on both sides.
func Between(lower, upper float64) Bounds {
	return Bounds{Min: lower, Max: upper}
}

// Clamp limits v to the bounds.
func (b Bounds) Clamp(v float64) float64 {
	return math.Min(math.Max(v, b.Min), b.Max)
}

// Target describes how a raw value becomes a protocol value.
type Target struct {
	EntityID string
	Instance string

	// Converter is nil for instances without unit conversion. NativeUnit is
	// the unit of the raw value; an empty NativeUnit means it is already in Unit.
	Converter  unit.Converter
	NativeUnit unit.Unit
	Unit       unit.Unit

	// Bounds is the declared range; the zero value means unbounded.
	Bounds Bounds
}

// Normalize parses, converts, clamps and rounds raw. It returns nil without
// error when raw is an absent sentinel.
func Normalize(raw any, t Target) (*float64, error) {
	if IsAbsent(raw) {
		return nil, nil
	}

	value, ok := parseFloat(raw)
	if !ok {
		return nil, UnsupportedValue(t.EntityID, t.Instance, raw)
	}

	if t.Converter != nil && t.NativeUnit != "" && unit.Canonical(t.NativeUnit) != unit.Canonical(t.Unit) {
		converted, err := t.Converter.Convert(value, t.NativeUnit, t.Unit)
		if err != nil {
			return nil, UnsupportedUnit(t.EntityID, t.Instance, err)
		}
		value = converted
	}

	value = Round(t.bounds().Clamp(value))
	return &value, nil
}

func (t Target) bounds() Bounds {
	if t.Bounds == (Bounds{}) {
		return Unbounded
	}
	return t.Bounds
}

// Round rounds v to two decimal places.
func Round(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

func parseFloat(raw any) (float64, bool) {
	var value float64
	switch v := raw.(type) {
	case bool:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		value = f
	default:
		f, ok := ha.ToFloat(v)
		if !ok {
			return 0, false
		}
		value = f
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
