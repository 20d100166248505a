// Package unit converts physical quantities between the measurement units
// reported by Home Assistant integrations and the canonical units of the
// smart home protocol.
//
// Every quantity has its own Converter with a fixed normalized unit. A value
// is always converted source unit -> normalized unit -> target unit; there are
// no pairwise tables. Converters never round, rounding is the caller's concern.
package unit

import (
	"errors"
	"fmt"
)

// ErrUnsupportedUnit is returned when a unit is not in a converter's valid-unit set.
var ErrUnsupportedUnit = errors.New("unit: unsupported unit")

// Unit is a measurement unit symbol as Home Assistant reports it in the
// unit_of_measurement attribute.
type Unit string

// Temperature units.
const (
	Celsius    Unit = "°C"
	Fahrenheit Unit = "°F"
	Kelvin     Unit = "K"
)

// Pressure units.
const (
	Pascal              Unit = "Pa"
	Hectopascal         Unit = "hPa"
	Kilopascal          Unit = "kPa"
	Bar                 Unit = "bar"
	Centibar            Unit = "cbar"
	Millibar            Unit = "mbar"
	MillimeterOfMercury Unit = "mmHg"
	InchOfMercury       Unit = "inHg"
	PoundPerSquareInch  Unit = "psi"
	Atmosphere          Unit = "atm"
)

// Concentration units used for volatile organic compounds.
const (
	MicrogramsPerCubicMeter Unit = "μg/m³"
	MilligramsPerCubicMeter Unit = "mg/m³"
	MicrogramsPerCubicFoot  Unit = "μg/ft³"
	PartsPerMillion         Unit = "ppm"
	PartsPerBillion         Unit = "ppb"
)

// Electric current units.
const (
	Ampere      Unit = "A"
	Milliampere Unit = "mA"
)

// Electric potential units.
const (
	Volt      Unit = "V"
	Millivolt Unit = "mV"
)

// Power units.
const (
	Watt     Unit = "W"
	Kilowatt Unit = "kW"
)

// Energy units.
const (
	WattHour     Unit = "Wh"
	KilowattHour Unit = "kWh"
	MegawattHour Unit = "MWh"
	Megajoule    Unit = "MJ"
	Gigajoule    Unit = "GJ"
)

// Volume units.
const (
	CubicMeter      Unit = "m³"
	Liter           Unit = "L"
	Milliliter      Unit = "mL"
	CubicFoot       Unit = "ft³"
	Gallon          Unit = "gal"
	CentumCubicFoot Unit = "CCF"
)

// Other units that are recognised but never converted.
const (
	Percent     Unit = "%"
	Lux         Unit = "lx"
	Gigacalorie Unit = "Gcal"
)

// aliases maps alternative spellings seen in the wild to the canonical symbol.
var aliases = map[Unit]Unit{
	"µg/m³": MicrogramsPerCubicMeter, // micro sign instead of greek mu
	"µg/ft³": MicrogramsPerCubicFoot,
	"ug/m3":  MicrogramsPerCubicMeter,
	"mg/m3":  MilligramsPerCubicMeter,
	"l":      Liter,
	"ml":     Milliliter,
	"m3":     CubicMeter,
	"ft3":    CubicFoot,
	"C":      Celsius,
	"F":      Fahrenheit,
}

// Canonical returns the canonical spelling of u.
func Canonical(u Unit) Unit {
	if c, ok := aliases[u]; ok {
		return c
	}
	return u
}

// Converter converts values of one physical quantity.
type Converter interface {
	// Quantity names the physical quantity, e.g. "pressure".
	Quantity() string

	// NormalizedUnit is the pivot every conversion passes through.
	NormalizedUnit() Unit

	// Units lists the valid units in a stable order.
	Units() []Unit

	// Supports reports whether u is a valid unit of this converter.
	Supports(u Unit) bool

	// Convert converts value from one unit to another.
	Convert(value float64, from, to Unit) (float64, error)
}

// linearConverter is a purely multiplicative converter. factors holds how many
// normalized units one unit is worth.
type linearConverter struct {
	quantity   string
	normalized Unit
	order      []Unit
	factors    map[Unit]float64
}

func newLinearConverter(quantity string, normalized Unit, table []unitFactor) *linearConverter {
	c := &linearConverter{
		quantity:   quantity,
		normalized: normalized,
		order:      make([]Unit, 0, len(table)),
		factors:    make(map[Unit]float64, len(table)),
	}
	for _, f := range table {
		c.order = append(c.order, f.unit)
		c.factors[f.unit] = f.factor
	}
	return c
}

type unitFactor struct {
	unit   Unit
	factor float64
}

func (c *linearConverter) Quantity() string     { return c.quantity }
func (c *linearConverter) NormalizedUnit() Unit { return c.normalized }
func (c *linearConverter) Units() []Unit        { return append([]Unit(nil), c.order...) }

func (c *linearConverter) Supports(u Unit) bool {
	_, ok := c.factors[Canonical(u)]
	return ok
}

func (c *linearConverter) Convert(value float64, from, to Unit) (float64, error) {
	fromFactor, err := c.factor(from)
	if err != nil {
		return 0, err
	}
	toFactor, err := c.factor(to)
	if err != nil {
		return 0, err
	}
	if fromFactor == toFactor {
		return value, nil
	}

	normalized := value * fromFactor
	return normalized / toFactor, nil
}

func (c *linearConverter) factor(u Unit) (float64, error) {
	f, ok := c.factors[Canonical(u)]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", ErrUnsupportedUnit, u, c.quantity)
	}
	return f, nil
}

// temperatureConverter handles the affine temperature scales. Each unit
// carries its own formula to and from Celsius.
type temperatureConverter struct{}

func (temperatureConverter) Quantity() string     { return "temperature" }
func (temperatureConverter) NormalizedUnit() Unit { return Celsius }
func (temperatureConverter) Units() []Unit        { return []Unit{Celsius, Fahrenheit, Kelvin} }

func (t temperatureConverter) Supports(u Unit) bool {
	switch Canonical(u) {
	case Celsius, Fahrenheit, Kelvin:
		return true
	}
	return false
}

func (t temperatureConverter) Convert(value float64, from, to Unit) (float64, error) {
	celsius, err := t.toCelsius(value, Canonical(from))
	if err != nil {
		return 0, err
	}
	return t.fromCelsius(celsius, Canonical(to))
}

func (temperatureConverter) toCelsius(value float64, u Unit) (float64, error) {
	switch u {
	case Celsius:
		return value, nil
	case Fahrenheit:
		return (value - 32) / 1.8, nil
	case Kelvin:
		return value - 273.15, nil
	}
	return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnsupportedUnit, u)
}

func (temperatureConverter) fromCelsius(value float64, u Unit) (float64, error) {
	switch u {
	case Celsius:
		return value, nil
	case Fahrenheit:
		return value*1.8 + 32, nil
	case Kelvin:
		return value + 273.15, nil
	}
	return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnsupportedUnit, u)
}

// Converters for every supported physical quantity.
var (
	Temperature Converter = temperatureConverter{}

	Pressure Converter = newLinearConverter("pressure", Pascal, []unitFactor{
		{Pascal, 1},
		{Hectopascal, 100},
		{Kilopascal, 1000},
		{Bar, 100000},
		{Centibar, 1000},
		{Millibar, 100},
		{MillimeterOfMercury, 133.322},
		{InchOfMercury, 3386.389},
		{PoundPerSquareInch, 6894.757},
		{Atmosphere, 101325},
	})

	// TVOC concentration in parts assumes the average molar mass used by
	// consumer air quality sensors.
	TVOC Converter = newLinearConverter("tvoc", MicrogramsPerCubicMeter, []unitFactor{
		{MicrogramsPerCubicMeter, 1},
		{MilligramsPerCubicMeter, 1000},
		{MicrogramsPerCubicFoot, 35.3146667215},
		{PartsPerMillion, 4496.29381184},
		{PartsPerBillion, 4.49629381184},
	})

	Current Converter = newLinearConverter("current", Ampere, []unitFactor{
		{Ampere, 1},
		{Milliampere, 0.001},
	})

	ElectricPotential Converter = newLinearConverter("electric potential", Volt, []unitFactor{
		{Volt, 1},
		{Millivolt, 0.001},
	})

	Power Converter = newLinearConverter("power", Watt, []unitFactor{
		{Watt, 1},
		{Kilowatt, 1000},
	})

	Energy Converter = newLinearConverter("energy", KilowattHour, []unitFactor{
		{WattHour, 0.001},
		{KilowattHour, 1},
		{MegawattHour, 1000},
		{Megajoule, 1 / 3.6},
		{Gigajoule, 1000 / 3.6},
	})

	Volume Converter = newLinearConverter("volume", CubicMeter, []unitFactor{
		{CubicMeter, 1},
		{Liter, 0.001},
		{Milliliter, 0.000001},
		{CubicFoot, 0.028316846592},
		{Gallon, 0.003785411784},
		{CentumCubicFoot, 2.8316846592},
	})
)

// All returns every converter.
func All() []Converter {
	return []Converter{Temperature, Pressure, TVOC, Current, ElectricPotential, Power, Energy, Volume}
}
