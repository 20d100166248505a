package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_RoundTrip(t *testing.T) {
	values := []float64{0, 1, 12.34, 740.5, 98765.43, -40}

	for _, c := range All() {
		c := c
		t.Run(c.Quantity(), func(t *testing.T) {
			for _, from := range c.Units() {
				for _, to := range c.Units() {
					for _, v := range values {
						converted, err := c.Convert(v, from, to)
						require.NoError(t, err)

						back, err := c.Convert(converted, to, from)
						require.NoError(t, err)
						assert.InDelta(t, v, back, 0.005, "%v %s -> %s -> %s", v, from, to, from)
					}
				}
			}
		})
	}
}

func TestConvert_Pressure(t *testing.T) {
	v, err := Pressure.Convert(740, MillimeterOfMercury, Pascal)
	require.NoError(t, err)
	assert.InDelta(t, 98658.28, v, 1e-6)

	v, err = Pressure.Convert(1013.25, Hectopascal, Atmosphere)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	v, err = Pressure.Convert(1, Bar, Kilopascal)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestConvert_Temperature(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to Unit
		want     float64
	}{
		{"freezing F to C", 32, Fahrenheit, Celsius, 0},
		{"boiling C to F", 100, Celsius, Fahrenheit, 212},
		{"zero C to K", 0, Celsius, Kelvin, 273.15},
		{"K to F", 0, Kelvin, Fahrenheit, -459.67},
		{"same unit", 21.5, Celsius, Celsius, 21.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Temperature.Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvert_TVOC(t *testing.T) {
	v, err := TVOC.Convert(30, PartsPerBillion, MicrogramsPerCubicMeter)
	require.NoError(t, err)
	assert.InDelta(t, 134.8888, v, 1e-4)

	v, err = TVOC.Convert(1, MilligramsPerCubicMeter, MicrogramsPerCubicMeter)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
}

func TestConvert_EnergyVolumeCurrent(t *testing.T) {
	v, err := Energy.Convert(1500, WattHour, KilowattHour)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v, 1e-9)

	v, err = Energy.Convert(3.6, Megajoule, KilowattHour)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	v, err = Volume.Convert(1500, Liter, CubicMeter)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v, 1e-9)

	v, err = Current.Convert(250, Milliampere, Ampere)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 1e-9)
}

func TestConvert_PotentialAndPower(t *testing.T) {
	v, err := ElectricPotential.Convert(230000, Millivolt, Volt)
	require.NoError(t, err)
	assert.InDelta(t, 230.0, v, 1e-9)

	v, err = Power.Convert(1.5, Kilowatt, Watt)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, v, 1e-9)

	_, err = Power.Convert(1, "VA", Watt)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)
}

func TestConvert_UnsupportedUnit(t *testing.T) {
	_, err := Pressure.Convert(1, "furlong", Pascal)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)

	_, err = Pressure.Convert(1, Pascal, Celsius)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)

	_, err = Temperature.Convert(1, Pascal, Celsius)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)

	_, err = Temperature.Convert(1, Celsius, "R")
	assert.ErrorIs(t, err, ErrUnsupportedUnit)
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, MicrogramsPerCubicMeter, Canonical("µg/m³"))
	assert.Equal(t, Liter, Canonical("l"))
	assert.Equal(t, Pascal, Canonical(Pascal))
	assert.True(t, TVOC.Supports("µg/m³"))
	assert.False(t, Volume.Supports(Pascal))
}
