package smarthome

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yandexsmarthome/internal/unit"
)

func TestIsAbsent(t *testing.T) {
	for _, raw := range []any{nil, "unavailable", "Unavailable", "UNKNOWN", "unknown", "None", "none", "", "  ", "-"} {
		assert.True(t, IsAbsent(raw), "%q", raw)
	}
	for _, raw := range []any{"0", 0, "off", false, "n/a"} {
		assert.False(t, IsAbsent(raw), "%v", raw)
	}
}

func TestNormalize_AbsentSentinels(t *testing.T) {
	target := Target{EntityID: "sensor.t", Instance: "temperature", Bounds: Unbounded}
	for _, raw := range []string{"unavailable", "UNAVAILABLE", "unknown", "Unknown", "none", "NONE", ""} {
		v, err := Normalize(raw, target)
		assert.NoError(t, err, raw)
		assert.Nil(t, v, raw)
	}
}

func TestNormalize_UnsupportedValue(t *testing.T) {
	_, err := Normalize("warm", Target{EntityID: "sensor.kitchen", Instance: "temperature"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), "sensor.kitchen")
	assert.Contains(t, err.Error(), "temperature")
	assert.Equal(t, "INVALID_VALUE", string(CodeOf(err)))

	_, err = Normalize(true, Target{EntityID: "sensor.kitchen", Instance: "temperature"})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = Normalize("NaN", Target{EntityID: "sensor.kitchen", Instance: "temperature"})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestNormalize_Conversion(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		target Target
		want   float64
	}{
		{
			name: "mmHg to pascal",
			raw:  "740.5",
			target: Target{
				Converter: unit.Pressure, NativeUnit: unit.MillimeterOfMercury, Unit: unit.Pascal, Bounds: AtLeast(0),
			},
			want: 98724.94,
		},
		{
			name: "ppb to mcg/m3",
			raw:  30,
			target: Target{
				Converter: unit.TVOC, NativeUnit: unit.PartsPerBillion, Unit: unit.MicrogramsPerCubicMeter, Bounds: AtLeast(0),
			},
			want: 134.89,
		},
		{
			name: "fahrenheit to celsius",
			raw:  "212",
			target: Target{
				Converter: unit.Temperature, NativeUnit: unit.Fahrenheit, Unit: unit.Celsius, Bounds: Unbounded,
			},
			want: 100,
		},
		{
			name: "same unit is not converted",
			raw:  21.456,
			target: Target{
				Converter: unit.Temperature, NativeUnit: unit.Celsius, Unit: unit.Celsius,
			},
			want: 21.46,
		},
		{
			name: "missing native unit is taken as target unit",
			raw:  "1013",
			target: Target{
				Converter: unit.Pressure, Unit: unit.Hectopascal, Bounds: AtLeast(0),
			},
			want: 1013,
		},
		{
			name: "alias spelling of the target",
			raw:  "12",
			target: Target{
				Converter: unit.TVOC, NativeUnit: "µg/m³", Unit: unit.MicrogramsPerCubicMeter,
			},
			want: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.target)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestNormalize_UnsupportedUnit(t *testing.T) {
	_, err := Normalize("10", Target{
		EntityID: "sensor.barometer", Instance: "pressure",
		Converter: unit.Pressure, NativeUnit: "furlong", Unit: unit.Pascal,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedUnit)
	assert.ErrorIs(t, err, unit.ErrUnsupportedUnit)
	assert.Contains(t, err.Error(), "sensor.barometer")
	assert.Contains(t, err.Error(), "pressure")
}

func TestNormalize_Clamping(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		bounds Bounds
		want   float64
	}{
		{"negative illumination", -5, AtLeast(0), 0},
		{"battery above 100", "104", Between(0, 100), 100},
		{"battery below 0", "-1", Between(0, 100), 0},
		{"in range", "55.556", Between(0, 100), 55.56},
		{"unbounded", "-40", Unbounded, -40},
		{"zero bounds mean unbounded", "-40", Bounds{}, -40},
		{"negative noise rounds to zero", "-0.001", Unbounded, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, Target{Bounds: tt.bounds})
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
			assert.False(t, math.Signbit(*got) && *got == 0)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	target := Target{Converter: unit.Pressure, NativeUnit: unit.Hectopascal, Unit: unit.MillimeterOfMercury, Bounds: AtLeast(0)}
	first, err := Normalize("1013.25", target)
	require.NoError(t, err)
	second, err := Normalize("1013.25", target)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
	assert.InDelta(t, 760.0, *first, 0.01)
}

func TestBounds_Clamp(t *testing.T) {
	assert.Equal(t, 0.0, AtLeast(0).Clamp(-3))
	assert.Equal(t, 3.0, AtLeast(0).Clamp(3))
	assert.Equal(t, 100.0, Between(0, 100).Clamp(150))
	assert.Equal(t, -273.0, Unbounded.Clamp(-273))
}
