package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/unit"
)

const sampleConfig = `settings:
  pressure_unit: unit.pressure.pascal
  state_reporting: false
  temperature_unit: "°F"
  stream_base_url: https://ha.example.com

entity_config:
  sensor.barometer:
    name: Barometer
    room: Balcony
    type: devices.types.sensor.climate
  air_quality.purifier:
    properties:
      - instance: tvoc
        attribute: voc
        unit: ppb
      - type: event
        instance: water_level
        attribute: tank
        event_map:
          low: [warning, "1"]
          empty: [critical]
      - instance: temperature
        entity: sensor.purifier_temperature
    modes:
      fan_speed:
        low: [silent, night]
        high: [strong]
    range:
      min: 10
      max: 30
      precision: 2
  media_player.tv:
    turn_on:
      service: script.tv_on
    turn_off:
      service: script.tv_off
      data:
        reason: "{{ .Value }}"
    custom_toggles:
      mute:
        state_attribute: muted
        turn_on:
          service: media_player.volume_mute
          data:
            is_volume_muted: true
        turn_off:
          service: media_player.volume_mute
          data:
            is_volume_muted: false
    custom_modes:
      input_source:
        state_entity_id: input_select.tv_source
        set_mode:
          service: input_select.select_option
          data:
            entity_id: input_select.tv_source
            option: "{{ .Value }}"
        modes:
          one: [HDMI1]
          two: [HDMI2]
    custom_ranges:
      channel:
        state_entity_id: input_number.tv_channel
        set_value:
          service: input_number.set_value
          data:
            entity_id: input_number.tv_channel
            value: "{{ .Value }}"
        range:
          min: 1
          max: 999
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	settings := cfg.Settings.Smarthome()
	assert.Equal(t, protocol.UnitPressurePascal, settings.PressureUnit)
	assert.False(t, settings.StateReporting)
	assert.Equal(t, unit.Fahrenheit, settings.TemperatureUnit)
	assert.Equal(t, "https://ha.example.com", settings.StreamBaseURL)

	barometer := cfg.Entity("sensor.barometer")
	assert.Equal(t, "Barometer", barometer.Name)
	assert.Equal(t, protocol.DeviceTypeSensorClimate, barometer.Type)

	purifier := cfg.Entity("air_quality.purifier")
	require.Len(t, purifier.Properties, 3)
	assert.Equal(t, PropertyTypeFloat, purifier.Properties[0].Family())
	assert.Equal(t, unit.PartsPerBillion, purifier.Properties[0].Unit)
	assert.Equal(t, PropertyTypeEvent, purifier.Properties[1].Family())
	assert.Equal(t, "sensor.purifier_temperature", purifier.Properties[2].EntityID)

	literal, ok := purifier.Properties[1].EventMap.Lookup("WARNING")
	assert.True(t, ok)
	assert.Equal(t, "low", literal)
	literal, ok = purifier.Properties[1].EventMap.Lookup("1")
	assert.True(t, ok)
	assert.Equal(t, "low", literal)

	assert.Equal(t, []string{"silent", "night"}, purifier.Modes["fan_speed"]["low"])
	r := purifier.Range.Apply(protocol.Range{Min: 0, Max: 100, Precision: 1})
	assert.Equal(t, protocol.Range{Min: 10, Max: 30, Precision: 2}, r)

	tv := cfg.Entity("media_player.tv")
	require.NotNil(t, tv.TurnOn)
	domain, service := tv.TurnOn.Split()
	assert.Equal(t, "script", domain)
	assert.Equal(t, "tv_on", service)
	assert.Equal(t, "{{ .Value }}", tv.TurnOff.Data["reason"])
	assert.Equal(t, "muted", tv.CustomToggles["mute"].StateAttribute)
	assert.Equal(t, "input_select.tv_source", tv.CustomModes["input_source"].StateEntityID)
	assert.Equal(t, []string{"HDMI1"}, tv.CustomModes["input_source"].Modes["one"])
	require.NotNil(t, tv.CustomRanges["channel"].SetValue)
	assert.Equal(t, 999.0, *tv.CustomRanges["channel"].Range.Max)

	assert.True(t, cfg.Has("media_player.tv"))
	assert.False(t, cfg.Has("light.unknown"))
	assert.Equal(t, EntityConfig{}, cfg.Entity("light.unknown"))
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Entities)

	settings := cfg.Settings.Smarthome()
	assert.Equal(t, protocol.UnitPressureMMHG, settings.PressureUnit)
	assert.True(t, settings.StateReporting)
	assert.Equal(t, unit.Celsius, settings.TemperatureUnit)

	var nilCfg *Config
	assert.False(t, nilCfg.Has("light.kitchen"))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"malformed yaml", "settings: [", "failed to parse YAML"},
		{"unknown top-level key", "foo: bar\n", ""},
		{"bad entity id", "entity_config:\n  Kitchen Light: {}\n", ""},
		{"unknown entity key", "entity_config:\n  light.kitchen:\n    colour: red\n", ""},
		{"property without instance", "entity_config:\n  sensor.a:\n    properties:\n      - attribute: x\n", ""},
		{"service without domain", "entity_config:\n  switch.a:\n    turn_on:\n      service: turn_on\n", ""},
		{"custom toggle without turn_off", "entity_config:\n  switch.a:\n    custom_toggles:\n      backlight:\n        turn_on:\n          service: switch.turn_on\n", ""},
		{"zero precision", "entity_config:\n  light.a:\n    range:\n      precision: 0\n", ""},
		{"pressure unit", "settings:\n  pressure_unit: unit.pressure.psi\n", "settings.pressure_unit"},
		{"temperature unit", "settings:\n  temperature_unit: Rankine\n", "settings.temperature_unit"},
		{"device type", "entity_config:\n  switch.a:\n    type: devices.types.spaceship\n", "unsupported device type"},
		{"float instance", "entity_config:\n  sensor.a:\n    properties:\n      - instance: open\n        type: float\n", "unsupported float instance"},
		{"event instance", "entity_config:\n  sensor.a:\n    properties:\n      - instance: humidity\n        type: event\n", "unsupported event instance"},
		{"event literal", "entity_config:\n  sensor.a:\n    properties:\n      - instance: open\n        event_map:\n          ajar: [half]\n", `unsupported event "ajar"`},
		{"event map on float", "entity_config:\n  sensor.a:\n    properties:\n      - instance: humidity\n        event_map:\n          low: [x]\n", "event_map is only allowed"},
		{"mode instance", "entity_config:\n  fan.a:\n    modes:\n      turbo_boost:\n        high: [x]\n", "unsupported mode instance"},
		{"mode value", "entity_config:\n  fan.a:\n    modes:\n      fan_speed:\n        ludicrous: [x]\n", `unsupported mode "ludicrous"`},
		{"range order", "entity_config:\n  light.a:\n    range:\n      min: 10\n      max: 5\n", "must be less than max"},
		{"toggle instance", "entity_config:\n  switch.a:\n    custom_toggles:\n      sparkle:\n        turn_on: {service: switch.turn_on}\n        turn_off: {service: switch.turn_off}\n", "unsupported toggle instance"},
		{"event value under two literals", "entity_config:\n  binary_sensor.a:\n    properties:\n      - instance: smoke\n        event_map:\n          detected: [alarm]\n          not_detected: [Alarm]\n", `value "Alarm" is mapped to both "detected" and "not_detected"`},
		{"mode value under two modes", "entity_config:\n  fan.a:\n    modes:\n      fan_speed:\n        high: [turbo]\n        max: [turbo]\n", `modes.fan_speed: value "turbo" is mapped to both "high" and "max"`},
		{"custom mode value under two modes", "entity_config:\n  media_player.a:\n    custom_modes:\n      input_source:\n        set_mode: {service: media_player.select_source}\n        modes:\n          one: [HDMI]\n          two: [hdmi]\n", `custom_modes.input_source.modes: value "hdmi"`},
		{"custom range without services", "entity_config:\n  switch.a:\n    custom_ranges:\n      volume:\n        state_attribute: v\n", "set_value or both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.name != "malformed yaml" {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestValueMap_Lookup(t *testing.T) {
	m := ValueMap{"detected": {"alarm", "SMOKE"}, "not_detected": {"clear"}}

	for range 50 {
		literal, ok := m.Lookup("Alarm")
		require.True(t, ok)
		assert.Equal(t, "detected", literal)
	}
	literal, ok := m.Lookup("smoke")
	assert.True(t, ok)
	assert.Equal(t, "detected", literal)

	_, ok = m.Lookup("unknown")
	assert.False(t, ok)
}

func TestLoader_Load(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := NewLoader(path, logger).Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Entities, 3)

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := NewLoader(filepath.Join(dir, "absent.yaml"), logger).Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.Entities)
	})

	t.Run("invalid file names the path", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("foo: bar\n"), 0644))
		_, err := NewLoader(bad, logger).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), bad)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
