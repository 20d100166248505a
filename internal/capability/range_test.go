package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
	"yandexsmarthome/internal/unit"
)

func floatPtr(v float64) *float64 { return &v }

func TestRange_Brightness(t *testing.T) {
	st := ha.NewState("light.kitchen", ha.StateOn, map[string]any{
		ha.AttrSupportedColorModes: []any{"brightness"},
		ha.AttrBrightness:          128,
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceBrightness)

	assert.Equal(t, protocol.RangeCapabilityParameters{
		Instance:     protocol.RangeInstanceBrightness,
		Unit:         protocol.RangeUnitPercent,
		RandomAccess: true,
		Range:        &protocol.Range{Min: 1, Max: 100, Precision: 1},
	}, c.Parameters())

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceBrightness, 75))
	require.NoError(t, err)
	assert.Equal(t, 75.0, lastCall(t, client).Data["brightness_pct"])

	_, err = c.SetValue(context.Background(), protocol.CapabilityActionState{
		Instance: protocol.RangeInstanceBrightness, Value: -10.0, Relative: true,
	})
	require.NoError(t, err)
	assert.Equal(t, -10.0, lastCall(t, client).Data["brightness_step_pct"])

	_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceBrightness, 150))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
}

func TestRange_OnOffOnlyLightHasNoBrightness(t *testing.T) {
	st := ha.NewState("light.porch", ha.StateOn, map[string]any{ha.AttrSupportedColorModes: []any{"onoff"}})
	env, _ := newTestEnv(st)
	_, ok := classify(env, st, config.EntityConfig{})[Variant{Type: protocol.CapabilityTypeRange, Instance: protocol.RangeInstanceBrightness}]
	assert.False(t, ok)
}

func TestRange_Temperature(t *testing.T) {
	st := ha.NewState("climate.bedroom", "heat", map[string]any{
		ha.AttrSupportedFeatures: ha.ClimateSupportTargetTemperature,
		ha.AttrMinTemp:           16,
		ha.AttrMaxTemp:           30,
		ha.AttrTargetTempStep:    1,
		ha.AttrTemperature:       22,
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceTemperature)

	params := c.Parameters().(protocol.RangeCapabilityParameters)
	assert.Equal(t, protocol.RangeUnitTemperatureCelsius, params.Unit)
	assert.Equal(t, &protocol.Range{Min: 16, Max: 30, Precision: 1}, params.Range)

	_, err := c.SetValue(context.Background(), protocol.CapabilityActionState{
		Instance: protocol.RangeInstanceTemperature, Value: 10, Relative: true,
	})
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "set_temperature", call.Service)
	assert.Equal(t, 30.0, call.Data[ha.AttrTemperature])

	_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceTemperature, 35))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
}

func TestRange_TemperatureInFahrenheitSystem(t *testing.T) {
	st := ha.NewState("climate.bedroom", "heat", map[string]any{
		ha.AttrSupportedFeatures: ha.ClimateSupportTargetTemperature,
		ha.AttrMinTemp:           50,
		ha.AttrMaxTemp:           86,
		ha.AttrTemperature:       68,
	})
	env, client := newTestEnv(st)
	env.Settings.TemperatureUnit = unit.Fahrenheit
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceTemperature)

	params := c.Parameters().(protocol.RangeCapabilityParameters)
	assert.Equal(t, 10.0, params.Range.Min)
	assert.Equal(t, 30.0, params.Range.Max)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceTemperature, 25))
	require.NoError(t, err)
	assert.Equal(t, 77.0, lastCall(t, client).Data[ha.AttrTemperature])
}

func TestRange_ConfiguredBounds(t *testing.T) {
	st := ha.NewState("humidifier.bedroom", ha.StateOn, map[string]any{ha.AttrHumidity: 45})
	env, _ := newTestEnv(st)
	cfg := config.EntityConfig{Range: &config.RangeConfig{Min: floatPtr(30), Max: floatPtr(70), Precision: floatPtr(5)}}
	c := find(t, env, st, cfg, protocol.CapabilityTypeRange, protocol.RangeInstanceHumidity)

	assert.Equal(t, &protocol.Range{Min: 30, Max: 70, Precision: 5}, c.Parameters().(protocol.RangeCapabilityParameters).Range)

	_, err := c.SetValue(context.Background(), action(protocol.RangeInstanceHumidity, 80))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
}

func TestRange_Volume(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		st := ha.NewState("media_player.speaker", ha.StatePlaying, map[string]any{
			ha.AttrSupportedFeatures: ha.MediaPlayerSupportVolumeSet,
			ha.AttrVolumeLevel:       0.35,
		})
		env, client := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceVolume)

		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, 35.0, v)

		_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceVolume, 50))
		require.NoError(t, err)
		assert.Equal(t, 0.5, lastCall(t, client).Data[ha.AttrVolumeLevel])
	})

	t.Run("step only", func(t *testing.T) {
		st := ha.NewState("media_player.receiver", ha.StateOn, map[string]any{
			ha.AttrSupportedFeatures: ha.MediaPlayerSupportVolumeStep,
		})
		env, client := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceVolume)

		params := c.Parameters().(protocol.RangeCapabilityParameters)
		assert.False(t, params.RandomAccess)
		assert.Nil(t, params.Range)
		assert.False(t, c.Retrievable())

		_, err := c.SetValue(context.Background(), protocol.CapabilityActionState{
			Instance: protocol.RangeInstanceVolume, Value: -3, Relative: true,
		})
		require.NoError(t, err)
		calls := client.GetServiceCalls()
		require.Len(t, calls, 3)
		assert.Equal(t, "volume_down", calls[0].Service)

		_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceVolume, 20))
		assert.ErrorIs(t, err, smarthome.ErrInvalidAction)
	})
}

func TestRange_Channel(t *testing.T) {
	st := ha.NewState("media_player.tv", ha.StateOn, map[string]any{
		ha.AttrDeviceClass:       ha.DeviceClassTV,
		ha.AttrSupportedFeatures: ha.MediaPlayerSupportPlayMedia | ha.MediaPlayerSupportNextTrack | ha.MediaPlayerSupportPreviousTrack,
		ha.AttrMediaContentType:  "channel",
		ha.AttrMediaContentID:    "15",
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceChannel)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)

	_, err = c.SetValue(context.Background(), action(protocol.RangeInstanceChannel, 7))
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "play_media", call.Service)
	assert.Equal(t, "7", call.Data[ha.AttrMediaContentID])

	_, err = c.SetValue(context.Background(), protocol.CapabilityActionState{
		Instance: protocol.RangeInstanceChannel, Value: 1, Relative: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "media_next_track", lastCall(t, client).Service)
}

func TestRange_CoverPosition(t *testing.T) {
	st := ha.NewState("cover.blinds", ha.StateOpen, map[string]any{
		ha.AttrSupportedFeatures: ha.CoverSupportSetPosition,
		ha.AttrCurrentPosition:   40,
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeRange, protocol.RangeInstanceOpen)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 40.0, v)

	_, err = c.SetValue(context.Background(), protocol.CapabilityActionState{
		Instance: protocol.RangeInstanceOpen, Value: 80, Relative: true,
	})
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "set_cover_position", call.Service)
	assert.Equal(t, 100.0, call.Data["position"])
}
