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
)

func TestColor_RGB(t *testing.T) {
	st := ha.NewState("light.strip", ha.StateOn, map[string]any{
		ha.AttrSupportedColorModes: []any{"hs", "color_temp"},
		ha.AttrColorMode:           "hs",
		ha.AttrRGBColor:            []any{255.0, 128.0, 0.0},
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceRGB)

	params := c.Parameters().(protocol.ColorSettingCapabilityParameters)
	require.NotNil(t, params.ColorModel)
	assert.Equal(t, protocol.ColorModelRGB, *params.ColorModel)
	assert.Nil(t, params.TemperatureK)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 0xFF8000, v)

	_, err = c.SetValue(context.Background(), action(protocol.ColorSettingInstanceRGB, 65280))
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "turn_on", call.Service)
	assert.Equal(t, []int{0, 255, 0}, call.Data[ha.AttrRGBColor])

	for _, bad := range []any{1.5, -1, 0x1000000, "red"} {
		_, err = c.SetValue(context.Background(), action(protocol.ColorSettingInstanceRGB, bad))
		assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue, "value %v", bad)
	}
}

func TestColor_RGBHiddenInWhiteMode(t *testing.T) {
	st := ha.NewState("light.strip", ha.StateOn, map[string]any{
		ha.AttrSupportedColorModes: []any{"rgb", "color_temp"},
		ha.AttrColorMode:           "color_temp",
		ha.AttrRGBColor:            []any{255, 200, 150},
		ha.AttrColorTempKelvin:     4000.4,
	})
	env, _ := newTestEnv(st)
	caps := classify(env, st, config.EntityConfig{})

	rgb := caps[Variant{Type: protocol.CapabilityTypeColorSetting, Instance: protocol.ColorSettingInstanceRGB}]
	require.NotNil(t, rgb)
	v, err := rgb.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	white := caps[Variant{Type: protocol.CapabilityTypeColorSetting, Instance: protocol.ColorSettingInstanceTemperatureK}]
	require.NotNil(t, white)
	v, err = white.Value()
	require.NoError(t, err)
	assert.Equal(t, 4000, v)
}

func TestColor_TemperatureK(t *testing.T) {
	t.Run("bounds are clipped to the accepted range", func(t *testing.T) {
		st := ha.NewState("light.lamp", ha.StateOn, map[string]any{
			ha.AttrSupportedColorModes: []any{"color_temp"},
			ha.AttrMinColorTempKelvin:  1000,
			ha.AttrMaxColorTempKelvin:  10000,
		})
		env, _ := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceTemperatureK)
		assert.Equal(t, &protocol.TemperatureKParameters{Min: 1500, Max: 9000},
			c.Parameters().(protocol.ColorSettingCapabilityParameters).TemperatureK)
	})

	t.Run("defaults", func(t *testing.T) {
		st := ha.NewState("light.lamp", ha.StateOn, map[string]any{ha.AttrSupportedColorModes: []any{"color_temp"}})
		env, _ := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceTemperatureK)
		assert.Equal(t, &protocol.TemperatureKParameters{Min: 2000, Max: 6500},
			c.Parameters().(protocol.ColorSettingCapabilityParameters).TemperatureK)
	})

	t.Run("set", func(t *testing.T) {
		st := ha.NewState("light.lamp", ha.StateOn, map[string]any{
			ha.AttrSupportedColorModes: []any{"color_temp"},
			ha.AttrMinColorTempKelvin:  2700,
			ha.AttrMaxColorTempKelvin:  6500,
		})
		env, client := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceTemperatureK)

		_, err := c.SetValue(context.Background(), action(protocol.ColorSettingInstanceTemperatureK, 4500))
		require.NoError(t, err)
		assert.Equal(t, 4500, lastCall(t, client).Data[ha.AttrColorTempKelvin])

		_, err = c.SetValue(context.Background(), action(protocol.ColorSettingInstanceTemperatureK, 6500))
		require.NoError(t, err)
		assert.Equal(t, 6500, lastCall(t, client).Data[ha.AttrColorTempKelvin])

		client.ClearServiceCalls()
		for _, k := range []int{2000, 9000, 10000} {
			_, err = c.SetValue(context.Background(), action(protocol.ColorSettingInstanceTemperatureK, k))
			assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue, "%d K", k)
		}
		assert.Empty(t, client.GetServiceCalls())
	})
}

func TestColor_Scene(t *testing.T) {
	st := ha.NewState("light.strip", ha.StateOn, map[string]any{
		ha.AttrSupportedFeatures: ha.LightSupportEffect,
		ha.AttrEffectList:        []any{"Night", "Romantic", "Rainbow", "nightlight"},
		ha.AttrEffect:            "Romantic",
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceScene)

	assert.Equal(t, &protocol.ColorSceneParameters{Scenes: []protocol.SceneOption{
		{ID: protocol.SceneNight}, {ID: protocol.SceneRomance},
	}}, c.Parameters().(protocol.ColorSettingCapabilityParameters).ColorScene)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, protocol.SceneRomance, v)

	_, err = c.SetValue(context.Background(), action(protocol.ColorSettingInstanceScene, "night"))
	require.NoError(t, err)
	assert.Equal(t, "Night", lastCall(t, client).Data[ha.AttrEffect])

	_, err = c.SetValue(context.Background(), action(protocol.ColorSettingInstanceScene, "ocean"))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
}

func TestColor_SceneWithoutKnownEffects(t *testing.T) {
	st := ha.NewState("light.strip", ha.StateOn, map[string]any{
		ha.AttrSupportedFeatures: ha.LightSupportEffect,
		ha.AttrEffectList:        []any{"Rainbow", "Strobe"},
	})
	env, _ := newTestEnv(st)
	_, ok := classify(env, st, config.EntityConfig{})[Variant{Type: protocol.CapabilityTypeColorSetting, Instance: protocol.ColorSettingInstanceScene}]
	assert.False(t, ok)
}
