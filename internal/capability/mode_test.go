package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

func modes(values ...protocol.ModeValue) []protocol.ModeOption {
	out := make([]protocol.ModeOption, 0, len(values))
	for _, v := range values {
		out = append(out, protocol.ModeOption{Value: v})
	}
	return out
}

func TestMode_Thermostat(t *testing.T) {
	st := ha.NewState("climate.living_room", "heat_cool", map[string]any{
		ha.AttrHVACModes: []any{"off", "heat_cool", "heat", "cool", "fan_only", "dry"},
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeMode, protocol.ModeInstanceThermostat)

	assert.Equal(t, protocol.ModeCapabilityParameters{
		Instance: protocol.ModeInstanceThermostat,
		Modes:    modes(protocol.ModeAuto, protocol.ModeHeat, protocol.ModeCool, protocol.ModeFanOnly, protocol.ModeDry),
	}, c.Parameters())

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, protocol.ModeAuto, v)

	_, err = c.SetValue(context.Background(), action(protocol.ModeInstanceThermostat, "cool"))
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "set_hvac_mode", call.Service)
	assert.Equal(t, "cool", call.Data[ha.AttrHVACMode])

	_, err = c.SetValue(context.Background(), action(protocol.ModeInstanceThermostat, "turbo"))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
}

func TestMode_ConfiguredMapping(t *testing.T) {
	st := ha.NewState("fan.purifier", ha.StateOn, map[string]any{
		ha.AttrSupportedFeatures: ha.FanSupportPresetMode,
		ha.AttrPresetModes:       []any{"Auto", "Silent", "Favorite", "Level 2"},
		ha.AttrPresetMode:        "Level 2",
	})
	env, client := newTestEnv(st)
	cfg := config.EntityConfig{Modes: map[string]config.ValueMap{
		"fan_speed": {"auto": {"auto"}, "quiet": {"silent"}, "medium": {"level 2"}},
	}}
	c := find(t, env, st, cfg, protocol.CapabilityTypeMode, protocol.ModeInstanceFanSpeed)

	assert.Equal(t, modes(protocol.ModeAuto, protocol.ModeQuiet, protocol.ModeMedium),
		c.Parameters().(protocol.ModeCapabilityParameters).Modes)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, protocol.ModeMedium, v)

	_, err = c.SetValue(context.Background(), action(protocol.ModeInstanceFanSpeed, "quiet"))
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "set_preset_mode", call.Service)
	assert.Equal(t, "Silent", call.Data[ha.AttrPresetMode])
}

func TestMode_UnmappedValuesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	st := ha.NewState("humidifier.bedroom", ha.StateOn, map[string]any{
		ha.AttrSupportedFeatures: ha.HumidifierSupportModes,
		ha.AttrAvailableModes:    []any{"normal", "baby"},
		ha.AttrMode:              "baby",
	})
	env, _ := newTestEnv(st)
	env.Logger = zap.New(core)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeMode, protocol.ModeInstanceProgram)

	assert.Equal(t, modes(protocol.ModeNormal), c.Parameters().(protocol.ModeCapabilityParameters).Modes)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NotZero(t, logs.FilterMessage("Unmapped mode").Len())
}

func TestMode_NoMappableModes(t *testing.T) {
	st := ha.NewState("vacuum.robot", ha.StateDocked, map[string]any{
		ha.AttrSupportedFeatures: ha.VacuumSupportFanSpeed,
		ha.AttrFanSpeedList:      []any{"gentle", "ludicrous"},
	})
	env, _ := newTestEnv(st)
	_, ok := classify(env, st, config.EntityConfig{})[Variant{Type: protocol.CapabilityTypeMode, Instance: protocol.ModeInstanceCleanupMode}]
	assert.False(t, ok)
}

func TestMode_InputSource(t *testing.T) {
	st := ha.NewState("media_player.tv", ha.StateOn, map[string]any{
		ha.AttrSupportedFeatures: ha.MediaPlayerSupportSelectSource,
		ha.AttrSourceList:        []any{"HDMI 1", "HDMI 2", "TV"},
		ha.AttrSource:            "TV",
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeMode, protocol.ModeInstanceInputSource)

	assert.Equal(t, modes(protocol.ModeOne, protocol.ModeTwo, protocol.ModeThree),
		c.Parameters().(protocol.ModeCapabilityParameters).Modes)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, protocol.ModeThree, v)

	_, err = c.SetValue(context.Background(), action(protocol.ModeInstanceInputSource, "two"))
	require.NoError(t, err)
	assert.Equal(t, "HDMI 2", lastCall(t, client).Data[ha.AttrSource])
}

func TestMode_FanPercentage(t *testing.T) {
	st := ha.NewState("fan.ceiling", ha.StateOn, map[string]any{
		ha.AttrSupportedFeatures: ha.FanSupportSetSpeed,
		ha.AttrPercentage:        50,
	})
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeMode, protocol.ModeInstanceFanSpeed)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, protocol.ModeMedium, v)

	_, err = c.SetValue(context.Background(), action(protocol.ModeInstanceFanSpeed, "high"))
	require.NoError(t, err)
	call := lastCall(t, client)
	assert.Equal(t, "set_percentage", call.Service)
	assert.Equal(t, 100, call.Data[ha.AttrPercentage])
}
