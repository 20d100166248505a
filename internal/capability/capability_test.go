package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

type storeMap map[string]*ha.State

func (s storeMap) Get(entityID string) (*ha.State, bool) {
	st, ok := s[entityID]
	return st, ok
}

func newTestEnv(states ...*ha.State) (*smarthome.Env, *ha.MockClient) {
	client := ha.NewMockClient()
	store := storeMap{}
	for _, st := range states {
		store[st.EntityID] = st
	}
	return &smarthome.Env{
		States:   store,
		Services: client,
		Streams:  client,
		Settings: smarthome.DefaultSettings(),
		Logger:   zap.NewNop(),
	}, client
}

func classify(env *smarthome.Env, st *ha.State, cfg config.EntityConfig) map[Variant]Capability {
	out := map[Variant]Capability{}
	for _, c := range NewRegistry().Classify(env, st, cfg) {
		out[Key(c)] = c
	}
	return out
}

func find(t *testing.T, env *smarthome.Env, st *ha.State, cfg config.EntityConfig, typ protocol.CapabilityType, instance protocol.CapabilityInstance) Capability {
	t.Helper()
	c, ok := classify(env, st, cfg)[Variant{Type: typ, Instance: instance}]
	require.True(t, ok, "%s %s not supported by %s", typ, instance, st.EntityID)
	return c
}

func action(instance protocol.CapabilityInstance, value any) protocol.CapabilityActionState {
	return protocol.CapabilityActionState{Instance: instance, Value: value}
}

func lastCall(t *testing.T, client *ha.MockClient) ha.ServiceCall {
	t.Helper()
	calls := client.GetServiceCalls()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1]
}

var onVariant = Variant{Type: protocol.CapabilityTypeOnOff, Instance: protocol.OnOffInstanceOn}

func TestOnOff_Supported(t *testing.T) {
	tests := []struct {
		name  string
		state *ha.State
		cfg   config.EntityConfig
		want  bool
	}{
		{"light", ha.NewState("light.kitchen", ha.StateOn, nil), config.EntityConfig{}, true},
		{"scene", ha.NewState("scene.evening", "", nil), config.EntityConfig{}, true},
		{"sensor", ha.NewState("sensor.temperature", "21", nil), config.EntityConfig{}, false},
		{"sensor with turn_on", ha.NewState("sensor.pump", "1", nil), config.EntityConfig{TurnOn: &config.ServiceTemplate{Service: "script.pump_on"}}, true},
		{"media player without power", ha.NewState("media_player.speaker", ha.StatePlaying, map[string]any{ha.AttrSupportedFeatures: ha.MediaPlayerSupportPause}), config.EntityConfig{}, false},
		{"media player", ha.NewState("media_player.tv", ha.StateOff, map[string]any{ha.AttrSupportedFeatures: ha.MediaPlayerSupportTurnOn | ha.MediaPlayerSupportTurnOff}), config.EntityConfig{}, true},
		{"climate with off mode", ha.NewState("climate.ac", "cool", map[string]any{ha.AttrHVACModes: []any{"off", "cool"}}), config.EntityConfig{}, true},
		{"climate without off", ha.NewState("climate.heater", "heat", map[string]any{ha.AttrHVACModes: []any{"heat"}}), config.EntityConfig{}, false},
		{"water heater", ha.NewState("water_heater.boiler", "eco", map[string]any{ha.AttrOperationList: []any{"eco", "off"}}), config.EntityConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(tt.state)
			_, ok := classify(env, tt.state, tt.cfg)[onVariant]
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestOnOff_Value(t *testing.T) {
	tests := []struct {
		state *ha.State
		want  any
	}{
		{ha.NewState("light.kitchen", ha.StateOn, nil), true},
		{ha.NewState("light.kitchen", ha.StateOff, nil), false},
		{ha.NewState("light.kitchen", ha.StateUnavailable, nil), nil},
		{ha.NewState("cover.garage", ha.StateOpen, map[string]any{ha.AttrSupportedFeatures: ha.CoverSupportOpen | ha.CoverSupportClose}), true},
		{ha.NewState("cover.garage", ha.StateClosed, map[string]any{ha.AttrSupportedFeatures: ha.CoverSupportOpen | ha.CoverSupportClose}), false},
		{ha.NewState("lock.front", ha.StateUnlocked, nil), true},
		{ha.NewState("lock.front", ha.StateLocked, nil), false},
		{ha.NewState("climate.ac", "cool", map[string]any{ha.AttrHVACModes: []any{"off", "cool"}}), true},
		{ha.NewState("vacuum.robot", ha.StateCleaning, map[string]any{ha.AttrSupportedFeatures: ha.VacuumSupportStart}), true},
		{ha.NewState("vacuum.robot", ha.StateDocked, map[string]any{ha.AttrSupportedFeatures: ha.VacuumSupportStart}), false},
	}

	for _, tt := range tests {
		t.Run(tt.state.EntityID+"/"+tt.state.State, func(t *testing.T) {
			env, _ := newTestEnv(tt.state)
			c := find(t, env, tt.state, config.EntityConfig{}, protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn)
			v, err := c.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestOnOff_SetValue(t *testing.T) {
	tests := []struct {
		name    string
		state   *ha.State
		value   bool
		domain  string
		service string
		data    map[string]any
	}{
		{"light on", ha.NewState("light.kitchen", ha.StateOff, nil), true, "light", "turn_on", nil},
		{"switch off", ha.NewState("switch.kettle", ha.StateOn, nil), false, "switch", "turn_off", nil},
		{"group", ha.NewState("group.downstairs", ha.StateOff, nil), true, "homeassistant", "turn_on", nil},
		{"cover open", ha.NewState("cover.garage", ha.StateClosed, map[string]any{ha.AttrSupportedFeatures: ha.CoverSupportOpen | ha.CoverSupportClose}), true, "cover", "open_cover", nil},
		{"lock", ha.NewState("lock.front", ha.StateUnlocked, nil), false, "lock", "lock", nil},
		{"vacuum stop returns to base", ha.NewState("vacuum.robot", ha.StateCleaning, map[string]any{ha.AttrSupportedFeatures: ha.VacuumSupportStart | ha.VacuumSupportReturn}), false, "vacuum", "return_to_base", nil},
		{"climate by hvac mode", ha.NewState("climate.ac", ha.StateOff, map[string]any{ha.AttrHVACModes: []any{"off", "cool", "auto"}}), true, "climate", "set_hvac_mode", map[string]any{ha.AttrHVACMode: "auto"}},
		{"water heater", ha.NewState("water_heater.boiler", ha.StateOff, map[string]any{ha.AttrOperationList: []any{"off", "eco"}}), true, "water_heater", "set_operation_mode", map[string]any{ha.AttrOperationMode: "eco"}},
		{"script", ha.NewState("script.good_night", ha.StateOff, nil), true, "script", "turn_on", nil},
		{"button", ha.NewState("button.restart", "", nil), true, "button", "press", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, client := newTestEnv(tt.state)
			c := find(t, env, tt.state, config.EntityConfig{}, protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn)

			_, err := c.SetValue(context.Background(), action(protocol.OnOffInstanceOn, tt.value))
			require.NoError(t, err)

			call := lastCall(t, client)
			assert.Equal(t, tt.domain, call.Domain)
			assert.Equal(t, tt.service, call.Service)
			assert.Equal(t, tt.state.EntityID, call.Data[ha.AttrEntityID])
			for k, v := range tt.data {
				assert.Equal(t, v, call.Data[k])
			}
		})
	}
}

func TestOnOff_Stateless(t *testing.T) {
	st := ha.NewState("scene.evening", "2024-01-01T00:00:00Z", nil)
	env, client := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn)

	assert.False(t, c.Retrievable())
	assert.Equal(t, protocol.OnOffCapabilityParameters{Split: true}, c.Parameters())
	_, ok, err := State(c)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.SetValue(context.Background(), action(protocol.OnOffInstanceOn, false))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
	assert.Empty(t, client.GetServiceCalls())
}

func TestOnOff_CustomServices(t *testing.T) {
	st := ha.NewState("media_player.tv", ha.StateOff, nil)
	env, client := newTestEnv(st)
	cfg := config.EntityConfig{
		TurnOn: &config.ServiceTemplate{Service: "script.tv_on", Data: map[string]any{"source": "hdmi{{ .Value }}"}},
	}
	c := find(t, env, st, cfg, protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn)

	_, err := c.SetValue(context.Background(), action(protocol.OnOffInstanceOn, true))
	require.NoError(t, err)

	call := lastCall(t, client)
	assert.Equal(t, "script", call.Domain)
	assert.Equal(t, "tv_on", call.Service)
	assert.Equal(t, "hdmitrue", call.Data["source"])
}

func TestOnOff_InvalidValue(t *testing.T) {
	st := ha.NewState("light.kitchen", ha.StateOff, nil)
	env, _ := newTestEnv(st)
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn)

	_, err := c.SetValue(context.Background(), action(protocol.OnOffInstanceOn, "yes"))
	assert.ErrorIs(t, err, smarthome.ErrInvalidActionValue)
	assert.Equal(t, protocol.ResponseCodeInvalidValue, smarthome.CodeOf(err))
}

func TestSetValue_DispatcherFailure(t *testing.T) {
	st := ha.NewState("light.kitchen", ha.StateOff, nil)
	env, client := newTestEnv(st)
	client.SetServiceError(errors.New("service not found"))
	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn)

	_, err := c.SetValue(context.Background(), action(protocol.OnOffInstanceOn, true))
	assert.ErrorIs(t, err, smarthome.ErrActionFailed)
	assert.Contains(t, err.Error(), "service not found")
}

func TestToggle(t *testing.T) {
	t.Run("mute", func(t *testing.T) {
		st := ha.NewState("media_player.tv", ha.StatePlaying, map[string]any{
			ha.AttrSupportedFeatures: ha.MediaPlayerSupportVolumeMute,
			ha.AttrIsVolumeMuted:     true,
		})
		env, client := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeToggle, protocol.ToggleInstanceMute)

		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, true, v)

		_, err = c.SetValue(context.Background(), action(protocol.ToggleInstanceMute, false))
		require.NoError(t, err)
		call := lastCall(t, client)
		assert.Equal(t, "volume_mute", call.Service)
		assert.Equal(t, false, call.Data[ha.AttrIsVolumeMuted])
	})

	t.Run("oscillation", func(t *testing.T) {
		st := ha.NewState("fan.bedroom", ha.StateOn, map[string]any{ha.AttrSupportedFeatures: ha.FanSupportOscillate})
		env, client := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeToggle, protocol.ToggleInstanceOscillation)

		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, false, v)

		_, err = c.SetValue(context.Background(), action(protocol.ToggleInstanceOscillation, true))
		require.NoError(t, err)
		assert.Equal(t, "oscillate", lastCall(t, client).Service)
	})

	t.Run("cover pause is write only", func(t *testing.T) {
		st := ha.NewState("cover.blinds", "opening", map[string]any{ha.AttrSupportedFeatures: ha.CoverSupportStop})
		env, client := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeToggle, protocol.ToggleInstancePause)
		assert.False(t, c.Retrievable())

		_, err := c.SetValue(context.Background(), action(protocol.ToggleInstancePause, true))
		require.NoError(t, err)
		assert.Equal(t, "stop_cover", lastCall(t, client).Service)
	})

	t.Run("vacuum pause", func(t *testing.T) {
		st := ha.NewState("vacuum.robot", ha.StatePaused, map[string]any{ha.AttrSupportedFeatures: ha.VacuumSupportPause})
		env, _ := newTestEnv(st)
		c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeToggle, protocol.ToggleInstancePause)
		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})
}

func TestVideoStream(t *testing.T) {
	st := ha.NewState("camera.porch", "streaming", map[string]any{ha.AttrSupportedFeatures: ha.CameraSupportStream})
	env, client := newTestEnv(st)
	env.Settings.StreamBaseURL = "https://ha.example.com/"
	client.SetStreamURL("camera.porch", "/api/hls/abc/master_playlist.m3u8")

	c := find(t, env, st, config.EntityConfig{}, protocol.CapabilityTypeVideoStream, protocol.VideoStreamInstanceGetStream)
	assert.False(t, c.Retrievable())

	v, err := c.SetValue(context.Background(), action(protocol.VideoStreamInstanceGetStream, nil))
	require.NoError(t, err)
	assert.Equal(t, protocol.VideoStreamValue{
		StreamURL: "https://ha.example.com/api/hls/abc/master_playlist.m3u8",
		Protocol:  protocol.StreamProtocolHLS,
	}, v)

	other := ha.NewState("camera.garden", "idle", map[string]any{ha.AttrSupportedFeatures: ha.CameraSupportStream})
	c = find(t, env, other, config.EntityConfig{}, protocol.CapabilityTypeVideoStream, protocol.VideoStreamInstanceGetStream)
	_, err = c.SetValue(context.Background(), action(protocol.VideoStreamInstanceGetStream, nil))
	assert.ErrorIs(t, err, smarthome.ErrActionFailed)
}

func TestRegistry_Variants(t *testing.T) {
	variants := NewRegistry().Variants()
	assert.Equal(t, onVariant, variants[0])
	assert.Contains(t, variants, Variant{Type: protocol.CapabilityTypeColorSetting, Instance: protocol.ColorSettingInstanceScene})
	assert.Contains(t, variants, Variant{Type: protocol.CapabilityTypeRange, Instance: protocol.RangeInstanceVolume})

	seen := map[Variant]bool{}
	for _, v := range variants {
		assert.False(t, seen[v], "duplicate variant %v", v)
		seen[v] = true
	}
}
