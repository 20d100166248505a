package capability

import (
	"context"

	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// Toggle is a built-in toggle capability.
type Toggle struct {
	base
	retrievable bool
	value       func(st *ha.State) any
	set         func(ctx context.Context, b binding, instance protocol.CapabilityInstance, on bool) error
}

func (c *Toggle) Type() protocol.CapabilityType { return protocol.CapabilityTypeToggle }
func (c *Toggle) Retrievable() bool             { return c.retrievable }

func (c *Toggle) Reportable() bool {
	return c.retrievable && c.base.Reportable()
}

func (c *Toggle) Parameters() protocol.CapabilityParameters {
	return protocol.ToggleCapabilityParameters{Instance: c.instance}
}

func (c *Toggle) Value() (any, error) {
	if !c.retrievable || c.absent() {
		return nil, nil
	}
	return c.value(c.state), nil
}

func (c *Toggle) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	on, err := boolAction(c.binding, state)
	if err != nil {
		return nil, err
	}
	return nil, c.set(ctx, c.binding, c.instance, on)
}

type toggleRule struct {
	instance protocol.CapabilityInstance
	bind     func(b binding) (Capability, bool)
}

func newToggle(b binding, instance protocol.CapabilityInstance) *Toggle {
	return &Toggle{base: base{binding: b, instance: instance}, retrievable: true}
}

func attrTrue(attr string) func(*ha.State) any {
	return func(st *ha.State) any {
		v, _ := st.AttrBool(attr)
		return v
	}
}

func stateIs(value string) func(*ha.State) any {
	return func(st *ha.State) any { return st.State == value }
}

var toggleRules = []toggleRule{
	{protocol.ToggleInstanceMute, bindMute},
	{protocol.ToggleInstanceOscillation, bindOscillation},
	{protocol.ToggleInstancePause, bindPause},
}

func bindMute(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainMediaPlayer || !b.state.Supports(ha.MediaPlayerSupportVolumeMute) {
		return nil, false
	}
	c := newToggle(b, protocol.ToggleInstanceMute)
	c.value = attrTrue(ha.AttrIsVolumeMuted)
	c.set = func(ctx context.Context, b binding, i protocol.CapabilityInstance, on bool) error {
		return b.call(ctx, i, ha.ServiceVolumeMute, map[string]any{ha.AttrIsVolumeMuted: on})
	}
	return c, true
}

func bindOscillation(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainFan || !b.state.Supports(ha.FanSupportOscillate) {
		return nil, false
	}
	c := newToggle(b, protocol.ToggleInstanceOscillation)
	c.value = attrTrue(ha.AttrOscillating)
	c.set = func(ctx context.Context, b binding, i protocol.CapabilityInstance, on bool) error {
		return b.call(ctx, i, ha.ServiceOscillate, map[string]any{ha.AttrOscillating: on})
	}
	return c, true
}

func bindPause(b binding) (Capability, bool) {
	st := b.state
	c := newToggle(b, protocol.ToggleInstancePause)

	switch st.Domain() {
	case ha.DomainMediaPlayer:
		if !st.Supports(ha.MediaPlayerSupportPause) || !st.Supports(ha.MediaPlayerSupportPlay) {
			return nil, false
		}
		c.value = stateIs(ha.StatePaused)
		c.set = func(ctx context.Context, b binding, i protocol.CapabilityInstance, on bool) error {
			if on {
				return b.call(ctx, i, ha.ServiceMediaPause, nil)
			}
			return b.call(ctx, i, ha.ServiceMediaPlay, nil)
		}

	case ha.DomainVacuum:
		if !st.Supports(ha.VacuumSupportPause) {
			return nil, false
		}
		c.value = stateIs(ha.StatePaused)
		c.set = func(ctx context.Context, b binding, i protocol.CapabilityInstance, on bool) error {
			if on {
				return b.call(ctx, i, ha.ServicePause, nil)
			}
			return b.call(ctx, i, ha.ServiceStart, nil)
		}

	case ha.DomainCover:
		if !st.Supports(ha.CoverSupportStop) {
			return nil, false
		}
		c.retrievable = false
		c.set = func(ctx context.Context, b binding, i protocol.CapabilityInstance, on bool) error {
			if !on {
				return smarthome.InvalidActionValue(b.entityID(), string(i), on)
			}
			return b.call(ctx, i, ha.ServiceStopCover, nil)
		}

	default:
		return nil, false
	}
	return c, true
}
