// Package device assembles the capabilities and properties of an entity
// into the description, state and action results the assistant exchanges.
package device

import (
	"context"

	"go.uber.org/zap"

	"yandexsmarthome/internal/capability"
	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/property"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// Device is one entity with every capability and property its current
// snapshot supports. It is built per request and never cached.
type Device struct {
	ID           string
	Capabilities []capability.Capability
	Properties   []property.Property

	state  *ha.State
	cfg    config.EntityConfig
	logger *zap.Logger
}

// Supported reports whether the device exposes anything at all.
func (d *Device) Supported() bool {
	return len(d.Capabilities) > 0 || len(d.Properties) > 0
}

// Available reports whether the entity currently reports a state.
func (d *Device) Available() bool {
	return d.state.State != ha.StateUnavailable
}

// Name returns the configured name, falling back to the friendly name.
func (d *Device) Name() string {
	if d.cfg.Name != "" {
		return d.cfg.Name
	}
	return d.state.AttrString(ha.AttrFriendlyName)
}

// Type returns the configured device type, or the one derived from the
// domain and device class. Sensors take the type of their first property
// that has a more specific one.
func (d *Device) Type() protocol.DeviceType {
	if d.cfg.Type != "" {
		return d.cfg.Type
	}

	domain := d.state.Domain()
	if t, ok := classTypes[domain][d.state.DeviceClass()]; ok {
		return t
	}
	t, ok := domainTypes[domain]
	if !ok {
		return protocol.DeviceTypeOther
	}
	if t != protocol.DeviceTypeSensor {
		return t
	}
	for _, p := range d.Properties {
		if refined, ok := propertyTypes[p.Type()][p.Instance()]; ok {
			return refined
		}
	}
	return t
}

// Description returns the discovery entry. Every supported color_setting
// instance is folded into one capability.
func (d *Device) Description() protocol.DeviceDescription {
	desc := protocol.DeviceDescription{
		ID:   d.ID,
		Name: d.Name(),
		Room: d.cfg.Room,
		Type: d.Type(),
	}

	colorIdx := -1
	var color protocol.ColorSettingCapabilityParameters
	for _, c := range d.Capabilities {
		cd := capability.Description(c)
		if c.Type() != protocol.CapabilityTypeColorSetting {
			desc.Capabilities = append(desc.Capabilities, cd)
			continue
		}

		params, _ := c.Parameters().(protocol.ColorSettingCapabilityParameters)
		if colorIdx < 0 {
			colorIdx = len(desc.Capabilities)
			color = params
			desc.Capabilities = append(desc.Capabilities, cd)
			continue
		}
		color.Merge(params)
		merged := &desc.Capabilities[colorIdx]
		merged.Retrievable = merged.Retrievable || cd.Retrievable
		merged.Reportable = merged.Reportable || cd.Reportable
	}
	if colorIdx >= 0 {
		desc.Capabilities[colorIdx].Parameters = color
	}

	for _, p := range d.Properties {
		desc.Properties = append(desc.Properties, property.Description(p))
	}
	return desc
}

// Query returns the current state. A failing capability or property is
// logged and left out.
func (d *Device) Query() protocol.DeviceState {
	result := protocol.DeviceState{ID: d.ID}
	if !d.Available() {
		err := smarthome.DeviceUnreachable(d.ID, "")
		result.ErrorCode = smarthome.CodeOf(err)
		result.ErrorMessage = err.Error()
		return result
	}

	for _, c := range d.Capabilities {
		st, ok, err := capability.State(c)
		if err != nil {
			d.logger.Warn("Failed to get capability state",
				zap.String("entity_id", d.ID),
				zap.String("capability", string(c.Type())),
				zap.String("instance", string(c.Instance())),
				zap.Error(err))
			continue
		}
		if ok {
			result.Capabilities = append(result.Capabilities, st)
		}
	}

	for _, p := range d.Properties {
		st, ok, err := property.State(p)
		if err != nil {
			d.logger.Warn("Failed to get property state",
				zap.String("entity_id", d.ID),
				zap.String("property", string(p.Type())),
				zap.String("instance", string(p.Instance())),
				zap.Error(err))
			continue
		}
		if ok {
			result.Properties = append(result.Properties, st)
		}
	}
	return result
}

// Execute runs every requested action in order and reports each outcome.
func (d *Device) Execute(ctx context.Context, actions []protocol.CapabilityAction) protocol.ActionResultDevice {
	result := protocol.ActionResultDevice{ID: d.ID}
	if !d.Available() {
		r := smarthome.ActionResultOf(smarthome.DeviceUnreachable(d.ID, ""))
		result.ActionResult = &r
		return result
	}

	for _, action := range actions {
		value, err := d.execute(ctx, action)
		if err != nil {
			d.logger.Warn("Failed to execute action",
				zap.String("entity_id", d.ID),
				zap.String("capability", string(action.Type)),
				zap.String("instance", string(action.State.Instance)),
				zap.Error(err))
		}
		result.Capabilities = append(result.Capabilities, protocol.ActionResultCapability{
			Type: action.Type,
			State: protocol.ActionResultCapabilityState{
				Instance:     action.State.Instance,
				Value:        value,
				ActionResult: smarthome.ActionResultOf(err),
			},
		})
	}
	return result
}

func (d *Device) execute(ctx context.Context, action protocol.CapabilityAction) (any, error) {
	c := d.capability(action.Type, action.State.Instance)
	if c == nil {
		return nil, smarthome.InvalidAction(d.ID, string(action.Type), string(action.State.Instance))
	}
	return c.SetValue(ctx, action.State)
}

func (d *Device) capability(t protocol.CapabilityType, instance protocol.CapabilityInstance) capability.Capability {
	for _, c := range d.Capabilities {
		if c.Type() == t && c.Instance() == instance {
			return c
		}
	}
	return nil
}
