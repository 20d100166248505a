// Package capability classifies entities into actionable capabilities and
// translates assistant actions into platform service calls.
//
// Each built-in capability is a rule in a fixed, ordered table. Rules receive
// the snapshot together with the entity configuration so that configured
// modes, ranges and on/off services adjust the built-in behaviour. Custom
// capabilities declared in configuration are built by NewCustom and take
// precedence over the rules.
package capability

import (
	"context"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// Capability is one capability instance of one entity, bound to a snapshot.
type Capability interface {
	Type() protocol.CapabilityType
	Instance() protocol.CapabilityInstance
	Retrievable() bool
	Reportable() bool
	Parameters() protocol.CapabilityParameters

	// Value returns the protocol value, or nil when there is no current value.
	Value() (any, error)

	// SetValue executes an action. The returned value is reported back in
	// the action result and is nil for most instances.
	SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error)
}

// Description returns the discovery entry of c.
func Description(c Capability) protocol.CapabilityDescription {
	return protocol.CapabilityDescription{
		Type:        c.Type(),
		Retrievable: c.Retrievable(),
		Reportable:  c.Reportable(),
		Parameters:  c.Parameters(),
	}
}

// State returns the query entry of c. ok is false when c is not retrievable
// or has no current value.
func State(c Capability) (state protocol.CapabilityInstanceState, ok bool, err error) {
	if !c.Retrievable() {
		return state, false, nil
	}
	v, err := c.Value()
	if err != nil || v == nil {
		return state, false, err
	}
	return protocol.CapabilityInstanceState{
		Type:  c.Type(),
		State: protocol.CapabilityInstanceStateValue{Instance: c.Instance(), Value: v},
	}, true, nil
}

// Variant identifies a classifier.
type Variant struct {
	Type     protocol.CapabilityType
	Instance protocol.CapabilityInstance
}

// Key returns the variant of c.
func Key(c Capability) Variant {
	return Variant{Type: c.Type(), Instance: c.Instance()}
}

// binding is what every capability is evaluated against.
type binding struct {
	env   *smarthome.Env
	state *ha.State
	cfg   config.EntityConfig
}

func (b binding) entityID() string { return b.state.EntityID }

func (b binding) call(ctx context.Context, instance protocol.CapabilityInstance, service string, data map[string]any) error {
	return b.env.Call(ctx, b.entityID(), string(instance), b.state.Domain(), service, data)
}

func (b binding) callDomain(ctx context.Context, instance protocol.CapabilityInstance, domain, service string, data map[string]any) error {
	return b.env.Call(ctx, b.entityID(), string(instance), domain, service, data)
}

// absent reports whether the entity currently has no state.
func (b binding) absent() bool {
	return smarthome.IsAbsent(b.state.State)
}

// base carries the fields shared by every built-in capability.
type base struct {
	binding
	instance protocol.CapabilityInstance
}

func (c base) Instance() protocol.CapabilityInstance { return c.instance }
func (c base) Retrievable() bool                     { return true }
func (c base) Reportable() bool                      { return c.env.Settings.StateReporting }

// rule decides whether a snapshot exposes a capability variant.
type rule struct {
	variant Variant
	bind    func(b binding) (Capability, bool)
}

// Registry is the ordered set of built-in capability classifiers.
type Registry struct {
	rules []rule
}

// NewRegistry returns the registry of every built-in classifier.
func NewRegistry() *Registry {
	return &Registry{rules: rules()}
}

// Variants lists the variants in evaluation order.
func (r *Registry) Variants() []Variant {
	out := make([]Variant, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, rl.variant)
	}
	return out
}

// Classify returns every built-in capability the snapshot supports, in
// registry order.
func (r *Registry) Classify(env *smarthome.Env, st *ha.State, cfg config.EntityConfig) []Capability {
	b := binding{env: env, state: st, cfg: cfg}
	var out []Capability
	for _, rl := range r.rules {
		if c, ok := rl.bind(b); ok {
			out = append(out, c)
		}
	}
	return out
}

func rules() []rule {
	var out []rule
	add := func(t protocol.CapabilityType, i protocol.CapabilityInstance, bind func(binding) (Capability, bool)) {
		out = append(out, rule{variant: Variant{Type: t, Instance: i}, bind: bind})
	}

	add(protocol.CapabilityTypeOnOff, protocol.OnOffInstanceOn, bindOnOff)

	for _, r := range toggleRules {
		add(protocol.CapabilityTypeToggle, r.instance, r.bind)
	}
	for _, r := range modeRules {
		add(protocol.CapabilityTypeMode, r.instance, r.bind)
	}
	for _, r := range rangeRules {
		add(protocol.CapabilityTypeRange, r.instance, r.bind)
	}

	add(protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceRGB, bindRGB)
	add(protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceTemperatureK, bindTemperatureK)
	add(protocol.CapabilityTypeColorSetting, protocol.ColorSettingInstanceScene, bindScene)

	add(protocol.CapabilityTypeVideoStream, protocol.VideoStreamInstanceGetStream, bindVideoStream)
	return out
}

// boolAction extracts a boolean action value.
func boolAction(b binding, state protocol.CapabilityActionState) (bool, error) {
	v, ok := state.Value.(bool)
	if !ok {
		return false, smarthome.InvalidActionValue(b.entityID(), string(state.Instance), state.Value)
	}
	return v, nil
}

// numberAction extracts a numeric action value.
func numberAction(b binding, state protocol.CapabilityActionState) (float64, error) {
	if _, isBool := state.Value.(bool); isBool {
		return 0, smarthome.InvalidActionValue(b.entityID(), string(state.Instance), state.Value)
	}
	v, ok := ha.ToFloat(state.Value)
	if !ok {
		return 0, smarthome.InvalidActionValue(b.entityID(), string(state.Instance), state.Value)
	}
	return v, nil
}

// stringAction extracts a string action value.
func stringAction(b binding, state protocol.CapabilityActionState) (string, error) {
	v, ok := state.Value.(string)
	if !ok || v == "" {
		return "", smarthome.InvalidActionValue(b.entityID(), string(state.Instance), state.Value)
	}
	return v, nil
}

func invalidValue(b binding, state protocol.CapabilityActionState) error {
	return smarthome.InvalidActionValue(b.entityID(), string(state.Instance), state.Value)
}
