package capability

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// Custom builds every capability declared in cfg, toggles first, then modes,
// then ranges, each group ordered by instance.
func Custom(env *smarthome.Env, st *ha.State, cfg config.EntityConfig) []Capability {
	b := binding{env: env, state: st, cfg: cfg}
	var out []Capability

	for _, instance := range sortedKeys(cfg.CustomToggles) {
		out = append(out, &CustomToggle{
			base: base{binding: b, instance: protocol.CapabilityInstance(instance)},
			cfg:  cfg.CustomToggles[instance],
		})
	}
	for _, instance := range sortedKeys(cfg.CustomModes) {
		out = append(out, &CustomMode{
			base: base{binding: b, instance: protocol.CapabilityInstance(instance)},
			cfg:  cfg.CustomModes[instance],
		})
	}
	for _, instance := range sortedKeys(cfg.CustomRanges) {
		out = append(out, newCustomRange(b, protocol.CapabilityInstance(instance), cfg.CustomRanges[instance]))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// read returns the raw value a custom capability's state comes from.
func (b binding) read(src config.StateSource) (any, error) {
	st := b.state
	if src.StateEntityID != "" && src.StateEntityID != st.EntityID {
		other, err := b.env.Lookup(st.EntityID, src.StateEntityID)
		if err != nil {
			return nil, err
		}
		st = other
	}
	if src.StateAttribute != "" {
		v, _ := st.Attr(src.StateAttribute)
		return v, nil
	}
	return st.State, nil
}

// CustomToggle is a toggle driven by service templates.
type CustomToggle struct {
	base
	cfg config.CustomToggleConfig
}

func (c *CustomToggle) Type() protocol.CapabilityType { return protocol.CapabilityTypeToggle }

func (c *CustomToggle) Parameters() protocol.CapabilityParameters {
	return protocol.ToggleCapabilityParameters{Instance: c.instance}
}

func (c *CustomToggle) Value() (any, error) {
	raw, err := c.read(c.cfg.StateSource)
	if err != nil || smarthome.IsAbsent(raw) {
		return nil, err
	}
	on, ok := parseBool(raw)
	if !ok {
		return nil, smarthome.UnsupportedValue(c.entityID(), string(c.instance), raw)
	}
	return on, nil
}

func (c *CustomToggle) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	on, err := boolAction(c.binding, state)
	if err != nil {
		return nil, err
	}
	tmpl := c.cfg.TurnOff
	if on {
		tmpl = c.cfg.TurnOn
	}
	return nil, callTemplate(ctx, c.binding, c.instance, tmpl, on)
}

func parseBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1", "yes", ha.StateOpen, ha.StateUnlocked:
			return true, true
		case "off", "false", "0", "no", ha.StateClosed, ha.StateLocked:
			return false, true
		}
		return false, false
	}
	if f, ok := ha.ToFloat(raw); ok {
		return f != 0, true
	}
	return false, false
}

// CustomMode is a mode driven by a service template.
type CustomMode struct {
	base
	cfg config.CustomModeConfig
}

func (c *CustomMode) Type() protocol.CapabilityType { return protocol.CapabilityTypeMode }

func (c *CustomMode) Parameters() protocol.CapabilityParameters {
	modes := make([]protocol.ModeValue, 0, len(c.cfg.Modes))
	for _, literal := range sortedKeys(c.cfg.Modes) {
		modes = append(modes, protocol.ModeValue(literal))
	}
	return modeParameters(c.instance, modes)
}

func (c *CustomMode) Value() (any, error) {
	raw, err := c.read(c.cfg.StateSource)
	if err != nil || smarthome.IsAbsent(raw) {
		return nil, err
	}
	value := fmt.Sprint(raw)
	literal, ok := c.cfg.Modes.Lookup(value)
	if !ok {
		c.env.Logger.Debug("Unmapped mode",
			zap.String("entity_id", c.entityID()),
			zap.String("instance", string(c.instance)),
			zap.String("value", value))
		return nil, nil
	}
	return protocol.ModeValue(literal), nil
}

func (c *CustomMode) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	literal, err := stringAction(c.binding, state)
	if err != nil {
		return nil, err
	}
	values := c.cfg.Modes[literal]
	if len(values) == 0 {
		return nil, invalidValue(c.binding, state)
	}
	return nil, callTemplate(ctx, c.binding, c.instance, c.cfg.SetMode, values[0])
}

// CustomRange is a range driven by service templates.
type CustomRange struct {
	base
	cfg    config.CustomRangeConfig
	unit   protocol.RangeUnit
	bounds protocol.Range
}

func newCustomRange(b binding, instance protocol.CapabilityInstance, cfg config.CustomRangeConfig) *CustomRange {
	d := rangeDefaults[instance]
	return &CustomRange{
		base:   base{binding: b, instance: instance},
		cfg:    cfg,
		unit:   d.unit,
		bounds: cfg.Range.Apply(d.bounds),
	}
}

func (c *CustomRange) Type() protocol.CapabilityType { return protocol.CapabilityTypeRange }

func (c *CustomRange) Retrievable() bool {
	return c.cfg.StateEntityID != "" || c.cfg.StateAttribute != "" || c.cfg.SetValue != nil
}

func (c *CustomRange) Reportable() bool {
	return c.Retrievable() && c.base.Reportable()
}

func (c *CustomRange) Parameters() protocol.CapabilityParameters {
	p := protocol.RangeCapabilityParameters{
		Instance:     c.instance,
		Unit:         c.unit,
		RandomAccess: c.cfg.SetValue != nil,
	}
	if p.RandomAccess {
		bounds := c.bounds
		p.Range = &bounds
	}
	return p
}

func (c *CustomRange) Value() (any, error) {
	raw, err := c.read(c.cfg.StateSource)
	if err != nil {
		return nil, err
	}
	v, err := smarthome.Normalize(raw, smarthome.Target{EntityID: c.entityID(), Instance: string(c.instance)})
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

func (c *CustomRange) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	v, err := numberAction(c.binding, state)
	if err != nil {
		return nil, err
	}

	if state.Relative {
		if c.cfg.IncreaseValue != nil && c.cfg.DecreaseValue != nil {
			tmpl := c.cfg.IncreaseValue
			if v < 0 {
				tmpl = c.cfg.DecreaseValue
			}
			return nil, callTemplate(ctx, c.binding, c.instance, *tmpl, v)
		}
		cur, err := c.Value()
		if err != nil {
			return nil, err
		}
		f, ok := cur.(float64)
		if !ok {
			return nil, smarthome.NotSupportedInCurrentMode(c.entityID(), string(c.instance), "current value is unknown")
		}
		v = c.bounds.Clamp(f + v)
	} else if !c.bounds.Contains(v) {
		return nil, invalidValue(c.binding, state)
	}

	if c.cfg.SetValue == nil {
		return nil, smarthome.InvalidAction(c.entityID(), string(protocol.CapabilityTypeRange), string(c.instance))
	}
	return nil, callTemplate(ctx, c.binding, c.instance, *c.cfg.SetValue, v)
}
