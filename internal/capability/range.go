package capability

import (
	"context"
	"math"
	"slices"
	"strconv"

	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
	"yandexsmarthome/internal/unit"
)

// rangeDefaults are the units and bounds of each range instance before
// entity attributes and configuration narrow them.
var rangeDefaults = map[protocol.CapabilityInstance]struct {
	unit   protocol.RangeUnit
	bounds protocol.Range
}{
	protocol.RangeInstanceBrightness:  {protocol.RangeUnitPercent, protocol.Range{Min: 1, Max: 100, Precision: 1}},
	protocol.RangeInstanceChannel:     {"", protocol.Range{Min: 0, Max: 999, Precision: 1}},
	protocol.RangeInstanceHumidity:    {protocol.RangeUnitPercent, protocol.Range{Min: 0, Max: 100, Precision: 1}},
	protocol.RangeInstanceOpen:        {protocol.RangeUnitPercent, protocol.Range{Min: 0, Max: 100, Precision: 1}},
	protocol.RangeInstanceTemperature: {protocol.RangeUnitTemperatureCelsius, protocol.Range{Min: 7, Max: 35, Precision: 0.5}},
	protocol.RangeInstanceVolume:      {"", protocol.Range{Min: 0, Max: 100, Precision: 1}},
}

// Range is a built-in range capability.
type Range struct {
	base
	unit         protocol.RangeUnit
	bounds       protocol.Range
	randomAccess bool
	retrievable  bool

	current     func(st *ha.State) (float64, bool)
	setAbsolute func(ctx context.Context, b binding, instance protocol.CapabilityInstance, v float64) error

	// setRelative handles relative actions natively. When nil they are
	// resolved against the current value.
	setRelative func(ctx context.Context, b binding, instance protocol.CapabilityInstance, delta float64) error
}

func newRange(b binding, instance protocol.CapabilityInstance) *Range {
	d := rangeDefaults[instance]
	return &Range{
		base:         base{binding: b, instance: instance},
		unit:         d.unit,
		bounds:       d.bounds,
		randomAccess: true,
		retrievable:  true,
	}
}

// withConfig applies configured bounds.
func (c *Range) withConfig() *Range {
	c.bounds = c.cfg.Range.Apply(c.bounds)
	return c
}

func (c *Range) Type() protocol.CapabilityType { return protocol.CapabilityTypeRange }
func (c *Range) Retrievable() bool             { return c.retrievable }

func (c *Range) Reportable() bool {
	return c.retrievable && c.base.Reportable()
}

func (c *Range) Parameters() protocol.CapabilityParameters {
	p := protocol.RangeCapabilityParameters{
		Instance:     c.instance,
		Unit:         c.unit,
		RandomAccess: c.randomAccess,
	}
	if c.randomAccess {
		bounds := c.bounds
		p.Range = &bounds
	}
	return p
}

func (c *Range) Value() (any, error) {
	if !c.retrievable || c.absent() {
		return nil, nil
	}
	v, ok := c.current(c.state)
	if !ok {
		return nil, nil
	}
	return smarthome.Round(v), nil
}

func (c *Range) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	v, err := numberAction(c.binding, state)
	if err != nil {
		return nil, err
	}

	if state.Relative {
		if c.setRelative != nil {
			return nil, c.setRelative(ctx, c.binding, c.instance, v)
		}
		cur, ok := c.currentValue()
		if !ok {
			return nil, smarthome.NotSupportedInCurrentMode(c.entityID(), string(c.instance), "current value is unknown")
		}
		return nil, c.setAbsolute(ctx, c.binding, c.instance, c.bounds.Clamp(cur+v))
	}

	if !c.randomAccess || c.setAbsolute == nil {
		return nil, smarthome.InvalidAction(c.entityID(), string(protocol.CapabilityTypeRange), string(c.instance))
	}
	if !c.bounds.Contains(v) {
		return nil, invalidValue(c.binding, state)
	}
	return nil, c.setAbsolute(ctx, c.binding, c.instance, v)
}

func (c *Range) currentValue() (float64, bool) {
	if c.current == nil || c.absent() {
		return 0, false
	}
	return c.current(c.state)
}

type rangeRule struct {
	instance protocol.CapabilityInstance
	bind     func(b binding) (Capability, bool)
}

var rangeRules = []rangeRule{
	{protocol.RangeInstanceBrightness, bindBrightness},
	{protocol.RangeInstanceTemperature, bindTargetTemperature},
	{protocol.RangeInstanceHumidity, bindTargetHumidity},
	{protocol.RangeInstanceVolume, bindVolume},
	{protocol.RangeInstanceChannel, bindChannel},
	{protocol.RangeInstanceOpen, bindOpen},
}

// dimmableColorModes are the light color modes that include brightness.
var dimmableColorModes = []string{
	ha.ColorModeBrightness, ha.ColorModeColorTemp, ha.ColorModeHS, ha.ColorModeXY,
	ha.ColorModeRGB, ha.ColorModeRGBW, ha.ColorModeRGBWW, ha.ColorModeWhite,
}

func bindBrightness(b binding) (Capability, bool) {
	st := b.state
	if st.Domain() != ha.DomainLight {
		return nil, false
	}
	dimmable := st.HasAttr(ha.AttrBrightness)
	for _, mode := range st.AttrStrings(ha.AttrSupportedColorModes) {
		if slices.Contains(dimmableColorModes, mode) {
			dimmable = true
		}
	}
	if !dimmable {
		return nil, false
	}

	c := newRange(b, protocol.RangeInstanceBrightness).withConfig()
	c.current = func(st *ha.State) (float64, bool) {
		v, ok := st.AttrFloat(ha.AttrBrightness)
		if !ok {
			return 0, false
		}
		return math.Round(v * 100 / 255), true
	}
	c.setAbsolute = func(ctx context.Context, b binding, i protocol.CapabilityInstance, v float64) error {
		return b.call(ctx, i, ha.ServiceTurnOn, map[string]any{"brightness_pct": v})
	}
	c.setRelative = func(ctx context.Context, b binding, i protocol.CapabilityInstance, delta float64) error {
		return b.call(ctx, i, ha.ServiceTurnOn, map[string]any{"brightness_step_pct": delta})
	}
	return c, true
}

func bindTargetTemperature(b binding) (Capability, bool) {
	st := b.state
	switch st.Domain() {
	case ha.DomainClimate:
		if !st.Supports(ha.ClimateSupportTargetTemperature) {
			return nil, false
		}
	case ha.DomainWaterHeater:
		if !st.Supports(ha.WaterHeaterSupportTargetTemperature) {
			return nil, false
		}
	default:
		return nil, false
	}

	system := b.env.Settings.TemperatureUnit
	toCelsius := func(v float64) float64 {
		if c, err := unit.Temperature.Convert(v, system, unit.Celsius); err == nil {
			return c
		}
		return v
	}
	fromCelsius := func(v float64) float64 {
		if c, err := unit.Temperature.Convert(v, unit.Celsius, system); err == nil {
			return c
		}
		return v
	}

	c := newRange(b, protocol.RangeInstanceTemperature)
	if v, ok := st.AttrFloat(ha.AttrMinTemp); ok {
		c.bounds.Min = smarthome.Round(toCelsius(v))
	}
	if v, ok := st.AttrFloat(ha.AttrMaxTemp); ok {
		c.bounds.Max = smarthome.Round(toCelsius(v))
	}
	for _, attr := range []string{ha.AttrTargetTempStep, ha.AttrTargetTemperatureStep} {
		if v, ok := st.AttrFloat(attr); ok && v > 0 {
			c.bounds.Precision = v
			break
		}
	}
	c.withConfig()

	c.current = func(st *ha.State) (float64, bool) {
		v, ok := st.AttrFloat(ha.AttrTemperature)
		if !ok {
			return 0, false
		}
		return toCelsius(v), true
	}
	c.setAbsolute = func(ctx context.Context, b binding, i protocol.CapabilityInstance, v float64) error {
		return b.call(ctx, i, ha.ServiceSetTemperature, map[string]any{ha.AttrTemperature: smarthome.Round(fromCelsius(v))})
	}
	return c, true
}

func bindTargetHumidity(b binding) (Capability, bool) {
	st := b.state
	switch st.Domain() {
	case ha.DomainHumidifier:
	case ha.DomainClimate:
		if !st.Supports(ha.ClimateSupportTargetHumidity) {
			return nil, false
		}
	default:
		return nil, false
	}

	c := newRange(b, protocol.RangeInstanceHumidity)
	if v, ok := st.AttrFloat(ha.AttrMinHumidity); ok {
		c.bounds.Min = v
	}
	if v, ok := st.AttrFloat(ha.AttrMaxHumidity); ok {
		c.bounds.Max = v
	}
	c.withConfig()

	c.current = func(st *ha.State) (float64, bool) { return st.AttrFloat(ha.AttrHumidity) }
	c.setAbsolute = func(ctx context.Context, b binding, i protocol.CapabilityInstance, v float64) error {
		return b.call(ctx, i, ha.ServiceSetHumidity, map[string]any{ha.AttrHumidity: v})
	}
	return c, true
}

// maxVolumeSteps caps the number of step calls one relative volume action makes.
const maxVolumeSteps = 10

func bindVolume(b binding) (Capability, bool) {
	st := b.state
	if st.Domain() != ha.DomainMediaPlayer {
		return nil, false
	}
	canSet := st.Supports(ha.MediaPlayerSupportVolumeSet)
	canStep := st.Supports(ha.MediaPlayerSupportVolumeStep)
	if !canSet && !canStep {
		return nil, false
	}

	c := newRange(b, protocol.RangeInstanceVolume).withConfig()
	c.current = func(st *ha.State) (float64, bool) {
		v, ok := st.AttrFloat(ha.AttrVolumeLevel)
		if !ok {
			return 0, false
		}
		return math.Round(v * 100), true
	}

	if canSet {
		c.setAbsolute = func(ctx context.Context, b binding, i protocol.CapabilityInstance, v float64) error {
			return b.call(ctx, i, ha.ServiceVolumeSet, map[string]any{ha.AttrVolumeLevel: v / 100})
		}
		return c, true
	}

	c.randomAccess = false
	c.retrievable = false
	c.setRelative = func(ctx context.Context, b binding, i protocol.CapabilityInstance, delta float64) error {
		service := ha.ServiceVolumeUp
		if delta < 0 {
			service = ha.ServiceVolumeDown
		}
		steps := min(max(int(math.Abs(delta)), 1), maxVolumeSteps)
		for range steps {
			if err := b.call(ctx, i, service, nil); err != nil {
				return err
			}
		}
		return nil
	}
	return c, true
}

func bindChannel(b binding) (Capability, bool) {
	st := b.state
	if st.Domain() != ha.DomainMediaPlayer {
		return nil, false
	}
	canStep := st.Supports(ha.MediaPlayerSupportNextTrack) && st.Supports(ha.MediaPlayerSupportPreviousTrack)
	canPlay := st.Supports(ha.MediaPlayerSupportPlayMedia) && st.DeviceClass() == ha.DeviceClassTV
	if !canStep && !canPlay {
		return nil, false
	}

	c := newRange(b, protocol.RangeInstanceChannel).withConfig()
	c.randomAccess = canPlay
	c.retrievable = canPlay
	c.current = func(st *ha.State) (float64, bool) {
		if st.AttrString(ha.AttrMediaContentType) != "channel" {
			return 0, false
		}
		return st.AttrFloat(ha.AttrMediaContentID)
	}
	if canPlay {
		c.setAbsolute = func(ctx context.Context, b binding, i protocol.CapabilityInstance, v float64) error {
			return b.call(ctx, i, ha.ServicePlayMedia, map[string]any{
				ha.AttrMediaContentID:   strconv.Itoa(int(v)),
				ha.AttrMediaContentType: "channel",
			})
		}
	}
	if canStep {
		c.setRelative = func(ctx context.Context, b binding, i protocol.CapabilityInstance, delta float64) error {
			if delta < 0 {
				return b.call(ctx, i, ha.ServiceMediaPrevTrack, nil)
			}
			return b.call(ctx, i, ha.ServiceMediaNextTrack, nil)
		}
	}
	return c, true
}

func bindOpen(b binding) (Capability, bool) {
	st := b.state
	var service string
	switch {
	case st.Domain() == ha.DomainCover && st.Supports(ha.CoverSupportSetPosition):
		service = ha.ServiceSetCoverPosition
	case st.Domain() == ha.DomainValve && st.Supports(ha.ValveSupportSetPosition):
		service = ha.ServiceSetValvePosition
	default:
		return nil, false
	}

	c := newRange(b, protocol.RangeInstanceOpen).withConfig()
	c.current = func(st *ha.State) (float64, bool) { return st.AttrFloat(ha.AttrCurrentPosition) }
	c.setAbsolute = func(ctx context.Context, b binding, i protocol.CapabilityInstance, v float64) error {
		return b.call(ctx, i, service, map[string]any{"position": v})
	}
	return c, true
}
