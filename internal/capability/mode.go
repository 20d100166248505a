package capability

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
)

// modeAliases maps protocol modes to the platform values that usually stand
// for them. A platform value belongs to at most one mode.
var modeAliases = []struct {
	mode    protocol.ModeValue
	aliases []string
}{
	{protocol.ModeAuto, []string{"auto", "automatic", "heat_cool", "smart_auto"}},
	{protocol.ModeEco, []string{"eco", "economy", "away"}},
	{protocol.ModeSmart, []string{"smart", "smart_mode"}},
	{protocol.ModeTurbo, []string{"turbo", "boost", "strong"}},
	{protocol.ModeCool, []string{"cool", "cooling"}},
	{protocol.ModeDry, []string{"dry", "dehumidify"}},
	{protocol.ModeFanOnly, []string{"fan_only", "fan"}},
	{protocol.ModeHeat, []string{"heat", "heating"}},
	{protocol.ModePreheat, []string{"preheat"}},
	{protocol.ModeHigh, []string{"high", "level_3", "3"}},
	{protocol.ModeLow, []string{"low", "level_1", "1"}},
	{protocol.ModeMedium, []string{"medium", "middle", "mid", "level_2", "2"}},
	{protocol.ModeMax, []string{"max", "maximum", "favorite"}},
	{protocol.ModeMin, []string{"min", "minimum"}},
	{protocol.ModeFast, []string{"fast"}},
	{protocol.ModeSlow, []string{"slow"}},
	{protocol.ModeExpress, []string{"express"}},
	{protocol.ModeNormal, []string{"normal", "standard", "default", "balanced"}},
	{protocol.ModeQuiet, []string{"quiet", "silent"}},
	{protocol.ModeHorizontal, []string{"horizontal"}},
	{protocol.ModeVertical, []string{"vertical"}},
	{protocol.ModeStationary, []string{"off", "stationary"}},
	{protocol.ModeWetCleaning, []string{"wet_cleaning", "mop"}},
	{protocol.ModeDryCleaning, []string{"dry_cleaning", "sweep"}},
	{protocol.ModeMixedCleaning, []string{"mixed_cleaning", "sweep_and_mop"}},
	{protocol.ModeNight, []string{"night", "sleep"}},
	{protocol.ModeIntensive, []string{"intensive"}},
}

var aliasIndex = func() map[string]protocol.ModeValue {
	idx := map[string]protocol.ModeValue{}
	for _, a := range modeAliases {
		for _, alias := range a.aliases {
			idx[alias] = a.mode
		}
	}
	return idx
}()

// modeMap translates between platform values and protocol modes for one
// entity and instance.
type modeMap struct {
	entityID string
	instance protocol.CapabilityInstance
	platform []string
	custom   config.ValueMap
	logger   *zap.Logger
}

func newModeMap(b binding, instance protocol.CapabilityInstance, platform []string, custom config.ValueMap) modeMap {
	return modeMap{
		entityID: b.entityID(),
		instance: instance,
		platform: platform,
		custom:   custom,
		logger:   b.env.Logger,
	}
}

// toProtocol maps a platform value. Configured mappings replace the
// built-in ones entirely.
func (m modeMap) toProtocol(raw string) (protocol.ModeValue, bool) {
	if len(m.custom) > 0 {
		literal, ok := m.custom.Lookup(raw)
		return protocol.ModeValue(literal), ok
	}
	if m.instance == protocol.ModeInstanceInputSource {
		for i, v := range m.platform {
			if v == raw && i < len(protocol.NumericModes) {
				return protocol.NumericModes[i], true
			}
		}
		return "", false
	}
	key := strings.ToLower(strings.TrimSpace(raw))
	if mode, ok := aliasIndex[key]; ok {
		return mode, true
	}
	if mode := protocol.ModeValue(key); mode.Valid() {
		return mode, true
	}
	return "", false
}

// toPlatform returns the first platform value mapping to mode.
func (m modeMap) toPlatform(mode protocol.ModeValue) (string, bool) {
	for _, v := range m.platform {
		if got, ok := m.toProtocol(v); ok && got == mode {
			return v, true
		}
	}
	if len(m.custom) > 0 {
		if values := m.custom[string(mode)]; len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}

// modes lists the supported protocol modes in platform order.
func (m modeMap) modes() []protocol.ModeValue {
	seen := map[protocol.ModeValue]bool{}
	var out []protocol.ModeValue
	add := func(mode protocol.ModeValue) {
		if !seen[mode] {
			seen[mode] = true
			out = append(out, mode)
		}
	}

	for _, v := range m.platform {
		mode, ok := m.toProtocol(v)
		if !ok {
			m.logger.Debug("Unmapped mode",
				zap.String("entity_id", m.entityID),
				zap.String("instance", string(m.instance)),
				zap.String("value", v))
			continue
		}
		add(mode)
	}
	if len(m.platform) == 0 {
		for literal := range m.custom {
			add(protocol.ModeValue(literal))
		}
		slices.Sort(out)
	}
	return out
}

func modeParameters(instance protocol.CapabilityInstance, modes []protocol.ModeValue) protocol.ModeCapabilityParameters {
	options := make([]protocol.ModeOption, 0, len(modes))
	for _, m := range modes {
		options = append(options, protocol.ModeOption{Value: m})
	}
	return protocol.ModeCapabilityParameters{Instance: instance, Modes: options}
}

// Mode is a built-in mode capability.
type Mode struct {
	base
	mapper  modeMap
	current func(st *ha.State) string
	set     func(ctx context.Context, b binding, instance protocol.CapabilityInstance, value string) error
}

func (c *Mode) Type() protocol.CapabilityType { return protocol.CapabilityTypeMode }

func (c *Mode) Parameters() protocol.CapabilityParameters {
	return modeParameters(c.instance, c.mapper.modes())
}

func (c *Mode) Value() (any, error) {
	if c.absent() {
		return nil, nil
	}
	raw := c.current(c.state)
	if raw == "" {
		return nil, nil
	}
	mode, ok := c.mapper.toProtocol(raw)
	if !ok {
		c.env.Logger.Debug("Unmapped mode",
			zap.String("entity_id", c.entityID()),
			zap.String("instance", string(c.instance)),
			zap.String("value", raw))
		return nil, nil
	}
	return mode, nil
}

func (c *Mode) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	literal, err := stringAction(c.binding, state)
	if err != nil {
		return nil, err
	}
	value, ok := c.mapper.toPlatform(protocol.ModeValue(literal))
	if !ok {
		return nil, invalidValue(c.binding, state)
	}
	return nil, c.set(ctx, c.binding, c.instance, value)
}

type modeRule struct {
	instance protocol.CapabilityInstance
	bind     func(b binding) (Capability, bool)
}

// attrMode builds a mode read from one attribute and set by one service
// taking that attribute as its argument.
func attrMode(b binding, instance protocol.CapabilityInstance, listAttr, currentAttr, service string) (Capability, bool) {
	platform := b.state.AttrStrings(listAttr)
	c := &Mode{
		base:    base{binding: b, instance: instance},
		mapper:  newModeMap(b, instance, platform, b.cfg.Modes[string(instance)]),
		current: func(st *ha.State) string { return st.AttrString(currentAttr) },
		set: func(ctx context.Context, b binding, i protocol.CapabilityInstance, value string) error {
			return b.call(ctx, i, service, map[string]any{currentAttr: value})
		},
	}
	if len(platform) == 0 || len(c.mapper.modes()) == 0 {
		return nil, false
	}
	return c, true
}

var modeRules = []modeRule{
	{protocol.ModeInstanceThermostat, bindThermostatMode},
	{protocol.ModeInstanceSwing, bindSwingMode},
	{protocol.ModeInstanceFanSpeed, bindFanSpeedMode},
	{protocol.ModeInstanceProgram, bindProgramMode},
	{protocol.ModeInstanceCleanupMode, bindCleanupMode},
	{protocol.ModeInstanceInputSource, bindInputSourceMode},
}

func bindThermostatMode(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainClimate {
		return nil, false
	}
	var platform []string
	for _, m := range b.state.AttrStrings(ha.AttrHVACModes) {
		if m != ha.StateOff {
			platform = append(platform, m)
		}
	}
	c := &Mode{
		base:    base{binding: b, instance: protocol.ModeInstanceThermostat},
		mapper:  newModeMap(b, protocol.ModeInstanceThermostat, platform, b.cfg.Modes[string(protocol.ModeInstanceThermostat)]),
		current: func(st *ha.State) string { return st.State },
		set: func(ctx context.Context, b binding, i protocol.CapabilityInstance, value string) error {
			return b.call(ctx, i, ha.ServiceSetHVACMode, map[string]any{ha.AttrHVACMode: value})
		},
	}
	if len(platform) == 0 || len(c.mapper.modes()) == 0 {
		return nil, false
	}
	return c, true
}

func bindSwingMode(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainClimate || !b.state.Supports(ha.ClimateSupportSwingMode) {
		return nil, false
	}
	return attrMode(b, protocol.ModeInstanceSwing, ha.AttrSwingModes, ha.AttrSwingMode, ha.ServiceSetSwingMode)
}

func bindFanSpeedMode(b binding) (Capability, bool) {
	st := b.state
	switch st.Domain() {
	case ha.DomainClimate:
		if st.Supports(ha.ClimateSupportFanMode) {
			return attrMode(b, protocol.ModeInstanceFanSpeed, ha.AttrFanModes, ha.AttrFanMode, ha.ServiceSetFanMode)
		}
	case ha.DomainFan:
		if st.Supports(ha.FanSupportPresetMode) && len(st.AttrStrings(ha.AttrPresetModes)) > 0 {
			return attrMode(b, protocol.ModeInstanceFanSpeed, ha.AttrPresetModes, ha.AttrPresetMode, ha.ServiceSetPresetMode)
		}
		if st.Supports(ha.FanSupportSetSpeed) {
			return percentageMode(b), true
		}
	}
	return nil, false
}

// percentageSpeeds are the fan speeds exposed for fans without presets,
// with the percentage each one sets.
var percentageSpeeds = []struct {
	mode       string
	percentage int
}{
	{string(protocol.ModeLow), 33},
	{string(protocol.ModeMedium), 66},
	{string(protocol.ModeHigh), 100},
}

func percentageMode(b binding) *Mode {
	platform := make([]string, 0, len(percentageSpeeds))
	for _, s := range percentageSpeeds {
		platform = append(platform, s.mode)
	}
	return &Mode{
		base:   base{binding: b, instance: protocol.ModeInstanceFanSpeed},
		mapper: newModeMap(b, protocol.ModeInstanceFanSpeed, platform, nil),
		current: func(st *ha.State) string {
			p, ok := st.AttrFloat(ha.AttrPercentage)
			if !ok || p <= 0 {
				return ""
			}
			for _, s := range percentageSpeeds {
				if p <= float64(s.percentage) {
					return s.mode
				}
			}
			return percentageSpeeds[len(percentageSpeeds)-1].mode
		},
		set: func(ctx context.Context, b binding, i protocol.CapabilityInstance, value string) error {
			for _, s := range percentageSpeeds {
				if s.mode == value {
					return b.call(ctx, i, ha.ServiceSetPercentage, map[string]any{ha.AttrPercentage: s.percentage})
				}
			}
			return invalidValue(b, protocol.CapabilityActionState{Instance: i, Value: value})
		},
	}
}

func bindProgramMode(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainHumidifier || !b.state.Supports(ha.HumidifierSupportModes) {
		return nil, false
	}
	return attrMode(b, protocol.ModeInstanceProgram, ha.AttrAvailableModes, ha.AttrMode, ha.ServiceSetMode)
}

func bindCleanupMode(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainVacuum || !b.state.Supports(ha.VacuumSupportFanSpeed) {
		return nil, false
	}
	return attrMode(b, protocol.ModeInstanceCleanupMode, ha.AttrFanSpeedList, ha.AttrFanSpeed, ha.ServiceSetFanSpeed)
}

func bindInputSourceMode(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainMediaPlayer || !b.state.Supports(ha.MediaPlayerSupportSelectSource) {
		return nil, false
	}
	return attrMode(b, protocol.ModeInstanceInputSource, ha.AttrSourceList, ha.AttrSource, ha.ServiceSelectSource)
}
