package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
	"yandexsmarthome/internal/unit"
)

// Config is the whole configuration document.
type Config struct {
	Settings Settings                `yaml:"settings"`
	Entities map[string]EntityConfig `yaml:"entity_config"`
}

// Settings are the global options.
type Settings struct {
	PressureUnit    string `yaml:"pressure_unit"`
	StateReporting  *bool  `yaml:"state_reporting"`
	TemperatureUnit string `yaml:"temperature_unit"`
	StreamBaseURL   string `yaml:"stream_base_url"`
}

// Smarthome returns the settings with defaults applied.
func (s Settings) Smarthome() smarthome.Settings {
	out := smarthome.DefaultSettings()
	if s.PressureUnit != "" {
		out.PressureUnit = protocol.FloatUnit(s.PressureUnit)
	}
	if s.StateReporting != nil {
		out.StateReporting = *s.StateReporting
	}
	if s.TemperatureUnit != "" {
		out.TemperatureUnit = unit.Canonical(unit.Unit(s.TemperatureUnit))
	}
	out.StreamBaseURL = s.StreamBaseURL
	return out
}

// EntityConfig is the user override for one entity. Every field is optional.
type EntityConfig struct {
	Name          string                        `yaml:"name"`
	Room          string                        `yaml:"room"`
	Type          protocol.DeviceType           `yaml:"type"`
	Properties    []PropertyConfig              `yaml:"properties"`
	Modes         map[string]ValueMap           `yaml:"modes"`
	Range         *RangeConfig                  `yaml:"range"`
	TurnOn        *ServiceTemplate              `yaml:"turn_on"`
	TurnOff       *ServiceTemplate              `yaml:"turn_off"`
	CustomToggles map[string]CustomToggleConfig `yaml:"custom_toggles"`
	CustomModes   map[string]CustomModeConfig   `yaml:"custom_modes"`
	CustomRanges  map[string]CustomRangeConfig  `yaml:"custom_ranges"`
}

// PropertyType is the family a custom property belongs to.
type PropertyType string

const (
	PropertyTypeFloat PropertyType = "float"
	PropertyTypeEvent PropertyType = "event"
)

// PropertyConfig binds a property instance to a source. With no EntityID the
// entity's own snapshot is used; with no Attribute the state string is read.
type PropertyConfig struct {
	Type      PropertyType              `yaml:"type"`
	Instance  protocol.PropertyInstance `yaml:"instance"`
	EntityID  string                    `yaml:"entity"`
	Attribute string                    `yaml:"attribute"`
	Unit      unit.Unit                 `yaml:"unit"`
	EventMap  ValueMap                  `yaml:"event_map"`
}

// Family returns the declared family, inferring it from the instance when
// the type is omitted. Instances present in both families default to float.
func (p PropertyConfig) Family() PropertyType {
	if p.Type != "" {
		return p.Type
	}
	if !protocol.IsFloatInstance(p.Instance) && protocol.IsEventInstance(p.Instance) {
		return PropertyTypeEvent
	}
	return PropertyTypeFloat
}

// ValueMap maps a protocol literal (mode or event value) to the raw platform
// values that stand for it.
type ValueMap map[string][]string

// Lookup returns the protocol literal a raw value maps to.
func (m ValueMap) Lookup(raw string) (string, bool) {
	for _, literal := range slices.Sorted(maps.Keys(m)) {
		for _, v := range m[literal] {
			if strings.EqualFold(v, raw) {
				return literal, true
			}
		}
	}
	return "", false
}

// validate rejects a raw value listed under more than one literal.
func (m ValueMap) validate(path string) []error {
	var errs []error
	owners := map[string]string{}
	for _, literal := range slices.Sorted(maps.Keys(m)) {
		for _, v := range m[literal] {
			key := strings.ToLower(v)
			if owner, ok := owners[key]; ok && owner != literal {
				errs = append(errs, fmt.Errorf("%s: value %q is mapped to both %q and %q", path, v, owner, literal))
				continue
			}
			owners[key] = literal
		}
	}
	return errs
}

// RangeConfig overrides the bounds of a range capability.
type RangeConfig struct {
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Precision *float64 `yaml:"precision"`
}

// Apply overrides the set fields of r.
func (c *RangeConfig) Apply(r protocol.Range) protocol.Range {
	if c == nil {
		return r
	}
	if c.Min != nil {
		r.Min = *c.Min
	}
	if c.Max != nil {
		r.Max = *c.Max
	}
	if c.Precision != nil {
		r.Precision = *c.Precision
	}
	return r
}

// ServiceTemplate is a service call whose string data values are
// text/template strings rendered with the action value as .Value.
type ServiceTemplate struct {
	Service string         `yaml:"service"`
	Data    map[string]any `yaml:"data"`
}

// Split returns the domain and service name.
func (t ServiceTemplate) Split() (domain, service string) {
	domain, service, _ = strings.Cut(t.Service, ".")
	return domain, service
}

// StateSource points a custom capability at an alternate entity or attribute.
type StateSource struct {
	StateEntityID  string `yaml:"state_entity_id"`
	StateAttribute string `yaml:"state_attribute"`
}

// CustomToggleConfig is a toggle implemented by service templates.
type CustomToggleConfig struct {
	StateSource `yaml:",inline"`
	TurnOn      ServiceTemplate `yaml:"turn_on"`
	TurnOff     ServiceTemplate `yaml:"turn_off"`
}

// CustomModeConfig is a mode implemented by a service template.
type CustomModeConfig struct {
	StateSource `yaml:",inline"`
	SetMode     ServiceTemplate `yaml:"set_mode"`
	Modes       ValueMap        `yaml:"modes"`
}

// CustomRangeConfig is a range implemented by service templates.
type CustomRangeConfig struct {
	StateSource   `yaml:",inline"`
	SetValue      *ServiceTemplate `yaml:"set_value"`
	IncreaseValue *ServiceTemplate `yaml:"increase_value"`
	DecreaseValue *ServiceTemplate `yaml:"decrease_value"`
	Range         *RangeConfig     `yaml:"range"`
}

// Entity returns the configuration of an entity, or the zero value.
func (c *Config) Entity(entityID string) EntityConfig {
	if c == nil {
		return EntityConfig{}
	}
	return c.Entities[entityID]
}

// Has reports whether the entity is explicitly configured.
func (c *Config) Has(entityID string) bool {
	if c == nil {
		return false
	}
	_, ok := c.Entities[entityID]
	return ok
}

// validate runs the checks the schema cannot express.
func (c *Config) validate() []error {
	var errs []error

	if c.Settings.PressureUnit != "" && !protocol.IsPressureUnit(protocol.FloatUnit(c.Settings.PressureUnit)) {
		errs = append(errs, fmt.Errorf("settings.pressure_unit: unsupported unit %q", c.Settings.PressureUnit))
	}
	if c.Settings.TemperatureUnit != "" && !unit.Temperature.Supports(unit.Unit(c.Settings.TemperatureUnit)) {
		errs = append(errs, fmt.Errorf("settings.temperature_unit: unsupported unit %q", c.Settings.TemperatureUnit))
	}

	for entityID, ec := range c.Entities {
		for _, err := range ec.validate() {
			errs = append(errs, fmt.Errorf("entity_config.%s: %w", entityID, err))
		}
	}
	return errs
}

func (ec EntityConfig) validate() []error {
	var errs []error

	if ec.Type != "" && !ec.Type.Valid() {
		errs = append(errs, fmt.Errorf("type: unsupported device type %q", ec.Type))
	}

	for i, p := range ec.Properties {
		switch p.Family() {
		case PropertyTypeFloat:
			if !protocol.IsFloatInstance(p.Instance) {
				errs = append(errs, fmt.Errorf("properties[%d]: unsupported float instance %q", i, p.Instance))
			}
			if len(p.EventMap) > 0 {
				errs = append(errs, fmt.Errorf("properties[%d]: event_map is only allowed for event properties", i))
			}
		case PropertyTypeEvent:
			allowed, ok := protocol.EventValues[p.Instance]
			if !ok {
				errs = append(errs, fmt.Errorf("properties[%d]: unsupported event instance %q", i, p.Instance))
				continue
			}
			for literal := range p.EventMap {
				if !containsEvent(allowed, protocol.EventValue(literal)) {
					errs = append(errs, fmt.Errorf("properties[%d].event_map: unsupported event %q for %s", i, literal, p.Instance))
				}
			}
			errs = append(errs, p.EventMap.validate(fmt.Sprintf("properties[%d].event_map", i))...)
		}
	}

	for instance, modes := range ec.Modes {
		if !protocol.Contains(protocol.ModeInstances, protocol.CapabilityInstance(instance)) {
			errs = append(errs, fmt.Errorf("modes: unsupported mode instance %q", instance))
		}
		errs = append(errs, validateModes("modes."+instance, modes)...)
	}

	if err := ec.Range.validate(); err != nil {
		errs = append(errs, fmt.Errorf("range: %w", err))
	}

	for instance := range ec.CustomToggles {
		if !protocol.Contains(protocol.ToggleInstances, protocol.CapabilityInstance(instance)) {
			errs = append(errs, fmt.Errorf("custom_toggles: unsupported toggle instance %q", instance))
		}
	}
	for instance, cm := range ec.CustomModes {
		if !protocol.Contains(protocol.ModeInstances, protocol.CapabilityInstance(instance)) {
			errs = append(errs, fmt.Errorf("custom_modes: unsupported mode instance %q", instance))
		}
		errs = append(errs, validateModes("custom_modes."+instance+".modes", cm.Modes)...)
	}
	for instance, cr := range ec.CustomRanges {
		if !protocol.Contains(protocol.RangeInstances, protocol.CapabilityInstance(instance)) {
			errs = append(errs, fmt.Errorf("custom_ranges: unsupported range instance %q", instance))
		}
		if cr.SetValue == nil && (cr.IncreaseValue == nil || cr.DecreaseValue == nil) {
			errs = append(errs, fmt.Errorf("custom_ranges.%s: set_value or both increase_value and decrease_value are required", instance))
		}
		if err := cr.Range.validate(); err != nil {
			errs = append(errs, fmt.Errorf("custom_ranges.%s.range: %w", instance, err))
		}
	}
	return errs
}

func validateModes(path string, modes ValueMap) []error {
	var errs []error
	for mode := range modes {
		if !protocol.ModeValue(mode).Valid() {
			errs = append(errs, fmt.Errorf("%s: unsupported mode %q", path, mode))
		}
	}
	return append(errs, modes.validate(path)...)
}

func (c *RangeConfig) validate() error {
	if c == nil || c.Min == nil || c.Max == nil {
		return nil
	}
	if *c.Min >= *c.Max {
		return fmt.Errorf("min %v must be less than max %v", *c.Min, *c.Max)
	}
	return nil
}

func containsEvent(list []protocol.EventValue, v protocol.EventValue) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
