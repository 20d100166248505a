package property

import (
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
	"yandexsmarthome/internal/unit"
)

// floatShape is the fixed protocol shape of a float instance.
type floatShape struct {
	unit      protocol.FloatUnit
	bounds    smarthome.Bounds
	converter unit.Converter
}

var (
	percent     = smarthome.Between(0, 100)
	nonNegative = smarthome.AtLeast(0)
)

// Temperature and pressure have no fixed unit: see FloatProperty.units.
var floatShapes = map[protocol.PropertyInstance]floatShape{
	protocol.FloatInstanceAmperage:         {protocol.UnitAmpere, nonNegative, unit.Current},
	protocol.FloatInstanceBatteryLevel:     {protocol.UnitPercent, percent, nil},
	protocol.FloatInstanceCO2Level:         {protocol.UnitPPM, nonNegative, nil},
	protocol.FloatInstanceElectricityMeter: {protocol.UnitKilowattHour, nonNegative, unit.Energy},
	protocol.FloatInstanceFoodLevel:        {protocol.UnitPercent, percent, nil},
	protocol.FloatInstanceGasMeter:         {protocol.UnitCubicMeter, nonNegative, unit.Volume},
	protocol.FloatInstanceHeatMeter:        {protocol.UnitGigacalorie, nonNegative, nil},
	protocol.FloatInstanceHumidity:         {protocol.UnitPercent, percent, nil},
	protocol.FloatInstanceIllumination:     {protocol.UnitLux, nonNegative, nil},
	protocol.FloatInstanceMeter:            {"", smarthome.Unbounded, nil},
	protocol.FloatInstancePM1Density:       {protocol.UnitMCGM3, nonNegative, nil},
	protocol.FloatInstancePM25Density:      {protocol.UnitMCGM3, nonNegative, nil},
	protocol.FloatInstancePM10Density:      {protocol.UnitMCGM3, nonNegative, nil},
	protocol.FloatInstancePower:            {protocol.UnitWatt, nonNegative, unit.Power},
	protocol.FloatInstancePressure:         {"", nonNegative, unit.Pressure},
	protocol.FloatInstanceTemperature:      {"", smarthome.Unbounded, unit.Temperature},
	protocol.FloatInstanceTVOC:             {protocol.UnitMCGM3, nonNegative, unit.TVOC},
	protocol.FloatInstanceVoltage:          {protocol.UnitVolt, nonNegative, unit.ElectricPotential},
	protocol.FloatInstanceWaterLevel:       {protocol.UnitPercent, percent, nil},
	protocol.FloatInstanceWaterMeter:       {protocol.UnitCubicMeter, nonNegative, unit.Volume},
}

// platformUnits maps protocol units to the symbols the converters use.
var platformUnits = map[protocol.FloatUnit]unit.Unit{
	protocol.UnitAmpere:             unit.Ampere,
	protocol.UnitCubicMeter:         unit.CubicMeter,
	protocol.UnitKilowattHour:       unit.KilowattHour,
	protocol.UnitMCGM3:              unit.MicrogramsPerCubicMeter,
	protocol.UnitPressurePascal:     unit.Pascal,
	protocol.UnitPressureMMHG:       unit.MillimeterOfMercury,
	protocol.UnitPressureATM:        unit.Atmosphere,
	protocol.UnitPressureBar:        unit.Bar,
	protocol.UnitTemperatureCelsius: unit.Celsius,
	protocol.UnitTemperatureKelvin:  unit.Kelvin,
	protocol.UnitVolt:               unit.Volt,
	protocol.UnitWatt:               unit.Watt,
}

// FloatProperty is a float property bound to a snapshot.
type FloatProperty struct {
	env          *smarthome.Env
	entityID     string
	instance     protocol.PropertyInstance
	shape        floatShape
	source       valueSource
	unitOverride unit.Unit
}

func newFloatProperty(env *smarthome.Env, entityID string, instance protocol.PropertyInstance, source valueSource) *FloatProperty {
	return &FloatProperty{
		env:      env,
		entityID: entityID,
		instance: instance,
		shape:    floatShapes[instance],
		source:   source,
	}
}

func (p *FloatProperty) Type() protocol.PropertyType         { return protocol.PropertyTypeFloat }
func (p *FloatProperty) Instance() protocol.PropertyInstance { return p.instance }
func (p *FloatProperty) Retrievable() bool                   { return true }
func (p *FloatProperty) Reportable() bool                    { return p.env.Settings.StateReporting }

func (p *FloatProperty) Parameters() protocol.PropertyParameters {
	u, _ := p.units()
	return protocol.FloatPropertyParameters{Instance: p.instance, Unit: u}
}

// NativeUnit returns the unit of the raw value: the configured override, else
// whatever the source declares.
func (p *FloatProperty) NativeUnit() unit.Unit {
	if p.unitOverride != "" {
		return p.unitOverride
	}
	return p.source.Unit()
}

// units returns the protocol unit and the matching converter unit.
func (p *FloatProperty) units() (protocol.FloatUnit, unit.Unit) {
	switch p.instance {
	case protocol.FloatInstanceTemperature:
		if unit.Canonical(p.NativeUnit()) == unit.Kelvin {
			return protocol.UnitTemperatureKelvin, unit.Kelvin
		}
		return protocol.UnitTemperatureCelsius, unit.Celsius
	case protocol.FloatInstancePressure:
		pu := p.env.Settings.PressureUnit
		if !protocol.IsPressureUnit(pu) {
			pu = protocol.UnitPressureMMHG
		}
		return pu, platformUnits[pu]
	}
	return p.shape.unit, platformUnits[p.shape.unit]
}

func (p *FloatProperty) Value() (any, error) {
	raw, err := p.source.Value()
	if err != nil {
		return nil, err
	}

	_, target := p.units()
	v, err := smarthome.Normalize(raw, smarthome.Target{
		EntityID:   p.entityID,
		Instance:   string(p.instance),
		Converter:  p.shape.converter,
		NativeUnit: p.NativeUnit(),
		Unit:       target,
		Bounds:     p.shape.bounds,
	})
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// floatRule decides whether a snapshot exposes a float instance.
//
// Sensor entities match on device class; when the sensor has no device class
// its unit of measurement is enough. Other domains match on the first
// present attribute alias for their domain, in priority order.
type floatRule struct {
	instance      protocol.PropertyInstance
	deviceClasses []string
	units         []unit.Unit
	attributes    map[string][]string

	// attributeUnit is the unit attribute values are reported in.
	attributeUnit func(smarthome.Settings) unit.Unit
}

// anyDomain keys attribute aliases that apply to every domain.
const anyDomain = "*"

func (r *floatRule) bind(env *smarthome.Env, st *ha.State) (Property, bool) {
	if st.Domain() == ha.DomainSensor && r.matchSensor(st) {
		return newFloatProperty(env, st.EntityID, r.instance, stateSource{state: st}), true
	}

	for _, aliases := range [][]string{r.attributes[st.Domain()], r.attributes[anyDomain]} {
		for _, attr := range aliases {
			if !st.HasAttr(attr) {
				continue
			}
			var u unit.Unit
			if r.attributeUnit != nil {
				u = r.attributeUnit(env.Settings)
			}
			return newFloatProperty(env, st.EntityID, r.instance, attributeSource{state: st, attribute: attr, unit: u}), true
		}
	}
	return nil, false
}

func (r *floatRule) matchSensor(st *ha.State) bool {
	if dc := st.DeviceClass(); dc != "" {
		return contains(r.deviceClasses, dc)
	}
	u := unit.Canonical(unit.Unit(st.UnitOfMeasurement()))
	if u == "" {
		return false
	}
	for _, candidate := range r.units {
		if candidate == u {
			return true
		}
	}
	return false
}

func systemTemperatureUnit(s smarthome.Settings) unit.Unit { return s.TemperatureUnit }

func fixedUnit(u unit.Unit) func(smarthome.Settings) unit.Unit {
	return func(smarthome.Settings) unit.Unit { return u }
}

var floatRules = []floatRule{
	{
		instance:      protocol.FloatInstanceTemperature,
		deviceClasses: []string{ha.DeviceClassTemperature},
		units:         []unit.Unit{unit.Celsius, unit.Fahrenheit, unit.Kelvin},
		attributes: map[string][]string{
			ha.DomainClimate:     {ha.AttrCurrentTemperature},
			ha.DomainFan:         {ha.AttrCurrentTemperature},
			ha.DomainHumidifier:  {ha.AttrCurrentTemperature},
			ha.DomainWaterHeater: {ha.AttrCurrentTemperature},
			ha.DomainAirQuality:  {ha.AttrTemperature},
		},
		attributeUnit: systemTemperatureUnit,
	},
	{
		instance:      protocol.FloatInstanceHumidity,
		deviceClasses: []string{ha.DeviceClassHumidity, ha.DeviceClassMoisture},
		attributes: map[string][]string{
			ha.DomainClimate:    {ha.AttrCurrentHumidity},
			ha.DomainFan:        {ha.AttrCurrentHumidity},
			ha.DomainHumidifier: {ha.AttrCurrentHumidity},
			ha.DomainAirQuality: {ha.AttrHumidity},
		},
	},
	{
		instance:      protocol.FloatInstancePressure,
		deviceClasses: []string{ha.DeviceClassPressure, ha.DeviceClassAtmosphericPressure},
		units: []unit.Unit{
			unit.Pascal, unit.Hectopascal, unit.Kilopascal, unit.Bar, unit.Centibar,
			unit.Millibar, unit.MillimeterOfMercury, unit.InchOfMercury,
			unit.PoundPerSquareInch, unit.Atmosphere,
		},
	},
	{
		instance:      protocol.FloatInstanceIllumination,
		deviceClasses: []string{ha.DeviceClassIlluminance},
		units:         []unit.Unit{unit.Lux},
		attributes: map[string][]string{
			ha.DomainSensor:       {ha.AttrIlluminance},
			ha.DomainBinarySensor: {ha.AttrIlluminance},
			ha.DomainLight:        {ha.AttrIlluminance},
			ha.DomainFan:          {ha.AttrIlluminance},
		},
	},
	{
		instance:      protocol.FloatInstanceCO2Level,
		deviceClasses: []string{ha.DeviceClassCarbonDioxide},
		attributes: map[string][]string{
			ha.DomainAirQuality: {ha.AttrCarbonDioxide},
			ha.DomainFan:        {ha.AttrCarbonDioxide},
		},
	},
	{
		instance:      protocol.FloatInstancePM1Density,
		deviceClasses: []string{ha.DeviceClassPM1},
		attributes:    map[string][]string{ha.DomainAirQuality: {ha.AttrPM01}},
	},
	{
		instance:      protocol.FloatInstancePM25Density,
		deviceClasses: []string{ha.DeviceClassPM25},
		attributes:    map[string][]string{ha.DomainAirQuality: {ha.AttrPM25}},
	},
	{
		instance:      protocol.FloatInstancePM10Density,
		deviceClasses: []string{ha.DeviceClassPM10},
		attributes:    map[string][]string{ha.DomainAirQuality: {ha.AttrPM10}},
	},
	{
		instance:      protocol.FloatInstanceTVOC,
		deviceClasses: []string{ha.DeviceClassVOC, ha.DeviceClassVOC + "_parts"},
		attributes:    map[string][]string{ha.DomainAirQuality: {ha.AttrTVOC}},
		attributeUnit: fixedUnit(unit.MicrogramsPerCubicMeter),
	},
	{
		instance:      protocol.FloatInstanceBatteryLevel,
		deviceClasses: []string{ha.DeviceClassBattery},
		attributes:    map[string][]string{anyDomain: {ha.AttrBatteryLevel}},
	},
	{
		instance:      protocol.FloatInstanceVoltage,
		deviceClasses: []string{ha.DeviceClassVoltage},
		units:         []unit.Unit{unit.Volt, unit.Millivolt},
		attributes: map[string][]string{
			ha.DomainSwitch: {ha.AttrVoltage},
			ha.DomainLight:  {ha.AttrVoltage},
		},
	},
	{
		instance:      protocol.FloatInstanceAmperage,
		deviceClasses: []string{ha.DeviceClassCurrent},
		units:         []unit.Unit{unit.Ampere, unit.Milliampere},
		attributes: map[string][]string{
			ha.DomainSwitch: {ha.AttrCurrent},
			ha.DomainLight:  {ha.AttrCurrent},
		},
	},
	{
		instance:      protocol.FloatInstancePower,
		deviceClasses: []string{ha.DeviceClassPower},
		units:         []unit.Unit{unit.Watt, unit.Kilowatt},
		attributes: map[string][]string{
			ha.DomainSwitch: {ha.AttrPower, ha.AttrLoadPower, ha.AttrCurrentConsumption},
			ha.DomainLight:  {ha.AttrPower, ha.AttrLoadPower, ha.AttrCurrentConsumption},
		},
	},
	{
		instance:      protocol.FloatInstanceElectricityMeter,
		deviceClasses: []string{ha.DeviceClassEnergy},
		units:         []unit.Unit{unit.WattHour, unit.KilowattHour, unit.MegawattHour},
	},
	{
		instance:      protocol.FloatInstanceGasMeter,
		deviceClasses: []string{ha.DeviceClassGas},
	},
	{
		instance:      protocol.FloatInstanceWaterMeter,
		deviceClasses: []string{ha.DeviceClassWater},
	},
	{
		instance: protocol.FloatInstanceWaterLevel,
		attributes: map[string][]string{
			ha.DomainFan:        {ha.AttrWaterLevel},
			ha.DomainHumidifier: {ha.AttrWaterLevel},
		},
	},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
