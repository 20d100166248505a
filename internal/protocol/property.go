package protocol

// PropertyType is a passively observed facet family.
type PropertyType string

const (
	PropertyTypeFloat PropertyType = "devices.properties.float"
	PropertyTypeEvent PropertyType = "devices.properties.event"
)

// PropertyInstance names the physical quantity or event family of a property.
type PropertyInstance string

// Float property instances.
const (
	FloatInstanceAmperage         PropertyInstance = "amperage"
	FloatInstanceBatteryLevel     PropertyInstance = "battery_level"
	FloatInstanceCO2Level         PropertyInstance = "co2_level"
	FloatInstanceElectricityMeter PropertyInstance = "electricity_meter"
	FloatInstanceFoodLevel        PropertyInstance = "food_level"
	FloatInstanceGasMeter         PropertyInstance = "gas_meter"
	FloatInstanceHeatMeter        PropertyInstance = "heat_meter"
	FloatInstanceHumidity         PropertyInstance = "humidity"
	FloatInstanceIllumination     PropertyInstance = "illumination"
	FloatInstanceMeter            PropertyInstance = "meter"
	FloatInstancePM10Density      PropertyInstance = "pm10_density"
	FloatInstancePM1Density       PropertyInstance = "pm1_density"
	FloatInstancePM25Density      PropertyInstance = "pm2.5_density"
	FloatInstancePower            PropertyInstance = "power"
	FloatInstancePressure         PropertyInstance = "pressure"
	FloatInstanceTemperature      PropertyInstance = "temperature"
	FloatInstanceTVOC             PropertyInstance = "tvoc"
	FloatInstanceVoltage          PropertyInstance = "voltage"
	FloatInstanceWaterLevel       PropertyInstance = "water_level"
	FloatInstanceWaterMeter       PropertyInstance = "water_meter"
)

// FloatInstances lists every float instance.
var FloatInstances = []PropertyInstance{
	FloatInstanceAmperage, FloatInstanceBatteryLevel, FloatInstanceCO2Level,
	FloatInstanceElectricityMeter, FloatInstanceFoodLevel, FloatInstanceGasMeter,
	FloatInstanceHeatMeter, FloatInstanceHumidity, FloatInstanceIllumination,
	FloatInstanceMeter, FloatInstancePM10Density, FloatInstancePM1Density,
	FloatInstancePM25Density, FloatInstancePower, FloatInstancePressure,
	FloatInstanceTemperature, FloatInstanceTVOC, FloatInstanceVoltage,
	FloatInstanceWaterLevel, FloatInstanceWaterMeter,
}

// Event property instances.
const (
	EventInstanceVibration    PropertyInstance = "vibration"
	EventInstanceOpen         PropertyInstance = "open"
	EventInstanceButton       PropertyInstance = "button"
	EventInstanceMotion       PropertyInstance = "motion"
	EventInstanceSmoke        PropertyInstance = "smoke"
	EventInstanceGas          PropertyInstance = "gas"
	EventInstanceBatteryLevel PropertyInstance = "battery_level"
	EventInstanceFoodLevel    PropertyInstance = "food_level"
	EventInstanceWaterLevel   PropertyInstance = "water_level"
	EventInstanceWaterLeak    PropertyInstance = "water_leak"
)

// EventInstances lists every event instance.
var EventInstances = []PropertyInstance{
	EventInstanceVibration, EventInstanceOpen, EventInstanceButton, EventInstanceMotion,
	EventInstanceSmoke, EventInstanceGas, EventInstanceBatteryLevel, EventInstanceFoodLevel,
	EventInstanceWaterLevel, EventInstanceWaterLeak,
}

// EventValue is a protocol event literal.
type EventValue string

const (
	EventTilt        EventValue = "tilt"
	EventFall        EventValue = "fall"
	EventVibration   EventValue = "vibration"
	EventOpened      EventValue = "opened"
	EventClosed      EventValue = "closed"
	EventClick       EventValue = "click"
	EventDoubleClick EventValue = "double_click"
	EventLongPress   EventValue = "long_press"
	EventDetected    EventValue = "detected"
	EventNotDetected EventValue = "not_detected"
	EventHigh        EventValue = "high"
	EventLow         EventValue = "low"
	EventNormal      EventValue = "normal"
	EventEmpty       EventValue = "empty"
	EventDry         EventValue = "dry"
	EventLeak        EventValue = "leak"
)

// EventValues maps every event instance to its fixed literal set.
var EventValues = map[PropertyInstance][]EventValue{
	EventInstanceVibration:    {EventTilt, EventFall, EventVibration},
	EventInstanceOpen:         {EventOpened, EventClosed},
	EventInstanceButton:       {EventClick, EventDoubleClick, EventLongPress},
	EventInstanceMotion:       {EventDetected, EventNotDetected},
	EventInstanceSmoke:        {EventDetected, EventNotDetected, EventHigh},
	EventInstanceGas:          {EventDetected, EventNotDetected, EventHigh},
	EventInstanceBatteryLevel: {EventLow, EventNormal, EventHigh},
	EventInstanceFoodLevel:    {EventEmpty, EventLow, EventNormal},
	EventInstanceWaterLevel:   {EventEmpty, EventLow, EventNormal},
	EventInstanceWaterLeak:    {EventDry, EventLeak},
}

// IsFloatInstance reports whether i is a float instance.
func IsFloatInstance(i PropertyInstance) bool {
	for _, f := range FloatInstances {
		if f == i {
			return true
		}
	}
	return false
}

// IsEventInstance reports whether i is an event instance.
func IsEventInstance(i PropertyInstance) bool {
	_, ok := EventValues[i]
	return ok
}

// FloatUnit is the unit of a float property.
type FloatUnit string

const (
	UnitAmpere             FloatUnit = "unit.ampere"
	UnitCubicMeter         FloatUnit = "unit.cubic_meter"
	UnitGigacalorie        FloatUnit = "unit.gigacalorie"
	UnitKilowattHour       FloatUnit = "unit.kilowatt_hour"
	UnitLux                FloatUnit = "unit.illumination.lux"
	UnitMCGM3              FloatUnit = "unit.density.mcg_m3"
	UnitPercent            FloatUnit = "unit.percent"
	UnitPPM                FloatUnit = "unit.ppm"
	UnitVolt               FloatUnit = "unit.volt"
	UnitWatt               FloatUnit = "unit.watt"
	UnitPressurePascal     FloatUnit = "unit.pressure.pascal"
	UnitPressureMMHG       FloatUnit = "unit.pressure.mmhg"
	UnitPressureATM        FloatUnit = "unit.pressure.atm"
	UnitPressureBar        FloatUnit = "unit.pressure.bar"
	UnitTemperatureCelsius FloatUnit = "unit.temperature.celsius"
	UnitTemperatureKelvin  FloatUnit = "unit.temperature.kelvin"
)

// PressureUnits are the pressure units the assistant accepts.
var PressureUnits = []FloatUnit{UnitPressurePascal, UnitPressureMMHG, UnitPressureATM, UnitPressureBar}

// IsPressureUnit reports whether u is an accepted pressure unit.
func IsPressureUnit(u FloatUnit) bool {
	for _, p := range PressureUnits {
		if p == u {
			return true
		}
	}
	return false
}

// PropertyParameters is implemented by every property parameter payload.
type PropertyParameters interface {
	propertyParameters()
}

// FloatPropertyParameters are the parameters of a float property.
type FloatPropertyParameters struct {
	Instance PropertyInstance `json:"instance"`
	Unit     FloatUnit        `json:"unit,omitempty"`
}

// EventPropertyParameters are the parameters of an event property.
type EventPropertyParameters struct {
	Instance PropertyInstance `json:"instance"`
	Events   []EventOption    `json:"events"`
}

// EventOption is one possible event literal.
type EventOption struct {
	Value EventValue `json:"value"`
}

func (FloatPropertyParameters) propertyParameters() {}
func (EventPropertyParameters) propertyParameters() {}

// PropertyDescription describes one property in discovery.
type PropertyDescription struct {
	Type        PropertyType       `json:"type"`
	Retrievable bool               `json:"retrievable"`
	Reportable  bool               `json:"reportable"`
	Parameters  PropertyParameters `json:"parameters"`
}

// PropertyInstanceState is the current value of one property.
type PropertyInstanceState struct {
	Type  PropertyType               `json:"type"`
	State PropertyInstanceStateValue `json:"state"`
}

// PropertyInstanceStateValue pairs an instance with its value.
type PropertyInstanceStateValue struct {
	Instance PropertyInstance `json:"instance"`
	Value    any              `json:"value"`
}
