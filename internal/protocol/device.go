// Package protocol defines the wire schema of the Yandex smart home API:
// device types, capability and property enumerations, units, response codes
// and the JSON payloads exchanged during discovery, query and action.
//
// Field names and enumerated string values follow the external API exactly.
package protocol

// DeviceType is the assistant-side category of a device.
type DeviceType string

const (
	DeviceTypeLight               DeviceType = "devices.types.light"
	DeviceTypeSocket              DeviceType = "devices.types.socket"
	DeviceTypeSwitch              DeviceType = "devices.types.switch"
	DeviceTypeThermostat          DeviceType = "devices.types.thermostat"
	DeviceTypeThermostatAC        DeviceType = "devices.types.thermostat.ac"
	DeviceTypeMediaDevice         DeviceType = "devices.types.media_device"
	DeviceTypeMediaDeviceTV       DeviceType = "devices.types.media_device.tv"
	DeviceTypeMediaDeviceTVBox    DeviceType = "devices.types.media_device.tv_box"
	DeviceTypeMediaDeviceReceiver DeviceType = "devices.types.media_device.receiver"
	DeviceTypeCooking             DeviceType = "devices.types.cooking"
	DeviceTypeCookingKettle       DeviceType = "devices.types.cooking.kettle"
	DeviceTypeCookingCoffeeMaker  DeviceType = "devices.types.cooking.coffee_maker"
	DeviceTypeOpenable            DeviceType = "devices.types.openable"
	DeviceTypeOpenableCurtain     DeviceType = "devices.types.openable.curtain"
	DeviceTypeOpenableValve       DeviceType = "devices.types.openable.valve"
	DeviceTypeHumidifier          DeviceType = "devices.types.humidifier"
	DeviceTypePurifier            DeviceType = "devices.types.purifier"
	DeviceTypeVacuumCleaner       DeviceType = "devices.types.vacuum_cleaner"
	DeviceTypeVentilation         DeviceType = "devices.types.ventilation"
	DeviceTypeVentilationFan      DeviceType = "devices.types.ventilation.fan"
	DeviceTypeCamera              DeviceType = "devices.types.camera"
	DeviceTypeSensor              DeviceType = "devices.types.sensor"
	DeviceTypeSensorClimate       DeviceType = "devices.types.sensor.climate"
	DeviceTypeSensorMotion        DeviceType = "devices.types.sensor.motion"
	DeviceTypeSensorOpen          DeviceType = "devices.types.sensor.open"
	DeviceTypeSensorVibration     DeviceType = "devices.types.sensor.vibration"
	DeviceTypeSensorButton        DeviceType = "devices.types.sensor.button"
	DeviceTypeSensorIllumination  DeviceType = "devices.types.sensor.illumination"
	DeviceTypeSensorGas           DeviceType = "devices.types.sensor.gas"
	DeviceTypeSensorSmoke         DeviceType = "devices.types.sensor.smoke"
	DeviceTypeSensorWaterLeak     DeviceType = "devices.types.sensor.water_leak"
	DeviceTypeSmartMeter          DeviceType = "devices.types.smart_meter"
	DeviceTypeSmartMeterElectric  DeviceType = "devices.types.smart_meter.electricity"
	DeviceTypeSmartMeterGas       DeviceType = "devices.types.smart_meter.gas"
	DeviceTypeSmartMeterWater     DeviceType = "devices.types.smart_meter.water"
	DeviceTypeSmartMeterHeat      DeviceType = "devices.types.smart_meter.heat"
	DeviceTypeOther               DeviceType = "devices.types.other"
)

var deviceTypes = map[DeviceType]struct{}{
	DeviceTypeLight: {}, DeviceTypeSocket: {}, DeviceTypeSwitch: {},
	DeviceTypeThermostat: {}, DeviceTypeThermostatAC: {},
	DeviceTypeMediaDevice: {}, DeviceTypeMediaDeviceTV: {}, DeviceTypeMediaDeviceTVBox: {}, DeviceTypeMediaDeviceReceiver: {},
	DeviceTypeCooking: {}, DeviceTypeCookingKettle: {}, DeviceTypeCookingCoffeeMaker: {},
	DeviceTypeOpenable: {}, DeviceTypeOpenableCurtain: {}, DeviceTypeOpenableValve: {},
	DeviceTypeHumidifier: {}, DeviceTypePurifier: {}, DeviceTypeVacuumCleaner: {},
	DeviceTypeVentilation: {}, DeviceTypeVentilationFan: {}, DeviceTypeCamera: {},
	DeviceTypeSensor: {}, DeviceTypeSensorClimate: {}, DeviceTypeSensorMotion: {}, DeviceTypeSensorOpen: {},
	DeviceTypeSensorVibration: {}, DeviceTypeSensorButton: {}, DeviceTypeSensorIllumination: {},
	DeviceTypeSensorGas: {}, DeviceTypeSensorSmoke: {}, DeviceTypeSensorWaterLeak: {},
	DeviceTypeSmartMeter: {}, DeviceTypeSmartMeterElectric: {}, DeviceTypeSmartMeterGas: {},
	DeviceTypeSmartMeterWater: {}, DeviceTypeSmartMeterHeat: {}, DeviceTypeOther: {},
}

// Valid reports whether t is a known device type.
func (t DeviceType) Valid() bool {
	_, ok := deviceTypes[t]
	return ok
}

// DeviceDescription is one entry of the discovery response.
type DeviceDescription struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name,omitempty"`
	Room         string                  `json:"room,omitempty"`
	Type         DeviceType              `json:"type"`
	Capabilities []CapabilityDescription `json:"capabilities,omitempty"`
	Properties   []PropertyDescription   `json:"properties,omitempty"`
	DeviceInfo   *DeviceInfo             `json:"device_info,omitempty"`
}

// DeviceInfo carries optional manufacturer details.
type DeviceInfo struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	HWVersion    string `json:"hw_version,omitempty"`
	SWVersion    string `json:"sw_version,omitempty"`
}

// DeviceList is the discovery response payload.
type DeviceList struct {
	UserID  string              `json:"user_id"`
	Devices []DeviceDescription `json:"devices"`
}

// DeviceState is one entry of the query response.
type DeviceState struct {
	ID           string                    `json:"id"`
	Capabilities []CapabilityInstanceState `json:"capabilities,omitempty"`
	Properties   []PropertyInstanceState   `json:"properties,omitempty"`
	ErrorCode    ResponseCode              `json:"error_code,omitempty"`
	ErrorMessage string                    `json:"error_message,omitempty"`
}

// DeviceStates is the query response payload.
type DeviceStates struct {
	Devices []DeviceState `json:"devices"`
}

// ActionRequestDevice is one device of an action request.
type ActionRequestDevice struct {
	ID           string             `json:"id"`
	CustomData   any                `json:"custom_data,omitempty"`
	Capabilities []CapabilityAction `json:"capabilities"`
}

// ActionRequest is the action request payload.
type ActionRequest struct {
	Payload struct {
		Devices []ActionRequestDevice `json:"devices"`
	} `json:"payload"`
}

// ActionResultDevice is one device of the action response.
type ActionResultDevice struct {
	ID           string                   `json:"id"`
	Capabilities []ActionResultCapability `json:"capabilities,omitempty"`
	ActionResult *ActionResult            `json:"action_result,omitempty"`
}

// ActionResultDevices is the action response payload.
type ActionResultDevices struct {
	Devices []ActionResultDevice `json:"devices"`
}
