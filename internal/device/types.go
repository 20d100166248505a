package device

import (
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
)

// domainTypes is the device type of each domain. Sensor domains are refined
// by their first property.
var domainTypes = map[string]protocol.DeviceType{
	ha.DomainAirQuality:   protocol.DeviceTypeSensorClimate,
	ha.DomainAutomation:   protocol.DeviceTypeOther,
	ha.DomainBinarySensor: protocol.DeviceTypeSensor,
	ha.DomainButton:       protocol.DeviceTypeOther,
	ha.DomainCamera:       protocol.DeviceTypeCamera,
	ha.DomainClimate:      protocol.DeviceTypeThermostat,
	ha.DomainCover:        protocol.DeviceTypeOpenable,
	ha.DomainEvent:        protocol.DeviceTypeSensor,
	ha.DomainFan:          protocol.DeviceTypeVentilationFan,
	ha.DomainGroup:        protocol.DeviceTypeSwitch,
	ha.DomainHumidifier:   protocol.DeviceTypeHumidifier,
	ha.DomainInputBoolean: protocol.DeviceTypeSwitch,
	ha.DomainInputButton:  protocol.DeviceTypeOther,
	ha.DomainLight:        protocol.DeviceTypeLight,
	ha.DomainLock:         protocol.DeviceTypeOpenable,
	ha.DomainMediaPlayer:  protocol.DeviceTypeMediaDevice,
	ha.DomainRemote:       protocol.DeviceTypeOther,
	ha.DomainScene:        protocol.DeviceTypeOther,
	ha.DomainScript:       protocol.DeviceTypeOther,
	ha.DomainSensor:       protocol.DeviceTypeSensor,
	ha.DomainSwitch:       protocol.DeviceTypeSwitch,
	ha.DomainVacuum:       protocol.DeviceTypeVacuumCleaner,
	ha.DomainValve:        protocol.DeviceTypeOpenableValve,
	ha.DomainWaterHeater:  protocol.DeviceTypeCookingKettle,
}

// classTypes overrides domainTypes for specific device classes.
var classTypes = map[string]map[string]protocol.DeviceType{
	ha.DomainSwitch: {
		ha.DeviceClassOutlet: protocol.DeviceTypeSocket,
	},
	ha.DomainCover: {
		ha.DeviceClassCurtain: protocol.DeviceTypeOpenableCurtain,
		ha.DeviceClassBlind:   protocol.DeviceTypeOpenableCurtain,
		ha.DeviceClassShade:   protocol.DeviceTypeOpenableCurtain,
	},
	ha.DomainMediaPlayer: {
		ha.DeviceClassTV:       protocol.DeviceTypeMediaDeviceTV,
		ha.DeviceClassReceiver: protocol.DeviceTypeMediaDeviceReceiver,
	},
}

// propertyTypes refines a sensor by the instance of its first property.
var propertyTypes = map[protocol.PropertyType]map[protocol.PropertyInstance]protocol.DeviceType{
	protocol.PropertyTypeFloat: {
		protocol.FloatInstanceTemperature:      protocol.DeviceTypeSensorClimate,
		protocol.FloatInstanceHumidity:         protocol.DeviceTypeSensorClimate,
		protocol.FloatInstancePressure:         protocol.DeviceTypeSensorClimate,
		protocol.FloatInstanceCO2Level:         protocol.DeviceTypeSensorClimate,
		protocol.FloatInstancePM1Density:       protocol.DeviceTypeSensorClimate,
		protocol.FloatInstancePM25Density:      protocol.DeviceTypeSensorClimate,
		protocol.FloatInstancePM10Density:      protocol.DeviceTypeSensorClimate,
		protocol.FloatInstanceTVOC:             protocol.DeviceTypeSensorClimate,
		protocol.FloatInstanceIllumination:     protocol.DeviceTypeSensorIllumination,
		protocol.FloatInstanceElectricityMeter: protocol.DeviceTypeSmartMeterElectric,
		protocol.FloatInstanceGasMeter:         protocol.DeviceTypeSmartMeterGas,
		protocol.FloatInstanceWaterMeter:       protocol.DeviceTypeSmartMeterWater,
		protocol.FloatInstanceHeatMeter:        protocol.DeviceTypeSmartMeterHeat,
		protocol.FloatInstanceMeter:            protocol.DeviceTypeSmartMeter,
	},
	protocol.PropertyTypeEvent: {
		protocol.EventInstanceMotion:    protocol.DeviceTypeSensorMotion,
		protocol.EventInstanceOpen:      protocol.DeviceTypeSensorOpen,
		protocol.EventInstanceVibration: protocol.DeviceTypeSensorVibration,
		protocol.EventInstanceButton:    protocol.DeviceTypeSensorButton,
		protocol.EventInstanceGas:       protocol.DeviceTypeSensorGas,
		protocol.EventInstanceSmoke:     protocol.DeviceTypeSensorSmoke,
		protocol.EventInstanceWaterLeak: protocol.DeviceTypeSensorWaterLeak,
	},
}
