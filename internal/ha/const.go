package ha

// Entity domains.
const (
	DomainAirQuality   = "air_quality"
	DomainAutomation   = "automation"
	DomainBinarySensor = "binary_sensor"
	DomainButton       = "button"
	DomainCamera       = "camera"
	DomainClimate      = "climate"
	DomainCover        = "cover"
	DomainEvent        = "event"
	DomainFan          = "fan"
	DomainGroup        = "group"
	DomainHumidifier   = "humidifier"
	DomainInputBoolean = "input_boolean"
	DomainInputButton  = "input_button"
	DomainLight        = "light"
	DomainLock         = "lock"
	DomainMediaPlayer  = "media_player"
	DomainRemote       = "remote"
	DomainScene        = "scene"
	DomainScript       = "script"
	DomainSensor       = "sensor"
	DomainSwitch       = "switch"
	DomainVacuum       = "vacuum"
	DomainValve        = "valve"
	DomainWaterHeater  = "water_heater"
)

// Common entity states.
const (
	StateOn          = "on"
	StateOff         = "off"
	StateUnavailable = "unavailable"
	StateUnknown     = "unknown"
	StateOpen        = "open"
	StateOpening     = "opening"
	StateClosed      = "closed"
	StateClosing     = "closing"
	StateLocked      = "locked"
	StateUnlocked    = "unlocked"
	StatePlaying     = "playing"
	StatePaused      = "paused"
	StateIdle        = "idle"
	StateStandby     = "standby"
	StateCleaning    = "cleaning"
	StateDocked      = "docked"
	StateReturning   = "returning"
)

// Attribute names.
const (
	AttrEntityID              = "entity_id"
	AttrDeviceClass           = "device_class"
	AttrUnitOfMeasurement     = "unit_of_measurement"
	AttrSupportedFeatures     = "supported_features"
	AttrFriendlyName          = "friendly_name"
	AttrBatteryLevel          = "battery_level"
	AttrBrightness            = "brightness"
	AttrColorMode             = "color_mode"
	AttrSupportedColorModes   = "supported_color_modes"
	AttrRGBColor              = "rgb_color"
	AttrHSColor               = "hs_color"
	AttrColorTempKelvin       = "color_temp_kelvin"
	AttrMinColorTempKelvin    = "min_color_temp_kelvin"
	AttrMaxColorTempKelvin    = "max_color_temp_kelvin"
	AttrEffect                = "effect"
	AttrEffectList            = "effect_list"
	AttrCurrentTemperature    = "current_temperature"
	AttrCurrentHumidity       = "current_humidity"
	AttrTemperature           = "temperature"
	AttrHumidity              = "humidity"
	AttrTargetTempStep        = "target_temp_step"
	AttrMinTemp               = "min_temp"
	AttrMaxTemp               = "max_temp"
	AttrMinHumidity           = "min_humidity"
	AttrMaxHumidity           = "max_humidity"
	AttrHVACMode              = "hvac_mode"
	AttrHVACModes             = "hvac_modes"
	AttrFanMode               = "fan_mode"
	AttrFanModes              = "fan_modes"
	AttrSwingMode             = "swing_mode"
	AttrSwingModes            = "swing_modes"
	AttrPresetMode            = "preset_mode"
	AttrPresetModes           = "preset_modes"
	AttrPercentage            = "percentage"
	AttrPercentageStep        = "percentage_step"
	AttrOscillating           = "oscillating"
	AttrMode                  = "mode"
	AttrAvailableModes        = "available_modes"
	AttrFanSpeed              = "fan_speed"
	AttrFanSpeedList          = "fan_speed_list"
	AttrOperationMode         = "operation_mode"
	AttrOperationList         = "operation_list"
	AttrCurrentPosition       = "current_position"
	AttrIsVolumeMuted         = "is_volume_muted"
	AttrVolumeLevel           = "volume_level"
	AttrSource                = "source"
	AttrSourceList            = "source_list"
	AttrMediaContentID        = "media_content_id"
	AttrMediaContentType      = "media_content_type"
	AttrIlluminance           = "illuminance"
	AttrCarbonDioxide         = "carbon_dioxide"
	AttrPM01                  = "particulate_matter_0_1"
	AttrPM25                  = "particulate_matter_2_5"
	AttrPM10                  = "particulate_matter_10"
	AttrTVOC                  = "total_volatile_organic_compounds"
	AttrVoltage               = "voltage"
	AttrCurrent               = "current"
	AttrPower                 = "power"
	AttrLoadPower             = "load_power"
	AttrCurrentConsumption    = "current_consumption"
	AttrWaterLevel            = "water_level"
	AttrLastAction            = "last_action"
	AttrAction                = "action"
	AttrEventType             = "event_type"
	AttrTargetTemperatureStep = "target_temperature_step"
)

// Device classes.
const (
	DeviceClassAtmosphericPressure = "atmospheric_pressure"
	DeviceClassBattery             = "battery"
	DeviceClassButton              = "button"
	DeviceClassCarbonDioxide       = "carbon_dioxide"
	DeviceClassCurrent             = "current"
	DeviceClassDoor                = "door"
	DeviceClassDoorbell            = "doorbell"
	DeviceClassEnergy              = "energy"
	DeviceClassGarageDoor          = "garage_door"
	DeviceClassGas                 = "gas"
	DeviceClassHumidity            = "humidity"
	DeviceClassIlluminance         = "illuminance"
	DeviceClassMoisture            = "moisture"
	DeviceClassMotion              = "motion"
	DeviceClassOccupancy           = "occupancy"
	DeviceClassOpening             = "opening"
	DeviceClassPM1                 = "pm1"
	DeviceClassPM25                = "pm25"
	DeviceClassPM10                = "pm10"
	DeviceClassPower               = "power"
	DeviceClassPresence            = "presence"
	DeviceClassPressure            = "pressure"
	DeviceClassSmoke               = "smoke"
	DeviceClassTemperature         = "temperature"
	DeviceClassTV                  = "tv"
	DeviceClassReceiver            = "receiver"
	DeviceClassVibration           = "vibration"
	DeviceClassVOC                 = "volatile_organic_compounds"
	DeviceClassVoltage             = "voltage"
	DeviceClassWater               = "water"
	DeviceClassWindow              = "window"
	DeviceClassCurtain             = "curtain"
	DeviceClassBlind               = "blind"
	DeviceClassShade               = "shade"
	DeviceClassOutlet              = "outlet"
)

// Services.
const (
	ServiceTurnOn           = "turn_on"
	ServiceTurnOff          = "turn_off"
	ServiceToggle           = "toggle"
	ServiceOpenCover        = "open_cover"
	ServiceCloseCover       = "close_cover"
	ServiceStopCover        = "stop_cover"
	ServiceSetCoverPosition = "set_cover_position"
	ServiceOpenValve        = "open_valve"
	ServiceCloseValve       = "close_valve"
	ServiceSetValvePosition = "set_valve_position"
	ServiceLock             = "lock"
	ServiceUnlock           = "unlock"
	ServiceStart            = "start"
	ServicePause            = "pause"
	ServiceReturnToBase     = "return_to_base"
	ServiceSetFanSpeed      = "set_fan_speed"
	ServiceSetHVACMode      = "set_hvac_mode"
	ServiceSetFanMode       = "set_fan_mode"
	ServiceSetSwingMode     = "set_swing_mode"
	ServiceSetPresetMode    = "set_preset_mode"
	ServiceSetPercentage    = "set_percentage"
	ServiceOscillate        = "oscillate"
	ServiceSetMode          = "set_mode"
	ServiceSetTemperature   = "set_temperature"
	ServiceSetHumidity      = "set_humidity"
	ServiceSetOperationMode = "set_operation_mode"
	ServiceVolumeMute       = "volume_mute"
	ServiceVolumeSet        = "volume_set"
	ServiceVolumeUp         = "volume_up"
	ServiceVolumeDown       = "volume_down"
	ServiceMediaPlay        = "media_play"
	ServiceMediaPause       = "media_pause"
	ServiceMediaNextTrack   = "media_next_track"
	ServiceMediaPrevTrack   = "media_previous_track"
	ServicePlayMedia        = "play_media"
	ServiceSelectSource     = "select_source"
)

// Light supported features and color modes.
const (
	LightSupportEffect = 4

	ColorModeOnOff      = "onoff"
	ColorModeBrightness = "brightness"
	ColorModeColorTemp  = "color_temp"
	ColorModeHS         = "hs"
	ColorModeXY         = "xy"
	ColorModeRGB        = "rgb"
	ColorModeRGBW       = "rgbw"
	ColorModeRGBWW      = "rgbww"
	ColorModeWhite      = "white"
)

// Climate supported features.
const (
	ClimateSupportTargetTemperature = 1
	ClimateSupportTargetTempRange   = 2
	ClimateSupportTargetHumidity    = 4
	ClimateSupportFanMode           = 8
	ClimateSupportPresetMode        = 16
	ClimateSupportSwingMode         = 32
	ClimateSupportTurnOff           = 128
	ClimateSupportTurnOn            = 256
)

// Fan supported features.
const (
	FanSupportSetSpeed   = 1
	FanSupportOscillate  = 2
	FanSupportPresetMode = 8
)

// Cover supported features.
const (
	CoverSupportOpen        = 1
	CoverSupportClose       = 2
	CoverSupportSetPosition = 4
	CoverSupportStop        = 8
)

// Valve supported features.
const (
	ValveSupportOpen        = 1
	ValveSupportClose       = 2
	ValveSupportSetPosition = 4
)

// Media player supported features.
const (
	MediaPlayerSupportPause         = 1
	MediaPlayerSupportVolumeSet     = 4
	MediaPlayerSupportVolumeMute    = 8
	MediaPlayerSupportPreviousTrack = 16
	MediaPlayerSupportNextTrack     = 32
	MediaPlayerSupportTurnOn        = 128
	MediaPlayerSupportTurnOff       = 256
	MediaPlayerSupportPlayMedia     = 512
	MediaPlayerSupportVolumeStep    = 1024
	MediaPlayerSupportSelectSource  = 2048
	MediaPlayerSupportPlay          = 16384
)

// Vacuum supported features.
const (
	VacuumSupportTurnOn   = 1
	VacuumSupportTurnOff  = 2
	VacuumSupportPause    = 4
	VacuumSupportStop     = 8
	VacuumSupportReturn   = 16
	VacuumSupportFanSpeed = 32
	VacuumSupportBattery  = 64
	VacuumSupportState    = 4096
	VacuumSupportStart    = 8192
)

// Humidifier, water heater and camera supported features.
const (
	HumidifierSupportModes = 1

	WaterHeaterSupportTargetTemperature = 1
	WaterHeaterSupportOperationMode     = 2

	CameraSupportStream = 2
)
