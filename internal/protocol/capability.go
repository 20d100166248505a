package protocol

// CapabilityType is an actionable facet family.
type CapabilityType string

const (
	CapabilityTypeOnOff        CapabilityType = "devices.capabilities.on_off"
	CapabilityTypeColorSetting CapabilityType = "devices.capabilities.color_setting"
	CapabilityTypeMode         CapabilityType = "devices.capabilities.mode"
	CapabilityTypeRange        CapabilityType = "devices.capabilities.range"
	CapabilityTypeToggle       CapabilityType = "devices.capabilities.toggle"
	CapabilityTypeVideoStream  CapabilityType = "devices.capabilities.video_stream"
)

// CapabilityInstance names one facet inside a capability family.
type CapabilityInstance string

// OnOffInstanceOn is the only instance of on_off.
const OnOffInstanceOn CapabilityInstance = "on"

// VideoStreamInstanceGetStream is the only instance of video_stream.
const VideoStreamInstanceGetStream CapabilityInstance = "get_stream"

// Color setting instances.
const (
	ColorSettingInstanceBase         CapabilityInstance = "base"
	ColorSettingInstanceRGB          CapabilityInstance = "rgb"
	ColorSettingInstanceHSV          CapabilityInstance = "hsv"
	ColorSettingInstanceTemperatureK CapabilityInstance = "temperature_k"
	ColorSettingInstanceScene        CapabilityInstance = "scene"
)

// Mode instances.
const (
	ModeInstanceCleanupMode CapabilityInstance = "cleanup_mode"
	ModeInstanceCoffeeMode  CapabilityInstance = "coffee_mode"
	ModeInstanceDishwashing CapabilityInstance = "dishwashing"
	ModeInstanceFanSpeed    CapabilityInstance = "fan_speed"
	ModeInstanceHeat        CapabilityInstance = "heat"
	ModeInstanceInputSource CapabilityInstance = "input_source"
	ModeInstanceProgram     CapabilityInstance = "program"
	ModeInstanceSwing       CapabilityInstance = "swing"
	ModeInstanceTeaMode     CapabilityInstance = "tea_mode"
	ModeInstanceThermostat  CapabilityInstance = "thermostat"
	ModeInstanceWorkSpeed   CapabilityInstance = "work_speed"
)

// ModeInstances lists every mode instance.
var ModeInstances = []CapabilityInstance{
	ModeInstanceCleanupMode, ModeInstanceCoffeeMode, ModeInstanceDishwashing,
	ModeInstanceFanSpeed, ModeInstanceHeat, ModeInstanceInputSource,
	ModeInstanceProgram, ModeInstanceSwing, ModeInstanceTeaMode,
	ModeInstanceThermostat, ModeInstanceWorkSpeed,
}

// Range instances.
const (
	RangeInstanceBrightness  CapabilityInstance = "brightness"
	RangeInstanceChannel     CapabilityInstance = "channel"
	RangeInstanceHumidity    CapabilityInstance = "humidity"
	RangeInstanceOpen        CapabilityInstance = "open"
	RangeInstanceTemperature CapabilityInstance = "temperature"
	RangeInstanceVolume      CapabilityInstance = "volume"
)

// RangeInstances lists every range instance.
var RangeInstances = []CapabilityInstance{
	RangeInstanceBrightness, RangeInstanceChannel, RangeInstanceHumidity,
	RangeInstanceOpen, RangeInstanceTemperature, RangeInstanceVolume,
}

// Toggle instances.
const (
	ToggleInstanceBacklight      CapabilityInstance = "backlight"
	ToggleInstanceControlsLocked CapabilityInstance = "controls_locked"
	ToggleInstanceIonization     CapabilityInstance = "ionization"
	ToggleInstanceKeepWarm       CapabilityInstance = "keep_warm"
	ToggleInstanceMute           CapabilityInstance = "mute"
	ToggleInstanceOscillation    CapabilityInstance = "oscillation"
	ToggleInstancePause          CapabilityInstance = "pause"
)

// ToggleInstances lists every toggle instance.
var ToggleInstances = []CapabilityInstance{
	ToggleInstanceBacklight, ToggleInstanceControlsLocked, ToggleInstanceIonization,
	ToggleInstanceKeepWarm, ToggleInstanceMute, ToggleInstanceOscillation, ToggleInstancePause,
}

// Contains reports whether list holds instance.
func Contains(list []CapabilityInstance, instance CapabilityInstance) bool {
	for _, i := range list {
		if i == instance {
			return true
		}
	}
	return false
}

// ModeValue is a protocol mode literal.
type ModeValue string

const (
	ModeAuto           ModeValue = "auto"
	ModeEco            ModeValue = "eco"
	ModeSmart          ModeValue = "smart"
	ModeTurbo          ModeValue = "turbo"
	ModeCool           ModeValue = "cool"
	ModeDry            ModeValue = "dry"
	ModeFanOnly        ModeValue = "fan_only"
	ModeHeat           ModeValue = "heat"
	ModePreheat        ModeValue = "preheat"
	ModeHigh           ModeValue = "high"
	ModeLow            ModeValue = "low"
	ModeMedium         ModeValue = "medium"
	ModeMax            ModeValue = "max"
	ModeMin            ModeValue = "min"
	ModeFast           ModeValue = "fast"
	ModeSlow           ModeValue = "slow"
	ModeExpress        ModeValue = "express"
	ModeNormal         ModeValue = "normal"
	ModeQuiet          ModeValue = "quiet"
	ModeHorizontal     ModeValue = "horizontal"
	ModeStationary     ModeValue = "stationary"
	ModeVertical       ModeValue = "vertical"
	ModeWetCleaning    ModeValue = "wet_cleaning"
	ModeDryCleaning    ModeValue = "dry_cleaning"
	ModeMixedCleaning  ModeValue = "mixed_cleaning"
	ModeNight          ModeValue = "night"
	ModeIntensive      ModeValue = "intensive"
	ModeGlass          ModeValue = "glass"
	ModePreRinse       ModeValue = "pre_rinse"
	ModeAmericano      ModeValue = "americano"
	ModeCappuccino     ModeValue = "cappuccino"
	ModeDouble         ModeValue = "double"
	ModeDoubleEspresso ModeValue = "double_espresso"
	ModeEspresso       ModeValue = "espresso"
	ModeLatte          ModeValue = "latte"
	ModeBlackTea       ModeValue = "black_tea"
	ModeFlowerTea      ModeValue = "flower_tea"
	ModeGreenTea       ModeValue = "green_tea"
	ModeHerbalTea      ModeValue = "herbal_tea"
	ModeOolongTea      ModeValue = "oolong_tea"
	ModePuerhTea       ModeValue = "puerh_tea"
	ModeRedTea         ModeValue = "red_tea"
	ModeWhiteTea       ModeValue = "white_tea"
	ModeOne            ModeValue = "one"
	ModeTwo            ModeValue = "two"
	ModeThree          ModeValue = "three"
	ModeFour           ModeValue = "four"
	ModeFive           ModeValue = "five"
	ModeSix            ModeValue = "six"
	ModeSeven          ModeValue = "seven"
	ModeEight          ModeValue = "eight"
	ModeNine           ModeValue = "nine"
	ModeTen            ModeValue = "ten"
)

// NumericModes are the positional mode literals used by input_source.
var NumericModes = []ModeValue{
	ModeOne, ModeTwo, ModeThree, ModeFour, ModeFive,
	ModeSix, ModeSeven, ModeEight, ModeNine, ModeTen,
}

var modeValues = map[ModeValue]struct{}{}

func init() {
	for _, m := range []ModeValue{
		ModeAuto, ModeEco, ModeSmart, ModeTurbo, ModeCool, ModeDry, ModeFanOnly, ModeHeat,
		ModePreheat, ModeHigh, ModeLow, ModeMedium, ModeMax, ModeMin, ModeFast, ModeSlow,
		ModeExpress, ModeNormal, ModeQuiet, ModeHorizontal, ModeStationary, ModeVertical,
		ModeWetCleaning, ModeDryCleaning, ModeMixedCleaning, ModeNight, ModeIntensive,
		ModeGlass, ModePreRinse, ModeAmericano, ModeCappuccino, ModeDouble, ModeDoubleEspresso,
		ModeEspresso, ModeLatte, ModeBlackTea, ModeFlowerTea, ModeGreenTea, ModeHerbalTea,
		ModeOolongTea, ModePuerhTea, ModeRedTea, ModeWhiteTea,
	} {
		modeValues[m] = struct{}{}
	}
	for _, m := range NumericModes {
		modeValues[m] = struct{}{}
	}
}

// Valid reports whether m is a known mode literal.
func (m ModeValue) Valid() bool {
	_, ok := modeValues[m]
	return ok
}

// ColorScene is a protocol color scene id.
type ColorScene string

const (
	SceneAlarm   ColorScene = "alarm"
	SceneAlice   ColorScene = "alice"
	SceneCandle  ColorScene = "candle"
	SceneDinner  ColorScene = "dinner"
	SceneFantasy ColorScene = "fantasy"
	SceneGarland ColorScene = "garland"
	SceneJungle  ColorScene = "jungle"
	SceneMovie   ColorScene = "movie"
	SceneNeon    ColorScene = "neon"
	SceneNight   ColorScene = "night"
	SceneOcean   ColorScene = "ocean"
	SceneParty   ColorScene = "party"
	SceneReading ColorScene = "reading"
	SceneRest    ColorScene = "rest"
	SceneRomance ColorScene = "romance"
	SceneSiren   ColorScene = "siren"
	SceneSunrise ColorScene = "sunrise"
	SceneSunset  ColorScene = "sunset"
)

// ColorScenes lists every scene in protocol order.
var ColorScenes = []ColorScene{
	SceneAlarm, SceneAlice, SceneCandle, SceneDinner, SceneFantasy, SceneGarland,
	SceneJungle, SceneMovie, SceneNeon, SceneNight, SceneOcean, SceneParty,
	SceneReading, SceneRest, SceneRomance, SceneSiren, SceneSunrise, SceneSunset,
}

// Color temperature limits accepted by the assistant.
const (
	ColorTemperatureMin = 1500
	ColorTemperatureMax = 9000
)

// RangeUnit is the unit of a range capability.
type RangeUnit string

const (
	RangeUnitPercent            RangeUnit = "unit.percent"
	RangeUnitTemperatureCelsius RangeUnit = "unit.temperature.celsius"
	RangeUnitTemperatureKelvin  RangeUnit = "unit.temperature.kelvin"
)

// CapabilityParameters is implemented by every capability parameter payload.
type CapabilityParameters interface {
	capabilityParameters()
}

// OnOffCapabilityParameters are the parameters of on_off.
type OnOffCapabilityParameters struct {
	Split bool `json:"split"`
}

// ModeCapabilityParameters are the parameters of mode.
type ModeCapabilityParameters struct {
	Instance CapabilityInstance `json:"instance"`
	Modes    []ModeOption       `json:"modes"`
}

// ModeOption is one allowed mode.
type ModeOption struct {
	Value ModeValue `json:"value"`
}

// RangeCapabilityParameters are the parameters of range.
type RangeCapabilityParameters struct {
	Instance     CapabilityInstance `json:"instance"`
	Unit         RangeUnit          `json:"unit,omitempty"`
	RandomAccess bool               `json:"random_access"`
	Range        *Range             `json:"range,omitempty"`
}

// Range bounds a numeric value.
type Range struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Precision float64 `json:"precision"`
}

// Contains reports whether v lies within the bounds.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the bounds.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// ToggleCapabilityParameters are the parameters of toggle.
type ToggleCapabilityParameters struct {
	Instance CapabilityInstance `json:"instance"`
}

// ColorSettingCapabilityParameters merges the parameters of every supported
// color instance of a device.
type ColorSettingCapabilityParameters struct {
	ColorModel   *ColorModel             `json:"color_model,omitempty"`
	TemperatureK *TemperatureKParameters `json:"temperature_k,omitempty"`
	ColorScene   *ColorSceneParameters   `json:"color_scene,omitempty"`
}

// ColorModel is the color model of the rgb/hsv instances.
type ColorModel string

const (
	ColorModelRGB ColorModel = "rgb"
	ColorModelHSV ColorModel = "hsv"
)

// TemperatureKParameters bounds the white color temperature.
type TemperatureKParameters struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ColorSceneParameters lists supported scenes.
type ColorSceneParameters struct {
	Scenes []SceneOption `json:"scenes"`
}

// SceneOption is one supported scene.
type SceneOption struct {
	ID ColorScene `json:"id"`
}

// Merge folds other into p, keeping fields already set.
func (p *ColorSettingCapabilityParameters) Merge(other ColorSettingCapabilityParameters) {
	if p.ColorModel == nil {
		p.ColorModel = other.ColorModel
	}
	if p.TemperatureK == nil {
		p.TemperatureK = other.TemperatureK
	}
	if p.ColorScene == nil {
		p.ColorScene = other.ColorScene
	}
}

// StreamProtocol is a video stream transport.
type StreamProtocol string

// StreamProtocolHLS is the only stream protocol produced here.
const StreamProtocolHLS StreamProtocol = "hls"

// VideoStreamCapabilityParameters are the parameters of video_stream.
type VideoStreamCapabilityParameters struct {
	Protocols []StreamProtocol `json:"protocols"`
}

// VideoStreamValue is the action result value of get_stream.
type VideoStreamValue struct {
	StreamURL string         `json:"stream_url"`
	Protocol  StreamProtocol `json:"protocol"`
}

func (OnOffCapabilityParameters) capabilityParameters() {}
func (ModeCapabilityParameters) capabilityParameters() {}
func (RangeCapabilityParameters) capabilityParameters() {}
func (ToggleCapabilityParameters) capabilityParameters() {}
func (ColorSettingCapabilityParameters) capabilityParameters() {}
func (VideoStreamCapabilityParameters) capabilityParameters() {}

// CapabilityDescription describes one capability in discovery.
type CapabilityDescription struct {
	Type        CapabilityType       `json:"type"`
	Retrievable bool                 `json:"retrievable"`
	Reportable  bool                 `json:"reportable"`
	Parameters  CapabilityParameters `json:"parameters,omitempty"`
}

// CapabilityInstanceState is the current value of one capability instance.
type CapabilityInstanceState struct {
	Type  CapabilityType               `json:"type"`
	State CapabilityInstanceStateValue `json:"state"`
}

// CapabilityInstanceStateValue pairs an instance with its value.
type CapabilityInstanceStateValue struct {
	Instance CapabilityInstance `json:"instance"`
	Value    any                `json:"value"`
}

// CapabilityAction is one requested change.
type CapabilityAction struct {
	Type  CapabilityType        `json:"type"`
	State CapabilityActionState `json:"state"`
}

// CapabilityActionState is the requested value. Relative applies to range only.
type CapabilityActionState struct {
	Instance CapabilityInstance `json:"instance"`
	Value    any                `json:"value"`
	Relative bool               `json:"relative,omitempty"`
}

// ActionResultCapability reports the outcome of one capability action.
type ActionResultCapability struct {
	Type  CapabilityType              `json:"type"`
	State ActionResultCapabilityState `json:"state"`
}

// ActionResultCapabilityState carries the per-instance result. Value is set
// only by instances that return data, such as get_stream.
type ActionResultCapabilityState struct {
	Instance     CapabilityInstance `json:"instance"`
	Value        any                `json:"value,omitempty"`
	ActionResult ActionResult       `json:"action_result"`
}
