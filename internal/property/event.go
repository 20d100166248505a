package property

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// eventTokens maps lowercased raw values to event literals.
type eventTokens map[string]protocol.EventValue

var (
	detectionTokens = eventTokens{
		ha.StateOn:     protocol.EventDetected,
		"detected":     protocol.EventDetected,
		ha.StateOff:    protocol.EventNotDetected,
		"not_detected": protocol.EventNotDetected,
		"clear":        protocol.EventNotDetected,
		"high":         protocol.EventHigh,
	}

	openTokens = eventTokens{
		ha.StateOn:     protocol.EventOpened,
		ha.StateOpen:   protocol.EventOpened,
		"opened":       protocol.EventOpened,
		ha.StateOff:    protocol.EventClosed,
		ha.StateClosed: protocol.EventClosed,
	}

	batteryTokens = eventTokens{
		ha.StateOn:  protocol.EventLow,
		"low":       protocol.EventLow,
		ha.StateOff: protocol.EventNormal,
		"normal":    protocol.EventNormal,
		"high":      protocol.EventHigh,
	}

	levelTokens = eventTokens{
		"empty":     protocol.EventEmpty,
		ha.StateOn:  protocol.EventLow,
		"low":       protocol.EventLow,
		ha.StateOff: protocol.EventNormal,
		"normal":    protocol.EventNormal,
	}

	leakTokens = eventTokens{
		ha.StateOn:  protocol.EventLeak,
		"leak":      protocol.EventLeak,
		"wet":       protocol.EventLeak,
		ha.StateOff: protocol.EventDry,
		"dry":       protocol.EventDry,
	}

	buttonTokens = eventTokens{
		"click":        protocol.EventClick,
		"single":       protocol.EventClick,
		"press":        protocol.EventClick,
		"single_click": protocol.EventClick,
		"short_press":  protocol.EventClick,
		"double":       protocol.EventDoubleClick,
		"double_click": protocol.EventDoubleClick,
		"double_press": protocol.EventDoubleClick,
		"long":         protocol.EventLongPress,
		"long_click":   protocol.EventLongPress,
		"long_press":   protocol.EventLongPress,
		"hold":         protocol.EventLongPress,
	}

	vibrationTokens = eventTokens{
		"vibrate":   protocol.EventVibration,
		"vibration": protocol.EventVibration,
		ha.StateOn:  protocol.EventVibration,
		"tilt":      protocol.EventTilt,
		"rotate":    protocol.EventTilt,
		"flip90":    protocol.EventTilt,
		"flip180":   protocol.EventTilt,
		"fall":      protocol.EventFall,
		"drop":      protocol.EventFall,
		"free_fall": protocol.EventFall,
	}
)

// builtinTokens are the tokens a custom event property falls back to.
var builtinTokens = map[protocol.PropertyInstance]eventTokens{
	protocol.EventInstanceVibration:    vibrationTokens,
	protocol.EventInstanceOpen:         openTokens,
	protocol.EventInstanceButton:       buttonTokens,
	protocol.EventInstanceMotion:       detectionTokens,
	protocol.EventInstanceSmoke:        detectionTokens,
	protocol.EventInstanceGas:          detectionTokens,
	protocol.EventInstanceBatteryLevel: batteryTokens,
	protocol.EventInstanceFoodLevel:    levelTokens,
	protocol.EventInstanceWaterLevel:   levelTokens,
	protocol.EventInstanceWaterLeak:    leakTokens,
}

// EventProperty is an event property bound to a snapshot.
type EventProperty struct {
	env         *smarthome.Env
	entityID    string
	instance    protocol.PropertyInstance
	source      valueSource
	tokens      eventTokens
	custom      config.ValueMap
	retrievable bool
}

func newEventProperty(env *smarthome.Env, entityID string, instance protocol.PropertyInstance, source valueSource, retrievable bool) *EventProperty {
	return &EventProperty{
		env:         env,
		entityID:    entityID,
		instance:    instance,
		source:      source,
		tokens:      builtinTokens[instance],
		retrievable: retrievable,
	}
}

func (p *EventProperty) Type() protocol.PropertyType         { return protocol.PropertyTypeEvent }
func (p *EventProperty) Instance() protocol.PropertyInstance { return p.instance }
func (p *EventProperty) Retrievable() bool                   { return p.retrievable }
func (p *EventProperty) Reportable() bool                    { return p.env.Settings.StateReporting }

func (p *EventProperty) Parameters() protocol.PropertyParameters {
	values := protocol.EventValues[p.instance]
	events := make([]protocol.EventOption, 0, len(values))
	for _, v := range values {
		events = append(events, protocol.EventOption{Value: v})
	}
	return protocol.EventPropertyParameters{Instance: p.instance, Events: events}
}

// Value maps the raw value to an event literal. Unrecognized values have no
// current value rather than failing the whole query.
func (p *EventProperty) Value() (any, error) {
	raw, err := p.source.Value()
	if err != nil {
		return nil, err
	}
	if smarthome.IsAbsent(raw) {
		return nil, nil
	}

	token := strings.ToLower(strings.TrimSpace(fmt.Sprint(raw)))
	if literal, ok := p.custom.Lookup(token); ok {
		return protocol.EventValue(literal), nil
	}
	if v, ok := p.tokens[token]; ok {
		return v, nil
	}

	p.env.Logger.Debug("Unrecognized event value",
		zap.String("entity_id", p.entityID),
		zap.String("instance", string(p.instance)),
		zap.String("value", token))
	return nil, nil
}

// eventRule decides whether a snapshot exposes an event instance.
type eventRule struct {
	instance    protocol.PropertyInstance
	match       func(st *ha.State) bool
	source      func(st *ha.State) valueSource
	retrievable bool
}

func (r *eventRule) bind(env *smarthome.Env, st *ha.State) (Property, bool) {
	if r.match == nil || !r.match(st) {
		return nil, false
	}
	var src valueSource = stateSource{state: st}
	if r.source != nil {
		src = r.source(st)
	}
	return newEventProperty(env, st.EntityID, r.instance, src, r.retrievable), true
}

// binarySensorClass matches binary sensors with one of the device classes.
func binarySensorClass(classes ...string) func(*ha.State) bool {
	return func(st *ha.State) bool {
		return st.Domain() == ha.DomainBinarySensor && contains(classes, st.DeviceClass())
	}
}

func isButton(st *ha.State) bool {
	switch st.Domain() {
	case ha.DomainBinarySensor, ha.DomainSensor:
		dc := st.DeviceClass()
		return dc == ha.DeviceClassButton || (dc == "" && st.HasAttr(ha.AttrLastAction))
	case ha.DomainEvent:
		dc := st.DeviceClass()
		return dc == ha.DeviceClassButton || dc == ha.DeviceClassDoorbell
	}
	return false
}

func buttonSource(st *ha.State) valueSource {
	if st.Domain() == ha.DomainEvent {
		return attributeSource{state: st, attribute: ha.AttrEventType}
	}
	return firstOfSource{state: st, attributes: []string{ha.AttrLastAction, ha.AttrAction}}
}

func lastActionSource(st *ha.State) valueSource {
	return firstOfSource{state: st, attributes: []string{ha.AttrLastAction}}
}

var eventRules = []eventRule{
	{
		instance:    protocol.EventInstanceOpen,
		match:       binarySensorClass(ha.DeviceClassDoor, ha.DeviceClassGarageDoor, ha.DeviceClassWindow, ha.DeviceClassOpening),
		retrievable: true,
	},
	{
		instance:    protocol.EventInstanceMotion,
		match:       binarySensorClass(ha.DeviceClassMotion, ha.DeviceClassOccupancy, ha.DeviceClassPresence),
		retrievable: true,
	},
	{
		instance:    protocol.EventInstanceGas,
		match:       binarySensorClass(ha.DeviceClassGas),
		retrievable: true,
	},
	{
		instance:    protocol.EventInstanceSmoke,
		match:       binarySensorClass(ha.DeviceClassSmoke),
		retrievable: true,
	},
	{
		instance:    protocol.EventInstanceBatteryLevel,
		match:       binarySensorClass(ha.DeviceClassBattery),
		retrievable: true,
	},
	{
		instance:    protocol.EventInstanceWaterLeak,
		match:       binarySensorClass(ha.DeviceClassMoisture),
		retrievable: true,
	},
	{
		instance: protocol.EventInstanceButton,
		match:    isButton,
		source:   buttonSource,
	},
	{
		instance: protocol.EventInstanceVibration,
		match:    binarySensorClass(ha.DeviceClassVibration),
		source:   lastActionSource,
	},
}
