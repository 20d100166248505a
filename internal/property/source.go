package property

import (
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/smarthome"
	"yandexsmarthome/internal/unit"
)

// valueSource yields the raw value a property is computed from, and the
// unit that value is in when the snapshot declares one.
type valueSource interface {
	Value() (any, error)
	Unit() unit.Unit
}

// stateSource reads the state string of a snapshot.
type stateSource struct {
	state *ha.State
}

func (s stateSource) Value() (any, error) { return s.state.State, nil }
func (s stateSource) Unit() unit.Unit     { return unit.Unit(s.state.UnitOfMeasurement()) }

// attributeSource reads one attribute. unit is the unit the platform reports
// that attribute in, if known.
type attributeSource struct {
	state     *ha.State
	attribute string
	unit      unit.Unit
}

func (s attributeSource) Value() (any, error) {
	v, _ := s.state.Attr(s.attribute)
	return v, nil
}

func (s attributeSource) Unit() unit.Unit { return s.unit }

// firstOfSource reads the first present attribute, falling back to the state.
type firstOfSource struct {
	state      *ha.State
	attributes []string
}

func (s firstOfSource) Value() (any, error) {
	for _, attr := range s.attributes {
		if v, ok := s.state.Attr(attr); ok {
			return v, nil
		}
	}
	return s.state.State, nil
}

func (s firstOfSource) Unit() unit.Unit { return "" }

// entitySource reads another entity from the snapshot store on every
// evaluation. A missing entity fails with ErrDeviceUnreachable naming both
// the owner and the missing source.
type entitySource struct {
	env       *smarthome.Env
	owner     string
	entityID  string
	attribute string
}

func (s entitySource) Value() (any, error) {
	st, err := s.env.Lookup(s.owner, s.entityID)
	if err != nil {
		return nil, err
	}
	if s.attribute != "" {
		return attributeSource{state: st, attribute: s.attribute}.Value()
	}
	return st.State, nil
}

func (s entitySource) Unit() unit.Unit {
	if s.attribute != "" {
		return ""
	}
	st, err := s.env.Lookup(s.owner, s.entityID)
	if err != nil {
		return ""
	}
	return unit.Unit(st.UnitOfMeasurement())
}
