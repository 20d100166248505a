// Package property classifies entities into float and event properties and
// computes their protocol values.
//
// Every automatic classifier is a rule in a fixed, ordered table. A rule
// decides whether a snapshot exposes its instance and, if so, where the raw
// value comes from. User overrides bind an instance to any entity or
// attribute and run through the same conversion.
package property

import (
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// Property is one property of one entity, bound to a snapshot.
type Property interface {
	Type() protocol.PropertyType
	Instance() protocol.PropertyInstance
	Retrievable() bool
	Reportable() bool
	Parameters() protocol.PropertyParameters

	// Value returns the protocol value, or nil when there is no current value.
	Value() (any, error)
}

// Description returns the discovery entry of p.
func Description(p Property) protocol.PropertyDescription {
	return protocol.PropertyDescription{
		Type:        p.Type(),
		Retrievable: p.Retrievable(),
		Reportable:  p.Reportable(),
		Parameters:  p.Parameters(),
	}
}

// State returns the query entry of p. ok is false when p is not retrievable
// or has no current value.
func State(p Property) (state protocol.PropertyInstanceState, ok bool, err error) {
	if !p.Retrievable() {
		return state, false, nil
	}
	v, err := p.Value()
	if err != nil || v == nil {
		return state, false, err
	}
	return protocol.PropertyInstanceState{
		Type:  p.Type(),
		State: protocol.PropertyInstanceStateValue{Instance: p.Instance(), Value: v},
	}, true, nil
}

// Variant identifies a classifier.
type Variant struct {
	Type     protocol.PropertyType
	Instance protocol.PropertyInstance
}

// Key returns the variant of p.
func Key(p Property) Variant {
	return Variant{Type: p.Type(), Instance: p.Instance()}
}

// Registry is the ordered set of automatic property classifiers.
type Registry struct {
	floats []floatRule
	events []eventRule
}

// NewRegistry returns the registry of every built-in classifier.
func NewRegistry() *Registry {
	return &Registry{floats: floatRules, events: eventRules}
}

// Variants lists the variants in evaluation order. A variant may appear more
// than once when several rules can produce it.
func (r *Registry) Variants() []Variant {
	out := make([]Variant, 0, len(r.floats)+len(r.events))
	for _, rule := range r.floats {
		out = append(out, Variant{Type: protocol.PropertyTypeFloat, Instance: rule.instance})
	}
	for _, rule := range r.events {
		out = append(out, Variant{Type: protocol.PropertyTypeEvent, Instance: rule.instance})
	}
	return out
}

// Classify returns every automatic property the snapshot supports, in
// registry order.
func (r *Registry) Classify(env *smarthome.Env, st *ha.State) []Property {
	var out []Property
	for i := range r.floats {
		if p, ok := r.floats[i].bind(env, st); ok {
			out = append(out, p)
		}
	}
	for i := range r.events {
		if p, ok := r.events[i].bind(env, st); ok {
			out = append(out, p)
		}
	}
	return out
}
