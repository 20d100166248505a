package property

import (
	"fmt"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// NewCustom binds a user-declared property to st. The value is read from
// cfg.EntityID when set, otherwise from st itself.
func NewCustom(env *smarthome.Env, st *ha.State, cfg config.PropertyConfig) (Property, error) {
	var src valueSource
	switch {
	case cfg.EntityID != "" && cfg.EntityID != st.EntityID:
		src = entitySource{env: env, owner: st.EntityID, entityID: cfg.EntityID, attribute: cfg.Attribute}
	case cfg.Attribute != "":
		src = attributeSource{state: st, attribute: cfg.Attribute}
	default:
		src = stateSource{state: st}
	}

	switch cfg.Family() {
	case config.PropertyTypeFloat:
		if _, ok := floatShapes[cfg.Instance]; !ok {
			return nil, fmt.Errorf("unsupported float instance %q for %s", cfg.Instance, st.EntityID)
		}
		p := newFloatProperty(env, st.EntityID, cfg.Instance, src)
		p.unitOverride = cfg.Unit
		return p, nil

	case config.PropertyTypeEvent:
		if _, ok := builtinTokens[cfg.Instance]; !ok {
			return nil, fmt.Errorf("unsupported event instance %q for %s", cfg.Instance, st.EntityID)
		}
		retrievable := cfg.Instance != protocol.EventInstanceButton && cfg.Instance != protocol.EventInstanceVibration
		p := newEventProperty(env, st.EntityID, cfg.Instance, src, retrievable)
		p.custom = cfg.EventMap
		return p, nil
	}
	return nil, fmt.Errorf("unsupported property type %q for %s", cfg.Type, st.EntityID)
}
