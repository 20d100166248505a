package capability

import (
	"context"
	"slices"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// OnOff is the on_off capability.
type OnOff struct {
	base
	stateless bool
}

// statelessDomains can be triggered but never report a state.
var statelessDomains = map[string]string{
	ha.DomainScene:       ha.ServiceTurnOn,
	ha.DomainScript:      ha.ServiceTurnOn,
	ha.DomainButton:      "press",
	ha.DomainInputButton: "press",
}

func bindOnOff(b binding) (Capability, bool) {
	c := &OnOff{base: base{binding: b, instance: protocol.OnOffInstanceOn}}
	if _, ok := statelessDomains[b.state.Domain()]; ok {
		c.stateless = true
		return c, true
	}
	if b.cfg.TurnOn != nil || b.cfg.TurnOff != nil {
		return c, true
	}
	return c, onOffSupported(b.state)
}

func onOffSupported(st *ha.State) bool {
	switch st.Domain() {
	case ha.DomainLight, ha.DomainSwitch, ha.DomainFan, ha.DomainInputBoolean,
		ha.DomainHumidifier, ha.DomainGroup, ha.DomainRemote, ha.DomainAutomation,
		ha.DomainLock:
		return true
	case ha.DomainCover:
		return st.SupportedFeatures()&(ha.CoverSupportOpen|ha.CoverSupportClose) != 0
	case ha.DomainValve:
		return st.SupportedFeatures()&(ha.ValveSupportOpen|ha.ValveSupportClose) != 0
	case ha.DomainMediaPlayer:
		return st.SupportedFeatures()&(ha.MediaPlayerSupportTurnOn|ha.MediaPlayerSupportTurnOff) != 0
	case ha.DomainVacuum:
		return st.SupportedFeatures()&(ha.VacuumSupportStart|ha.VacuumSupportTurnOn) != 0
	case ha.DomainClimate:
		return slices.Contains(st.AttrStrings(ha.AttrHVACModes), ha.StateOff) ||
			st.SupportedFeatures()&(ha.ClimateSupportTurnOn|ha.ClimateSupportTurnOff) != 0
	case ha.DomainWaterHeater:
		return slices.Contains(st.AttrStrings(ha.AttrOperationList), ha.StateOff)
	}
	return false
}

func (c *OnOff) Type() protocol.CapabilityType { return protocol.CapabilityTypeOnOff }
func (c *OnOff) Retrievable() bool             { return !c.stateless }

func (c *OnOff) Reportable() bool {
	return !c.stateless && c.base.Reportable()
}

// Parameters is nil for entities that report their state. Stateless
// entities ask for separate on and off commands.
func (c *OnOff) Parameters() protocol.CapabilityParameters {
	if c.stateless {
		return protocol.OnOffCapabilityParameters{Split: true}
	}
	return nil
}

func (c *OnOff) Value() (any, error) {
	if c.stateless || c.absent() {
		return nil, nil
	}
	switch c.state.State {
	case ha.StateOff, ha.StateClosed, ha.StateLocked, ha.StateStandby, ha.StateDocked:
		return false, nil
	}
	switch c.state.Domain() {
	case ha.DomainCover, ha.DomainValve:
		return c.state.State != ha.StateClosing, nil
	case ha.DomainLock:
		return c.state.State == ha.StateUnlocked, nil
	case ha.DomainVacuum:
		return c.state.State == ha.StateOn || c.state.State == ha.StateCleaning, nil
	case ha.DomainClimate, ha.DomainWaterHeater, ha.DomainMediaPlayer:
		return true, nil
	}
	return c.state.State == ha.StateOn, nil
}

func (c *OnOff) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	on, err := boolAction(c.binding, state)
	if err != nil {
		return nil, err
	}

	if tmpl := c.customService(on); tmpl != nil {
		return nil, callTemplate(ctx, c.binding, c.instance, *tmpl, on)
	}

	if service, ok := statelessDomains[c.state.Domain()]; ok {
		if !on {
			return nil, smarthome.InvalidActionValue(c.entityID(), string(c.instance), on)
		}
		return nil, c.call(ctx, c.instance, service, nil)
	}

	domain, service, data := c.command(on)
	return nil, c.callDomain(ctx, c.instance, domain, service, data)
}

func (c *OnOff) customService(on bool) *config.ServiceTemplate {
	if on {
		return c.cfg.TurnOn
	}
	return c.cfg.TurnOff
}

// command returns the built-in service for the entity's domain.
func (c *OnOff) command(on bool) (domain, service string, data map[string]any) {
	st := c.state
	domain = st.Domain()
	pick := func(onService, offService string) string {
		if on {
			return onService
		}
		return offService
	}

	switch domain {
	case ha.DomainGroup:
		return "homeassistant", pick(ha.ServiceTurnOn, ha.ServiceTurnOff), nil
	case ha.DomainCover:
		return domain, pick(ha.ServiceOpenCover, ha.ServiceCloseCover), nil
	case ha.DomainValve:
		return domain, pick(ha.ServiceOpenValve, ha.ServiceCloseValve), nil
	case ha.DomainLock:
		return domain, pick(ha.ServiceUnlock, ha.ServiceLock), nil
	case ha.DomainVacuum:
		if st.Supports(ha.VacuumSupportStart) {
			if on {
				return domain, ha.ServiceStart, nil
			}
			if st.Supports(ha.VacuumSupportReturn) {
				return domain, ha.ServiceReturnToBase, nil
			}
			return domain, "stop", nil
		}
	case ha.DomainClimate:
		if st.SupportedFeatures()&(ha.ClimateSupportTurnOn|ha.ClimateSupportTurnOff) == 0 {
			mode := ha.StateOff
			if on {
				mode = climateOnMode(st.AttrStrings(ha.AttrHVACModes))
			}
			return domain, ha.ServiceSetHVACMode, map[string]any{ha.AttrHVACMode: mode}
		}
	case ha.DomainWaterHeater:
		mode := ha.StateOff
		if on {
			mode = firstExcept(st.AttrStrings(ha.AttrOperationList), ha.StateOff)
		}
		return domain, ha.ServiceSetOperationMode, map[string]any{ha.AttrOperationMode: mode}
	}
	return domain, pick(ha.ServiceTurnOn, ha.ServiceTurnOff), nil
}

// climateOnMode picks the hvac mode used to turn a climate device on.
func climateOnMode(modes []string) string {
	for _, preferred := range []string{"heat_cool", "auto"} {
		if slices.Contains(modes, preferred) {
			return preferred
		}
	}
	return firstExcept(modes, ha.StateOff)
}

func firstExcept(list []string, skip string) string {
	for _, v := range list {
		if v != skip {
			return v
		}
	}
	return ""
}
