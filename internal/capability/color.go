package capability

import (
	"context"
	"math"
	"slices"
	"strings"

	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
)

var rgbColorModes = []string{ha.ColorModeHS, ha.ColorModeRGB, ha.ColorModeRGBW, ha.ColorModeRGBWW, ha.ColorModeXY}

// Default white range for lights that do not report one.
const (
	defaultMinColorTempK = 2000
	defaultMaxColorTempK = 6500
)

// Color is one instance of the color_setting capability. Parameters carry
// only this instance's part; devices merge the parts of every instance.
type Color struct {
	base
	parameters protocol.ColorSettingCapabilityParameters
	current    func(st *ha.State) any
	set        func(ctx context.Context, b binding, state protocol.CapabilityActionState) error
}

func (c *Color) Type() protocol.CapabilityType { return protocol.CapabilityTypeColorSetting }

func (c *Color) Parameters() protocol.CapabilityParameters { return c.parameters }

func (c *Color) Value() (any, error) {
	if c.absent() {
		return nil, nil
	}
	return c.current(c.state), nil
}

func (c *Color) SetValue(ctx context.Context, state protocol.CapabilityActionState) (any, error) {
	return nil, c.set(ctx, c.binding, state)
}

func supportsColorMode(st *ha.State, modes ...string) bool {
	for _, m := range st.AttrStrings(ha.AttrSupportedColorModes) {
		if slices.Contains(modes, m) {
			return true
		}
	}
	return false
}

func bindRGB(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainLight || !supportsColorMode(b.state, rgbColorModes...) {
		return nil, false
	}
	model := protocol.ColorModelRGB
	return &Color{
		base:       base{binding: b, instance: protocol.ColorSettingInstanceRGB},
		parameters: protocol.ColorSettingCapabilityParameters{ColorModel: &model},
		current: func(st *ha.State) any {
			if st.AttrString(ha.AttrColorMode) == ha.ColorModeColorTemp {
				return nil
			}
			v, _ := st.Attr(ha.AttrRGBColor)
			items, ok := v.([]any)
			if !ok || len(items) != 3 {
				return nil
			}
			rgb := 0
			for _, item := range items {
				f, ok := ha.ToFloat(item)
				if !ok {
					return nil
				}
				rgb = rgb<<8 | int(math.Round(f))&0xff
			}
			return rgb
		},
		set: func(ctx context.Context, b binding, state protocol.CapabilityActionState) error {
			v, err := numberAction(b, state)
			if err != nil {
				return err
			}
			if v < 0 || v > 0xffffff || v != math.Trunc(v) {
				return invalidValue(b, state)
			}
			rgb := int(v)
			return b.call(ctx, state.Instance, ha.ServiceTurnOn, map[string]any{
				ha.AttrRGBColor: []int{rgb >> 16 & 0xff, rgb >> 8 & 0xff, rgb & 0xff},
			})
		},
	}, true
}

func bindTemperatureK(b binding) (Capability, bool) {
	st := b.state
	if st.Domain() != ha.DomainLight || !supportsColorMode(st, ha.ColorModeColorTemp) {
		return nil, false
	}

	bounds := protocol.TemperatureKParameters{Min: defaultMinColorTempK, Max: defaultMaxColorTempK}
	if v, ok := st.AttrFloat(ha.AttrMinColorTempKelvin); ok {
		bounds.Min = int(v)
	}
	if v, ok := st.AttrFloat(ha.AttrMaxColorTempKelvin); ok {
		bounds.Max = int(v)
	}
	bounds.Min = max(bounds.Min, protocol.ColorTemperatureMin)
	bounds.Max = min(bounds.Max, protocol.ColorTemperatureMax)

	return &Color{
		base:       base{binding: b, instance: protocol.ColorSettingInstanceTemperatureK},
		parameters: protocol.ColorSettingCapabilityParameters{TemperatureK: &bounds},
		current: func(st *ha.State) any {
			if mode := st.AttrString(ha.AttrColorMode); mode != "" && mode != ha.ColorModeColorTemp {
				return nil
			}
			v, ok := st.AttrFloat(ha.AttrColorTempKelvin)
			if !ok {
				return nil
			}
			return int(math.Round(v))
		},
		set: func(ctx context.Context, b binding, state protocol.CapabilityActionState) error {
			v, err := numberAction(b, state)
			if err != nil {
				return err
			}
			k := int(math.Round(v))
			if k < bounds.Min || k > bounds.Max {
				return invalidValue(b, state)
			}
			return b.call(ctx, state.Instance, ha.ServiceTurnOn, map[string]any{ha.AttrColorTempKelvin: k})
		},
	}, true
}

// sceneAliases maps common effect names to scenes beyond exact id matches.
var sceneAliases = map[string]protocol.ColorScene{
	"nightlight":  protocol.SceneNight,
	"night light": protocol.SceneNight,
	"romantic":    protocol.SceneRomance,
	"relax":       protocol.SceneRest,
	"read":        protocol.SceneReading,
	"christmas":   protocol.SceneGarland,
	"fireplace":   protocol.SceneCandle,
	"police":      protocol.SceneSiren,
	"disco":       protocol.SceneParty,
	"forest":      protocol.SceneJungle,
	"tv time":     protocol.SceneMovie,
}

func effectScene(effect string) (protocol.ColorScene, bool) {
	key := strings.ToLower(strings.TrimSpace(effect))
	if slices.Contains(protocol.ColorScenes, protocol.ColorScene(key)) {
		return protocol.ColorScene(key), true
	}
	scene, ok := sceneAliases[key]
	return scene, ok
}

func bindScene(b binding) (Capability, bool) {
	st := b.state
	if st.Domain() != ha.DomainLight || !st.Supports(ha.LightSupportEffect) {
		return nil, false
	}

	effects := map[protocol.ColorScene]string{}
	var scenes []protocol.SceneOption
	for _, effect := range st.AttrStrings(ha.AttrEffectList) {
		scene, ok := effectScene(effect)
		if !ok {
			continue
		}
		if _, dup := effects[scene]; dup {
			continue
		}
		effects[scene] = effect
		scenes = append(scenes, protocol.SceneOption{ID: scene})
	}
	if len(scenes) == 0 {
		return nil, false
	}

	return &Color{
		base:       base{binding: b, instance: protocol.ColorSettingInstanceScene},
		parameters: protocol.ColorSettingCapabilityParameters{ColorScene: &protocol.ColorSceneParameters{Scenes: scenes}},
		current: func(st *ha.State) any {
			scene, ok := effectScene(st.AttrString(ha.AttrEffect))
			if !ok {
				return nil
			}
			if _, supported := effects[scene]; !supported {
				return nil
			}
			return scene
		},
		set: func(ctx context.Context, b binding, state protocol.CapabilityActionState) error {
			id, err := stringAction(b, state)
			if err != nil {
				return err
			}
			effect, ok := effects[protocol.ColorScene(id)]
			if !ok {
				return invalidValue(b, state)
			}
			return b.call(ctx, state.Instance, ha.ServiceTurnOn, map[string]any{ha.AttrEffect: effect})
		},
	}, true
}
