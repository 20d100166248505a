package capability

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/protocol"
)

// bareValue matches templates that are nothing but the action value. Those
// pass the value through with its type instead of rendering it to a string.
var bareValue = regexp.MustCompile(`^\s*\{\{-?\s*\.Value\s*-?\}\}\s*$`)

// templateData is the dot of every service template.
type templateData struct {
	Value any
}

// callTemplate renders a configured service call for value and invokes it.
func callTemplate(ctx context.Context, b binding, instance protocol.CapabilityInstance, tmpl config.ServiceTemplate, value any) error {
	domain, service := tmpl.Split()
	data, err := renderData(tmpl.Data, templateData{Value: value})
	if err != nil {
		return fmt.Errorf("failed to render %s for %s: %w", tmpl.Service, b.entityID(), err)
	}
	m, _ := data.(map[string]any)
	return b.callDomain(ctx, instance, domain, service, m)
}

func renderData(v any, dot templateData) (any, error) {
	switch val := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			rendered, err := renderValue(item, dot)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = rendered
		}
		return out, nil
	}
	return renderValue(v, dot)
}

func renderValue(v any, dot templateData) (any, error) {
	switch val := v.(type) {
	case string:
		return renderString(val, dot)
	case map[string]any:
		return renderData(val, dot)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			rendered, err := renderValue(item, dot)
			if err != nil {
				return nil, err
			}
			out[i] = rendered
		}
		return out, nil
	}
	return v, nil
}

func renderString(s string, dot templateData) (any, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	if bareValue.MatchString(s) {
		return dot.Value, nil
	}
	t, err := template.New("data").Option("missingkey=error").Parse(s)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := t.Execute(&sb, dot); err != nil {
		return nil, err
	}
	return sb.String(), nil
}
