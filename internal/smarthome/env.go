// Package smarthome holds what every property and capability shares: the
// failure taxonomy, the value normalizer and the evaluation environment that
// connects classifiers to the platform.
package smarthome

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/unit"
)

// StateGetter reads entity snapshots.
type StateGetter interface {
	Get(entityID string) (*ha.State, bool)
}

// ServiceCaller invokes platform services.
type ServiceCaller interface {
	CallService(ctx context.Context, domain, service string, data map[string]any) error
}

// StreamSource starts camera streams.
type StreamSource interface {
	CameraStreamURL(ctx context.Context, entityID string) (string, error)
}

// Settings are the global options that affect classification.
type Settings struct {
	PressureUnit    protocol.FloatUnit
	StateReporting  bool
	TemperatureUnit unit.Unit
	StreamBaseURL   string
}

// DefaultSettings returns the settings used when configuration omits them.
func DefaultSettings() Settings {
	return Settings{
		PressureUnit:    protocol.UnitPressureMMHG,
		StateReporting:  true,
		TemperatureUnit: unit.Celsius,
	}
}

// Env is the environment a classifier is evaluated in. It is read-only and
// safe to share between goroutines when its collaborators are.
type Env struct {
	States   StateGetter
	Services ServiceCaller
	Streams  StreamSource
	Settings Settings
	Logger   *zap.Logger
}

// Call invokes a service, tagging failures as ErrActionFailed.
func (e *Env) Call(ctx context.Context, entityID, instance, domain, service string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data[ha.AttrEntityID]; !ok {
		data[ha.AttrEntityID] = entityID
	}

	e.Logger.Debug("Calling service",
		zap.String("entity_id", entityID),
		zap.String("instance", instance),
		zap.String("service", domain+"."+service))

	if err := e.Services.CallService(ctx, domain, service, data); err != nil {
		return ActionFailed(entityID, instance, err)
	}
	return nil
}

// StreamURL starts a stream and returns its absolute URL.
func (e *Env) StreamURL(ctx context.Context, entityID string) (string, error) {
	if e.Streams == nil {
		return "", ActionFailed(entityID, string(protocol.VideoStreamInstanceGetStream), errNoStreamSource)
	}
	path, err := e.Streams.CameraStreamURL(ctx, entityID)
	if err != nil {
		return "", ActionFailed(entityID, string(protocol.VideoStreamInstanceGetStream), err)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	return strings.TrimSuffix(e.Settings.StreamBaseURL, "/") + "/" + strings.TrimPrefix(path, "/"), nil
}

// Lookup returns the snapshot of a source entity, failing with
// ErrDeviceUnreachable on behalf of owner when it is missing.
func (e *Env) Lookup(owner, entityID string) (*ha.State, error) {
	if e.States != nil {
		if state, ok := e.States.Get(entityID); ok && state != nil {
			return state, nil
		}
	}
	return nil, DeviceUnreachable(owner, entityID)
}
