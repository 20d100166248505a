package smarthome

import (
	"errors"
	"fmt"

	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/unit"
)

// Failure kinds. Check with errors.Is.
var (
	ErrUnsupportedValue          = errors.New("unsupported value")
	ErrUnsupportedUnit           = unit.ErrUnsupportedUnit
	ErrDeviceUnreachable         = errors.New("device unreachable")
	ErrDeviceNotFound            = errors.New("device not found")
	ErrInvalidActionValue        = errors.New("invalid action value")
	ErrInvalidAction             = errors.New("invalid action")
	ErrActionFailed              = errors.New("action failed")
	ErrNotSupportedInCurrentMode = errors.New("not supported in current mode")

	errNoStreamSource = errors.New("no stream source configured")
)

var kindCodes = map[error]protocol.ResponseCode{
	ErrUnsupportedValue:          protocol.ResponseCodeInvalidValue,
	ErrUnsupportedUnit:           protocol.ResponseCodeInvalidValue,
	ErrDeviceUnreachable:         protocol.ResponseCodeDeviceUnreachable,
	ErrDeviceNotFound:            protocol.ResponseCodeDeviceNotFound,
	ErrInvalidActionValue:        protocol.ResponseCodeInvalidValue,
	ErrInvalidAction:             protocol.ResponseCodeInvalidAction,
	ErrActionFailed:              protocol.ResponseCodeInternalError,
	ErrNotSupportedInCurrentMode: protocol.ResponseCodeNotSupportedInCurrentMode,
}

// Error is a classified failure of one property or capability evaluation.
type Error struct {
	Kind    error
	Code    protocol.ResponseCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    kindCodes[kind],
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// UnsupportedValue reports a raw value that cannot be parsed for its instance.
func UnsupportedValue(entityID, instance string, raw any) *Error {
	return newError(ErrUnsupportedValue, nil, "unsupported value %q for instance %s of %s", fmt.Sprint(raw), instance, entityID)
}

// UnsupportedUnit wraps a converter failure with the instance and entity.
func UnsupportedUnit(entityID, instance string, cause error) *Error {
	return newError(ErrUnsupportedUnit, cause, "unit conversion failed for instance %s of %s", instance, entityID)
}

// DeviceUnreachable reports a source entity missing from the snapshot store.
func DeviceUnreachable(entityID, sourceEntityID string) *Error {
	if sourceEntityID == "" || sourceEntityID == entityID {
		return newError(ErrDeviceUnreachable, nil, "entity %s not found", entityID)
	}
	return newError(ErrDeviceUnreachable, nil, "entity %s not found for %s", sourceEntityID, entityID)
}

// DeviceNotFound reports an entity unknown to the snapshot store.
func DeviceNotFound(entityID string) *Error {
	return newError(ErrDeviceNotFound, nil, "entity %s not found", entityID)
}

// InvalidActionValue reports an action value outside the allowed set or range.
func InvalidActionValue(entityID, instance string, value any) *Error {
	return newError(ErrInvalidActionValue, nil, "unsupported value %q for instance %s of %s", fmt.Sprint(value), instance, entityID)
}

// InvalidAction reports an action on an instance the entity does not expose.
func InvalidAction(entityID, capability, instance string) *Error {
	return newError(ErrInvalidAction, nil, "capability %s instance %s is not supported by %s", capability, instance, entityID)
}

// ActionFailed wraps a dispatcher failure.
func ActionFailed(entityID, instance string, cause error) *Error {
	return newError(ErrActionFailed, cause, "failed to set %s of %s", instance, entityID)
}

// NotSupportedInCurrentMode reports an action the device rejects in its current mode.
func NotSupportedInCurrentMode(entityID, instance, reason string) *Error {
	return newError(ErrNotSupportedInCurrentMode, nil, "%s of %s: %s", instance, entityID, reason)
}

// CodeOf maps any error to a protocol response code.
func CodeOf(err error) protocol.ResponseCode {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	for kind, code := range kindCodes {
		if errors.Is(err, kind) {
			return code
		}
	}
	return protocol.ResponseCodeInternalError
}

// ActionResultOf converts an action outcome into a protocol action result.
func ActionResultOf(err error) protocol.ActionResult {
	if err == nil {
		return protocol.SuccessActionResult()
	}
	return protocol.FailedActionResult(CodeOf(err), err.Error())
}
