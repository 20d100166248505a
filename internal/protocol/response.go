package protocol

// ResponseCode is an error code from the protocol's fixed enumeration.
type ResponseCode string

const (
	ResponseCodeDoorOpen                  ResponseCode = "DOOR_OPEN"
	ResponseCodeLidOpen                   ResponseCode = "LID_OPEN"
	ResponseCodeRemoteControlDisabled     ResponseCode = "REMOTE_CONTROL_DISABLED"
	ResponseCodeNotEnoughWater            ResponseCode = "NOT_ENOUGH_WATER"
	ResponseCodeLowChargeLevel            ResponseCode = "LOW_CHARGE_LEVEL"
	ResponseCodeContainerFull             ResponseCode = "CONTAINER_FULL"
	ResponseCodeContainerEmpty            ResponseCode = "CONTAINER_EMPTY"
	ResponseCodeDripTrayFull              ResponseCode = "DRIP_TRAY_FULL"
	ResponseCodeDeviceStuck               ResponseCode = "DEVICE_STUCK"
	ResponseCodeDeviceOff                 ResponseCode = "DEVICE_OFF"
	ResponseCodeFirmwareOutOfDate         ResponseCode = "FIRMWARE_OUT_OF_DATE"
	ResponseCodeNotEnoughDetergent        ResponseCode = "NOT_ENOUGH_DETERGENT"
	ResponseCodeHumanInvolvementNeeded    ResponseCode = "HUMAN_INVOLVEMENT_NEEDED"
	ResponseCodeDeviceUnreachable         ResponseCode = "DEVICE_UNREACHABLE"
	ResponseCodeDeviceBusy                ResponseCode = "DEVICE_BUSY"
	ResponseCodeInternalError             ResponseCode = "INTERNAL_ERROR"
	ResponseCodeInvalidAction             ResponseCode = "INVALID_ACTION"
	ResponseCodeInvalidValue              ResponseCode = "INVALID_VALUE"
	ResponseCodeNotSupportedInCurrentMode ResponseCode = "NOT_SUPPORTED_IN_CURRENT_MODE"
	ResponseCodeAccountLinkingError       ResponseCode = "ACCOUNT_LINKING_ERROR"
	ResponseCodeDeviceNotFound            ResponseCode = "DEVICE_NOT_FOUND"
)

// ActionStatus is the outcome of one action.
type ActionStatus string

const (
	ActionStatusDone  ActionStatus = "DONE"
	ActionStatusError ActionStatus = "ERROR"
)

// ActionResult is either a success or a failure with an error code.
type ActionResult struct {
	Status       ActionStatus `json:"status"`
	ErrorCode    ResponseCode `json:"error_code,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// SuccessActionResult reports a completed action.
func SuccessActionResult() ActionResult {
	return ActionResult{Status: ActionStatusDone}
}

// FailedActionResult reports a failed action.
func FailedActionResult(code ResponseCode, message string) ActionResult {
	return ActionResult{Status: ActionStatusError, ErrorCode: code, ErrorMessage: message}
}
