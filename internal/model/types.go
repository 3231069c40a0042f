package model

import "fmt"

// LightState holds the mutable state portion of a light or switch as
// reported by the gateway under the "state" key.
//
// Not every device populates every field: an On/Off plug has no
// brightness or color temperature, and a non-color bulb has no color
// mode. Fields absent from the gateway response decode to their zero
// values, which is acceptable because the CLI only reads back fields
// the device type supports.
type LightState struct {
	// On reports whether the light (or switch) is currently turned on.
	On bool `json:"on"`

	// Bri is the brightness on the gateway's 0-255 scale.
	Bri int `json:"bri,omitempty"`

	// Ct is the color temperature in the gateway's mired-like scale
	// (153 = coldest, 500 = warmest).
	Ct int `json:"ct,omitempty"`

	// Alert is the current alert effect ("none", "select" or "lselect").
	Alert string `json:"alert,omitempty"`

	// ColorMode indicates which color attribute drives the light ("ct",
	// "hs" or "xy"). Read-only; it is never pushed back to the gateway.
	ColorMode string `json:"colormode,omitempty"`

	// Reachable reports whether the gateway can currently talk to the
	// device over the radio.
	Reachable bool `json:"reachable,omitempty"`
}

// Light represents a light or switch as returned by the gateway's
// /lights endpoint. The map key under which the gateway returns it (a
// string-encoded integer) serves as its identifier and is carried
// separately by callers.
type Light struct {
	// Name is the user-assigned device name, the primary handle for
	// selector matching.
	Name string `json:"name"`

	// Type is the ZigBee device type string, e.g. "Color temperature
	// light" (Philips/IKEA), "Extended color light" (LED bars),
	// "On/Off plug-in unit" (control switches) or "Color light".
	// State translation branches on this value.
	Type string `json:"type"`

	// ModelID and Manufacturer identify the hardware.
	ModelID      string `json:"modelid,omitempty"`
	Manufacturer string `json:"manufacturername,omitempty"`

	// UniqueID is the device's ZigBee MAC-derived identifier.
	UniqueID string `json:"uniqueid,omitempty"`

	// CtMin and CtMax bound the color temperatures this particular
	// device accepts. Not all lights accept the same range, so state
	// translation clamps against these.
	CtMin int `json:"ctmin,omitempty"`
	CtMax int `json:"ctmax,omitempty"`

	// State is the current device state.
	State LightState `json:"state"`
}

// IsSwitch reports whether the device is an on/off-only unit (a plug or
// relay). Such devices reject brightness and color temperature fields,
// so state updates sent to them must carry only "on".
func (l *Light) IsSwitch() bool {
	return len(l.Type) >= 6 && l.Type[:6] == "On/Off"
}

// CtBounds returns the color temperature bounds accepted by this light.
// When the gateway did not report bounds (both zero), the full gateway
// scale is returned so that clamping becomes a no-op.
func (l *Light) CtBounds() (min, max int) {
	if l.CtMin == 0 && l.CtMax == 0 {
		return CtScaleMin, CtScaleMax
	}
	return l.CtMin, l.CtMax
}

// GroupState holds the aggregate on/off state of a group as reported
// under the group's "state" key.
type GroupState struct {
	// AllOn is true when every reachable member light is on.
	AllOn bool `json:"all_on"`

	// AnyOn is true when at least one member light is on.
	AnyOn bool `json:"any_on"`
}

// SceneRef is a scene entry as listed inside a group. Scene identifiers
// are only unique within their group.
type SceneRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// TransitionTime and LightCount are reported by newer gateway
	// firmware; zero when absent.
	TransitionTime int `json:"transitiontime,omitempty"`
	LightCount     int `json:"lightcount,omitempty"`
}

// Group represents a light group as returned by the gateway's /groups
// endpoint.
type Group struct {
	// Name is the user-assigned group name.
	Name string `json:"name"`

	// Lights lists the string-integer identifiers of member lights.
	Lights []string `json:"lights"`

	// Scenes lists the scenes stored for this group.
	Scenes []SceneRef `json:"scenes,omitempty"`

	// Hidden marks groups that gateway UIs should not display.
	Hidden bool `json:"hidden,omitempty"`

	// State is the aggregate on/off state of the group.
	State GroupState `json:"state"`
}

// Gateway color temperature scale boundaries. The deCONZ API expresses
// color temperature on an inverted mired-like scale where CtScaleMin is
// the coldest white and CtScaleMax the warmest.
const (
	CtScaleMin = 153
	CtScaleMax = 500
)

// Group-wide state changes cannot consult individual device limits, so
// they translate against the most restrictive bounds found in common
// household bulbs (IKEA).
const (
	GroupCtMin = 250
	GroupCtMax = 454
)

// StateUpdate is the JSON body sent to a light's /state endpoint or a
// group's /action endpoint. Pointer fields distinguish "leave untouched"
// (nil) from an explicit value, so the marshalled body carries exactly
// the attributes the keyword translation produced.
type StateUpdate struct {
	On             *bool   `json:"on,omitempty"`
	Bri            *int    `json:"bri,omitempty"`
	Ct             *int    `json:"ct,omitempty"`
	Alert          *string `json:"alert,omitempty"`
	TransitionTime *int    `json:"transitiontime,omitempty"`
}

// GroupAttrUpdate is the JSON body sent to a group's attribute endpoint.
// Nil fields are omitted and remain unchanged on the gateway. Lights is
// a pointer because the gateway distinguishes a missing "lights" key
// (leave membership alone) from an empty list (clear the group), and
// omitempty would drop the empty list.
type GroupAttrUpdate struct {
	Name   *string   `json:"name,omitempty"`
	Lights *[]string `json:"lights,omitempty"`
	Hidden *bool     `json:"hidden,omitempty"`
}

// ExitCode defines standard CLI exit codes. These codes allow scripts
// and automation to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigNotFound indicates no .lighter.json configuration file
	// could be located or loaded.
	ExitConfigNotFound ExitCode = 2

	// ExitGatewayUnreachable indicates the deCONZ gateway did not
	// respond to an API request.
	ExitGatewayUnreachable ExitCode = 3

	// ExitNotAuthorized indicates the gateway rejected the API key.
	ExitNotAuthorized ExitCode = 4

	// ExitNoMatch indicates a selector matched no light, group or scene
	// in a context that requires at least one match.
	ExitNoMatch ExitCode = 5

	// ExitReleaseError indicates a build invocation of the release
	// driver failed.
	ExitReleaseError ExitCode = 6
)

// CLIError is a custom error type that carries an exit code. This allows
// the CLI layer to translate domain errors into appropriate process exit
// codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
