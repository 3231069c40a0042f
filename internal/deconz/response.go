package deconz

import "fmt"

// writeEntry is one element of the array the gateway answers writes
// with. Exactly one of Success or Error is populated per entry.
//
// A success maps the written attribute address to the value that was
// set, e.g. {"/lights/1/state/on": true}. An error carries the
// gateway's numeric error type plus a description.
type writeEntry struct {
	Success map[string]any `json:"success,omitempty"`
	Error   *apiError      `json:"error,omitempty"`
}

// apiError is the gateway's error object inside a write response entry.
type apiError struct {
	Type        int    `json:"type"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// String renders the error the way the gateway documentation writes
// them: description first, address for context.
func (e *apiError) String() string {
	return fmt.Sprintf("%s (type %d, address %s)", e.Description, e.Type, e.Address)
}

// logWriteResults routes a write response's entries to the client's
// hooks: per-attribute confirmations to Debugf, gateway-reported errors
// to Warnf. One failed attribute does not abort anything — the gateway
// has already applied whatever it could.
func (c *Client) logWriteResults(what string, entries []writeEntry) {
	for _, entry := range entries {
		switch {
		case entry.Success != nil:
			for addr, value := range entry.Success {
				c.debugf("%s: %s set to %v", what, addr, value)
			}
		case entry.Error != nil:
			c.warnf("%s: %s", what, entry.Error)
		}
	}
}
