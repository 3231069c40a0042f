package deconz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anjos/lighter/internal/model"
)

// defaultTimeout bounds every single gateway request. The gateway lives
// on the local network, so responses are normally immediate; a stuck
// request means the host or port is wrong rather than the network slow.
const defaultTimeout = 10 * time.Second

// keyRetryInterval is how long AcquireAPIKey waits between attempts
// while the gateway's link button has not been pressed yet.
const keyRetryInterval = time.Second

// DeviceType is the application identifier sent when requesting an API
// key. The gateway displays it in its list of authorized applications.
const DeviceType = "lighter"

// Options configures a Client. Host and Port are required; everything
// else has a usable zero value.
type Options struct {
	// Host is the IP address or hostname of the gateway.
	Host string

	// Port is the TCP port of the gateway's REST API.
	Port int

	// APIKey is a previously acquired key. May be empty when the client
	// is only used to acquire one.
	APIKey string

	// TransitionTime is the fade time applied to state changes, in
	// tenths of a second.
	TransitionTime int

	// HTTPClient overrides the HTTP client used for requests. Nil means
	// a client with defaultTimeout.
	HTTPClient *http.Client

	// Debugf and Warnf receive per-attribute write confirmations and
	// non-fatal problems (unreachable bulbs, clamped values). Nil hooks
	// discard the messages.
	Debugf func(format string, args ...any)
	Warnf  func(format string, args ...any)
}

// Client is a connection to a deCONZ gateway. It caches the light and
// group catalogs after the first fetch; RefreshCache discards the cache
// when up-to-date state matters more than request count.
//
// A Client is not safe for concurrent use: the CLI runs one command at
// a time, and the cache is a plain map.
type Client struct {
	host       string
	port       int
	apiKey     string
	transition int

	httpc  *http.Client
	debugf func(format string, args ...any)
	warnf  func(format string, args ...any)

	// Catalog caches, populated lazily. Nil means not fetched yet; an
	// empty map is a valid (empty) catalog.
	lights map[string]model.Light
	groups map[string]model.Group
}

// New creates a gateway client from the given options.
func New(opts Options) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}

	discard := func(string, ...any) {}
	debugf, warnf := opts.Debugf, opts.Warnf
	if debugf == nil {
		debugf = discard
	}
	if warnf == nil {
		warnf = discard
	}

	return &Client{
		host:       opts.Host,
		port:       opts.Port,
		apiKey:     opts.APIKey,
		transition: opts.TransitionTime,
		httpc:      httpc,
		debugf:     debugf,
		warnf:      warnf,
	}
}

// APIKey returns the key the client currently authenticates with. It is
// set either via Options or by a successful AcquireAPIKey.
func (c *Client) APIKey() string {
	return c.apiKey
}

// TransitionTime returns the fade time applied to state changes, in
// tenths of a second.
func (c *Client) TransitionTime() int {
	return c.transition
}

// RefreshCache discards the cached light and group catalogs so the next
// access refetches them from the gateway.
func (c *Client) RefreshCache() {
	c.lights = nil
	c.groups = nil
}

// api builds the URL for an API path. Parts are joined with slashes
// under the fixed /api prefix, e.g. api("KEY", "lights", "1", "state").
func (c *Client) api(parts ...string) string {
	return fmt.Sprintf("http://%s:%d/api/%s", c.host, c.port, strings.Join(parts, "/"))
}

// get issues a GET request and decodes the JSON response into out.
//
// A 403 means the API key was rejected; any other non-200 status is a
// general gateway error. Transport failures map to the gateway
// unreachable exit code so scripts can distinguish "wrong address" from
// "wrong key".
func (c *Client) get(ctx context.Context, out any, parts ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.api(parts...), nil)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return model.WrapCLIError(model.ExitGatewayUnreachable,
			fmt.Sprintf("gateway %s:%d did not respond", c.host, c.port), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return model.NewCLIError(model.ExitNotAuthorized,
			"gateway rejected the API key; acquire a new one with 'lighter config apikey'")
	}
	if resp.StatusCode != http.StatusOK {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("gateway returned status %d for %s", resp.StatusCode, req.URL.Path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}

// write issues a PUT or POST carrying a JSON body and returns the
// decoded per-attribute result entries together with the HTTP status.
//
// The gateway answers writes with 200 even when individual attributes
// fail, reporting per-attribute "error" entries instead; callers route
// those through logWriteResults. body may be nil for bodyless writes
// (scene store/recall).
func (c *Client) write(ctx context.Context, method string, body any, parts ...string) ([]writeEntry, int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode gateway request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.api(parts...), payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build gateway request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, model.WrapCLIError(model.ExitGatewayUnreachable,
			fmt.Sprintf("gateway %s:%d did not respond", c.host, c.port), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read gateway response: %w", err)
	}

	var entries []writeEntry
	// Some error statuses answer with a bare object instead of the
	// usual entry array; tolerate both and let the caller decide based
	// on the status code.
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			entries = nil
		}
	}

	return entries, resp.StatusCode, nil
}

// put issues a PUT write against the given path.
func (c *Client) put(ctx context.Context, body any, parts ...string) ([]writeEntry, int, error) {
	return c.write(ctx, http.MethodPut, body, parts...)
}

// AcquireAPIKey obtains a fresh API key from the gateway.
//
// The gateway only hands out keys while its link button ("Authenticate
// app" in the Phoscon web interface) has recently been pressed. Until
// then it answers 403, so this method keeps retrying once per second
// and tells the user what to do, until the context is cancelled.
//
// On success the client adopts the new key for subsequent requests and
// returns it.
func (c *Client) AcquireAPIKey(ctx context.Context) (string, error) {
	for {
		entries, status, err := c.write(ctx, http.MethodPost,
			map[string]string{"devicetype": DeviceType})
		if err != nil {
			return "", err
		}

		if status == http.StatusForbidden {
			c.warnf("gateway %s:%d responded with 403 (Forbidden): link button not pressed. "+
				"Please click 'Authenticate app' in the gateway web interface", c.host, c.port)

			select {
			case <-ctx.Done():
				return "", model.WrapCLIError(model.ExitNotAuthorized,
					"gave up waiting for the gateway link button", ctx.Err())
			case <-time.After(keyRetryInterval):
			}
			continue
		}

		if status != http.StatusOK || len(entries) == 0 || entries[0].Success == nil {
			return "", model.NewCLIError(model.ExitNotAuthorized,
				fmt.Sprintf("unexpected gateway answer (status %d) while requesting an API key", status))
		}

		key, ok := entries[0].Success["username"].(string)
		if !ok || key == "" {
			return "", model.NewCLIError(model.ExitNotAuthorized,
				"gateway answer carried no API key")
		}

		c.apiKey = key
		return key, nil
	}
}

// FullState pulls the complete gateway configuration: the whole
// document served under /api/<key>, including lights, groups, scenes,
// schedules and the gateway's own settings.
func (c *Client) FullState(ctx context.Context) (map[string]any, error) {
	var state map[string]any
	if err := c.get(ctx, &state, c.apiKey); err != nil {
		return nil, err
	}
	return state, nil
}

// PushConfig pushes gateway settings to /api/<key>/config. The map
// carries only the attributes to change; the gateway answers with the
// usual per-attribute entries.
func (c *Client) PushConfig(ctx context.Context, settings map[string]any) error {
	entries, status, err := c.put(ctx, settings, c.apiKey, "config")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("gateway refused the configuration push (status %d)", status))
	}

	c.logWriteResults("config", entries)
	return nil
}
