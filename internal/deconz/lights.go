package deconz

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/state"
)

// cacheLights returns the light catalog, fetching it from the gateway
// on first use. force discards the cached copy.
func (c *Client) cacheLights(ctx context.Context, force bool) (map[string]model.Light, error) {
	if c.lights == nil || force {
		var lights map[string]model.Light
		if err := c.get(ctx, &lights, c.apiKey, "lights"); err != nil {
			return nil, err
		}
		c.lights = lights
	}
	return c.lights, nil
}

// Lights returns the lights and switches matching the selector, keyed
// by their string-integer gateway identifier. The match-all selector
// returns the complete catalog.
func (c *Client) Lights(ctx context.Context, sel model.Selector) (map[string]model.Light, error) {
	all, err := c.cacheLights(ctx, false)
	if err != nil {
		return nil, err
	}
	if sel.IsAll() {
		return all, nil
	}

	matched := make(map[string]model.Light)
	for id, light := range all {
		if sel.Matches(id, light.Name) {
			matched[id] = light
		}
	}
	c.debugf("returning %d out of %d total lights/switches", len(matched), len(all))
	return matched, nil
}

// SetLightName renames every light matching the selector and returns
// the number of lights affected. Zero affected lights is not an error;
// the caller decides whether to warn.
func (c *Client) SetLightName(ctx context.Context, sel model.Selector, name string) (int, error) {
	affected, err := c.Lights(ctx, sel)
	if err != nil {
		return 0, err
	}

	for _, id := range sortedIDs(affected) {
		entries, status, err := c.put(ctx, map[string]string{"name": name},
			c.apiKey, "lights", id)
		if err != nil {
			return 0, err
		}
		if status != http.StatusOK {
			c.warnf("unable to set light %s name (status %d)", id, status)
		}
		c.logWriteResults("light "+id, entries)
	}

	// Renames invalidate the cached catalog — selectors match on names.
	c.lights = nil
	return len(affected), nil
}

// SetLightState applies a keyword list to every light matching the
// selector and returns the number of lights affected. Translation is
// per-light: each device's type and color temperature bounds decide
// which attributes it receives.
func (c *Client) SetLightState(ctx context.Context, sel model.Selector, words []string) (int, error) {
	affected, err := c.Lights(ctx, sel)
	if err != nil {
		return 0, err
	}
	if err := c.applyStates(ctx, affected, words); err != nil {
		return 0, err
	}
	return len(affected), nil
}

// applyStates translates and writes a keyword list to each light of a
// precomputed set, in identifier order.
func (c *Client) applyStates(ctx context.Context, lights map[string]model.Light, words []string) error {
	for _, id := range sortedIDs(lights) {
		light := lights[id]
		update, warnings, err := state.Translate(words, state.ForLight(&light), c.transition)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			c.warnf("light %s (%s): %s", id, light.Name, w)
		}
		if err := c.putLightState(ctx, id, update); err != nil {
			return err
		}
	}
	return nil
}

// putLightState writes one state update to a single light. The update
// is either a typed model.StateUpdate (keyword translation) or a raw
// attribute map (state restoration).
func (c *Client) putLightState(ctx context.Context, id string, update any) error {
	entries, status, err := c.put(ctx, update, c.apiKey, "lights", id, "state")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		c.warnf("unable to set light %s state (status %d)", id, status)
	}
	c.logWriteResults("light "+id, entries)
	return nil
}

// rawLightDoc is the undecoded portion of a /lights entry used for
// state snapshots. Keeping the state as a plain map preserves
// attributes the typed model does not track (hue, sat, xy, effect on
// color lights), so a restore can re-apply them verbatim.
type rawLightDoc struct {
	State map[string]any `json:"state"`
}

// SnapshotLightStates captures the raw state documents of the given
// lights, keyed by identifier. Lights unknown to the gateway are
// silently absent from the result.
func (c *Client) SnapshotLightStates(ctx context.Context, ids []string) (map[string]map[string]any, error) {
	var raw map[string]rawLightDoc
	if err := c.get(ctx, &raw, c.apiKey, "lights"); err != nil {
		return nil, err
	}

	snapshot := make(map[string]map[string]any, len(ids))
	for _, id := range ids {
		if doc, ok := raw[id]; ok && doc.State != nil {
			snapshot[id] = doc.State
		}
	}
	return snapshot, nil
}

// SnapshotGroupLightStates captures the raw state documents of every
// member light of the groups matching the selector.
func (c *Client) SnapshotGroupLightStates(ctx context.Context, sel model.Selector) (map[string]map[string]any, error) {
	groups, err := c.Groups(ctx, sel)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, id := range group.Lights {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return c.SnapshotLightStates(ctx, ids)
}

// RestoreLightStates re-applies a previously captured set of raw light
// states, as used by scene storage to put the room back the way it was.
//
// The whole captured document is re-applied, minus the read-only
// attributes (reachable, colormode) and transient effects (alert); the
// client's transition time is added so the restoration fades like any
// other change. On/off-only units receive nothing but "on".
func (c *Client) RestoreLightStates(ctx context.Context, snapshot map[string]map[string]any) error {
	lights, err := c.cacheLights(ctx, false)
	if err != nil {
		return err
	}

	for _, id := range sortedIDs(snapshot) {
		update := make(map[string]any, len(snapshot[id])+1)
		for k, v := range snapshot[id] {
			update[k] = v
		}
		delete(update, "alert")
		delete(update, "reachable")
		delete(update, "colormode")

		if light, ok := lights[id]; ok && light.IsSwitch() {
			update = map[string]any{"on": update["on"]}
		} else {
			update["transitiontime"] = c.transition
		}

		if err := c.putLightState(ctx, id, update); err != nil {
			return err
		}
	}
	return nil
}

// ResolveLightIDs resolves a list of selector tokens into gateway light
// identifiers, additively and in input order, de-duplicating while
// preserving first occurrence. This is how group membership lists are
// built: "member Office '/Office.*/' 12" accumulates all three.
func (c *Client) ResolveLightIDs(ctx context.Context, tokens []string) ([]string, error) {
	seen := make(map[string]struct{})
	var ids []string

	for _, token := range tokens {
		sel, err := model.ParseSelector(token)
		if err != nil {
			return nil, err
		}
		matched, err := c.Lights(ctx, sel)
		if err != nil {
			return nil, err
		}
		for _, id := range sortedIDs(matched) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// sortedIDs returns the map's keys in ascending numeric order.
// Gateway identifiers are decimal strings, so a plain string sort would
// put "10" before "2"; non-numeric keys (which the gateway does not
// produce) sort last, lexicographically.
func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}
