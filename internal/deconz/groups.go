package deconz

import (
	"context"
	"net/http"

	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/scene"
	"github.com/anjos/lighter/internal/state"
)

// cacheGroups returns the group catalog, fetching it from the gateway
// on first use. force discards the cached copy.
func (c *Client) cacheGroups(ctx context.Context, force bool) (map[string]model.Group, error) {
	if c.groups == nil || force {
		var groups map[string]model.Group
		if err := c.get(ctx, &groups, c.apiKey, "groups"); err != nil {
			return nil, err
		}
		c.groups = groups
	}
	return c.groups, nil
}

// Groups returns the groups matching the selector, keyed by their
// string-integer gateway identifier. The match-all selector returns
// the complete catalog.
func (c *Client) Groups(ctx context.Context, sel model.Selector) (map[string]model.Group, error) {
	all, err := c.cacheGroups(ctx, false)
	if err != nil {
		return nil, err
	}
	if sel.IsAll() {
		return all, nil
	}

	matched := make(map[string]model.Group)
	for id, group := range all {
		if sel.Matches(id, group.Name) {
			matched[id] = group
		}
	}
	c.debugf("returning %d out of %d total groups", len(matched), len(all))
	return matched, nil
}

// GroupAttrs carries a partial group attribute change. Nil fields stay
// untouched on the gateway. LightTokens, when non-nil, is a list of
// light selector tokens resolved additively into the new membership;
// an empty non-nil list clears the group.
type GroupAttrs struct {
	Name        *string
	LightTokens []string
	Hidden      *bool
}

// SetGroupAttrs applies an attribute change to every group matching the
// selector and returns the number of groups affected.
func (c *Client) SetGroupAttrs(ctx context.Context, sel model.Selector, attrs GroupAttrs) (int, error) {
	affected, err := c.Groups(ctx, sel)
	if err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}

	update := model.GroupAttrUpdate{Name: attrs.Name, Hidden: attrs.Hidden}
	if attrs.LightTokens != nil {
		c.debugf("resolving %d light identity items", len(attrs.LightTokens))
		ids, err := c.ResolveLightIDs(ctx, attrs.LightTokens)
		if err != nil {
			return 0, err
		}
		c.debugf("%d lights will be assigned to the group", len(ids))
		if ids == nil {
			// An empty (but present) list clears the group.
			ids = []string{}
		}
		update.Lights = &ids
	}

	for _, id := range sortedIDs(affected) {
		entries, status, err := c.put(ctx, update, c.apiKey, "groups", id)
		if err != nil {
			return 0, err
		}
		if status != http.StatusOK {
			c.warnf("unable to set group %s attributes (status %d)", id, status)
		}
		c.logWriteResults("group "+id, entries)
	}

	// Renames and membership changes invalidate the cached catalog.
	c.groups = nil
	return len(affected), nil
}

// SetGroupState applies a keyword list to every group matching the
// selector as a single group action, and returns the number of groups
// affected. The whole group receives one translation computed against
// the conservative group color temperature bounds.
func (c *Client) SetGroupState(ctx context.Context, sel model.Selector, words []string) (int, error) {
	affected, err := c.Groups(ctx, sel)
	if err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}

	update, warnings, err := state.Translate(words, state.ForGroup(), c.transition)
	if err != nil {
		return 0, err
	}
	for _, w := range warnings {
		c.warnf("group state: %s", w)
	}

	for _, id := range sortedIDs(affected) {
		entries, status, err := c.put(ctx, update, c.apiKey, "groups", id, "action")
		if err != nil {
			return 0, err
		}
		if status != http.StatusOK {
			c.warnf("unable to set group %s state (status %d)", id, status)
		}
		c.logWriteResults("group "+id, entries)
	}

	return len(affected), nil
}

// GroupLights returns the lights belonging to the groups matching the
// selector, keyed by light identifier.
func (c *Client) GroupLights(ctx context.Context, sel model.Selector) (map[string]model.Light, error) {
	affected, err := c.Groups(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(affected) == 0 {
		return map[string]model.Light{}, nil
	}

	members := make(map[string]model.Light)
	for _, group := range affected {
		lights, err := c.lightsByID(ctx, group.Lights)
		if err != nil {
			return nil, err
		}
		for id, light := range lights {
			members[id] = light
		}
	}
	return members, nil
}

// lightsByID selects lights from the full catalog by their
// string-integer identifiers.
func (c *Client) lightsByID(ctx context.Context, ids []string) (map[string]model.Light, error) {
	all, err := c.cacheLights(ctx, false)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]model.Light)
	for _, id := range ids {
		if light, ok := all[id]; ok {
			selected[id] = light
		}
	}
	return selected, nil
}

// ApplyGroupScene applies ordered scene entries to the lights of every
// group matching the selector.
//
// Each entry's selector is evaluated against the group's member lights
// only, so "/.*/" means "all lights of this group" rather than all
// lights on the gateway. Entries are applied in file order; later
// entries override earlier ones for the lights they match.
func (c *Client) ApplyGroupScene(ctx context.Context, sel model.Selector, entries []scene.Entry) (int, error) {
	affected, err := c.Groups(ctx, sel)
	if err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}

	for _, gid := range sortedIDs(affected) {
		members, err := c.lightsByID(ctx, affected[gid].Lights)
		if err != nil {
			return 0, err
		}

		for _, entry := range entries {
			matched := make(map[string]model.Light)
			for id, light := range members {
				if entry.Selector.Matches(id, light.Name) {
					matched[id] = light
				}
			}
			if len(matched) == 0 {
				c.warnf("group %s: scene entry %s matches no member light",
					gid, entry.Selector)
				continue
			}
			if err := c.applyStates(ctx, matched, entry.Words); err != nil {
				return 0, err
			}
		}
	}

	return len(affected), nil
}
