package deconz

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/scene"
)

// Scenes returns, per matched group, the scenes matching sceneSel.
// Scene identifiers are only unique within a group, which is why the
// result stays keyed by group identifier.
func (c *Client) Scenes(ctx context.Context, groupSel, sceneSel model.Selector) (map[string][]model.SceneRef, error) {
	groups, err := c.Groups(ctx, groupSel)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]model.SceneRef)
	for id, group := range groups {
		var scenes []model.SceneRef
		for _, s := range group.Scenes {
			if sceneSel.Matches(s.ID, s.Name) {
				scenes = append(scenes, s)
			}
		}
		result[id] = scenes
	}
	return result, nil
}

// resolveOneScene resolves group and scene selectors to exactly one
// group and exactly one of its scenes. Storing or recalling against an
// ambiguous selection would hit the wrong room, so both zero and
// multiple matches are errors.
func (c *Client) resolveOneScene(ctx context.Context, groupSel, sceneSel model.Selector) (groupID string, group model.Group, sceneID string, err error) {
	groups, err := c.Groups(ctx, groupSel)
	if err != nil {
		return "", model.Group{}, "", err
	}
	if len(groups) == 0 {
		return "", model.Group{}, "", model.NewCLIError(model.ExitNoMatch,
			fmt.Sprintf("no group matches %s", groupSel))
	}
	if len(groups) > 1 {
		return "", model.Group{}, "", model.NewCLIError(model.ExitNoMatch,
			fmt.Sprintf("scene operations affect one group at a time; %s selected %d groups",
				groupSel, len(groups)))
	}

	for id, g := range groups {
		groupID, group = id, g
	}

	var candidates []model.SceneRef
	for _, s := range group.Scenes {
		if sceneSel.Matches(s.ID, s.Name) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return "", model.Group{}, "", model.NewCLIError(model.ExitNoMatch,
			fmt.Sprintf("no scene of group %q matches %s", group.Name, sceneSel))
	}
	if len(candidates) > 1 {
		return "", model.Group{}, "", model.NewCLIError(model.ExitNoMatch,
			fmt.Sprintf("scene operations affect one scene at a time; %s selected %d scenes",
				sceneSel, len(candidates)))
	}

	return groupID, group, candidates[0].ID, nil
}

// StoreScene captures the current state of a group's lights into an
// existing scene slot on the gateway. The selectors must resolve to
// exactly one group and exactly one scene.
func (c *Client) StoreScene(ctx context.Context, groupSel, sceneSel model.Selector) error {
	groupID, group, sceneID, err := c.resolveOneScene(ctx, groupSel, sceneSel)
	if err != nil {
		return err
	}

	entries, status, err := c.put(ctx, nil, c.apiKey, "groups", groupID, "scenes", sceneID, "store")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unable to store scene %s of group %q (status %d)", sceneID, group.Name, status))
	}

	c.logWriteResults(fmt.Sprintf("scene %s/%s", groupID, sceneID), entries)
	return nil
}

// RecallScene applies a stored scene to its group. The selectors must
// resolve to exactly one group and exactly one scene.
func (c *Client) RecallScene(ctx context.Context, groupSel, sceneSel model.Selector) error {
	groupID, group, sceneID, err := c.resolveOneScene(ctx, groupSel, sceneSel)
	if err != nil {
		return err
	}

	entries, status, err := c.put(ctx, nil, c.apiKey, "groups", groupID, "scenes", sceneID, "recall")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unable to recall scene %s of group %q (status %d)", sceneID, group.Name, status))
	}

	c.logWriteResults(fmt.Sprintf("scene %s/%s", groupID, sceneID), entries)
	return nil
}

// SetScene redefines a stored scene from an ordered entry list.
//
// The gateway can only capture a scene from live light state, so the
// procedure is: snapshot the group's current light states, drive the
// lights into the scene described by the entries, store the scene slot,
// then restore the snapshot so running this command does not visibly
// rearrange the room (beyond the transient change while it works).
func (c *Client) SetScene(ctx context.Context, groupSel, sceneSel model.Selector, entries []scene.Entry) error {
	// Resolve first: a bad selector should fail before any light is
	// touched.
	if _, _, _, err := c.resolveOneScene(ctx, groupSel, sceneSel); err != nil {
		return err
	}

	snapshot, err := c.SnapshotGroupLightStates(ctx, groupSel)
	if err != nil {
		return err
	}

	if _, err := c.ApplyGroupScene(ctx, groupSel, entries); err != nil {
		return err
	}
	if err := c.StoreScene(ctx, groupSel, sceneSel); err != nil {
		return err
	}

	return c.RestoreLightStates(ctx, snapshot)
}
