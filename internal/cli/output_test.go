// Package cli — output_test.go contains unit tests for the pure
// formatting functions used by the get-style commands.
//
// These tests verify data transformation logic without requiring a
// gateway or any external dependencies.
package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjos/lighter/internal/model"
)

// TestSortedKeys verifies the two summary orderings: ascending numeric
// identifiers and alphabetical asset names.
func TestSortedKeys(t *testing.T) {
	lights := map[string]model.Light{
		"10": {Name: "Entrance Plug"},
		"2":  {Name: "Office Ceiling"},
		"1":  {Name: "Office Window"},
	}
	name := func(l model.Light) string { return l.Name }

	assert.Equal(t, []string{"1", "2", "10"}, sortedKeys(lights, name, false))
	assert.Equal(t, []string{"10", "2", "1"}, sortedKeys(lights, name, true))
}

// TestSortedKeys_NonNumericIdentifiers verifies the fallback ordering
// when identifiers are not integers.
func TestSortedKeys_NonNumericIdentifiers(t *testing.T) {
	m := map[string]model.Light{"b": {}, "a": {}, "3": {}}
	got := sortedKeys(m, func(model.Light) string { return "" }, false)
	assert.Equal(t, []string{"3", "a", "b"}, got)
}

// TestLightSummary verifies the one-line light overview format.
func TestLightSummary(t *testing.T) {
	on := model.Light{
		Name: "Office Window", Type: "Color temperature light",
		Manufacturer: "IKEA of Sweden",
		State:        model.LightState{On: true},
	}
	assert.Equal(t,
		"1: Office Window (Color temperature light, IKEA of Sweden) [ON]",
		lightSummary("1", on))

	off := on
	off.State.On = false
	assert.Equal(t,
		"1: Office Window (Color temperature light, IKEA of Sweden) [OFF]",
		lightSummary("1", off))
}

// TestGroupSummary verifies the group overview line and its three-way
// aggregated state label.
func TestGroupSummary(t *testing.T) {
	group := model.Group{
		Name:   "Office",
		Lights: []string{"1", "2"},
		Scenes: []model.SceneRef{{ID: "1", Name: "Work"}},
	}

	group.State = model.GroupState{AllOn: true, AnyOn: true}
	assert.Equal(t, "1: Office (1 scenes, 2 lights) [ON]", groupSummary("1", group))

	group.State = model.GroupState{AnyOn: true}
	assert.Equal(t, "1: Office (1 scenes, 2 lights) [PARTIALLY ON]", groupSummary("1", group))

	group.State = model.GroupState{}
	assert.Equal(t, "1: Office (1 scenes, 2 lights) [OFF]", groupSummary("1", group))
}

// TestSortedSceneRefs verifies scene ordering by id and by name, and
// that the input slice is left untouched.
func TestSortedSceneRefs(t *testing.T) {
	scenes := []model.SceneRef{
		{ID: "10", Name: "Away"},
		{ID: "2", Name: "Work"},
		{ID: "1", Name: "Relax"},
	}

	byID := sortedSceneRefs(scenes, false)
	assert.Equal(t, []string{"1", "2", "10"}, sceneIDs(byID))

	byName := sortedSceneRefs(scenes, true)
	assert.Equal(t, []string{"10", "1", "2"}, sceneIDs(byName))

	// Input order survives.
	assert.Equal(t, "10", scenes[0].ID)
}

func sceneIDs(scenes []model.SceneRef) []string {
	ids := make([]string, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
	}
	return ids
}

// TestPrintJSON verifies the indented document format the get commands
// emit.
func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]string{"name": "Office"}))
	assert.Equal(t, "{\n    \"name\": \"Office\"\n}\n", buf.String())
}
