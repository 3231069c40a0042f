// Package cli — output.go holds the formatting helpers shared by the
// get-style commands: indented JSON dumps and the one-line summary
// formats for lights and groups.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/anjos/lighter/internal/model"
)

// printJSON writes v as indented JSON, the raw gateway document style
// the get commands default to.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// sortedKeys returns m's keys ordered numerically by identifier, or
// alphabetically by the extracted name when byName is set.
func sortedKeys[T any](m map[string]T, name func(T) string, byName bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	if byName {
		sort.Slice(keys, func(i, j int) bool {
			return name(m[keys[i]]) < name(m[keys[j]])
		})
		return keys
	}

	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr != nil || berr != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// lightSummary formats one light as "id: name (type, manufacturer) [ON|OFF]".
func lightSummary(id string, light model.Light) string {
	state := "OFF"
	if light.State.On {
		state = "ON"
	}
	return fmt.Sprintf("%s: %s (%s, %s) [%s]", id, light.Name, light.Type, light.Manufacturer, state)
}

// groupSummaryState reduces a group's aggregated state to a label.
func groupSummaryState(state model.GroupState) string {
	switch {
	case state.AllOn:
		return "ON"
	case state.AnyOn:
		return "PARTIALLY ON"
	default:
		return "OFF"
	}
}

// groupSummary formats one group as
// "id: name (N scenes, M lights) [ON|PARTIALLY ON|OFF]".
func groupSummary(id string, group model.Group) string {
	return fmt.Sprintf("%s: %s (%d scenes, %d lights) [%s]",
		id, group.Name, len(group.Scenes), len(group.Lights), groupSummaryState(group.State))
}

// sortedSceneRefs orders a group's scenes by identifier or name.
func sortedSceneRefs(scenes []model.SceneRef, byName bool) []model.SceneRef {
	out := append([]model.SceneRef{}, scenes...)
	sort.Slice(out, func(i, j int) bool {
		if byName {
			return out[i].Name < out[j].Name
		}
		a, aerr := strconv.Atoi(out[i].ID)
		b, berr := strconv.Atoi(out[j].ID)
		if aerr != nil || berr != nil {
			return out[i].ID < out[j].ID
		}
		return a < b
	})
	return out
}
