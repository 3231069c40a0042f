// Package scene parses the YAML scene files consumed by the "groups
// scene" and "scenes set/setmany" commands.
//
// A scene file is a YAML mapping from a light selector (integer id, name
// or /regexp/) to a whitespace-separated list of state keywords:
//
//	/.*/: off
//	Office Window: on 60% natural
//	/Office ceiling.*/: on 100% cool
//
// Entry order is significant: the file above first turns every group
// light off, then lights selected entries back up. A plain
// map[string]string would lose that ordering, so parsing uses the
// yaml.v3 Node API, which preserves document order (and duplicate keys).
package scene

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anjos/lighter/internal/model"
)

// Entry is one ordered scene-file line: the lights it selects and the
// state keywords applied to them.
type Entry struct {
	// Selector picks the affected lights, evaluated against the group's
	// member lights (not the whole server).
	Selector model.Selector

	// Words are the state keywords, already split on whitespace.
	Words []string
}

// GroupScenes is one group block of a multi-scene file: the group it
// addresses and the scenes to (re)store for it, in document order.
type GroupScenes struct {
	Group  model.Selector
	Scenes []SceneStates
}

// SceneStates is one scene block of a multi-scene file.
type SceneStates struct {
	Scene   model.Selector
	Entries []Entry
}

// Load reads and decodes a single-scene YAML file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Decode(data)
}

// Decode parses scene entries from YAML, preserving document order.
func Decode(data []byte) ([]Entry, error) {
	mapping, err := rootMapping(data)
	if err != nil {
		return nil, err
	}
	return decodeEntries(mapping)
}

// LoadMany reads and decodes a multi-scene YAML file, organized as
// group → scene → (light selector → keywords).
func LoadMany(path string) ([]GroupScenes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return DecodeMany(data)
}

// DecodeMany parses a nested multi-scene document, preserving order at
// every level.
func DecodeMany(data []byte) ([]GroupScenes, error) {
	mapping, err := rootMapping(data)
	if err != nil {
		return nil, err
	}

	var groups []GroupScenes
	for i := 0; i < len(mapping.Content); i += 2 {
		keyNode, valNode := mapping.Content[i], mapping.Content[i+1]

		groupSel, err := ParseSelector(keyNode.Value)
		if err != nil {
			return nil, err
		}
		if valNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("group %q: expected a mapping of scenes (line %d)",
				keyNode.Value, valNode.Line)
		}

		group := GroupScenes{Group: groupSel}
		for j := 0; j < len(valNode.Content); j += 2 {
			sceneKey, sceneVal := valNode.Content[j], valNode.Content[j+1]

			sceneSel, err := ParseSelector(sceneKey.Value)
			if err != nil {
				return nil, err
			}
			if sceneVal.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("scene %q: expected a mapping of light states (line %d)",
					sceneKey.Value, sceneVal.Line)
			}
			entries, err := decodeEntries(sceneVal)
			if err != nil {
				return nil, fmt.Errorf("scene %q: %w", sceneKey.Value, err)
			}

			group.Scenes = append(group.Scenes, SceneStates{Scene: sceneSel, Entries: entries})
		}

		groups = append(groups, group)
	}

	return groups, nil
}

// rootMapping unmarshals YAML bytes and returns the top-level mapping
// node. yaml.Node wraps the content in a document node, which is
// unwrapped here.
func rootMapping(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("scene file must contain exactly one YAML document")
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("scene file must be a YAML mapping (line %d)", mapping.Line)
	}
	return mapping, nil
}

// decodeEntries converts a mapping node's key/value pairs into ordered
// entries. Mapping node content alternates key and value nodes.
func decodeEntries(mapping *yaml.Node) ([]Entry, error) {
	var entries []Entry
	for i := 0; i < len(mapping.Content); i += 2 {
		keyNode, valNode := mapping.Content[i], mapping.Content[i+1]

		sel, err := ParseSelector(keyNode.Value)
		if err != nil {
			return nil, err
		}
		if valNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("state for %q must be a string of keywords (line %d)",
				keyNode.Value, valNode.Line)
		}

		words := strings.Fields(valNode.Value)
		if len(words) == 0 {
			return nil, fmt.Errorf("state for %q is empty (line %d)", keyNode.Value, valNode.Line)
		}

		entries = append(entries, Entry{Selector: sel, Words: words})
	}
	return entries, nil
}

// ParseSelector wraps model.ParseSelector with the line-oriented error
// text used for scene files.
func ParseSelector(token string) (model.Selector, error) {
	sel, err := model.ParseSelector(token)
	if err != nil {
		return model.Selector{}, fmt.Errorf("invalid scene key %q: %w", token, err)
	}
	return sel, nil
}
