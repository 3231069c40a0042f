// Package cli — scenes.go implements the "lighter scenes" command group:
// listing, (re)defining and recalling gateway-stored scenes.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/scene"
)

// NewScenesCommand creates the "scenes" command group.
func NewScenesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Commands for dealing with individual scenes",
	}

	cmd.AddCommand(newScenesGetCommand())
	cmd.AddCommand(newScenesSetCommand())
	cmd.AddCommand(newScenesSetManyCommand())
	cmd.AddCommand(newScenesRecallCommand())

	return cmd
}

// scenesGetFlags holds the flag values for "scenes get".
type scenesGetFlags struct {
	sortName bool
}

func newScenesGetCommand() *cobra.Command {
	flags := &scenesGetFlags{}

	cmd := &cobra.Command{
		Use:   "get <id> [scene]",
		Short: "Gets information from some or all scenes in a group",
		Long: `Gets information from some or all scenes in a group.

` + selectorHelp + `

Examples:

  1. Gets information on all scenes available for a group (sort by id):

     $ lighter -v scenes get 1

  2. Gets information on all scenes available for a group (sort by name):

     $ lighter -v scenes get --sort-name Office

  3. Gets information about one specific scene (1) of a group (1):

     $ lighter -v scenes get 1 1`,

		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenesGet(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.sortName, "sort-name", "n", false,
		"Sort the listing by scene name instead of the integer identifier")

	return cmd
}

func runScenesGet(ctx context.Context, flags *scenesGetFlags, args []string) error {
	groupSel, err := model.ParseSelector(args[0])
	if err != nil {
		return err
	}
	sceneSel := model.All
	if len(args) > 1 {
		if sceneSel, err = model.ParseSelector(args[1]); err != nil {
			return err
		}
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	scenes, err := client.Scenes(ctx, groupSel, sceneSel)
	if err != nil {
		return err
	}

	for _, groupID := range sortedKeys(scenes, func([]model.SceneRef) string { return "" }, false) {
		fmt.Printf("Group: %s\n", groupID)
		if err := printJSON(os.Stdout, sortedSceneRefs(scenes[groupID], flags.sortName)); err != nil {
			return err
		}
	}
	return nil
}

func newScenesSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <id> <scene> <file.yaml>",
		Short: "Resets a scene by id or name",
		Long: `Resets a scene by id or name.

The group's lights are driven to the states listed in the YAML file and
the result is stored on the gateway under the given scene. The previous
state of the lights in the group is recovered afterwards.

` + sceneFileHelp + `

Examples:

  1. Sets scene 2 from group 1 to the values indicated in the YAML file:

     $ lighter -v scenes set 1 2 file.yaml

  2. Sets scene "Relax" on "Living room":

     $ lighter -v scenes set "Living room" "Relax" file.yaml`,

		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenesSet(cmd.Context(), args[0], args[1], args[2])
		},
	}
	return cmd
}

func runScenesSet(ctx context.Context, groupToken, sceneToken, path string) error {
	groupSel, err := model.ParseSelector(groupToken)
	if err != nil {
		return err
	}
	sceneSel, err := model.ParseSelector(sceneToken)
	if err != nil {
		return err
	}

	entries, err := scene.Load(path)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	if err := client.SetScene(ctx, groupSel, sceneSel, entries); err != nil {
		return err
	}
	VerboseLog("Stored scene %q on group %q", sceneToken, groupToken)
	return nil
}

func newScenesSetManyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setmany <file.yaml>",
		Short: "Resets all listed scenes",
		Long: `Resets all listed scenes.

After setting each scene, the previous state of the lights is
recovered. The input file nests the single-scene format twice:

  <group 0>:
    <scene 0>:
      <light>: <values>
      <light>: <values>
    <scene 1>:
      <light>: <values>
  <group 1>:
    <scene 0>:
      <light>: <values>

Keys for groups and scenes may be integer or string identifiers. Keys
for each light may be integer, string or regular expressions.

Examples:

  1. Sets multiple scenes at once:

     $ lighter -v scenes setmany file.yaml`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenesSetMany(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runScenesSetMany(ctx context.Context, path string) error {
	groups, err := scene.LoadMany(path)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	// Scenes apply in file order, group by group.
	for _, groupScenes := range groups {
		for _, sceneStates := range groupScenes.Scenes {
			if err := client.SetScene(ctx, groupScenes.Group, sceneStates.Scene, sceneStates.Entries); err != nil {
				return err
			}
			VerboseLog("Stored scene %s on group %s",
				sceneStates.Scene.String(), groupScenes.Group.String())
		}
	}
	return nil
}

func newScenesRecallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall <id> <scene>",
		Short: "Recalls a scene by id or name",
		Long: `Recalls a scene by id or name.

Examples:

  1. Recalls scene 2 from group 1:

     $ lighter -v scenes recall 1 2

  2. Recalls scene "Relax" on "Living room":

     $ lighter -v scenes recall "Living room" "Relax"`,

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenesRecall(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}

func runScenesRecall(ctx context.Context, groupToken, sceneToken string) error {
	groupSel, err := model.ParseSelector(groupToken)
	if err != nil {
		return err
	}
	sceneSel, err := model.ParseSelector(sceneToken)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	if err := client.RecallScene(ctx, groupSel, sceneSel); err != nil {
		return err
	}
	VerboseLog("Recalled scene %q on group %q", sceneToken, groupToken)
	return nil
}
