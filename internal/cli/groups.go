// Package cli — groups.go implements the "lighter groups" command group:
// querying, renaming, membership management and state control of
// light/switch groups.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anjos/lighter/internal/deconz"
	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/scene"
)

// sceneFileHelp documents the ordered YAML scene format consumed by
// "groups scene" and the scenes commands.
const sceneFileHelp = `The input file must be a YAML dictionary mapping the state of the
various lights. Keys must be light identifiers (name or integer id), or
a regular expression (prefix/suffix it with the character '/'). Order
matters. Example:

  /.*/: off
  Office Window: on 60% natural
  /Office ceiling.*/: on 100% cool

This would first turn off all lights, then turn on the light named
"Office Window" to 60% on natural lighting, then turn on all lights in
the group matching the regular expression "Office ceiling.*" to 100% on
cool lighting.`

// NewGroupsCommand creates the "groups" command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Commands for dealing with individual light/switch groups",
	}

	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsNameCommand())
	cmd.AddCommand(newGroupsMemberCommand())
	cmd.AddCommand(newGroupsStateCommand())
	cmd.AddCommand(newGroupsSceneCommand())

	return cmd
}

// groupsGetFlags holds the flag values for "groups get".
type groupsGetFlags struct {
	summary  bool
	sortName bool
}

func newGroupsGetCommand() *cobra.Command {
	flags := &groupsGetFlags{}

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Gets information from some or all groups in the gateway",
		Long: `Gets information from some or all groups in the gateway.

` + selectorHelp + `

Examples:

  1. Gets information on all groups available (sort by id):

     $ lighter -v groups get

  2. Summarizes all groups, sorted by name:

     $ lighter -v groups get --summary --sort-name

  3. Gets information about one specific group (includes its state):

     $ lighter -v groups get 1`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroupsGet(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.summary, "summary", "s", false,
		"Summarize in a human readable way instead of outputting the JSON response")
	cmd.Flags().BoolVarP(&flags.sortName, "sort-name", "n", false,
		"Sort the summary by asset name instead of the integer identifier")

	return cmd
}

func runGroupsGet(ctx context.Context, flags *groupsGetFlags, args []string) error {
	sel, err := selectorFromArgs(args)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	groups, err := client.Groups(ctx, sel)
	if err != nil {
		return err
	}

	if !flags.summary {
		return printJSON(os.Stdout, groups)
	}

	// The summary cross-matches the full light catalog so each group
	// member can be listed with its own state.
	lights, err := client.Lights(ctx, model.All)
	if err != nil {
		return err
	}

	for _, id := range sortedKeys(groups, func(g model.Group) string { return g.Name }, flags.sortName) {
		group := groups[id]
		fmt.Println(groupSummary(id, group))

		fmt.Println("  Scenes:")
		for _, ref := range sortedSceneRefs(group.Scenes, flags.sortName) {
			fmt.Printf("    %s: %s\n", ref.ID, ref.Name)
		}

		fmt.Println("  Lights:")
		members := make(map[string]model.Light)
		for _, lid := range group.Lights {
			if light, ok := lights[lid]; ok {
				members[lid] = light
			}
		}
		for _, lid := range sortedKeys(members, func(l model.Light) string { return l.Name }, flags.sortName) {
			fmt.Printf("    %s\n", lightSummary(lid, members[lid]))
		}
	}
	return nil
}

func newGroupsNameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name <id> <value>",
		Short: "Sets the name of a particular group",
		Long: `Sets the name of a particular group.

` + selectorHelp + `

Examples:

  1. Renames a particular group by integer identifier:

     $ lighter -v groups name 1 "new name"

  2. Renames a particular group by name:

     $ lighter -v groups name "old name" "new name"`,

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroupsName(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}

func runGroupsName(ctx context.Context, token, value string) error {
	sel, err := model.ParseSelector(token)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	affected, err := client.SetGroupAttrs(ctx, sel, deconz.GroupAttrs{Name: &value})
	if err != nil {
		return err
	}
	if affected == 0 {
		WarnLog("No groups affected by attribute change (%q matched nothing)", token)
	}
	VerboseLog("Renamed %d group(s)", affected)
	return nil
}

func newGroupsMemberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member <id> [values]...",
		Short: "Sets the membership of a particular group",
		Long: `Sets the membership of a particular group.

Each value selects lights by integer id, name or regular expression.
Membership is set cumulatively across all given values. Passing no
values removes every light from the group.

Examples:

  1. Adds devices 1, 2 and 3 to group 32:

     $ lighter -v groups member 32 1 2 3

  2. Adds all devices with names starting with "Office" to the "Office"
     group:

     $ lighter -v groups member "Office" "/Office.*/"

  3. Membership is set cumulatively. This command sets all lights with
     names starting with "Living" and "Corridor" to the group
     "Living room":

     $ lighter -v groups member "Living room" "/Living.*/" "/Corridor.*/"

  4. Remove all lights from a given group:

     $ lighter -v groups member "Living room"`,

		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroupsMember(cmd.Context(), args[0], args[1:])
		},
	}
	return cmd
}

func runGroupsMember(ctx context.Context, token string, values []string) error {
	sel, err := model.ParseSelector(token)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	// A non-nil empty token list clears the membership.
	if values == nil {
		values = []string{}
	}

	affected, err := client.SetGroupAttrs(ctx, sel, deconz.GroupAttrs{LightTokens: values})
	if err != nil {
		return err
	}
	if affected == 0 {
		WarnLog("No groups affected by attribute change (%q matched nothing)", token)
	}
	VerboseLog("Updated membership of %d group(s)", affected)
	return nil
}

func newGroupsStateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state <id> <values>...",
		Short: "Sets the state of a particular group",
		Long: `Sets the state of a particular group.

Through this command, you can only set the state of the whole group at
once. Discrete light assignments are not possible; use "groups scene"
for that.

` + stateValuesHelp + `

Examples:

  1. Turns on a particular group:

     $ lighter -v groups state 1 on

  2. Turns a group on with a given brightness and color temperature:

     $ lighter -v groups state 1 on 90% cool

  3. Turns all groups off:

     $ lighter -v groups state '/.*/' off`,

		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroupsState(cmd.Context(), args[0], args[1:])
		},
	}
	return cmd
}

func runGroupsState(ctx context.Context, token string, words []string) error {
	sel, err := model.ParseSelector(token)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	affected, err := client.SetGroupState(ctx, sel, words)
	if err != nil {
		return err
	}
	if affected == 0 {
		WarnLog("No group matched %q", token)
	}
	VerboseLog("Updated %d group(s)", affected)
	return nil
}

func newGroupsSceneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene <id> <file.yaml>",
		Short: "Sets the state of a particular group to a particular scene",
		Long: `Sets the state of a particular group to a particular scene.

Through this command, you can set the state of the whole group
discretely, light by light.

` + sceneFileHelp + `

` + stateValuesHelp + `

Examples:

  1. Sets up multiple lights in a group to a particular state:

     $ lighter -v groups scene 1 file.yaml

  2. Sets up multiple lights in a group by name:

     $ lighter -v groups scene Office file.yaml`,

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroupsScene(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}

func runGroupsScene(ctx context.Context, token, path string) error {
	sel, err := model.ParseSelector(token)
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

	affected, err := client.ApplyGroupScene(ctx, sel, entries)
	if err != nil {
		return err
	}
	if affected == 0 {
		WarnLog("No group matched %q", token)
	}
	VerboseLog("Applied scene file %s to %d group(s)", path, affected)
	return nil
}
