// Package cli — lights.go implements the "lighter lights" command group:
// querying, renaming and driving individual lights and switches.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anjos/lighter/internal/model"
)

// stateValuesHelp documents the state keyword language. It is shared
// by every command that accepts state words.
const stateValuesHelp = `Valid values are among the following (that could be given in any order):

  * value="on" or "off": light or switch is turned ON or OFF
  * value="0%" to "100%": brightness
  * value="2000k" to "6500k": white temperature
  * value="candle|warm|warm+|soft|natural|cool|day-|day": white temperature
    in the following ranges candle=2000K, warm=2700K, warm+=3000K,
    soft=3500K, natural=3700K, cool=4000K, day-=5000K, day=6500K
  * value="alert": turns lamp alert mode ON (for a few seconds)`

// selectorHelp documents the identifier argument accepted everywhere.
const selectorHelp = `Identifiers may be an integer id, a (case-insensitive) asset name, or a
regular expression delimited by '/' characters, e.g. '/^Office.*/'.`

// NewLightsCommand creates the "lights" command group.
func NewLightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lights",
		Short: "Commands for dealing with individual lights",
	}

	cmd.AddCommand(newLightsGetCommand())
	cmd.AddCommand(newLightsNameCommand())
	cmd.AddCommand(newLightsStateCommand())

	return cmd
}

// lightsGetFlags holds the flag values for "lights get".
type lightsGetFlags struct {
	// summary switches from the JSON dump to one-line overviews.
	summary bool

	// sortName orders the overview by asset name instead of id.
	sortName bool
}

func newLightsGetCommand() *cobra.Command {
	flags := &lightsGetFlags{}

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Gets information from some or all lights in the gateway",
		Long: `Gets information from some or all lights in the gateway.

` + selectorHelp + `

Examples:

  1. Gets information on all lights/switches available (sort by id):

     $ lighter -v lights get

  2. Gets information on all lights/switches available, summary only:

     $ lighter -v lights get --summary

  3. Gets information on all lights/switches available (sort by name):

     $ lighter -v lights get --summary --sort-name

  4. Gets information about one specific light (includes its state):

     $ lighter -v lights get 1

  5. Gets information about one or more lights by regular expression:

     $ lighter -v lights get '/^Entrance.*$/' --summary`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLightsGet(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.summary, "summary", "s", false,
		"Summarize in a human readable way instead of outputting the JSON response")
	cmd.Flags().BoolVarP(&flags.sortName, "sort-name", "n", false,
		"Sort the summary by asset name instead of the integer identifier")

	return cmd
}

func runLightsGet(ctx context.Context, flags *lightsGetFlags, args []string) error {
	sel, err := selectorFromArgs(args)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	lights, err := client.Lights(ctx, sel)
	if err != nil {
		return err
	}

	if !flags.summary {
		return printJSON(os.Stdout, lights)
	}

	for _, id := range sortedKeys(lights, func(l model.Light) string { return l.Name }, flags.sortName) {
		fmt.Println(lightSummary(id, lights[id]))
	}
	return nil
}

func newLightsNameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name <id> <value>",
		Short: "Sets the name of a particular light/switch",
		Long: `Sets the name of a particular light/switch.

` + selectorHelp + `

Examples:

  1. Renames a particular light/switch by integer identifier:

     $ lighter -v lights name 1 "new name"

  2. Renames a particular light/switch by name:

     $ lighter -v lights name "old name" "new name"

  3. Renames by regular expression (this may affect multiple lights):

     $ lighter -v lights name "/^old.*/" "new name"`,

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLightsName(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}

func runLightsName(ctx context.Context, token, value string) error {
	sel, err := model.ParseSelector(token)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	affected, err := client.SetLightName(ctx, sel, value)
	if err != nil {
		return err
	}
	if affected == 0 {
		WarnLog("No lights affected by name change (%q matched nothing)", token)
	}
	VerboseLog("Renamed %d light(s)", affected)
	return nil
}

func newLightsStateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state <id> <values>...",
		Short: "Sets the state of a particular light/switch",
		Long: `Sets the state of a particular light/switch.

` + stateValuesHelp + `

Examples:

  1. Turns on a particular light/switch:

     $ lighter -v lights state 1 on

  2. Turns off a particular light/switch:

     $ lighter -v lights state 1 off

  3. Turns a light on with a given brightness and color temperature:

     $ lighter -v lights state 1 on 90% cool

  4. Turns all lights matching a regular expression off:

     $ lighter -v lights state '/^Entrance.*/' off`,

		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLightsState(cmd.Context(), args[0], args[1:])
		},
	}
	return cmd
}

func runLightsState(ctx context.Context, token string, words []string) error {
	sel, err := model.ParseSelector(token)
	if err != nil {
		return err
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	affected, err := client.SetLightState(ctx, sel, words)
	if err != nil {
		return err
	}
	if affected == 0 {
		WarnLog("No light matched %q", token)
	}
	VerboseLog("Updated %d light(s)", affected)
	return nil
}

// selectorFromArgs parses the optional identifier argument of the get
// commands; absence selects everything.
func selectorFromArgs(args []string) (model.Selector, error) {
	if len(args) == 0 {
		return model.All, nil
	}
	return model.ParseSelector(args[0])
}
