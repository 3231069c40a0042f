// Package cli — config.go implements the "lighter config" command group:
// pulling and pushing the whole gateway configuration and acquiring API
// keys.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anjos/lighter/internal/config"
	"github.com/anjos/lighter/internal/deconz"
	"github.com/anjos/lighter/internal/model"
)

// NewConfigCommand creates the "config" command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Commands for dealing with the global configuration",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigPushCommand())
	cmd.AddCommand(newConfigAPIKeyCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [path]",
		Short: "Gets the whole gateway configuration in JSON format",
		Long: `Gets the whole gateway configuration in JSON format.

The complete gateway state is pulled: lights, groups, scenes, schedules
and the gateway's own settings. Without a path argument the document is
printed to stdout; with one it is written to the given file.

Examples:

  1. Gets the whole device configuration as a JSON document:

     $ lighter -v config get

  2. Saves the whole device configuration to a file:

     $ lighter -v config get backup.json`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runConfigGet(cmd.Context(), path)
		},
	}
	return cmd
}

func runConfigGet(ctx context.Context, path string) error {
	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	state, err := client.FullState(ctx)
	if err != nil {
		return err
	}

	if path == "" {
		return printJSON(os.Stdout, state)
	}

	var buf bytes.Buffer
	if err := printJSON(&buf, state); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot write gateway state to %s", path), err)
	}
	VerboseLog("Wrote gateway state to %s", path)
	return nil
}

func newConfigPushCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <path>",
		Short: "Pushes gateway settings from a JSON file",
		Long: `Pushes gateway settings from a JSON file.

The file holds a JSON object of gateway settings (the "config" section
of a document obtained with "config get"). Only the keys present in the
file are written.

Examples:

  1. Pushes edited settings back to the gateway:

     $ lighter -v config push settings.json`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPush(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runConfigPush(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot read settings file %s", path), err)
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("settings file %s is not a JSON object", path), err)
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	if err := client.PushConfig(ctx, settings); err != nil {
		return err
	}
	VerboseLog("Pushed %d setting(s) to the gateway", len(settings))
	return nil
}

func newConfigAPIKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Gets a new API key from the gateway",
		Long: `Gets a new API key from the gateway.

The gateway only hands out keys while unlocked: the command keeps
retrying until you click "Authenticate app" in the gateway web
interface, then prints the acquired key. Copy it into the "api_key"
field of your ` + config.FileName + ` file.

Examples:

  1. Gets a new API key from the gateway:

     $ lighter -v config apikey`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigAPIKey(cmd.Context())
		},
	}
	return cmd
}

func runConfigAPIKey(ctx context.Context) error {
	// Key acquisition must work before any key exists, so the api_key
	// field of the configuration is not required here.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := deconz.New(deconz.Options{
		Host:   cfg.Host,
		Port:   cfg.Port,
		Debugf: VerboseLog,
		Warnf:  WarnLog,
	})

	key, err := client.AcquireAPIKey(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("API key: %s\n", key)
	return nil
}
