// Package main is the entry point of lighter-release, the build driver
// that produces distribution packages for lighter.
//
// The driver reads a .lighter-release.yaml descriptor at the project
// root and runs the declared build matrix strictly sequentially: every
// simple package natively and in a container, then every versioned
// package once per declared toolchain version. The first failing build
// aborts the run with exit code 6.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/release"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "lighter-release",
		Short: "Builds lighter distribution packages",
		Long: `lighter-release builds the distribution packages declared in the
.lighter-release.yaml descriptor at the project root.

Each declared package is built natively and then inside the configured
container image, with the project root mounted at the fixed mount
point. Versioned packages are built once per declared toolchain
version. Builds run strictly sequentially and the first failure stops
the run.`,

		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd.Context(), root)
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Project root holding the release descriptor")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

var verbose bool

func verboseLog(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

func runRelease(ctx context.Context, root string) error {
	cfg, err := release.Load(root)
	if err != nil {
		return err
	}

	driver := release.NewDriver(cfg, root, release.DriverOptions{Debugf: verboseLog})
	done, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Built %s: %d invocation(s)\n", cfg.Package, done)
	return nil
}

func main() {
	// A SIGINT/SIGTERM cancels the context so a running build can be
	// interrupted between (or during) invocations.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cliErr.Message)
			os.Exit(int(cliErr.Code))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(model.ExitGeneralError))
	}
}
