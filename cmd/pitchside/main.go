// Package main is the pitchside CLI, a thin shell over the SDK for
// poking the backend and the analyzer from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	pitchside "github.com/pitchside/pitchside-go"
	"github.com/pitchside/pitchside-go/internal/logging"
)

var (
	sdk     *pitchside.Client
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pitchside",
		Short: "Pitchside football social platform client",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}

			var err error
			sdk, err = pitchside.New(pitchside.WithLogger(logging.NewConsole(level)))
			if err != nil {
				return err
			}

			// Resolve any stored token before the command runs.
			_, err = sdk.Session.Bootstrap(cmd.Context())
			return err
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		feedCmd(),
		matchesCmd(),
		wellnessCmd(),
		dashboardCmd(),
		analyzeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func banner() {
	figure.NewFigure("pitchside", "cybermedium", true).Print()
	fmt.Println()
}
