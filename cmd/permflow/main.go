package main

import (
	stdErrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errDenied signals a completed flow whose outcome is Denied.
var errDenied = stdErrors.New("permissions denied")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if stdErrors.Is(err, errDenied) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "permflow",
		Short:         "Runtime permission request flow",
		Long:          "Runs a permission request flow (rationale, native prompt, settings round-trip) against a simulated device.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	root.AddCommand(
		runCmd(),
		validateCmd(),
		schemaCmd(),
		grantsCmd(),
	)
	return root
}
