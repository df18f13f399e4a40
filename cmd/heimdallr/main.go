// Heimdallr distributes block-list updates across a fleet of network devices.
//
// It adds IPv4 addresses and networks to a named block-list on every device
// in a run configuration, using a full transaction per device over
// NETCONF-over-SSH: lock the candidate datastore, stage the change,
// validate, commit, unlock. Device failures are isolated; the run always
// reports one outcome per device.
//
// Usage:
//
//	heimdallr [command] [flags]
//
// See 'heimdallr --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryanklein/heimdallr/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "heimdallr",
	Short: "Fleet-wide block-list distribution",
	Long: `Heimdallr adds IPv4 addresses and networks to a named block-list
across a fleet of network devices.

Each device gets a full configuration transaction: lock, stage, validate,
commit, unlock. A failure on one device never affects another, and the run
always ends with one reported outcome per device.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("heimdallr %s (commit: %s)\n", version.Version, version.Commit)
	},
}
