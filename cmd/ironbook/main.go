// Command ironbook runs the limit order book matching engine as a
// standalone HTTP service. The cobra command tree (root + serve/replay
// subcommands) is grounded on VictorVVedtion-perp-dex's cobra-based
// cmd/ wiring; the overall shape of main (construct collaborators, wire
// them, run) follows the teacher's cmd/server/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ironbook",
		Short: "A price-time-priority limit order book matching engine",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newReplayCmd(&configPath))
	return cmd
}
