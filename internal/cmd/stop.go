package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running session",
	Long:  "Stop signals the running session to end before its scheduled deadline and exit. The session flushes its final context log entry and counters before exiting.",
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	if err := signalRunningSession(syscall.SIGTERM); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "stop requested")
	return nil
}
