package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session",
	Long:  "Pause signals the running session to stop capturing until resumed. The schedule keeps its original cadence; resume realigns it so no backlog of missed captures fires at once.",
	RunE:  runPause,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	if err := signalRunningSession(syscall.SIGTSTP); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "pause requested")
	return nil
}
