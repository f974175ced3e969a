package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused session",
	Long:  "Resume signals the running session to clear its user pause reason. If other pause reasons are still active (screen locked, display asleep, permission revoked) the session remains paused until those clear too.",
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	if err := signalRunningSession(syscall.SIGCONT); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "resume requested")
	return nil
}
