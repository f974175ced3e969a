package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
)

var reloadPrivacyCmd = &cobra.Command{
	Use:   "reload-privacy",
	Short: "Reload the running session's privacy policy from disk",
	Long:  "Reload-privacy signals the running session to reread its privacy policy file immediately, without waiting for the background file watch to notice the change.",
	RunE:  runReloadPrivacy,
}

func init() {
	rootCmd.AddCommand(reloadPrivacyCmd)
}

func runReloadPrivacy(cmd *cobra.Command, args []string) error {
	if err := signalRunningSession(syscall.SIGHUP); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "privacy policy reload requested")
	return nil
}
