package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucidtrace/recall/internal/config"
	"github.com/lucidtrace/recall/internal/privacy"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is running and the resolved configuration",
	Long:  "Status reports what can be determined without a live session: whether a process is recorded in the pid file and still alive, the configuration that would be used to start one, and the active privacy policy's rule summary.",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if pid, err := readRunningPID(); err == nil {
		fmt.Fprintf(out, "session running, pid %d\n", pid)
	} else {
		fmt.Fprintln(out, "no session running")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintf(out, "every:       %s\n", cfg.Session.Every())
	fmt.Fprintf(out, "for:         %s\n", cfg.Session.For())
	fmt.Fprintf(out, "output dir:  %s\n", cfg.Session.OutputDir)
	fmt.Fprintf(out, "context log: %s\n", cfg.Session.ContextPath)
	fmt.Fprintf(out, "analyze:     %t (model=%s)\n", cfg.Session.Analyze, cfg.Session.Model)

	status := privacyStatus(cfg)
	fmt.Fprintf(out, "privacy:     %s (%s)\n", status.RuleSummary, status.ConfigPath)

	return nil
}

// privacyStatus reports the configured privacy policy's status without
// mutating any on-disk state, mirroring the guard construction the engine
// itself performs at session start.
func privacyStatus(cfg *config.RecallConfig) privacy.Status {
	if cfg.Session.UseMock || cfg.Session.PrivacyPolicyPath == "" {
		return privacy.AllowAllGuard{ConfigPath: cfg.Session.PrivacyPolicyPath}.Status()
	}

	guard, err := privacy.NewFileGuard(cfg.Session.PrivacyPolicyPath, privacy.NewOSForegroundProvider())
	if err != nil {
		return privacy.Status{ConfigPath: cfg.Session.PrivacyPolicyPath, Enabled: false, RuleSummary: "unavailable: " + err.Error()}
	}
	return guard.Status()
}
