package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucidtrace/recall/internal/config"
	"github.com/lucidtrace/recall/internal/engine"
	"github.com/lucidtrace/recall/internal/event"
	"github.com/lucidtrace/recall/internal/logging"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a capture session in the foreground",
	Long: `Start runs a capture session until its schedule completes, Stop is
requested, or the process is signaled. It blocks for the lifetime of the
session: SIGINT/SIGTERM stop it, SIGTSTP pauses it, SIGCONT resumes it, and
SIGHUP reloads the privacy policy. The pause/resume/stop/reload-privacy
subcommands send these same signals to the process recorded in its pid
file, so a session can also be controlled from another terminal.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().Duration("every", 0, "capture cadence (e.g. 30s)")
	startCmd.Flags().Duration("for", 0, "total session duration, 0 yields a session with zero ticks")
	startCmd.Flags().String("output-dir", "", "directory captured PNGs are written to")
	startCmd.Flags().String("context-path", "", "path to the append-only context log")
	startCmd.Flags().Uint32("capture-stride", 0, "attempt a capture every Nth tick")
	startCmd.Flags().Uint64("min-free-bytes", 0, "minimum free disk space to maintain")
	startCmd.Flags().Uint64("max-session-bytes", 0, "cap on total bytes this session may write")
	startCmd.Flags().Bool("analyze", false, "summarize each capture with the analyzer")
	startCmd.Flags().String("model", "", "analyzer model name")
	startCmd.Flags().String("privacy-policy", "", "path to the privacy policy file")
	startCmd.Flags().Bool("mock", false, "use the mock screenshot provider and skip watchdogs")

	for _, flag := range []string{
		"every", "for", "output-dir", "context-path", "capture-stride",
		"min-free-bytes", "max-session-bytes", "analyze", "model", "privacy-policy", "mock",
	} {
		_ = viper.BindPFlag(flagToConfigKey(flag), startCmd.Flags().Lookup(flag))
	}
}

// flagToConfigKey maps a start flag name to the viper key its value
// overrides, so a flag the user actually passed always wins over the
// config file and defaults set earlier by config.SetDefaults.
func flagToConfigKey(flag string) string {
	switch flag {
	case "every":
		return "session.every_ms"
	case "for":
		return "session.for_ms"
	case "output-dir":
		return "session.output_dir"
	case "context-path":
		return "session.context_path"
	case "capture-stride":
		return "session.capture_stride"
	case "min-free-bytes":
		return "session.min_free_bytes"
	case "max-session-bytes":
		return "session.max_session_bytes"
	case "analyze":
		return "session.analyze"
	case "model":
		return "session.model"
	case "privacy-policy":
		return "session.privacy_policy_path"
	case "mock":
		return "session.use_mock"
	default:
		return flag
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	exitCode, err := runStartSession(cmd)
	if err != nil {
		return err
	}
	os.Exit(exitCode)
	return nil
}

// runStartSession runs one session to completion and reports the exit code
// it should produce, deferring every cleanup (pid file, log file, signal
// handlers) within its own scope so runStart's later os.Exit never skips
// them.
func runStartSession(cmd *cobra.Command) (exitCode int, err error) {
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Session.OutputDir, cfg.Logging.Level)
	if err != nil {
		logger = logging.NopLogger()
	}
	defer logger.Close()

	bus := event.NewBus()
	bus.SubscribeAll(printEvent)

	eng, err := engine.New(cfg, bus, logger)
	if err != nil {
		return 0, fmt.Errorf("failed to construct session: %w", err)
	}

	if err := writePIDFile(os.Getpid()); err != nil {
		logger.Warn("failed to write pid file", "error", err)
	}
	defer removePIDFile()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	controlCh := make(chan os.Signal, 4)
	signal.Notify(controlCh, syscall.SIGTSTP, syscall.SIGCONT, syscall.SIGHUP)
	defer signal.Stop(controlCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-controlCh:
				switch sig {
				case syscall.SIGTSTP:
					eng.Pause()
				case syscall.SIGCONT:
					eng.Resume()
				case syscall.SIGHUP:
					eng.ReloadPrivacyPolicy()
				}
			}
		}
	}()

	var userStopped bool
	go func() {
		<-ctx.Done()
		userStopped = true
		eng.Stop()
	}()

	runErr := eng.Run(context.Background())

	switch {
	case runErr != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "session ended in error: %v\n", runErr)
		return 2, nil
	case userStopped:
		return 130, nil
	default:
		return 0, nil
	}
}

func printEvent(e event.Event) {
	switch ev := e.(type) {
	case event.SessionStartedEvent:
		fmt.Printf("session started: output=%s every=%s for=%s\n", ev.OutputDir, ev.Every, ev.For)
	case event.CaptureSucceededEvent:
		fmt.Printf("capture %d: %s\n", ev.Artifact.CaptureIndex, ev.Artifact.Path)
	case event.CaptureSkippedEvent:
		fmt.Printf("skipped: %s\n", ev.RuleLabel)
	case event.CaptureFailedEvent:
		fmt.Printf("capture failed: %s\n", ev.Kind)
	case event.AnalysisFallbackEvent:
		fmt.Printf("analysis fallback: %s\n", ev.Reason)
	case event.AutoPausedEvent:
		fmt.Printf("paused: %s\n", ev.Reason)
	case event.AutoResumedEvent:
		fmt.Printf("resumed: %s\n", ev.Reason)
	case event.UserPausedEvent:
		fmt.Println("paused: user")
	case event.UserResumedEvent:
		fmt.Println("resumed: user")
	case event.ReclaimedEvent:
		fmt.Printf("reclaimed %d files, freed %d bytes\n", ev.Files, ev.FreedBytes)
	case event.PolicyReloadedEvent:
		fmt.Printf("privacy policy reloaded: %s\n", ev.RuleSummary)
	case event.SessionEndedEvent:
		fmt.Printf("session ended: captures=%d skipped=%d failures=%d analyzed=%d\n",
			ev.Counters.Captures, ev.Counters.Skipped, ev.Counters.Failures, ev.Counters.Analyzed)
	}
}
