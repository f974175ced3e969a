package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucidtrace/recall/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Always-on screen-capture memory engine",
	Long: `recall periodically captures the screen on a configurable cadence,
withholds captures the active privacy policy denies, keeps a running
append-only log of what was seen, and pauses itself automatically when the
screen locks, the display sleeps, or screen-recording permission is lost.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is "+config.ConfigFile()+")")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RECALL")
	// Replace dots with underscores for nested keys in env vars, e.g.
	// RECALL_SESSION_EVERY_MS for session.every_ms.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
