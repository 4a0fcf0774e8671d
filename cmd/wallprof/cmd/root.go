package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/wallprof/pkg/logging"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
	logJSON      bool

	logger *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wallprof",
	Short: "Wall-clock profiling of named actions",
	Long: `wallprof runs instrumented workloads and reports where wall-clock time
goes: per-action totals, call counts, and each action's share of the total
elapsed time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wallprof/config)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format: text, table or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".wallprof/config" (without extension)
		viper.AddConfigPath(filepath.Join(home, ".wallprof"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("wallprof")
	viper.AutomaticEnv()
	viper.BindEnv("log_level", "WALLPROF_LOG_LEVEL")
	viper.BindEnv("output", "WALLPROF_OUTPUT")

	if err := viper.ReadInConfig(); err == nil {
		if !rootCmd.PersistentFlags().Changed("output") && viper.GetString("output") != "" {
			outputFormat = viper.GetString("output")
		}
		if !rootCmd.PersistentFlags().Changed("log-level") && viper.GetString("log_level") != "" {
			logLevel = viper.GetString("log_level")
		}
	}

	logger = logging.NewLogger(logging.ParseLevel(logLevel), logJSON)
}
