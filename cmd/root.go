/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lawsarthi/sarthi/internal/sarthi/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sarthi",
	Short: "A terminal client for the Lawsarthi legal assistant",
	Long: `sarthi is a terminal client for the Lawsarthi legal-assistant backend.
It can ask one-off questions, run interactive conversations with multiple
named chats (pinned, archived, searchable), and expand reusable question
templates.
You can configure the tool using a TOML configuration file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/sarthi/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initLogging configures the global zerolog logger.
func initLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix and automatic env
	viper.SetEnvPrefix("SARTHI")
	viper.AutomaticEnv()

	// Determine config directory for user config
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "sarthi")

	defaultConfig := config.NewDefaultConfig(filepath.Join(userConfigDir, "prompts"))

	// Set default values
	viper.SetDefault("base_url", defaultConfig.BaseURL)
	viper.SetDefault("request_timeout_seconds", defaultConfig.RequestTimeoutSeconds)
	viper.SetDefault("prompt_dirs", defaultConfig.PromptDirs)
	viper.SetDefault("user_email", defaultConfig.UserEmail)

	// Bind environment variables
	viper.BindEnv("base_url", "SARTHI_BASE_URL")
	viper.BindEnv("request_timeout_seconds", "SARTHI_REQUEST_TIMEOUT_SECONDS")
	viper.BindEnv("user_email", "SARTHI_USER_EMAIL")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(userConfigDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
