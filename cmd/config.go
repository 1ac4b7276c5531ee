/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lawsarthi/sarthi/internal/sarthi/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: configfile, base_url, request_timeout_seconds, prompt_dirs, user_email

Examples:
  sarthi config                           # Show all configuration
  sarthi config base_url                  # Show only the backend URL
  sarthi config request_timeout_seconds   # Show only the request timeout`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if len(args) == 1 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Println(viper.ConfigFileUsed())
			case "base_url":
				fmt.Println(cfg.BaseURL)
			case "request_timeout_seconds":
				fmt.Println(cfg.RequestTimeoutSeconds)
			case "prompt_dirs":
				fmt.Println(strings.Join(cfg.PromptDirs, "\n"))
			case "user_email":
				fmt.Println(cfg.UserEmail)
			default:
				fmt.Fprintf(os.Stderr, "Unknown field: %s\n", field)
				os.Exit(1)
			}
			return
		}

		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
		fmt.Printf("base_url: %s\n", cfg.BaseURL)
		fmt.Printf("request_timeout_seconds: %d\n", cfg.RequestTimeoutSeconds)
		fmt.Printf("prompt_dirs: %s\n", strings.Join(cfg.PromptDirs, ", "))
		fmt.Printf("user_email: %s\n", cfg.UserEmail)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
