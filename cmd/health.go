/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lawsarthi/sarthi/internal/sarthi/client"
	"github.com/lawsarthi/sarthi/internal/sarthi/config"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the answering backend is reachable",
	Long: `Check the answering backend's health endpoint and report its status.
Useful to verify the configured base_url before starting a conversation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		answerClient := client.New(cfg.BaseURL, cfg.RequestTimeout())
		health, err := answerClient.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend at %s is not healthy: %w", cfg.BaseURL, err)
		}

		fmt.Printf("Backend: %s\n", cfg.BaseURL)
		fmt.Printf("Status: %s\n", health.Status)
		if health.Service != "" {
			fmt.Printf("Service: %s\n", health.Service)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
