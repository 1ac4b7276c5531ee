/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lawsarthi/sarthi/internal/sarthi/config"
)

var withDir bool

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "List available question templates",
	Long: `List all available question templates from the configured prompt directories.
This command recursively scans all prompt directories specified in the configuration and displays
the names of available .toml template files, including those in subdirectories.

The template files should be in TOML format with the following structure:
question = "Question text with optional {{input}} placeholder"
description = "optional description"

Template names are displayed as relative paths from the prompt directory root.
For example, a file at ${prompt_dir}/foo/bar.toml will be displayed as "foo/bar".

If you want to see which directory each template comes from, use the --with-dir option.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Collect all template files from all directories; later directories
		// take precedence over earlier ones
		promptMap := make(map[string]string) // template name -> directory path

		for _, promptDir := range cfg.PromptDirs {
			if _, err := os.Stat(promptDir); os.IsNotExist(err) {
				if verbose {
					fmt.Fprintf(os.Stderr, "Prompt directory does not exist: %s\n", promptDir)
				}
				continue
			}

			err := filepath.Walk(promptDir, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() || !strings.HasSuffix(info.Name(), ".toml") {
					return nil
				}
				rel, err := filepath.Rel(promptDir, path)
				if err != nil {
					return err
				}
				name := strings.TrimSuffix(rel, ".toml")
				promptMap[name] = promptDir
				return nil
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error scanning prompt directory %s: %v\n", promptDir, err)
			}
		}

		if len(promptMap) == 0 {
			fmt.Println("No question templates found.")
			fmt.Println("\nCreate one with:")
			fmt.Println("  echo 'question = \"{{input}}\"' > $(sarthi config prompt_dirs)/example.toml")
			return
		}

		names := make([]string, 0, len(promptMap))
		for name := range promptMap {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if withDir {
				fmt.Printf("%s (%s)\n", name, promptMap[name])
			} else {
				fmt.Println(name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().BoolVar(&withDir, "with-dir", false, "Show the directory each template comes from")
}
