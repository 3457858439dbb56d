package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/config"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <data-dir>",
		Short: "Initialize a nightwatch data directory",
		Long: `Create the data directory and write a default config file into it.

Example:
  nightwatch init ./nightwatch-data
  nightwatch --config ./nightwatch-data/config.yaml serve`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := args[0]

			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			cfg := config.Default()
			cfg.DataDir = dataDir

			cfgPath := filepath.Join(dataDir, "config.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists at %s", cfgPath)
			}
			if err := cfg.Save(cfgPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{
					"status": "initialized",
					"path":   dataDir,
					"config": cfgPath,
				})
			} else {
				fmt.Printf("Initialized nightwatch data directory in %s\n", dataDir)
				fmt.Printf("Config written to %s\n", cfgPath)
			}
			return nil
		},
	}

	return cmd
}
