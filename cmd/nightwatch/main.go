package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nightwatch",
		Short: "Nightwatch - incident-aware travel risk analysis",
		Long: `nightwatch answers "how risky is this plan?" from past incident reports.

It ingests incident reports, indexes them for similarity search, keeps a
time-location memory of what happened where and when, and classifies the
risk of travel plans like "going to the metro station at 22".`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (YAML)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newServeCmd(),
		newSeedCmd(),
		newAnalyzeCmd(),
		newReportCmd(),
		newSOSCmd(),
		newTrainCmd(),
		newExportCmd(),
		newImportCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("nightwatch version %s\n", version)
			}
		},
	}
}
