package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <query>",
		Short: "Analyze the risk of a travel plan or safety question",
		Long: `Analyze a query against past incidents.

Queries with a recognizable travel plan ("going to <place> at <hour>")
get a full risk classification. Other queries get semantic evidence only.

Examples:
  nightwatch analyze "going to metro station at 22"
  nightwatch analyze "is the marketplace safe"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.engine.Analyze(cmd.Context(), query)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(result)
				return nil
			}

			if result.IntentRecognized {
				fmt.Printf("Risk: %s\n", result.Risk)
				fmt.Printf("  Plan:     %s at %02d:00\n", result.Location, result.Hour)
				fmt.Printf("  Features: count=%.0f avg_severity=%.2f night=%.0f semantic=%.0f\n",
					result.Features.Count(), result.Features.AvgSeverity(),
					result.Features.NightFlag(), result.Features.SemanticScore())
			} else {
				fmt.Println("No travel plan recognized; showing similar past incidents.")
			}

			if len(result.Matches) == 0 {
				fmt.Println("\nNo similar incidents on record.")
				return nil
			}
			fmt.Printf("\nSimilar incidents (%d):\n", len(result.Matches))
			for i, inc := range result.Matches {
				fmt.Printf("%d. [%s] %s (%s, %s)\n", i+1, inc.Severity, inc.Text, inc.Location, inc.Time)
			}
			return nil
		},
	}
}
