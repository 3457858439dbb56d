package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "File a new incident report",
		Long: `Record an incident. High severity reports are flagged as SOS cases.

Example:
  nightwatch report --text "Stalking near the exit" --location "Metro Station" --severity High`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _ := cmd.Flags().GetString("text")
			location, _ := cmd.Flags().GetString("location")
			timestamp, _ := cmd.Flags().GetString("time")
			severity, _ := cmd.Flags().GetString("severity")

			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			inc, err := app.engine.AddIncident(cmd.Context(), text, location, timestamp, models.ParseSeverity(severity))
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(inc)
				return nil
			}

			fmt.Println("Incident recorded:")
			fmt.Printf("  ID:       %s\n", inc.ID)
			fmt.Printf("  Location: %s\n", inc.Location)
			fmt.Printf("  Time:     %s\n", inc.Time)
			fmt.Printf("  Severity: %s\n", inc.Severity)
			if inc.SOS {
				fmt.Println("  Status:   SOS case flagged")
			}
			return nil
		},
	}

	cmd.Flags().String("text", "", "What happened (required)")
	cmd.Flags().String("location", "", "Where it happened (required)")
	cmd.Flags().String("time", "", "When it happened, format 2006-01-02 15:04 (default: now)")
	cmd.Flags().String("severity", "Low", "Severity: Low, Medium, or High")
	cmd.MarkFlagRequired("text")
	cmd.MarkFlagRequired("location")

	return cmd
}
