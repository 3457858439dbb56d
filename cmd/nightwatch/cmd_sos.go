package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

func newSOSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sos",
		Short: "List SOS cases, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			cases, err := app.engine.SOSCases(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				if cases == nil {
					cases = []models.Incident{}
				}
				json.NewEncoder(os.Stdout).Encode(map[string]any{
					"cases": cases,
					"count": len(cases),
				})
				return nil
			}

			if len(cases) == 0 {
				fmt.Println("No SOS cases on record.")
				return nil
			}
			fmt.Printf("SOS cases (%d):\n\n", len(cases))
			for i, c := range cases {
				fmt.Printf("%d. [%s] %s\n", i+1, c.Time, c.Text)
				fmt.Printf("   Location: %s\n", c.Location)
				fmt.Println()
			}
			return nil
		},
	}
}
