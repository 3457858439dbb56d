package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in demo incident dataset",
		Long: `Embed and store the synthetic demo dataset.

Seeding is idempotent: dataset IDs are stable, so running it twice
replaces the same records instead of duplicating them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			seeder := seed.NewSeeder(app.store, app.embedder, app.logger)

			result, err := seeder.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			if err := app.engine.RebuildMemory(cmd.Context()); err != nil {
				return fmt.Errorf("rebuilding memory: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(result)
			} else {
				fmt.Printf("Seeded %d incidents (%d SOS cases)\n", result.Seeded, result.SOS)
			}
			return nil
		},
	}
}
