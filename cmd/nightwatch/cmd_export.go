package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output-path>",
		Short: "Export incidents to a portable dataset file",
		Long: `Write the stored incidents to a JSON dataset file.

Vectors are not exported; importing re-embeds each record, so datasets
move cleanly between instances with different embedding backends.

Example:
  nightwatch export ./incidents.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			result, err := export.Export(cmd.Context(), app.store, args[0], limit, nil)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(result)
			} else {
				fmt.Printf("Exported %d incidents to %s\n", result.Exported, result.Path)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Export at most this many incidents (0 = all)")

	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <dataset-path>",
		Short: "Import incidents from a dataset file",
		Long: `Load incidents from a dataset file written by 'nightwatch export'.

Records whose IDs already exist are skipped unless --replace is given.

Example:
  nightwatch import ./incidents.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			replace, _ := cmd.Flags().GetBool("replace")
			result, err := export.Import(cmd.Context(), app.store, app.embedder, args[0], export.ImportOptions{
				Replace: replace,
			})
			if err != nil {
				return err
			}

			if err := app.engine.RebuildMemory(cmd.Context()); err != nil {
				return fmt.Errorf("rebuilding memory: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(result)
			} else {
				fmt.Printf("Imported %d incidents (%d skipped)\n", result.Imported, result.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().Bool("replace", false, "Overwrite records whose IDs already exist")

	return cmd
}
