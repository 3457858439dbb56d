package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/classifier"
	"github.com/nightwatch-ai/nightwatch/internal/config"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the risk classifier and save the model",
		Long: `Train the logistic regression risk classifier.

Without --samples the built-in labelled dataset is used. The trained
model is written to --output, or to the model path derived from the
config (data_dir/model.json) when --output is not given.

Sample file format (JSON):
  [{"features": [2, 1.5, 0, 0.3], "class": 0}, ...]
where class is 0 (LOW), 1 (MODERATE), or 2 (HIGH).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			samples := classifier.DefaultTrainingSet()
			if samplesPath, _ := cmd.Flags().GetString("samples"); samplesPath != "" {
				data, err := os.ReadFile(samplesPath)
				if err != nil {
					return fmt.Errorf("reading samples: %w", err)
				}
				samples = nil
				if err := json.Unmarshal(data, &samples); err != nil {
					return fmt.Errorf("parsing samples: %w", err)
				}
			}

			epochs, _ := cmd.Flags().GetInt("epochs")
			rate, _ := cmd.Flags().GetFloat64("rate")

			model, err := classifier.Train(samples, classifier.TrainConfig{
				Epochs:       epochs,
				LearningRate: rate,
			})
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = cfg.ClassifierPath()
			}
			if output == "" {
				return fmt.Errorf("no output path: pass --output or configure data_dir")
			}
			if err := model.Save(output); err != nil {
				return fmt.Errorf("saving model: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]any{
					"status":  "trained",
					"samples": len(samples),
					"output":  output,
				})
			} else {
				fmt.Printf("Trained on %d samples, model saved to %s\n", len(samples), output)
			}
			return nil
		},
	}

	cmd.Flags().String("samples", "", "JSON file of labelled training samples")
	cmd.Flags().String("output", "", "Where to write the trained model")
	cmd.Flags().Int("epochs", 0, "Training epochs (default 5000)")
	cmd.Flags().Float64("rate", 0, "Learning rate (default 0.05)")

	return cmd
}
