package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridex/projectmeter/internal/classify"
)

func newTrainCommand(opts *rootOptions) *cobra.Command {
	var (
		dataFile string
		outFile  string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the project classifier and save a model snapshot",
		Long: `Train the Naive Bayes project classifier and write the fitted model to disk.

Without --data the classifier trains on its builtin labeled corpus. A data
file holds an array of labeled samples:

  [{"text": "react frontend with typescript", "label": "web_frontend"}, ...]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf := classify.NewClassifier()

			if dataFile == "" {
				if err := clf.TrainBuiltin(); err != nil {
					return fmt.Errorf("training on builtin corpus: %w", err)
				}
			} else {
				samples, err := loadSamples(dataFile)
				if err != nil {
					return err
				}
				if err := clf.Train(samples); err != nil {
					return fmt.Errorf("training classifier: %w", err)
				}
			}

			if err := clf.Save(outFile); err != nil {
				return fmt.Errorf("saving model: %w", err)
			}

			info := clf.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "Model saved: %s\n", outFile)
			fmt.Fprintf(cmd.OutOrStdout(), "  type:    %s\n", info.ModelType)
			fmt.Fprintf(cmd.OutOrStdout(), "  version: %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  classes: %d\n", len(info.Classes))
			fmt.Fprintf(cmd.OutOrStdout(), "  samples: %d\n", info.TrainingSamples)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "path to a labeled samples JSON file (default: builtin corpus)")
	cmd.Flags().StringVar(&outFile, "out", "model.json", "path to write the model snapshot to")

	return cmd
}

// loadSamples reads labeled classifier samples from a JSON array file.
func loadSamples(path string) ([]classify.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading samples file: %w", err)
	}
	var samples []classify.Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parsing samples file: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("samples file %s holds no samples", path)
	}
	return samples, nil
}
