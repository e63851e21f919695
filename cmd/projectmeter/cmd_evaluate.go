package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridex/projectmeter/internal/classify"
)

func newEvaluateCommand(opts *rootOptions) *cobra.Command {
	var (
		dataFile  string
		modelFile string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate classifier accuracy against labeled samples",
		Long: `Evaluate a trained classifier against a held-out labeled sample file and
print accuracy, weighted precision/recall/F1 and the confusion matrix as JSON.

Without --model the classifier is trained on its builtin corpus first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := loadSamples(dataFile)
			if err != nil {
				return err
			}

			var clf *classify.Classifier
			if modelFile != "" {
				clf, err = classify.LoadClassifier(modelFile)
				if err != nil {
					return fmt.Errorf("loading model: %w", err)
				}
			} else {
				clf = classify.NewClassifier()
				if err := clf.TrainBuiltin(); err != nil {
					return fmt.Errorf("training on builtin corpus: %w", err)
				}
			}

			evaluation, err := clf.Evaluate(samples)
			if err != nil {
				return fmt.Errorf("evaluating classifier: %w", err)
			}

			out, err := json.MarshalIndent(evaluation, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling evaluation: %w", err)
			}
			out = append(out, '\n')
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "path to a labeled samples JSON file")
	cmd.Flags().StringVar(&modelFile, "model", "", "path to a saved model snapshot (default: train builtin corpus)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
