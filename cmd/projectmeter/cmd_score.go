package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/scoring"
)

func newScoreCommand(opts *rootOptions) *cobra.Command {
	var (
		file       string
		algorithm  string
		weightsCSV string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a project record from a JSON file",
		Long: `Score a single project record without starting the HTTP server.

The input file holds one project record as JSON, for example:

  {"name": "deploy-bot", "description": "CI/CD automation", "tech_stack": ["go", "docker"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading project file: %w", err)
			}

			var rec project.Record
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("parsing project file: %w", err)
			}
			if err := rec.Validate(); err != nil {
				return err
			}

			weights, err := parseWeights(weightsCSV)
			if err != nil {
				return err
			}

			engine, err := buildEngine(opts.cfg, slog.Default())
			if err != nil {
				return err
			}

			result, err := engine.Score(cmd.Context(), rec, algorithm, weights, nil)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling result: %w", err)
			}
			out = append(out, '\n')
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a project record JSON file")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "scoring algorithm (base, advanced, ml)")
	cmd.Flags().StringVar(&weightsCSV, "weights", "",
		"comma-separated dimension weights in the order quality,innovation,feasibility,business_value")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// parseWeights turns "0.4,0.3,0.2,0.1" into a weight map over the canonical
// dimension order. An empty string means the engine's default split.
func parseWeights(raw string) (scoring.Weights, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	dims := scoring.Dimensions()
	parts := strings.Split(raw, ",")
	if len(parts) != len(dims) {
		return nil, fmt.Errorf("want %d comma-separated weights (%s), got %d",
			len(dims), strings.Join(dims, ","), len(parts))
	}
	weights := scoring.Weights{}
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q is not a number", strings.TrimSpace(part))
		}
		weights[dims[i]] = value
	}
	return weights, nil
}
