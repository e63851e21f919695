package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/veridex/projectmeter/internal/config"
)

var version = "1.0.0"

type rootOptions struct {
	configFile string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "projectmeter",
		Short: "Score software projects across quality, innovation, feasibility and business value",
		Long: `Projectmeter analyzes software project descriptions and scores them on
four dimensions using pluggable algorithms. It runs as an HTTP API (serve)
or as one-shot CLI commands for scoring, training and evaluating the
category classifier.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine; environment may come from the shell.
			_ = godotenv.Load()

			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			opts.cfg = cfg

			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to YAML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newScoreCommand(opts))
	cmd.AddCommand(newTrainCommand(opts))
	cmd.AddCommand(newEvaluateCommand(opts))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
