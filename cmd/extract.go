package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/credit"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/lookup"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/pipeline"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/pkg/apollo"
)

var (
	extractInput  string
	extractOutput string
	extractFormat string
	extractColumn string
	extractLimit  int
	extractDryRun bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Look up verified contact data for a batch of LinkedIn URLs",
	Long: `Reads LinkedIn profile URLs from a CSV or XLSX file and runs each one
through Apollo's two-step people lookup: a match call first, then an
enrich call with phone reveal when the match did not already surface a
verified mobile number. Results land in a spreadsheet with one row per
input URL, including any per-record error.

Requires APOLLO_API_KEY to be set.

Examples:
  # Dry run — parse the input file only, no API calls
  apollo-contact-extractor extract --input leads.csv --dry-run

  # Full batch, JSON output
  apollo-contact-extractor extract --input leads.csv --output contacts.json --format json

  # First 5 rows only
  apollo-contact-extractor extract --input leads.csv --limit 5`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		applyExtractFlags()

		// Parse input.
		ids, err := pipeline.ReadIdentifiers(cfg.Batch.Input, cfg.Batch.LinkedInColumn)
		if err != nil {
			return eris.Wrap(err, "extract: read input")
		}
		zap.L().Info("parsed input", zap.Int("identifiers", len(ids)))

		// Apply limit.
		if extractLimit > 0 && extractLimit < len(ids) {
			ids = ids[:extractLimit]
		}

		// Dry run: print parsed identifiers and exit.
		if extractDryRun {
			return printIdentifiersJSON(ids)
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		policy := apollo.DefaultVerificationPolicy()
		if cfg.Batch.PolicyFile != "" {
			policy, err = apollo.LoadVerificationPolicy(cfg.Batch.PolicyFile)
			if err != nil {
				return eris.Wrap(err, "extract: load policy")
			}
		}

		client := apollo.NewClient(cfg.API.Key,
			apollo.WithBaseURL(cfg.API.BaseURL),
			apollo.WithTimeout(cfg.API.Timeout()),
			apollo.WithRateLimitDelay(cfg.API.RateLimit()),
		)

		usage := credit.NewUsage()
		engine := lookup.NewEngine(client, policy, usage)
		proc := pipeline.NewProcessor(engine, usage, pipeline.WithProgressEvery(cfg.Batch.ProgressEvery))

		records, runErr := proc.Run(ctx, ids)

		// A cancelled batch still writes the records produced so far.
		if len(records) > 0 || runErr == nil {
			if err := pipeline.WriteRecords(cfg.Batch.Output, cfg.Batch.Format, records); err != nil {
				return eris.Wrap(err, "extract: write output")
			}
			zap.L().Info("output written",
				zap.String("path", cfg.Batch.Output),
				zap.String("format", cfg.Batch.Format),
				zap.Int("records", len(records)),
			)
		}

		return runErr
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractInput, "input", "", "path to CSV or XLSX file of LinkedIn URLs (default from config)")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "output file path (default from config)")
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "output format: csv, json or xlsx (default from config)")
	extractCmd.Flags().StringVar(&extractColumn, "column", "", "input column holding LinkedIn URLs (default from config)")
	extractCmd.Flags().IntVar(&extractLimit, "limit", 0, "max rows to process (0 = all)")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "parse the input file and print identifiers, skip lookups")
	rootCmd.AddCommand(extractCmd)
}

// applyExtractFlags overlays non-empty flag values onto the loaded config.
func applyExtractFlags() {
	if extractInput != "" {
		cfg.Batch.Input = extractInput
	}
	if extractOutput != "" {
		cfg.Batch.Output = extractOutput
	}
	if extractFormat != "" {
		cfg.Batch.Format = extractFormat
	}
	if extractColumn != "" {
		cfg.Batch.LinkedInColumn = extractColumn
	}
}

// printIdentifiersJSON prints parsed identifiers as indented JSON.
func printIdentifiersJSON(ids []string) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(ids)
}
