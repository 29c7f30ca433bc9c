package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"procura/internal/an01"
	"procura/internal/export"
)

type analyzeOptions struct {
	output string
	pretty bool
	csv    string
	xlsx   string
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <workbook>",
		Short: "Print the analysis of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "Also write the offer table as CSV to this path")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Also write a summary report workbook to this path")
	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts analyzeOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading workbook: %w", err)
	}

	result, err := an01.Analyze(data)
	if err != nil {
		if an01.IsStructureError(err) || an01.IsEmptyResultError(err) {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	var out []byte
	if opts.pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}

	if opts.csv != "" {
		var buf bytes.Buffer
		if err := export.WriteOffersCSV(&buf, result); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		if err := os.WriteFile(opts.csv, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	if opts.xlsx != "" {
		var buf bytes.Buffer
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := export.WriteReport(&buf, export.ReportInput{Title: title, Result: result}); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if err := os.WriteFile(opts.xlsx, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}
