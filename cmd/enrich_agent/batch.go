package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [emails...]",
	Short: "Enrich multiple contacts with bounded concurrency",
	Long: `Enriches every email given as an argument or listed in --file (one address
per line, blank lines and # comments ignored). Failures are reported per email
and do not stop the batch.`,
	RunE: runBatch,
}

var (
	batchConfigPath  string
	batchFile        string
	batchConcurrency int64
	batchMock        bool
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file")
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to a file with one email per line")
	batchCmd.Flags().Int64Var(&batchConcurrency, "concurrency", 5, "Maximum concurrent enrichments")
	batchCmd.Flags().BoolVar(&batchMock, "mock", false, "Force mock providers and in-memory storage")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	emails := append([]string{}, args...)
	if batchFile != "" {
		fromFile, err := readEmailFile(batchFile)
		if err != nil {
			return err
		}
		emails = append(emails, fromFile...)
	}
	if len(emails) == 0 {
		return fmt.Errorf("no emails given: pass them as arguments or with --file")
	}

	cfg, err := loadAppConfig(batchConfigPath, batchMock)
	if err != nil {
		return err
	}

	runner, st, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	results := runner.RunBatch(ctx, emails, batchConcurrency)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Email, result.Err)
			continue
		}
		fmt.Printf("OK   %s (%d sources)\n", result.Email, len(result.Record.DataSources))
	}

	fmt.Printf("\n%d/%d enriched\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d enrichments failed", failed, len(results))
	}
	return nil
}

// readEmailFile parses a one-email-per-line file, skipping blanks and comments.
func readEmailFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open email file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var emails []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		emails = append(emails, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read email file: %w", err)
	}
	return emails, nil
}
