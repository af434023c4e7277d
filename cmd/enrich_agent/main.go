// Package main provides the entry point for the lead enrichment agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "enrich_agent",
	Short: "Contact enrichment and personalization agent",
	Long:  "enrich_agent resolves a contact email against multiple enrichment providers, merges the results into a normalized profile, and generates compliance-checked personalized copy via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
