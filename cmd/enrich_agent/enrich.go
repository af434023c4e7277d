package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-enricher/internal/observability"
	"github.com/jonathan/lead-enricher/internal/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <email>",
	Short: "Enrich a single contact and generate personalized copy",
	Long: `Resolves the email against all configured enrichment providers, merges the
results into a normalized profile, generates personalized copy, and prints the
finalized record as JSON. Providers without credentials serve mock data.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

var (
	enrichConfigPath   string
	enrichDomain       string
	enrichGoal         string
	enrichPersona      string
	enrichIndustry     string
	enrichFirstName    string
	enrichLastName     string
	enrichCompanyName  string
	enrichCompanySize  string
	enrichForceRefresh bool
	enrichDeliver      bool
	enrichMock         bool
	enrichVerbose      bool
)

func init() {
	enrichCmd.Flags().StringVar(&enrichConfigPath, "config", "", "Path to config.json file (values can be overridden by environment)")
	enrichCmd.Flags().StringVar(&enrichDomain, "domain", "", "Company domain override (defaults to the email domain)")
	enrichCmd.Flags().StringVar(&enrichGoal, "goal", "", "Buyer goal: exploring, evaluating, learning, building_case")
	enrichCmd.Flags().StringVar(&enrichPersona, "persona", "", "Buyer persona: executive, it_infrastructure, security, data_ai, sales_gtm, hr_people")
	enrichCmd.Flags().StringVar(&enrichIndustry, "industry", "", "Industry override")
	enrichCmd.Flags().StringVar(&enrichFirstName, "first-name", "", "First name override")
	enrichCmd.Flags().StringVar(&enrichLastName, "last-name", "", "Last name override")
	enrichCmd.Flags().StringVar(&enrichCompanyName, "company", "", "Company name override")
	enrichCmd.Flags().StringVar(&enrichCompanySize, "company-size", "", "Company size override")
	enrichCmd.Flags().BoolVar(&enrichForceRefresh, "force-refresh", false, "Ignore any cached finalized record")
	enrichCmd.Flags().BoolVar(&enrichDeliver, "deliver", false, "Send the personalized ebook email after enrichment")
	enrichCmd.Flags().BoolVar(&enrichMock, "mock", false, "Force mock providers and in-memory storage")
	enrichCmd.Flags().BoolVarP(&enrichVerbose, "verbose", "v", false, "Print formatted profile and copy summaries")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadAppConfig(enrichConfigPath, enrichMock)
	if err != nil {
		return err
	}

	runner, st, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	req := &types.EnrichRequest{
		Email:        args[0],
		Domain:       enrichDomain,
		Goal:         enrichGoal,
		Persona:      enrichPersona,
		Industry:     enrichIndustry,
		FirstName:    enrichFirstName,
		LastName:     enrichLastName,
		CompanyName:  enrichCompanyName,
		CompanySize:  enrichCompanySize,
		ForceRefresh: enrichForceRefresh,
		Deliver:      enrichDeliver,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	record, err := runner.Run(ctx, req)
	if err != nil {
		return err
	}

	if enrichVerbose {
		printer := observability.NewPrinter(os.Stdout)
		profile := profileFromRecord(record)
		printer.PrintProfile(profile)
		if profile != nil {
			printer.PrintNews(profile.CompanyNews)
		}
		printer.PrintCopy(record)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// profileFromRecord recovers the normalized profile embedded in a finalized
// record's normalized_data map.
func profileFromRecord(record *types.FinalizedRecord) *types.NormalizedProfile {
	payload, err := json.Marshal(record.NormalizedData)
	if err != nil {
		return nil
	}
	var profile types.NormalizedProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil
	}
	return &profile
}
