package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-enricher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the enrichment pipeline as REST endpoints.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveMock       bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().BoolVar(&serveMock, "mock", false, "Force mock providers and in-memory storage")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAppConfig(serveConfigPath, serveMock)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	runner, st, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Port: cfg.Port}, runner, st)
	return srv.Start()
}
