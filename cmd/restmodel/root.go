package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/restmodel/restmodel/pkg/config"
	"github.com/restmodel/restmodel/pkg/logging"
	"github.com/restmodel/restmodel/pkg/record"
	"github.com/restmodel/restmodel/pkg/transport"
)

var (
	// Persistent flags available to all subcommands
	schemaPath string
	baseURL    string
	logLevel   string
	timeout    time.Duration

	// Version is injected during build
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "restmodel",
	Short: "restmodel performs record lifecycle operations against a REST API",
	Long: `restmodel loads a schema definition file (YAML or JSON) and runs the
record lifecycle against a live REST API: create (POST), update (PUT),
fetch (GET), and delete (DELETE), with the definition's validators applied
before anything goes on the wire.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "path to the schema definition file (required)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", transport.DefaultTimeout, "per-request timeout")
	_ = rootCmd.MarkPersistentFlagRequired("schema")
}

// loadSchema builds the record schema from the definition file plus the
// transport configured by the global flags.
func loadSchema() (*record.Schema, error) {
	def, err := config.LoadFromFile(schemaPath)
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{Level: logging.ParseLevel(logLevel)})
	client := transport.NewClient(
		transport.WithBaseURL(baseURL),
		transport.WithTimeout(timeout),
		transport.WithLogger(log),
	)
	return def.Schema(record.WithTransport(client), record.WithLogger(log))
}
