// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/mpassid/authdata-service/internal/config"
	"github.com/mpassid/authdata-service/internal/db"
	"github.com/mpassid/authdata-service/internal/importer"
	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring/prometheus"
	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/tracing"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import roster data from a CSV file into the database",
	Long: `Import users, attendances and queryable attributes from a headerless CSV
file into the local database.

Each row holds six fixed columns (username, school, group, role, first name,
last name) followed by one value per attribute named with --attributes.

Example:
  authdata-service import --file file.csv --attributes dreamschool,facebook --source manual --run`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.Flags().String("file", "", "Path to the CSV file")
	importCmd.Flags().String("attributes", "", "Comma-separated attribute names, in column order")
	importCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string")
	importCmd.Flags().String("source", "manual", "Source value for this run")
	importCmd.Flags().String("municipality", "-", "Municipality the imported schools belong to")
	importCmd.Flags().Bool("run", false, "Really run the import, otherwise records are only logged")

	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("file")
	attributeList, _ := cmd.Flags().GetString("attributes")
	dsn, _ := cmd.Flags().GetString("dsn")
	source, _ := cmd.Flags().GetString("source")
	municipality, _ := cmd.Flags().GetString("municipality")
	run, _ := cmd.Flags().GetBool("run")

	specs := new(config.EnvSpec)
	// best-effort env loading, flags take precedence
	_ = envconfig.Process("", specs)

	if dsn == "" {
		dsn = specs.DSN
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("authdata-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(false, "", "", logger))

	dbConfig := db.Config{DSN: dsn}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	if err := db.Migrate(dbClient.DB()); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var attributeNames []string
	for _, name := range strings.Split(attributeList, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			attributeNames = append(attributeNames, trimmed)
		}
	}

	driver := importer.NewCSVDriver(file, attributeNames)
	imp := importer.NewImporter(driver, s, source, municipality, !run, logger)
	return imp.Run(context.Background())
}
