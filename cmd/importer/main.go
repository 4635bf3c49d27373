package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/midwestpm/reportingest/internal/config"
	"github.com/midwestpm/reportingest/internal/db"
	"github.com/midwestpm/reportingest/internal/domain"
	"github.com/midwestpm/reportingest/internal/ingestion"
	"github.com/midwestpm/reportingest/internal/repository"

	"github.com/spf13/cobra"
)

var (
	flagDir      string
	flagConfig   string
	flagSnapshot string
	flagDryRun   bool
)

func main() {
	root := &cobra.Command{
		Use:   "importer",
		Short: "Bulk-import property report files from a directory",
		Long: `Walks a directory of exported report files (CSV or XLSX), sniffs the
report type from each file name, and ingests them one at a time.`,
		RunE: runImport,
	}

	root.Flags().StringVar(&flagDir, "dir", ".", "directory containing report files")
	root.Flags().StringVar(&flagConfig, "config", ".", "directory containing config.yaml")
	root.Flags().StringVar(&flagSnapshot, "snapshot", "", "snapshot date override (YYYY-MM-DD)")
	root.Flags().BoolVar(&flagDryRun, "dry-run", false, "parse files without writing to the database")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	files, err := reportFiles(flagDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no report files found in %s", flagDir)
	}
	fmt.Printf("Found %d report files to process\n\n", len(files))

	var service *ingestion.Service
	if flagDryRun {
		service = ingestion.NewService(ingestion.NewController(nil, nil, 0, false))
	} else {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		if err := db.RunMigrations(cfg.Database, cfg.Ingest.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		store := repository.NewReportStore(conn.Pool)
		logRepo := repository.NewIngestionLogRepository(conn.Pool)
		controller := ingestion.NewController(store, logRepo, cfg.Ingest.BatchPause, cfg.Ingest.VerifyCounts)
		service = ingestion.NewService(controller)
	}

	var results []domain.IngestionResult
	failed := 0

	for _, file := range files {
		name := filepath.Base(file)
		fmt.Printf("Processing: %s\n", name)

		payload, err := os.ReadFile(file)
		if err != nil {
			log.Printf("  read error: %v", err)
			failed++
			continue
		}

		if flagDryRun {
			spec, records, snapshot, err := service.Parse(name, payload, flagSnapshot)
			if err != nil {
				log.Printf("  parse error: %v", err)
				failed++
				continue
			}
			fmt.Printf("  %s: %d records for snapshot %s (dry run)\n\n", spec.Kind, len(records), snapshot)
			continue
		}

		result, err := service.Ingest(ctx, ingestion.Request{
			FileName:     name,
			Data:         bytes.NewReader(payload),
			SnapshotDate: flagSnapshot,
		})
		if err != nil {
			log.Printf("  error: %v", err)
			failed++
			continue
		}

		fmt.Printf("  %d succeeded, %d failed for snapshot %s\n\n", result.Succeeded, result.Failed, result.SnapshotDate)
		results = append(results, result)
	}

	fmt.Println("\n=== Summary ===")
	fmt.Printf("Files processed: %d, files failed: %d\n", len(results), failed)
	for _, r := range results {
		fmt.Printf("  %s %s: %d/%d records\n", r.Table, r.SnapshotDate, r.Succeeded, r.Attempted)
		for _, e := range r.Errors {
			fmt.Printf("    batch %d: %s\n", e.Batch, e.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}

func reportFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
