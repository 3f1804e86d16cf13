// Command importinventory loads an inventory spreadsheet (CSV or XLSX) into
// a business's inventory, upserting items by name.
// Usage: go run ./cmd/importinventory -business <uuid> -file stock.xlsx [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledgerbook/internal/config"
	"ledgerbook/internal/importer"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/repository/postgres"
	"ledgerbook/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	businessFlag := flag.String("business", "", "business ID to import into")
	path := flag.String("file", "", "CSV or XLSX file to import")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	flag.Parse()

	if *path == "" {
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if *dryRun {
		res, err := importer.Parse(*path, f, cfg.Import.MaxRows)
		if err != nil {
			return fmt.Errorf("parse file: %w", err)
		}
		zl.Info("dry run complete",
			zap.Int("rows", res.TotalRows),
			zap.Int("valid", len(res.Items)),
			zap.Int("errors", len(res.Errors)),
		)
		printErrors(res.Errors)
		return nil
	}

	businessID, err := uuid.Parse(*businessFlag)
	if err != nil {
		return fmt.Errorf("invalid -business: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := postgres.NewBusinessRepo(db).GetByID(ctx, businessID); err != nil {
		return fmt.Errorf("look up business: %w", err)
	}

	svc := service.NewInventoryService(postgres.NewInventoryRepo(db), cfg.Import.MaxRows, zl)
	out, err := svc.Import(ctx, businessID, *path, f)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	printErrors(out.Errors)
	log.Printf("%d rows: %d created, %d updated, %d failed", out.TotalRows, out.Created, out.Updated, out.Failed)
	return nil
}

func printErrors(errs []importer.RowError) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
}
