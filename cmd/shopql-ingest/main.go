// Command shopql-ingest builds the DuckDB store from the three source CSV
// files. Tables are replaced wholesale, so it is safe to re-run.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/shopql/shopql/internal/config"
	"github.com/shopql/shopql/internal/ingest"
	"github.com/shopql/shopql/internal/observability"
	"github.com/shopql/shopql/internal/query/duckdb"
)

func main() {
	_ = godotenv.Load()

	adSales := flag.String("ad-sales", "data/ad_sales.csv", "path to the ad sales CSV")
	totalSales := flag.String("total-sales", "data/total_sales.csv", "path to the total sales CSV")
	eligibility := flag.String("eligibility", "data/eligibility.csv", "path to the eligibility CSV")
	flag.Parse()

	cfg, err := config.LoadFromEnv("shopql-ingest")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := duckdb.Open(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	sources := []ingest.Source{
		{Table: "AdSales", Path: *adSales},
		{Table: "TotalSales", Path: *totalSales},
		{Table: "Eligibility", Path: *eligibility},
	}
	if err := ingest.LoadAll(context.Background(), db, sources); err != nil {
		logger.Error("ingest failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("ingest complete",
		slog.String("store", cfg.Store.Path),
		slog.Int("tables", len(sources)),
	)
}
