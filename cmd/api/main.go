package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dfcarvalho/caixa-escolar/internal/aggregate"
	"github.com/dfcarvalho/caixa-escolar/internal/config"
	caixaHttp "github.com/dfcarvalho/caixa-escolar/internal/http"
	ledgerHandler "github.com/dfcarvalho/caixa-escolar/internal/http/ledger"
	schoolHandler "github.com/dfcarvalho/caixa-escolar/internal/http/school"
	summaryHandler "github.com/dfcarvalho/caixa-escolar/internal/http/summary"
	"github.com/dfcarvalho/caixa-escolar/internal/importer"
	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	report, sequenced, err := run(cfg)
	if err != nil {
		slog.Error("reconciliation run failed", "error", err)
		os.Exit(1)
	}

	var (
		schoolsH = schoolHandler.NewHandler(report)
		ledgerH  = ledgerHandler.NewHandler(sequenced, report.Flagged, cfg.View.PageSize)
		summaryH = summaryHandler.NewHandler(report)
	)

	router := caixaHttp.New(schoolsH, ledgerH, summaryH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server",
		"port", port,
		"mode", report.Mode,
		"schools", len(report.Schools),
		"transactions", len(sequenced),
		"unmatched", len(report.Unmatched),
	)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run loads both datasets and performs the single reconciliation pass the
// handlers serve from.
func run(cfg *config.Config) (*aggregate.Report, []ledger.Transaction, error) {
	registryFile, err := os.Open(cfg.Data.RegistryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open registry: %w", err)
	}
	defer registryFile.Close()

	schools, err := importer.Registry(registryFile)
	if err != nil {
		return nil, nil, err
	}

	ledgerFile, err := os.Open(cfg.Data.LedgerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	defer ledgerFile.Close()

	txs, err := importer.Ledger(ledgerFile)
	if err != nil {
		return nil, nil, err
	}

	report, err := aggregate.Run(schools, txs, cfg.Mode(), cfg.Aggregation.TopN)
	if err != nil {
		return nil, nil, err
	}

	return report, ledger.Sequence(txs), nil
}
