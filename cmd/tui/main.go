package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dfcarvalho/caixa-escolar/cmd/tui/internal/view"
	"github.com/dfcarvalho/caixa-escolar/internal/aggregate"
	"github.com/dfcarvalho/caixa-escolar/internal/config"
	"github.com/dfcarvalho/caixa-escolar/internal/importer"
	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
)

type View int

const (
	ViewMenu    View = 0
	ViewLedger  View = 1
	ViewSummary View = 2
)

type model struct {
	currentView View

	ledgerView  view.LedgerModel
	summaryView view.SummaryModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	report, sequenced, err := load(cfg)
	if err != nil {
		slog.Error("reconciliation run failed", "error", err)
		os.Exit(1)
	}

	return model{
		currentView: ViewMenu,
		ledgerView:  view.NewLedgerModel(sequenced, cfg.View.PageSize),
		summaryView: view.NewSummaryModel(report),
	}
}

func load(cfg *config.Config) (*aggregate.Report, []ledger.Transaction, error) {
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

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLedger
				return m, m.ledgerView.Init()
			case "2":
				m.currentView = ViewSummary
				return m, m.summaryView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedger:
		m.ledgerView, cmd = m.ledgerView.Update(msg)
	case ViewSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	}

	return m, cmd
}

var menuStyle = lipgloss.NewStyle().Padding(1, 2)

func (m model) View() string {
	switch m.currentView {
	case ViewLedger:
		return menuStyle.Render(m.ledgerView.View() + "\n\n" + m.ledgerView.ShortHelp())
	case ViewSummary:
		return menuStyle.Render(m.summaryView.View() + "\n\n" + m.summaryView.ShortHelp())
	}

	return menuStyle.Render(
		"Caixa Escolar\n\n" +
			"1. Lançamentos\n" +
			"2. Resumo\n\n" +
			"q: quit",
	)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("tui failed", "error", err)
		os.Exit(1)
	}
}
