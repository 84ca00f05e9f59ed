package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
)

// LedgerModel browses the sequenced ledger one page at a time.
type LedgerModel struct {
	CommonModel

	table    table.Model
	txs      []ledger.Transaction
	pageSize int
	page     int
}

func NewLedgerModel(txs []ledger.Transaction, pageSize int) LedgerModel {
	columns := []table.Column{
		{Title: "Mês", Width: 10},
		{Title: "Vencimento", Width: 12},
		{Title: "Escola", Width: 30},
		{Title: "Tipo", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Valor", Width: 14},
		{Title: "Item", Width: 26},
		{Title: "", Width: 2},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := LedgerModel{table: t, txs: txs, pageSize: pageSize}
	m.setPage(0)

	return m
}

func (m LedgerModel) Title() string { return "Lançamentos" }

func (m LedgerModel) ShortHelp() string {
	return "Esc: back | ←/→: page | ↑/↓: scroll"
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

func (m LedgerModel) Update(msg tea.Msg) (LedgerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			if m.page > 0 {
				m.setPage(m.page - 1)
			}

			return m, nil
		case "right", "l":
			if m.page < m.pageCount()-1 {
				m.setPage(m.page + 1)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) View() string {
	footer := fmt.Sprintf("Page %d of %d (%d records)", m.page+1, max(m.pageCount(), 1), len(m.txs))

	return m.table.View() + "\n" + footer
}

func (m *LedgerModel) setPage(page int) {
	m.page = page

	txs := ledger.Page(m.txs, m.pageSize, page)
	rows := make([]table.Row, len(txs))

	for i, tx := range txs {
		rows[i] = table.Row{
			monthCell(tx),
			FormatDate(tx.DueDate),
			tx.RawSchool,
			string(tx.Direction),
			string(tx.Status),
			FormatAmount(tx.Amount),
			tx.Item,
			flagCell(tx),
		}
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m LedgerModel) pageCount() int {
	return ledger.PageCount(len(m.txs), m.pageSize)
}

func monthCell(tx ledger.Transaction) string {
	if tx.Month >= 0 {
		return ledger.Months[tx.Month]
	}

	if tx.MonthLabel != "" {
		return tx.MonthLabel
	}

	return "-"
}

// flagCell marks audit-flagged records so dirty rows stay visible.
func flagCell(tx ledger.Transaction) string {
	if tx.Flags != 0 {
		return "!"
	}

	return ""
}
