package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dfcarvalho/caixa-escolar/internal/aggregate"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("57"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(22)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// SummaryModel shows the headline numbers of the reconciliation run.
type SummaryModel struct {
	CommonModel

	report *aggregate.Report
}

func NewSummaryModel(report *aggregate.Report) SummaryModel {
	return SummaryModel{report: report}
}

func (m SummaryModel) Title() string { return "Resumo" }

func (m SummaryModel) ShortHelp() string { return "Esc: back" }

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return m, Back
	}

	return m, nil
}

func (m SummaryModel) View() string {
	r := m.report

	var sb strings.Builder

	line := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	sb.WriteString(titleStyle.Render("Caixa"))
	sb.WriteString("\n")
	line("Saldo atual", FormatAmount(r.Summary.CurrentBalance))
	line("Total investido", FormatAmount(r.Summary.TotalInvested))
	line("Modo", string(r.Mode))
	line("Escolas", fmt.Sprintf("%d", len(r.Schools)))

	if n := len(r.Unmatched); n > 0 {
		line("Sem cadastro", warnStyle.Render(fmt.Sprintf("%d escolas no caixa fora do registro", n)))
	}

	if n := len(r.Flagged); n > 0 {
		line("Auditoria", warnStyle.Render(fmt.Sprintf("%d lançamentos com campos ilegíveis", n)))
	}

	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Maiores prejuízos"))
	sb.WriteString("\n")

	for _, s := range r.TopDamage {
		line(truncate(s.RawName, 20), FormatAmount(s.EstimatedDamage))
	}

	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Investido por bairro"))
	sb.WriteString("\n")

	for _, n := range r.InvestedByNeighborhood {
		line(truncate(n.Neighborhood, 20), FormatAmount(n.Invested))
	}

	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
