package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfcarvalho/caixa-escolar/internal/money"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// FormatAmount renders cents in the locale the dataset uses.
func FormatAmount(cents int64) string {
	return "R$ " + money.Format(cents)
}

// FormatDate formats a date for table cells; missing dates show as a dash.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02")
}
