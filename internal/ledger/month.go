package ledger

import "strings"

// Months is the canonical month vocabulary, index 0 = Janeiro. Partial-year
// datasets (the flood ledger starts in Agosto) resolve against the same
// table and keep their natural order.
var Months = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// monthIndex maps upper-cased month names to their index, including
// accent-stripped spellings that show up in hand-edited sheets.
var monthIndex = map[string]int{
	"JANEIRO": 0, "FEVEREIRO": 1, "MARÇO": 2, "MARCO": 2,
	"ABRIL": 3, "MAIO": 4, "JUNHO": 5, "JULHO": 6,
	"AGOSTO": 7, "SETEMBRO": 8, "OUTUBRO": 9,
	"NOVEMBRO": 10, "DEZEMBRO": 11,
}

// ParseMonthLabel resolves a free-text month label to its 0-based index.
// Labels carry a numeric prefix in the source ("8. Agosto", "3.Março");
// the text after the first "." is the candidate name. A bare month name
// also resolves. Anything else reports ok=false.
func ParseMonthLabel(label string) (int, bool) {
	name := label
	if i := strings.Index(label, "."); i >= 0 {
		name = label[i+1:]
	}

	idx, ok := monthIndex[strings.ToUpper(strings.TrimSpace(name))]

	return idx, ok
}
