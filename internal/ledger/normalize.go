package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dfcarvalho/caixa-escolar/internal/money"
)

// Field is a canonical column of the ledger dataset.
type Field string

const (
	FieldSchool    Field = "school"
	FieldAmount    Field = "amount"
	FieldDirection Field = "direction"
	FieldStatus    Field = "status"
	FieldDueDate   Field = "due_date"
	FieldMonth     Field = "month"
	FieldCategory  Field = "category"
	FieldItem      Field = "item"
	FieldProvider  Field = "provider"
)

// aliases maps each canonical field to the source column names seen across
// dataset revisions, in match priority order. Lookups are case-insensitive.
// Supporting a new revision is appending aliases, never branching on version.
var aliases = map[Field][]string{
	FieldSchool:    {"ESCOLA", "NOME"},
	FieldAmount:    {"VALOR"},
	FieldDirection: {"CONTABILIDADE", "TIPO"},
	FieldStatus:    {"STATUS", "SITUAÇÃO", "SITUACAO"},
	FieldDueDate:   {"VENCIMENTO", "DATA VENCIMENTO", "DATA"},
	FieldMonth:     {"MÊS", "MES"},
	FieldCategory:  {"CATEGORIA"},
	FieldItem:      {"ITEM", "DESCRIÇÃO", "DESCRICAO"},
	FieldProvider:  {"FORNECEDOR", "FAVORECIDO"},
}

// dueDateLayouts are tried in order. Municipal exports mix day-first
// slashed dates with ISO dates depending on which tool wrote the CSV.
var dueDateLayouts = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

// Normalize maps arbitrary input rows onto canonical transactions.
// It is total: a row never fails, it degrades to a flagged record with
// null-equivalent fields so dirty data stays visible instead of vanishing.
func Normalize(rows []map[string]string) []Transaction {
	txs := make([]Transaction, 0, len(rows))

	for i, row := range rows {
		tx := normalizeRow(row)
		tx.ID = recordID(i, tx)
		txs = append(txs, tx)
	}

	return txs
}

// recordID derives a stable identity from the record's position and raw
// fields, so re-running the same input reproduces the same IDs.
func recordID(i int, tx Transaction) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID,
		fmt.Appendf(nil, "%d|%s|%d|%s|%s", i, tx.RawSchool, tx.Amount, tx.MonthLabel, tx.Item))
}

func normalizeRow(row map[string]string) Transaction {
	cols := foldKeys(row)

	tx := Transaction{
		Month:    -1,
		Category: cols.get(FieldCategory),
		Item:     cols.get(FieldItem),
		Provider: cols.get(FieldProvider),
	}

	tx.RawSchool = cols.get(FieldSchool)
	tx.School = NormalizeName(tx.RawSchool)

	if cents, ok := money.Parse(cols.get(FieldAmount)); ok {
		tx.Amount = abs(cents)
	} else {
		tx.Flags |= FlagBadAmount
	}

	tx.Direction, tx.Status = Classify(cols.get(FieldDirection), cols.get(FieldStatus))
	if tx.Direction == DirectionUnknown {
		tx.Flags |= FlagNoDirection
	}

	if s := cols.get(FieldDueDate); s != "" {
		if d, ok := parseDueDate(s); ok {
			tx.DueDate = d
		} else {
			tx.Flags |= FlagBadDate
		}
	}

	if s := cols.get(FieldMonth); s != "" {
		tx.MonthLabel = s

		if idx, ok := ParseMonthLabel(s); ok {
			tx.Month = idx
		} else {
			tx.Flags |= FlagBadMonth
		}
	}

	return tx
}

// colSet indexes a row by upper-cased column name for alias resolution.
type colSet map[string]string

func foldKeys(row map[string]string) colSet {
	cols := make(colSet, len(row))

	for k, v := range row {
		key := strings.ToUpper(strings.TrimSpace(k))
		if _, exists := cols[key]; !exists {
			cols[key] = strings.TrimSpace(v)
		}
	}

	return cols
}

// get resolves a canonical field against the alias table, first match wins.
// A field with no present alias resolves to the empty string.
func (c colSet) get(f Field) string {
	for _, alias := range aliases[f] {
		if v, ok := c[alias]; ok {
			return v
		}
	}

	return ""
}

func parseDueDate(s string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}

	return time.Time{}, false
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
