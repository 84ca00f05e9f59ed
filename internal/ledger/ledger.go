// Package ledger turns the raw school cashflow export into canonical
// transactions and provides the ordered views the dashboards read.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Direction represents which way a transaction moves money.
type Direction string

const (
	DirectionEntry   Direction = "entry"
	DirectionExit    Direction = "exit"
	DirectionUnknown Direction = "unknown"
)

// Status represents the realization state of a transaction.
type Status string

const (
	StatusPaid     Status = "paid"
	StatusForecast Status = "forecast"
	StatusUnknown  Status = "unknown"
)

// Mode selects which statuses count toward invested totals. The dataset
// generations disagree on whether forecast exits are "invested", so both
// readings are supported and the caller picks one.
type Mode string

const (
	ModePaidOnly         Mode = "paid"
	ModePaidPlusForecast Mode = "paid+forecast"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePaidOnly:
		return ModePaidOnly, nil
	case ModePaidPlusForecast:
		return ModePaidPlusForecast, nil
	}

	return "", fmt.Errorf("unknown aggregation mode %q (want %q or %q)", s, ModePaidOnly, ModePaidPlusForecast)
}

// Includes reports whether a status counts under this mode. StatusUnknown
// aggregates like forecast but stays distinguishable for display.
func (m Mode) Includes(s Status) bool {
	if s == StatusPaid {
		return true
	}

	return m == ModePaidPlusForecast
}

// Flag marks fields that failed to parse. Flagged records are excluded from
// the sums touching that field but kept for audit listing.
type Flag uint8

const (
	FlagBadAmount Flag = 1 << iota
	FlagBadDate
	FlagBadMonth
	FlagNoDirection
)

func (f Flag) Has(mask Flag) bool {
	return f&mask != 0
}

// Transaction is the canonical ledger record. Amounts are stored as absolute
// cents; entry/exit semantics live in Direction only, never in the sign.
type Transaction struct {
	ID         uuid.UUID
	School     string // join key: trimmed, upper-cased
	RawSchool  string
	Amount     int64
	Direction  Direction
	Status     Status
	DueDate    time.Time // zero when missing or unparseable
	MonthLabel string
	Month      int // 0-based, Janeiro=0; -1 when unresolved
	Category   string
	Item       string
	Provider   string
	Flags      Flag
}

// Countable reports whether the record may participate in monetary sums.
func (t Transaction) Countable() bool {
	return !t.Flags.Has(FlagBadAmount) && t.Direction != DirectionUnknown
}

// NormalizeName produces the join key used on both the ledger and the
// registry side: trimmed and upper-cased, inner whitespace collapsed.
func NormalizeName(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}
