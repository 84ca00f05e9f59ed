package ledger

import "strings"

// Classify maps the raw accounting vocabulary onto direction and status.
// It is total: any input maps somewhere, nothing raises.
//
// Direction comes from the CONTABILIDADE/Tipo column ("Entrada"/"Saída");
// unrecognized values become DirectionUnknown and are excluded from sums.
// Status comes from the status column when present: "Pago" means paid,
// any other non-empty value means forecast, an absent column means unknown
// (aggregated like forecast, displayed as its own bucket).
func Classify(directionText, statusText string) (Direction, Status) {
	return classifyDirection(directionText), classifyStatus(statusText)
}

func classifyDirection(s string) Direction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ENTRADA":
		return DirectionEntry
	case "SAÍDA", "SAIDA":
		return DirectionExit
	}

	return DirectionUnknown
}

func classifyStatus(s string) Status {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusUnknown
	}

	if strings.EqualFold(s, "Pago") {
		return StatusPaid
	}

	return StatusForecast
}
