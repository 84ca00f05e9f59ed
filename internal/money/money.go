// Package money parses and formats Brazilian-locale monetary values.
//
// Amounts are handled as cents (int64) everywhere; parsing goes through
// shopspring/decimal so locale strings never lose precision on the way in.
package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Parse converts a Brazilian-locale currency string into cents.
// Format examples: "R$ 1.234,56" -> 123456, "1234,56" -> 123456, "-588,74" -> -58874.
//
// A blank string, a lone "-" (the dataset's "no value" marker) or anything
// that is not a number yields ok=false. Parse never panics on dirty input.
//
// Three dialects show up in the wild: the Brazilian convention ("." thousands,
// "," decimal), already-clean numeric strings ("1234.56"), and the registry's
// comma-grouped exports ("R$ 150,000" = 150 thousand reais). When both
// separators are present the rightmost one is the decimal mark; a lone
// separator followed by groups of exactly three digits is read as grouping.
func Parse(s string) (int64, bool) {
	clean := stripSpaces(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = stripSpaces(clean)

	switch clean {
	case "", "-", ",", ".":
		return 0, false
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), true
}

// normalizeSeparators rewrites a locale-formatted number into the plain
// dot-decimal form decimal.NewFromString understands.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Rightmost separator is the decimal mark, the other is grouping.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if isGrouping(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if isGrouping(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return s
}

// isGrouping reports whether every sep-separated group after the first has
// exactly three digits, i.e. the separators are thousands grouping
// ("8.608", "150,000", "1.234.567") rather than a decimal mark ("1234,56").
func isGrouping(s, sep string) bool {
	s = strings.TrimLeft(s, "+-")

	groups := strings.Split(s, sep)
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}

	return true
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

// Format renders cents in the Brazilian convention Parse accepts,
// e.g. 123456 -> "1.234,56". Parse(Format(v)) == v for any v.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := cents / 100
	frac := cents % 100

	return fmt.Sprintf("%s%s,%02d", sign, groupThousands(reais), frac)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)

	var sb strings.Builder

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}

		sb.WriteRune(d)
	}

	return sb.String()
}
