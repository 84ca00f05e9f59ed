package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcarvalho/caixa-escolar/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		cents int64
		ok    bool
	}{
		{name: "SymbolAndGrouping", in: "R$ 1.234,56", cents: 123456, ok: true},
		{name: "BareComma", in: "1234,56", cents: 123456, ok: true},
		{name: "NoValueDash", in: "-", ok: false},
		{name: "Blank", in: " ", ok: false},
		{name: "Empty", in: "", ok: false},
		{name: "Negative", in: "-588,74", cents: -58874, ok: true},
		{name: "GroupingOnly", in: "8.608", cents: 860800, ok: true},
		{name: "CleanDotDecimal", in: "1234.56", cents: 123456, ok: true},
		{name: "MixedAmericanOrder", in: "1,234.56", cents: 123456, ok: true},
		{name: "CommaGroupingOnly", in: "R$ 150,000", cents: 15000000, ok: true},
		{name: "CommaGroupingMultiple", in: "1,234,567", cents: 123456700, ok: true},
		{name: "LargeGrouped", in: "R$ 48.825,46", cents: 4882546, ok: true},
		{name: "Integer", in: "300", cents: 30000, ok: true},
		{name: "LeadingDashWithSpaces", in: " - ", ok: false},
		{name: "Garbage", in: "sem valor", ok: false},
		{name: "TrailingGarbage", in: "12,3a", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, ok := money.Parse(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cents, cents)
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, in := range []string{"R$ 1.234,56", "1234,56", "0,01", "-588,74", "1.234.567,89", "300"} {
		cents, ok := money.Parse(in)
		require.True(t, ok, in)

		again, ok := money.Parse(money.Format(cents))
		require.True(t, ok, in)
		assert.Equal(t, cents, again, in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.234,56", money.Format(123456))
	assert.Equal(t, "0,05", money.Format(5))
	assert.Equal(t, "-588,74", money.Format(-58874))
	assert.Equal(t, "1.234.567,89", money.Format(123456789))
}
