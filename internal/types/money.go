// README: Common money value object used across modules.
package types

import (
	"strconv"
	"strings"
)

// DefaultCurrency is the symbol used when none is configured.
const DefaultCurrency = "₹"

type Money struct {
	Amount   int64
	Currency string
}

// String renders the amount with the currency symbol and thousands separators, e.g. "₹11,777".
func (m Money) String() string {
	cur := m.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	return cur + GroupThousands(m.Amount)
}

// GroupThousands formats n with comma separators.
func GroupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
