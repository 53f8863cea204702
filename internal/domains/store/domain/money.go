package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a fixed-point currency amount. Totals are computed with
// integer arithmetic so price × quantity never drifts.
type Cents int64

// Mul scales the amount by a unit count.
func (c Cents) Mul(quantity int) Cents {
	return c * Cents(quantity)
}

// String renders the amount as dollars with two decimals.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ParseCents reads a decimal amount like "49.99" into cents. At most two
// fractional digits are accepted.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two decimals", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	total := dollars*100 + cents
	if negative {
		total = -total
	}
	return Cents(total), nil
}
