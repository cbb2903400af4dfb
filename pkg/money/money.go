// Package money normalizes free-text amounts into whole rupees.
//
// The closing form accepts whatever the operator types: thousands
// separators, a stray currency symbol, fractional paisa. All amounts in
// the system are whole non-negative integers, so parsing strips down to
// the digits and truncates any fraction.
package money

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotAnAmount is returned by ParseStrict for non-empty input that
// contains no digits at all.
var ErrNotAnAmount = errors.New("money: input contains no amount")

// Parse converts free-text input to a non-negative integer amount.
// Separators and currency symbols are dropped, a fractional part is
// truncated (not rounded), and anything unparseable maps to 0. Parse
// never fails: the live form must not block on a half-typed value.
func Parse(input string) int64 {
	// Truncate at the first decimal point before stripping, so
	// "1,500.75" becomes 1500 rather than 150075.
	if dot := strings.IndexByte(input, '.'); dot >= 0 {
		input = input[:dot]
	}

	var digits strings.Builder
	for i := 0; i < len(input); i++ {
		if input[i] >= '0' && input[i] <= '9' {
			digits.WriteByte(input[i])
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseStrict is the pre-submission validator. Empty (or all-whitespace)
// input is a genuine zero; non-empty input without a single digit is a
// hard error instead of a silent zero, so "abc" cannot sneak into a
// submitted closing as 0.
func ParseStrict(input string) (int64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}
	if !strings.ContainsAny(input, "0123456789") {
		return 0, ErrNotAnAmount
	}
	return Parse(input), nil
}

// Format renders an amount with thousands separators, e.g. 45300 ->
// "45,300". Negative amounts keep their sign; the receipt shows a
// negative cash-in-hand rather than hiding it.
func Format(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
