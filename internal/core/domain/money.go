package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Amounts travel over the wire as decimal strings ("40.00") and live in the
// store as int64 minor units. Floating point never touches a balance.

// ParseAmount converts a positive decimal string to cents. It accepts dot or
// comma as the decimal separator and rounds half-up on the third fractional
// digit. Zero, negative, signed and malformed inputs fail with
// ErrInvalidArgument.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: amount must be a positive decimal", ErrInvalidArgument)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidArgument, s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidArgument, s)
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidArgument)
	}
	const maxWhole = (1<<63 - 1) / 100
	if iv > maxWhole {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidArgument)
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidArgument)
	}
	return cents, nil
}

// FormatAmount renders cents as a two-decimal string, e.g. 4000 -> "40.00".
func FormatAmount(cents int64) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", neg, cents/100, cents%100)
}
