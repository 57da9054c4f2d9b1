package utils

import (
	"strings"
)

const (
	nationalIDDigits = 11
	postcodeDigits   = 8
)

// OnlyDigits drops every rune that is not an ASCII digit
func OnlyDigits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// FormatNationalID formats a CPF as 000.000.000-00. Separators are only
// inserted once the digit after them is present, so the function can be
// re-applied on every keystroke. Digits past the eleventh are dropped.
func FormatNationalID(raw string) string {
	digits := OnlyDigits(raw)
	if len(digits) > nationalIDDigits {
		digits = digits[:nationalIDDigits]
	}

	switch n := len(digits); {
	case n <= 3:
		return digits
	case n <= 6:
		return digits[:3] + "." + digits[3:]
	case n <= 9:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:]
	default:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	}
}

// FormatPhone formats a phone number as (00) 0000-0000 when it has exactly
// ten digits and as (00) 00000-0000 otherwise. Groups that are not complete
// are left as typed.
func FormatPhone(raw string) string {
	digits := OnlyDigits(raw)
	if len(digits) < 3 {
		return digits
	}

	prefixLen := 5
	if len(digits) == 10 {
		prefixLen = 4
	}

	rest := digits[2:]
	if len(rest) > prefixLen {
		rest = rest[:prefixLen] + "-" + rest[prefixLen:]
	}

	return "(" + digits[:2] + ") " + rest
}

// FormatPostcode renders a CEP as 00000-000 for display. Anything that is
// not eight digits is returned unchanged.
func FormatPostcode(raw string) string {
	digits := OnlyDigits(raw)
	if len(digits) != postcodeDigits {
		return raw
	}
	return digits[:5] + "-" + digits[5:]
}

// TruncateString truncates a string to a maximum length with ellipsis
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}

// PadString pads a string to a specific width
func PadString(s string, width int, padChar rune) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}

	return s + strings.Repeat(string(padChar), width-n)
}
