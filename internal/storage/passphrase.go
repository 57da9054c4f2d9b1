package storage

import (
	"unicode"
	"unicode/utf8"
)

type PassphraseStrength int

const (
	PassphraseWeak PassphraseStrength = iota
	PassphraseMedium
	PassphraseStrong
)

const minPassphraseLength = 12

func (s PassphraseStrength) String() string {
	switch s {
	case PassphraseStrong:
		return "strong"
	case PassphraseMedium:
		return "medium"
	default:
		return "weak"
	}
}

// CheckPassphrase grades the passphrase protecting stored records and lists
// what it lacks. Length counts for more than character classes: a long
// passphrase made of plain words is still strong.
func CheckPassphrase(passphrase string) (PassphraseStrength, []string) {
	var issues []string

	length := utf8.RuneCountInString(passphrase)
	if length < minPassphraseLength/2 {
		return PassphraseWeak, []string{"passphrase must be at least 6 characters long"}
	}

	var hasUpper, hasLower, hasDigit, hasOther bool
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	if length >= 2*minPassphraseLength {
		return PassphraseStrong, nil
	}

	if length < minPassphraseLength {
		issues = append(issues, "passphrase should be at least 12 characters long")
	}
	if !hasUpper || !hasLower {
		issues = append(issues, "passphrase should mix upper and lower case letters")
	}
	if !hasDigit {
		issues = append(issues, "passphrase should contain a number")
	}
	if !hasOther {
		issues = append(issues, "passphrase should contain a symbol or space")
	}

	switch {
	case len(issues) == 0:
		return PassphraseStrong, nil
	case len(issues) > 2:
		return PassphraseWeak, issues
	default:
		return PassphraseMedium, issues
	}
}
