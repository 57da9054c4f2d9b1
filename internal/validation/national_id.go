package validation

import (
	"errors"

	"rhystmorgan/regform/internal/utils"
)

const nationalIDLength = 11

var (
	ErrNationalIDLength   = errors.New("cpf must have 11 digits")
	ErrNationalIDRepeated = errors.New("cpf digits are all the same")
	ErrNationalIDChecksum = errors.New("cpf check digits do not match")
)

// ValidateNationalID checks a CPF. Formatting characters are ignored; the
// eleven digits must not all be equal and both mod-11 check digits have to
// match.
func ValidateNationalID(raw string) error {
	digits := utils.OnlyDigits(raw)
	if len(digits) != nationalIDLength {
		return ErrNationalIDLength
	}

	d := make([]int, nationalIDLength)
	repeated := true
	for i := range digits {
		d[i] = int(digits[i] - '0')
		if digits[i] != digits[0] {
			repeated = false
		}
	}
	if repeated {
		return ErrNationalIDRepeated
	}

	if checkDigit(d[:9]) != d[9] || checkDigit(d[:10]) != d[10] {
		return ErrNationalIDChecksum
	}

	return nil
}

// IsValidNationalID reports whether ValidateNationalID accepts raw
func IsValidNationalID(raw string) bool {
	return ValidateNationalID(raw) == nil
}

// checkDigit weights the digits from len+1 down to 2
func checkDigit(digits []int) int {
	weight := len(digits) + 1
	sum := 0
	for i, v := range digits {
		sum += v * (weight - i)
	}

	rem := (sum * 10) % 11
	if rem == 10 {
		return 0
	}
	return rem
}
